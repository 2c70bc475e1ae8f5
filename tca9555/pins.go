// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import (
	"errors"
	"strconv"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin extends gpio.PinIO interface with features supported by the TCA9555.
type Pin interface {
	gpio.PinIO
	pin.PinFunc
	// SetPolarityInverted if set to true, the input register bit reflects the
	// inverted logic state of the input pin.
	SetPolarityInverted(p bool) error
	// IsPolarityInverted returns true if the value of the input pin reflects
	// inverted logic state.
	IsPolarityInverted() (bool, error)
}

// expanderPin is a single line of the Dev. All the state lives in the Dev.
type expanderPin struct {
	dev    *Dev
	number int
}

// String returns the pin and the device it belongs to.
func (p *expanderPin) String() string {
	return strconv.Itoa(p.number) + " via " + p.dev.name
}

// Halt makes the pin an input, the chip's high impedance state.
//
// As for SetFunc, the chip is updated on the next WriteConfig.
func (p *expanderPin) Halt() error {
	p.dev.SetDirection(p.number, true)
	return nil
}

func (p *expanderPin) Name() string {
	return p.dev.name + "_" + strconv.Itoa(p.number)
}

func (p *expanderPin) Number() int {
	return p.number
}

func (p *expanderPin) Function() string {
	return string(p.Func())
}

// In marks the pin as input. The chip has neither pull resistors nor per pin
// edge detection; edges are reported for the whole chip on its INT line.
func (p *expanderPin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.PullDown:
		return errors.New("tca9555: PullDown is not supported")
	case gpio.PullUp:
		return errors.New("tca9555: PullUp is not supported")
	case gpio.Float, gpio.PullNoChange:
	}
	if edge != gpio.NoEdge {
		return errors.New("tca9555: edge detection not supported")
	}
	p.dev.SetDirection(p.number, true)
	return nil
}

// Read returns the level seen by the last input register read.
func (p *expanderPin) Read() gpio.Level {
	return gpio.Level(p.dev.DigitalRead(p.number))
}

func (p *expanderPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *expanderPin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *expanderPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out sets the output latch of the pin.
//
// Unlike most gpio.PinOut, it does not change the pin direction: use
// SetFunc(gpio.OUT) first. Writes to an input pin are ignored.
func (p *expanderPin) Out(l gpio.Level) error {
	p.dev.DigitalWrite(p.number, bool(l))
	return nil
}

func (p *expanderPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("tca9555: PWM is not supported")
}

func (p *expanderPin) Func() pin.Func {
	return p.dev.Direction(p.number)
}

func (p *expanderPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *expanderPin) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		p.dev.SetDirection(p.number, true)
	case gpio.OUT:
		p.dev.SetDirection(p.number, false)
	default:
		return errors.New("tca9555: Function not supported: " + string(f))
	}
	return nil
}

func (p *expanderPin) SetPolarityInverted(pol bool) error {
	p.dev.SetInverted(p.number, pol)
	return nil
}

func (p *expanderPin) IsPolarityInverted() (bool, error) {
	return p.dev.Inverted(p.number), nil
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}
