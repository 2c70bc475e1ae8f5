// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// The internal structure for a group of pins.
type pinGroup struct {
	dev         *Dev
	pins        []*expanderPin
	defaultMask gpio.GPIOValue
}

// Group returns a gpio.Group made up of the specified pin numbers, in that
// order. It returns nil if a number is out of range.
//
// Like the pins, the group only works on the register images: Out marks the
// output image dirty and Read returns the last input read by Step.
func (d *Dev) Group(pins ...int) gpio.Group {
	grouppins := make([]*expanderPin, len(pins))
	for ix, number := range pins {
		if number < 0 || number >= NumPins {
			return nil
		}
		grouppins[ix] = d.Pins[number].(*expanderPin)
	}
	return &pinGroup{
		dev:         d,
		pins:        grouppins,
		defaultMask: gpio.GPIOValue((1 << len(pins)) - 1),
	}
}

// Pins returns the set of pin.Pin that make up that group.
func (pg *pinGroup) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(pg.pins))
	for ix, p := range pg.pins {
		pins[ix] = p
	}
	return pins
}

// Given the offset within the group, return the corresponding GPIO pin.
func (pg *pinGroup) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(pg.pins) {
		return nil
	}
	return pg.pins[offset]
}

// Given the specific name of a pin, return it. If it can't be found, nil is
// returned.
func (pg *pinGroup) ByName(name string) pin.Pin {
	for _, p := range pg.pins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Given the GPIO pin number, return that pin from the set.
func (pg *pinGroup) ByNumber(number int) pin.Pin {
	for _, p := range pg.pins {
		if p.Number() == number {
			return p
		}
	}
	return nil
}

// Out writes value to the specified pins of the group. If mask is 0, the
// default mask of all pins in the group is used. Pins configured as input
// are left untouched.
func (pg *pinGroup) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = pg.defaultMask
	} else {
		mask &= pg.defaultMask
	}
	d := pg.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	for bit, p := range pg.pins {
		if mask&(1<<bit) != 0 {
			d.write(p.number, value&(1<<bit) != 0)
		}
	}
	return nil
}

// Read returns the cached input state of the pins in the group, ANDed with
// mask.
func (pg *pinGroup) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = pg.defaultMask
	} else {
		mask &= pg.defaultMask
	}
	d := pg.dev
	d.mu.Lock()
	in := d.input
	d.mu.Unlock()
	var result gpio.GPIOValue
	for ix, p := range pg.pins {
		if in.Bit(p.number) {
			result |= 1 << ix
		}
	}
	return result & mask, nil
}

// WaitForEdge is not supported: the INT line of the chip does not tell which
// pin changed.
func (pg *pinGroup) WaitForEdge(timeout time.Duration) (number int, edge gpio.Edge, err error) {
	return -1, gpio.NoEdge, gpio.ErrGroupFeatureNotImplemented
}

func (pg *pinGroup) Halt() error {
	return nil
}

// String returns the device name and configured pins for the group.
func (pg *pinGroup) String() string {
	s := fmt.Sprintf("%s - [ ", pg.dev)
	for _, p := range pg.pins {
		s += fmt.Sprintf("%d ", p.number)
	}
	s += "]"
	return s
}

var _ gpio.Group = &pinGroup{}
