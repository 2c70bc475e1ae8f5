// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tca9555 provides an interface to the Texas Instruments TCA9555
// 16-bit I²C I/O expander, addresses 0x20 to 0x27.
//
// The driver keeps an in-memory image of the input, output, polarity and
// configuration registers. Pin operations only touch these images; Step
// pushes the output image to the chip when it changed and refreshes the input
// image, either on every call or, when the INT line of the chip is wired to a
// host pin, only after a falling edge was seen on it.
//
// Both gpio.Pin and conn.Conn interfaces are supported.
//
// Datasheet
//
//	https://www.ti.com/lit/gpn/tca9555
package tca9555

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/pin"
)

// ErrFailed is returned once the chip could not be set up. The Dev never
// leaves this state.
var ErrFailed = errors.New("tca9555: communication failed")

// Dev is a TCA9555 I/O expander.
//
// The Dev must outlive every Pin, Group and Conn obtained from it.
type Dev struct {
	// Pins holds the 16 I/O lines indexed by pin number.
	Pins [NumPins]Pin

	regs registerFile
	name string
	irq  gpio.PinIn

	// updateInput is the only state written by the IRQ goroutine.
	updateInput atomic.Bool

	mu           sync.Mutex
	input        Bits
	output       Bits
	polarity     Bits
	config       Bits // set = input
	updateOutput bool
	failed       bool
	outputErr    error
	inputErr     error
	configErr    error

	irqStop  chan struct{}
	irqDone  chan struct{}
	shutdown chan struct{}
	runDone  chan struct{}

	// registered marks the pins this Dev added to gpioreg. Another Dev with
	// the same name keeps its own pins.
	registered [NumPins]bool
}

// New returns a Dev that communicates over I²C with a TCA9555.
//
// No bus transfer happens until Init is called, so pins can still be
// configured in between. The pins are registered in gpioreg as
// TCA9555_<addr>_<n>.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		regs:     registerFile{i2c: &i2c.Dev{Bus: bus, Addr: opts.Addr}},
		name:     "TCA9555_" + strconv.FormatInt(int64(opts.Addr), 16),
		irq:      opts.IRQ,
		polarity: opts.Inverted,
		config:   ^opts.Outputs,
	}
	for i := range d.Pins {
		d.Pins[i] = &expanderPin{dev: d, number: i}
		if err := gpioreg.Register(d.Pins[i]); err != nil {
			glog.Warningf("tca9555: %v", err)
			continue
		}
		d.registered[i] = true
	}
	return d, nil
}

// String returns the device name, TCA9555_<addr>.
func (d *Dev) String() string {
	return d.name
}

// Init attaches the IRQ pin when one was given and writes the polarity and
// configuration images to the chip.
//
// Any failure is fatal: the Dev enters the failed state, Step becomes a no-op
// and ErrFailed is returned from then on. The IRQ watcher is stopped.
func (d *Dev) Init() error {
	d.mu.Lock()
	err := d.init()
	failed := d.failed
	d.mu.Unlock()
	if failed {
		d.stopIRQ()
	}
	return err
}

func (d *Dev) init() error {
	if d.failed {
		return ErrFailed
	}
	glog.Infof("tca9555: %s: setting up I/O expander", d.name)
	if d.irq != nil {
		glog.Infof("tca9555: %s: IRQ pin %s", d.name, d.irq)
		if err := d.irq.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			return d.fail(fmt.Errorf("tca9555: configure IRQ pin %s: %w", d.irq, err))
		}
		d.watchIRQ()
	}
	glog.Infof("tca9555: %s: polarity %s", d.name, d.polarity)
	if err := d.regs.write(regPolarity, d.polarity); err != nil {
		return d.fail(fmt.Errorf("tca9555: write polarity: %w", err))
	}
	glog.Infof("tca9555: %s: configuration %s", d.name, d.config)
	if err := d.regs.write(regConfig, d.config); err != nil {
		return d.fail(fmt.Errorf("tca9555: write configuration: %w", err))
	}
	d.updateInput.Store(true)
	d.updateOutput = true
	return nil
}

func (d *Dev) fail(err error) error {
	glog.Errorf("%v", err)
	d.failed = true
	return err
}

// Step synchronizes the register images with the chip.
//
// The output image is written when a pin changed it. The input image is read
// when it is stale: after Init, after each output write, after an IRQ edge and,
// without IRQ pin, on every call. Bus errors are kept as warnings and retried
// on the next call; they are also returned for logging.
//
// Step must not be called concurrently with itself.
func (d *Dev) Step() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failed {
		return ErrFailed
	}
	var errs []error
	if d.updateOutput {
		if err := d.regs.write(regOutput, d.output); err != nil {
			err = fmt.Errorf("tca9555: write output: %w", err)
			d.warn(&d.outputErr, err)
			errs = append(errs, err)
		} else {
			d.warn(&d.outputErr, nil)
			d.updateOutput = false
			// Pins driven by the output latch are visible in the input port.
			d.updateInput.Store(true)
		}
	}
	if d.updateInput.Load() {
		if d.irq != nil {
			// Cleared before the read so an edge arriving meanwhile is kept.
			d.updateInput.Store(false)
		}
		v, err := d.regs.read(regInput)
		if err != nil {
			err = fmt.Errorf("tca9555: read input: %w", err)
			d.warn(&d.inputErr, err)
			errs = append(errs, err)
		} else {
			d.warn(&d.inputErr, nil)
			d.input = v
		}
	}
	return errors.Join(errs...)
}

// warn stores err in slot, logging only the transitions.
func (d *Dev) warn(slot *error, err error) {
	switch {
	case err != nil && *slot == nil:
		glog.Warningf("%s: %v", d.name, err)
	case err == nil && *slot != nil:
		glog.Infof("tca9555: %s: recovered from %v", d.name, *slot)
	}
	*slot = err
}

// WriteConfig writes the current polarity and configuration images to the
// chip.
//
// Changing a pin direction or polarity after Init only updates the images;
// call WriteConfig to apply them. A failure is reported as a warning and does
// not put the Dev in the failed state.
func (d *Dev) WriteConfig() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failed {
		return ErrFailed
	}
	err := d.regs.write(regPolarity, d.polarity)
	if err == nil {
		err = d.regs.write(regConfig, d.config)
	}
	if err != nil {
		err = fmt.Errorf("tca9555: write config: %w", err)
	}
	d.warn(&d.configErr, err)
	return err
}

// Failed returns true if Init failed.
func (d *Dev) Failed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failed
}

// Warning returns the pending bus errors, or nil once every kind of transfer
// succeeded again.
func (d *Dev) Warning() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Join(d.outputErr, d.inputErr, d.configErr)
}

// SetDirection marks the pin as input or output in the configuration image.
func (d *Dev) SetDirection(n int, input bool) {
	d.mu.Lock()
	d.config = d.config.With(n, input)
	d.mu.Unlock()
}

// SetInverted sets the polarity inversion of the pin in the polarity image.
func (d *Dev) SetInverted(n int, inverted bool) {
	d.mu.Lock()
	d.polarity = d.polarity.With(n, inverted)
	d.mu.Unlock()
}

// Inverted returns the polarity inversion of the pin.
func (d *Dev) Inverted(n int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.polarity.Bit(n)
}

// Direction returns gpio.IN or gpio.OUT.
func (d *Dev) Direction(n int) pin.Func {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.config.Bit(n) {
		return gpio.IN
	}
	return gpio.OUT
}

// DigitalRead returns the pin level as of the last successful input read.
func (d *Dev) DigitalRead(n int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.input.Bit(n)
}

// DigitalWrite sets the output latch of the pin. The chip is updated on the
// next Step.
//
// Writes to input pins and writes of the current value are ignored.
func (d *Dev) DigitalWrite(n int, v bool) {
	d.mu.Lock()
	d.write(n, v)
	d.mu.Unlock()
}

func (d *Dev) write(n int, v bool) {
	if d.config.Bit(n) || n < 0 || n >= NumPins || d.output.Bit(n) == v {
		return
	}
	d.output = d.output.With(n, v)
	d.updateOutput = true
}

// RunContinuous calls Step every interval in a goroutine until Halt is
// called or the Dev fails.
func (d *Dev) RunContinuous(interval time.Duration) error {
	if interval <= 0 {
		return errors.New("tca9555: interval must be positive")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failed {
		return ErrFailed
	}
	if d.shutdown != nil {
		return errors.New("tca9555: RunContinuous already running")
	}
	d.shutdown = make(chan struct{})
	d.runDone = make(chan struct{})
	go d.run(interval, d.shutdown, d.runDone)
	return nil
}

func (d *Dev) run(interval time.Duration, shutdown <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			if err := d.Step(); errors.Is(err, ErrFailed) {
				return
			}
		}
	}
}

// Halt stops RunContinuous. The pins keep their state.
func (d *Dev) Halt() error {
	d.mu.Lock()
	shutdown, done := d.shutdown, d.runDone
	d.shutdown, d.runDone = nil, nil
	d.mu.Unlock()
	if shutdown != nil {
		close(shutdown)
		<-done
	}
	return nil
}

// Close halts the Dev, detaches the IRQ pin and removes the pins from gpioreg.
func (d *Dev) Close() error {
	if err := d.Halt(); err != nil {
		return err
	}
	d.stopIRQ()
	for i, p := range d.Pins {
		if !d.registered[i] {
			continue
		}
		if err := gpioreg.Unregister(p.Name()); err != nil {
			return err
		}
		d.registered[i] = false
	}
	return nil
}
