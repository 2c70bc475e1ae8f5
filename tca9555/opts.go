// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Address range selectable with the A0..A2 pins.
const (
	addrFirst uint16 = 0x20
	addrLast  uint16 = 0x27
)

// Opts is the setup time configuration of a Dev.
//
// The zero value of Outputs leaves every pin as input, which is also the
// power-on state of the chip.
type Opts struct {
	// Addr is the 7-bit I²C address, 0x20 to 0x27.
	Addr uint16
	// IRQ is the host pin wired to the open-drain INT line of the chip. When
	// nil, the input register is polled on every Step.
	IRQ gpio.PinIn
	// Outputs has a bit set for every pin driven as output.
	Outputs Bits
	// Inverted has a bit set for every input pin with inverted polarity.
	Inverted Bits
}

// DefaultOpts is the power-on configuration at the base address.
var DefaultOpts = Opts{
	Addr: addrFirst,
}

func (o *Opts) validate() error {
	if o.Addr < addrFirst || o.Addr > addrLast {
		return fmt.Errorf("tca9555: address 0x%02x not supported, want 0x%02x to 0x%02x", o.Addr, addrFirst, addrLast)
	}
	return nil
}
