// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Snapshot is a copy of the state of a Dev.
type Snapshot struct {
	Name          string
	Addr          uint16
	IRQ           string // empty without IRQ pin
	Input         Bits
	Output        Bits
	Polarity      Bits
	Configuration Bits
	UpdateInput   bool
	UpdateOutput  bool
	Failed        bool
	Warning       error
}

// Snapshot returns the current register images and status.
func (d *Dev) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Snapshot{
		Name:          d.name,
		Addr:          d.regs.i2c.Addr,
		Input:         d.input,
		Output:        d.output,
		Polarity:      d.polarity,
		Configuration: d.config,
		UpdateInput:   d.updateInput.Load(),
		UpdateOutput:  d.updateOutput,
		Failed:        d.failed,
		Warning:       errors.Join(d.outputErr, d.inputErr, d.configErr),
	}
	if d.irq != nil {
		s.IRQ = d.irq.String()
	}
	return s
}

// Dump writes a human readable description of the Dev to w.
func (d *Dev) Dump(w io.Writer) error {
	s := d.Snapshot()
	var b strings.Builder
	b.WriteString("TCA9555:\n")
	fmt.Fprintf(&b, "  Address: 0x%02x\n", s.Addr)
	if s.IRQ != "" {
		fmt.Fprintf(&b, "  IRQ pin: %s\n", s.IRQ)
	}
	fmt.Fprintf(&b, "  Inputs       : %s\n", s.Input)
	fmt.Fprintf(&b, "  Outputs      : %s\n", s.Output)
	fmt.Fprintf(&b, "  Polarity     : %s\n", s.Polarity)
	fmt.Fprintf(&b, "  Configuration: %s\n", s.Configuration)
	if s.Failed {
		b.WriteString("  Communication failed!\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
