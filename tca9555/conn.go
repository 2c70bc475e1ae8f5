// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import (
	"errors"

	"periph.io/x/conn/v3"
)

// portConn exposes the 16 pins as one 2 byte little endian word.
type portConn struct {
	dev *Dev
}

// Conn returns a half duplex conn.Conn over all 16 pins.
//
// A 2 byte write updates the output image, a 2 byte read returns the input
// image. As with the pins, input pins ignore writes and the chip itself is
// only accessed by Step.
func (d *Dev) Conn() conn.Conn {
	return &portConn{dev: d}
}

// Tx takes bytes to either read or write. Only half duplex is supported so
// it is an error to pass 2 buffers at once.
func (p *portConn) Tx(w, r []byte) error {
	switch {
	case len(w) > 0 && len(r) > 0:
		return errors.New("tca9555: only conn.Half duplex is supported")
	case len(w) > 0:
		if len(w) != 2 {
			return errors.New("tca9555: write must be 2 bytes")
		}
		v := decode(w)
		d := p.dev
		d.mu.Lock()
		for n := 0; n < NumPins; n++ {
			d.write(n, v.Bit(n))
		}
		d.mu.Unlock()
	case len(r) > 0:
		if len(r) != 2 {
			return errors.New("tca9555: read must be 2 bytes")
		}
		d := p.dev
		d.mu.Lock()
		buf := d.input.encode()
		d.mu.Unlock()
		copy(r, buf[:])
	}
	return nil
}

// Duplex returns that this is a half duplex connection.
func (p *portConn) Duplex() conn.Duplex {
	return conn.Half
}

// String provides the name of this connection.
func (p *portConn) String() string {
	return p.dev.name
}

var _ conn.Conn = &portConn{}
