// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import (
	"encoding/binary"
	"strconv"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
)

// Register addresses of the first port of each pair. The chip auto-increments
// to the second port, so a 2 byte transfer covers all 16 pins.
const (
	regInput    uint8 = 0x00
	regOutput   uint8 = 0x02
	regPolarity uint8 = 0x04
	regConfig   uint8 = 0x06
)

// NumPins is the number of I/O lines on the chip.
const NumPins = 16

// Bits is an in-memory image of one 16-bit register. Bit i maps to pin i, pin
// 0 being the least significant bit of port 0.
type Bits uint16

// Bit returns the value of bit n. Out of range indexes read as false.
func (b Bits) Bit(n int) bool {
	if n < 0 || n >= NumPins {
		return false
	}
	return b&(1<<uint(n)) != 0
}

// With returns b with bit n set to v. Out of range indexes leave b unchanged.
func (b Bits) With(n int, v bool) Bits {
	if n < 0 || n >= NumPins {
		return b
	}
	if v {
		return b | 1<<uint(n)
	}
	return b &^ (1 << uint(n))
}

// String returns the image as a binary string, pin 15 first.
func (b Bits) String() string {
	s := strconv.FormatUint(uint64(b), 2)
	for len(s) < NumPins {
		s = "0" + s
	}
	return s
}

// encode packs the image as the little endian payload the chip expects.
func (b Bits) encode() [2]byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(b))
	return buf
}

func decode(buf []byte) Bits {
	return Bits(binary.LittleEndian.Uint16(buf))
}

// registerFile performs 16-bit register transfers with the chip.
type registerFile struct {
	i2c *i2c.Dev
}

func (r *registerFile) write(reg uint8, value Bits) error {
	glog.V(2).Infof("tca9555: 0x%02x: write reg 0x%02x=%s", r.i2c.Addr, reg, value)
	p := value.encode()
	return r.i2c.Tx([]byte{reg, p[0], p[1]}, nil)
}

func (r *registerFile) read(reg uint8) (Bits, error) {
	var rx [2]byte
	if err := r.i2c.Tx([]byte{reg}, rx[:]); err != nil {
		return 0, err
	}
	v := decode(rx[:])
	glog.V(2).Infof("tca9555: 0x%02x: read reg 0x%02x=%s", r.i2c.Addr, reg, v)
	return v, nil
}
