// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinview renders the pins of a TCA9555 as a 16 LED strip on the
// terminal (stdout) using ANSI color codes, or as a panel image.
//
// Useful to watch an expander from a shell while wiring it.
package pinview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/tca9555/tca9555"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Colors used for each pin state.
var (
	InputHigh  = color.NRGBA{0x00, 0xd0, 0x00, 0xff}
	InputLow   = color.NRGBA{0x00, 0x30, 0x00, 0xff}
	OutputHigh = color.NRGBA{0xff, 0x80, 0x00, 0xff}
	OutputLow  = color.NRGBA{0x40, 0x20, 0x00, 0xff}
	Failed     = color.NRGBA{0x60, 0x60, 0x60, 0xff}
)

// PinColor returns the color showing pin n of s.
//
// Inputs show the input register, outputs the output latch.
func PinColor(s *tca9555.Snapshot, n int) color.NRGBA {
	switch {
	case s.Failed:
		return Failed
	case s.Configuration.Bit(n) && s.Input.Bit(n):
		return InputHigh
	case s.Configuration.Bit(n):
		return InputLow
	case s.Output.Bit(n):
		return OutputHigh
	default:
		return OutputLow
	}
}

// Opts represents the options available for this display.
type Opts struct {
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a 16 LED strip emulator that outputs to the console, pin 0 on the
// left.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	pixels [3 * tca9555.NumPins]byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{
		w:       colorable.NewColorableStdout(),
		palette: *p,
	}
}

func (d *Dev) String() string {
	return "PinView"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves to the next line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Strip returns the pins of s as a 16x1 image, pin 0 on the left.
func Strip(s *tca9555.Snapshot) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tca9555.NumPins, 1))
	for n := 0; n < tca9555.NumPins; n++ {
		img.SetNRGBA(n, 0, PinColor(s, n))
	}
	return img
}

// Show displays the pins of s.
func (d *Dev) Show(s *tca9555.Snapshot) error {
	return d.Draw(d.Bounds(), Strip(s), image.Point{})
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: tca9555.NumPins, Y: 1}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		r16, g16, b16, _ := src.At(sX, srcR.Min.Y).RGBA()
		dX3 := 3*sX + deltaX3
		d.pixels[dX3] = byte(r16 >> 8)
		d.pixels[dX3+1] = byte(g16 >> 8)
		d.pixels[dX3+2] = byte(b16 >> 8)
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < len(d.pixels)/3; i++ {
		c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
