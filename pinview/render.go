// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinview

import (
	"image"
	"strconv"

	"github.com/GermanBionicSystems/tca9555/tca9555"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Panel geometry, in pixels.
const (
	cellSize    = 32
	cellPad     = 4
	lineHeight  = 16
	panelWidth  = tca9555.NumPins*cellSize + 2*cellPad
	panelHeight = cellSize + 7*lineHeight + 3*cellPad
)

// Render draws a diagnostic panel of s: one cell per pin, pin 0 on the left,
// followed by the register images.
func Render(s *tca9555.Snapshot) image.Image {
	dc := gg.NewContext(panelWidth, panelHeight)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for n := 0; n < tca9555.NumPins; n++ {
		x := float64(cellPad + n*cellSize)
		dc.SetColor(PinColor(s, n))
		dc.DrawRectangle(x+1, cellPad, cellSize-2, cellSize-2)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(strconv.Itoa(n), x+cellSize/2, cellPad+cellSize/2, 0.5, 0.5)
	}

	lines := []string{
		s.Name + " @ 0x" + strconv.FormatUint(uint64(s.Addr), 16),
		"Inputs       : " + s.Input.String(),
		"Outputs      : " + s.Output.String(),
		"Polarity     : " + s.Polarity.String(),
		"Configuration: " + s.Configuration.String(),
	}
	if s.IRQ != "" {
		lines = append(lines, "IRQ pin: "+s.IRQ)
	}
	if s.Failed {
		lines = append(lines, "Communication failed!")
	} else if s.Warning != nil {
		lines = append(lines, "Warning: "+s.Warning.Error())
	}
	y := float64(2*cellPad + cellSize + lineHeight)
	for _, l := range lines {
		dc.DrawString(l, cellPad, y)
		y += lineHeight
	}
	return dc.Image()
}
