// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tca9555 drives a TCA9555 I/O expander from the command line.
//
// It configures the chip, optionally sets output pins, then synchronizes the
// register images every -interval and shows the pins until interrupted.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/GermanBionicSystems/tca9555/pinview"
	"github.com/GermanBionicSystems/tca9555/tca9555"
	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// pinLevels is a list of pin=level assignments, e.g. 0=1,3=0.
type pinLevels map[int]gpio.Level

func (p pinLevels) String() string {
	var out []string
	for n := 0; n < tca9555.NumPins; n++ {
		if l, ok := p[n]; ok {
			out = append(out, fmt.Sprintf("%d=%s", n, l))
		}
	}
	return strings.Join(out, ",")
}

func (p pinLevels) Set(s string) error {
	for _, item := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(item, "=")
		if !ok {
			return fmt.Errorf("expected pin=level, got %q", item)
		}
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || n >= tca9555.NumPins {
			return fmt.Errorf("invalid pin %q", k)
		}
		l, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid level %q", v)
		}
		p[n] = gpio.Level(l)
	}
	return nil
}

// makeOpts converts the flags to tca9555.Opts, refusing values that do not
// fit in 16 bits.
func makeOpts(addr, outputs, invert uint) (tca9555.Opts, error) {
	if addr > 0xFFFF {
		return tca9555.Opts{}, fmt.Errorf("-addr 0x%x is not a valid I²C address", addr)
	}
	if outputs > 0xFFFF || invert > 0xFFFF {
		return tca9555.Opts{}, errors.New("-outputs and -invert are 16 bit masks")
	}
	return tca9555.Opts{
		Addr:     uint16(addr),
		Outputs:  tca9555.Bits(outputs),
		Inverted: tca9555.Bits(invert),
	}, nil
}

func mainImpl() error {
	i2cID := flag.String("i2c", "", "I²C bus to use")
	addr := flag.Uint("addr", 0x20, "I²C address of the expander")
	irq := flag.String("irq", "", "host GPIO wired to the INT line; polls the chip when empty")
	outputs := flag.Uint("outputs", 0, "bit mask of the pins used as output")
	invert := flag.Uint("invert", 0, "bit mask of the input pins with inverted polarity")
	interval := flag.Duration("interval", 50*time.Millisecond, "synchronization interval")
	count := flag.Int("n", 0, "number of synchronizations; 0 runs until interrupted")
	view := flag.Bool("view", true, "show the pins on the terminal")
	pngPath := flag.String("png", "", "write a panel of the final state to this PNG file")
	set := pinLevels{}
	flag.Var(set, "set", "output levels to write, e.g. 0=1,3=0")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	opts, err := makeOpts(*addr, *outputs, *invert)
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*i2cID)
	if err != nil {
		return err
	}
	defer bus.Close()

	if *irq != "" {
		p := gpioreg.ByName(*irq)
		if p == nil {
			return fmt.Errorf("invalid IRQ pin %q", *irq)
		}
		opts.IRQ = p
	}
	dev, err := tca9555.New(bus, &opts)
	if err != nil {
		return err
	}
	defer dev.Close()
	if err := dev.Init(); err != nil {
		_ = dev.Dump(os.Stderr)
		return err
	}
	for n, l := range set {
		if dev.Direction(n) != gpio.OUT {
			glog.Warningf("pin %d is an input, ignoring -set", n)
			continue
		}
		_ = dev.Pins[n].Out(l)
	}

	var pv *pinview.Dev
	if *view {
		pv = pinview.New(&pinview.Opts{})
		defer func() {
			if pv != nil {
				_ = pv.Halt()
			}
		}()
	}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
loop:
	for i := 0; *count == 0 || i < *count; i++ {
		if err := dev.Step(); errors.Is(err, tca9555.ErrFailed) {
			return err
		} else if err != nil {
			glog.V(1).Info(err)
		}
		if pv != nil {
			s := dev.Snapshot()
			if err := pv.Show(&s); err != nil {
				return err
			}
		}
		select {
		case <-interrupt:
			break loop
		case <-ticker.C:
		}
	}

	if pv != nil {
		_ = pv.Halt()
		pv = nil
	}
	if err := dev.Dump(os.Stdout); err != nil {
		return err
	}
	if *pngPath != "" {
		s := dev.Snapshot()
		f, err := os.Create(*pngPath)
		if err != nil {
			return err
		}
		if err := png.Encode(f, pinview.Render(&s)); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}

func main() {
	defer glog.Flush()
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "tca9555: %s.\n", err)
		glog.Flush()
		os.Exit(1)
	}
}
