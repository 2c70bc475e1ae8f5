// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555_test

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/tca9555/tca9555"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	// The INT line of the expander is wired to GPIO17 of the host.
	opts := tca9555.DefaultOpts
	opts.IRQ = gpioreg.ByName("GPIO17")
	// Pins 0 to 7 drive LEDs, 8 to 15 read buttons.
	opts.Outputs = 0x00FF
	extender, err := tca9555.New(bus, &opts)
	if err != nil {
		log.Fatalln(err)
	}
	defer extender.Close()

	if err := extender.Init(); err != nil {
		log.Fatalln(err)
	}
	if err := extender.RunContinuous(20 * time.Millisecond); err != nil {
		log.Fatalln(err)
	}

	for i := 0; i < 50; i++ {
		for n := 8; n < tca9555.NumPins; n++ {
			// Light the LED facing each pressed button.
			_ = extender.Pins[n-8].Out(extender.Pins[n].Read() == gpio.Low)
		}
		time.Sleep(100 * time.Millisecond)
	}
	fmt.Printf("warnings: %v\n", extender.Warning())
	_ = extender.Dump(os.Stdout)
}
