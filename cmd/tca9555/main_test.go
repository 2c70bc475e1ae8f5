// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/GermanBionicSystems/tca9555/tca9555"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func TestPinLevels(t *testing.T) {
	p := pinLevels{}
	if err := p.Set("0=1,15=false"); err != nil {
		t.Fatal(err)
	}
	if err := p.Set("3=true"); err != nil {
		t.Fatal(err)
	}
	want := pinLevels{0: gpio.High, 3: gpio.High, 15: gpio.Low}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
	if s := p.String(); s != "0=High,3=High,15=Low" {
		t.Errorf("unexpected String() %q", s)
	}
	for _, bad := range []string{"1", "16=1", "-1=0", "x=1", "2=maybe"} {
		if err := (pinLevels{}).Set(bad); err == nil {
			t.Errorf("Set(%q) should fail", bad)
		}
	}
}

func TestMakeOpts(t *testing.T) {
	opts, err := makeOpts(0x21, 0xFF00, 0x0003)
	if err != nil {
		t.Fatal(err)
	}
	want := tca9555.Opts{Addr: 0x21, Outputs: 0xFF00, Inverted: 0x0003}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("makeOpts() mismatch (-want +got):\n%s", diff)
	}
	for _, tc := range []struct{ addr, outputs, invert uint }{
		{0x10020, 0, 0},
		{0x20, 0x10000, 0},
		{0x20, 0, 0x10000},
	} {
		if _, err := makeOpts(tc.addr, tc.outputs, tc.invert); err == nil {
			t.Errorf("makeOpts(%#x, %#x, %#x) should fail", tc.addr, tc.outputs, tc.invert)
		}
	}
}
