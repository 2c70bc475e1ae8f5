// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9555

import "time"

// irqWaitTimeout bounds how long stopIRQ waits for the watcher to notice.
const irqWaitTimeout = 100 * time.Millisecond

// watchIRQ starts the goroutine that waits for falling edges on the INT line.
//
// The goroutine acts as the interrupt handler: it must not touch anything
// but the updateInput flag, Step may hold d.mu for the duration of a bus
// transfer.
func (d *Dev) watchIRQ() {
	if d.irqStop != nil {
		return
	}
	d.irqStop = make(chan struct{})
	d.irqDone = make(chan struct{})
	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if d.irq.WaitForEdge(irqWaitTimeout) {
				d.updateInput.Store(true)
			}
		}
	}(d.irqStop, d.irqDone)
}

func (d *Dev) stopIRQ() {
	d.mu.Lock()
	stop, done := d.irqStop, d.irqDone
	d.irqStop, d.irqDone = nil, nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
}
