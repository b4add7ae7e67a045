//go:build !tinygo

package stimulus

import (
	"sync"

	"busmon/hal"
)

// Status is a snapshot of the driver's override state.
type Status struct {
	Tick         uint64
	Pinned       bool
	Pin          uint32
	ManualButton bool
}

// Driver applies a script to the simulated chain inputs and button once per
// tick. Manual overrides (Pin, Press, Release, Click) win over the script
// until they are handed back with Unpin or Auto. All methods are safe to call
// from any goroutine.
type Driver struct {
	mu     sync.Mutex
	script *Script
	chain  *hal.HC165Chain
	button *hal.VirtualPin
	log    hal.Logger

	tick uint64

	pinned bool
	pin    uint32

	manual bool
	click  int

	busFailing    bool
	buttonFailing bool
}

// NewDriver binds script to the bench. A nil script leaves the inputs to the
// manual overrides.
func NewDriver(script *Script, chain *hal.HC165Chain, button *hal.VirtualPin, log hal.Logger) *Driver {
	return &Driver{script: script, chain: chain, button: button, log: log}
}

// Tick applies the inputs for the current tick and advances it. Call it once
// before every monitor step.
func (d *Driver) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.pinned:
		d.chain.SetInputs(d.pin)
	case d.script != nil:
		v, err := d.script.Bus(d.tick)
		if err != nil {
			d.fail(&d.busFailing, err)
			break
		}
		d.busFailing = false
		d.chain.SetInputs(v)
	}

	switch {
	case d.manual:
		if d.click > 0 {
			d.click--
			if d.click == 0 {
				d.button.Drive(false)
			}
		}
	case d.script != nil:
		level, ok, err := d.script.Button(d.tick)
		if err != nil {
			d.fail(&d.buttonFailing, err)
			break
		}
		d.buttonFailing = false
		if ok {
			d.button.Drive(level)
		}
	}

	d.tick++
}

// fail logs err the first time in a run of failures. The inputs keep their
// last good value.
func (d *Driver) fail(failing *bool, err error) {
	if *failing {
		return
	}
	*failing = true
	if d.log != nil {
		d.log.WriteLineString("sim: " + err.Error())
	}
}

// Pin holds the parallel inputs at v.
func (d *Driver) Pin(v uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pinned = true
	d.pin = v
	d.chain.SetInputs(v)
}

// Unpin hands the parallel inputs back to the script from the next tick.
func (d *Driver) Unpin() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pinned = false
}

// Press drives the button high until Release or Auto.
func (d *Driver) Press() {
	d.setButton(true, 0)
}

// Release drives the button low.
func (d *Driver) Release() {
	d.setButton(false, 0)
}

// Click holds the button high for one tick and releases it on the next, so
// the monitor sees both levels.
func (d *Driver) Click() {
	d.setButton(true, 2)
}

// Auto hands the button back to the script, or leaves it low when the script
// does not drive it.
func (d *Driver) Auto() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.manual = false
	d.click = 0
	if d.script == nil || !d.script.HasButton() {
		d.button.Drive(false)
	}
}

func (d *Driver) setButton(level bool, click int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.manual = true
	d.click = click
	d.button.Drive(level)
}

// Status returns the current override state.
func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Status{
		Tick:         d.tick,
		Pinned:       d.pinned,
		Pin:          d.pin,
		ManualButton: d.manual,
	}
}
