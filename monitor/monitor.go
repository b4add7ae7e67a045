// Package monitor runs the acquisition, selection and refresh cycle.
package monitor

import (
	"fmt"
	"sync"

	"busmon/bus"
	"busmon/hal"
	"busmon/lcd"
	"busmon/selector"
	"busmon/shiftreg"
)

// State is everything the cycle carries from one step to the next.
type State struct {
	Bus      bus.Value
	Previous bus.Value
	Button   selector.Debouncer
	Dirty    bool
}

// Stats counts cycle events since start-up.
type Stats struct {
	Cycles      uint64
	HexRepaints uint64
	Advances    uint64
}

// Snapshot is a copy of the state published after every step.
type Snapshot struct {
	Bus      bus.Value
	Previous bus.Value
	Selector selector.Index
	Button   bool
	Stats    Stats
}

// Options tune a Monitor.
type Options struct {
	// TraceBus logs every hex repaint, not just selector changes.
	TraceBus bool
}

// Monitor owns the cycle state. Step must only be called from one goroutine;
// Snapshot may be called from any.
type Monitor struct {
	sampler *shiftreg.Sampler
	button  hal.Line
	refresh *lcd.Refresher
	log     hal.Logger
	opts    Options

	state State
	stats Stats

	mu   sync.Mutex
	snap Snapshot
}

func New(sampler *shiftreg.Sampler, button hal.Line, refresh *lcd.Refresher, log hal.Logger, opts Options) *Monitor {
	return &Monitor{
		sampler: sampler,
		button:  button,
		refresh: refresh,
		log:     log,
		opts:    opts,
	}
}

// Step runs one cycle: selector update, bus sample, dirty check, hex repaint
// when dirty, binary repaint always.
func (m *Monitor) Step() {
	sel, advanced := m.state.Button.Update(m.button.Get())
	m.state.Bus = m.sampler.Sample()
	m.state.Dirty = m.state.Bus != m.state.Previous || advanced

	dirty := m.state.Dirty
	m.refresh.Refresh(m.state.Bus, &m.state.Previous, sel, dirty)
	m.state.Dirty = false

	m.stats.Cycles++
	if advanced {
		m.stats.Advances++
		m.logf("busmon: lane %d selected", bus.Lanes-1-int(sel))
	}
	if dirty {
		m.stats.HexRepaints++
		if m.opts.TraceBus {
			m.logf("busmon: bus %s", m.state.Bus)
		}
	}

	m.publish()
}

// State returns a copy of the cycle state.
func (m *Monitor) State() State { return m.state }

// Snapshot returns the state as of the last completed step.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *Monitor) publish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = Snapshot{
		Bus:      m.state.Bus,
		Previous: m.state.Previous,
		Selector: m.state.Button.Selector(),
		Button:   m.state.Button.Level(),
		Stats:    m.stats,
	}
}

func (m *Monitor) logf(format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.WriteLineString(fmt.Sprintf(format, args...))
}
