//go:build !tinygo

// Package stimulus drives the simulated bench from a Starlark script.
//
// A script defines bus(tick), returning the 32-bit word on the parallel
// inputs for that tick, and may define button(tick), returning the button
// level. The predeclared lanes(a, b, c, d) builds a word from four bytes,
// a being the most significant. Globals are frozen after load, so both
// functions are pure in tick.
package stimulus

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"busmon/bus"
)

// maxSteps bounds a single call so a runaway script cannot stall the loop.
const maxSteps = 1 << 20

// Default walks a one through the low lane, counts in lane 2 and clicks the
// button every four seconds at 60 Hz.
const Default = `
def bus(tick):
    n = tick // 30
    return lanes(0xDE, 0xAD, n % 256, 1 << (n % 8))

def button(tick):
    return tick % 240 < 10
`

// Script is a loaded stimulus.
type Script struct {
	name   string
	bus    starlark.Callable
	button starlark.Callable
	print  func(string)
}

// Load compiles and runs src. src may be a string, []byte or io.Reader, as
// accepted by starlark. print receives the output of print(); nil discards it.
func Load(filename string, src any, print func(string)) (*Script, error) {
	s := &Script{name: filename, print: print}

	thread := s.thread("load")
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, starlark.StringDict{
		"lanes": starlark.NewBuiltin("lanes", lanes),
	})
	if err != nil {
		return nil, fmt.Errorf("stimulus: %s: %w", filename, err)
	}
	globals.Freeze()

	s.bus, err = callable(globals, "bus")
	if err != nil {
		return nil, fmt.Errorf("stimulus: %s: bus: %w", filename, err)
	}
	if s.bus == nil {
		return nil, fmt.Errorf("stimulus: %s: %w", filename, ErrNoBus)
	}
	s.button, err = callable(globals, "button")
	if err != nil {
		return nil, fmt.Errorf("stimulus: %s: button: %w", filename, err)
	}
	return s, nil
}

// Name returns the filename the script was loaded from.
func (s *Script) Name() string { return s.name }

// HasButton reports whether the script drives the button.
func (s *Script) HasButton() bool { return s.button != nil }

// Bus evaluates bus(tick). Only the low 32 bits of the result are kept.
func (s *Script) Bus(tick uint64) (uint32, error) {
	v, err := starlark.Call(s.thread("bus"), s.bus, starlark.Tuple{starlark.MakeUint64(tick)}, nil)
	if err != nil {
		return 0, &ErrCall{Func: "bus", Tick: tick, Err: err}
	}
	i, ok := v.(starlark.Int)
	if !ok {
		return 0, &ErrCall{Func: "bus", Tick: tick, Err: &ErrResult{Func: "bus", Type: v.Type()}}
	}
	if n, ok := i.Int64(); ok {
		return uint32(n), nil
	}
	if n, ok := i.Uint64(); ok {
		return uint32(n), nil
	}
	return uint32(i.BigInt().Uint64()), nil
}

// Button evaluates button(tick). ok is false when the script has no button
// function.
func (s *Script) Button(tick uint64) (level, ok bool, err error) {
	if s.button == nil {
		return false, false, nil
	}
	v, err := starlark.Call(s.thread("button"), s.button, starlark.Tuple{starlark.MakeUint64(tick)}, nil)
	if err != nil {
		return false, true, &ErrCall{Func: "button", Tick: tick, Err: err}
	}
	return bool(v.Truth()), true, nil
}

func (s *Script) thread(name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name: s.name + ":" + name,
		Print: func(_ *starlark.Thread, msg string) {
			if s.print != nil {
				s.print(msg)
			}
		},
	}
	thread.SetMaxExecutionSteps(maxSteps)
	return thread
}

func callable(globals starlark.StringDict, name string) (starlark.Callable, error) {
	v, ok := globals[name]
	if !ok {
		return nil, nil
	}
	fn, ok := v.(starlark.Callable)
	if !ok {
		return nil, ErrNotCallable
	}
	return fn, nil
}

func lanes(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var l [bus.Lanes]int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, bus.Lanes, &l[0], &l[1], &l[2], &l[3]); err != nil {
		return nil, err
	}
	var bytes [bus.Lanes]byte
	for i, n := range l {
		if n < 0 || n > 0xFF {
			return nil, fmt.Errorf("%s: lane %d = %d: %w", b.Name(), i, n, ErrLaneRange)
		}
		bytes[i] = byte(n)
	}
	return starlark.MakeUint64(uint64(bus.FromLanes(bytes).Word())), nil
}
