//go:build !tinygo

package stimulus

import (
	"errors"

	"busmon/translate"
)

var f = translate.From

var (
	ErrNoBus       = errors.New(f("script defines no bus(tick)"))
	ErrNotCallable = errors.New(f("not callable"))
	ErrLaneRange   = errors.New(f("lane value out of range"))
)

// ErrResult reports a script function returning the wrong type.
type ErrResult struct {
	Func string
	Type string
}

func (err *ErrResult) Error() string {
	return f("%v() returned %v, want int", err.Func, err.Type)
}

// ErrCall locates a runtime failure inside the script.
type ErrCall struct {
	Func string
	Tick uint64
	Err  error
}

func (err *ErrCall) Error() string {
	return f("%v(%v): %v", err.Func, err.Tick, err.Err)
}

func (err *ErrCall) Unwrap() error {
	return err.Err
}
