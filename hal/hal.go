package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Board pin ids. Every HAL exposes its GPIO pins in this order.
const (
	PinSerialIn = iota
	PinSerialClock
	PinShiftLoad
	PinButton

	boardPinCount
)

// Clock provides the fixed delays used to satisfy hardware timing.
//
// Delay never fails and never returns early.
type Clock interface {
	Delay(d time.Duration)
}

// HAL provides the only contact point between the monitor and the outside world.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	Display() CharDisplay
	Clock() Clock
}
