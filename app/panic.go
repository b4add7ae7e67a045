package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"busmon/hal"
)

func haltOnPanic(h hal.HAL) {
	r := recover()
	if r == nil {
		return
	}
	if l := h.Logger(); l != nil {
		for _, line := range strings.Split(string(debug.Stack()), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}
	halt(h, fmt.Sprintf("panic: %v", r), true)
}

// halt reports msg on the log, and on the display when it is known to be up,
// then blocks forever.
func halt(h hal.HAL, msg string, onDisplay bool) {
	if l := h.Logger(); l != nil {
		l.WriteLineString("busmon: halted: " + msg)
	}
	if d := h.Display(); d != nil && onDisplay {
		d.Clear()
		d.PutString("HALT")
		d.MoveCursor(0, 1)
		if len(msg) > 16 {
			msg = msg[:16]
		}
		d.PutString(msg)
	}
	select {}
}
