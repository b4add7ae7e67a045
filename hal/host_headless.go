//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// EchoLCD logs the LCD rows every time they change.
	EchoLCD bool
}

// RunHeadless drives the monitor without opening a window.
//
// newApp is called once with the HAL; the returned step runs once per tick.
func RunHeadless(ctx context.Context, h HAL, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	var grid *CharGrid
	if b, ok := h.(Bench); ok && cfg.EchoLCD {
		grid = b.LCD()
	}
	var shown uint64

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			if grid != nil {
				if v := grid.Version(); v != shown {
					shown = v
					h.Logger().WriteLineString("lcd: |" + strings.Join(grid.Rows(), "|") + "|")
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
