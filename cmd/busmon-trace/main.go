//go:build !tinygo

// Command busmon-trace replays a stimulus script through the monitor on the
// simulated bench and prints the LCD after each step that changed it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"busmon/app"
	"busmon/hal"
	"busmon/stimulus"
)

type traceConfig struct {
	ticks uint64
	every uint64
	log   bool
}

func main() {
	var scriptPath string
	var cfg traceConfig
	flag.StringVar(&scriptPath, "script", "", "Starlark stimulus script (empty = built-in default).")
	flag.Uint64Var(&cfg.ticks, "ticks", 240, "Number of cycles to run.")
	flag.Uint64Var(&cfg.every, "every", 0, "Print every N cycles instead of on change.")
	flag.BoolVar(&cfg.log, "log", false, "Interleave monitor log lines.")
	flag.Parse()

	name, src := "default.star", any(stimulus.Default)
	if scriptPath != "" {
		b, err := os.ReadFile(scriptPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		name, src = scriptPath, b
	}

	if err := run(os.Stdout, name, src, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, name string, src any, cfg traceConfig) error {
	logOut := io.Discard
	if cfg.log {
		logOut = w
	}
	h := hal.NewHost(hal.HostConfig{Out: logOut})
	bench := h.(hal.Bench)

	script, err := stimulus.Load(name, src, func(msg string) {
		h.Logger().WriteLineString("sim: script: " + msg)
	})
	if err != nil {
		return err
	}
	drv := stimulus.NewDriver(script, bench.Chain(), bench.Button(), h.Logger())

	acfg := app.DefaultConfig()
	acfg.BannerHold = 0
	acfg.PulseWidth = 1
	m, err := app.New(h, acfg)
	if err != nil {
		return err
	}

	lcd := bench.LCD()
	var shown uint64
	for tick := uint64(0); tick < cfg.ticks; tick++ {
		drv.Tick()
		m.Step()

		if cfg.every > 0 {
			if tick%cfg.every != 0 {
				continue
			}
		} else if v := lcd.Version(); v == shown {
			continue
		} else {
			shown = v
		}

		snap := m.Snapshot()
		fmt.Fprintf(w, "tick %d bus %s sel %d\n", tick, snap.Bus, snap.Selector)
		for _, row := range lcd.Rows() {
			fmt.Fprintf(w, "|%s|\n", row)
		}
	}
	return nil
}
