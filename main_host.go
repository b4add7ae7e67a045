//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"busmon/app"
	"busmon/hal"
	"busmon/simapi"
	"busmon/stimulus"
	"busmon/translate"
)

type options struct {
	headless     hal.HeadlessConfig
	app          app.Config
	script       string
	httpAddr     string
	buttonPeriod time.Duration
	scale        int
}

func main() {
	opts := options{app: app.DefaultConfig()}
	flag.BoolVar(&opts.headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&opts.headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&opts.headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&opts.headless.EchoLCD, "echo-lcd", true, "Log the LCD rows when they change in headless mode.")
	flag.StringVar(&opts.script, "script", "", "Starlark stimulus script (empty = built-in default).")
	flag.StringVar(&opts.httpAddr, "http", "", "Serve the control API on this address, e.g. 127.0.0.1:8080.")
	flag.DurationVar(&opts.buttonPeriod, "button-period", 0, "Press the button automatically with this period (0 = off).")
	flag.DurationVar(&opts.app.PulseWidth, "pulse", opts.app.PulseWidth, "SH/LD and CLK pulse width.")
	flag.BoolVar(&opts.app.TraceBus, "trace-bus", false, "Log every bus change.")
	flag.DurationVar(&opts.app.BannerHold, "banner-hold", opts.app.BannerHold, "How long the start-up banner stays up.")
	flag.IntVar(&opts.scale, "scale", 3, "Window scale factor.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	h := hal.NewHost(hal.HostConfig{ButtonPeriod: opts.buttonPeriod})
	bench := h.(hal.Bench)
	log := h.Logger()

	script, err := loadScript(opts.script, log)
	if err != nil {
		return err
	}
	drv := stimulus.NewDriver(script, bench.Chain(), bench.Button(), log)

	newApp := func(h hal.HAL) (func() error, error) {
		step, mon, err := app.NewStep(h, opts.app)
		if err != nil {
			return nil, err
		}
		if opts.httpAddr != "" {
			api := simapi.NewServer(mon, drv, bench.LCD())
			if err := serve(ctx, opts.httpAddr, api.Handler(), log); err != nil {
				return nil, err
			}
		}
		return func() error {
			drv.Tick()
			return step()
		}, nil
	}

	if opts.headless.Enabled {
		return hal.RunHeadless(ctx, h, newApp, opts.headless)
	}
	return hal.RunWindow(h, newApp, hal.WindowConfig{
		Scale: opts.scale,
		OnButton: func(pressed bool) {
			if pressed {
				drv.Press()
			} else {
				drv.Release()
			}
		},
	})
}

func loadScript(path string, log hal.Logger) (*stimulus.Script, error) {
	print := func(msg string) {
		log.WriteLineString(translate.From("sim: script: %s", msg))
	}
	if path == "" {
		return stimulus.Load("default.star", stimulus.Default, print)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stimulus: %w", err)
	}
	return stimulus.Load(path, src, print)
}

// serve binds addr before returning so a bad address fails start-up, then
// serves until ctx is done.
func serve(ctx context.Context, addr string, handler http.Handler, log hal.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("sim: http: %w", err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WriteLineString(translate.From("sim: http listening on %s", ln.Addr().String()))

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WriteLineString(translate.From("sim: http: %v", err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return nil
}
