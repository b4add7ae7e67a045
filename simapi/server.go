//go:build !tinygo

// Package simapi serves an HTTP control API for the host simulator: it
// reports the monitor state and lets a client pin the bus inputs and work the
// button.
package simapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"busmon/bus"
	"busmon/monitor"
	"busmon/stimulus"
)

var ErrBusValue = errors.New("bus value must be a 32-bit decimal or hex number")

// Monitor publishes the state of the running cycle.
type Monitor interface {
	Snapshot() monitor.Snapshot
}

// Driver owns the simulated inputs.
type Driver interface {
	Pin(v uint32)
	Unpin()
	Press()
	Release()
	Click()
	Auto()
	Status() stimulus.Status
}

// Screen exposes the LCD contents.
type Screen interface {
	Rows() []string
}

// Server implements ServerInterface over a running simulator.
type Server struct {
	mon    Monitor
	drv    Driver
	screen Screen
}

func NewServer(mon Monitor, drv Driver, screen Screen) *Server {
	return &Server{mon: mon, drv: drv, screen: screen}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err)
		},
	})
}

// Stats mirrors monitor.Stats.
type Stats struct {
	Cycles      uint64 `json:"cycles"`
	HexRepaints uint64 `json:"hex_repaints"`
	Advances    uint64 `json:"advances"`
}

// Stimulus mirrors stimulus.Status.
type Stimulus struct {
	Tick         uint64 `json:"tick"`
	Pinned       bool   `json:"pinned"`
	Pin          string `json:"pin,omitempty"`
	ManualButton bool   `json:"manual_button"`
}

// State is the body of GET /state.
type State struct {
	Bus      string   `json:"bus"`
	Word     uint32   `json:"word"`
	Lanes    []string `json:"lanes"`
	Previous string   `json:"previous"`
	Selector int      `json:"selector"`
	Lane     int      `json:"lane"`
	Button   bool     `json:"button"`
	LCD      []string `json:"lcd"`
	Stats    Stats    `json:"stats"`
	Stimulus Stimulus `json:"stimulus"`
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	snap := s.mon.Snapshot()
	st := State{
		Bus:      snap.Bus.String(),
		Word:     snap.Bus.Word(),
		Previous: snap.Previous.String(),
		Selector: int(snap.Selector),
		Lane:     bus.Lanes - 1 - int(snap.Selector),
		Button:   snap.Button,
		Stats: Stats{
			Cycles:      snap.Stats.Cycles,
			HexRepaints: snap.Stats.HexRepaints,
			Advances:    snap.Stats.Advances,
		},
	}
	for _, b := range snap.Bus.Lanes() {
		st.Lanes = append(st.Lanes, fmt.Sprintf("%02X", b))
	}
	if s.screen != nil {
		st.LCD = s.screen.Rows()
	}
	if s.drv != nil {
		ds := s.drv.Status()
		st.Stimulus = Stimulus{
			Tick:         ds.Tick,
			Pinned:       ds.Pinned,
			ManualButton: ds.ManualButton,
		}
		if ds.Pinned {
			st.Stimulus.Pin = bus.Value(ds.Pin).String()
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) PutBus(w http.ResponseWriter, r *http.Request, value string) {
	v, err := ParseBusValue(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.drv.Pin(uint32(v))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DeleteBus(w http.ResponseWriter, r *http.Request) {
	s.drv.Unpin()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) PostButton(w http.ResponseWriter, r *http.Request, action string) {
	switch action {
	case "press":
		s.drv.Press()
	case "release":
		s.drv.Release()
	case "click":
		s.drv.Click()
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown button action %q", action))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DeleteButton(w http.ResponseWriter, r *http.Request) {
	s.drv.Auto()
	w.WriteHeader(http.StatusNoContent)
}

// ParseBusValue accepts decimal, 0x-prefixed hex, or bare hex when the text
// is not valid decimal.
func ParseBusValue(s string) (bus.Value, error) {
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		if v, err := strconv.ParseUint(rest, 16, 32); err == nil {
			return bus.Value(v), nil
		}
		return 0, fmt.Errorf("%q: %w", s, ErrBusValue)
	}
	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return bus.Value(v), nil
	}
	if v, err := strconv.ParseUint(s, 16, 32); err == nil {
		return bus.Value(v), nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrBusValue)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
