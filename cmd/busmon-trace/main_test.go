//go:build !tinygo

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walk = `
def bus(tick):
    return lanes(0xDE, 0xAD, 0xBE, 0xEF) if tick < 2 else 0x01020304

def button(tick):
    return tick == 2
`

func TestTracePrintsOnChange(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, "walk.star", walk, traceConfig{ticks: 5}))

	want := strings.Join([]string{
		"tick 0 bus 0xDEADBEEF sel 0",
		"|   DE AD BE>EF  |",
		"|    11101111    |",
		"tick 2 bus 0x01020304 sel 0",
		"|   01 02 03>04  |",
		"|    00000100    |",
		"tick 3 bus 0x01020304 sel 1",
		"|   01 02>03 04  |",
		"|    00000011    |",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestTraceEvery(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, "walk.star", walk, traceConfig{ticks: 4, every: 2}))

	assert.Equal(t, 2, strings.Count(out.String(), "tick "))
	assert.Contains(t, out.String(), "tick 2 bus 0x01020304 sel 0")
}

func TestTraceLog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, "walk.star", walk, traceConfig{ticks: 4, log: true}))
	assert.Contains(t, out.String(), "busmon: lane 2 selected")
}

func TestTraceBadScript(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(&out, "bad.star", "x = 1\n", traceConfig{ticks: 1}))
	assert.Empty(t, out.String())
}
