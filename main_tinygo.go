//go:build tinygo && baremetal

package main

import (
	"busmon/app"
	"busmon/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
