package lcd

import (
	"time"

	"busmon/hal"
)

const (
	BannerText = "bus display v1.0"
	BannerHold = 2 * time.Second
)

// Banner clears the display, shows lines on consecutive rows for hold and
// clears it again.
func Banner(disp hal.CharDisplay, clock hal.Clock, hold time.Duration, lines ...string) {
	disp.Clear()
	for i, line := range lines {
		disp.MoveCursor(0, uint8(i))
		disp.PutString(line)
	}
	clock.Delay(hold)
	disp.Clear()
}
