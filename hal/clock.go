package hal

import "time"

// spinThreshold is the longest delay served by spinning; longer delays sleep.
const spinThreshold = time.Millisecond

// SpinClock busy-waits for short delays. Pulse widths are a few microseconds,
// well below the scheduler's sleep granularity on both host and MCU.
type SpinClock struct{}

func (SpinClock) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	if d > spinThreshold {
		time.Sleep(d)
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}
