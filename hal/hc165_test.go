package hal

import "testing"

func openChain(t *testing.T, c *HC165Chain) (shld, clk, qh Line) {
	t.Helper()
	g := NewGPIOSet([]GPIOPin{c.SerialOutPin(), c.ClockPin(), c.ShiftLoadPin()})

	var err error
	if qh, err = OpenLine(g, 0, GPIOModeInput, GPIOPullNone); err != nil {
		t.Fatalf("open QH: %v", err)
	}
	if clk, err = OpenLine(g, 1, GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("open CLK: %v", err)
	}
	if shld, err = OpenLine(g, 2, GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("open SHLD: %v", err)
	}
	return shld, clk, qh
}

func clockOut(clk, qh Line, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v <<= 1
		if qh.Get() {
			v |= 1
		}
		clk.Set(true)
		clk.Set(false)
	}
	return v
}

func TestHC165ChainShiftsMSBFirst(t *testing.T) {
	c := NewHC165Chain(4)
	if c.Width() != 32 {
		t.Fatalf("Width = %d, want 32", c.Width())
	}
	shld, clk, qh := openChain(t, c)

	c.SetInputs(0x80000001)
	shld.Set(false)
	shld.Set(true)

	if !qh.Get() {
		t.Fatal("expected bit 31 on QH right after load")
	}
	if got := clockOut(clk, qh, 32); got != 0x80000001 {
		t.Fatalf("shifted %#08x, want 0x80000001", got)
	}
	if qh.Get() {
		t.Fatal("expected QH low once the chain is drained")
	}

	loads, shifts := c.Counters()
	if loads != 1 || shifts != 32 {
		t.Fatalf("counters = %d loads, %d shifts; want 1, 32", loads, shifts)
	}
}

func TestHC165ChainIgnoresClockWhileLoading(t *testing.T) {
	c := NewHC165Chain(4)
	shld, clk, qh := openChain(t, c)

	c.SetInputs(0xA0000000)
	shld.Set(false)
	clk.Set(true)
	clk.Set(false)
	if !qh.Get() {
		t.Fatal("expected load to override clock while SH/LD is low")
	}

	// Inputs are followed while SH/LD stays low.
	c.SetInputs(0x00000000)
	if qh.Get() {
		t.Fatal("expected QH to follow inputs while loading")
	}
	shld.Set(true)

	// Inputs changing after the latch do not disturb the shifted word.
	c.SetInputs(0xFFFFFFFF)
	if got := clockOut(clk, qh, 32); got != 0 {
		t.Fatalf("shifted %#08x, want 0", got)
	}
}

func TestHC165ChainShortChainMasksInputs(t *testing.T) {
	c := NewHC165Chain(1)
	shld, clk, qh := openChain(t, c)

	c.SetInputs(0x1A5)
	if got := c.Inputs(); got != 0xA5 {
		t.Fatalf("Inputs = %#x, want 0xa5", got)
	}
	shld.Set(false)
	shld.Set(true)
	if got := clockOut(clk, qh, 8); got != 0xA5 {
		t.Fatalf("shifted %#x, want 0xa5", got)
	}
}

func TestHC165PinsRejectWrongDirection(t *testing.T) {
	c := NewHC165Chain(4)
	if err := c.SerialOutPin().Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("expected QH to reject output mode")
	}
	if err := c.ClockPin().Configure(GPIOModeInput, GPIOPullNone); err == nil {
		t.Fatal("expected CLK to reject input mode")
	}
	if err := c.ShiftLoadPin().Write(false); err == nil {
		t.Fatal("expected write before configure to fail")
	}
}
