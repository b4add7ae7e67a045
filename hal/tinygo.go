//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
)

// Board wiring (Raspberry Pi Pico).
//
// UART0 on GP0 (TX) / GP1 (RX), 115200 8N1, carries the log.
// GP2 reads QH of the last 74HC165, GP3 drives CLK, GP4 drives SH/LD.
// GP5 is the pushbutton. The 16x2 LCD sits behind a PCF8574 backpack on
// I2C1, GP6 (SDA) / GP7 (SCL), address 0x27.
const (
	lcdAddress = 0x27
	lcdCols    = 16
	lcdRows    = 2
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	lcd    *hd44780Display
	clock  SpinClock
}

// New returns a Pico (RP2040) HAL implementation.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	pins := make([]GPIOPin, boardPinCount)
	pins[PinSerialIn] = newMachinePin("QH", machine.GP2, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)
	pins[PinSerialClock] = newMachinePin("CLK", machine.GP3, GPIOCapOutput)
	pins[PinShiftLoad] = newMachinePin("SHLD", machine.GP4, GPIOCapOutput)
	pins[PinButton] = newMachinePin("BUTTON", machine.GP5, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		gpio:   NewGPIOSet(pins),
		lcd:    &hd44780Display{bus: machine.I2C1},
	}
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO           { return h.gpio }
func (h *tinyGoHAL) Display() CharDisplay { return h.lcd }
func (h *tinyGoHAL) Clock() Clock         { return h.clock }

// hd44780Display drives an HD44780 through an I2C backpack. The backpack
// always powers the glass on, so DisplayOn is implied.
type hd44780Display struct {
	bus *machine.I2C
	dev hd44780i2c.Device
	buf [1]byte
}

func (d *hd44780Display) Init(mode DisplayMode) error {
	if err := d.bus.Configure(machine.I2CConfig{
		SDA:       machine.GP6,
		SCL:       machine.GP7,
		Frequency: 400_000,
	}); err != nil {
		return fmt.Errorf("lcd: i2c: %w", err)
	}
	d.dev = hd44780i2c.New(d.bus, lcdAddress)
	if err := d.dev.Configure(hd44780i2c.Config{
		Width:       lcdCols,
		Height:      lcdRows,
		CursorOn:    mode&CursorOn != 0,
		CursorBlink: mode&CursorBlink != 0,
	}); err != nil {
		return fmt.Errorf("lcd: configure: %w", err)
	}
	return nil
}

func (d *hd44780Display) Clear() { d.dev.ClearDisplay() }

func (d *hd44780Display) MoveCursor(col, row uint8) { d.dev.SetCursor(col, row) }

func (d *hd44780Display) PutChar(c byte) {
	d.buf[0] = c
	d.dev.Print(d.buf[:])
}

func (d *hd44780Display) PutString(s string) { d.dev.Print([]byte(s)) }
