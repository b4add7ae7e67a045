package hal

import "sync"

// DisplayMode mirrors the HD44780 display-control bits.
type DisplayMode uint8

const (
	DisplayOn DisplayMode = 1 << iota
	CursorOn
	CursorBlink
)

// CharDisplay is a character-cell text terminal such as a 16x2 HD44780.
//
// Output after the last column of a row is dropped, as it lands in DDRAM
// that is not visible on the glass.
type CharDisplay interface {
	Init(mode DisplayMode) error
	Clear()
	MoveCursor(col, row uint8)
	PutChar(c byte)
	PutString(s string)
}

// CharGrid is an in-memory CharDisplay.
type CharGrid struct {
	mu      sync.Mutex
	cols    int
	rows    int
	cells   []byte
	col     int
	row     int
	mode    DisplayMode
	version uint64
}

func NewCharGrid(cols, rows int) *CharGrid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &CharGrid{cols: cols, rows: rows, cells: make([]byte, cols*rows)}
	g.clearLocked()
	return g
}

func (g *CharGrid) Size() (cols, rows int) { return g.cols, g.rows }

func (g *CharGrid) Init(mode DisplayMode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mode = mode
	g.clearLocked()
	g.version++
	return nil
}

func (g *CharGrid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearLocked()
	g.version++
}

func (g *CharGrid) clearLocked() {
	for i := range g.cells {
		g.cells[i] = ' '
	}
	g.col, g.row = 0, 0
}

func (g *CharGrid) MoveCursor(col, row uint8) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.col = int(col)
	g.row = int(row) % g.rows
}

func (g *CharGrid) PutChar(c byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.putLocked(c)
}

func (g *CharGrid) PutString(s string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < len(s); i++ {
		g.putLocked(s[i])
	}
}

func (g *CharGrid) putLocked(c byte) {
	if g.col < g.cols {
		off := g.row*g.cols + g.col
		if g.cells[off] != c {
			g.cells[off] = c
			g.version++
		}
	}
	g.col++
}

// Row returns the visible text of row i.
func (g *CharGrid) Row(i int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= g.rows {
		return ""
	}
	return string(g.cells[i*g.cols : (i+1)*g.cols])
}

// Rows returns the visible text of every row.
func (g *CharGrid) Rows() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, g.rows)
	for i := range out {
		out[i] = string(g.cells[i*g.cols : (i+1)*g.cols])
	}
	return out
}

// Cursor reports the current cursor position.
func (g *CharGrid) Cursor() (col, row int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.col, g.row
}

// Mode reports the mode passed to Init.
func (g *CharGrid) Mode() DisplayMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// Version increments whenever the visible contents change.
func (g *CharGrid) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}
