package console

import "github.com/Versifine/cellstage/internal/camera"

// Cursor holds the last mouse position in normalized device coordinates.
// The zero value is the screen center.
type Cursor struct {
	nx, ny float64
}

// Move records a mouse position given in screen cells.
func (c *Cursor) Move(x, y, width, height int) {
	c.nx, c.ny = camera.ScreenToNDC(x, y, width, height)
}

// NormalizedCursor implements system.Cursor.
func (c *Cursor) NormalizedCursor() (nx, ny float64) {
	return c.nx, c.ny
}
