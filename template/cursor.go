package template

import "fmt"

// move is the cursor's current travel direction through the zig-zag
// column pairs QR symbols place codeword bits in.
type move int

const (
	moveLeft move = iota
	moveUpRight
	moveDownRight
)

// NoValidMove is returned by Cursor.Next when the cursor is stuck partway
// through the traversal: no candidate module for a leftward or upward step
// is open. Completion of the traversal is not reported this way.
type NoValidMove struct {
	X, Y int
}

func (e *NoValidMove) Error() string {
	return fmt.Sprintf("template: no valid move from (%d, %d)", e.X, e.Y)
}

// Cursor walks a Grid's open modules in the QR placement order: two-column
// zig-zag strips right to left, snaking vertically around the timing
// column and alignment patterns.
type Cursor struct {
	X, Y     int
	nextMove move
	prevMove move
	grid     *Grid
}

// NewCursor starts a cursor at the grid's bottom-right corner, the QR
// standard's placement origin.
func NewCursor(grid *Grid) *Cursor {
	side := grid.Size()
	return &Cursor{
		X:        side - 1,
		Y:        side - 1,
		nextMove: moveLeft,
		prevMove: moveUpRight,
		grid:     grid,
	}
}

// Next advances the cursor to the next open module. It returns false when a
// downward strip has no further move (the end of the last strip, at the
// bottom-left, completes placement), or a *NoValidMove error if a leftward
// or upward step is blocked.
func (c *Cursor) Next() (bool, error) {
	switch c.nextMove {
	case moveLeft:
		if c.X != 0 && !c.grid.IsOpen(c.X-1, c.Y) {
			return false, &NoValidMove{X: c.X, Y: c.Y}
		}
		c.X--
		switch c.prevMove {
		case moveLeft:
			if c.Y != 0 && c.grid.IsOpen(c.X+1, c.Y-1) {
				c.nextMove = moveUpRight
			} else {
				c.nextMove = moveDownRight
			}
			c.prevMove = moveLeft
		default:
			c.nextMove = c.prevMove
			c.prevMove = moveLeft
		}

	case moveUpRight:
		switch {
		case c.Y != 0 && c.grid.IsOpen(c.X+1, c.Y-1):
			c.X++
			c.Y--
			c.nextMove = moveLeft
			c.prevMove = moveUpRight
		case c.Y >= 1 && c.grid.IsOpen(c.X, c.Y-1):
			c.Y--
			c.nextMove = moveUpRight
			c.prevMove = moveUpRight
		case c.Y >= 2 && c.grid.IsOpen(c.X+1, c.Y-2):
			c.X++
			c.Y -= 2
			c.nextMove = moveLeft
			c.prevMove = moveUpRight
		case c.Y >= 2 && c.grid.IsOpen(c.X, c.Y-2):
			c.Y -= 2
			c.nextMove = moveUpRight
			c.prevMove = moveUpRight
		case c.Y >= 6 && c.grid.IsOpen(c.X+1, c.Y-6):
			c.X++
			c.Y -= 6
			c.nextMove = moveLeft
			c.prevMove = moveUpRight
		case c.Y >= 7 && c.X >= 2 && c.grid.IsOpen(c.X-2, c.Y-7):
			c.X -= 2
			c.Y -= 7
			c.nextMove = moveDownRight
			c.prevMove = moveDownRight
		case c.X >= 1 && c.grid.IsOpen(c.X-1, c.Y):
			c.X--
			c.nextMove = moveLeft
			c.prevMove = moveLeft
		case c.X >= 2 && c.grid.IsOpen(c.X-2, c.Y):
			c.X -= 2
			c.nextMove = moveLeft
			c.prevMove = moveLeft
		default:
			return false, &NoValidMove{X: c.X, Y: c.Y}
		}

	case moveDownRight:
		switch {
		case c.grid.IsOpen(c.X+1, c.Y+1):
			c.X++
			c.Y++
			c.nextMove = moveLeft
			c.prevMove = moveDownRight
		case c.grid.IsOpen(c.X, c.Y+1):
			c.Y++
			c.prevMove = moveDownRight
			c.nextMove = moveDownRight
		case c.grid.IsOpen(c.X+1, c.Y+2):
			c.X++
			c.Y += 2
			c.nextMove = moveLeft
			c.prevMove = moveDownRight
		case c.grid.IsOpen(c.X, c.Y+2):
			c.Y += 2
			c.prevMove = moveDownRight
			c.nextMove = moveDownRight
		case c.grid.IsOpen(c.X+1, c.Y+6):
			c.X++
			c.Y += 6
			c.nextMove = moveLeft
			c.prevMove = moveDownRight
		case c.X >= 1 && c.grid.IsOpen(c.X-1, c.Y):
			c.X--
			c.nextMove = moveLeft
			c.prevMove = moveLeft
		case c.X >= 1 && c.Y >= 8 && c.grid.IsOpen(c.X-1, c.Y-8):
			c.X--
			c.Y -= 8
			c.nextMove = moveLeft
			c.prevMove = moveLeft
		default:
			return false, nil
		}
	}

	return true, nil
}

// Place paints the module at the cursor's current position.
func (c *Cursor) Place(black bool) {
	c.grid.Fill(c.X, c.Y, black)
}
