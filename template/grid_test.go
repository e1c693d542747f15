package template

import (
	"testing"

	"github.com/andrewyur/qart/qrversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridFinderPatternCorners(t *testing.T) {
	v, err := qrversion.New(1)
	require.NoError(t, err)
	g := NewGrid(v)

	assert.Equal(t, Black, g.At(0, 0))
	assert.Equal(t, Black, g.At(6, 0))
	assert.Equal(t, Black, g.At(0, 6))
	assert.Equal(t, White, g.At(7, 0))
}

func TestNewGridDarkModule(t *testing.T) {
	v, err := qrversion.New(1)
	require.NoError(t, err)
	g := NewGrid(v)
	assert.Equal(t, Black, g.At(8, g.Size()-1-7))
}

func TestNewGridReservesVersionInfoAboveV6(t *testing.T) {
	v, err := qrversion.New(7)
	require.NoError(t, err)
	g := NewGrid(v)
	assert.Equal(t, Reserved, g.At(0, g.Size()-9))
}

func TestNewGridVersion1HasNoVersionInfoArea(t *testing.T) {
	v, err := qrversion.New(1)
	require.NoError(t, err)
	g := NewGrid(v)
	assert.NotEqual(t, Reserved, g.At(0, g.Size()-9))
}

func TestCursorWalksExactlyTheOpenModules(t *testing.T) {
	v, err := qrversion.New(1)
	require.NoError(t, err)
	g := NewGrid(v)

	want := 0
	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			if g.IsOpen(x, y) {
				want++
			}
		}
	}

	c := NewCursor(g)
	got := 1
	for {
		c.Place(false)
		ok, err := c.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got++
	}
	assert.Equal(t, want, got)
}

func TestCursorCoversEachOpenModuleExactlyOnce(t *testing.T) {
	v, err := qrversion.New(3)
	require.NoError(t, err)
	g := NewGrid(v)

	visited := make(map[[2]int]bool)
	c := NewCursor(g)
	for {
		key := [2]int{c.X, c.Y}
		require.False(t, visited[key], "module (%d,%d) visited twice", c.X, c.Y)
		visited[key] = true
		c.Place(false)
		ok, err := c.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
	}

	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			assert.NotEqual(t, Open, g.At(x, y), "module (%d,%d) never visited", x, y)
		}
	}
	assert.NotEmpty(t, visited)
}
