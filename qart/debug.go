package qart

import (
	"image"
	"image/color"

	"github.com/andrewyur/qart/internal/mathx"
	"github.com/andrewyur/qart/qrversion"
	"github.com/andrewyur/qart/template"
)

// RenderCursorPath walks a fresh grid's Cursor to completion and renders it
// as an image with every module the cursor visits painted in a colour that
// darkens from the first module visited to the last, leaving a one-pixel
// white border inset into each module. It never touches block or payload
// data, so it is useful on its own for diagnosing a NoValidMove failure: a
// module the cursor never reaches, or reaches twice, shows up as an
// unpainted or double-painted cell.
func RenderCursorPath(v qrversion.Version, moduleSize int) (image.Image, error) {
	grid := template.NewGrid(v)
	cursor := template.NewCursor(grid)

	var visited [][2]int
	visited = append(visited, [2]int{cursor.X, cursor.Y})
	for {
		ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		visited = append(visited, [2]int{cursor.X, cursor.Y})
	}

	side := grid.Size()
	img := image.NewRGBA(image.Rect(0, 0, side*moduleSize, side*moduleSize))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			paintModule(img, x, y, moduleSize, color.RGBA{255, 255, 255, 255})
		}
	}

	for i, p := range visited {
		shade := uint8(255 - (i * 200 / mathx.MaxInt(1, len(visited)-1)))
		debugModule(img, p[0], p[1], moduleSize, color.RGBA{shade, 0, 0, 255})
	}
	return img, nil
}

// debugModule paints a module's interior in col, leaving its outermost
// ring of pixels white, so adjacent visited modules stay visually distinct.
func debugModule(img *image.RGBA, mx, my, moduleSize int, col color.RGBA) {
	for px := 0; px < moduleSize; px++ {
		for py := 0; py < moduleSize; py++ {
			c := col
			if px == 0 || px == moduleSize-1 || py == 0 || py == moduleSize-1 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(mx*moduleSize+px, my*moduleSize+py, c)
		}
	}
}
