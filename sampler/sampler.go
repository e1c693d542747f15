// Package sampler turns a target raster image into per-module
// (contrast, brightness) scores the biasing driver uses to decide which
// modules matter most and what colour they should end up.
package sampler

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// Module is one grid cell's sampled brightness and local contrast.
type Module struct {
	Brightness uint8
	Contrast   uint32
}

// contrastRange is the half-width of the neighbourhood used to compute a
// module's local contrast (a (2*contrastRange)^2 window).
const contrastRange = 5

// Load decodes an image and samples it down to a sideLen x sideLen grid of
// Modules, one per QR module, using a Catmull-Rom filtered resize so nearby
// pixels that average into "grey" still contribute to contrast.
func Load(r io.Reader, sideLen int) ([][]Module, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sampler: could not decode target image: %w", err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, sideLen, sideLen))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Over, nil)

	brightness := make([][]uint8, sideLen)
	for y := 0; y < sideLen; y++ {
		brightness[y] = make([]uint8, sideLen)
		for x := 0; x < sideLen; x++ {
			r32, g32, b32, _ := scaled.At(x, y).RGBA()
			r8, g8, b8 := r32>>8, g32>>8, b32>>8
			brightness[y][x] = uint8((299*r8 + 587*g8 + 114*b8 + 500) / 1000)
		}
	}

	result := make([][]Module, sideLen)
	for y := 0; y < sideLen; y++ {
		result[y] = make([]Module, sideLen)
		for x := 0; x < sideLen; x++ {
			result[y][x] = Module{
				Brightness: brightness[y][x],
				Contrast:   contrastAt(x, y, brightness),
			}
		}
	}
	return result, nil
}

// contrastAt computes the local variance of brightness in a
// (2*contrastRange)^2 window centred near (x, y), clipped to the image
// bounds.
func contrastAt(x, y int, brightness [][]uint8) uint32 {
	var n, sum, sumSq uint64

	for oy := 0; oy < contrastRange*2; oy++ {
		for ox := 0; ox < contrastRange*2; ox++ {
			py := y - contrastRange + oy
			px := x - contrastRange + ox
			if py < 0 || py >= len(brightness) || px < 0 || px >= len(brightness[0]) {
				continue
			}
			v := uint64(brightness[py][px])
			sum += v
			sumSq += v * v
			n++
		}
	}

	avg := sum / n
	return uint32(sumSq/n - avg*avg)
}
