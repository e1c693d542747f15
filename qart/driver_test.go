package qart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/andrewyur/qart/qrversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatTarget(t *testing.T, side int, c color.Color) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

func TestBuildProducesModuleSizedImage(t *testing.T) {
	v, err := qrversion.New(6)
	require.NoError(t, err)

	img, err := Build(Options{
		Version:    v,
		URL:        "HELLO",
		ModuleSize: 3,
		Threshold:  128,
	}, flatTarget(t, 43, color.Gray{Y: 128}))
	require.NoError(t, err)

	wantSide := (v.SideLength() + 2*QuietZoneModules) * 3
	assert.Equal(t, wantSide, img.Bounds().Dx())
	assert.Equal(t, wantSide, img.Bounds().Dy())
}

func TestBuildRejectsUnencodableURL(t *testing.T) {
	v, err := qrversion.New(10)
	require.NoError(t, err)

	_, err = Build(Options{
		Version:    v,
		URL:        "héllo€",
		ModuleSize: 2,
		Threshold:  128,
	}, flatTarget(t, 57, color.White))
	assert.Error(t, err)
}

func TestBuildAcrossVersionBands(t *testing.T) {
	for _, ver := range []int{1, 7, 10, 27, 40} {
		v, err := qrversion.New(ver)
		require.NoError(t, err)

		img, err := Build(Options{
			Version:    v,
			URL:        "https://a.b/c",
			ModuleSize: 1,
			Threshold:  128,
		}, flatTarget(t, v.SideLength(), color.Gray{Y: 100}))
		require.NoError(t, err, "version %d", ver)
		assert.Equal(t, v.SideLength()+2*QuietZoneModules, img.Bounds().Dx(), "version %d", ver)
	}
}

func TestPreviewProducesModuleSizedImage(t *testing.T) {
	v, err := qrversion.New(5)
	require.NoError(t, err)

	img, err := Preview(Options{
		Version:    v,
		ModuleSize: 2,
		Threshold:  128,
	}, flatTarget(t, v.SideLength(), color.Black))
	require.NoError(t, err)
	assert.Equal(t, v.SideLength()*2, img.Bounds().Dx())
}
