// Package qart is the biasing driver: it ties together payload encoding,
// Reed-Solomon blocks, the QR placement template, and target-image
// sampling to produce a standards-compliant symbol that visually
// resembles a target picture.
package qart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sort"

	"github.com/andrewyur/qart/block"
	"github.com/andrewyur/qart/gf256"
	"github.com/andrewyur/qart/internal/bitx"
	"github.com/andrewyur/qart/internal/mathx"
	"github.com/andrewyur/qart/mask"
	"github.com/andrewyur/qart/payload"
	"github.com/andrewyur/qart/qrcodeecc"
	"github.com/andrewyur/qart/qrversion"
	"github.com/andrewyur/qart/sampler"
	"github.com/andrewyur/qart/template"
	"github.com/charmbracelet/log"
)

// bitCoord locates one bit inside one block's byte array.
type bitCoord struct {
	block int
	bit   int
}

// moduleRecord is one placed codeword bit, carrying everything the
// ordering pass and the set() call need.
type moduleRecord struct {
	x, y       int
	coord      bitCoord
	targetDark bool
	maskBit    bool
	contrast   uint32
}

// Options configures a Build or Preview run.
type Options struct {
	Version    qrversion.Version
	URL        string
	ModuleSize int
	Threshold  uint8
	Random     bool
	Logger     *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// QuietZoneModules is the recommended minimum quiet-zone border width.
const QuietZoneModules = 4

// Build encodes url into version V, biases the symbol's free bits to
// resemble the target image read from r, and renders the result as an
// image with the given module pixel size.
func Build(opts Options, r io.Reader) (image.Image, error) {
	logger := opts.logger()
	logger.Debug("encoding payload", "version", opts.Version, "url", opts.URL)

	stream, err := payload.Encode(opts.Version, opts.URL)
	if err != nil {
		return nil, err
	}

	layout, err := opts.Version.Layout(qrcodeecc.Low)
	if err != nil {
		return nil, err
	}
	blocks, err := splitIntoBlocks(stream, layout)
	if err != nil {
		return nil, err
	}
	logger.Debug("split into blocks", "count", len(blocks))

	grid := template.NewGrid(opts.Version)
	target, err := sampler.Load(r, grid.Size())
	if err != nil {
		return nil, err
	}

	records, err := placeModules(grid, blocks, layout, target, opts.Threshold)
	if err != nil {
		return nil, err
	}
	logger.Debug("placed modules", "count", len(records))

	orderRecords(records, opts.Random)

	applied := 0
	for _, rec := range records {
		val := byte(0)
		if rec.targetDark == rec.maskBit {
			val = 1
		}
		if blocks[rec.coord.block].Set(rec.coord.bit, val) {
			applied++
		}
	}
	logger.Debug("biasing pass complete", "applied", applied, "total", len(records))

	repairNumericOverflow(blocks)

	// Mask pattern 1 inverts even rows, the complement of maskBit (row
	// odd), so a module is dark exactly when its bit equals maskBit.
	for _, rec := range records {
		bit := blocks[rec.coord.block].Get(rec.coord.bit)
		dark := (bit == 1) == rec.maskBit
		grid.Fill(rec.x, rec.y, dark)
	}

	overlayFormatAndVersionInfo(grid, opts.Version)

	return render(grid, opts.ModuleSize), nil
}

// Preview samples the target image and paints the highest-contrast
// modules in their target colour, without building a real symbol: a quick
// visual check of how a Build run would look.
func Preview(opts Options, r io.Reader) (image.Image, error) {
	grid := template.NewGrid(opts.Version)
	target, err := sampler.Load(r, grid.Size())
	if err != nil {
		return nil, err
	}

	type cell struct {
		x, y     int
		dark     bool
		contrast uint32
	}
	var cells []cell
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			if !grid.IsOpen(x, y) {
				continue
			}
			m := target[y][x]
			cells = append(cells, cell{x: x, y: y, dark: m.Brightness < opts.Threshold, contrast: m.Contrast})
		}
	}

	sort.SliceStable(cells, func(i, j int) bool { return cells[i].contrast > cells[j].contrast })

	budget := mathx.MinInt(3*numericCharCapacity(opts.Version), len(cells))

	img := image.NewRGBA(image.Rect(0, 0, grid.Size()*opts.ModuleSize, grid.Size()*opts.ModuleSize))
	grey := color.RGBA{128, 128, 128, 255}
	for i, c := range cells {
		col := grey
		if i < budget {
			if c.dark {
				col = color.RGBA{0, 0, 0, 255}
			} else {
				col = color.RGBA{255, 255, 255, 255}
			}
		}
		paintModule(img, c.x, c.y, opts.ModuleSize, col)
	}
	return img, nil
}

// numericCharCapacity estimates the number of numeric-filler digits a
// version carries, used only to size the preview's highlighted budget.
func numericCharCapacity(v qrversion.Version) int {
	required := v.RequiredDataBits()
	return required / 10 * 3
}

func splitIntoBlocks(stream payload.Stream, layout qrversion.BlockLayout) ([]*block.Block, error) {
	blocks := make([]*block.Block, 0, layout.TotalBlocks())
	offset := 0
	field := gf256.Default

	appendGroup := func(count, dataBytes int) error {
		for i := 0; i < count; i++ {
			dataBits := stream[offset : offset+dataBytes*8]
			offset += dataBytes * 8

			blockBits := make(payload.Stream, len(dataBits)+layout.ECCBytesPerBlock*8)
			copy(blockBits, dataBits)
			for j := len(dataBits); j < len(blockBits); j++ {
				blockBits[j] = payload.Bit{Value: 0, Role: payload.ECC}
			}

			b, err := block.New(dataBytes, field, blockBits)
			if err != nil {
				return fmt.Errorf("qart: building block %d: %w", len(blocks), err)
			}
			blocks = append(blocks, b)
		}
		return nil
	}

	if err := appendGroup(layout.Group1Blocks, layout.Group1DataBytes); err != nil {
		return nil, err
	}
	if err := appendGroup(layout.Group2Blocks, layout.Group2DataBytes); err != nil {
		return nil, err
	}
	return blocks, nil
}

// placeModules walks the template's cursor in the standard QR codeword
// order (data bytes interleaved across blocks, then ECC bytes interleaved
// across blocks), building one moduleRecord per placed bit.
func placeModules(grid *template.Grid, blocks []*block.Block, layout qrversion.BlockLayout, target [][]sampler.Module, threshold uint8) ([]moduleRecord, error) {
	coords := interleave(layout)

	cursor := template.NewCursor(grid)
	records := make([]moduleRecord, 0, len(coords))

	place := func(idx int) {
		if idx >= len(coords) {
			cursor.Place(!mask.Invert(cursor.X, cursor.Y))
			return
		}
		m := target[cursor.Y][cursor.X]
		records = append(records, moduleRecord{
			x:          cursor.X,
			y:          cursor.Y,
			coord:      coords[idx],
			targetDark: m.Brightness < threshold,
			maskBit:    mask.Invert(cursor.X, cursor.Y),
			contrast:   m.Contrast,
		})
	}

	idx := 0
	place(idx)
	idx++
	for {
		ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		place(idx)
		idx++
	}
	return records, nil
}

// interleave produces the (block, bit) coordinate sequence in QR codeword
// order: data bytes round-robin across blocks (short blocks first, long
// blocks continuing after), then ECC bytes round-robin across all blocks.
func interleave(layout qrversion.BlockLayout) []bitCoord {
	var coords []bitCoord
	maxData := layout.Group1DataBytes
	if layout.Group2DataBytes > maxData {
		maxData = layout.Group2DataBytes
	}
	totalBlocks := layout.TotalBlocks()

	dataBytesOf := func(blockIdx int) int {
		if blockIdx < layout.Group1Blocks {
			return layout.Group1DataBytes
		}
		return layout.Group2DataBytes
	}

	for byteIdx := 0; byteIdx < maxData; byteIdx++ {
		for b := 0; b < totalBlocks; b++ {
			if byteIdx >= dataBytesOf(b) {
				continue
			}
			for bit := 0; bit < 8; bit++ {
				coords = append(coords, bitCoord{block: b, bit: byteIdx*8 + bit})
			}
		}
	}

	for byteIdx := 0; byteIdx < layout.ECCBytesPerBlock; byteIdx++ {
		for b := 0; b < totalBlocks; b++ {
			dataBits := dataBytesOf(b) * 8
			for bit := 0; bit < 8; bit++ {
				coords = append(coords, bitCoord{block: b, bit: dataBits + byteIdx*8 + bit})
			}
		}
	}
	return coords
}

func orderRecords(records []moduleRecord, random bool) {
	if random {
		shuffle(records)
		return
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].contrast > records[j].contrast })
}

// shuffle performs an in-place Fisher-Yates shuffle driven by a xorshift64
// generator with a fixed seed, so Build with --random produces the same
// ordering on every run.
func shuffle(records []moduleRecord) {
	state := uint64(0x2545F4914F6CDD1D)
	next := func() uint64 {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return state
	}
	for i := len(records) - 1; i > 0; i-- {
		j := int(next() % uint64(i+1))
		records[i], records[j] = records[j], records[i]
	}
}

func overlayFormatAndVersionInfo(grid *template.Grid, v qrversion.Version) {
	bits := qrversion.FormatInfoBits(qrcodeecc.Low, mask.Number)
	size := grid.Size()

	for i := 0; i < 6; i++ {
		grid.Fill(8, i, bitx.GetBit(bits, i))
	}
	grid.Fill(8, 7, bitx.GetBit(bits, 6))
	grid.Fill(8, 8, bitx.GetBit(bits, 7))
	grid.Fill(7, 8, bitx.GetBit(bits, 8))
	for i := 9; i < 15; i++ {
		grid.Fill(14-i, 8, bitx.GetBit(bits, i))
	}

	for i := 0; i < 8; i++ {
		grid.Fill(size-1-i, 8, bitx.GetBit(bits, i))
	}
	for i := 8; i < 15; i++ {
		grid.Fill(8, size-15+i, bitx.GetBit(bits, i))
	}
	grid.Fill(8, size-8, true)

	if v < 7 {
		return
	}
	vbits := qrversion.VersionInfoBits(v)
	for i := 0; i < 18; i++ {
		bit := bitx.GetBit(vbits, i)
		a := size - 11 + i%3
		b := i / 3
		grid.Fill(a, b, bit)
		grid.Fill(b, a, bit)
	}
}

// render paints the grid onto an RGBA image, surrounded by a quiet zone of
// QuietZoneModules blank modules on every side.
func render(grid *template.Grid, moduleSize int) image.Image {
	side := grid.Size()
	full := side + 2*QuietZoneModules
	img := image.NewRGBA(image.Rect(0, 0, full*moduleSize, full*moduleSize))

	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < full; y++ {
		for x := 0; x < full; x++ {
			paintModule(img, x, y, moduleSize, white)
		}
	}

	black := color.RGBA{0, 0, 0, 255}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if grid.At(x, y) == template.Black {
				paintModule(img, x+QuietZoneModules, y+QuietZoneModules, moduleSize, black)
			}
		}
	}
	return img
}

func paintModule(img *image.RGBA, mx, my, moduleSize int, col color.RGBA) {
	for px := 0; px < moduleSize; px++ {
		for py := 0; py < moduleSize; py++ {
			img.SetRGBA(mx*moduleSize+px, my*moduleSize+py, col)
		}
	}
}
