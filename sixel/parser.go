package sixel

import "image/color"

// Size is an integer width/height pair.
type Size struct {
	Width  int
	Height int
}

const sixelSize = 6 // vertical pixels packed into one sixel column

// sixelCell is one sixel column: six palette indices, one per vertical
// pixel, LSB-first within the encoded byte.
type sixelCell [sixelSize]uint16

const (
	maxParameterCount = 32
	maxParameterValue = 99999
)

// DEC color-introducer color models (Pu).
const (
	colorModelHLS = 1
	colorModelRGB = 2
)

type parseState int

const (
	stateUninitialized parseState = iota
	stateGround
	stateSetRasterAttributes      // DECGRA " Pan;Pad;Ph;Pv
	stateGraphicsRepeatIntroducer // DECGRI ! Pn Ch
	stateGraphicsColorIntroducer  // DECGCI # Pc;Pu;Px;Py;Pz
	stateFinished
)

type parameter struct {
	set   bool
	value int
}

func (p parameter) valueOr(def int) int {
	if p.set {
		return p.value
	}
	return def
}

// Buffer is a DEC Sixel parser and rasterizer. It consumes one character
// at a time via AddData, maintains the parser state machine and a sparse
// two-dimensional buffer of sixel columns, and materializes a dense RGBA
// image on Finalize. A Buffer is owned by a single caller; concurrent use
// of one instance is not supported.
type Buffer struct {
	colorTable [colorTableSize]uint32
	pixelSize  Size
	attributedSize Size

	buffer [][]sixelCell

	paletteZeroIsBackground bool

	parseState           parseState
	sixelRow, sixelColumn int
	repeatCount          int
	currentPalette       uint16
	hasReceivedSixelData bool

	parameters               []parameter
	parameterLimitOverflowed bool

	pixels          []color.RGBA
	pixelBufferSize Size
}

// NewBuffer constructs a Buffer with the default pixel aspect ratio (2:1),
// default background-color options, and default horizontal grid size.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.SetPixelAspectRatio(0)
	b.SetBackgroundColorOptions(0)
	b.SetHorizontalGridSize(0)
	b.colorTable[colorTableTransparent] = Transparent
	return b
}

// SetPixelAspectRatio configures the rendering footprint (in output
// pixels) of one sixel pixel's height; the width is controlled separately
// by SetHorizontalGridSize. Unsupported values leave state unchanged and
// return false.
func (b *Buffer) SetPixelAspectRatio(ratio int) bool {
	switch ratio {
	case 0, 1, 5, 6:
		b.pixelSize.Height = 2
	case 2:
		b.pixelSize.Height = 5
	case 3, 4:
		b.pixelSize.Height = 3
	case 7, 8, 9:
		b.pixelSize.Height = 1
	default:
		return false
	}
	return true
}

// SetBackgroundColorOptions selects whether palette index 0 renders as the
// configured background color (options 0 and 2) or keeps whatever color
// it was last assigned (option 1).
func (b *Buffer) SetBackgroundColorOptions(options int) bool {
	switch options {
	case 0, 2:
		b.paletteZeroIsBackground = true
	case 1:
		b.paletteZeroIsBackground = false
	default:
		return false
	}
	return true
}

// SetHorizontalGridSize sets the width, in output pixels, of one sixel
// pixel. A non-positive size resets it to 1.
func (b *Buffer) SetHorizontalGridSize(size int) bool {
	if size > 0 {
		b.pixelSize.Width = size
	} else {
		b.pixelSize.Width = 1
	}
	return true
}

// SetPalette loads up to PaletteSize 24-bit RGB colors, in order, starting
// at index 0. Any indices beyond len(palette) fall back to the default
// 16-color table, and any indices beyond that are black.
func (b *Buffer) SetPalette(palette []uint32) bool {
	i := 0
	for ; i < PaletteSize && i < len(palette); i++ {
		b.colorTable[i] = 0xFF000000 | palette[i]
	}
	for ; i < len(defaultPalette); i++ {
		p := defaultPalette[i]
		b.colorTable[i] = 0xFF000000 | colorFromRGB100(p[0], p[1], p[2])
	}
	for ; i < PaletteSize; i++ {
		b.colorTable[i] = 0xFF000000
	}
	return true
}

// SetBackgroundColor sets the 24-bit RGB color used whenever palette index
// 0 is configured (via SetBackgroundColorOptions) to render as background.
func (b *Buffer) SetBackgroundColor(c uint32) bool {
	b.colorTable[colorTableBackground] = 0xFF000000 | c
	return true
}

// GetPixels returns the finalized RGBA pixel grid. The returned slice is a
// borrowed view, valid until the next AddData or the Buffer is discarded.
func (b *Buffer) GetPixels() []color.RGBA {
	return b.pixels
}

// GetSize returns the finalized image dimensions, or {0,0} before the
// first successful Finalize.
func (b *Buffer) GetSize() Size {
	return b.pixelBufferSize
}

func isNumericParam(ch rune) bool { return ch >= '0' && ch <= '9' }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddData feeds one character of a Sixel control stream into the parser.
// The first call after construction or after a prior Finalize starts a
// fresh image.
func (b *Buffer) AddData(ch rune) {
	switch b.parseState {
	case stateUninitialized, stateFinished:
		b.initializeParser()
		b.parseGround(ch)
	case stateGround:
		b.parseGround(ch)
	case stateSetRasterAttributes:
		b.parseRasterAttributes(ch)
	case stateGraphicsRepeatIntroducer:
		b.parseGraphicsRepeat(ch)
	case stateGraphicsColorIntroducer:
		b.parseGraphicsColor(ch)
	}
}

func (b *Buffer) initializeParser() {
	b.buffer = nil
	b.attributedSize = Size{}

	b.sixelRow = 0
	b.sixelColumn = 0

	b.repeatCount = 1
	b.currentPalette = 15 // a foreground color
	b.hasReceivedSixelData = false

	b.newParamStack()

	b.parseState = stateGround
}

func (b *Buffer) parseGround(ch rune) {
	switch {
	case ch == '"':
		b.parseState = stateSetRasterAttributes
		b.newParamStack()
	case ch == '!':
		b.parseState = stateGraphicsRepeatIntroducer
		b.newParamStack()
	case ch == '#':
		b.parseState = stateGraphicsColorIntroducer
		b.newParamStack()
	case ch == '-': // DECGNL Graphics Next Line
		b.sixelRow++
		b.sixelColumn = 0
	case ch == '$': // DECGCR Graphics Carriage Return
		b.sixelColumn = 0
	case ch >= '?' && ch <= '~':
		b.addSixelValue(int(ch - '?'))
	}

	if b.parseState != stateSetRasterAttributes {
		b.hasReceivedSixelData = true
	}
}

func (b *Buffer) parseRasterAttributes(ch rune) {
	if isNumericParam(ch) || ch == ';' {
		b.addParam(ch)
		return
	}

	if !b.hasReceivedSixelData {
		if len(b.parameters) > 0 {
			b.pixelSize.Height = b.popParamFront().valueOr(0)
		}
		if len(b.parameters) > 0 {
			b.pixelSize.Width = b.popParamFront().valueOr(0)
		}
		if len(b.parameters) > 0 {
			if ph := b.popParamFront().valueOr(0); ph > 0 {
				b.attributedSize.Width = ph
			}
		}
		if len(b.parameters) > 0 {
			if pv := b.popParamFront().valueOr(0); pv > 0 {
				b.attributedSize.Height = pv
			}
		}
	}

	b.parseState = stateGround
	b.parseGround(ch)
}

func (b *Buffer) parseGraphicsRepeat(ch rune) {
	if isNumericParam(ch) {
		b.addParam(ch)
		return
	}

	// A Pn of 0 (or omitted) is DEC's normal "repeat once" default.
	b.repeatCount = b.popParamFront().valueOr(1)
	if b.repeatCount == 0 {
		b.repeatCount = 1
	}

	b.parseState = stateGround
	b.parseGround(ch)
}

func (b *Buffer) parseGraphicsColor(ch rune) {
	if isNumericParam(ch) || ch == ';' {
		b.addParam(ch)
		return
	}

	if len(b.parameters) > 0 {
		// Deliberately clamped to PaletteSize, not PaletteSize-1: an
		// out-of-range palette index maps onto the TRANSPARENT slot.
		b.currentPalette = uint16(clampInt(b.popParamFront().valueOr(0), 0, PaletteSize))

		if len(b.parameters) > 3 {
			colorModel := b.popParamFront().valueOr(0)
			x := b.popParamFront().valueOr(0)
			y := b.popParamFront().valueOr(0)
			z := b.popParamFront().valueOr(0)

			switch colorModel {
			case colorModelHLS:
				b.setPaletteColor(colorFromHLS(x, y, z))
			case colorModelRGB:
				b.setPaletteColor(colorFromRGB100(x, y, z))
			}
		}
	}

	b.parseState = stateGround
	b.parseGround(ch)
}

func (b *Buffer) setPaletteColor(rgb uint32) {
	if int(b.currentPalette) < PaletteSize {
		b.colorTable[b.currentPalette] = 0xFF000000 | rgb
	}
}

func (b *Buffer) newParamStack() {
	b.parameters = b.parameters[:0]
	b.parameters = append(b.parameters, parameter{})
	b.parameterLimitOverflowed = false
}

func (b *Buffer) addParam(ch rune) {
	if len(b.parameters) == 0 {
		b.parameters = append(b.parameters, parameter{})
	}

	if ch == ';' {
		// Past the limit, further delimiters are dropped, but the current
		// parameter stays mutable: only the stack's shape freezes, not the
		// slot digits keep accumulating into.
		if b.parameterLimitOverflowed || len(b.parameters) >= maxParameterCount {
			b.parameterLimitOverflowed = true
			return
		}
		b.parameters = append(b.parameters, parameter{})
		return
	}

	last := len(b.parameters) - 1
	cur := b.parameters[last].valueOr(0)
	cur = cur*10 + int(ch-'0')
	if cur > maxParameterValue {
		cur = maxParameterValue
	}
	b.parameters[last] = parameter{set: true, value: cur}
}

func (b *Buffer) popParamFront() parameter {
	if len(b.parameters) == 0 {
		return parameter{}
	}
	p := b.parameters[0]
	b.parameters = b.parameters[1:]
	return p
}

func (b *Buffer) addSixelValue(value int) {
	switch {
	case value == 0:
		b.sixelColumn += b.repeatCount
	case value == 63: // all six bits set
		for r := 0; r < b.repeatCount; r++ {
			cell := b.cellAt(b.sixelRow, b.sixelColumn)
			for i := range cell {
				cell[i] = b.currentPalette
			}
			b.sixelColumn++
		}
	default:
		mask := 1
		if b.repeatCount == 1 {
			for i := 0; i < sixelSize; i++ {
				if value&mask != 0 {
					b.cellAt(b.sixelRow, b.sixelColumn)[i] = b.currentPalette
				}
				mask <<= 1
			}
			b.sixelColumn++
		} else if b.repeatCount > 1 {
			base := b.sixelColumn
			for i := 0; i < sixelSize; i++ {
				if value&mask != 0 {
					cc := mask << 1
					n := 1
					for i+n < sixelSize {
						if value&cc == 0 {
							break
						}
						cc <<= 1
						n++
					}

					for r := 0; r < b.repeatCount; r++ {
						cell := b.cellAt(b.sixelRow, base+r)
						for k := i; k < i+n; k++ {
							cell[k] = b.currentPalette
						}
					}

					i += n - 1
					mask <<= n - 1
				}
				mask <<= 1
			}
			b.sixelColumn = base + b.repeatCount
		}
	}
	b.repeatCount = 1
}

func (b *Buffer) ensureRow(row int) {
	if row >= len(b.buffer) {
		diff := row + 1 - len(b.buffer)
		b.buffer = append(b.buffer, make([][]sixelCell, diff)...)
	}
}

func (b *Buffer) cellAt(row, col int) *sixelCell {
	b.ensureRow(row)
	line := b.buffer[row]
	if col >= len(line) {
		diff := col + 1 - len(line)
		pad := make([]sixelCell, diff)
		for i := range pad {
			for j := range pad[i] {
				pad[i][j] = colorTableTransparent
			}
		}
		line = append(line, pad...)
		b.buffer[row] = line
	}
	return &b.buffer[row][col]
}

func isFullyTransparent(cell sixelCell) bool {
	for _, idx := range cell {
		if idx != colorTableTransparent {
			return false
		}
	}
	return true
}

func argbToRGBA(c uint32) color.RGBA {
	return color.RGBA{
		R: byte(c >> 16),
		G: byte(c >> 8),
		B: byte(c),
		A: byte(c >> 24),
	}
}

// Finalize materializes the accumulated sixel columns into a dense RGBA
// image and transitions the parser to its Finished state. It returns
// whether the resulting image is non-empty; a parser that never received
// any sixel data returns false with GetSize()=={0,0}.
func (b *Buffer) Finalize() bool {
	switch b.parseState {
	case stateUninitialized:
		return false
	case stateFinished:
		return len(b.pixels) > 0 && b.pixelBufferSize != (Size{})
	}

	// Trim every row's trailing fully-transparent sixel cells, then drop
	// the contiguous run of now-empty rows from the bottom.
	for i, line := range b.buffer {
		j := len(line)
		for j > 0 && isFullyTransparent(line[j-1]) {
			j--
		}
		b.buffer[i] = line[:j]
	}
	n := len(b.buffer)
	for n > 0 && len(b.buffer[n-1]) == 0 {
		n--
	}
	b.buffer = b.buffer[:n]

	maxLineWidth := 0
	for _, line := range b.buffer {
		if len(line) > maxLineWidth {
			maxLineWidth = len(line)
		}
	}

	b.pixelBufferSize = Size{
		Width:  maxLineWidth * b.pixelSize.Width,
		Height: len(b.buffer) * sixelSize * b.pixelSize.Height,
	}
	b.pixels = make([]color.RGBA, b.pixelBufferSize.Width*b.pixelBufferSize.Height)

	if b.paletteZeroIsBackground {
		b.colorTable[0] = b.colorTable[colorTableBackground]
	}

	lastOpaquePixel := 0
	lastRow := len(b.buffer) - 1

	for row, line := range b.buffer {
		for col, cell := range line {
			for pixel := 0; pixel < sixelSize; pixel++ {
				idx := cell[pixel]
				rgba := argbToRGBA(b.colorTable[idx])

				for pj := 0; pj < b.pixelSize.Height; pj++ {
					for pi := 0; pi < b.pixelSize.Width; pi++ {
						px := col*b.pixelSize.Width + pi
						py := row*sixelSize*b.pixelSize.Height + pixel*b.pixelSize.Height + pj
						pindex := py*b.pixelBufferSize.Width + px
						b.pixels[pindex] = rgba

						if row == lastRow && pj == b.pixelSize.Height-1 && int(idx) != colorTableTransparent {
							lastOpaquePixel = pindex
						}
					}
				}
			}
		}
	}

	if len(b.pixels) > 0 {
		rowsToErase := ((len(b.pixels) - 1) - lastOpaquePixel) / b.pixelBufferSize.Width
		if rowsToErase > 0 {
			b.pixelBufferSize.Height -= rowsToErase
			b.pixels = b.pixels[:b.pixelBufferSize.Width*b.pixelBufferSize.Height]
		}
	}

	b.sixelRow, b.sixelColumn = 0, 0
	b.buffer = nil
	b.parseState = stateFinished

	return len(b.pixels) > 0 && b.pixelBufferSize != (Size{})
}
