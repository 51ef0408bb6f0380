package rasterfont

import (
	"fmt"
	"log"
	"sync/atomic"
)

const (
	maxCharCount     = 256
	drcsCharCount    = 96
	defaultFirstChar = 0x20
)

// faceNameCounter is the single process-wide monotonic counter used to
// generate unique face names. Only uniqueness across the process lifetime
// is required, not ordering between concurrent builds, so a relaxed atomic
// increment is sufficient.
var faceNameCounter atomic.Uint64

// FontResource builds an in-memory binary font resource from a source bit
// pattern, resizing it to an arbitrary target cell size, and owns the
// lifetime of the registration returned by a FontRegistrar.
type FontResource struct {
	bitPattern    BitPattern
	sourceSize    Size
	targetSize    Size
	centeringHint int
	firstChar     byte
	charCount     int

	registrar FontRegistrar
	image     []byte
	faceName  string
	resHandle RegistrationHandle
	glyph     GlyphHandle
}

// NewFontResource constructs a FontResource for the given character range.
// charCount is clamped to 256.
func NewFontResource(registrar FontRegistrar, bitPattern BitPattern, sourceSize, targetSize Size, centeringHint int, firstChar byte, charCount int) *FontResource {
	if charCount > maxCharCount {
		charCount = maxCharCount
	}
	if registrar == nil {
		registrar = NullRegistrar{}
	}
	return &FontResource{
		bitPattern:    bitPattern,
		sourceSize:    sourceSize,
		targetSize:    targetSize,
		centeringHint: centeringHint,
		firstChar:     firstChar,
		charCount:     charCount,
		registrar:     registrar,
	}
}

// NewDefaultFontResource is NewFontResource with firstChar=0x20 and
// charCount=96, the DRCS soft-font range.
func NewDefaultFontResource(registrar FontRegistrar, bitPattern BitPattern, sourceSize, targetSize Size, centeringHint int) *FontResource {
	return NewFontResource(registrar, bitPattern, sourceSize, targetSize, centeringHint, defaultFirstChar, drcsCharCount)
}

// SetTargetSize changes the cell size the resource will be rebuilt at. If
// the size actually changes, any previously built handle is released so
// the next AsHandle call rebuilds it.
func (f *FontResource) SetTargetSize(targetSize Size) {
	if f.targetSize == targetSize {
		return
	}
	f.targetSize = targetSize
	f.releaseHandles()
	f.image = nil
}

// AsHandle lazily builds the resource if necessary and returns the glyph
// handle suitable for glyph selection, or nil if registration failed.
func (f *FontResource) AsHandle() GlyphHandle {
	if f.glyph == nil && len(f.bitPattern) > 0 {
		f.build()
	}
	return f.glyph
}

// Image returns the raw FontResourceImage bytes, building them if
// necessary. It never registers the result with a FontRegistrar.
func (f *FontResource) Image() []byte {
	if f.image == nil {
		f.image = f.marshalImage()
	}
	return f.image
}

// Close releases any owned registration and glyph handles.
func (f *FontResource) Close() {
	f.releaseHandles()
}

func (f *FontResource) releaseHandles() {
	if f.glyph != nil {
		f.glyph.Release()
		f.glyph = nil
	}
	if f.resHandle != nil {
		f.resHandle.Release()
		f.resHandle = nil
	}
}

// glyphByteSize returns the size, in bytes, of one glyph's PackedGlyphStrip.
func (f *FontResource) glyphByteSize() int {
	return (f.targetSize.Width+7)/8*f.targetSize.Height
}

func (f *FontResource) marshalImage() []byte {
	glyphByteSize := f.glyphByteSize()
	charTableSize := glyphEntrySize * f.charCount
	bitmapSize := glyphByteSize * f.charCount
	totalSize := headerSize + charTableSize + faceNameSize + bitmapSize

	faceOffset := headerSize + charTableSize
	bitsOffset := faceOffset + faceNameSize

	h := header{
		totalSize:  uint32(totalSize),
		pixWidth:   uint16(f.targetSize.Width),
		pixHeight:  uint16(f.targetSize.Height),
		firstChar:  f.firstChar,
		lastChar:   f.firstChar + byte(f.charCount-1),
		faceOffset: uint32(faceOffset),
		bitsOffset: uint32(bitsOffset),
	}

	buf := make([]byte, 0, totalSize)
	buf = append(buf, h.marshal()...)

	for i := 0; i < f.charCount; i++ {
		entry := glyphEntry{
			width:  uint16(f.targetSize.Width),
			offset: uint32(bitsOffset + i*glyphByteSize),
		}
		buf = append(buf, entry.marshal()...)
	}

	f.faceName = fmt.Sprintf("WTRASTERFONT%016X", faceNameCounter.Add(1))
	nameBytes := make([]byte, faceNameSize)
	copy(nameBytes, f.faceName)
	buf = append(buf, nameBytes...)

	bitmap, err := Scale(f.bitPattern, f.sourceSize, f.targetSize, f.centeringHint, f.charCount)
	if err != nil {
		log.Printf("rasterfont: failed to resize bit pattern: %v", err)
		bitmap = make([]byte, bitmapSize)
	}
	buf = append(buf, bitmap...)

	return buf
}

func (f *FontResource) build() {
	f.releaseHandles()
	image := f.marshalImage()
	f.image = image

	resHandle, err := f.registrar.RegisterMemoryFont(image)
	if err != nil {
		log.Printf("rasterfont: RegisterMemoryFont failed: %v", err)
		return
	}
	f.resHandle = resHandle

	glyph, err := f.registrar.CreateGlyphFromDescriptor(GlyphDescriptor{
		Height:       f.targetSize.Height,
		Width:        f.targetSize.Width,
		Charset:      oemCharset,
		OutPrecision: outPrecisionRaster,
		PitchFixed:   true,
		FaceName:     f.faceName,
	})
	if err != nil {
		log.Printf("rasterfont: CreateGlyphFromDescriptor failed: %v", err)
		return
	}
	f.glyph = glyph
}

const outPrecisionRaster = 0x06
