package rasterfont

import (
	"encoding/binary"
	"testing"
)

func TestFontResourceImageLayout(t *testing.T) {
	sourceSize := Size{Width: 8, Height: 8}
	targetSize := Size{Width: 8, Height: 8}
	bitPattern := BlockGlyphs(sourceSize)

	res := NewFontResource(NullRegistrar{}, bitPattern, sourceSize, targetSize, 0, 0x20, BlockGlyphCount)
	image := res.Image()

	le := binary.LittleEndian
	if got := le.Uint16(image[0:]); got != 0x0300 {
		t.Errorf("version: got %#04x, want 0x0300", got)
	}
	if got := le.Uint32(image[2:]); int(got) != len(image) {
		t.Errorf("totalSize field %d != actual length %d", got, len(image))
	}
	if got := le.Uint16(image[86:]); int(got) != targetSize.Width {
		t.Errorf("pixWidth: got %d, want %d", got, targetSize.Width)
	}
	if got := le.Uint16(image[88:]); int(got) != targetSize.Height {
		t.Errorf("pixHeight: got %d, want %d", got, targetSize.Height)
	}
	if image[95] != 0x20 {
		t.Errorf("firstChar: got %#02x, want 0x20", image[95])
	}
	if image[96] != 0x20+BlockGlyphCount-1 {
		t.Errorf("lastChar: got %#02x, want %#02x", image[96], 0x20+BlockGlyphCount-1)
	}

	faceOffset := le.Uint32(image[106:])
	bitsOffset := le.Uint32(image[114:])
	if int(bitsOffset) <= int(faceOffset) {
		t.Errorf("bitsOffset %d should follow faceOffset %d", bitsOffset, faceOffset)
	}

	glyphByteSize := (targetSize.Width + 7) / 8 * targetSize.Height
	wantTotal := headerSize + glyphEntrySize*BlockGlyphCount + faceNameSize + glyphByteSize*BlockGlyphCount
	if len(image) != wantTotal {
		t.Errorf("image length %d, want %d", len(image), wantTotal)
	}
}

func TestFontResourceSetTargetSizeRebuilds(t *testing.T) {
	sourceSize := Size{Width: 8, Height: 8}
	bitPattern := BlockGlyphs(sourceSize)

	res := NewFontResource(NullRegistrar{}, bitPattern, sourceSize, sourceSize, 0, 0x20, BlockGlyphCount)
	first := res.Image()

	res.SetTargetSize(Size{Width: 10, Height: 16})
	second := res.Image()

	if len(first) == len(second) {
		t.Error("expected image size to change after SetTargetSize")
	}
}

func TestFontResourceAsHandleUsesRegistrar(t *testing.T) {
	sourceSize := Size{Width: 8, Height: 8}
	bitPattern := BlockGlyphs(sourceSize)

	fake := &recordingRegistrar{}
	res := NewFontResource(fake, bitPattern, sourceSize, sourceSize, 0, 0x20, BlockGlyphCount)
	defer res.Close()

	handle := res.AsHandle()
	if handle == nil {
		t.Fatal("expected non-nil handle")
	}
	if fake.registerCalls != 1 {
		t.Errorf("RegisterMemoryFont calls: got %d, want 1", fake.registerCalls)
	}
	if fake.glyphCalls != 1 {
		t.Errorf("CreateGlyphFromDescriptor calls: got %d, want 1", fake.glyphCalls)
	}
}

func TestNewFontResourceClampsCharCount(t *testing.T) {
	sourceSize := Size{Width: 8, Height: 8}
	bitPattern := BlockGlyphs(sourceSize)

	res := NewFontResource(NullRegistrar{}, bitPattern, sourceSize, sourceSize, 0, 0x00, 500)
	if res.charCount != maxCharCount {
		t.Errorf("charCount: got %d, want %d", res.charCount, maxCharCount)
	}
}

type recordingRegistrar struct {
	registerCalls int
	glyphCalls    int
}

func (r *recordingRegistrar) RegisterMemoryFont([]byte) (RegistrationHandle, error) {
	r.registerCalls++
	return nullHandle{}, nil
}

func (r *recordingRegistrar) CreateGlyphFromDescriptor(GlyphDescriptor) (GlyphHandle, error) {
	r.glyphCalls++
	return nullHandle{}, nil
}
