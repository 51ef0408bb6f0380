package sixel

import "testing"

func feed(b *Buffer, s string) {
	for _, ch := range s {
		b.AddData(ch)
	}
}

func TestFinalizeWithNoDataIsEmpty(t *testing.T) {
	b := NewBuffer()
	feed(b, "?") // value 0: advances the column cursor without painting a cell

	if b.Finalize() {
		t.Error("Finalize() = true, want false for a stream with no painted cells")
	}
	if size := b.GetSize(); size != (Size{}) {
		t.Errorf("GetSize() = %+v, want zero value", size)
	}
}

func TestSingleFullColumn(t *testing.T) {
	b := NewBuffer()
	b.SetPalette(nil) // load the default 16-color table

	feed(b, "#1~") // select palette 1 (blue), then a fully-set sixel column

	if !b.Finalize() {
		t.Fatal("Finalize() = false, want true")
	}

	size := b.GetSize()
	wantWidth := b.pixelSize.Width
	wantHeight := sixelSize * b.pixelSize.Height
	if size.Width != wantWidth || size.Height != wantHeight {
		t.Fatalf("GetSize() = %+v, want {%d %d}", size, wantWidth, wantHeight)
	}

	wantColor := argbToRGBA(0xFF000000 | colorFromRGB100(defaultPalette[1][0], defaultPalette[1][1], defaultPalette[1][2]))
	for _, px := range b.GetPixels() {
		if px != wantColor {
			t.Fatalf("pixel = %+v, want %+v", px, wantColor)
		}
	}
}

func TestRepeatIntroducerRepeatsColumns(t *testing.T) {
	b := NewBuffer()
	b.SetPalette(nil)

	feed(b, "#2!3~") // select palette 2, repeat the full-set value 3 times

	if !b.Finalize() {
		t.Fatal("Finalize() = false, want true")
	}

	size := b.GetSize()
	wantWidth := 3 * b.pixelSize.Width
	if size.Width != wantWidth {
		t.Errorf("width = %d, want %d", size.Width, wantWidth)
	}
}

func TestGraphicsNextLineAdvancesRow(t *testing.T) {
	b := NewBuffer()
	b.SetPalette(nil)

	feed(b, "#1~-#1~") // one column, next line, another column

	if !b.Finalize() {
		t.Fatal("Finalize() = false, want true")
	}

	size := b.GetSize()
	wantHeight := 2 * sixelSize * b.pixelSize.Height
	if size.Height != wantHeight {
		t.Errorf("height = %d, want %d", size.Height, wantHeight)
	}
}

func TestGraphicsCarriageReturnResetsColumn(t *testing.T) {
	b := NewBuffer()
	b.SetPalette(nil)

	feed(b, "#1~~$#2~") // two columns, return to column 0, overwrite with palette 2

	if !b.Finalize() {
		t.Fatal("Finalize() = false, want true")
	}

	size := b.GetSize()
	wantWidth := 2 * b.pixelSize.Width
	if size.Width != wantWidth {
		t.Errorf("width = %d, want %d (carriage return should not grow the row)", size.Width, wantWidth)
	}
}

func TestSetRasterAttributesSetsAttributedSize(t *testing.T) {
	b := NewBuffer()
	feed(b, `"1;1;100;50`)
	b.AddData('~')
	b.Finalize()

	if b.attributedSize.Width != 100 || b.attributedSize.Height != 50 {
		t.Errorf("attributedSize = %+v, want {100 50}", b.attributedSize)
	}
}

func TestOutOfRangePaletteIndexMapsToTransparent(t *testing.T) {
	b := NewBuffer()
	b.SetPalette(nil)

	// Select a palette index far beyond PaletteSize; it should clamp onto
	// the reserved transparent slot rather than wrap or panic.
	feed(b, "#99999~")
	b.Finalize()

	for _, px := range b.GetPixels() {
		if px.A != 0 {
			t.Errorf("pixel = %+v, want fully transparent", px)
		}
	}
}

func TestParameterOverflowDoesNotPanic(t *testing.T) {
	b := NewBuffer()
	feed(b, "#")
	for i := 0; i < 40; i++ {
		feed(b, "1;")
	}
	b.AddData('~')
	b.Finalize()
}

func TestReuseAfterFinalizeStartsFreshImage(t *testing.T) {
	b := NewBuffer()
	b.SetPalette(nil)

	feed(b, "#1~")
	b.Finalize()
	firstSize := b.GetSize()

	feed(b, "#1~~")
	b.Finalize()
	secondSize := b.GetSize()

	if secondSize.Width <= firstSize.Width {
		t.Errorf("second image width %d should exceed first %d", secondSize.Width, firstSize.Width)
	}
}
