package sixel

import "testing"

func TestPaletteSizeMatchesReservedSlots(t *testing.T) {
	if PaletteSize != 1<<16-2 {
		t.Errorf("PaletteSize = %d, want %d", PaletteSize, 1<<16-2)
	}
	if colorTableTransparent != PaletteSize {
		t.Errorf("colorTableTransparent = %d, want %d (PaletteSize)", colorTableTransparent, PaletteSize)
	}
	if colorTableBackground != PaletteSize+1 {
		t.Errorf("colorTableBackground = %d, want %d", colorTableBackground, PaletteSize+1)
	}
}

func TestColorFromRGB100(t *testing.T) {
	cases := []struct {
		r, g, b int
		want    uint32
	}{
		{0, 0, 0, 0x000000},
		{100, 100, 100, 0xFFFFFF},
		{100, 0, 0, 0xFF0000},
	}
	for _, c := range cases {
		got := colorFromRGB100(c.r, c.g, c.b)
		if got != c.want {
			t.Errorf("colorFromRGB100(%d,%d,%d) = %#06x, want %#06x", c.r, c.g, c.b, got, c.want)
		}
	}
}

func TestColorFromRGB100ClampsOutOfRange(t *testing.T) {
	got := colorFromRGB100(-10, 200, 50)
	want := colorFromRGB100(0, 100, 50)
	if got != want {
		t.Errorf("out-of-range clamp: got %#06x, want %#06x", got, want)
	}
}

func TestColorFromHLSGrayscale(t *testing.T) {
	got := colorFromHLS(0, 50, 0)
	r, g, b := byte(got>>16), byte(got>>8), byte(got)
	if r != g || g != b {
		t.Errorf("zero-saturation HLS should be gray, got r=%d g=%d b=%d", r, g, b)
	}
}
