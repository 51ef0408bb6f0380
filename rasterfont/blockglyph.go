package rasterfont

// FirstBlockGlyph is the first code point (U+2580, upper half block) of the
// 32-glyph Unicode block/shade/quadrant set BlockGlyphs generates.
const FirstBlockGlyph = 0x2580

// BlockGlyphCount is the number of glyphs BlockGlyphs always produces.
const BlockGlyphCount = 32

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ceilEighths returns ceil(total*n/8) using pure integer arithmetic.
func ceilEighths(total, n int) int {
	return (total*n + 7) / 8
}

// floorEighths returns floor(total*n/8).
func floorEighths(total, n int) int {
	return total * n / 8
}

// leftMask sets the top n bits of a 16-bit scanline (the leftmost n pixel
// columns), built by repeated OR-shift as described for the width splits.
func leftMask(n int) uint16 {
	var mask uint16
	bit := uint16(1 << 15)
	for i := 0; i < n; i++ {
		mask |= bit
		bit >>= 1
	}
	return mask
}

// BlockGlyphs synthesizes the 32-glyph bit pattern covering U+2580..U+259F
// (block, shade, and quadrant elements) for the given cell size, using
// only integer splits of width/height into eighths/quarters/halves and
// repeated OR-shift bit masks. cellSize.Width is clamped to [2,16] and
// cellSize.Height to [4,32].
func BlockGlyphs(cellSize Size) BitPattern {
	width := clamp(cellSize.Width, 2, 16)
	height := clamp(cellSize.Height, 4, 32)

	all := leftMask(width)
	none := uint16(0)

	leftEighths := func(n int) uint16 { return leftMask(ceilEighths(width, n)) }
	rightHalf := all &^ leftMask(ceilEighths(width, 4))
	rightEighth := all &^ leftMask(width-ceilEighths(width, 1))

	upperHalf := floorEighths(height, 4)
	lowerHalf := height - upperHalf

	lightA, lightB := uint16(0xAAAA)&all, uint16(0x5555)&all
	mediumEven, mediumOdd := uint16(0xAAAA)&all, uint16(0x5555)&all

	out := make(BitPattern, 0, BlockGlyphCount*height)

	rows := func(n int, value uint16) {
		for i := 0; i < n; i++ {
			out = append(out, value)
		}
	}
	checker := func(evenRow, oddRow uint16) {
		for y := 0; y < height; y++ {
			if y%2 == 0 {
				out = append(out, evenRow)
			} else {
				out = append(out, oddRow)
			}
		}
	}
	quadrant := func(topLeft, topRight, bottomLeft, bottomRight bool) {
		topLeftMask := leftMask(ceilEighths(width, 4))
		topRightMask := all &^ topLeftMask
		var top, bottom uint16
		if topLeft {
			top |= topLeftMask
		}
		if topRight {
			top |= topRightMask
		}
		if bottomLeft {
			bottom |= topLeftMask
		}
		if bottomRight {
			bottom |= topRightMask
		}
		rows(upperHalf, top)
		rows(lowerHalf, bottom)
	}

	// U+2580 upper half block
	rows(upperHalf, all)
	rows(lowerHalf, none)

	// U+2581..U+2587 lower one-eighth through lower seven-eighths
	for n := 1; n <= 7; n++ {
		filled := ceilEighths(height, n)
		blank := height - filled
		rows(blank, none)
		rows(filled, all)
	}

	// U+2588 full block
	rows(height, all)

	// U+2589..U+258F left seven-eighths through left one-eighth
	for n := 7; n >= 1; n-- {
		rows(height, leftEighths(n))
	}

	// U+2590 right half block
	rows(height, rightHalf)

	// U+2591 light shade (25%): 4-phase row cycle, average density 1/4
	for y := 0; y < height; y++ {
		switch y % 4 {
		case 0:
			out = append(out, lightA)
		case 2:
			out = append(out, lightB)
		default:
			out = append(out, none)
		}
	}

	// U+2592 medium shade (50%): 2-phase checker
	checker(mediumEven, mediumOdd)

	// U+2593 dark shade (75%): medium pattern OR'd with full rows
	checker(all, mediumEven)

	// U+2594 upper one-eighth block
	filled := ceilEighths(height, 1)
	rows(filled, all)
	rows(height-filled, none)

	// U+2595 right one-eighth block
	rows(height, rightEighth)

	// U+2596..U+259F quadrants
	quadrant(false, false, true, false)  // 2596 lower left
	quadrant(false, false, false, true)  // 2597 lower right
	quadrant(true, false, false, false)  // 2598 upper left
	quadrant(true, false, true, true)    // 2599 upper left + lower left + lower right
	quadrant(true, false, false, true)   // 259A upper left + lower right
	quadrant(true, true, true, false)    // 259B upper left + upper right + lower left
	quadrant(true, true, false, true)    // 259C upper left + upper right + lower right
	quadrant(false, true, false, false)  // 259D upper right
	quadrant(false, true, true, false)   // 259E upper right + lower left
	quadrant(false, true, true, true)    // 259F upper right + lower left + lower right

	return out
}
