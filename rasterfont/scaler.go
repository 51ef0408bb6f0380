package rasterfont

import (
	"fmt"
	"math"
)

// increment implements the two-dimensional Bresenham-style error-diffusion
// stride used to resample a source dimension onto a target dimension. The
// parameters are computed once from a (source, target) pair; the running
// error total is threaded through explicitly so the same increment can be
// reset independently for every scanline and every glyph strip.
type increment struct {
	base      int
	errIncr   int
	errThresh int
	errReset  int
}

func newIncrement(sourceDim, targetDim int) increment {
	return increment{
		base:      sourceDim / targetDim,
		errIncr:   (sourceDim % targetDim) * 2,
		errThresh: targetDim*2 - min(sourceDim, targetDim),
		errReset:  targetDim * 2,
	}
}

// next advances err and returns the span (number of source units) that the
// next target unit should cover.
func (inc increment) next(err *int) int {
	*err += inc.errIncr
	if *err > inc.errThresh {
		*err -= inc.errReset
		return inc.base + 1
	}
	return inc.base
}

// Scale resizes charCount glyphs in bitPattern from sourceSize to
// targetSize, applying centeringHint source columns of horizontal
// correction, and returns the packed target bytes in the column-major
// 8-bit-strip layout described by PackedGlyphStrip: for each glyph, for
// each 8-pixel-wide strip left to right, for each target scanline top to
// bottom, one MSB-first byte.
//
// Scale fails if either cell width exceeds 16 bits or charCount is zero.
func Scale(bitPattern BitPattern, sourceSize, targetSize Size, centeringHint, charCount int) ([]byte, error) {
	if sourceSize.Width > 16 || targetSize.Width > 16 {
		return nil, fmt.Errorf("rasterfont: cell width must be <= 16 bits (source=%d target=%d)", sourceSize.Width, targetSize.Width)
	}
	if charCount == 0 {
		return nil, fmt.Errorf("rasterfont: charCount must be > 0")
	}

	sourceWidth := sourceSize.Width
	correctedTargetWidth := targetSize.Width

	// If the glyphs aren't perfectly centered in their source cell, trim
	// centeringHint columns from the source (and a proportional number of
	// target columns) before computing the scaling increments, so inserted
	// or deleted columns are evenly distributed around the glyph center.
	if centeringHint > 0 {
		correctedTargetWidth -= int(math.Round(float64(centeringHint) * float64(targetSize.Width) / float64(sourceWidth)))
		sourceWidth -= centeringHint
	}

	columnStep := newIncrement(sourceWidth, correctedTargetWidth)
	lineStep := newIncrement(sourceSize.Height, targetSize.Height)

	// Restore the full target width now that the increments are computed;
	// the extra target columns introduced by the centering correction will
	// be filled from whatever source data the column stepper produces at
	// the right edge (blank pad).
	targetWidth := targetSize.Width
	targetHeight := targetSize.Height
	sourceHeight := sourceSize.Height

	stripBytes := (targetWidth + 7) / 8
	out := make([]byte, 0, charCount*stripBytes*targetHeight)

	for ch := 0; ch < charCount; ch++ {
		sourceColumn := 1 << 16
		sourceColumnErr := 0

		for targetX := 0; targetX < targetWidth; targetX += 8 {
			sourceLine := ch * sourceHeight
			sourceLineErr := 0

			// Per-strip horizontal state: every scanline within this strip
			// starts from the same source-column position.
			initialSourceColumn := sourceColumn
			initialSourceColumnErr := sourceColumnErr

			for targetY := 0; targetY < targetHeight; targetY++ {
				sourceColumn = initialSourceColumn
				sourceColumnErr = initialSourceColumnErr

				lineSpan := lineStep.next(&sourceLineErr)
				mergeSpan := lineSpan
				if mergeSpan < 1 {
					mergeSpan = 1
				}
				sourceValue := 0
				for i := 0; i < mergeSpan; i++ {
					idx := sourceLine + i
					if idx >= 0 && idx < len(bitPattern) {
						sourceValue |= int(bitPattern[idx])
					}
				}
				sourceLine += lineSpan

				var targetValue byte
				for bit := 0; bit < 8; bit++ {
					targetValue <<= 1
					if targetX+bit < targetWidth {
						colSpan := columnStep.next(&sourceColumnErr)
						nextSourceColumn := sourceColumn >> colSpan
						shift := 0
						if colSpan == 0 {
							shift = 1
						}
						sourceMask := sourceColumn - (nextSourceColumn >> shift)
						sourceColumn = nextSourceColumn
						if sourceValue&sourceMask != 0 {
							targetValue |= 1
						}
					}
				}
				out = append(out, targetValue)
			}
		}
	}

	return out, nil
}
