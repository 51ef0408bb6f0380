// Command rasterfontgen synthesizes the Unicode block/shade/quadrant glyph
// set at a given source cell size, resizes it to a target cell size, and
// writes the resulting legacy font resource image to a file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anders-lindqvist/vtraster/rasterfont"
)

func main() {
	srcWidth := flag.Int("srcwidth", 8, "source glyph cell width in pixels (2-16)")
	srcHeight := flag.Int("srcheight", 16, "source glyph cell height in pixels (4-32)")
	dstWidth := flag.Int("width", 10, "target glyph cell width in pixels")
	dstHeight := flag.Int("height", 20, "target glyph cell height in pixels")
	centering := flag.Int("centering", 0, "source columns to exclude from one side of the cell when computing the scale")
	outputFile := flag.String("output", "blockfont.fnt", "path to write the font resource image")
	flag.Parse()

	sourceSize := rasterfont.Size{Width: *srcWidth, Height: *srcHeight}
	targetSize := rasterfont.Size{Width: *dstWidth, Height: *dstHeight}

	bitPattern := rasterfont.BlockGlyphs(sourceSize)

	res := rasterfont.NewFontResource(
		rasterfont.NullRegistrar{},
		bitPattern,
		sourceSize,
		targetSize,
		*centering,
		0x20,
		rasterfont.BlockGlyphCount,
	)
	defer res.Close()

	image := res.Image()

	if err := os.WriteFile(*outputFile, image, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "rasterfontgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d bytes to %s (%d glyphs, %dx%d -> %dx%d)\n",
		len(image), *outputFile, rasterfont.BlockGlyphCount,
		*srcWidth, *srcHeight, *dstWidth, *dstHeight)
}
