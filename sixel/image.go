package sixel

import (
	stdimage "image"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// Image converts the finalized pixel grid into a standard library RGBA
// image. Calling it before Finalize, or when Finalize returned false,
// yields a zero-sized image.
func (b *Buffer) Image() *stdimage.RGBA {
	size := b.GetSize()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, size.Width, size.Height))
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			img.SetRGBA(x, y, b.pixels[y*size.Width+x])
		}
	}
	return img
}

// Resample scales the finalized image to exactly targetSize using
// nearest-neighbor interpolation, matching the blocky, aliasing-preserving
// look terminals render sixel pixels with.
func (b *Buffer) Resample(targetSize Size) *stdimage.RGBA {
	src := b.Image()
	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, targetSize.Width, targetSize.Height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), stddraw.Src, nil)
	return dst
}
