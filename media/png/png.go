// Package png is the PNG carrier media adapter: decode arbitrary PNGs
// (any color type) into the RGBA8 buffer the cursor consumes, and
// re-encode an RGBA8 buffer back to PNG bytes without disturbing the RGB
// bytes the cursor wrote.
//
// Grounded on zanicar/stegano's png/png.go (image.Decode + image/png.Encode
// around an image.NRGBA buffer), generalized from that package's 2-LSB
// custom header scheme to a plain decode/encode adapter — the envelope and
// header logic live in this module's framing/container packages instead.
package png

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"

	"github.com/joakimsorensen/stegolsb/models"
)

// Decode reads PNG (or JPEG, accepted for convenience the way
// zanicar/stegano's adapter does) bytes and returns an RGBA8 ImageCarrier.
func Decode(data []byte) (*models.ImageCarrier, *models.StegoError) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, models.IoError(fmt.Errorf("decode image: %w", err))
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, models.ErrCarrierFormat
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		nrgba = dst
	}

	// image.NRGBA rows may be padded (Stride > 4*width); copy into a
	// tightly packed buffer so the cursor's 4*p+c addressing holds.
	pix := make([]byte, 4*width*height)
	for y := 0; y < height; y++ {
		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*width]
		copy(pix[y*4*width:(y+1)*4*width], srcRow)
	}

	return &models.ImageCarrier{Width: width, Height: height, Pix: pix}, nil
}

// Encode writes an RGBA8 ImageCarrier back out as a PNG, preserving every
// alpha byte exactly as decoded (the alpha channel is never touched by the
// cursor, per spec.md §8's alpha-preservation invariant).
func Encode(c *models.ImageCarrier) ([]byte, *models.StegoError) {
	img := &image.NRGBA{
		Pix:    c.Pix,
		Stride: 4 * c.Width,
		Rect:   image.Rect(0, 0, c.Width, c.Height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, models.IoError(fmt.Errorf("encode png: %w", err))
	}
	return buf.Bytes(), nil
}
