package png

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/joakimsorensen/stegolsb/models"
)

func encodeTestPNG(t *testing.T, w, h int, fill func(x, y int) color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeProducesRGBA8Buffer(t *testing.T) {
	data := encodeTestPNG(t, 2, 2, func(x, y int) color.NRGBA {
		return color.NRGBA{R: byte(x), G: byte(y), B: 0, A: 0xFF}
	})

	carrier, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if carrier.Width != 2 || carrier.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", carrier.Width, carrier.Height)
	}
	if len(carrier.Pix) != 4*2*2 {
		t.Fatalf("len(Pix) = %d, want %d", len(carrier.Pix), 4*2*2)
	}
}

func TestEncodeDecodePreservesAlpha(t *testing.T) {
	alphas := []byte{0x00, 0x80, 0xFF}
	data := encodeTestPNG(t, 3, 1, func(x, y int) color.NRGBA {
		return color.NRGBA{R: 10, G: 20, B: 30, A: alphas[x]}
	})

	carrier, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// Flip every RGB LSB, as hide would, leaving alpha alone.
	for i := 0; i < len(carrier.Pix); i += 4 {
		carrier.Pix[i] ^= 1
		carrier.Pix[i+1] ^= 1
		carrier.Pix[i+2] ^= 1
	}

	out, err := Encode(carrier)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	roundTripped, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode(Encode(...)): %v", err)
	}
	for p := 0; p < 3; p++ {
		got := roundTripped.Pix[4*p+3]
		if got != alphas[p] {
			t.Errorf("pixel %d alpha = %#x, want %#x", p, got, alphas[p])
		}
	}
}

func TestBytesCapacityIsThreeBytesPerPixel(t *testing.T) {
	carrier := &models.ImageCarrier{Width: 4, Height: 4, Pix: make([]byte, 4*4*4)}
	if got, want := carrier.BytesCapacity(), 4*4*3; got != want {
		t.Errorf("BytesCapacity() = %d, want %d", got, want)
	}
}
