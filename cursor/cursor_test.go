package cursor

import "testing"

import "github.com/joakimsorensen/stegolsb/models"

func newImageCarrier(w, h int) *models.Carrier {
	pix := make([]byte, 4*w*h)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xFF // alpha
	}
	return &models.Carrier{Kind: models.CarrierImage, Image: &models.ImageCarrier{Width: w, Height: h, Pix: pix}}
}

func TestCapacityIsThreeBytesPerPixel(t *testing.T) {
	carrier := newImageCarrier(4, 4)
	c := New(carrier)

	if got, want := c.Capacity(), 4*4*3; got != want {
		t.Errorf("Capacity() = %d, want %d", got, want)
	}
}

func TestWriteBitThenReadBitRoundTrips(t *testing.T) {
	carrier := newImageCarrier(2, 2)
	c := New(carrier)

	bits := []bool{true, false, true, true, false, false, true, false}
	for _, b := range bits {
		if !c.WriteBit(b) {
			t.Fatalf("WriteBit(%v) returned false unexpectedly", b)
		}
	}

	c.Seek(0)
	for i, want := range bits {
		got, ok := c.ReadBit()
		if !ok {
			t.Fatalf("ReadBit() at index %d: ok=false", i)
		}
		if got != want {
			t.Errorf("ReadBit() at index %d = %v, want %v", i, got, want)
		}
	}
}

func TestReadBitExhaustedReturnsFalse(t *testing.T) {
	carrier := newImageCarrier(1, 1)
	c := New(carrier)
	for i := 0; i < c.Capacity(); i++ {
		if _, ok := c.ReadBit(); !ok {
			t.Fatalf("ReadBit() at index %d: unexpected ok=false", i)
		}
	}
	if _, ok := c.ReadBit(); ok {
		t.Error("ReadBit() past capacity: want ok=false")
	}
}

func TestWriteBitNeverTouchesAlphaByte(t *testing.T) {
	carrier := newImageCarrier(1, 1)
	c := New(carrier)
	for i := 0; i < c.Capacity(); i++ {
		c.WriteBit(true)
	}
	if carrier.Image.Pix[3] != 0xFF {
		t.Errorf("alpha byte = %#x, want 0xff (untouched)", carrier.Image.Pix[3])
	}
}

func TestAudioCursorTouchesOnlyLowByte(t *testing.T) {
	carrier := &models.Carrier{Kind: models.CarrierAudio, Audio: &models.AudioCarrier{
		SampleRate: 44100, Channels: 1, Samples: []int16{0x7F00, -1, 0},
	}}
	c := New(carrier)

	c.WriteBit(true)
	c.WriteBit(false)
	c.WriteBit(true)

	if got := carrier.Audio.Samples[0]; uint16(got)&0xFF00 != 0x7F00 {
		t.Errorf("sample 0 high byte changed: got %#x", got)
	}
	// sign bit (bit 15) of sample 1 (-1 == 0xFFFF) must survive writing bit 0.
	if carrier.Audio.Samples[1]&int16(-32768) == 0 {
		t.Error("WriteBit flipped the sign bit of a 16-bit sample")
	}
}

func TestImageByteOffsetSkipsAlpha(t *testing.T) {
	cases := []struct {
		i    int
		want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 4}, {4, 5}, {5, 6}, {6, 8},
	}
	for _, tc := range cases {
		if got := imageByteOffset(tc.i); got != tc.want {
			t.Errorf("imageByteOffset(%d) = %d, want %d", tc.i, got, tc.want)
		}
	}
}
