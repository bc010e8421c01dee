package bitcodec

import (
	"bytes"
	"testing"

	"github.com/joakimsorensen/stegolsb/cursor"
	"github.com/joakimsorensen/stegolsb/models"
)

func newImageCursor(w, h int) *cursor.Cursor {
	pix := make([]byte, 4*w*h)
	carrier := &models.Carrier{Kind: models.CarrierImage, Image: &models.ImageCarrier{Width: w, Height: h, Pix: pix}}
	return cursor.New(carrier)
}

// TestBitOrderingMSBFirst checks the normative bit-ordering scenario from
// spec.md §8: writing 0b10110010 into a zeroed cursor yields LSBs
// 1,0,1,1,0,0,1,0 in order.
func TestBitOrderingMSBFirst(t *testing.T) {
	c := newImageCursor(2, 2) // 12 participating bytes
	w := NewWriter(c)
	if _, ok := w.WriteByte(0b10110010); !ok {
		t.Fatal("WriteByte returned ok=false")
	}

	c.Seek(0)
	want := []bool{true, false, true, true, false, false, true, false}
	for i, b := range want {
		bit, ok := c.ReadBit()
		if !ok || bit != b {
			t.Errorf("bit %d = %v (ok=%v), want %v", i, bit, ok, b)
		}
	}
}

func TestWriteByteThenReadByteRoundTrips(t *testing.T) {
	c := newImageCursor(4, 4) // 48 participating bytes -> 6 bytes capacity
	w := NewWriter(c)
	data := []byte{0x00, 0xFF, 0xAA, 0x55, 0x7E, 0x01}
	if !w.WriteAll(data) {
		t.Fatal("WriteAll returned false")
	}

	c.Seek(0)
	r := NewReader(c)
	got := r.ReadN(len(data))
	if !bytes.Equal(got, data) {
		t.Errorf("ReadN() = %v, want %v", got, data)
	}
}

func TestReadByteEOFOnExhaustedCursor(t *testing.T) {
	c := newImageCursor(1, 1) // 3 participating bytes
	r := NewReader(c)
	r.ReadN(3)
	if _, ok := r.ReadByte(); ok {
		t.Error("ReadByte() past capacity: want ok=false")
	}
}

func TestWriteByteStopsAtCapacity(t *testing.T) {
	c := newImageCursor(1, 1) // 3 participating bytes, not enough for one full byte
	w := NewWriter(c)
	if _, ok := w.WriteByte(0xFF); ok {
		t.Error("WriteByte() beyond capacity: want ok=false")
	}
}

func TestRemainingCapacityBytes(t *testing.T) {
	c := newImageCursor(4, 4) // 48 bits -> 6 bytes
	if got, want := RemainingCapacityBytes(c), 6; got != want {
		t.Errorf("RemainingCapacityBytes() = %d, want %d", got, want)
	}
	w := NewWriter(c)
	w.WriteByte(0x01)
	if got, want := RemainingCapacityBytes(c), 5; got != want {
		t.Errorf("RemainingCapacityBytes() after one byte = %d, want %d", got, want)
	}
}
