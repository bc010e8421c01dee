// Package cursor exposes the participating bytes of a carrier as an
// ordered, bounded stream of single-bit reads and writes.
//
// The addressing arithmetic here generalizes the teacher's sample-indexing
// code in service/utils.go (embedBitsIntoSamples/extractBitsFromSamples),
// which walked 16-bit PCM samples n-LSBs at a time; this cursor walks one
// LSB per participating byte, over either an image's RGB bytes or an
// audio carrier's sample low bytes.
package cursor

import "github.com/joakimsorensen/stegolsb/models"

// Cursor is an ordered walk over the participating bytes of a carrier,
// remembering the next index. It borrows the carrier buffer exclusively
// for the lifetime of one hide/unveil operation.
type Cursor struct {
	carrier *models.Carrier
	pos     int
	cap     int
}

// New creates a cursor over carrier. The cursor does not copy the
// underlying buffers; writes mutate the carrier in place.
func New(carrier *models.Carrier) *Cursor {
	return &Cursor{carrier: carrier, cap: carrier.BytesCapacity()}
}

// Capacity returns the count of participating bytes, which is also the
// bit-level capacity of the cursor.
func (c *Cursor) Capacity() int {
	return c.cap
}

// Position returns the next index the cursor will read/write. Exposed for
// tests only, per spec.md §4.1.
func (c *Cursor) Position() int {
	return c.pos
}

// Seek resets the cursor to the given position. Exposed for tests only.
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

// ReadBit returns the LSB at the current position and advances, or false
// for ok at end of the participating sequence.
func (c *Cursor) ReadBit() (bit bool, ok bool) {
	if c.pos >= c.cap {
		return false, false
	}
	b := c.byteAt(c.pos)
	c.pos++
	return b&1 != 0, true
}

// WriteBit overwrites the LSB at the current position and advances;
// returns false at end of the participating sequence without writing.
func (c *Cursor) WriteBit(bit bool) bool {
	if c.pos >= c.cap {
		return false
	}
	c.setByteLSB(c.pos, bit)
	c.pos++
	return true
}

// byteAt returns the carrier byte backing participating index i.
func (c *Cursor) byteAt(i int) byte {
	switch c.carrier.Kind {
	case models.CarrierImage:
		return c.carrier.Image.Pix[imageByteOffset(i)]
	case models.CarrierAudio:
		return byte(uint16(c.carrier.Audio.Samples[i]))
	default:
		return 0
	}
}

// setByteLSB overwrites the LSB of the carrier byte backing participating
// index i, leaving the remaining 7 bits untouched.
func (c *Cursor) setByteLSB(i int, bit bool) {
	switch c.carrier.Kind {
	case models.CarrierImage:
		off := imageByteOffset(i)
		if bit {
			c.carrier.Image.Pix[off] |= 1
		} else {
			c.carrier.Image.Pix[off] &^= 1
		}
	case models.CarrierAudio:
		s := c.carrier.Audio.Samples[i]
		u := uint16(s)
		if bit {
			u |= 1
		} else {
			u &^= 1
		}
		// Writing bit 0 of a 16-bit value never changes the sign bit
		// (bit 15), satisfying the "never changes the sign" rule.
		c.carrier.Audio.Samples[i] = int16(u)
	}
}

// imageByteOffset maps a participating index i (ranging over [0, 3*W*H))
// to the pixel buffer offset, skipping the alpha byte of each pixel:
// pixel p = i/3, channel c = i%3, offset = 4*p + c.
func imageByteOffset(i int) int {
	p := i / 3
	ch := i % 3
	return 4*p + ch
}
