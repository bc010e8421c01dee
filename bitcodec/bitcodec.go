// Package bitcodec adapts a cursor.Cursor into byte-oriented reader and
// writer, packing/unpacking eight LSBs per byte MSB-first. This ordering is
// a normative part of the wire format (spec.md §3, §6) and must not change.
//
// Grounded on the teacher's bytesToBits/bitsToBytes helpers
// (service/utils.go), generalized from whole-buffer conversion functions
// into a streaming pair driven by a cursor.Cursor.
package bitcodec

import "github.com/joakimsorensen/stegolsb/cursor"

// Reader yields bytes from a cursor's bit stream, MSB first.
type Reader struct {
	c *cursor.Cursor
}

// NewReader wraps c as a byte-oriented reader.
func NewReader(c *cursor.Cursor) *Reader {
	return &Reader{c: c}
}

// ReadByte yields the next byte by concatenating eight cursor bits, MSB
// first. ok is false once the cursor is fully exhausted (no bits were
// available at all for this call); if a partial byte remains when the
// cursor runs out mid-byte, that final byte is right-padded with zero bits
// and returned with ok true, with end-of-stream reported on the next call.
func (r *Reader) ReadByte() (b byte, ok bool) {
	first, firstOK := r.c.ReadBit()
	if !firstOK {
		return 0, false
	}
	if first {
		b |= 0x80
	}
	for i := 6; i >= 0; i-- {
		bit, readOk := r.c.ReadBit()
		if !readOk {
			break
		}
		if bit {
			b |= 1 << uint(i)
		}
	}
	return b, true
}

// ReadN reads up to n bytes, stopping early at end of stream. It returns
// the bytes actually read.
func (r *Reader) ReadN(n int) []byte {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, ok := r.ReadByte()
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out
}

// Writer packs bytes into a cursor's bit stream, MSB first.
type Writer struct {
	c *cursor.Cursor
}

// NewWriter wraps c as a byte-oriented writer.
func NewWriter(c *cursor.Cursor) *Writer {
	return &Writer{c: c}
}

// WriteByte writes b's eight bits MSB first and reports how many of them
// it managed to write before running out of cursor capacity; ok is false
// on a short write. The framer treats any short write as a CarrierTooSmall
// error and aborts; the bits already committed are acceptable because the
// carrier is discarded on that path.
func (w *Writer) WriteByte(b byte) (wrote int, ok bool) {
	for i := 7; i >= 0; i-- {
		bit := b&(1<<uint(i)) != 0
		if !w.c.WriteBit(bit) {
			return wrote, false
		}
		wrote++
	}
	return wrote, true
}

// WriteAll writes every byte in data, stopping and reporting false at the
// first byte it cannot fully commit.
func (w *Writer) WriteAll(data []byte) bool {
	for _, b := range data {
		if _, ok := w.WriteByte(b); !ok {
			return false
		}
	}
	return true
}

// RemainingCapacityBytes reports how many whole bytes the writer could
// still commit from the cursor's current position. The framing writers do
// not call it; they detect exhaustion from a short WriteByte.
func RemainingCapacityBytes(c *cursor.Cursor) int {
	return (c.Capacity() - c.Position()) / 8
}
