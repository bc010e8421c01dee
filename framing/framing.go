// Package framing implements the three on-wire content envelopes the
// bit-stream carries: V1 (text-only, FF-terminated), V2 (legacy ZIP,
// FF FF-terminated, byte-compatible with the Windows predecessor this
// toolkit descends from) and V4 (length-prefixed, the current default).
//
// Grounded on the teacher's own envelope idiom in
// service/steganography_service.go, which prepends a fixed magic byte
// string and a flags/length header before the secret bytes; this package
// generalizes that single ad-hoc header into the three dispatched variants
// the specification requires.
package framing

import (
	"encoding/binary"

	"github.com/joakimsorensen/stegolsb/bitcodec"
	"github.com/joakimsorensen/stegolsb/models"
)

// Version is the first byte on the bit-stream, selecting the envelope.
type Version byte

const (
	V1 Version = 0x01
	V2 Version = 0x02
	V4 Version = 0x04
)

const (
	v1Terminator      = 0xFF
	v2TerminatorFirst  = 0xFF
	v2TerminatorSecond = 0xFF
)

// writeOverrun is returned when a write runs past the cursor's capacity.
// The pipeline validates capacity before invoking the framer (spec.md
// §4.5 step 3), so this path is only reached if that check was skipped.
func writeOverrun() *models.StegoError {
	return &models.StegoError{Kind: models.KindCarrierTooSmall, Message: "capacity exceeded while writing envelope"}
}

// OverheadBytes returns the envelope's framing overhead in bytes, not
// counting the leading version byte or the payload itself: one terminator
// byte for V1, two for V2, four length bytes for V4.
func OverheadBytes(v Version) int {
	switch v {
	case V1:
		return 1
	case V2:
		return 2
	case V4:
		return 4
	default:
		return 0
	}
}

// WriteV1 writes the text-only envelope: 0x01, the UTF-8 bytes, then 0xFF.
// Callers must ensure text does not contain 0xFF (spec.md §4.3).
func WriteV1(w *bitcodec.Writer, text []byte) *models.StegoError {
	if _, ok := w.WriteByte(byte(V1)); !ok {
		return writeOverrun()
	}
	if !w.WriteAll(text) {
		return writeOverrun()
	}
	if _, ok := w.WriteByte(v1Terminator); !ok {
		return writeOverrun()
	}
	return nil
}

// WriteV2 writes the legacy envelope: 0x02, the deflate ZIP bytes, then
// 0xFF 0xFF.
func WriteV2(w *bitcodec.Writer, zipBytes []byte) *models.StegoError {
	if _, ok := w.WriteByte(byte(V2)); !ok {
		return writeOverrun()
	}
	if !w.WriteAll(zipBytes) {
		return writeOverrun()
	}
	if _, ok := w.WriteByte(v2TerminatorFirst); !ok {
		return writeOverrun()
	}
	if _, ok := w.WriteByte(v2TerminatorSecond); !ok {
		return writeOverrun()
	}
	return nil
}

// WriteV4 writes the current envelope: 0x04, a 4-byte big-endian length,
// then the payload bytes verbatim.
func WriteV4(w *bitcodec.Writer, payload []byte) *models.StegoError {
	if _, ok := w.WriteByte(byte(V4)); !ok {
		return writeOverrun()
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if !w.WriteAll(lenBuf[:]) {
		return writeOverrun()
	}
	if !w.WriteAll(payload) {
		return writeOverrun()
	}
	return nil
}

// Content is the result of reading one envelope off the bit-stream.
type Content struct {
	Version Version
	// Payload holds the opaque bytes inside the envelope: the UTF-8 text
	// for V1, the deflate ZIP bytes for V2/V4.
	Payload []byte
}

// Read consumes one envelope byte and dispatches to the matching variant
// reader, per the state machine in spec.md §4.3.
func Read(r *bitcodec.Reader) (*Content, *models.StegoError) {
	first, ok := r.ReadByte()
	if !ok {
		return nil, models.Truncated("envelope-version")
	}
	switch Version(first) {
	case V1:
		payload, err := readUntilFF(r)
		if err != nil {
			return nil, err
		}
		return &Content{Version: V1, Payload: payload}, nil
	case V2:
		payload, err := readUntilFFFF(r)
		if err != nil {
			return nil, err
		}
		return &Content{Version: V2, Payload: payload}, nil
	case V4:
		payload, err := readLenPrefixed(r)
		if err != nil {
			return nil, err
		}
		return &Content{Version: V4, Payload: payload}, nil
	default:
		return nil, models.UnsupportedContentVersion(first)
	}
}

func readUntilFF(r *bitcodec.Reader) ([]byte, *models.StegoError) {
	var out []byte
	for {
		b, ok := r.ReadByte()
		if !ok {
			return nil, models.Truncated("v1-text")
		}
		if b == v1Terminator {
			return out, nil
		}
		out = append(out, b)
	}
}

// readUntilFFFF scans for the two-byte sentinel 0xFF 0xFF. A lone trailing
// 0xFF followed by end-of-stream is truncation, per spec.md §4.3.
func readUntilFFFF(r *bitcodec.Reader) ([]byte, *models.StegoError) {
	var out []byte
	for {
		b, ok := r.ReadByte()
		if !ok {
			return nil, models.Truncated("v2-zip")
		}
		if b != 0xFF {
			out = append(out, b)
			continue
		}
		// Saw a candidate 0xFF; peek the next byte.
		next, ok := r.ReadByte()
		if !ok {
			return nil, models.Truncated("v2-zip")
		}
		if next == 0xFF {
			return out, nil
		}
		// Not the sentinel: both bytes belong to the payload.
		out = append(out, b, next)
	}
}

func readLenPrefixed(r *bitcodec.Reader) ([]byte, *models.StegoError) {
	lenBytes := r.ReadN(4)
	if len(lenBytes) != 4 {
		return nil, models.Truncated("v4-length")
	}
	length := binary.BigEndian.Uint32(lenBytes)
	payload := r.ReadN(int(length))
	if uint32(len(payload)) != length {
		return nil, models.Truncated("v4-payload")
	}
	return payload, nil
}
