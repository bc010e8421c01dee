package models

// CarrierKind discriminates the two carrier shapes the cursor understands.
// Mirrors the teacher's SteganographyMethod enum-with-validation idiom
// (models/embed.go: IsValid/String/GetSupportedMethods).
type CarrierKind string

const (
	CarrierImage CarrierKind = "image"
	CarrierAudio CarrierKind = "audio"
)

// IsValid reports whether ck is one of the known carrier kinds.
func (ck CarrierKind) IsValid() bool {
	return ck == CarrierImage || ck == CarrierAudio
}

// String returns the string representation of the carrier kind.
func (ck CarrierKind) String() string {
	return string(ck)
}

// ImageCarrier is a decoded RGBA8 pixel buffer, row-major, width*height
// pixels. Only R, G, B bytes participate in LSB carry; Pix must be exactly
// 4*Width*Height bytes long (the alpha byte sits at offset 4*p+3 for pixel p).
type ImageCarrier struct {
	Width  int
	Height int
	Pix    []byte // RGBA8, len == 4*Width*Height
}

// BytesCapacity returns the count of participating (R,G,B) bytes.
func (c *ImageCarrier) BytesCapacity() int {
	return c.Width * c.Height * 3
}

// AudioCarrier is interleaved 16-bit signed PCM, native-endian in memory,
// serialized little-endian on the wire by the media/wav adapter.
type AudioCarrier struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// BytesCapacity returns the count of participating bytes: one low byte per
// sample.
func (c *AudioCarrier) BytesCapacity() int {
	return len(c.Samples)
}

// Carrier is a tagged union over the two carrier shapes the core consumes.
// Exactly one of Image or Audio must be set.
type Carrier struct {
	Kind  CarrierKind
	Image *ImageCarrier
	Audio *AudioCarrier
}

// BytesCapacity returns the count of participating bytes for whichever
// shape is populated; it is also the bit-level capacity, per the spec's
// capacity invariant.
func (c *Carrier) BytesCapacity() int {
	switch c.Kind {
	case CarrierImage:
		return c.Image.BytesCapacity()
	case CarrierAudio:
		return c.Audio.BytesCapacity()
	default:
		return 0
	}
}

// CapacityBytes is floor(capacity_bits/8); since the cursor yields one bit
// per participating byte, capacity_bits == BytesCapacity(), and the
// byte-level capacity available to the framer is the same count divided by
// eight (one byte of payload needs eight cursor positions).
func (c *Carrier) CapacityBytes() int {
	return c.BytesCapacity() / 8
}
