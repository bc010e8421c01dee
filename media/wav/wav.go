// Package wav is the WAV carrier media adapter: parse a canonical
// RIFF/WAVE/PCM file into an AudioCarrier of 16-bit signed samples, and
// re-encode a carrier back into WAV bytes preserving sample count and bit
// depth.
//
// Grounded directly on the teacher's hand-rolled WAV handling: the chunk
// walk in service/utils.go's parseWAVHeader, and the RIFF/fmt/data chunk
// assembly in service/audio_service.go's EncodeToWAV — generalized from
// the teacher's hardcoded "stereo, whatever sample rate the caller passed
// in" assumptions to reading the channel count and sample rate out of the
// file's own fmt chunk.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/joakimsorensen/stegolsb/models"
)

const (
	bitsPerSamplePCM16 = 16
	fmtPCM             = 1
)

// Decode parses a canonical PCM WAV file into an AudioCarrier.
func Decode(data []byte) (*models.AudioCarrier, *models.StegoError) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, models.ErrCarrierFormat
	}

	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		dataOffset    int
		dataSize      int
		sawFmt        bool
	)

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		switch chunkID {
		case "fmt ":
			if body+16 > len(data) {
				return nil, models.ErrCarrierFormat
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != fmtPCM {
				return nil, models.ErrCarrierFormat
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			sawFmt = true
		case "data":
			dataOffset = body
			dataSize = chunkSize
		}

		next := body + chunkSize
		if chunkSize%2 == 1 {
			next++
		}
		if next <= offset {
			return nil, models.ErrCarrierFormat
		}
		offset = next
	}

	if !sawFmt || dataOffset == 0 || bitsPerSample != bitsPerSamplePCM16 || channels == 0 {
		return nil, models.ErrCarrierFormat
	}
	if dataOffset+dataSize > len(data) {
		dataSize = len(data) - dataOffset
	}

	sampleCount := dataSize / 2
	if sampleCount == 0 {
		return nil, models.ErrCarrierFormat
	}

	samples := make([]int16, sampleCount)
	for i := 0; i < sampleCount; i++ {
		off := dataOffset + i*2
		samples[i] = int16(binary.LittleEndian.Uint16(data[off : off+2]))
	}

	return &models.AudioCarrier{SampleRate: sampleRate, Channels: channels, Samples: samples}, nil
}

// Encode writes an AudioCarrier back out as a canonical PCM WAV file,
// preserving sample count and bit depth exactly.
func Encode(c *models.AudioCarrier) ([]byte, *models.StegoError) {
	if c.Channels == 0 || c.SampleRate == 0 {
		return nil, models.IoError(fmt.Errorf("audio carrier missing channel count or sample rate"))
	}

	dataSize := len(c.Samples) * 2
	blockAlign := c.Channels * bitsPerSamplePCM16 / 8
	byteRate := c.SampleRate * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(fmtPCM))
	binary.Write(&buf, binary.LittleEndian, uint16(c.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(c.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSamplePCM16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range c.Samples {
		binary.Write(&buf, binary.LittleEndian, uint16(s))
	}

	return buf.Bytes(), nil
}
