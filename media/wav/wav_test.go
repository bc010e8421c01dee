package wav

import (
	"testing"

	"github.com/joakimsorensen/stegolsb/models"
)

func TestEncodeDecodeRoundTripsSamples(t *testing.T) {
	carrier := &models.AudioCarrier{
		SampleRate: 44100,
		Channels:   1,
		Samples:    []int16{0, 1, -1, 32767, -32768, 100, -100},
	}

	data, err := Encode(carrier)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, derr := Decode(data)
	if derr != nil {
		t.Fatalf("Decode: %v", derr)
	}
	if got.SampleRate != carrier.SampleRate {
		t.Errorf("SampleRate = %d, want %d", got.SampleRate, carrier.SampleRate)
	}
	if got.Channels != carrier.Channels {
		t.Errorf("Channels = %d, want %d", got.Channels, carrier.Channels)
	}
	if len(got.Samples) != len(carrier.Samples) {
		t.Fatalf("len(Samples) = %d, want %d", len(got.Samples), len(carrier.Samples))
	}
	for i, s := range carrier.Samples {
		if got.Samples[i] != s {
			t.Errorf("sample %d = %d, want %d", i, got.Samples[i], s)
		}
	}
}

func TestDecodeRejectsNonRIFF(t *testing.T) {
	_, err := Decode([]byte("not a wav file at all"))
	if err == nil {
		t.Fatal("Decode: want error for non-RIFF input")
	}
}

func TestDecodeRejectsNon16BitPCM(t *testing.T) {
	carrier := &models.AudioCarrier{SampleRate: 8000, Channels: 1, Samples: []int16{1, 2, 3}}
	data, err := Encode(carrier)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Corrupt the bitsPerSample field in the fmt chunk (offset 34 in a
	// canonical 44-byte header) to simulate an 8-bit file.
	data[34] = 8
	data[35] = 0
	if _, derr := Decode(data); derr == nil {
		t.Error("Decode: want error for non-16-bit PCM")
	}
}
