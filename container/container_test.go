package container

import (
	"bytes"
	"testing"

	"github.com/joakimsorensen/stegolsb/models"
)

func TestWriteReadRoundTripsEntriesAndText(t *testing.T) {
	entries := []models.Entry{
		{Name: "note.txt", Data: []byte("abc")},
		{Name: "empty.bin", Data: nil},
	}
	blob, err := Write(entries, "hello there", true)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	result, rerr := Read(blob)
	if rerr != nil {
		t.Fatalf("Read: %v", rerr)
	}
	if !result.HasText || result.Text != "hello there" {
		t.Errorf("Text = %q (HasText=%v), want %q", result.Text, result.HasText, "hello there")
	}

	want := map[string][]byte{
		"note.txt":                  []byte("abc"),
		"empty.bin":                 nil,
		models.ReservedTextEntryName: []byte("hello there"),
	}
	if len(result.Entries) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d", len(result.Entries), len(want))
	}
	for _, e := range result.Entries {
		expected, ok := want[e.Name]
		if !ok {
			t.Errorf("unexpected entry %q", e.Name)
			continue
		}
		if !bytes.Equal(e.Data, expected) {
			t.Errorf("entry %q data = %v, want %v", e.Name, e.Data, expected)
		}
	}
}

func TestEmptyContainerIsValid(t *testing.T) {
	blob, err := Write(nil, "", false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	result, rerr := Read(blob)
	if rerr != nil {
		t.Fatalf("Read: %v", rerr)
	}
	if len(result.Entries) != 0 || result.HasText {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestWriteRejectsDuplicateNames(t *testing.T) {
	entries := []models.Entry{
		{Name: "a.txt", Data: []byte("1")},
		{Name: "a.txt", Data: []byte("2")},
	}
	_, err := Write(entries, "", false)
	if err == nil || err.Kind != models.KindDuplicateEntryName {
		t.Fatalf("Write: want DuplicateEntryName, got %v", err)
	}
}

func TestWriteRejectsContentTxtCollision(t *testing.T) {
	entries := []models.Entry{
		{Name: models.ReservedTextEntryName, Data: []byte("file contents")},
	}
	_, err := Write(entries, "the message", true)
	if err == nil || err.Kind != models.KindDuplicateEntryName {
		t.Fatalf("Write: want DuplicateEntryName, got %v", err)
	}
}

func TestWriteRejectsPathSeparators(t *testing.T) {
	entries := []models.Entry{{Name: "dir/file.txt", Data: []byte("x")}}
	_, err := Write(entries, "", false)
	if err == nil || err.Kind != models.KindInvalidEntryName {
		t.Fatalf("Write: want InvalidEntryName, got %v", err)
	}
}
