// Package container serializes a set of named entries plus an optional
// text message into a deflate-compressed ZIP blob, and reads the same back.
//
// Grounded on the zip-then-conceal preprocessing stage used throughout the
// retrieval pack's steganography and volume tools (andresmejia3/Hide's
// "compress before conceal" pipeline, CodeCracker-oss/Picocrypt-NG's "zip
// archive if multiple files" stage), built on the standard library's
// archive/zip. Per the "ZIP library choice" design note in spec.md §9,
// reads reject any member whose compression method is not Deflate or
// Store, so a malicious payload cannot trigger an unexpected decompressor.
package container

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/joakimsorensen/stegolsb/models"
)

// Write serializes entries and an optional text message into a
// deflate-compressed ZIP archive. Duplicate entry names, including a
// collision between a file literally named content.txt and a text message
// (hasText true, even with empty text), are rejected (spec.md §9, open question resolution).
func Write(entries []models.Entry, text string, hasText bool) ([]byte, *models.StegoError) {
	seen := make(map[string]bool, len(entries)+1)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			zw.Close()
			return nil, err
		}
		if seen[e.Name] {
			zw.Close()
			return nil, models.ErrDuplicateEntryName
		}
		seen[e.Name] = true

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			zw.Close()
			return nil, models.IoError(err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			zw.Close()
			return nil, models.IoError(err)
		}
	}

	if hasText {
		if seen[models.ReservedTextEntryName] {
			zw.Close()
			return nil, models.ErrDuplicateEntryName
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   models.ReservedTextEntryName,
			Method: zip.Deflate,
		})
		if err != nil {
			zw.Close()
			return nil, models.IoError(err)
		}
		if _, err := fw.Write([]byte(text)); err != nil {
			zw.Close()
			return nil, models.IoError(err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, models.IoError(err)
	}
	return buf.Bytes(), nil
}

// Result is the outcome of reading a container blob: the file entries
// (content.txt included, if present) plus the optional text message
// surfaced separately. Whether a caller treats content.txt as a file, as
// the text message, or both is the pipeline's decision, not the
// container's, per spec.md §4.4.
type Result struct {
	Entries []models.Entry
	Text    string
	HasText bool
}

// Read opens blob as a ZIP archive and decompresses every entry into
// memory. An empty ZIP is valid and yields zero entries; zero-length
// entries are valid.
func Read(blob []byte) (*Result, *models.StegoError) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, models.PayloadMalformed(err)
	}

	res := &Result{}
	for _, f := range zr.File {
		if f.Method != zip.Deflate && f.Method != zip.Store {
			return nil, models.PayloadMalformed(errUnsupportedMethod(f.Method))
		}
		rc, err := f.Open()
		if err != nil {
			return nil, models.PayloadMalformed(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, models.PayloadMalformed(err)
		}

		res.Entries = append(res.Entries, models.Entry{Name: f.Name, Data: data})
		if f.Name == models.ReservedTextEntryName {
			res.Text = string(data)
			res.HasText = true
		}
	}
	return res, nil
}

type unsupportedMethodError struct{ method uint16 }

func (e unsupportedMethodError) Error() string {
	return "zip entry uses a disallowed compression method"
}

func errUnsupportedMethod(method uint16) error {
	return unsupportedMethodError{method: method}
}
