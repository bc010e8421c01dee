package models

import (
	"strings"
	"unicode/utf8"
)

// ReservedTextEntryName is the fixed payload entry name that carries the
// optional text message inside the V2/V4 ZIP container. Configurable at
// the spec level, fixed here at build time per spec.md §3.
const ReservedTextEntryName = "content.txt"

// Entry is a single named byte sequence inside the payload container.
type Entry struct {
	Name string
	Data []byte
}

// Validate checks the structural constraints spec.md §3 places on an
// entry name: non-empty, no path separators, valid UTF-8.
func (e Entry) Validate() *StegoError {
	if e.Name == "" {
		return ErrInvalidEntryName
	}
	if strings.ContainsAny(e.Name, "/\\") {
		return ErrInvalidEntryName
	}
	if !utf8.ValidString(e.Name) {
		return ErrInvalidEntryName
	}
	return nil
}

// Basename strips any path components, leaving only the final segment, per
// the payload container's write-time contract ("filename (basename only;
// path components stripped)").
func Basename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
