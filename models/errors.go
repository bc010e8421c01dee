package models

import "fmt"

// ErrorKind identifies which invariant in the error taxonomy a StegoError
// represents. Unlike a bare sentinel, the kind lets callers branch on the
// failure category while StegoError carries the structured fields the
// variant needs (needed/available byte counts, the offending version byte).
type ErrorKind string

const (
	KindCarrierTooSmall           ErrorKind = "carrier_too_small"
	KindCarrierFormat              ErrorKind = "carrier_format"
	KindUnsupportedContentVersion ErrorKind = "unsupported_content_version"
	KindTruncated                  ErrorKind = "truncated"
	KindPayloadMalformed           ErrorKind = "payload_malformed"
	KindDuplicateEntryName         ErrorKind = "duplicate_entry_name"
	KindInvalidEntryName           ErrorKind = "invalid_entry_name"
	KindAuthenticationFailed       ErrorKind = "authentication_failed"
	KindIO                         ErrorKind = "io"
)

// StegoError is the single tagged error type the library surfaces to
// callers, per the error taxonomy in the specification. The Kind field
// conveys the recoverable/fatal distinction instead of a separate channel.
type StegoError struct {
	Kind      ErrorKind
	Needed    int    // CarrierTooSmall
	Available int    // CarrierTooSmall
	Byte      byte   // UnsupportedContentVersion
	Variant   string // Truncated
	Message   string
	Err       error // wrapped cause, for Io and PayloadMalformed
}

func (e *StegoError) Error() string {
	switch e.Kind {
	case KindCarrierTooSmall:
		return fmt.Sprintf("carrier too small: needed %d bytes, available %d bytes", e.Needed, e.Available)
	case KindUnsupportedContentVersion:
		return fmt.Sprintf("unsupported content version: 0x%02x", e.Byte)
	case KindTruncated:
		return fmt.Sprintf("truncated stream while reading %s", e.Variant)
	case KindAuthenticationFailed:
		return "authentication failed: wrong passphrase or corrupted ciphertext"
	default:
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Kind)
	}
}

func (e *StegoError) Unwrap() error { return e.Err }

// Is allows errors.Is(err, models.ErrAuthenticationFailed) style checks
// against the sentinel values below, matching on Kind rather than identity.
func (e *StegoError) Is(target error) bool {
	t, ok := target.(*StegoError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel instances for errors.Is comparisons, mirroring the teacher's
// package-level sentinel-error convention in models/error.go.
var (
	ErrCarrierFormat        = &StegoError{Kind: KindCarrierFormat, Message: "carrier buffer violates cursor assumptions"}
	ErrPayloadMalformed     = &StegoError{Kind: KindPayloadMalformed, Message: "payload is malformed"}
	ErrDuplicateEntryName   = &StegoError{Kind: KindDuplicateEntryName, Message: "duplicate entry name"}
	ErrInvalidEntryName     = &StegoError{Kind: KindInvalidEntryName, Message: "invalid entry name"}
	ErrAuthenticationFailed = &StegoError{Kind: KindAuthenticationFailed}
)

// CarrierTooSmall builds a structured capacity error with the reported
// needed/available byte counts, per the Capacity testable property.
func CarrierTooSmall(needed, available int) *StegoError {
	return &StegoError{Kind: KindCarrierTooSmall, Needed: needed, Available: available}
}

// UnsupportedContentVersion builds a structured version-dispatch error.
func UnsupportedContentVersion(b byte) *StegoError {
	return &StegoError{Kind: KindUnsupportedContentVersion, Byte: b}
}

// Truncated builds a structured truncation error naming the variant being
// read when the stream ended early (e.g. "v1-text", "v2-zip", "v4-length").
func Truncated(variant string) *StegoError {
	return &StegoError{Kind: KindTruncated, Variant: variant}
}

// IoError wraps an opaque adapter I/O failure.
func IoError(err error) *StegoError {
	return &StegoError{Kind: KindIO, Err: err}
}

// PayloadMalformed wraps a ZIP parse error or a V1 UTF-8 decode error.
func PayloadMalformed(err error) *StegoError {
	return &StegoError{Kind: KindPayloadMalformed, Err: err}
}

// ErrorResponse is the JSON shape returned by the HTTP surface, kept in the
// same shape as the teacher's models.ErrorResponse/models.ErrorDetail.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
