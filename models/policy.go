package models

// FramingChoice selects which on-wire envelope variant hide() writes.
// Mirrors the teacher's enum-with-validation idiom (models/embed.go).
type FramingChoice string

const (
	FramingAuto    FramingChoice = "auto"
	FramingForceV2 FramingChoice = "force_v2"
	FramingForceV4 FramingChoice = "force_v4"
)

// IsValid reports whether fc is one of the known framing choices.
func (fc FramingChoice) IsValid() bool {
	return fc == FramingAuto || fc == FramingForceV2 || fc == FramingForceV4
}

// EncryptionChoice selects whether the payload is passed through the
// crypto adapter before framing.
type EncryptionChoice struct {
	Enabled    bool
	Passphrase string
}

// Argon2Params overrides the crypto adapter's key-derivation cost
// parameters; a zero value means "use the adapter's defaults."
type Argon2Params struct {
	TimeCost    uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// Policy bundles the framing and encryption choices a hide/unveil call is
// parameterized by, per spec.md §4.5.
type Policy struct {
	Framing    FramingChoice
	Encryption EncryptionChoice
	Argon2     Argon2Params
}
