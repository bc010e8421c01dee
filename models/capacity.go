package models

// CapacityReport generalizes the teacher's multi-LSB CapacityResult
// (which reported 1..4-LSB byte counts for an audio-only scheme) to this
// spec's single-LSB, dual-carrier model: one needed/available pair. The
// HTTP capacity endpoint fills AvailableBytes only; hide() reports its
// needed/available pair through a CarrierTooSmall StegoError instead.
type CapacityReport struct {
	NeededBytes    int `json:"needed_bytes"`
	AvailableBytes int `json:"available_bytes"`
}

// HideResult wraps the carrier produced by hide(). Pipeline.Hide returns
// the *Carrier directly and does not use this type.
type HideResult struct {
	Carrier *Carrier
}
