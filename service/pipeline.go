// Package service is the pipeline orchestrator: it composes the cursor,
// bitcodec, framing and container packages with the external crypto and
// media adapters into the two top-level operations, hide and unveil.
//
// Grounded on the teacher's service.SteganographyService (constructor
// returning an interface, methods taking a request struct and returning a
// result/error pair), generalized from its single audio/MP3 embed-extract
// pair to the dual-carrier, three-envelope pipeline the specification
// requires.
package service

import (
	"errors"
	"unicode/utf8"

	"github.com/joakimsorensen/stegolsb/bitcodec"
	"github.com/joakimsorensen/stegolsb/container"
	"github.com/joakimsorensen/stegolsb/crypto"
	"github.com/joakimsorensen/stegolsb/cursor"
	"github.com/joakimsorensen/stegolsb/framing"
	"github.com/joakimsorensen/stegolsb/models"
)

// HideInput bundles everything a hide call needs: the carrier to embed
// into, the entries and/or text message to conceal, and the policy
// selecting framing and encryption.
type HideInput struct {
	Carrier *models.Carrier
	Entries []models.Entry
	Text    string
	HasText bool
	Policy  models.Policy
}

// Pipeline is the orchestrator interface, mirroring the teacher's
// constructor-injection convention (NewXService returning an interface).
type Pipeline interface {
	Hide(in HideInput) (*models.Carrier, *models.StegoError)
	Unveil(carrier *models.Carrier, policy models.Policy) (*container.Result, *models.StegoError)
}

type pipeline struct {
	crypto crypto.Adapter
}

// NewPipeline returns a Pipeline that uses adapter for any policy requesting
// encryption.
func NewPipeline(adapter crypto.Adapter) Pipeline {
	return &pipeline{crypto: adapter}
}

// Hide implements spec.md's hide(carrier, entries, text, policy) steps in
// order: build the payload, encrypt it if requested, validate capacity,
// write the chosen envelope, and return the mutated carrier.
func (p *pipeline) Hide(in HideInput) (*models.Carrier, *models.StegoError) {
	version, err := selectVersion(in.Policy, in.Entries, in.HasText)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if version == framing.V1 {
		payload = []byte(in.Text)
	} else {
		blob, err := container.Write(in.Entries, in.Text, in.HasText)
		if err != nil {
			return nil, err
		}
		payload = blob
	}

	if in.Policy.Encryption.Enabled {
		ciphertext, err := p.crypto.Encrypt(payload, in.Policy.Encryption.Passphrase)
		if err != nil {
			return nil, err
		}
		payload = ciphertext
	}

	needed := 1 + framing.OverheadBytes(version) + len(payload)
	available := in.Carrier.CapacityBytes()
	if needed > available {
		return nil, models.CarrierTooSmall(needed, available)
	}

	carrier := cloneCarrier(in.Carrier)
	cur := cursor.New(carrier)
	w := bitcodec.NewWriter(cur)

	switch version {
	case framing.V1:
		if err := framing.WriteV1(w, payload); err != nil {
			return nil, err
		}
	case framing.V2:
		if err := framing.WriteV2(w, payload); err != nil {
			return nil, err
		}
	case framing.V4:
		if err := framing.WriteV4(w, payload); err != nil {
			return nil, err
		}
	}

	return carrier, nil
}

// Unveil implements spec.md's unveil(carrier, policy): read the envelope
// off the carrier, decrypt the payload if the policy requests it, and
// dispatch to the container reader (or surface the V1 text directly).
func (p *pipeline) Unveil(carrier *models.Carrier, policy models.Policy) (*container.Result, *models.StegoError) {
	cur := cursor.New(carrier)
	r := bitcodec.NewReader(cur)

	content, err := framing.Read(r)
	if err != nil {
		return nil, err
	}

	payload := content.Payload
	if policy.Encryption.Enabled {
		plaintext, err := p.crypto.Decrypt(payload, policy.Encryption.Passphrase)
		if err != nil {
			return nil, err
		}
		payload = plaintext
	}

	if content.Version == framing.V1 {
		if !utf8.Valid(payload) {
			return nil, models.PayloadMalformed(errors.New("v1 text is not valid UTF-8"))
		}
		return &container.Result{Text: string(payload), HasText: true}, nil
	}
	return container.Read(payload)
}

// selectVersion resolves a policy's FramingChoice into a concrete wire
// version, per spec.md §4.5: Auto picks V1 when the payload is a bare text
// message with no files and no encryption, else V4.
func selectVersion(policy models.Policy, entries []models.Entry, hasText bool) (framing.Version, *models.StegoError) {
	switch policy.Framing {
	case models.FramingForceV2:
		return framing.V2, nil
	case models.FramingForceV4:
		return framing.V4, nil
	case models.FramingAuto, "":
		if hasText && len(entries) == 0 && !policy.Encryption.Enabled {
			return framing.V1, nil
		}
		return framing.V4, nil
	default:
		return 0, models.PayloadMalformed(errInvalidFramingChoice{string(policy.Framing)})
	}
}

type errInvalidFramingChoice struct{ choice string }

func (e errInvalidFramingChoice) Error() string {
	return "invalid framing choice: " + e.choice
}

// cloneCarrier copies a carrier's mutable buffers so hide never mutates the
// caller's original carrier, per spec.md §5's cursor-exclusive-ownership
// model applying to a fresh copy rather than the caller's own buffer.
func cloneCarrier(c *models.Carrier) *models.Carrier {
	switch c.Kind {
	case models.CarrierImage:
		pix := make([]byte, len(c.Image.Pix))
		copy(pix, c.Image.Pix)
		return &models.Carrier{
			Kind:  models.CarrierImage,
			Image: &models.ImageCarrier{Width: c.Image.Width, Height: c.Image.Height, Pix: pix},
		}
	case models.CarrierAudio:
		samples := make([]int16, len(c.Audio.Samples))
		copy(samples, c.Audio.Samples)
		return &models.Carrier{
			Kind:  models.CarrierAudio,
			Audio: &models.AudioCarrier{SampleRate: c.Audio.SampleRate, Channels: c.Audio.Channels, Samples: samples},
		}
	default:
		return c
	}
}
