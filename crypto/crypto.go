// Package crypto implements the narrow password-based authenticated
// encryption adapter the pipeline treats as an opaque bytes-to-bytes
// transformer (spec.md §4.6): XChaCha20-Poly1305 keyed by an Argon2id
// derivation of the caller's passphrase.
//
// Grounded on the AEAD-wrapping idiom in the retrieval pack's encryption
// tools — zanicar/stegano's cmd/stegano/stegano.go encrypt/decrypt helpers
// (AES-GCM with a random nonce prepended to the ciphertext) and
// CodeCracker-oss/Picocrypt-NG's Argon2id key-derivation stage — adapted
// to XChaCha20-Poly1305 (24-byte nonce, no birthday-bound concerns at the
// payload sizes this toolkit handles) per spec.md §1.
package crypto

import (
	"crypto/rand"
	"fmt"

	"github.com/joakimsorensen/stegolsb/models"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltLen = 16

	defaultTimeCost    = 3
	defaultMemoryKiB   = 64 * 1024
	defaultParallelism = 4
	keyLen             = chacha20poly1305.KeySize
)

// Adapter is the narrow two-function crypto collaborator contract.
type Adapter interface {
	Encrypt(plaintext []byte, passphrase string) ([]byte, *models.StegoError)
	Decrypt(ciphertext []byte, passphrase string) ([]byte, *models.StegoError)
}

// AEADAdapter is the concrete Adapter implementation. Wire format:
// salt(16) || nonce(24) || ciphertext+tag, entirely self-describing so
// Decrypt can recover the salt and nonce without any side channel.
type AEADAdapter struct {
	Params models.Argon2Params
}

// New returns an AEADAdapter using the supplied Argon2id cost parameters,
// falling back to RFC 9106's "recommended" defaults for any zero field.
func New(params models.Argon2Params) *AEADAdapter {
	if params.TimeCost == 0 {
		params.TimeCost = defaultTimeCost
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = defaultMemoryKiB
	}
	if params.Parallelism == 0 {
		params.Parallelism = defaultParallelism
	}
	return &AEADAdapter{Params: params}
}

func (a *AEADAdapter) deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, a.Params.TimeCost, a.Params.MemoryKiB, a.Params.Parallelism, uint32(keyLen))
}

// Encrypt derives a fresh salt/nonce pair, seals plaintext with
// XChaCha20-Poly1305, and prepends the salt and nonce to the ciphertext.
func (a *AEADAdapter) Encrypt(plaintext []byte, passphrase string) ([]byte, *models.StegoError) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, models.IoError(fmt.Errorf("generate salt: %w", err))
	}
	key := a.deriveKey(passphrase, salt)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, models.IoError(fmt.Errorf("init aead: %w", err))
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, models.IoError(fmt.Errorf("generate nonce: %w", err))
	}

	out := make([]byte, 0, saltLen+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// Decrypt recovers the salt and nonce from ciphertext's prefix, re-derives
// the key, and opens the AEAD seal. An authentication failure (wrong
// passphrase or corrupted ciphertext) surfaces as ErrAuthenticationFailed,
// distinguishable from malformed/too-short input.
func (a *AEADAdapter) Decrypt(ciphertext []byte, passphrase string) ([]byte, *models.StegoError) {
	const nonceLen = 24 // chacha20poly1305.NonceSizeX
	if len(ciphertext) < saltLen+nonceLen {
		return nil, models.PayloadMalformed(fmt.Errorf("ciphertext shorter than salt+nonce prefix"))
	}
	salt := ciphertext[:saltLen]
	nonce := ciphertext[saltLen : saltLen+nonceLen]
	sealed := ciphertext[saltLen+nonceLen:]

	key := a.deriveKey(passphrase, salt)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, models.IoError(fmt.Errorf("init aead: %w", err))
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, models.ErrAuthenticationFailed
	}
	return plaintext, nil
}
