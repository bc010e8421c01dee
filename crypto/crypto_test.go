package crypto

import (
	"bytes"
	"testing"

	"github.com/joakimsorensen/stegolsb/models"
)

// testAdapter keeps Argon2id cheap so the test suite runs fast; production
// code goes through New's RFC 9106 defaults.
func testAdapter() *AEADAdapter {
	return New(models.Argon2Params{TimeCost: 1, MemoryKiB: 8 * 1024, Parallelism: 1})
}

func TestEncryptDecryptRoundTrips(t *testing.T) {
	a := testAdapter()
	plaintext := []byte("the secret payload")

	ciphertext, err := a.Encrypt(plaintext, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("Encrypt: ciphertext equals plaintext")
	}

	got, err := a.Decrypt(ciphertext, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Decrypt() = %q, want %q", got, plaintext)
	}
}

func TestDecryptWrongPassphraseFailsAuthentication(t *testing.T) {
	a := testAdapter()
	ciphertext, err := a.Encrypt([]byte("payload"), "alpha")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	_, derr := a.Decrypt(ciphertext, "beta")
	if derr == nil || derr.Kind != models.KindAuthenticationFailed {
		t.Fatalf("Decrypt: want AuthenticationFailed, got %v", derr)
	}
}

func TestDecryptTooShortCiphertextIsMalformed(t *testing.T) {
	a := testAdapter()
	_, err := a.Decrypt([]byte{0x01, 0x02}, "anything")
	if err == nil || err.Kind != models.KindPayloadMalformed {
		t.Fatalf("Decrypt: want PayloadMalformed, got %v", err)
	}
}

func TestEncryptIsNotDeterministic(t *testing.T) {
	a := testAdapter()
	c1, _ := a.Encrypt([]byte("same input"), "pw")
	c2, _ := a.Encrypt([]byte("same input"), "pw")
	if bytes.Equal(c1, c2) {
		t.Error("Encrypt() produced identical ciphertext across calls; salt/nonce not randomized")
	}
}
