// Package vault encrypts platform credentials before they are written to
// the database. ESPN's espn_s2 and SWID cookies are the only secrets we
// hold; they are stored encrypted and decrypted per upstream call.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyIterations = 100000
	keyLength     = 32
)

// The salt is fixed so the key is stable across restarts. The secret itself
// comes from configuration.
var keySalt = []byte("fantasy_football_salt")

type Vault struct {
	key []byte
}

// New derives an AES-256 key from the configured secret with PBKDF2-SHA256.
func New(secret string) (*Vault, error) {
	if secret == "" {
		return nil, fmt.Errorf("vault secret must not be empty")
	}
	key := pbkdf2.Key([]byte(secret), keySalt, keyIterations, keyLength, sha256.New)
	return &Vault{key: key}, nil
}

// Encrypt seals plain with AES-256-GCM and returns base64url(nonce || ct).
// An empty plaintext encrypts to the empty string.
func (v *Vault) Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	gcm, err := v.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("error generating nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Empty input and blobs that fail to decode or
// authenticate all return "": a missing or corrupted credential means the
// upstream call proceeds without it, never that the request fails.
func (v *Vault) Decrypt(encrypted string) string {
	if encrypted == "" {
		return ""
	}

	sealed, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return ""
	}

	gcm, err := v.gcm()
	if err != nil {
		return ""
	}
	if len(sealed) < gcm.NonceSize() {
		return ""
	}

	nonce, ct := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return ""
	}
	return string(plain)
}

func (v *Vault) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("error creating gcm: %w", err)
	}
	return gcm, nil
}
