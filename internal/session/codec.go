package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	hkdfInfo  = "finance-dashboard-bfa session cookie v1"
)

// ErrInvalidCookie is returned when a cookie value cannot be opened.
var ErrInvalidCookie = errors.New("session: invalid cookie")

// Codec seals sessions into opaque, authenticated cookie values.
type Codec struct {
	key [keySize]byte
}

// NewCodec derives the sealing key from secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session: empty secret")
	}
	c := &Codec{}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, c.key[:]); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	return c, nil
}

// Seal encodes s as a URL-safe cookie value.
func (c *Codec) Seal(s *Session) (string, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("session: encode: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("session: nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], plain, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decodes a cookie value produced by Seal.
func (c *Codec) Open(value string) (*Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return nil, ErrInvalidCookie
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrInvalidCookie
	}

	var s Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return nil, ErrInvalidCookie
	}
	return &s, nil
}
