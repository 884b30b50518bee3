// Package sign provides the asymmetric signature capability used to
// authenticate challenge payloads, parameterized by an algorithm tag so
// verification keys can rotate across schemes. Ed25519 is the only scheme
// shipped; verification of an Ed25519 signature does not leak timing
// correlated with how much of the signature matched.
package sign

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Algorithm string

const Ed25519 Algorithm = "ed25519"

// Env variables holding base64-encoded key material.
const (
	PrivateKeyEnv = "IRONSHIELD_PRIVATE_KEY"
	PublicKeyEnv  = "IRONSHIELD_PUBLIC_KEY"
)

var (
	// ErrSignatureInvalid means the payload or signature was tampered with.
	ErrSignatureInvalid = errors.New("signature invalid")
	// ErrUnknownSigner means the key id is not in the keyring. Kept distinct
	// from ErrSignatureInvalid so operators can tell rotation gaps from
	// forgery attempts in logs.
	ErrUnknownSigner = errors.New("unknown signer key id")
	ErrInvalidKey    = errors.New("invalid key material")
)

// Signer produces signatures over canonical payload bytes.
type Signer interface {
	Sign(payload []byte) ([]byte, error)
	KeyID() string
	Algorithm() Algorithm
}

type ed25519Signer struct {
	id   string
	priv ed25519.PrivateKey
}

func NewEd25519Signer(keyID string, priv ed25519.PrivateKey) (Signer, error) {
	if keyID == "" {
		return nil, fmt.Errorf("%w: empty key id", ErrInvalidKey)
	}
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidKey, ed25519.PrivateKeySize, len(priv))
	}
	return &ed25519Signer{id: keyID, priv: priv}, nil
}

func (s *ed25519Signer) Sign(payload []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, payload), nil
}

func (s *ed25519Signer) KeyID() string        { return s.id }
func (s *ed25519Signer) Algorithm() Algorithm { return Ed25519 }

type keyringEntry struct {
	alg Algorithm
	pub ed25519.PublicKey
}

// Keyring holds the verification keys an origin trusts, keyed by signer id.
// Populate it at startup; lookups are read-only after that.
type Keyring struct {
	keys map[string]keyringEntry
}

func NewKeyring() *Keyring {
	return &Keyring{keys: make(map[string]keyringEntry)}
}

func (k *Keyring) Add(keyID string, alg Algorithm, pub []byte) error {
	if keyID == "" {
		return fmt.Errorf("%w: empty key id", ErrInvalidKey)
	}
	if alg != Ed25519 {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidKey, alg)
	}
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidKey, ed25519.PublicKeySize, len(pub))
	}
	k.keys[keyID] = keyringEntry{
		alg: alg,
		pub: ed25519.PublicKey(append([]byte(nil), pub...)),
	}
	return nil
}

// Verify checks sig over payload with the key registered under keyID.
func (k *Keyring) Verify(keyID string, payload, sig []byte) error {
	e, ok := k.keys[keyID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSigner, keyID)
	}
	switch e.alg {
	case Ed25519:
		if len(sig) != ed25519.SignatureSize || !ed25519.Verify(e.pub, payload, sig) {
			return ErrSignatureInvalid
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidKey, e.alg)
	}
}

// GenerateKeypair returns a fresh Ed25519 keypair for tests and bootstrap.
func GenerateKeypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	return ed25519.GenerateKey(nil)
}

// LoadPrivateKeyFromEnv reads a base64-encoded Ed25519 key from
// IRONSHIELD_PRIVATE_KEY. Both the 32-byte seed and the 64-byte expanded
// form are accepted.
func LoadPrivateKeyFromEnv() (ed25519.PrivateKey, error) {
	v := os.Getenv(PrivateKeyEnv)
	if v == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrInvalidKey, PrivateKeyEnv)
	}
	return ParsePrivateKey(v)
}

func ParsePrivateKey(b64 string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("%w: private key base64: %v", ErrInvalidKey, err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("%w: private key must be %d or %d bytes, got %d",
			ErrInvalidKey, ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// LoadPublicKeyFromEnv reads a base64-encoded 32-byte Ed25519 public key
// from IRONSHIELD_PUBLIC_KEY.
func LoadPublicKeyFromEnv() (ed25519.PublicKey, error) {
	v := os.Getenv(PublicKeyEnv)
	if v == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrInvalidKey, PublicKeyEnv)
	}
	return ParsePublicKey(v)
}

func ParsePublicKey(b64 string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("%w: public key base64: %v", ErrInvalidKey, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidKey, ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}
