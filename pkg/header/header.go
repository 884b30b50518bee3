// Package header folds signed envelopes into single HTTP-header-safe tokens
// and back. Wire format, fixed at version 1:
//
//	1.<b64url(keyID)>.<b64url(payload)>.<b64url(signature)>
//
// base64url without padding, every segment length-bounded, total token
// capped so it stays within practical header size limits.
package header

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
)

const (
	FormatVersion = "1"

	MaxTokenLen     = 8192
	MaxKeyIDLen     = 64
	MaxSignatureLen = 512
)

// Header names carrying tokens between edge and client.
const (
	ChallengeHeaderName = "X-IronShield-Challenge"
	ResponseHeaderName  = "X-IronShield-Response"
)

var (
	ErrDecode                   = errors.New("malformed header token")
	ErrUnsupportedFormatVersion = errors.New("unsupported header format version")
	ErrPayloadTooLarge          = errors.New("envelope exceeds header size limit")
)

// Envelope is a canonical payload plus the signature authenticating it and
// the id of the key that produced the signature.
type Envelope struct {
	KeyID     string
	Payload   []byte
	Signature []byte
}

var b64 = base64.RawURLEncoding

// Encode folds the envelope into a header token. Oversized envelopes are
// rejected here, at the edge of the system, not after transmission.
func Encode(env Envelope) (string, error) {
	if env.KeyID == "" {
		return "", errors.New("encode: empty key id")
	}
	if len(env.Payload) == 0 || len(env.Signature) == 0 {
		return "", errors.New("encode: empty payload or signature")
	}
	if len(env.KeyID) > MaxKeyIDLen || len(env.Signature) > MaxSignatureLen {
		return "", fmt.Errorf("%w: key id %d bytes, signature %d bytes", ErrPayloadTooLarge, len(env.KeyID), len(env.Signature))
	}
	tok := strings.Join([]string{
		FormatVersion,
		b64.EncodeToString([]byte(env.KeyID)),
		b64.EncodeToString(env.Payload),
		b64.EncodeToString(env.Signature),
	}, ".")
	if len(tok) > MaxTokenLen {
		return "", fmt.Errorf("%w: token %d bytes, cap %d", ErrPayloadTooLarge, len(tok), MaxTokenLen)
	}
	return tok, nil
}

// Decode is Encode reversed, with the default token cap.
func Decode(token string) (Envelope, error) {
	return DecodeLimit(token, MaxTokenLen)
}

// DecodeLimit parses a token rejecting anything longer than maxLen. Formats
// other than version 1 are refused outright rather than best-effort parsed.
func DecodeLimit(token string, maxLen int) (Envelope, error) {
	if maxLen <= 0 {
		maxLen = MaxTokenLen
	}
	if len(token) > maxLen {
		return Envelope{}, fmt.Errorf("%w: token %d bytes, cap %d", ErrDecode, len(token), maxLen)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return Envelope{}, fmt.Errorf("%w: want 4 segments, got %d", ErrDecode, len(parts))
	}
	if parts[0] != FormatVersion {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnsupportedFormatVersion, parts[0])
	}
	keyID, err := b64.DecodeString(parts[1])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: key id segment: %v", ErrDecode, err)
	}
	if len(keyID) == 0 || len(keyID) > MaxKeyIDLen {
		return Envelope{}, fmt.Errorf("%w: key id %d bytes", ErrDecode, len(keyID))
	}
	payload, err := b64.DecodeString(parts[2])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: payload segment: %v", ErrDecode, err)
	}
	if len(payload) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty payload", ErrDecode)
	}
	sig, err := b64.DecodeString(parts[3])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: signature segment: %v", ErrDecode, err)
	}
	if len(sig) == 0 || len(sig) > MaxSignatureLen {
		return Envelope{}, fmt.Errorf("%w: signature %d bytes", ErrDecode, len(sig))
	}
	return Envelope{KeyID: string(keyID), Payload: payload, Signature: sig}, nil
}

// Seal signs the payload and encodes the resulting envelope in one step.
func Seal(payload []byte, s sign.Signer) (string, error) {
	sig, err := s.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	return Encode(Envelope{KeyID: s.KeyID(), Payload: payload, Signature: sig})
}

// Respond builds the response token from the issuer's envelope: the signed
// challenge bytes travel untouched, the solution rides after them under the
// same signature and key id.
func Respond(env Envelope, sol challenge.Solution) (string, error) {
	return Encode(Envelope{
		KeyID:     env.KeyID,
		Payload:   challenge.EncodeResponse(env.Payload, sol),
		Signature: env.Signature,
	})
}
