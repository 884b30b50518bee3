// Package verify runs the composite check an origin applies to a response
// token. Stages short-circuit in a fixed order: decode, signature,
// freshness, binding, proof-of-work — cheap structural checks come before
// the hash recomputation, and the first failing stage decides the reject
// reason. The verifier holds no mutable state, so one instance serves any
// number of goroutines and origin replicas.
package verify

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/header"
	"github.com/IronShield-Tech/ironshield-types/pkg/pow"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
)

var (
	ErrExpired         = errors.New("challenge expired")
	ErrNotYetValid     = errors.New("challenge not yet valid")
	ErrBindingMismatch = errors.New("client binding mismatch")
	ErrInvalidSolution = errors.New("proof-of-work solution invalid")
)

const DefaultClockSkew = 30 * time.Second

// Receipt is returned on accept. The caller records the challenge id in its
// own replay store; this package deliberately keeps none.
type Receipt struct {
	ChallengeID string
	ExpiresAt   int64 // unix milliseconds, bounds how long the id must be tracked
	Difficulty  int
}

type Verifier struct {
	keys        *sign.Keyring
	skew        time.Duration
	maxTokenLen int
}

// New builds a verifier over the trusted keyring. skew widens the freshness
// window in both directions to tolerate clock drift between edge and
// origin; pass 0 for DefaultClockSkew. maxTokenLen 0 means the codec
// default.
func New(keys *sign.Keyring, skew time.Duration, maxTokenLen int) *Verifier {
	if skew == 0 {
		skew = DefaultClockSkew
	}
	return &Verifier{keys: keys, skew: skew, maxTokenLen: maxTokenLen}
}

// VerifyHeader is a pure function of the token, the caller's clock and the
// expected client fingerprint.
func (v *Verifier) VerifyHeader(token string, now time.Time, fingerprint [challenge.FingerprintSize]byte) (Receipt, error) {
	env, err := header.DecodeLimit(token, v.maxTokenLen)
	if err != nil {
		return Receipt{}, err
	}
	chBytes, solBytes, err := challenge.SplitResponse(env.Payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", header.ErrDecode, err)
	}

	// The signature covers the challenge bytes exactly as transmitted.
	if err := v.keys.Verify(env.KeyID, chBytes, env.Signature); err != nil {
		return Receipt{}, err
	}

	ch, err := challenge.Parse(chBytes)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", header.ErrDecode, err)
	}
	sol, err := challenge.ParseSolution(solBytes)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", header.ErrDecode, err)
	}

	nowMs := now.UnixMilli()
	skewMs := v.skew.Milliseconds()
	if nowMs > ch.ExpiresAt+skewMs {
		return Receipt{}, fmt.Errorf("%w: expires_at=%d now=%d", ErrExpired, ch.ExpiresAt, nowMs)
	}
	if nowMs < ch.IssuedAt-skewMs {
		return Receipt{}, fmt.Errorf("%w: issued_at=%d now=%d", ErrNotYetValid, ch.IssuedAt, nowMs)
	}

	if subtle.ConstantTimeCompare(ch.Fingerprint[:], fingerprint[:]) != 1 {
		return Receipt{}, ErrBindingMismatch
	}

	if sol.ChallengeID != ch.ID {
		return Receipt{}, fmt.Errorf("%w: solution for challenge %q, token carries %q", ErrInvalidSolution, sol.ChallengeID, ch.ID)
	}
	if !pow.Check(ch.Seed, ch.Difficulty, sol.Nonce) {
		return Receipt{}, fmt.Errorf("%w: nonce %d misses difficulty %d", ErrInvalidSolution, sol.Nonce, ch.Difficulty)
	}

	return Receipt{ChallengeID: ch.ID, ExpiresAt: ch.ExpiresAt, Difficulty: ch.Difficulty}, nil
}
