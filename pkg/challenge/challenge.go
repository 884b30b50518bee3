// Package challenge defines the proof-of-work challenge and solution value
// types shared by issuers, solving clients and verifying origins, together
// with their canonical byte encoding. The canonical form is the exact input
// to signing and hashing, so it is fixed bit-for-bit: ASCII fields joined
// with '|', lowercase hex for byte fields, base-10 for integers.
package challenge

import (
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	sha256 "github.com/minio/sha256-simd"
)

const (
	SeedSize        = 16
	FingerprintSize = 32

	// MaxDifficulty caps issuable challenges. Beyond ~56 leading zero bits
	// a challenge is unsolvable on commodity hardware within any sane TTL.
	MaxDifficulty = 56
)

var (
	ErrInvalidParameters = errors.New("invalid challenge parameters")
	ErrMalformed         = errors.New("malformed payload")
)

// Challenge is a single proof-of-work puzzle bound to one client and one
// time window. Immutable once constructed; timestamps are unix milliseconds.
type Challenge struct {
	ID          string
	Seed        [SeedSize]byte
	Difficulty  int
	IssuedAt    int64
	ExpiresAt   int64
	Fingerprint [FingerprintSize]byte
}

// Solution is the client's answer. The nonce is re-checked by the verifier;
// nothing here is trusted as asserted.
type Solution struct {
	ChallengeID string
	Nonce       uint64
	ElapsedMs   int64 // solver diagnostic only
}

// New issues a fresh challenge with a random seed, stamped at the current
// time.
func New(difficulty int, ttl time.Duration, fingerprint [FingerprintSize]byte) (Challenge, error) {
	var seed [SeedSize]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return Challenge{}, fmt.Errorf("seed: %w", err)
	}
	return NewAt(seed, difficulty, ttl, fingerprint, time.Now())
}

// NewAt is the deterministic constructor: caller supplies seed and clock.
func NewAt(seed [SeedSize]byte, difficulty int, ttl time.Duration, fingerprint [FingerprintSize]byte, now time.Time) (Challenge, error) {
	if ttl <= 0 {
		return Challenge{}, fmt.Errorf("%w: ttl %s must be positive", ErrInvalidParameters, ttl)
	}
	if difficulty < 0 || difficulty > MaxDifficulty {
		return Challenge{}, fmt.Errorf("%w: difficulty %d out of [0, %d]", ErrInvalidParameters, difficulty, MaxDifficulty)
	}
	issued := now.UnixMilli()
	return Challenge{
		ID:          uuid.NewString(),
		Seed:        seed,
		Difficulty:  difficulty,
		IssuedAt:    issued,
		ExpiresAt:   issued + ttl.Milliseconds(),
		Fingerprint: fingerprint,
	}, nil
}

func (c Challenge) Expired(now time.Time) bool {
	return now.UnixMilli() > c.ExpiresAt
}

// Fingerprint derives the client-binding digest from caller-supplied
// material (remote IP, user agent, ...). Raw values never travel with the
// challenge.
func Fingerprint(parts ...string) [FingerprintSize]byte {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	var fp [FingerprintSize]byte
	copy(fp[:], h.Sum(nil))
	return fp
}

// RecommendedAttempts is a planning hint for clients: twice the expected
// attempt count for the given difficulty.
func RecommendedAttempts(difficulty int) uint64 {
	if difficulty >= 63 {
		return math.MaxUint64
	}
	return 1 << (difficulty + 1)
}

// Canonical returns the deterministic byte form used for signing:
// id|hex(seed)|difficulty|issuedAt|expiresAt|hex(fingerprint)
func (c Challenge) Canonical() []byte {
	return []byte(strings.Join([]string{
		c.ID,
		hex.EncodeToString(c.Seed[:]),
		strconv.Itoa(c.Difficulty),
		strconv.FormatInt(c.IssuedAt, 10),
		strconv.FormatInt(c.ExpiresAt, 10),
		hex.EncodeToString(c.Fingerprint[:]),
	}, "|"))
}

// Parse reverses Canonical, re-validating every field so a forged or
// truncated payload never yields a usable Challenge.
func Parse(b []byte) (Challenge, error) {
	parts := strings.Split(string(b), "|")
	if len(parts) != 6 {
		return Challenge{}, fmt.Errorf("%w: want 6 challenge fields, got %d", ErrMalformed, len(parts))
	}
	if parts[0] == "" {
		return Challenge{}, fmt.Errorf("%w: empty challenge id", ErrMalformed)
	}
	seed, err := hex.DecodeString(parts[1])
	if err != nil || len(seed) != SeedSize {
		return Challenge{}, fmt.Errorf("%w: seed must be %d hex bytes", ErrMalformed, SeedSize)
	}
	difficulty, err := strconv.Atoi(parts[2])
	if err != nil || difficulty < 0 || difficulty > MaxDifficulty {
		return Challenge{}, fmt.Errorf("%w: bad difficulty %q", ErrMalformed, parts[2])
	}
	issued, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: bad issued_at %q", ErrMalformed, parts[3])
	}
	expires, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: bad expires_at %q", ErrMalformed, parts[4])
	}
	if expires <= issued {
		return Challenge{}, fmt.Errorf("%w: expires_at %d not after issued_at %d", ErrMalformed, expires, issued)
	}
	fp, err := hex.DecodeString(parts[5])
	if err != nil || len(fp) != FingerprintSize {
		return Challenge{}, fmt.Errorf("%w: fingerprint must be %d hex bytes", ErrMalformed, FingerprintSize)
	}

	ch := Challenge{
		ID:         parts[0],
		Difficulty: difficulty,
		IssuedAt:   issued,
		ExpiresAt:  expires,
	}
	copy(ch.Seed[:], seed)
	copy(ch.Fingerprint[:], fp)
	return ch, nil
}

// Canonical returns the deterministic byte form of a solution:
// challengeID|nonce|elapsedMs
func (s Solution) Canonical() []byte {
	return []byte(strings.Join([]string{
		s.ChallengeID,
		strconv.FormatUint(s.Nonce, 10),
		strconv.FormatInt(s.ElapsedMs, 10),
	}, "|"))
}

func ParseSolution(b []byte) (Solution, error) {
	parts := strings.Split(string(b), "|")
	if len(parts) != 3 {
		return Solution{}, fmt.Errorf("%w: want 3 solution fields, got %d", ErrMalformed, len(parts))
	}
	if parts[0] == "" {
		return Solution{}, fmt.Errorf("%w: empty challenge id", ErrMalformed)
	}
	nonce, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Solution{}, fmt.Errorf("%w: bad nonce %q", ErrMalformed, parts[1])
	}
	elapsed, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Solution{}, fmt.Errorf("%w: bad elapsed_ms %q", ErrMalformed, parts[2])
	}
	return Solution{ChallengeID: parts[0], Nonce: nonce, ElapsedMs: elapsed}, nil
}

// responseSep separates the signed challenge bytes from the solution bytes
// inside a response payload. '\n' cannot occur in either canonical form.
const responseSep = '\n'

// EncodeResponse appends the solution to the exact challenge bytes the
// client received. The signed prefix must travel untouched, so callers pass
// the payload from the decoded envelope, never a re-serialized challenge.
func EncodeResponse(challengeBytes []byte, sol Solution) []byte {
	out := make([]byte, 0, len(challengeBytes)+1+64)
	out = append(out, challengeBytes...)
	out = append(out, responseSep)
	out = append(out, sol.Canonical()...)
	return out
}

// SplitResponse slices a response payload back into the signed challenge
// prefix and the solution suffix without re-serializing either.
func SplitResponse(payload []byte) (challengeBytes, solutionBytes []byte, err error) {
	for i, b := range payload {
		if b == responseSep {
			return payload[:i], payload[i+1:], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: response payload missing solution separator", ErrMalformed)
}
