package service

import (
	"fmt"
	"time"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/header"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
)

// Issuer mints signed challenge tokens for the edge gateway. Policy (which
// difficulty, which requests) stays with the caller; this only stamps and
// signs.
type Issuer struct {
	signer sign.Signer
	ttl    time.Duration
}

func NewIssuer(signer sign.Signer, ttl time.Duration) *Issuer {
	return &Issuer{signer: signer, ttl: ttl}
}

func (i *Issuer) Issue(difficulty int, fingerprint [challenge.FingerprintSize]byte) (string, error) {
	ch, err := challenge.New(difficulty, i.ttl, fingerprint)
	if err != nil {
		return "", fmt.Errorf("new challenge: %w", err)
	}
	tok, err := header.Seal(ch.Canonical(), i.signer)
	if err != nil {
		return "", fmt.Errorf("seal challenge: %w", err)
	}
	return tok, nil
}
