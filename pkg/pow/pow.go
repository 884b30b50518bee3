// Package pow implements the proof-of-work predicate and a bounded solver.
// The predicate is fixed: SHA-256 over seed || nonce (8-byte big-endian)
// must carry at least Difficulty leading zero bits.
package pow

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"time"

	sha256 "github.com/minio/sha256-simd"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
)

var ErrNoSolutionFound = errors.New("no solution found within attempt budget")

// Hash computes the proof-of-work digest for one candidate nonce.
func Hash(seed [challenge.SeedSize]byte, nonce uint64) [32]byte {
	var buf [challenge.SeedSize + 8]byte
	copy(buf[:], seed[:])
	binary.BigEndian.PutUint64(buf[challenge.SeedSize:], nonce)
	return sha256.Sum256(buf[:])
}

func LeadingZeroBits(b []byte) int {
	total := 0
	for _, by := range b {
		if by == 0 {
			total += 8
			continue
		}
		total += bits.LeadingZeros8(by)
		break
	}
	return total
}

// Check recomputes the difficulty predicate. Verifiers call this directly;
// a client-asserted result is never trusted.
func Check(seed [challenge.SeedSize]byte, difficulty int, nonce uint64) bool {
	sum := Hash(seed, nonce)
	return LeadingZeroBits(sum[:]) >= difficulty
}

// Solve searches candidate nonces until the predicate holds, the attempt
// budget runs out, or ctx is cancelled. Workers scan disjoint strides; the
// search order affects only speed, never which nonces are valid, so the
// first hit from any worker wins.
func Solve(ctx context.Context, ch challenge.Challenge, maxAttempts uint64) (challenge.Solution, error) {
	if maxAttempts == 0 {
		return challenge.Solution{}, fmt.Errorf("%w: zero attempt budget", ErrNoSolutionFound)
	}
	start := time.Now()

	workers := uint64(runtime.GOMAXPROCS(0))
	if workers > maxAttempts {
		workers = 1
	}

	found := atomic.NewBool(false)
	winner := atomic.NewUint64(0)

	g, gctx := errgroup.WithContext(ctx)
	for w := uint64(0); w < workers; w++ {
		offset := w
		g.Go(func() error {
			for nonce := offset; nonce < maxAttempts; nonce += workers {
				if nonce&0x3ff == offset&0x3ff {
					if found.Load() {
						return nil
					}
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}
				if Check(ch.Seed, ch.Difficulty, nonce) {
					if found.CompareAndSwap(false, true) {
						winner.Store(nonce)
					}
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return challenge.Solution{}, err
	}
	if !found.Load() {
		return challenge.Solution{}, fmt.Errorf("%w: %d attempts at difficulty %d", ErrNoSolutionFound, maxAttempts, ch.Difficulty)
	}
	return challenge.Solution{
		ChallengeID: ch.ID,
		Nonce:       winner.Load(),
		ElapsedMs:   time.Since(start).Milliseconds(),
	}, nil
}
