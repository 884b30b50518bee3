// Package replay tracks redeemed challenge ids so a solved token is
// accepted once. The verifier core stays stateless; this set is the
// external collaborator its callers consult after an accept. Entries are
// grouped into time buckets keyed by challenge expiry and swept wholesale,
// so memory is bounded by the issue rate times the TTL.
package replay

import (
	"sync"
	"time"
)

type Set struct {
	mu       sync.Mutex
	bucketMs int64
	buckets  map[int64]map[string]struct{}
}

func NewSet(bucket time.Duration) *Set {
	if bucket <= 0 {
		bucket = time.Minute
	}
	return &Set{
		bucketMs: bucket.Milliseconds(),
		buckets:  make(map[int64]map[string]struct{}),
	}
}

// Redeem records the id and reports whether this was its first redemption.
// expiresAt (unix ms) bounds how long the id is remembered.
func (s *Set) Redeem(id string, expiresAt int64, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now.UnixMilli())

	for _, ids := range s.buckets {
		if _, ok := ids[id]; ok {
			return false
		}
	}

	k := expiresAt / s.bucketMs
	b, ok := s.buckets[k]
	if !ok {
		b = make(map[string]struct{})
		s.buckets[k] = b
	}
	b[id] = struct{}{}
	return true
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ids := range s.buckets {
		n += len(ids)
	}
	return n
}

// sweep drops buckets whose challenges all expired. One extra bucket is
// retained to cover verifier clock-skew tolerance.
func (s *Set) sweep(nowMs int64) {
	cur := nowMs / s.bucketMs
	for k := range s.buckets {
		if k < cur-1 {
			delete(s.buckets, k)
		}
	}
}
