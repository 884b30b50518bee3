package resource

import (
	mrand "math/rand/v2"
	"testing"
)

func TestContent_DeterministicWithSeededSource(t *testing.T) {
	t.Parallel()

	list := []string{"a", "b", "c", "d"}

	r1 := mrand.New(mrand.NewPCG(1, 2))
	r2 := mrand.New(mrand.NewPCG(1, 2))

	s1 := NewStaticWith(list, r1)
	s2 := NewStaticWith(list, r2)

	for i := 0; i < 32; i++ {
		got1, got2 := s1.Content(), s2.Content()
		if got1 != got2 {
			t.Fatalf("iteration %d: sources diverged: %q vs %q", i, got1, got2)
		}
	}
}

func TestContent_AlwaysFromList(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c := s.Content()
		if c == "" {
			t.Fatal("Content() returned empty string from non-empty list")
		}
		seen[c] = true
	}
	if len(seen) == 0 {
		t.Fatal("no content observed")
	}
}

func TestContent_EmptyList(t *testing.T) {
	t.Parallel()

	s := NewStaticWith(nil, nil)
	if got := s.Content(); got != "" {
		t.Fatalf("Content() on empty list = %q; want empty", got)
	}
}
