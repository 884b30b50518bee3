package resource

import (
	mrand "math/rand/v2"
)

// Static serves placeholder protected content. In a real deployment the
// gateway proxies to the origin instead; the demo hands out one of these.
type Static struct {
	list []string
	r    *mrand.Rand
}

func NewStatic() *Static {
	return &Static{
		list: []string{
			"origin content: status page",
			"origin content: api catalog",
			"origin content: download index",
			"origin content: account dashboard",
		},
	}
}

// NewStaticWith is the DI constructor for tests.
func NewStaticWith(list []string, r *mrand.Rand) *Static {
	return &Static{list: list, r: r}
}

func (s *Static) Content() string {
	if len(s.list) == 0 {
		return ""
	}
	if s.r != nil {
		return s.list[s.r.IntN(len(s.list))]
	}
	return s.list[mrand.IntN(len(s.list))]
}
