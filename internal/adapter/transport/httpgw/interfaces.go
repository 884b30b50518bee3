package httpgw

import (
	"time"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/verify"
)

//go:generate mockgen -source=interfaces.go -destination=./server_mock.go -package=httpgw

type Issuer interface {
	Issue(difficulty int, fingerprint [challenge.FingerprintSize]byte) (string, error)
}

type Checker interface {
	VerifyHeader(token string, now time.Time, fingerprint [challenge.FingerprintSize]byte) (verify.Receipt, error)
}

type Content interface {
	Content() string
}

type Replays interface {
	Redeem(id string, expiresAt int64, now time.Time) bool
}
