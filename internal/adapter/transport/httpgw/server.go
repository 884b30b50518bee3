package httpgw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/header"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
	"github.com/IronShield-Tech/ironshield-types/pkg/verify"
)

// Server is the edge gateway: GET /challenge hands out a signed challenge
// token, every other path requires a solved response token.
type Server struct {
	log       *slog.Logger
	addr      string
	shutdownT time.Duration
	issuer    Issuer
	checker   Checker
	content   Content
	replays   Replays
}

func NewServer(log *slog.Logger, addr string, shutdown time.Duration, issuer Issuer, checker Checker, content Content, replays Replays) *Server {
	return &Server{
		log:       log,
		addr:      addr,
		shutdownT: shutdown,
		issuer:    issuer,
		checker:   checker,
		content:   content,
		replays:   replays,
	}
}

func (s *Server) Run(ctx context.Context, difficulty int) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(difficulty),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("server started", "addr", s.addr, "difficulty", difficulty)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown: draining connections")
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownT)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			s.log.Warn("shutdown: force-close remaining connections", "err", err)
			_ = srv.Close()
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	}
}

// Handler exposes the routes; split out from Run so tests can drive it with
// httptest.
func (s *Server) Handler(difficulty int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /challenge", s.handleChallenge(difficulty))
	mux.HandleFunc("/", s.handleProtected)
	return mux
}

func (s *Server) handleChallenge(difficulty int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, err := s.issuer.Issue(difficulty, fingerprintFor(r))
		if err != nil {
			s.log.Error("challenge issue failed", "err", err)
			http.Error(w, "challenge unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set(header.ChallengeHeaderName, tok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("solve the attached challenge and retry with " + header.ResponseHeaderName + "\n"))
		s.log.Debug("challenge issued", "remote", r.RemoteAddr, "difficulty", difficulty)
	}
}

func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	tok := r.Header.Get(header.ResponseHeaderName)
	if tok == "" {
		http.Error(w, "challenge response required", http.StatusUnauthorized)
		return
	}
	now := time.Now()
	rcpt, err := s.checker.VerifyHeader(tok, now, fingerprintFor(r))
	if err != nil {
		s.log.Debug("verification failed", "remote", r.RemoteAddr, "reason", err.Error())
		http.Error(w, "challenge response rejected", statusFor(err))
		return
	}
	if !s.replays.Redeem(rcpt.ChallengeID, rcpt.ExpiresAt, now) {
		s.log.Warn("replayed challenge", "remote", r.RemoteAddr, "challenge_id", rcpt.ChallengeID)
		http.Error(w, "challenge already redeemed", http.StatusConflict)
		return
	}
	_, _ = w.Write([]byte(s.content.Content() + "\n"))
	s.log.Info("request admitted", "remote", r.RemoteAddr, "challenge_id", rcpt.ChallengeID, "difficulty", rcpt.Difficulty)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, header.ErrDecode), errors.Is(err, header.ErrUnsupportedFormatVersion):
		return http.StatusBadRequest
	case errors.Is(err, sign.ErrSignatureInvalid), errors.Is(err, sign.ErrUnknownSigner),
		errors.Is(err, verify.ErrExpired), errors.Is(err, verify.ErrNotYetValid):
		return http.StatusUnauthorized
	case errors.Is(err, verify.ErrBindingMismatch), errors.Is(err, verify.ErrInvalidSolution):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fingerprintFor binds challenges to the requesting client. The fingerprint
// is a digest; raw IP and user agent never leave the gateway.
func fingerprintFor(r *http.Request) [challenge.FingerprintSize]byte {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return challenge.Fingerprint(host, r.UserAgent())
}
