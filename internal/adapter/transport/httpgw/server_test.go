package httpgw

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IronShield-Tech/ironshield-types/internal/replay"
	"github.com/IronShield-Tech/ironshield-types/internal/service"
	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/header"
	"github.com/IronShield-Tech/ironshield-types/pkg/pow"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
	"github.com/IronShield-Tech/ironshield-types/pkg/verify"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mocks struct {
	issuer  *MockIssuer
	checker *MockChecker
	content *MockContent
	replays *MockReplays
}

func newTestServer(t *testing.T) (*Server, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		issuer:  NewMockIssuer(ctrl),
		checker: NewMockChecker(ctrl),
		content: NewMockContent(ctrl),
		replays: NewMockReplays(ctrl),
	}
	s := NewServer(discardLogger(), ":0", time.Second, m.issuer, m.checker, m.content, m.replays)
	return s, m
}

func TestHandleChallenge_SetsTokenHeader(t *testing.T) {
	t.Parallel()

	s, m := newTestServer(t)
	m.issuer.EXPECT().Issue(20, gomock.Any()).Return("the-token", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/challenge", nil)
	s.Handler(20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the-token", rec.Header().Get(header.ChallengeHeaderName))
}

func TestHandleChallenge_IssuerFailure(t *testing.T) {
	t.Parallel()

	s, m := newTestServer(t)
	m.issuer.EXPECT().Issue(20, gomock.Any()).Return("", errors.New("no entropy"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/challenge", nil)
	s.Handler(20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(header.ChallengeHeaderName))
}

func TestHandleProtected_MissingToken(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.Handler(20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleProtected_AcceptServesContent(t *testing.T) {
	t.Parallel()

	s, m := newTestServer(t)
	rcpt := verify.Receipt{ChallengeID: "ch-1", ExpiresAt: 123, Difficulty: 20}
	m.checker.EXPECT().VerifyHeader("tok", gomock.Any(), gomock.Any()).Return(rcpt, nil)
	m.replays.EXPECT().Redeem("ch-1", int64(123), gomock.Any()).Return(true)
	m.content.EXPECT().Content().Return("protected page")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(header.ResponseHeaderName, "tok")
	s.Handler(20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "protected page\n", rec.Body.String())
}

func TestHandleProtected_ReplayedTokenConflicts(t *testing.T) {
	t.Parallel()

	s, m := newTestServer(t)
	rcpt := verify.Receipt{ChallengeID: "ch-1", ExpiresAt: 123, Difficulty: 20}
	m.checker.EXPECT().VerifyHeader("tok", gomock.Any(), gomock.Any()).Return(rcpt, nil)
	m.replays.EXPECT().Redeem("ch-1", int64(123), gomock.Any()).Return(false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(header.ResponseHeaderName, "tok")
	s.Handler(20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleProtected_StatusByFailureKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"decode", header.ErrDecode, http.StatusBadRequest},
		{"version", header.ErrUnsupportedFormatVersion, http.StatusBadRequest},
		{"signature", sign.ErrSignatureInvalid, http.StatusUnauthorized},
		{"unknown_signer", sign.ErrUnknownSigner, http.StatusUnauthorized},
		{"expired", verify.ErrExpired, http.StatusUnauthorized},
		{"not_yet_valid", verify.ErrNotYetValid, http.StatusUnauthorized},
		{"binding", verify.ErrBindingMismatch, http.StatusForbidden},
		{"bad_solution", verify.ErrInvalidSolution, http.StatusForbidden},
		{"internal", errors.New("keyring io"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestServer(t)
			m.checker.EXPECT().VerifyHeader("tok", gomock.Any(), gomock.Any()).Return(verify.Receipt{}, tc.err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(header.ResponseHeaderName, "tok")
			s.Handler(20).ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

type staticContent string

func (c staticContent) Content() string { return string(c) }

// Full round trip over the real components: fetch a challenge, solve it,
// present the solution, and confirm the replay guard fires on reuse.
func TestGateway_EndToEnd(t *testing.T) {
	t.Parallel()

	pub, priv, err := sign.GenerateKeypair()
	require.NoError(t, err)
	signer, err := sign.NewEd25519Signer("edge-1", priv)
	require.NoError(t, err)
	keys := sign.NewKeyring()
	require.NoError(t, keys.Add("edge-1", sign.Ed25519, pub))

	s := NewServer(
		discardLogger(), ":0", time.Second,
		service.NewIssuer(signer, 30*time.Second),
		verify.New(keys, 0, 0),
		staticContent("origin content"),
		replay.NewSet(time.Minute),
	)
	srv := httptest.NewServer(s.Handler(8))
	defer srv.Close()

	client := srv.Client()

	resp, err := client.Get(srv.URL + "/challenge")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	chTok := resp.Header.Get(header.ChallengeHeaderName)
	require.NotEmpty(t, chTok)

	env, err := header.Decode(chTok)
	require.NoError(t, err)
	ch, err := challenge.Parse(env.Payload)
	require.NoError(t, err)

	sol, err := pow.Solve(context.Background(), ch, 1<<22)
	require.NoError(t, err)

	respTok, err := header.Respond(env, sol)
	require.NoError(t, err)

	get := func() *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
		require.NoError(t, err)
		req.Header.Set(header.ResponseHeaderName, respTok)
		r, err := client.Do(req)
		require.NoError(t, err)
		return r
	}

	first := get()
	body, _ := io.ReadAll(first.Body)
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode, "body: %s", body)
	assert.Equal(t, "origin content", strings.TrimSpace(string(body)))

	second := get()
	io.Copy(io.Discard, second.Body)
	second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode, "replayed token must be refused")

	// a bare request without a token still bounces
	bare, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	io.Copy(io.Discard, bare.Body)
	bare.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, bare.StatusCode)
}
