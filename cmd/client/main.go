package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/IronShield-Tech/ironshield-types/pkg/challenge"
	"github.com/IronShield-Tech/ironshield-types/pkg/config"
	"github.com/IronShield-Tech/ironshield-types/pkg/header"
	"github.com/IronShield-Tech/ironshield-types/pkg/logger"
	"github.com/IronShield-Tech/ironshield-types/pkg/pow"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
)

func main() {
	cfg := config.Parse()
	log := logger.NewJSON(logger.LevelFromEnv(cfg.LogLevel))

	httpc := &http.Client{Timeout: 30 * time.Second}

	// 1) fetch challenge
	resp, err := httpc.Get(cfg.ServerURL + "/challenge")
	if err != nil {
		log.Error("challenge request failed", "err", err)
		os.Exit(1)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	tok := resp.Header.Get(header.ChallengeHeaderName)
	if tok == "" {
		log.Error("server sent no challenge header")
		os.Exit(1)
	}

	env, err := header.Decode(tok)
	if err != nil {
		log.Error("decode challenge token failed", "err", err)
		os.Exit(1)
	}
	ch, err := challenge.Parse(env.Payload)
	if err != nil {
		log.Error("parse challenge failed", "err", err)
		os.Exit(1)
	}

	// Authenticate the challenge before burning CPU on it, when the edge
	// public key is available.
	if pub, err := sign.LoadPublicKeyFromEnv(); err == nil {
		keys := sign.NewKeyring()
		_ = keys.Add(env.KeyID, sign.Ed25519, pub)
		if err := keys.Verify(env.KeyID, env.Payload, env.Signature); err != nil {
			log.Error("challenge signature rejected", "err", err)
			os.Exit(1)
		}
	}

	log.Info("challenge received",
		"difficulty", ch.Difficulty,
		"recommended_attempts", challenge.RecommendedAttempts(ch.Difficulty),
		"expires_at", ch.ExpiresAt,
	)

	// 2) solve within the challenge window
	ctx, cancel := context.WithDeadline(context.Background(), time.UnixMilli(ch.ExpiresAt))
	defer cancel()

	sol, err := pow.Solve(ctx, ch, cfg.MaxAttempts)
	if err != nil {
		log.Error("solve failed", "err", err)
		os.Exit(2)
	}
	log.Info("nonce found", "nonce", sol.Nonce, "elapsed_ms", sol.ElapsedMs)

	// 3) present the solved token
	respTok, err := header.Respond(env, sol)
	if err != nil {
		log.Error("encode response token failed", "err", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodGet, cfg.ServerURL+"/", nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		os.Exit(1)
	}
	req.Header.Set(header.ResponseHeaderName, respTok)

	resp2, err := httpc.Do(req)
	if err != nil {
		log.Error("protected request failed", "err", err)
		os.Exit(1)
	}
	defer resp2.Body.Close()

	body, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != http.StatusOK {
		log.Error("request rejected", "status", resp2.StatusCode, "body", strings.TrimSpace(string(body)))
		os.Exit(1)
	}
	fmt.Println(strings.TrimSpace(string(body)))
}
