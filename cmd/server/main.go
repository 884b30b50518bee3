package main

import (
	"crypto/ed25519"
	"encoding/base64"
	"log/slog"
	"os"

	"github.com/IronShield-Tech/ironshield-types/internal/adapter/resource"
	"github.com/IronShield-Tech/ironshield-types/internal/adapter/transport/httpgw"
	"github.com/IronShield-Tech/ironshield-types/internal/app"
	"github.com/IronShield-Tech/ironshield-types/internal/replay"
	"github.com/IronShield-Tech/ironshield-types/internal/service"
	"github.com/IronShield-Tech/ironshield-types/pkg/config"
	"github.com/IronShield-Tech/ironshield-types/pkg/logger"
	"github.com/IronShield-Tech/ironshield-types/pkg/sign"
	"github.com/IronShield-Tech/ironshield-types/pkg/verify"
)

func main() {
	cfg := config.Parse()

	log := logger.NewJSON(logger.LevelFromEnv(cfg.LogLevel))

	priv, err := sign.LoadPrivateKeyFromEnv()
	if err != nil {
		// No key configured: generate an ephemeral one so the demo runs
		// standalone. Tokens stop verifying across restarts.
		var pub ed25519.PublicKey
		pub, priv, err = sign.GenerateKeypair()
		if err != nil {
			log.Error("keypair generation failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Warn("no signing key in env, generated ephemeral keypair",
			"public_key", base64.StdEncoding.EncodeToString(pub))
	}

	signer, err := sign.NewEd25519Signer(cfg.KeyID, priv)
	if err != nil {
		log.Error("signer init failed", slog.Any("err", err))
		os.Exit(1)
	}

	keys := sign.NewKeyring()
	if err := keys.Add(cfg.KeyID, sign.Ed25519, priv.Public().(ed25519.PublicKey)); err != nil {
		log.Error("keyring init failed", slog.Any("err", err))
		os.Exit(1)
	}

	issuer := service.NewIssuer(signer, cfg.PoWTTL)
	checker := verify.New(keys, cfg.ClockSkew, cfg.MaxTokenLen)
	replays := replay.NewSet(cfg.PoWTTL + cfg.ClockSkew)
	content := resource.NewStatic()

	srv := httpgw.NewServer(logger.Component(log, "httpgw"), cfg.ListenAddr, cfg.ShutdownWait, issuer, checker, content, replays)

	if err := app.New(srv, cfg.PoWDifficulty).Run(); err != nil {
		log.Error("server stopped with error", slog.Any("err", err))
	}
}
