package app

import (
	"context"
	"os/signal"
	"syscall"
)

// App ties the gateway runner to process lifetime: SIGINT/SIGTERM cancel
// the context and the runner drains.
type App struct {
	gw         Runner
	difficulty int
}

func New(gw Runner, difficulty int) *App {
	return &App{gw: gw, difficulty: difficulty}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.gw.Run(ctx, a.difficulty)
}
