package fakeapi

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/storefront/internal/fakeapi/config"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// App wires configuration, the seeded store and the HTTP server.
type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, c.LogLevel, os.Stdout)

	store := NewStore()
	if err := Seed(store); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	srv := NewServer(c.Addr, logger, store, c.SecretKey,
		WithTokenTTL(c.TokenTTL),
		WithAuthRateLimit(c.AuthRatePerSecond, c.AuthBurst),
	)
	return &App{config: c, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting fake backend...", "demo_user", DemoEmail)
	app.initSignalHandler(cancelFunc)

	return app.server.Run(ctx)
}
