package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/cli"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/share"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	app, closeFn, err := newApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeFn()

	app.Run(ctx)
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*cli.App, func(), error) {
	if err := filex.EnsureParentDir(cfg.DBPath); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open local database: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(cfg.KeyPath)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	sharer, err := newSharer(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	api := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, client.WithLogger(logger.With("module", "api")))
	sess := session.NewStore(db, sealer)
	account := services.NewAccountService(api, sess, logger)

	seq := purchase.NewSequencer(api, sess,
		purchase.WithCompensation(cfg.CompensateOnFailure),
		purchase.WithStrictPrices(cfg.StrictPrices),
		purchase.WithLogger(logger.With("module", "purchase")),
	)

	app := cli.NewApp(cli.Deps{
		Auth:         services.NewAuthService(api, sess, logger),
		Catalog:      services.NewCatalogService(api, sess, logger),
		Account:      account,
		History:      services.NewHistoryService(api, sess, account, logger),
		Sequencer:    seq,
		Sharer:       sharer,
		Log:          logger,
		StrictPrices: cfg.StrictPrices,
		In:           os.Stdin,
		Out:          os.Stdout,
		Now:          time.Now,
	})

	closeFn := func() {
		sealer.Wipe()
		closeDB(db, logger)
	}
	return app, closeFn, nil
}

// newSharer uploads receipts to S3 when a bucket is configured and writes
// them to the receipt directory otherwise.
func newSharer(ctx context.Context, cfg *config.Config) (purchase.Sharer, error) {
	if cfg.S3Bucket == "" {
		return share.NewFileSharer(cfg.ReceiptDir), nil
	}
	return share.NewS3Sharer(ctx, share.S3Config{
		Bucket:     cfg.S3Bucket,
		Region:     cfg.S3Region,
		Endpoint:   cfg.S3Endpoint,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		PresignTTL: cfg.S3PresignTTL,
	})
}

func closeDB(db *sql.DB, logger logging.Logger) {
	if err := db.Close(); err != nil {
		logger.Error(context.Background(), "closing local database", "error", err)
	}
}
