package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mail-ticket-poller/internal/classifier"
	"mail-ticket-poller/internal/config"
	imapclient "mail-ticket-poller/internal/imap"
	"mail-ticket-poller/internal/logging"
	"mail-ticket-poller/internal/metrics"
	"mail-ticket-poller/internal/poller"
	"mail-ticket-poller/internal/ticketstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Log.Fatalf("Error reading configuration: %v", err)
	}

	if err := logging.Configure(cfg.Log.Format, cfg.Log.Level); err != nil {
		logging.Log.Fatalf("Invalid log configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := ticketstore.Open(ctx, cfg.Mongo)
	if err != nil {
		logging.Log.Fatalf("Error opening ticket store: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logging.Log.WithError(err).Warn("Error closing ticket store")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	if err := store.Ping(pingCtx); err != nil {
		logging.Log.WithError(err).Warn("Ticket store not reachable yet, tickets will fail until it is")
	}
	cancel()

	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr)
		srv.Start(func(err error) {
			logging.Log.WithError(err).Error("Metrics listener stopped")
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logging.Log.Infof("Serving metrics on %s/metrics", cfg.Metrics.Addr)
	}

	c := classifier.New(cfg.Keywords)
	logging.Log.Infof("Classifying with keywords %v", c.Keywords())

	p := poller.New(cfg.Email, func() imapclient.Client {
		return imapclient.NewStandardClient()
	}, c, store)

	p.Run(ctx)
}
