package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/billsplit/billsplit/internal/config"
	"github.com/billsplit/billsplit/internal/scanner"
	"github.com/billsplit/billsplit/internal/server"
	"github.com/billsplit/billsplit/internal/service"
	"github.com/billsplit/billsplit/internal/storage"
	"github.com/billsplit/billsplit/internal/storage/memory"
	"github.com/billsplit/billsplit/internal/storage/redis"
	"github.com/billsplit/billsplit/internal/storage/sqlite"
	"github.com/billsplit/billsplit/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	kv, err := openBackend(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("Storage initialized", "backend", cfg.StorageBackend)

	splits := service.NewSplitService(kv, scanner.NewMock(cfg.ScanDelay), cfg.TTLDays)
	groups := service.NewGroupService(kv, cfg.TTLDays)

	srv := server.New(splits, groups)

	// h2c allows HTTP/2 without TLS for local and reverse-proxied setups.
	h2cHandler := h2c.NewHandler(srv.Handler(), &http2.Server{})
	httpServer := server.NewHTTPServer(":"+cfg.Port, h2cHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", httpServer.Addr, "url", fmt.Sprintf("http://localhost%s", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

// openBackend picks the KV backend from configuration.
func openBackend(cfg *config.Config) (storage.KV, error) {
	switch cfg.StorageBackend {
	case "sqlite":
		return sqlite.New(cfg.SQLiteDBPath)
	case "redis":
		return redis.New(context.Background(), redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
