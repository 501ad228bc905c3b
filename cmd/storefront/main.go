package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	authdomain "github.com/rmaulana/storefront/internal/auth/domain"
	"github.com/rmaulana/storefront/internal/auth/infra/local"
	"github.com/rmaulana/storefront/internal/auth/session"
	cartapp "github.com/rmaulana/storefront/internal/cart/app"
	cartfile "github.com/rmaulana/storefront/internal/cart/infra/file"
	cartmem "github.com/rmaulana/storefront/internal/cart/infra/memory"
	cartredis "github.com/rmaulana/storefront/internal/cart/infra/redis"
	cartsqlite "github.com/rmaulana/storefront/internal/cart/infra/sqlite"
	catalogapp "github.com/rmaulana/storefront/internal/catalog/app"
	"github.com/rmaulana/storefront/internal/catalog/infra/static"
	"github.com/rmaulana/storefront/internal/gateway"
	"github.com/rmaulana/storefront/pkg/config"
	"github.com/rmaulana/storefront/pkg/logger"
	"github.com/rmaulana/storefront/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	source, err := buildCatalog(cfg)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err))
		os.Exit(1)
	}
	catalogSvc := catalogapp.NewService(source)

	store, closeStore, err := buildCartStore(ctx, cfg, log)
	if err != nil {
		log.Error("cart store init failed", slog.String("backend", cfg.CartBackend), slog.Any("err", err))
		os.Exit(1)
	}
	defer closeStore()
	log.Info("cart store ready", slog.String("backend", cfg.CartBackend))

	provider := local.NewProvider(local.Options{
		Mailer:        local.LogMailer{Log: log},
		MaxAttempts:   cfg.AuthMaxAttempts,
		AttemptWindow: cfg.AuthAttemptWindow,
	})
	provider.OnIdentityChanged(func(identity *authdomain.Identity) {
		if identity == nil {
			log.Info("identity signed out")
			return
		}
		log.Info("identity signed in", slog.String("email", identity.Email))
	})

	cartSvc := cartapp.NewService(store, session.NewRequestScoped(), log)
	srv := gateway.NewServer(catalogSvc, cartSvc, provider, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func buildCatalog(cfg config.Config) (catalogapp.ProductSource, error) {
	if cfg.CatalogFile == "" {
		return static.NewDemo(), nil
	}
	return static.LoadFile(cfg.CatalogFile)
}

func buildCartStore(ctx context.Context, cfg config.Config, log *slog.Logger) (cartapp.Store, func(), error) {
	noop := func() {}

	switch cfg.CartBackend {
	case "memory":
		return cartmem.New(), noop, nil
	case "file":
		return cartfile.New(cfg.CartFile, log), noop, nil
	case "sqlite":
		store, err := cartsqlite.Open(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		store, err := cartredis.Open(ctx, cfg.RedisAddr, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
	}
}
