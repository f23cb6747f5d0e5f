package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shoppico/internal/cart"
	"shoppico/internal/config"
	"shoppico/internal/db"
	"shoppico/internal/httpserver"
	"shoppico/internal/identity"
	"shoppico/internal/kv"
	productrepo "shoppico/internal/repository/product"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	cartStore, err := buildCartStore(ctx, cfg, dbpool)
	if err != nil {
		logger.Fatalf("init cart backend %q: %v", cfg.CartBackend, err)
	}

	cartManager := cart.NewManager(cartStore, logger)
	defer cartManager.CloseAll()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	identitySvc := identity.New(cfg.GuestTokenTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Carts:    cartManager,
		Products: productRepo,
		Identity: identitySvc,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (cart backend: %s)", cfg.HTTPAddr, cfg.CartBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func buildCartStore(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (kv.Store, error) {
	switch cfg.CartBackend {
	case "redis":
		client, err := kv.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return kv.NewRedis(client), nil
	case "memory":
		return kv.NewMemory(), nil
	case "postgres":
		return kv.NewPostgres(pool), nil
	default:
		return nil, fmt.Errorf("unknown cart backend %q (want postgres, redis, or memory)", cfg.CartBackend)
	}
}
