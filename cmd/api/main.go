package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/bootstrap"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/config"
	transporthttp "github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	config.LoadEnvFile(logger)

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stores, err := bootstrap.OpenStores(startupCtx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer stores.Close()

	svc := bootstrap.NewServices(cfg, stores, clock.NewSystem(), logger)
	if err := bootstrap.SeedRooms(startupCtx, cfg, svc, logger); err != nil {
		log.Fatalf("%v", err)
	}

	handler := transporthttp.NewRouter(transporthttp.Services{
		Booking:      svc.Booking,
		Cancellation: svc.Cancellation,
		Catalog:      svc.Catalog,
		Admin:        svc.Admin,
	}, transporthttp.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Hours:       cfg.Hours,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("api listening on :%s store=%s hours=%s tz=%s", cfg.Port, cfg.StoreDriver, cfg.Hours, cfg.Location)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
