// Package bootstrap opens the configured store and assembles the application
// services shared by the HTTP server and the MQ worker.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/app"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/config"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/bolt"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/memory"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/postgres"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stores holds one repository per service. Close releases the underlying
// connection or file.
type Stores struct {
	Reservations  app.ReservationRepository
	Cancellations app.CancellationRepository
	Catalog       app.CatalogRepository
	Admin         app.AdminRepository
	Close         func()
}

// OpenStores connects to the store selected by cfg.StoreDriver. Postgres
// migrations are applied before returning.
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		if err := migrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		reservations := postgres.NewReservationRepository(pool, cfg.LockTimeout)
		return &Stores{
			Reservations:  reservations,
			Cancellations: reservations,
			Catalog:       postgres.NewCatalogRepository(pool),
			Admin:         postgres.NewAdminRepository(pool),
			Close:         pool.Close,
		}, nil
	case config.DriverBolt:
		store, err := bolt.Open(cfg.BoltPath, cfg.LockTimeout)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Reservations:  store,
			Cancellations: store,
			Catalog:       store,
			Admin:         store,
			Close:         func() { _ = store.Close() },
		}, nil
	case config.DriverMemory:
		store := memory.New(cfg.LockTimeout)
		return &Stores{
			Reservations:  store,
			Cancellations: store,
			Catalog:       store,
			Admin:         store,
			Close:         func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

type Services struct {
	Booking      *app.BookingService
	Cancellation *app.CancellationService
	Catalog      *app.CatalogService
	Admin        *app.AdminService
}

func NewServices(cfg config.Config, stores *Stores, clk clock.Clock, logger *log.Logger) Services {
	policy := domain.NewTimeWindowPolicy(cfg.Hours, cfg.Location)
	return Services{
		Booking:      app.NewBookingService(stores.Reservations, clk, policy, app.WithLogger(logger)),
		Cancellation: app.NewCancellationService(stores.Cancellations, clk, logger),
		Catalog:      app.NewCatalogService(stores.Catalog, clk),
		Admin:        app.NewAdminService(stores.Admin, clk),
	}
}

// SeedRooms loads the default room set when cfg.SeedRooms is on and the store
// has no rooms yet.
func SeedRooms(ctx context.Context, cfg config.Config, svc Services, logger *log.Logger) error {
	if !cfg.SeedRooms {
		return nil
	}
	n, err := svc.Admin.SeedRooms(ctx, domain.DefaultRooms())
	if err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	if n > 0 {
		logger.Printf("seeded rooms count=%d", n)
	}
	return nil
}
