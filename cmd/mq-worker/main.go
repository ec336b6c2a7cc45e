package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/bootstrap"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/config"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/transport/mq"
)

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

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	dispatcher := mq.NewDispatcher(svc.Booking, svc.Cancellation, svc.Catalog, logger)
	consumer := mq.NewConsumer(ch, cfg.BookingQueue, dispatcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("mq worker: %v", err)
	}
	log.Printf("mq worker stopped")
}
