package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/curator/internal/adapters/messaging/rabbitmq"
	"github.com/vncsmyrnk/curator/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "profile-worker")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_PORT"), os.Getenv("POSTGRES_DB"))
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	profileRepo := postgres.NewProfileRepository(db)
	profileService := services.NewProfileService(profileRepo, logger)

	consumer, err := rabbitmq.NewConsumer(
		os.Getenv("AMQP_URL"),
		os.Getenv("AMQP_EXCHANGE"),
		os.Getenv("AMQP_REGISTRATION_QUEUE"),
		os.Getenv("AMQP_REGISTRATION_ROUTING_KEY"),
		logger,
	)
	if err != nil {
		log.Fatal(err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Starting registration event consumer...")

	err = consumer.Consume(ctx, func(ctx context.Context, body []byte) error {
		var event domain.UserRegisteredEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("malformed registration event: %w", err)
		}
		return profileService.CreateFromEvent(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Consumer stopped with error: %v", err)
	}

	fmt.Println("Gracefully shutting down...")
}
