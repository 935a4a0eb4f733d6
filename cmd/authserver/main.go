package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/curator/internal/adapters/client"
	handler "github.com/vncsmyrnk/curator/internal/adapters/handler/http"
	"github.com/vncsmyrnk/curator/internal/adapters/messaging/rabbitmq"
	"github.com/vncsmyrnk/curator/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/curator/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "auth")

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

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	tokenTTL := time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		tokenTTL, err = time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL: %v", err)
		}
	}

	publisher, err := rabbitmq.NewPublisher(os.Getenv("AMQP_URL"), os.Getenv("AMQP_EXCHANGE"))
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	credsRepo := postgres.NewCredentialsRepository(db)
	tokenService := services.NewTokenService([]byte(jwtSecret), tokenTTL)
	profileClient := client.NewProfileClient(os.Getenv("USER_SERVICE_URL"))
	authService := services.NewAuthService(
		credsRepo, tokenService, publisher, profileClient,
		os.Getenv("AMQP_REGISTRATION_ROUTING_KEY"), logger)

	authHandler := handler.NewAuthHandler(authService)
	router := handler.NewAuthRouter(authHandler)

	server := &stdhttp.Server{Addr: "0.0.0.0:8081", Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
