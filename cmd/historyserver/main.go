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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "history")

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

	publisher, err := rabbitmq.NewPublisher(os.Getenv("AMQP_URL"), os.Getenv("AMQP_EXCHANGE"))
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	historyRepo := postgres.NewHistoryRepository(db)
	watchlistRepo := postgres.NewWatchlistRepository(db)
	contentClient := client.NewContentClient(os.Getenv("CONTENT_SERVICE_URL"))
	activityService := services.NewActivityService(
		historyRepo, watchlistRepo, contentClient, publisher,
		os.Getenv("AMQP_ACTIVITY_ROUTING_KEY"), logger)

	activityHandler := handler.NewActivityHandler(activityService)
	router := handler.NewHistoryRouter(activityHandler)

	server := &stdhttp.Server{Addr: "0.0.0.0:8083", Handler: router}

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
