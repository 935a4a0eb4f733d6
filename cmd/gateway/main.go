package main

import (
	"context"
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

	"github.com/vncsmyrnk/curator/internal/adapters/gateway"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "gateway")

	authURL := os.Getenv("AUTH_SERVICE_URL")
	userURL := os.Getenv("USER_SERVICE_URL")
	historyURL := os.Getenv("HISTORY_SERVICE_URL")
	if authURL == "" || userURL == "" || historyURL == "" {
		log.Fatal("AUTH_SERVICE_URL, USER_SERVICE_URL and HISTORY_SERVICE_URL are required")
	}

	filter := gateway.NewAuthFilter(authURL, logger)
	proxy, err := gateway.NewProxy([]gateway.Route{
		{Prefix: "/auth", Upstream: authURL},
		{Prefix: "/users", Upstream: userURL},
		{Prefix: "/history", Upstream: historyURL},
		{Prefix: "/watchlist", Upstream: historyURL},
	}, filter, logger)
	if err != nil {
		log.Fatal(err)
	}

	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: proxy}

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
