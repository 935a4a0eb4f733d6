package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/curator/internal/adapters/client"
	handler "github.com/vncsmyrnk/curator/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/curator/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/curator/internal/core/ports"
	"github.com/vncsmyrnk/curator/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// capturingPublisher records published events in place of a real broker.
type capturingPublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	RoutingKey string
	Event      any
}

func (p *capturingPublisher) Publish(_ context.Context, routingKey string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{RoutingKey: routingKey, Event: event})
	return nil
}

func (p *capturingPublisher) Events() []capturedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]capturedEvent(nil), p.events...)
}

type TestApp struct {
	DB            *sql.DB
	AuthServer    *httptest.Server
	UserServer    *httptest.Server
	HistoryServer *httptest.Server
	ContentServer *httptest.Server
	Client        *http.Client
	Publisher     *capturingPublisher
	ProfileSvc    ports.ProfileService
	DBContainer   testcontainers.Container
}

// setupTestApp wires the three services against one database the way the
// cmd binaries do, with a capturing publisher instead of a broker and a
// stub content service.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := &capturingPublisher{}

	// User service
	profileRepo := repo.NewProfileRepository(db)
	profileSvc := services.NewProfileService(profileRepo, logger)
	userServer := httptest.NewServer(handler.NewUserRouter(handler.NewProfileHandler(profileSvc)))

	// Auth service, pointed at the user service for display names
	credsRepo := repo.NewCredentialsRepository(db)
	tokenSvc := services.NewTokenService([]byte("test-secret"), 15*time.Minute)
	profileClient := client.NewProfileClient(userServer.URL)
	authSvc := services.NewAuthService(credsRepo, tokenSvc, publisher, profileClient, "user.registered", logger)
	authServer := httptest.NewServer(handler.NewAuthRouter(handler.NewAuthHandler(authSvc)))

	// Stub content service
	contentServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"m1","title":"Blade Runner","description":"A blade runner must pursue replicants.","genres":["Sci-Fi"]}`))
	}))

	// History service
	historyRepo := repo.NewHistoryRepository(db)
	watchlistRepo := repo.NewWatchlistRepository(db)
	contentClient := client.NewContentClient(contentServer.URL)
	activitySvc := services.NewActivityService(historyRepo, watchlistRepo, contentClient, publisher, "user.activity", logger)
	historyServer := httptest.NewServer(handler.NewHistoryRouter(handler.NewActivityHandler(activitySvc)))

	return &TestApp{
		DB:            db,
		AuthServer:    authServer,
		UserServer:    userServer,
		HistoryServer: historyServer,
		ContentServer: contentServer,
		Client:        &http.Client{Timeout: 10 * time.Second},
		Publisher:     publisher,
		ProfileSvc:    profileSvc,
		DBContainer:   dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.AuthServer.Close()
	app.UserServer.Close()
	app.HistoryServer.Close()
	app.ContentServer.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
