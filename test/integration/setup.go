package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	httpadapter "github.com/moviehub/api/internal/adapters/handler/http"
	pgrepo "github.com/moviehub/api/internal/adapters/repository/postgres"
	"github.com/moviehub/api/internal/adapters/storage/disk"
	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/services"
)

const (
	testJWTSecret = "test-secret"
	testBaseURL   = "http://localhost:8080"
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

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// newTestEnv starts a postgres container, migrates it, and serves the fully
// wired application from an httptest server.
func newTestEnv(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	pgContainer, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, applyMigrations(db))

	posterStorage, err := disk.NewStorage(t.TempDir())
	require.NoError(t, err)

	userRepo := pgrepo.NewUserRepository(db)
	refreshRepo := pgrepo.NewRefreshTokenRepository(db)
	movieRepo := pgrepo.NewMovieRepository(db)

	tokenService := services.NewTokenService(testJWTSecret, time.Hour, nil)
	refreshService := services.NewRefreshTokenService(refreshRepo, 7*24*time.Hour, nil)
	hasher := services.NewBcryptHasher(4)
	authService := services.NewAuthService(userRepo, hasher, tokenService, refreshService)
	userService := services.NewUserService(userRepo)
	movieService := services.NewMovieService(movieRepo, posterStorage, testBaseURL)

	handler := httpadapter.NewHandler(
		zerolog.Nop(),
		httpadapter.NewAuthMiddleware(tokenService, userService, httpadapter.NewPolicy()),
		httpadapter.NewAuthHandler(authService),
		httpadapter.NewMovieHandler(movieService),
		httpadapter.NewFileHandler(posterStorage),
	)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, db
}

// seedUser inserts a user directly, bypassing the registration endpoint.
func seedUser(t *testing.T, db *sql.DB, email, password string, role domain.Role) {
	t.Helper()

	hash, err := services.NewBcryptHasher(4).Hash(password)
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)",
		uuid.New(), "Seeded User", email, hash, role,
	)
	require.NoError(t, err)
}

// mintToken signs an access token directly, so tests can produce expired or
// otherwise crafted tokens without going through the login flow.
func mintToken(t *testing.T, email string, role domain.Role, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
