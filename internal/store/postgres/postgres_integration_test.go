package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DavideLicci/MindGarden/internal/store"
	"github.com/DavideLicci/MindGarden/internal/store/storetest"
)

// postgresDSN returns MINDGARDEN_POSTGRES_DSN, or starts a throwaway container
// when MINDGARDEN_TESTCONTAINERS=1.
func postgresDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("MINDGARDEN_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if os.Getenv("MINDGARDEN_TESTCONTAINERS") != "1" {
		t.Skip("MINDGARDEN_POSTGRES_DSN not set; skipping postgres store integration test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "mindgarden",
			"POSTGRES_USER":     "garden",
			"POSTGRES_PASSWORD": "garden",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("postgres://garden:garden@%s:%s/mindgarden?sslmode=disable", host, port.Port())
}

func TestPostgresStore_Compliance(t *testing.T) {
	dsn := postgresDSN(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(context.Background(), dsn)
		if err != nil {
			t.Fatalf("postgres store: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestDialect_UniqueViolation(t *testing.T) {
	if Dialect.IsUniqueViolation(nil) {
		t.Fatalf("nil error is not a violation")
	}
}
