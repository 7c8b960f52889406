//go:build integration

package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a Postgres container and returns its DSN.
func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "skiphire",
			"POSTGRES_PASSWORD": "skiphire",
			"POSTGRES_DB":       "skiphire",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Postgres endpoint: %v", err)
	}
	return fmt.Sprintf("postgres://skiphire:skiphire@%s/skiphire?sslmode=disable", endpoint)
}

func TestPostgresSource_Integration_SeedAndFetch(t *testing.T) {
	dsn := setupPostgres(t)
	ctx := context.Background()

	src, err := NewPostgresSource(ctx, dsn)
	if err != nil {
		t.Fatalf("NewPostgresSource: %v", err)
	}
	defer src.Close()

	if err := src.Seed(ctx, ReferenceCatalog()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	skips, err := src.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(skips) != 8 {
		t.Fatalf("expected 8 skips, got %d", len(skips))
	}
	if skips[1].ID != "6-yard" || skips[1].Price != 300 || !skips[1].Popular {
		t.Fatalf("unexpected second skip: %+v", skips[1])
	}
	if len(skips[1].Suitable) != 2 || skips[1].Suitable[0] != "Kitchen renovations" {
		t.Fatalf("suitability tags not round-tripped: %#v", skips[1].Suitable)
	}
}
