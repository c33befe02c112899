package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lzjever/project-audit/internal/core"
)

func TestStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("audit"),
		postgres.WithUsername("audit"),
		postgres.WithPassword("audit_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	pool, err := NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect: %s", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, Schema); err != nil {
		t.Fatalf("failed to create schema: %s", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO audit.project_properties (project_id, property_key, value) VALUES
			('10001', 'internal-audit', '{"users":[{"userId":"u1","userName":"Jane Doe"}]}'),
			('10002', 'internal-audit', NULL);
	`)
	if err != nil {
		t.Fatalf("failed to seed: %s", err)
	}

	props := NewPropertyStore(pool)

	t.Run("Ping", func(t *testing.T) {
		if err := props.Ping(ctx); err != nil {
			t.Fatalf("ping failed: %s", err)
		}
	})

	t.Run("ExistingProperty", func(t *testing.T) {
		prop, err := props.ProjectProperty(ctx, "10001", core.AuditPropertyKey)
		if err != nil {
			t.Fatalf("failed to get property: %s", err)
		}
		if prop.Key != core.AuditPropertyKey {
			t.Errorf("expected key %s, got %s", core.AuditPropertyKey, prop.Key)
		}
		if string(core.PayloadOrEmpty(prop.Value)) == string(core.EmptyPayload) {
			t.Errorf("expected stored value, got empty payload")
		}
	})

	t.Run("NullValue", func(t *testing.T) {
		prop, err := props.ProjectProperty(ctx, "10002", core.AuditPropertyKey)
		if err != nil {
			t.Fatalf("failed to get property: %s", err)
		}
		if got := string(core.PayloadOrEmpty(prop.Value)); got != string(core.EmptyPayload) {
			t.Errorf("expected empty payload, got %s", got)
		}
	})

	t.Run("MissingProperty", func(t *testing.T) {
		_, err := props.ProjectProperty(ctx, "99999", core.AuditPropertyKey)
		var upErr *core.UpstreamError
		if !errors.As(err, &upErr) {
			t.Fatalf("expected upstream error, got %v", err)
		}
		if upErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", upErr.StatusCode)
		}
	})
}
