package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lzjever/project-audit/internal/core"
)

const SourceName = "postgres"

// Schema creates the mirror table. The mirror is written by whatever process
// copies properties out of the host platform; this package only reads it.
const Schema = `
CREATE SCHEMA IF NOT EXISTS audit;
CREATE TABLE IF NOT EXISTS audit.project_properties (
	project_id   TEXT NOT NULL,
	property_key TEXT NOT NULL,
	value        JSONB,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (project_id, property_key)
);
`

const getProjectProperty = `
SELECT property_key, value
FROM audit.project_properties
WHERE project_id = $1 AND property_key = $2
`

// PropertyStore serves project properties from a Postgres mirror.
type PropertyStore struct {
	pool *pgxpool.Pool
}

func NewPropertyStore(pool *pgxpool.Pool) *PropertyStore {
	return &PropertyStore{pool: pool}
}

func (s *PropertyStore) Name() string { return SourceName }

// ProjectProperty returns the mirrored property. A missing row is reported
// as a 404 upstream error, matching what the host platform answers.
func (s *PropertyStore) ProjectProperty(ctx context.Context, projectID, key string) (*core.Property, error) {
	var (
		prop  core.Property
		value []byte
	)
	err := s.pool.QueryRow(ctx, getProjectProperty, projectID, key).Scan(&prop.Key, &value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &core.UpstreamError{
			Source:     SourceName,
			StatusCode: http.StatusNotFound,
			Body:       fmt.Sprintf("property %q not found for project %q", key, projectID),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("query project property: %w", err)
	}
	prop.Value = value
	return &prop, nil
}

func (s *PropertyStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
