package core

import (
	"context"
	"encoding/json"
	"strings"
)

// Property is a project-scoped key/value record owned by the host platform.
type Property struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value,omitempty"`
}

// PropertySource reads project properties. Implementations are read-only.
type PropertySource interface {
	Name() string
	ProjectProperty(ctx context.Context, projectID, key string) (*Property, error)
}

// Pinger is implemented by sources that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProjectIDFromBaseURL takes the last path segment of a host base URL as the
// project identifier. It returns "" when nothing usable is left.
func ProjectIDFromBaseURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	i := strings.LastIndex(baseURL, "/")
	return baseURL[i+1:]
}
