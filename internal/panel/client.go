package panel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/jira"
)

// DataSource returns the audit users of a project.
type DataSource interface {
	FetchUsers(ctx context.Context, projectID string) ([]core.AuditRecord, error)
}

// ContextResolver finds the project the panel is showing.
type ContextResolver interface {
	ResolveProjectID(ctx context.Context) (string, error)
}

// APIClient calls the provider route of an audit-api instance.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, hc *http.Client) *APIClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// FetchUsers reads the users list regardless of the response status; an
// error envelope simply has no users.
func (c *APIClient) FetchUsers(ctx context.Context, projectID string) ([]core.AuditRecord, error) {
	endpoint := c.baseURL + "/get-audit-data?projectId=" + url.QueryEscape(projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload core.AuditPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode audit data: %w", err)
	}
	return payload.Users, nil
}

// RawSource adapts any JSON returning provider call, such as the gRPC
// client, to DataSource.
type RawSource func(ctx context.Context, projectID string) (json.RawMessage, error)

func (f RawSource) FetchUsers(ctx context.Context, projectID string) ([]core.AuditRecord, error) {
	raw, err := f(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var payload core.AuditPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode audit data: %w", err)
	}
	return payload.Users, nil
}

// ErrNoBaseURL is returned when server metadata has no usable base URL.
var ErrNoBaseURL = errors.New("server info has no usable baseUrl")

// ServerInfoFetcher is satisfied by *jira.Client.
type ServerInfoFetcher interface {
	ServerInfo(ctx context.Context) (*jira.ServerInfo, error)
}

// ServerInfoResolver takes the project id from the last path segment of the
// host's base URL. The host does not document that the segment is a project
// id; StaticResolver is the reliable alternative.
type ServerInfoResolver struct {
	Host ServerInfoFetcher
}

func (r ServerInfoResolver) ResolveProjectID(ctx context.Context) (string, error) {
	info, err := r.Host.ServerInfo(ctx)
	if err != nil {
		return "", err
	}
	id := core.ProjectIDFromBaseURL(info.BaseURL)
	if id == "" {
		return "", ErrNoBaseURL
	}
	return id, nil
}

// StaticResolver always resolves to a fixed project id.
type StaticResolver string

func (r StaticResolver) ResolveProjectID(context.Context) (string, error) {
	return string(r), nil
}
