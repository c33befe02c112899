package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lzjever/project-audit/internal/core"
)

const SourceName = "jira"

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 4 << 10

// Client reads project properties and server metadata from the Jira REST API v3.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	http     *http.Client
	tracer   trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the site at baseURL. With an email the token is
// sent as Basic auth, otherwise as a Bearer token. Empty credentials send no
// Authorization header.
func New(baseURL, email, apiToken string, opts ...Option) *Client {
	if baseURL != "" && !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		apiToken: apiToken,
		http:     &http.Client{},
		tracer:   otel.Tracer("github.com/lzjever/project-audit/internal/jira"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return SourceName }

// ServerInfo is the subset of /rest/api/3/serverInfo the panel uses.
type ServerInfo struct {
	BaseURL        string `json:"baseUrl"`
	Version        string `json:"version"`
	DeploymentType string `json:"deploymentType"`
	ServerTitle    string `json:"serverTitle"`
}

// ProjectProperty fetches /rest/api/3/project/{projectID}/properties/{key}.
// A non-2xx answer is returned as *core.UpstreamError.
func (c *Client) ProjectProperty(ctx context.Context, projectID, key string) (*core.Property, error) {
	path := fmt.Sprintf("project/%s/properties/%s", url.PathEscape(projectID), url.PathEscape(key))

	var prop core.Property
	if err := c.get(ctx, "jira.project_property", path, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

// ServerInfo fetches /rest/api/3/serverInfo.
func (c *Client) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.get(ctx, "jira.server_info", "serverInfo", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Ping reports whether the site answers server metadata requests.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ServerInfo(ctx)
	return err
}

func (c *Client) get(ctx context.Context, spanName, path string, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint := fmt.Sprintf("%s/rest/api/3/%s", c.baseURL, path)
	span.SetAttributes(attribute.String("http.url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("jira request: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, resp.Status)
		return &core.UpstreamError{Source: SourceName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode response")
		return fmt.Errorf("decode jira response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.apiToken == "":
	case c.email != "":
		req.SetBasicAuth(c.email, c.apiToken)
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}
