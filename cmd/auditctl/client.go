package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/rpc"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: http.DefaultClient}
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return parseResponse(resp, out)
}

// AuditData fetches the raw audit payload of a project.
func (c *Client) AuditData(ctx context.Context, projectID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, "/get-audit-data?projectId="+url.QueryEscape(projectID), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func parseResponse(resp *http.Response, out interface{}) error {
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(b, &errResp)
		if errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%d: %s", resp.StatusCode, errResp.Error)
	}
	if out != nil {
		return json.Unmarshal(b, out)
	}
	return nil
}

// provider returns the raw audit data call used by get. Unlike the panel it
// reports error envelopes as errors.
func provider() (func(context.Context, string) (json.RawMessage, error), func(), error) {
	if grpcAddr != "" {
		c, err := rpc.NewClient(grpcAddr)
		if err != nil {
			return nil, nil, err
		}
		return c.GetAuditData, func() { c.Close() }, nil
	}
	return NewClient(apiURL).AuditData, func() {}, nil
}

func decodePayload(raw json.RawMessage) (core.AuditPayload, error) {
	var payload core.AuditPayload
	if err := json.Unmarshal(core.PayloadOrEmpty(raw), &payload); err != nil {
		return payload, fmt.Errorf("decode audit data: %w", err)
	}
	if payload.Users == nil {
		payload.Users = []core.AuditRecord{}
	}
	return payload, nil
}
