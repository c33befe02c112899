package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/panel"
)

func TestClient_AuditData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-audit-data", r.URL.Path)
		assert.Equal(t, "PROJ 1", r.URL.Query().Get("projectId"))
		w.Write([]byte(`{"users":[{"userId":"u1","userName":"Jane Doe"}]}`))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL+"/").AuditData(context.Background(), "PROJ 1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[{"userId":"u1","userName":"Jane Doe"}]}`, string(raw))
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Failed to fetch project audit data"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AuditData(context.Background(), "P")
	require.Error(t, err)
	assert.Equal(t, "404: Failed to fetch project audit data", err.Error())
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AuditData(context.Background(), "P")
	require.Error(t, err)
	assert.Equal(t, "502: Bad Gateway", err.Error())
}

func TestDecodePayload(t *testing.T) {
	for _, raw := range []string{`null`, `false`, `{}`, `{"users":null}`} {
		p, err := decodePayload(json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.NotNil(t, p.Users, raw)
		assert.Empty(t, p.Users, raw)
	}

	p, err := decodePayload(json.RawMessage(`{"users":[{"userId":"u1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []core.AuditRecord{{UserID: "u1"}}, p.Users)

	_, err = decodePayload(json.RawMessage(`{"users":"nope"}`))
	assert.Error(t, err)
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	printRows(&buf, panel.BuildRows([]core.AuditRecord{
		{UserID: "u1", UserName: "Jane Doe", Email: "jane@example.com", Groups: "admins", SapID: "S1"},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"AVATAR", "USER", "NAME", "EMAIL", "GROUPS", "SAP", "ID", "ALT", "ID"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"JD", "Jane", "Doe", "jane@example.com", "admins", "S1", "Not", "Set"}, strings.Fields(lines[1]))
}

func TestPrintRows_Empty(t *testing.T) {
	var buf bytes.Buffer
	printRows(&buf, nil)
	assert.Equal(t, "No users found.\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestQueryValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/query", r.URL.Path)
		if r.URL.Query().Get("query") == "audit_active_requests" {
			w.Write([]byte(`{"status":"success","data":{"result":[{"metric":{},"value":[1700000000,"3"]}]}}`))
			return
		}
		w.Write([]byte(`{"status":"success","data":{"result":[]}}`))
	}))
	defer srv.Close()

	assert.Equal(t, "3", queryValue(context.Background(), srv.URL, "audit_active_requests"))
	assert.Equal(t, "no data", queryValue(context.Background(), srv.URL, `sum(rate(audit_rpc_requests_total[5m]))`))
}

func TestDataSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("projectId") == "MISSING" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Failed to fetch project audit data"}`))
			return
		}
		w.Write([]byte(`{"users":[{"userId":"u1","sapId":12345}]}`))
	}))
	defer srv.Close()

	defer func(url, addr string) { apiURL, grpcAddr = url, addr }(apiURL, grpcAddr)
	apiURL, grpcAddr = srv.URL, ""

	data, closeFn, err := dataSource()
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &panel.APIClient{}, data)

	users, err := data.FetchUsers(context.Background(), "PROJ")
	require.NoError(t, err)
	assert.Equal(t, []core.AuditRecord{{UserID: "u1", SapID: "12345"}}, users)

	users, err = data.FetchUsers(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDataSource_GRPC(t *testing.T) {
	defer func(addr string) { grpcAddr = addr }(grpcAddr)
	grpcAddr = "localhost:7070"

	data, closeFn, err := dataSource()
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, panel.RawSource(nil), data)
}

func TestContextResolver(t *testing.T) {
	defer func() { projectID, jiraURL = "", "" }()

	projectID, jiraURL = "", ""
	_, err := contextResolver()
	assert.Error(t, err)

	projectID = "PROJ"
	r, err := contextResolver()
	require.NoError(t, err)
	assert.Equal(t, panel.StaticResolver("PROJ"), r)

	projectID, jiraURL = "", "https://example.atlassian.net"
	r, err = contextResolver()
	require.NoError(t, err)
	assert.IsType(t, panel.ServerInfoResolver{}, r)
}
