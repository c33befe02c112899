package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/api/middleware"
	"github.com/lzjever/project-audit/internal/audit"
	"github.com/lzjever/project-audit/internal/jira"
)

// newStack wires the real service and Jira client against a fake Jira site.
func newStack(t *testing.T, jiraHandler http.HandlerFunc) http.Handler {
	t.Helper()
	site := httptest.NewServer(jiraHandler)
	t.Cleanup(site.Close)

	svc := audit.NewService(jira.New(site.URL, "bot@example.com", "token"), "", zap.NewNop())
	return NewAPI(svc, zap.NewNop()).Router()
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetAuditData_MissingProjectID(t *testing.T) {
	calls := 0
	h := newStack(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	for _, target := range []string{"/get-audit-data", "/get-audit-data?projectId="} {
		w := get(h, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, `{"error":"Project ID is missing"}`, w.Body.String())
	}
	assert.Zero(t, calls, "upstream must not be called")
}

func TestGetAuditData_IgnoresRequestBody(t *testing.T) {
	h := newStack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":"internal-audit","value":{"users":[]}}`))
	})

	for _, target := range []string{"/get-audit-data", "/get-audit-data?projectId=10001"} {
		req := httptest.NewRequest(http.MethodGet, target, strings.NewReader("projectId=10001"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusUnsupportedMediaType, w.Code, target)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"), target)
	}
}

func TestGetAuditData_UpstreamFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			h := newStack(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(`{"errorMessages":["secret upstream detail"]}`))
			})

			w := get(h, "/get-audit-data?projectId=10001")
			assert.Equal(t, status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, `{"error":"Failed to fetch project audit data"}`, w.Body.String())
		})
	}
}

func TestGetAuditData_Success(t *testing.T) {
	var gotPath string
	h := newStack(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"key":"internal-audit","value":{"users":[{"userId":"u1","userName":"Jane Doe","email":null}]}}`))
	})

	w := get(h, "/get-audit-data?projectId=10001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/rest/api/3/project/10001/properties/internal-audit", gotPath)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"users":[{"userId":"u1","userName":"Jane Doe","email":null}]}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestGetAuditData_NoValue(t *testing.T) {
	h := newStack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":"internal-audit"}`))
	})

	w := get(h, "/get-audit-data?projectId=10001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"users":[]}`, w.Body.String())
}

func TestGetAuditData_UnreachableUpstream(t *testing.T) {
	site := httptest.NewServer(http.NotFoundHandler())
	site.Close()

	svc := audit.NewService(jira.New(site.URL, "", ""), "", zap.NewNop())
	w := get(NewAPI(svc, zap.NewNop()).Router(), "/get-audit-data?projectId=10001")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, `{"error":"Failed to fetch project audit data"}`, w.Body.String())
}

func TestRecoverer(t *testing.T) {
	h := middleware.Recoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := get(h, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
