package api

import (
	"encoding/json"
	"net/http"

	"github.com/lzjever/project-audit/internal/core"
)

// ErrorResponse is the error envelope of the audit route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes the error envelope with the error's HTTP status.
func WriteError(w http.ResponseWriter, err *core.AppError) {
	WriteJSON(w, err.HTTPStatus(), ErrorResponse{Error: err.Message})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"internal server error"}`)
	}
	WriteRawJSON(w, status, b)
}

// WriteRawJSON writes already encoded JSON as is.
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
