// internal/app/features/errors/errors.go

// Package errors writes JSON error responses for the API handlers and
// logs server-side failures with request context.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"go.uber.org/zap"
)

// Response is the body of every API error.
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorLogger logs handler failures and answers the client.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err with the request path and writes a JSON error
// whose status follows the error kind: 404 for a missing document, 400 for
// a missing id, 503 when the store is unavailable, 500 otherwise. userMsg
// is what the client sees.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	status := StatusFor(err)
	e.Log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	Write(w, status, http.StatusText(status), userMsg)
}

// StatusFor maps an orchestrator or store error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case stderrors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, content.ErrMissingID):
		return http.StatusBadRequest
	case stderrors.Is(err, docstore.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Write writes a JSON error body with status.
func Write(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: code, Message: message})
}

// BadRequest writes a 400 with message.
func BadRequest(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, "bad_request", message)
}

// NotFound writes a 404 with message.
func NotFound(w http.ResponseWriter, message string) {
	Write(w, http.StatusNotFound, "not_found", message)
}
