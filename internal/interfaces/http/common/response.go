package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn("JSON エンコードに失敗", zap.Error(err))
	}
}

// StatusForError maps a domain error kind to an HTTP status.
func StatusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrKindForbidden:
		return http.StatusForbidden
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindInvalidFilter, domain.ErrKindInvalidInput:
		return http.StatusBadRequest
	case domain.ErrKindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an ErrorResponse. Server-side failures are logged and their detail hidden.
func WriteError(logger *zap.Logger, w http.ResponseWriter, err error) {
	status := StatusForError(err)
	kind := domain.KindOf(err)
	message := err.Error()

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	if status >= http.StatusInternalServerError {
		if logger != nil {
			fields := []zap.Field{zap.Error(err), zap.String("kind", string(kind))}
			if domainErr != nil && len(domainErr.Stack) > 0 {
				fields = append(fields, zap.ByteString("stack", domainErr.Stack))
			}
			logger.Error("request failed", fields...)
		}
		if kind == "" {
			message = "internal server error"
		}
	}
	WriteJSON(logger, w, status, ErrorResponse{Error: message, Kind: kind})
}

// WriteUnauthorized writes a 401 with the given message.
func WriteUnauthorized(logger *zap.Logger, w http.ResponseWriter, message string) {
	WriteJSON(logger, w, http.StatusUnauthorized, ErrorResponse{Error: message})
}
