package common

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// DecodeJSON reads a size-limited JSON body into dst. It writes a 400 and returns false on failure.
func DecodeJSON(logger *zap.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody)).Decode(dst); err != nil {
		WriteJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: "リクエストの形式が不正です", Kind: domain.ErrKindInvalidInput})
		return false
	}
	return true
}

// RequireActor returns the request actor or writes a 401.
func RequireActor(logger *zap.Logger, w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		WriteUnauthorized(logger, w, "認証が必要です")
		return nil, false
	}
	return actor, true
}
