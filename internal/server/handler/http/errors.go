package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/atinyakov/WorkoutTracker/internal/common"
	"github.com/atinyakov/WorkoutTracker/internal/server/respond"
	"go.uber.org/zap"
)

// writeError maps service errors onto HTTP status codes and JSON bodies.
// Unrecognised errors are logged and reported as 500 without details.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{
			Error:       verr.Message,
			EmptyFields: verr.Fields,
		})
	case errors.Is(err, common.ErrUnauthorized):
		respond.Error(w, http.StatusUnauthorized, "incorrect email or password")
	case errors.Is(err, common.ErrInvalidToken):
		respond.Error(w, http.StatusUnauthorized, "request is not authorized")
	case errors.Is(err, common.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "no such workout")
	case errors.Is(err, common.ErrConflict):
		respond.Error(w, http.StatusConflict, "email already in use")
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody decodes the JSON request body into v. On failure it writes
// 413 when the body hit the size limit, 400 otherwise, and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Error(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds the %d byte limit", tooLarge.Limit))
		return false
	}
	respond.Error(w, http.StatusBadRequest, "invalid request body")
	return false
}
