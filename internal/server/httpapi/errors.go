package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/crewbase/crewbase/internal/common"
)

// writeServiceError maps a service error onto an HTTP status and a stable
// error code. Credential failures and unknown users collapse into one
// response so the surface does not reveal which part failed.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var exists *common.AlreadyExistsError
	switch {
	case errors.As(err, &exists):
		code := "error.alreadyExists"
		switch exists.Field {
		case "account id", "email":
			code = "error.userAlreadyExists"
		case "team name":
			code = "error.teamAlreadyExists"
		}
		writeError(w, http.StatusConflict, code, exists.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "error.alreadyExists", "already exists")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "error.notFound", "not found")
	case errors.Is(err, common.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "error.invalidArgument", err.Error())
	case errors.Is(err, common.ErrInvalidParameters):
		writeError(w, http.StatusBadRequest, "error.invalidParameters", err.Error())
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
	case errors.Is(err, common.ErrOperationFailed):
		writeError(w, http.StatusBadGateway, "error.operationFailed", "operation could not be applied")
	default:
		h.logger.Error(ctx, "unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "error.internal", "internal error")
	}
}
