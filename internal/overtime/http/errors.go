package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/httpx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// writeServiceError maps service errors onto the response envelope. Known
// errors keep their user-facing message; anything else becomes a generic 500
// and is logged with request context.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var notFound *service.TargetUserNotFoundError

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrMFARequired):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &notFound):
		httpx.WriteError(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMissingTarget),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidTOTPCode),
		errors.Is(err, service.ErrMFANotEnrolled),
		errors.Is(err, service.ErrMFAAlreadyActive):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
