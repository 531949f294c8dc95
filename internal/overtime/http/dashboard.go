package http

import (
	"net/http"

	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/httpx"
)

// DashboardHandler serves per-user aggregate rows.
type DashboardHandler struct {
	DashboardService *service.DashboardService
}

// ServeHTTP handles GET /v1/dashboard
//
//	@Summary		Dashboard overview
//	@Description	Returns per-user entry counts and aggregate durations. Admins see every visible user; everyone else sees only themselves.
//	@Tags			Dashboard
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=[]service.OverviewRow}
//	@Failure		401	{object}	httpx.Envelope
//	@Router			/v1/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.DashboardService.Overview(ctx, sessionFrom(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "ok", rows)
}
