package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/slogx"
)

// ExportHandler streams one user's entries as a CSV statement.
type ExportHandler struct {
	EntryService *service.EntryService
}

// ServeHTTP handles GET /v1/entries/export
//
//	@Summary		Export entries as CSV
//	@Description	Downloads one user's entries as a CSV file with columns Data, Inicio, Fim, Total, Descricao.
//	@Description	Admins may pass username to export another account.
//	@Tags			Entries
//	@Security		BearerAuth
//	@Produce		text/csv
//	@Param			username	query		string	false	"Target username (admin only)"
//	@Success		200			{string}	string	"CSV content"
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		403			{object}	httpx.Envelope
//	@Failure		404			{object}	httpx.Envelope	"Target user not found"
//	@Router			/v1/entries/export [get].
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	target, err := resolveListTarget(sess, r.URL.Query().Get("username"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	list, err := h.EntryService.ListAndAggregate(ctx, target)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("extrato_horas_%s_%s.csv", target, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Data", "Inicio", "Fim", "Total", "Descricao"})
	for _, e := range list.Entries {
		_ = cw.Write([]string{
			e.Date.Format("02/01/2006"),
			e.StartAt.Format("15:04"),
			e.EndAt.Format("15:04"),
			domain.FormatDuration(e.Duration()),
			e.Description,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slogx.FromContext(ctx).Error("csv export write failed", "username", target, "err", err)
	}
}
