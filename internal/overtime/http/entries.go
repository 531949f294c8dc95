package http

import (
	"net/http"
	"strings"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/httpx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// EntriesHandler handles overtime entry creation, listing and deletion.
type EntriesHandler struct {
	EntryService *service.EntryService
}

// CreateEntryRequest is the caller-supplied form of a new entry. Username,
// when set, submits on behalf of another account (admin only).
type CreateEntryRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	Description string `json:"description,omitempty"`
	Username    string `json:"username,omitempty"`
}

// EntryResponse is the public shape of one entry.
type EntryResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

func newEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Date:        e.Date.Format("2006-01-02"),
		StartTime:   e.StartAt.Format("15:04"),
		EndTime:     e.EndAt.Format("15:04"),
		Description: e.Description,
		Duration:    domain.FormatDuration(e.Duration()),
	}
}

// EntryListResponse carries one owner's entries plus both renderings of the
// aggregate duration.
type EntryListResponse struct {
	Username   string          `json:"username"`
	Entries    []EntryResponse `json:"entries"`
	Count      int             `json:"count"`
	TotalHours string          `json:"total_hours"`
	TotalLabel string          `json:"total_label"`
}

// HandleCreate handles POST /v1/entries
//
//	@Summary		Record an overtime entry
//	@Description	Validates and persists one overtime entry. Admins may set username to record on behalf of another account.
//	@Tags			Entries
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateEntryRequest	true	"Entry"
//	@Success		201		{object}	httpx.Envelope{data=EntryResponse}
//	@Failure		400		{object}	httpx.Envelope	"Malformed input or end not after start"
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		403		{object}	httpx.Envelope	"Cross-user submit without admin role"
//	@Failure		404		{object}	httpx.Envelope	"Target user not found"
//	@Router			/v1/entries [post].
func (h *EntriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	var req CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "date (YYYY-MM-DD), start_time and end_time (HH:MM) are required")
		return
	}

	entry, err := h.EntryService.Submit(ctx, sess, service.SubmitInput{
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Description:    req.Description,
		TargetUsername: req.Username,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	slogx.FromContext(ctx).Info("entry created",
		"entry_id", entry.ID, "owner_id", entry.UserID, "by", sess.Username)
	httpx.WriteSuccess(w, http.StatusCreated, "entry recorded", newEntryResponse(entry))
}

// HandleList handles GET /v1/entries
//
//	@Summary		List entries with aggregate
//	@Description	Lists one user's entries, newest date first, with total duration. Admins may pass username to list another account.
//	@Tags			Entries
//	@Security		BearerAuth
//	@Produce		json
//	@Param			username	query		string	false	"Target username (admin only)"
//	@Success		200			{object}	httpx.Envelope{data=EntryListResponse}
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		403			{object}	httpx.Envelope
//	@Failure		404			{object}	httpx.Envelope	"Target user not found"
//	@Router			/v1/entries [get].
func (h *EntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

	entries := make([]EntryResponse, 0, len(list.Entries))
	for _, e := range list.Entries {
		entries = append(entries, newEntryResponse(e))
	}

	httpx.WriteSuccess(w, http.StatusOK, "ok", EntryListResponse{
		Username:   target,
		Entries:    entries,
		Count:      len(entries),
		TotalHours: domain.Hours(list.Total),
		TotalLabel: domain.FormatDuration(list.Total),
	})
}

// HandleDelete handles DELETE /v1/entries/{id}
//
//	@Summary		Delete an entry
//	@Description	Permanently deletes one entry. Only the owner or an admin may delete it.
//	@Tags			Entries
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Entry id"
//	@Success		200	{object}	httpx.Envelope
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		403	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope	"Unknown entry id"
//	@Router			/v1/entries/{id} [delete].
func (h *EntriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	entryID := r.PathValue("id")
	if err := h.EntryService.Remove(ctx, sess, entryID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	slogx.FromContext(ctx).Info("entry deleted", "entry_id", entryID, "by", sess.Username)
	httpx.WriteSuccess(w, http.StatusOK, "entry deleted", nil)
}

// resolveListTarget applies the read-side authorization rule: a USER may only
// read their own entries, an ADMIN may read anyone's.
func resolveListTarget(sess domain.Session, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" || strings.EqualFold(requested, sess.Username) {
		return sess.Username, nil
	}
	if !sess.Role.IsAdmin() {
		return "", service.ErrForbidden
	}
	return requested, nil
}
