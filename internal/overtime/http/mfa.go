package http

import (
	"net/http"

	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/httpx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// MFAHandler handles TOTP enrollment and lifecycle.
type MFAHandler struct {
	MFAService *service.MFAService
}

// TOTPCodeRequest carries a six-digit TOTP code.
type TOTPCodeRequest struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}

// EnrollResponse is returned from enrollment so the client can render a QR
// code. The secret is shown once.
type EnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// HandleEnroll handles POST /v1/mfa/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the authenticated user. MFA activates only after the first valid code is confirmed.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=EnrollResponse}
//	@Failure		400	{object}	httpx.Envelope	"MFA already active"
//	@Failure		401	{object}	httpx.Envelope
//	@Router			/v1/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	enrollment, err := h.MFAService.EnrollTOTP(ctx, sess)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "scan the code and confirm to activate", EnrollResponse{
		Secret: enrollment.Secret,
		URL:    enrollment.URL,
	})
}

// HandleActivate handles POST /v1/mfa/activate
//
//	@Summary		Activate TOTP MFA
//	@Description	Verifies the first TOTP code against the pending secret and activates MFA.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TOTPCodeRequest	true	"TOTP code"
//	@Success		200		{object}	httpx.Envelope
//	@Failure		400		{object}	httpx.Envelope	"Invalid code or not enrolled"
//	@Failure		401		{object}	httpx.Envelope
//	@Router			/v1/mfa/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	var req TOTPCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "a six-digit code is required")
		return
	}

	if err := h.MFAService.ActivateTOTP(ctx, sess, req.Code); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	slogx.FromContext(ctx).Info("mfa activated", "user_id", sess.UserID)
	httpx.WriteSuccess(w, http.StatusOK, "mfa activated", nil)
}

// HandleDisable handles POST /v1/mfa/disable
//
//	@Summary		Disable TOTP MFA
//	@Description	Disables MFA after verifying a current TOTP code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TOTPCodeRequest	true	"TOTP code"
//	@Success		200		{object}	httpx.Envelope
//	@Failure		400		{object}	httpx.Envelope	"Invalid code or not active"
//	@Failure		401		{object}	httpx.Envelope
//	@Router			/v1/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	var req TOTPCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "a six-digit code is required")
		return
	}

	if err := h.MFAService.DisableTOTP(ctx, sess, req.Code); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	slogx.FromContext(ctx).Info("mfa disabled", "user_id", sess.UserID)
	httpx.WriteSuccess(w, http.StatusOK, "mfa disabled", nil)
}
