package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

type contactCheckRequest struct {
	Phone string `json:"phone_number"`
	Email string `json:"email"`
}

func (h *Handler) ListOpenSignups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpenSignups")
	defer span.End()

	leagues, err := h.signupService.ListOpen(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagues)
}

func (h *Handler) GetSignupForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSignupForm")
	defer span.End()

	form, err := h.signupService.Form(ctx, r.PathValue("settingID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, form)
}

func (h *Handler) QuoteSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuoteSignup")
	defer span.End()

	var input usecase.QuoteInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(ctx, w, err)
		return
	}
	quote, err := h.signupService.Quote(ctx, r.PathValue("settingID"), input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, quote)
}

// SubmitSignup stores a signup and returns where to pay.
func (h *Handler) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSignup")
	defer span.End()

	var form signup.Form
	if err := decodeJSON(r, &form); err != nil {
		writeError(ctx, w, err)
		return
	}
	settingID := r.PathValue("settingID")
	result, err := h.signupService.Submit(ctx, settingID, form)
	if err != nil {
		h.logger.WarnContext(ctx, "signup rejected", "setting_id", settingID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, result)
}

func (h *Handler) CheckSignupContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckSignupContact")
	defer span.End()

	var req contactCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.signupService.CheckContact(req.Phone, req.Email))
}
