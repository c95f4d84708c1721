package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

const (
	headerExportRows    = "X-Export-Rows"
	headerExportArchive = "X-Export-Archive-Key"
)

func reviewQuery(r *http.Request) (usecase.ReviewQuery, error) {
	unconfirmed, err := queryBool(r, "unconfirmed")
	if err != nil {
		return usecase.ReviewQuery{}, err
	}
	return usecase.ReviewQuery{
		SettingID:       r.PathValue("settingID"),
		Search:          strings.TrimSpace(r.URL.Query().Get("search")),
		OnlyUnconfirmed: unconfirmed,
	}, nil
}

// ListReviewSettings lists the leagues an admin can review signups for.
func (h *Handler) ListReviewSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReviewSettings")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	settings, err := h.reviewService.Settings(ctx, admin)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, settings)
}

func (h *Handler) ListSignups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSignups")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	query, err := reviewQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.reviewService.List(ctx, admin, query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) ReloadSignups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadSignups")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	query, err := reviewQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.reviewService.Reload(ctx, admin, query)
	if err != nil {
		h.logger.WarnContext(ctx, "reload signups failed", "setting_id", query.SettingID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, page)
}

// ToggleSignupPaid flips the paid flag. The row shows the new value at
// once and reverts when the store rejects the write.
func (h *Handler) ToggleSignupPaid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSignupPaid")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	settingID, id := r.PathValue("settingID"), r.PathValue("id")
	row, err := h.reviewService.TogglePaid(ctx, admin, settingID, id)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle signup paid failed", "setting_id", settingID, "signup_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (h *Handler) ToggleSignupExpanded(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSignupExpanded")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	row, err := h.reviewService.ToggleExpanded(ctx, admin, r.PathValue("settingID"), r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (h *Handler) DeleteSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSignup")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	confirmed, err := queryBool(r, "confirm")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	id := r.PathValue("id")
	if err := h.reviewService.Delete(ctx, admin, r.PathValue("settingID"), id, confirmed); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, deletedDTO{ID: id, Deleted: true})
}

// ExportSignups downloads the visible rows as CSV.
func (h *Handler) ExportSignups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportSignups")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	query, err := reviewQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	export, err := h.reviewService.Export(ctx, admin, query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(headerExportRows, strconv.Itoa(export.Rows))
	if export.ArchiveKey != "" {
		w.Header().Set(headerExportArchive, export.ArchiveKey)
	}
	h.logger.InfoContext(ctx, "signups exported", "setting_id", query.SettingID, "rows", export.Rows, "admin_id", admin.ID)
	writeCSV(ctx, w, export.Filename, export.Body)
}
