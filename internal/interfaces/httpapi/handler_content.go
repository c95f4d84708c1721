package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

// ListAnnouncementRows returns the announcements tab with drafts and edit state.
func (h *Handler) ListAnnouncementRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnnouncementRows")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	rows, err := h.announcementService.Rows(ctx, admin)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) ToggleAnnouncementPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleAnnouncementPage")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	row, err := h.announcementService.TogglePage(ctx, admin, r.PathValue("id"), r.PathValue("page"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (h *Handler) PreviewAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewAnnouncement")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	preview, err := h.announcementService.Preview(ctx, admin, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, preview)
}

// ListAnnouncements is the public feed for one site page.
func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnnouncements")
	defer span.End()

	items, err := h.feedService.ListForPage(ctx, r.URL.Query().Get("page"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListEventRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventRows")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	showPast, err := queryBool(r, "show_past")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rows, err := h.eventService.List(ctx, admin, usecase.EventQuery{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		ShowPast: showPast,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rows)
}

// ListEventLocations feeds the location picker of the events tab.
func (h *Handler) ListEventLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventLocations")
	defer span.End()

	choices, err := h.eventService.LocationChoices(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, choices)
}

func (h *Handler) ListLocationRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLocationRows")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	rows, err := h.locationService.List(ctx, admin, strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rows)
}
