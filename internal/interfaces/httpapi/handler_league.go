package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
)

type selectChildRequest struct {
	ID string `json:"id"`
}

func (h *Handler) GetLeagueTree(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTree")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	tree, err := h.leagueService.Tree(ctx, admin)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tree)
}

func (h *Handler) ReloadLeagueTree(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadLeagueTree")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	tree, err := h.leagueService.ReloadTree(ctx, admin)
	if err != nil {
		h.logger.WarnContext(ctx, "reload league tree failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tree)
}

func (h *Handler) AddDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDivision")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	row, err := h.leagueService.AddDivision(ctx, admin, r.PathValue("settingID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, row)
}

// SelectDivision marks the division shown under a setting. An empty id
// clears the selection.
func (h *Handler) SelectDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectDivision")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	var req selectChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.leagueService.SelectDivision(ctx, admin, r.PathValue("settingID"), req.ID); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ChangeDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeDivision")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	var patch league.DivisionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(ctx, w, err)
		return
	}
	row, err := h.leagueService.ChangeDivision(ctx, admin, r.PathValue("id"), patch)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (h *Handler) SaveDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveDivision")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	saved, err := h.leagueService.SaveDivision(ctx, admin, id)
	if err != nil {
		h.logger.WarnContext(ctx, "save division failed", "record_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, saved)
}

func (h *Handler) CancelDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelDivision")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	if err := h.leagueService.CancelDivision(ctx, admin, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDivision")
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
	if err := h.leagueService.DeleteDivision(ctx, admin, id, confirmed); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, deletedDTO{ID: id, Deleted: true})
}

func (h *Handler) AddFlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFlight")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	row, err := h.leagueService.AddFlight(ctx, admin, r.PathValue("divisionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, row)
}

func (h *Handler) SelectFlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectFlight")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	var req selectChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.leagueService.SelectFlight(ctx, admin, r.PathValue("divisionID"), req.ID); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ChangeFlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeFlight")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	var patch league.FlightPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(ctx, w, err)
		return
	}
	row, err := h.leagueService.ChangeFlight(ctx, admin, r.PathValue("id"), patch)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (h *Handler) SaveFlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveFlight")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	saved, err := h.leagueService.SaveFlight(ctx, admin, id)
	if err != nil {
		h.logger.WarnContext(ctx, "save flight failed", "record_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, saved)
}

func (h *Handler) CancelFlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelFlight")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	if err := h.leagueService.CancelFlight(ctx, admin, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFlight")
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
	if err := h.leagueService.DeleteFlight(ctx, admin, id, confirmed); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, deletedDTO{ID: id, Deleted: true})
}
