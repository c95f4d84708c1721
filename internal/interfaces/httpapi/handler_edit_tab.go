package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

// editTabRoutes serves the edit-buffer actions shared by every flat admin
// tab. Listing stays with each tab since the filters differ.
type editTabRoutes[T editbuffer.Record[T], P editbuffer.Patch[T]] struct {
	name   string
	tab    *usecase.EditTab[T, P]
	logger *logging.Logger
}

func newEditTabRoutes[T editbuffer.Record[T], P editbuffer.Patch[T]](name string, tab *usecase.EditTab[T, P], logger *logging.Logger) *editTabRoutes[T, P] {
	return &editTabRoutes[T, P]{name: name, tab: tab, logger: logger}
}

// register mounts the shared actions below prefix, each wrapped by guard.
func (e *editTabRoutes[T, P]) register(mux *http.ServeMux, prefix string, guard func(http.Handler) http.Handler) {
	prefix = strings.TrimRight(prefix, "/")
	mux.Handle("POST "+prefix+"/reload", guard(http.HandlerFunc(e.Reload)))
	mux.Handle("POST "+prefix+"/drafts", guard(http.HandlerFunc(e.AddNew)))
	mux.Handle("POST "+prefix+"/{id}/edit", guard(http.HandlerFunc(e.BeginEdit)))
	mux.Handle("PATCH "+prefix+"/{id}", guard(http.HandlerFunc(e.Change)))
	mux.Handle("POST "+prefix+"/{id}/save", guard(http.HandlerFunc(e.Save)))
	mux.Handle("POST "+prefix+"/{id}/cancel", guard(http.HandlerFunc(e.Cancel)))
	mux.Handle("DELETE "+prefix+"/{id}", guard(http.HandlerFunc(e.Delete)))
}

func (e *editTabRoutes[T, P]) Reload(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadTab")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	rows, err := e.tab.Reload(ctx, admin)
	if err != nil {
		e.logger.WarnContext(ctx, "reload tab failed", "tab", e.name, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (e *editTabRoutes[T, P]) AddNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraft")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	row, err := e.tab.AddNew(ctx, admin)
	if err != nil {
		e.logger.WarnContext(ctx, "add draft failed", "tab", e.name, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, row)
}

func (e *editTabRoutes[T, P]) BeginEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginEdit")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	row, err := e.tab.BeginEdit(ctx, admin, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (e *editTabRoutes[T, P]) Change(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeField")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	var patch P
	if err := decodeJSON(r, &patch); err != nil {
		writeError(ctx, w, err)
		return
	}
	row, err := e.tab.Change(ctx, admin, r.PathValue("id"), patch)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, row)
}

func (e *editTabRoutes[T, P]) Save(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRow")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	saved, err := e.tab.Save(ctx, admin, id)
	if err != nil {
		e.logger.WarnContext(ctx, "save row failed", "tab", e.name, "record_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, saved)
}

func (e *editTabRoutes[T, P]) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelEdit")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}
	if err := e.tab.Cancel(ctx, admin, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *editTabRoutes[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRow")
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
	if err := e.tab.Delete(ctx, admin, id, confirmed); err != nil {
		e.logger.WarnContext(ctx, "delete row failed", "tab", e.name, "record_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, deletedDTO{ID: id, Deleted: true})
}
