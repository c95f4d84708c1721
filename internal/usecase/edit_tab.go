package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
)

// RowView is a row as the admin screens render it: the effective record
// plus its edit state.
type RowView[T any] struct {
	Record  T               `json:"record"`
	Draft   bool            `json:"draft"`
	Editing bool            `json:"editing"`
	Saving  bool            `json:"saving"`
	Flags   map[string]bool `json:"flags,omitempty"`
}

func rowView[T editbuffer.Record[T]](ctrl *editbuffer.Controller[T], rec T, flags []string) RowView[T] {
	id := rec.RecordID()
	view := RowView[T]{
		Record:  rec,
		Draft:   idgen.IsDraft(id),
		Editing: ctrl.IsEditing(id),
		Saving:  ctrl.IsSaving(id),
	}
	for _, flag := range flags {
		if ctrl.Flag(id, flag) {
			if view.Flags == nil {
				view.Flags = make(map[string]bool, len(flags))
			}
			view.Flags[flag] = true
		}
	}
	return view
}

func rowViews[T editbuffer.Record[T]](ctrl *editbuffer.Controller[T], rows []T, flags []string) []RowView[T] {
	out := make([]RowView[T], 0, len(rows))
	for _, rec := range rows {
		out = append(out, rowView(ctrl, rec, flags))
	}
	return out
}

// EditTab exposes one flat admin screen backed by a workspace controller.
type EditTab[T editbuffer.Record[T], P editbuffer.Patch[T]] struct {
	name       string
	workspaces *WorkspaceManager
	controller func(*Workspace) *editbuffer.Controller[T]
	defaults   func(*Workspace) func(id string) T
	flags      []string

	afterSave   func(ws *Workspace, id string, saved T)
	afterCancel func(ws *Workspace, id string)
	afterDelete func(ctx context.Context, ws *Workspace, id string) error
}

func (t *EditTab[T, P]) open(ctx context.Context, admin user.AuthorizedUser) (*Workspace, *editbuffer.Controller[T], error) {
	ws, err := t.workspaces.Open(ctx, admin)
	if err != nil {
		return nil, nil, err
	}
	return ws, t.controller(ws), nil
}

func (t *EditTab[T, P]) Rows(ctx context.Context, admin user.AuthorizedUser) ([]RowView[T], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EditTab.Rows")
	defer span.End()

	_, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return nil, err
	}
	return rowViews(ctrl, ctrl.Rows(), t.flags), nil
}

// Reload refetches the persisted rows. Drafts and open edits of rows that
// still exist are kept.
func (t *EditTab[T, P]) Reload(ctx context.Context, admin user.AuthorizedUser) ([]RowView[T], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EditTab.Reload")
	defer span.End()

	_, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}
	return rowViews(ctrl, ctrl.Rows(), t.flags), nil
}

func (t *EditTab[T, P]) Row(ctx context.Context, admin user.AuthorizedUser, id string) (RowView[T], error) {
	_, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return RowView[T]{}, err
	}
	rec, ok := ctrl.Effective(strings.TrimSpace(id))
	if !ok {
		return RowView[T]{}, fmt.Errorf("%w: %s %s", editbuffer.ErrUnknownRecord, t.name, id)
	}
	return rowView(ctrl, rec, t.flags), nil
}

func (t *EditTab[T, P]) AddNew(ctx context.Context, admin user.AuthorizedUser) (RowView[T], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EditTab.AddNew")
	defer span.End()

	ws, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return RowView[T]{}, err
	}
	rec, err := ctrl.AddNew(t.defaults(ws))
	if err != nil {
		return RowView[T]{}, err
	}
	return rowView(ctrl, rec, t.flags), nil
}

func (t *EditTab[T, P]) BeginEdit(ctx context.Context, admin user.AuthorizedUser, id string) (RowView[T], error) {
	_, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return RowView[T]{}, err
	}
	rec, err := ctrl.BeginEdit(strings.TrimSpace(id))
	if err != nil {
		return RowView[T]{}, err
	}
	return rowView(ctrl, rec, t.flags), nil
}

func (t *EditTab[T, P]) Change(ctx context.Context, admin user.AuthorizedUser, id string, patch P) (RowView[T], error) {
	_, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return RowView[T]{}, err
	}
	rec, err := ctrl.ChangeField(strings.TrimSpace(id), patch)
	if err != nil {
		return RowView[T]{}, err
	}
	return rowView(ctrl, rec, t.flags), nil
}

// Save writes the buffered row through and returns the stored record.
func (t *EditTab[T, P]) Save(ctx context.Context, admin user.AuthorizedUser, id string) (T, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EditTab.Save")
	defer span.End()

	var zero T
	ws, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return zero, err
	}
	id = strings.TrimSpace(id)
	saved, err := ctrl.Save(ctx, id)
	if err != nil && saved.RecordID() == "" {
		return zero, err
	}
	if t.afterSave != nil {
		t.afterSave(ws, id, saved)
	}
	return saved, err
}

func (t *EditTab[T, P]) Cancel(ctx context.Context, admin user.AuthorizedUser, id string) error {
	ws, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := ctrl.Cancel(id); err != nil {
		return err
	}
	if t.afterCancel != nil {
		t.afterCancel(ws, id)
	}
	return nil
}

// Delete removes a persisted row. confirmed must be set by the caller
// after the user agreed to the deletion.
func (t *EditTab[T, P]) Delete(ctx context.Context, admin user.AuthorizedUser, id string, confirmed bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EditTab.Delete")
	defer span.End()

	ws, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := ctrl.Delete(ctx, id, confirmed); err != nil {
		return err
	}
	if t.afterDelete != nil {
		return t.afterDelete(ctx, ws, id)
	}
	return nil
}

func (t *EditTab[T, P]) ToggleFlag(ctx context.Context, admin user.AuthorizedUser, id, flag string) (RowView[T], error) {
	_, ctrl, err := t.open(ctx, admin)
	if err != nil {
		return RowView[T]{}, err
	}
	if !slices.Contains(t.flags, flag) {
		return RowView[T]{}, fmt.Errorf("%w: unknown flag %q", ErrInvalidInput, flag)
	}
	id = strings.TrimSpace(id)
	if _, err := ctrl.ToggleFlag(id, flag); err != nil {
		return RowView[T]{}, err
	}
	rec, _ := ctrl.Effective(id)
	return rowView(ctrl, rec, t.flags), nil
}
