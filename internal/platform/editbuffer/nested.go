package editbuffer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
)

const parentNotSavedMessage = "Save the parent record before adding to it."

// Nested is a Controller whose rows belong to a parent row, with one
// selected child per parent.
type Nested[T Record[T]] struct {
	*Controller[T]

	parentOf   func(T) string
	withParent func(T, string) T

	mu       sync.Mutex
	selected map[string]string
}

func NewNested[T Record[T]](ctrl *Controller[T], parentOf func(T) string, withParent func(T, string) T) *Nested[T] {
	return &Nested[T]{
		Controller: ctrl,
		parentOf:   parentOf,
		withParent: withParent,
		selected:   make(map[string]string),
	}
}

// Children lists the effective rows of parentID: persisted rows in store
// order, then drafts in creation order.
func (n *Nested[T]) Children(parentID string) []T {
	var persisted, drafts []T
	for _, rec := range n.Rows() {
		if n.parentOf(rec) != parentID {
			continue
		}
		if idgen.IsDraft(rec.RecordID()) {
			drafts = append([]T{rec}, drafts...)
			continue
		}
		persisted = append(persisted, rec)
	}
	return append(persisted, drafts...)
}

// Select makes childID the visible child of parentID and puts it in edit mode.
func (n *Nested[T]) Select(parentID, childID string) (T, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	rec, ok := n.Effective(childID)
	if !ok || n.parentOf(rec) != parentID {
		var zero T
		return zero, fmt.Errorf("%w: %s %s under %s", ErrUnknownRecord, n.name, childID, parentID)
	}
	if !n.IsEditing(childID) {
		if rec, err := n.BeginEdit(childID); err != nil {
			return rec, err
		}
	}
	n.selected[parentID] = childID
	return rec, nil
}

func (n *Nested[T]) Selected(parentID string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.selected[parentID]
}

// ClearSelection hides the selected child of parentID and drops its buffer.
func (n *Nested[T]) ClearSelection(parentID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	childID := n.selected[parentID]
	delete(n.selected, parentID)
	if childID == "" || !n.IsEditing(childID) {
		return nil
	}
	return n.Cancel(childID)
}

// AddChild creates a draft under parentID and selects it.
func (n *Nested[T]) AddChild(parentID string, defaults func(id string) T) (T, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	rec, err := n.AddNew(func(draftID string) T {
		return n.withParent(defaults(draftID), parentID)
	})
	if err != nil {
		return rec, err
	}
	n.selected[parentID] = rec.RecordID()
	return rec, nil
}

// CancelChild cancels id and clears it from its parent's selection.
func (n *Nested[T]) CancelChild(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	rec, ok := n.Effective(id)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownRecord, n.name, id)
	}
	if err := n.Cancel(id); err != nil {
		return err
	}
	n.unselectLocked(n.parentOf(rec), id)
	return nil
}

// SaveChild saves id unless its parent is still a draft.
func (n *Nested[T]) SaveChild(ctx context.Context, id string) (T, error) {
	rec, ok := n.Effective(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", ErrUnknownRecord, n.name, id)
	}
	parentID := n.parentOf(rec)
	if idgen.IsDraft(parentID) {
		var zero T
		return zero, &ValidationError{Message: parentNotSavedMessage, Fields: []string{"parent"}}
	}

	saved, err := n.Save(ctx, id)
	if err != nil && !errors.Is(err, ErrRefresh) {
		return saved, err
	}

	n.mu.Lock()
	n.unselectLocked(parentID, id)
	n.mu.Unlock()
	return saved, err
}

// DeleteChild deletes a persisted child and clears it from the selection.
func (n *Nested[T]) DeleteChild(ctx context.Context, id string, confirmed bool) error {
	rec, ok := n.Effective(id)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownRecord, n.name, id)
	}
	if err := n.Delete(ctx, id, confirmed); err != nil {
		return err
	}

	n.mu.Lock()
	n.unselectLocked(n.parentOf(rec), id)
	n.mu.Unlock()
	return nil
}

// AbandonParent drops every draft child of parentID and its selection.
// Persisted children are left alone; no store call is made.
func (n *Nested[T]) AbandonParent(parentID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	dropped := n.DiscardDrafts(func(rec T) bool { return n.parentOf(rec) == parentID })
	if childID := n.selected[parentID]; childID != "" {
		delete(n.selected, parentID)
		if n.IsEditing(childID) {
			_ = n.Cancel(childID)
		}
	}
	return dropped
}

// ReparentDrafts moves draft children from one parent id to another, used
// when a draft parent receives its store-assigned id.
func (n *Nested[T]) ReparentDrafts(from, to string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	moved := n.RewriteDrafts(
		func(rec T) bool { return n.parentOf(rec) == from },
		func(rec T) T { return n.withParent(rec, to) },
	)
	if childID, ok := n.selected[from]; ok {
		delete(n.selected, from)
		n.selected[to] = childID
	}
	return moved
}

func (n *Nested[T]) unselectLocked(parentID, id string) {
	if n.selected[parentID] == id {
		delete(n.selected, parentID)
	}
}
