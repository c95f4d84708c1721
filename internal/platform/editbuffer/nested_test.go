package editbuffer

import (
	"errors"
	"testing"
)

func newNestedNotes(t *testing.T, store *fakeStore) *Nested[note] {
	t.Helper()

	ctrl := newLoadedController(t, store)
	return NewNested(ctrl,
		func(n note) string { return n.Group },
		func(n note, parent string) note {
			n.Group = parent
			return n
		},
	)
}

func TestNested_ChildrenListsPersistedThenDrafts(t *testing.T) {
	t.Parallel()

	nested := newNestedNotes(t, newFakeStore(
		note{ID: "c1", Title: "Alpha", Group: "p1"},
		note{ID: "c2", Title: "Beta", Group: "p2"},
		note{ID: "c3", Title: "Gamma", Group: "p1"},
	))

	first, err := nested.AddChild("p1", func(string) note { return note{Title: "first draft"} })
	if err != nil {
		t.Fatalf("add child: %v", err)
	}
	second, err := nested.AddChild("p1", func(string) note { return note{Title: "second draft"} })
	if err != nil {
		t.Fatalf("add child: %v", err)
	}

	children := nested.Children("p1")
	want := []string{"c1", "c3", first.ID, second.ID}
	if len(children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(children))
	}
	for i, id := range want {
		if children[i].ID != id {
			t.Fatalf("child %d: expected %s, got %s", i, id, children[i].ID)
		}
	}
	if second.Group != "p1" {
		t.Fatalf("expected draft to carry its parent, got %q", second.Group)
	}
	if got := nested.Selected("p1"); got != second.ID {
		t.Fatalf("expected newest draft selected, got %q", got)
	}
}

func TestNested_SelectRequiresMatchingParent(t *testing.T) {
	t.Parallel()

	nested := newNestedNotes(t, newFakeStore(note{ID: "c1", Title: "Alpha", Group: "p1"}))

	if _, err := nested.Select("p2", "c1"); !errors.Is(err, ErrUnknownRecord) {
		t.Fatalf("expected ErrUnknownRecord, got %v", err)
	}
	if _, err := nested.Select("p1", "c1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !nested.IsEditing("c1") {
		t.Fatalf("expected selected child in edit mode")
	}

	if err := nested.ClearSelection("p1"); err != nil {
		t.Fatalf("clear selection: %v", err)
	}
	if nested.Selected("p1") != "" || nested.IsEditing("c1") {
		t.Fatalf("expected selection and buffer cleared")
	}
}

func TestNested_SaveChildUnderDraftParentIsRejected(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	nested := newNestedNotes(t, store)

	child, err := nested.AddChild("new-1700000000000", func(string) note { return note{Title: "Flight A"} })
	if err != nil {
		t.Fatalf("add child: %v", err)
	}

	_, err = nested.SaveChild(t.Context(), child.ID)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Message != parentNotSavedMessage {
		t.Fatalf("unexpected message: %q", vErr.Message)
	}
	if calls := store.writeCalls(); calls != 0 {
		t.Fatalf("expected no store call, got %d", calls)
	}

	moved := nested.ReparentDrafts("new-1700000000000", "p9")
	if moved != 1 {
		t.Fatalf("expected one draft moved, got %d", moved)
	}
	if got := nested.Selected("p9"); got != child.ID {
		t.Fatalf("expected selection to follow the parent, got %q", got)
	}

	saved, err := nested.SaveChild(t.Context(), child.ID)
	if err != nil {
		t.Fatalf("save child: %v", err)
	}
	if saved.Group != "p9" {
		t.Fatalf("expected saved child under p9, got %q", saved.Group)
	}
	if nested.Selected("p9") != "" {
		t.Fatalf("expected selection cleared after save")
	}
	if children := nested.Children("p9"); len(children) != 1 || children[0].ID != saved.ID {
		t.Fatalf("unexpected children after save: %+v", children)
	}
}

func TestNested_AbandonParentDropsOnlyDrafts(t *testing.T) {
	t.Parallel()

	store := newFakeStore(note{ID: "c1", Title: "Alpha", Group: "p1"})
	nested := newNestedNotes(t, store)

	draft, err := nested.AddChild("p1", func(string) note { return note{Title: "draft"} })
	if err != nil {
		t.Fatalf("add child: %v", err)
	}
	if _, err := nested.AddChild("p2", func(string) note { return note{Title: "other"} }); err != nil {
		t.Fatalf("add child: %v", err)
	}

	dropped := nested.AbandonParent("p1")
	if len(dropped) != 1 || dropped[0] != draft.ID {
		t.Fatalf("unexpected dropped ids: %v", dropped)
	}
	if children := nested.Children("p1"); len(children) != 1 || children[0].ID != "c1" {
		t.Fatalf("expected persisted child to stay, got %+v", children)
	}
	if len(nested.Children("p2")) != 1 {
		t.Fatalf("expected other parent's draft to stay")
	}
	if nested.Selected("p1") != "" {
		t.Fatalf("expected selection cleared")
	}
	if calls := store.writeCalls(); calls != 0 {
		t.Fatalf("expected no store call, got %d", calls)
	}
}

func TestNested_DeleteAndCancelChildClearSelection(t *testing.T) {
	t.Parallel()

	nested := newNestedNotes(t, newFakeStore(
		note{ID: "c1", Title: "Alpha", Group: "p1"},
		note{ID: "c2", Title: "Beta", Group: "p2"},
	))

	if _, err := nested.Select("p1", "c1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := nested.DeleteChild(t.Context(), "c1", true); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	if nested.Selected("p1") != "" {
		t.Fatalf("expected selection cleared after delete")
	}

	if _, err := nested.Select("p2", "c2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := nested.CancelChild("c2"); err != nil {
		t.Fatalf("cancel child: %v", err)
	}
	if nested.Selected("p2") != "" || nested.IsEditing("c2") {
		t.Fatalf("expected cancel to clear selection and buffer")
	}
}
