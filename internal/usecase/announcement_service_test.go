package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
)

func TestAnnouncementAdmin_DraftSaveRoundTripsPages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := newTestWorkspaces(newMemoryStores(time.Now()))
	svc := NewAnnouncementAdminService(manager)

	draft, err := svc.AddNew(ctx, testAdmin)
	if err != nil {
		t.Fatalf("add new: %v", err)
	}
	if !draft.Draft || !draft.Editing || !idgen.IsDraft(draft.Record.ID) {
		t.Fatalf("expected a draft in edit mode, got %+v", draft)
	}

	_, err = svc.Save(ctx, testAdmin, draft.Record.ID)
	var validation *editbuffer.ValidationError
	if !errors.As(err, &validation) || validation.Message != announcement.RequiredMessage {
		t.Fatalf("expected required-field rejection, got %v", err)
	}
	if row, _ := svc.Row(ctx, testAdmin, draft.Record.ID); !row.Editing {
		t.Fatalf("rejected save must keep edit mode")
	}

	title, content := "Board maintenance", "Boards are *closed* Monday."
	if _, err := svc.Change(ctx, testAdmin, draft.Record.ID, announcement.Patch{Title: &title, Content: &content}); err != nil {
		t.Fatalf("change: %v", err)
	}
	for _, page := range []string{announcement.PageHome, announcement.PageEvents} {
		if _, err := svc.TogglePage(ctx, testAdmin, draft.Record.ID, page); err != nil {
			t.Fatalf("toggle %s: %v", page, err)
		}
	}

	saved, err := svc.Save(ctx, testAdmin, draft.Record.ID)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if idgen.IsDraft(saved.ID) || saved.ID == "" {
		t.Fatalf("expected store-assigned id, got %q", saved.ID)
	}

	rows, err := svc.Rows(ctx, testAdmin)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected seeded and saved rows, got %d", len(rows))
	}
	got := rows[0]
	if got.Record.ID != saved.ID || got.Editing || got.Draft {
		t.Fatalf("expected saved row first and out of edit mode, got %+v", got)
	}
	if !slices.Equal(got.Record.Pages, []string{announcement.PageHome, announcement.PageEvents}) {
		t.Fatalf("unexpected reloaded pages: %v", got.Record.Pages)
	}
	if got.Record.Author != testAdmin.Name || got.Record.CreatedAt.IsZero() {
		t.Fatalf("expected author and timestamp to be stamped on save, got %+v", got.Record)
	}
	for _, row := range rows {
		if row.Record.ID == draft.Record.ID {
			t.Fatalf("draft id must not survive the save")
		}
	}
}

func TestAnnouncementAdmin_TogglePageRejectsUnknownPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewAnnouncementAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	rows, err := svc.Rows(ctx, testAdmin)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if _, err := svc.TogglePage(ctx, testAdmin, rows[0].Record.ID, "shop"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnnouncementAdmin_PreviewRendersEffectiveContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewAnnouncementAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	rows, err := svc.Rows(ctx, testAdmin)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	id := rows[0].Record.ID

	content := "New **boards** arrived."
	if _, err := svc.Change(ctx, testAdmin, id, announcement.Patch{Content: &content}); err != nil {
		t.Fatalf("change: %v", err)
	}

	preview, err := svc.Preview(ctx, testAdmin, id)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !preview.Row.Flags[FlagPreview] || !strings.Contains(preview.HTML, "<strong>boards</strong>") {
		t.Fatalf("unexpected preview: %+v", preview)
	}

	off, err := svc.Preview(ctx, testAdmin, id)
	if err != nil {
		t.Fatalf("preview off: %v", err)
	}
	if off.Row.Flags[FlagPreview] || off.HTML != "" {
		t.Fatalf("expected preview to switch off, got %+v", off)
	}
}

func TestAnnouncementAdmin_DeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewAnnouncementAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	rows, err := svc.Rows(ctx, testAdmin)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	id := rows[0].Record.ID

	if err := svc.Delete(ctx, testAdmin, id, false); !errors.Is(err, editbuffer.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if err := svc.Delete(ctx, testAdmin, id, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rows, _ := svc.Reload(ctx, testAdmin); len(rows) != 0 {
		t.Fatalf("expected no rows after delete, got %d", len(rows))
	}
}

func TestAnnouncementFeed_ListForPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	feed := NewAnnouncementFeedService(newMemoryStores(time.Now()).Announcements)

	home, err := feed.ListForPage(ctx, announcement.PageHome)
	if err != nil {
		t.Fatalf("list home: %v", err)
	}
	if len(home) != 1 || !strings.Contains(home[0].HTML, "<strong>fall season</strong>") {
		t.Fatalf("unexpected home feed: %+v", home)
	}

	stats, err := feed.ListForPage(ctx, announcement.PageStats)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected nothing on stats, got %d", len(stats))
	}

	if _, err := feed.ListForPage(ctx, "shop"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
