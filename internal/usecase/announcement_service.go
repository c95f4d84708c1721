package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	"github.com/riskibarqy/club-backoffice/internal/platform/markdown"
)

// AnnouncementAdminService is the announcements tab.
type AnnouncementAdminService struct {
	*EditTab[announcement.Announcement, announcement.Patch]
}

func NewAnnouncementAdminService(workspaces *WorkspaceManager) *AnnouncementAdminService {
	return &AnnouncementAdminService{
		EditTab: &EditTab[announcement.Announcement, announcement.Patch]{
			name:       "announcement",
			workspaces: workspaces,
			controller: func(ws *Workspace) *editbuffer.Controller[announcement.Announcement] { return ws.Announcements },
			defaults:   func(ws *Workspace) func(string) announcement.Announcement { return announcement.Draft(ws.Admin.Name) },
			flags:      []string{FlagPreview},
		},
	}
}

// TogglePage adds or removes page from the buffered row's page set.
func (s *AnnouncementAdminService) TogglePage(ctx context.Context, admin user.AuthorizedUser, id, page string) (RowView[announcement.Announcement], error) {
	_, ctrl, err := s.open(ctx, admin)
	if err != nil {
		return RowView[announcement.Announcement]{}, err
	}
	page = strings.TrimSpace(page)
	if !announcement.IsKnownPage(page) {
		return RowView[announcement.Announcement]{}, fmt.Errorf("%w: unknown page %q", ErrInvalidInput, page)
	}
	rec, err := ctrl.ToggleSetField(strings.TrimSpace(id), "page", page)
	if err != nil {
		return RowView[announcement.Announcement]{}, err
	}
	return rowView(ctrl, rec, s.flags), nil
}

type AnnouncementPreview struct {
	Row  RowView[announcement.Announcement] `json:"row"`
	HTML string                             `json:"html,omitempty"`
}

// Preview flips the preview flag and, when it turns on, renders the
// effective content.
func (s *AnnouncementAdminService) Preview(ctx context.Context, admin user.AuthorizedUser, id string) (AnnouncementPreview, error) {
	row, err := s.ToggleFlag(ctx, admin, id, FlagPreview)
	if err != nil {
		return AnnouncementPreview{}, err
	}
	out := AnnouncementPreview{Row: row}
	if !row.Flags[FlagPreview] {
		return out, nil
	}
	if out.HTML, err = markdown.Render(row.Record.Content); err != nil {
		return AnnouncementPreview{}, err
	}
	return out, nil
}

// FeedItem is an announcement on a public page.
type FeedItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	HTML      string    `json:"html"`
}

// AnnouncementFeedService serves announcements to the public pages.
type AnnouncementFeedService struct {
	repo announcement.Repository
}

func NewAnnouncementFeedService(repo announcement.Repository) *AnnouncementFeedService {
	return &AnnouncementFeedService{repo: repo}
}

// ListForPage returns announcements shown on page, newest first. An empty
// page lists every announcement.
func (s *AnnouncementFeedService) ListForPage(ctx context.Context, page string) ([]FeedItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementFeedService.ListForPage")
	defer span.End()

	page = strings.TrimSpace(page)
	if page != "" && !announcement.IsKnownPage(page) {
		return nil, fmt.Errorf("%w: unknown page %q", ErrInvalidInput, page)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	out := make([]FeedItem, 0, len(items))
	for _, item := range items {
		if page != "" && !item.VisibleOn(page) {
			continue
		}
		html, err := markdown.Render(item.Content)
		if err != nil {
			return nil, err
		}
		out = append(out, FeedItem{
			ID:        item.ID,
			Title:     item.Title,
			Author:    item.Author,
			CreatedAt: item.CreatedAt,
			HTML:      html,
		})
	}
	return out, nil
}
