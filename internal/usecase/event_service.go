package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/event"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
)

// EventAdminService is the events tab.
type EventAdminService struct {
	*EditTab[event.Event, event.Patch]
	locations location.Repository
	now       func() time.Time
}

func NewEventAdminService(workspaces *WorkspaceManager, locations location.Repository) *EventAdminService {
	s := &EventAdminService{locations: locations, now: time.Now}
	s.EditTab = &EditTab[event.Event, event.Patch]{
		name:       "event",
		workspaces: workspaces,
		controller: func(ws *Workspace) *editbuffer.Controller[event.Event] { return ws.Events },
		defaults:   func(*Workspace) func(string) event.Event { return event.Draft(s.now()) },
	}
	return s
}

type EventQuery struct {
	Search   string
	ShowPast bool
}

// List returns drafts first, then the persisted rows matching the query.
// Past events are hidden unless ShowPast is set.
func (s *EventAdminService) List(ctx context.Context, admin user.AuthorizedUser, query EventQuery) ([]RowView[event.Event], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventAdminService.List")
	defer span.End()

	_, ctrl, err := s.open(ctx, admin)
	if err != nil {
		return nil, err
	}

	var drafts, persisted []event.Event
	for _, row := range ctrl.Rows() {
		if idgen.IsDraft(row.ID) {
			drafts = append(drafts, row)
			continue
		}
		persisted = append(persisted, row)
	}
	rows := append(drafts, event.Visible(persisted, query.Search, query.ShowPast, s.now())...)
	return rowViews(ctrl, rows, nil), nil
}

type LocationChoice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationChoices lists the venues an event can be held at.
func (s *EventAdminService) LocationChoices(ctx context.Context) ([]LocationChoice, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventAdminService.LocationChoices")
	defer span.End()

	items, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make([]LocationChoice, 0, len(items))
	for _, item := range items {
		out = append(out, LocationChoice{ID: item.ID, Name: item.Name})
	}
	return out, nil
}
