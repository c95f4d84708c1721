package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/event"
)

func TestEventAdmin_ListHidesPastUnlessAsked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	stores := newMemoryStores(now)
	fee := event.DefaultEntryFee
	if _, err := stores.Events.Insert(ctx, event.Event{
		Title:       "Summer Shootout",
		Date:        now.UTC().AddDate(0, -2, 0).Format(event.DateLayout),
		Games:       event.DefaultGames,
		DrawType:    event.DefaultDrawType,
		Location:    "Bullseye Lounge",
		EntryFee:    &fee,
		SignupStart: event.DefaultSignupStart,
		SignupEnd:   event.DefaultSignupEnd,
	}); err != nil {
		t.Fatalf("insert past event: %v", err)
	}

	svc := NewEventAdminService(newTestWorkspaces(stores), stores.Locations)

	draft, err := svc.AddNew(ctx, testAdmin)
	if err != nil {
		t.Fatalf("add new: %v", err)
	}

	upcoming, err := svc.List(ctx, testAdmin, EventQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].Record.ID != draft.Record.ID || upcoming[1].Record.Title != "Friday Blind Draw" {
		t.Fatalf("expected draft then upcoming event, got %+v", upcoming)
	}

	all, err := svc.List(ctx, testAdmin, EventQuery{ShowPast: true})
	if err != nil {
		t.Fatalf("list past: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected past event when asked, got %d rows", len(all))
	}

	searched, err := svc.List(ctx, testAdmin, EventQuery{Search: "shootout", ShowPast: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(searched) != 2 || searched[1].Record.Title != "Summer Shootout" {
		t.Fatalf("expected draft and matching event, got %+v", searched)
	}
}

func TestEventAdmin_LocationChoices(t *testing.T) {
	t.Parallel()

	stores := newMemoryStores(time.Now())
	svc := NewEventAdminService(newTestWorkspaces(stores), stores.Locations)

	choices, err := svc.LocationChoices(context.Background())
	if err != nil {
		t.Fatalf("location choices: %v", err)
	}
	if len(choices) != 2 {
		t.Fatalf("expected both seeded locations, got %+v", choices)
	}
}
