package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
)

func ptr[T any](v T) *T { return &v }

func findSetting(tree LeagueTree, id string) (SettingNode, bool) {
	for _, node := range tree.Settings {
		if node.Record.ID == id {
			return node, true
		}
	}
	return SettingNode{}, false
}

func TestLeagueAdmin_TreeShowsSeededHierarchy(t *testing.T) {
	t.Parallel()

	svc := NewLeagueAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	tree, err := svc.Tree(context.Background(), testAdmin)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	singles, ok := findSetting(tree, memory.SeedSettingSingles)
	if !ok {
		t.Fatalf("expected singles setting in tree")
	}
	if !singles.Active {
		t.Fatalf("expected seeded setting to be open for signups")
	}
	if len(singles.Divisions) != 2 || singles.Divisions[0].Record.Name != "Mixed" {
		t.Fatalf("expected divisions ordered by name, got %+v", singles.Divisions)
	}
	open := singles.Divisions[1]
	if open.Label != "Open - Tuesday 7:00 PM" || len(open.Flights) != 1 {
		t.Fatalf("unexpected open division node: %+v", open)
	}
}

func TestLeagueAdmin_DraftDivisionFollowsSavedSetting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewLeagueAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	setting, err := svc.AddNew(ctx, testAdmin)
	if err != nil {
		t.Fatalf("add setting: %v", err)
	}
	division, err := svc.AddDivision(ctx, testAdmin, setting.Record.ID)
	if err != nil {
		t.Fatalf("add division: %v", err)
	}
	if division.Record.SettingID != setting.Record.ID || division.Record.SanctionFee != league.DefaultSanctionFee {
		t.Fatalf("unexpected draft division: %+v", division.Record)
	}
	if _, err := svc.ChangeDivision(ctx, testAdmin, division.Record.ID, league.DivisionPatch{
		Name:          ptr("Winter Open"),
		CapDetails:    ptr("No cap"),
		DayOfWeek:     ptr("Monday"),
		StartTime:     ptr("19:00"),
		CostPerPlayer: ptr(20.0),
	}); err != nil {
		t.Fatalf("change division: %v", err)
	}

	_, err = svc.SaveDivision(ctx, testAdmin, division.Record.ID)
	var validation *editbuffer.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected division under unsaved setting to be rejected, got %v", err)
	}

	if _, err := svc.Change(ctx, testAdmin, setting.Record.ID, league.SettingPatch{
		Name:        ptr("Winter Singles"),
		SignupStart: ptr("2026-11-01"),
		SignupClose: ptr("2026-11-30"),
		FormType:    ptr(league.FormSingles),
	}); err != nil {
		t.Fatalf("change setting: %v", err)
	}
	saved, err := svc.Save(ctx, testAdmin, setting.Record.ID)
	if err != nil {
		t.Fatalf("save setting: %v", err)
	}

	tree, err := svc.Tree(ctx, testAdmin)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	node, ok := findSetting(tree, saved.ID)
	if !ok {
		t.Fatalf("expected saved setting %s in tree", saved.ID)
	}
	if len(node.Divisions) != 1 || node.Divisions[0].Record.ID != division.Record.ID {
		t.Fatalf("expected draft division under saved setting, got %+v", node.Divisions)
	}
	if node.SelectedDivisionID != division.Record.ID {
		t.Fatalf("expected selection to move with the division, got %q", node.SelectedDivisionID)
	}

	savedDivision, err := svc.SaveDivision(ctx, testAdmin, division.Record.ID)
	if err != nil {
		t.Fatalf("save division: %v", err)
	}
	if idgen.IsDraft(savedDivision.ID) || savedDivision.SettingID != saved.ID {
		t.Fatalf("unexpected saved division: %+v", savedDivision)
	}
}

func TestLeagueAdmin_CancelDraftSettingDropsDraftChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := newTestWorkspaces(newMemoryStores(time.Now()))
	svc := NewLeagueAdminService(manager)

	setting, err := svc.AddNew(ctx, testAdmin)
	if err != nil {
		t.Fatalf("add setting: %v", err)
	}
	division, err := svc.AddDivision(ctx, testAdmin, setting.Record.ID)
	if err != nil {
		t.Fatalf("add division: %v", err)
	}
	if _, err := svc.AddFlight(ctx, testAdmin, division.Record.ID); err != nil {
		t.Fatalf("add flight: %v", err)
	}

	if err := svc.Cancel(ctx, testAdmin, setting.Record.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	ws, err := manager.Open(ctx, testAdmin)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, row := range ws.Divisions.Rows() {
		if idgen.IsDraft(row.ID) {
			t.Fatalf("draft division %s survived cancel", row.ID)
		}
	}
	for _, row := range ws.Flights.Rows() {
		if idgen.IsDraft(row.ID) {
			t.Fatalf("draft flight %s survived cancel", row.ID)
		}
	}
}

func TestLeagueAdmin_DeleteDivisionRemovesItsFlights(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewLeagueAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	if err := svc.DeleteDivision(ctx, testAdmin, memory.SeedDivisionOpen, false); !errors.Is(err, editbuffer.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if err := svc.DeleteDivision(ctx, testAdmin, memory.SeedDivisionOpen, true); err != nil {
		t.Fatalf("delete division: %v", err)
	}

	tree, err := svc.Tree(ctx, testAdmin)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	singles, _ := findSetting(tree, memory.SeedSettingSingles)
	if len(singles.Divisions) != 1 || singles.Divisions[0].Record.ID != memory.SeedDivisionMixed {
		t.Fatalf("unexpected divisions after delete: %+v", singles.Divisions)
	}
	for _, node := range tree.Settings {
		for _, division := range node.Divisions {
			if len(division.Flights) != 0 {
				t.Fatalf("expected no flights left, got %+v", division.Flights)
			}
		}
	}
}

func TestLeagueAdmin_FlightEditing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewLeagueAdminService(newTestWorkspaces(newMemoryStores(time.Now())))

	flight, err := svc.AddFlight(ctx, testAdmin, memory.SeedDivisionMixed)
	if err != nil {
		t.Fatalf("add flight: %v", err)
	}
	if flight.Record.LeagueType != league.DefaultLeagueType {
		t.Fatalf("expected default league type, got %q", flight.Record.LeagueType)
	}
	if _, err := svc.ChangeFlight(ctx, testAdmin, flight.Record.ID, league.FlightPatch{FlightName: ptr("Flight B")}); err != nil {
		t.Fatalf("change flight: %v", err)
	}
	saved, err := svc.SaveFlight(ctx, testAdmin, flight.Record.ID)
	if err != nil {
		t.Fatalf("save flight: %v", err)
	}
	if saved.DivisionID != memory.SeedDivisionMixed || saved.FlightName != "Flight B" {
		t.Fatalf("unexpected saved flight: %+v", saved)
	}

	if err := svc.SelectFlight(ctx, testAdmin, memory.SeedDivisionMixed, saved.ID); err != nil {
		t.Fatalf("select flight: %v", err)
	}
	if err := svc.DeleteFlight(ctx, testAdmin, saved.ID, true); err != nil {
		t.Fatalf("delete flight: %v", err)
	}

	tree, err := svc.Tree(ctx, testAdmin)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	singles, _ := findSetting(tree, memory.SeedSettingSingles)
	for _, division := range singles.Divisions {
		if division.Record.ID == memory.SeedDivisionMixed && (len(division.Flights) != 0 || division.SelectedFlightID != "") {
			t.Fatalf("expected mixed division to have no flights, got %+v", division)
		}
	}
}
