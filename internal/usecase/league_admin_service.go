package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
)

// LeagueAdminService is the leagues tab: signup settings with their
// divisions, and flights under each division.
type LeagueAdminService struct {
	*EditTab[league.Setting, league.SettingPatch]
	now func() time.Time
}

func NewLeagueAdminService(workspaces *WorkspaceManager) *LeagueAdminService {
	s := &LeagueAdminService{now: time.Now}
	s.EditTab = &EditTab[league.Setting, league.SettingPatch]{
		name:       "league setting",
		workspaces: workspaces,
		controller: func(ws *Workspace) *editbuffer.Controller[league.Setting] { return ws.Settings },
		defaults:   func(*Workspace) func(string) league.Setting { return league.DraftSetting },
		afterSave: func(ws *Workspace, id string, saved league.Setting) {
			if idgen.IsDraft(id) && saved.ID != "" {
				ws.Divisions.ReparentDrafts(id, saved.ID)
			}
		},
		afterCancel: func(ws *Workspace, id string) {
			if idgen.IsDraft(id) {
				abandonDivisions(ws, id)
			}
		},
		afterDelete: func(ctx context.Context, ws *Workspace, id string) error {
			abandonDivisions(ws, id)
			return ws.LoadLeagueTree(ctx)
		},
	}
	return s
}

// abandonDivisions drops the draft divisions of a setting together with
// the draft flights under them.
func abandonDivisions(ws *Workspace, settingID string) {
	for _, divisionID := range ws.Divisions.AbandonParent(settingID) {
		ws.Flights.AbandonParent(divisionID)
	}
}

type LeagueTree struct {
	Settings []SettingNode `json:"settings"`
}

type SettingNode struct {
	RowView[league.Setting]
	Active             bool           `json:"active"`
	SelectedDivisionID string         `json:"selected_division_id,omitempty"`
	Divisions          []DivisionNode `json:"divisions"`
}

type DivisionNode struct {
	RowView[league.Division]
	Label            string                   `json:"label"`
	SelectedFlightID string                   `json:"selected_flight_id,omitempty"`
	Flights          []RowView[league.Flight] `json:"flights"`
}

// Tree renders every setting with its divisions and flights. Persisted
// children keep the store order (by name) and drafts follow.
func (s *LeagueAdminService) Tree(ctx context.Context, admin user.AuthorizedUser) (LeagueTree, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueAdminService.Tree")
	defer span.End()

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return LeagueTree{}, err
	}
	return s.tree(ws), nil
}

// ReloadTree refetches settings, divisions and flights.
func (s *LeagueAdminService) ReloadTree(ctx context.Context, admin user.AuthorizedUser) (LeagueTree, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueAdminService.ReloadTree")
	defer span.End()

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return LeagueTree{}, err
	}
	if err := ws.LoadLeagueTree(ctx); err != nil {
		return LeagueTree{}, err
	}
	return s.tree(ws), nil
}

func (s *LeagueAdminService) tree(ws *Workspace) LeagueTree {
	now := s.now()
	settings := ws.Settings.Rows()
	out := LeagueTree{Settings: make([]SettingNode, 0, len(settings))}
	for _, setting := range settings {
		node := SettingNode{
			RowView:            rowView(ws.Settings, setting, nil),
			Active:             setting.IsActive(now),
			SelectedDivisionID: ws.Divisions.Selected(setting.ID),
		}
		divisions := ws.Divisions.Children(setting.ID)
		node.Divisions = make([]DivisionNode, 0, len(divisions))
		for _, division := range divisions {
			node.Divisions = append(node.Divisions, DivisionNode{
				RowView:          rowView(ws.Divisions.Controller, division, nil),
				Label:            division.SelectLabel(),
				SelectedFlightID: ws.Flights.Selected(division.ID),
				Flights:          rowViews(ws.Flights.Controller, ws.Flights.Children(division.ID), nil),
			})
		}
		out.Settings = append(out.Settings, node)
	}
	return out
}

func (s *LeagueAdminService) AddDivision(ctx context.Context, admin user.AuthorizedUser, settingID string) (RowView[league.Division], error) {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return RowView[league.Division]{}, err
	}
	settingID = strings.TrimSpace(settingID)
	if _, ok := ws.Settings.Effective(settingID); !ok {
		return RowView[league.Division]{}, fmt.Errorf("%w: league setting %s", editbuffer.ErrUnknownRecord, settingID)
	}
	rec, err := ws.Divisions.AddChild(settingID, league.DraftDivision)
	if err != nil {
		return RowView[league.Division]{}, err
	}
	return rowView(ws.Divisions.Controller, rec, nil), nil
}

// SelectDivision shows divisionID under its setting in edit mode. An
// empty divisionID clears the selection.
func (s *LeagueAdminService) SelectDivision(ctx context.Context, admin user.AuthorizedUser, settingID, divisionID string) error {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return err
	}
	settingID, divisionID = strings.TrimSpace(settingID), strings.TrimSpace(divisionID)
	if divisionID == "" {
		return ws.Divisions.ClearSelection(settingID)
	}
	_, err = ws.Divisions.Select(settingID, divisionID)
	return err
}

func (s *LeagueAdminService) ChangeDivision(ctx context.Context, admin user.AuthorizedUser, id string, patch league.DivisionPatch) (RowView[league.Division], error) {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return RowView[league.Division]{}, err
	}
	rec, err := ws.Divisions.ChangeField(strings.TrimSpace(id), patch)
	if err != nil {
		return RowView[league.Division]{}, err
	}
	return rowView(ws.Divisions.Controller, rec, nil), nil
}

// SaveDivision saves a division; draft flights under a draft division move
// to the id the store assigned.
func (s *LeagueAdminService) SaveDivision(ctx context.Context, admin user.AuthorizedUser, id string) (league.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueAdminService.SaveDivision")
	defer span.End()

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return league.Division{}, err
	}
	id = strings.TrimSpace(id)
	saved, err := ws.Divisions.SaveChild(ctx, id)
	if err != nil && !errors.Is(err, editbuffer.ErrRefresh) {
		return league.Division{}, err
	}
	if idgen.IsDraft(id) && saved.ID != "" {
		ws.Flights.ReparentDrafts(id, saved.ID)
	}
	return saved, err
}

func (s *LeagueAdminService) CancelDivision(ctx context.Context, admin user.AuthorizedUser, id string) error {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := ws.Divisions.CancelChild(id); err != nil {
		return err
	}
	if idgen.IsDraft(id) {
		ws.Flights.AbandonParent(id)
	}
	return nil
}

// DeleteDivision deletes a division. The store removes its flights, so
// flights are reloaded afterwards.
func (s *LeagueAdminService) DeleteDivision(ctx context.Context, admin user.AuthorizedUser, id string, confirmed bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueAdminService.DeleteDivision")
	defer span.End()

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := ws.Divisions.DeleteChild(ctx, id, confirmed); err != nil {
		return err
	}
	ws.Flights.AbandonParent(id)
	return ws.Flights.Load(ctx)
}

func (s *LeagueAdminService) AddFlight(ctx context.Context, admin user.AuthorizedUser, divisionID string) (RowView[league.Flight], error) {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return RowView[league.Flight]{}, err
	}
	divisionID = strings.TrimSpace(divisionID)
	if _, ok := ws.Divisions.Effective(divisionID); !ok {
		return RowView[league.Flight]{}, fmt.Errorf("%w: division %s", editbuffer.ErrUnknownRecord, divisionID)
	}
	rec, err := ws.Flights.AddChild(divisionID, league.DraftFlight)
	if err != nil {
		return RowView[league.Flight]{}, err
	}
	return rowView(ws.Flights.Controller, rec, nil), nil
}

func (s *LeagueAdminService) SelectFlight(ctx context.Context, admin user.AuthorizedUser, divisionID, flightID string) error {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return err
	}
	divisionID, flightID = strings.TrimSpace(divisionID), strings.TrimSpace(flightID)
	if flightID == "" {
		return ws.Flights.ClearSelection(divisionID)
	}
	_, err = ws.Flights.Select(divisionID, flightID)
	return err
}

func (s *LeagueAdminService) ChangeFlight(ctx context.Context, admin user.AuthorizedUser, id string, patch league.FlightPatch) (RowView[league.Flight], error) {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return RowView[league.Flight]{}, err
	}
	rec, err := ws.Flights.ChangeField(strings.TrimSpace(id), patch)
	if err != nil {
		return RowView[league.Flight]{}, err
	}
	return rowView(ws.Flights.Controller, rec, nil), nil
}

func (s *LeagueAdminService) SaveFlight(ctx context.Context, admin user.AuthorizedUser, id string) (league.Flight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueAdminService.SaveFlight")
	defer span.End()

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return league.Flight{}, err
	}
	return ws.Flights.SaveChild(ctx, strings.TrimSpace(id))
}

func (s *LeagueAdminService) CancelFlight(ctx context.Context, admin user.AuthorizedUser, id string) error {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return err
	}
	return ws.Flights.CancelChild(strings.TrimSpace(id))
}

func (s *LeagueAdminService) DeleteFlight(ctx context.Context, admin user.AuthorizedUser, id string, confirmed bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueAdminService.DeleteFlight")
	defer span.End()

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return err
	}
	return ws.Flights.DeleteChild(ctx, strings.TrimSpace(id), confirmed)
}
