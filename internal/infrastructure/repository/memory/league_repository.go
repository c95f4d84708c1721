package memory

import (
	"context"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
)

type LeagueSettingRepository struct {
	store *Store
}

func NewLeagueSettingRepository(store *Store) *LeagueSettingRepository {
	return &LeagueSettingRepository{store: store}
}

func (r *LeagueSettingRepository) List(_ context.Context) ([]league.Setting, error) {
	return r.store.settings.list(nil, func(a, b league.Setting) int {
		return byText(b.SignupStart, a.SignupStart)
	}), nil
}

func (r *LeagueSettingRepository) GetByID(_ context.Context, id string) (league.Setting, bool, error) {
	item, ok := r.store.settings.get(id)
	return item, ok, nil
}

func (r *LeagueSettingRepository) Insert(_ context.Context, item league.Setting) (league.Setting, error) {
	return r.store.settings.insert(item), nil
}

func (r *LeagueSettingRepository) Update(_ context.Context, item league.Setting) error {
	return r.store.settings.update(item)
}

// Delete cascades to divisions and their flights; signups keep their row
// with the references cleared.
func (r *LeagueSettingRepository) Delete(_ context.Context, id string) error {
	r.store.settings.delete(id)
	divisionIDs := r.store.divisions.deleteWhere(func(item league.Division) bool { return item.SettingID == id })
	r.store.deleteFlightsOf(divisionIDs)
	r.store.detachSignups(id, divisionIDs)
	return nil
}

type LeagueDivisionRepository struct {
	store *Store
}

func NewLeagueDivisionRepository(store *Store) *LeagueDivisionRepository {
	return &LeagueDivisionRepository{store: store}
}

func (r *LeagueDivisionRepository) List(_ context.Context) ([]league.Division, error) {
	return r.store.divisions.list(nil, byDivisionName), nil
}

func (r *LeagueDivisionRepository) ListBySetting(_ context.Context, settingID string) ([]league.Division, error) {
	return r.store.divisions.list(
		func(item league.Division) bool { return item.SettingID == settingID },
		byDivisionName,
	), nil
}

func (r *LeagueDivisionRepository) Insert(_ context.Context, item league.Division) (league.Division, error) {
	item.StartTime = league.TrimStartTime(item.StartTime)
	return r.store.divisions.insert(item), nil
}

func (r *LeagueDivisionRepository) Update(_ context.Context, item league.Division) error {
	item.StartTime = league.TrimStartTime(item.StartTime)
	return r.store.divisions.update(item)
}

func (r *LeagueDivisionRepository) Delete(_ context.Context, id string) error {
	r.store.divisions.delete(id)
	r.store.deleteFlightsOf([]string{id})
	r.store.detachSignups("", []string{id})
	return nil
}

type LeagueFlightRepository struct {
	store *Store
}

func NewLeagueFlightRepository(store *Store) *LeagueFlightRepository {
	return &LeagueFlightRepository{store: store}
}

func (r *LeagueFlightRepository) List(_ context.Context) ([]league.Flight, error) {
	return r.store.flights.list(nil, func(a, b league.Flight) int {
		return byText(a.FlightName, b.FlightName)
	}), nil
}

func (r *LeagueFlightRepository) Insert(_ context.Context, item league.Flight) (league.Flight, error) {
	return r.store.flights.insert(item), nil
}

func (r *LeagueFlightRepository) Update(_ context.Context, item league.Flight) error {
	return r.store.flights.update(item)
}

func (r *LeagueFlightRepository) Delete(_ context.Context, id string) error {
	r.store.flights.delete(id)
	return nil
}

func byDivisionName(a, b league.Division) int {
	return byText(a.Name, b.Name)
}

func (s *Store) deleteFlightsOf(divisionIDs []string) {
	if len(divisionIDs) == 0 {
		return
	}
	set := make(map[string]struct{}, len(divisionIDs))
	for _, id := range divisionIDs {
		set[id] = struct{}{}
	}
	s.flights.deleteWhere(func(item league.Flight) bool {
		_, ok := set[item.DivisionID]
		return ok
	})
}
