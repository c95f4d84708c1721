package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type LeagueFlightRepository struct {
	db *sqlx.DB
}

func NewLeagueFlightRepository(db *sqlx.DB) *LeagueFlightRepository {
	return &LeagueFlightRepository{db: db}
}

func (r *LeagueFlightRepository) List(ctx context.Context) ([]league.Flight, error) {
	query, args, err := qb.Select("*").From("league_flights").
		OrderBy("flight_name", "created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select flights query: %w", err)
	}

	var rows []leagueFlightTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select flights: %w", err)
	}

	out := make([]league.Flight, 0, len(rows))
	for _, row := range rows {
		out = append(out, flightFromRow(row))
	}
	return out, nil
}

func (r *LeagueFlightRepository) Insert(ctx context.Context, item league.Flight) (league.Flight, error) {
	query, args, err := qb.InsertModel("league_flights", flightWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return league.Flight{}, fmt.Errorf("build insert flight query: %w", err)
	}

	var row leagueFlightTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return league.Flight{}, fmt.Errorf("insert flight: %w", err)
	}
	return flightFromRow(row), nil
}

func (r *LeagueFlightRepository) Update(ctx context.Context, item league.Flight) error {
	query, args, err := qb.UpdateModel("league_flights", flightWriteModelFrom(item), qb.Eq("id", item.ID))
	if err != nil {
		return fmt.Errorf("build update flight query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update flight id=%s: %w", item.ID, err)
	}
	return requireAffected(result, "update flight", item.ID)
}

func (r *LeagueFlightRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("league_flights").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete flight query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete flight id=%s: %w", id, err)
	}
	return nil
}

func flightWriteModelFrom(item league.Flight) leagueFlightWriteModel {
	return leagueFlightWriteModel{
		DivisionID:   item.DivisionID,
		FlightName:   item.FlightName,
		ScheduleURL:  item.ScheduleURL,
		StandingsURL: item.StandingsURL,
		PlayersURL:   item.PlayersURL,
		LeagueType:   item.LeagueType,
	}
}

func flightFromRow(row leagueFlightTableModel) league.Flight {
	return league.Flight{
		ID:           row.ID,
		DivisionID:   row.DivisionID,
		FlightName:   row.FlightName,
		ScheduleURL:  row.ScheduleURL,
		StandingsURL: row.StandingsURL,
		PlayersURL:   row.PlayersURL,
		LeagueType:   row.LeagueType,
	}
}
