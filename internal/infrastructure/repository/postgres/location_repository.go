package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type LocationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) List(ctx context.Context) ([]location.Location, error) {
	query, args, err := qb.Select("*").From("locations").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select locations query: %w", err)
	}
	return r.selectLocations(ctx, query, args)
}

// ListLeague returns the venues offered as home locations, by name.
func (r *LocationRepository) ListLeague(ctx context.Context) ([]location.Location, error) {
	query, args, err := qb.Select("*").From("locations").
		Where(qb.Eq("league", true)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league locations query: %w", err)
	}
	return r.selectLocations(ctx, query, args)
}

func (r *LocationRepository) selectLocations(ctx context.Context, query string, args []any) ([]location.Location, error) {
	var rows []locationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select locations: %w", err)
	}

	out := make([]location.Location, 0, len(rows))
	for _, row := range rows {
		out = append(out, locationFromRow(row))
	}
	return out, nil
}

func (r *LocationRepository) Insert(ctx context.Context, item location.Location) (location.Location, error) {
	query, args, err := qb.InsertModel("locations", locationWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return location.Location{}, fmt.Errorf("build insert location query: %w", err)
	}

	var row locationTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return location.Location{}, fmt.Errorf("insert location: %w", err)
	}
	return locationFromRow(row), nil
}

func (r *LocationRepository) Update(ctx context.Context, item location.Location) error {
	query, args, err := qb.UpdateModel("locations", locationWriteModelFrom(item), qb.Eq("id", item.ID))
	if err != nil {
		return fmt.Errorf("build update location query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update location id=%s: %w", item.ID, err)
	}
	return requireAffected(result, "update location", item.ID)
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("locations").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete location query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete location id=%s: %w", id, err)
	}
	return nil
}

func locationWriteModelFrom(item location.Location) locationWriteModel {
	return locationWriteModel{
		Name:        item.Name,
		Address:     item.Address,
		Details:     item.Details,
		Latitude:    copyFloat64Ptr(item.Latitude),
		Longitude:   copyFloat64Ptr(item.Longitude),
		MapEmbedURL: item.MapEmbedURL,
		IsNew:       item.IsNew,
		League:      item.League,
		LeagueNote:  item.LeagueNote,
	}
}

func locationFromRow(row locationTableModel) location.Location {
	return location.Location{
		ID:          row.ID,
		Name:        row.Name,
		Address:     row.Address,
		Details:     row.Details,
		Latitude:    nullFloat64Ptr(row.Latitude),
		Longitude:   nullFloat64Ptr(row.Longitude),
		MapEmbedURL: row.MapEmbedURL,
		IsNew:       row.IsNew,
		League:      row.League,
		LeagueNote:  row.LeagueNote,
		CreatedAt:   row.CreatedAt,
	}
}
