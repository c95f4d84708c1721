package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type LeagueDivisionRepository struct {
	db *sqlx.DB
}

func NewLeagueDivisionRepository(db *sqlx.DB) *LeagueDivisionRepository {
	return &LeagueDivisionRepository{db: db}
}

func (r *LeagueDivisionRepository) List(ctx context.Context) ([]league.Division, error) {
	query, args, err := qb.Select("*").From("league_details").
		OrderBy("name", "created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select divisions query: %w", err)
	}
	return r.selectDivisions(ctx, query, args)
}

func (r *LeagueDivisionRepository) ListBySetting(ctx context.Context, settingID string) ([]league.Division, error) {
	query, args, err := qb.Select("*").From("league_details").
		Where(qb.Eq("signup_settings_id", settingID)).
		OrderBy("name", "created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select divisions by setting query: %w", err)
	}
	return r.selectDivisions(ctx, query, args)
}

func (r *LeagueDivisionRepository) selectDivisions(ctx context.Context, query string, args []any) ([]league.Division, error) {
	var rows []leagueDivisionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select divisions: %w", err)
	}

	out := make([]league.Division, 0, len(rows))
	for _, row := range rows {
		out = append(out, divisionFromRow(row))
	}
	return out, nil
}

func (r *LeagueDivisionRepository) Insert(ctx context.Context, item league.Division) (league.Division, error) {
	query, args, err := qb.InsertModel("league_details", divisionWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return league.Division{}, fmt.Errorf("build insert division query: %w", err)
	}

	var row leagueDivisionTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return league.Division{}, fmt.Errorf("insert division: %w", err)
	}
	return divisionFromRow(row), nil
}

func (r *LeagueDivisionRepository) Update(ctx context.Context, item league.Division) error {
	query, args, err := qb.UpdateModel("league_details", divisionWriteModelFrom(item), qb.Eq("id", item.ID))
	if err != nil {
		return fmt.Errorf("build update division query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update division id=%s: %w", item.ID, err)
	}
	return requireAffected(result, "update division", item.ID)
}

func (r *LeagueDivisionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("league_details").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete division query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete division id=%s: %w", id, err)
	}
	return nil
}

func divisionWriteModelFrom(item league.Division) leagueDivisionWriteModel {
	return leagueDivisionWriteModel{
		SettingID:     item.SettingID,
		Name:          item.Name,
		CapDetails:    item.CapDetails,
		DayOfWeek:     item.DayOfWeek,
		StartTime:     item.StartTime,
		CostPerPlayer: item.CostPerPlayer,
		SanctionFee:   item.SanctionFee,
	}
}

func divisionFromRow(row leagueDivisionTableModel) league.Division {
	return league.Division{
		ID:            row.ID,
		SettingID:     row.SettingID,
		Name:          row.Name,
		CapDetails:    row.CapDetails,
		DayOfWeek:     row.DayOfWeek,
		StartTime:     league.TrimStartTime(row.StartTime),
		CostPerPlayer: row.CostPerPlayer,
		SanctionFee:   row.SanctionFee,
	}
}
