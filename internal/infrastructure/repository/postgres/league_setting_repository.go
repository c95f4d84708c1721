package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type LeagueSettingRepository struct {
	db *sqlx.DB
}

func NewLeagueSettingRepository(db *sqlx.DB) *LeagueSettingRepository {
	return &LeagueSettingRepository{db: db}
}

func (r *LeagueSettingRepository) List(ctx context.Context) ([]league.Setting, error) {
	query, args, err := qb.Select("*").From("league_signup_settings").
		OrderBy("signup_start DESC", "created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league settings query: %w", err)
	}

	var rows []leagueSettingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league settings: %w", err)
	}

	out := make([]league.Setting, 0, len(rows))
	for _, row := range rows {
		out = append(out, settingFromRow(row))
	}
	return out, nil
}

func (r *LeagueSettingRepository) GetByID(ctx context.Context, id string) (league.Setting, bool, error) {
	query, args, err := qb.Select("*").From("league_signup_settings").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return league.Setting{}, false, fmt.Errorf("build get league setting query: %w", err)
	}

	var row leagueSettingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Setting{}, false, nil
		}
		return league.Setting{}, false, fmt.Errorf("get league setting id=%s: %w", id, err)
	}
	return settingFromRow(row), true, nil
}

func (r *LeagueSettingRepository) Insert(ctx context.Context, item league.Setting) (league.Setting, error) {
	query, args, err := qb.InsertModel("league_signup_settings", settingWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return league.Setting{}, fmt.Errorf("build insert league setting query: %w", err)
	}

	var row leagueSettingTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return league.Setting{}, fmt.Errorf("insert league setting: %w", err)
	}
	return settingFromRow(row), nil
}

func (r *LeagueSettingRepository) Update(ctx context.Context, item league.Setting) error {
	query, args, err := qb.UpdateModel("league_signup_settings", settingWriteModelFrom(item), qb.Eq("id", item.ID))
	if err != nil {
		return fmt.Errorf("build update league setting query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league setting id=%s: %w", item.ID, err)
	}
	return requireAffected(result, "update league setting", item.ID)
}

// Delete removes the setting; divisions and flights go with it by cascade.
func (r *LeagueSettingRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("league_signup_settings").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league setting query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete league setting id=%s: %w", id, err)
	}
	return nil
}

func settingWriteModelFrom(item league.Setting) leagueSettingWriteModel {
	return leagueSettingWriteModel{
		Name:        item.Name,
		SignupStart: item.SignupStart,
		SignupClose: item.SignupClose,
		LeagueInfo:  item.LeagueInfo,
		FormType:    item.FormType,
	}
}

func settingFromRow(row leagueSettingTableModel) league.Setting {
	return league.Setting{
		ID:          row.ID,
		Name:        row.Name,
		SignupStart: formatDate(row.SignupStart),
		SignupClose: formatDate(row.SignupClose),
		LeagueInfo:  row.LeagueInfo,
		FormType:    row.FormType,
	}
}
