package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type SignupRepository struct {
	db *sqlx.DB
}

func NewSignupRepository(db *sqlx.DB) *SignupRepository {
	return &SignupRepository{db: db}
}

func (r *SignupRepository) ListBySetting(ctx context.Context, settingID string) ([]signup.Signup, error) {
	query, args, err := qb.Select(
		"s.*",
		"d.id AS division_row_id",
		"d.name AS division_name",
		"d.cap_details AS division_cap_details",
		"d.day_of_week AS division_day_of_week",
		"d.start_time::text AS division_start_time",
		"d.cost_per_player AS division_cost_per_player",
		"d.sanction_fee AS division_sanction_fee",
	).
		From("league_signups s LEFT JOIN league_details d ON d.id = s.league_details_id").
		Where(qb.Eq("s.signup_settings_id", settingID)).
		OrderBy("s.created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select signups query: %w", err)
	}

	var rows []signupWithDivisionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select signups setting=%s: %w", settingID, err)
	}

	out := make([]signup.Signup, 0, len(rows))
	for _, row := range rows {
		item := signupFromRow(row.signupTableModel)
		if row.DivisionRowID.Valid {
			item.Division = &league.Division{
				ID:            row.DivisionRowID.String,
				SettingID:     item.SettingID,
				Name:          nullStringValue(row.DivisionName),
				CapDetails:    nullStringValue(row.DivisionCapDetails),
				DayOfWeek:     nullStringValue(row.DivisionDayOfWeek),
				StartTime:     league.TrimStartTime(nullStringValue(row.DivisionStartTime)),
				CostPerPlayer: row.DivisionCostPerPlayer.Float64,
				SanctionFee:   row.DivisionSanctionFee.Float64,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SignupRepository) Create(ctx context.Context, item signup.Signup) (signup.Signup, error) {
	insertModel := signupInsertModel{
		SettingID:       nullIfEmpty(item.SettingID),
		DivisionID:      nullIfEmpty(item.DivisionID),
		TeamName:        item.TeamName,
		CaptainName:     item.CaptainName,
		CaptainADL:      item.CaptainADL,
		CaptainEmail:    item.CaptainEmail,
		CaptainPhone:    item.CaptainPhone,
		CaptainPaidNDA:  item.CaptainPaidNDA,
		TeammateName:    item.TeammateName,
		TeammateADL:     item.TeammateADL,
		TeammateEmail:   item.TeammateEmail,
		TeammatePhone:   item.TeammatePhone,
		TeammatePaidNDA: item.TeammatePaidNDA,
		HomeLocation1:   item.HomeLocation1,
		HomeLocation2:   item.HomeLocation2,
		PlayPreference:  item.PlayPreference,
		TotalFeesDue:    item.TotalFeesDue,
		PaymentMethod:   item.PaymentMethod,
		ConfirmedPaid:   item.ConfirmedPaid,
	}

	query, args, err := qb.InsertModel("league_signups", insertModel, "RETURNING *")
	if err != nil {
		return signup.Signup{}, fmt.Errorf("build insert signup query: %w", err)
	}

	var row signupTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return signup.Signup{}, fmt.Errorf("insert signup: %w", err)
	}

	out := signupFromRow(row)
	out.Division = item.Division
	return out, nil
}

func (r *SignupRepository) SetConfirmedPaid(ctx context.Context, id string, paid bool) error {
	query, args, err := qb.Update("league_signups").
		Set("confirmed_paid", paid).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update signup paid query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update signup paid id=%s: %w", id, err)
	}
	return requireAffected(result, "update signup paid", id)
}

func (r *SignupRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("league_signups").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete signup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete signup id=%s: %w", id, err)
	}
	return nil
}

func signupFromRow(row signupTableModel) signup.Signup {
	return signup.Signup{
		ID:              row.ID,
		SettingID:       nullStringValue(row.SettingID),
		DivisionID:      nullStringValue(row.DivisionID),
		TeamName:        row.TeamName,
		CaptainName:     row.CaptainName,
		CaptainADL:      row.CaptainADL,
		CaptainEmail:    row.CaptainEmail,
		CaptainPhone:    row.CaptainPhone,
		CaptainPaidNDA:  row.CaptainPaidNDA,
		TeammateName:    row.TeammateName,
		TeammateADL:     row.TeammateADL,
		TeammateEmail:   row.TeammateEmail,
		TeammatePhone:   row.TeammatePhone,
		TeammatePaidNDA: row.TeammatePaidNDA,
		HomeLocation1:   row.HomeLocation1,
		HomeLocation2:   row.HomeLocation2,
		PlayPreference:  row.PlayPreference,
		TotalFeesDue:    row.TotalFeesDue,
		PaymentMethod:   row.PaymentMethod,
		ConfirmedPaid:   row.ConfirmedPaid,
		CreatedAt:       row.CreatedAt,
	}
}
