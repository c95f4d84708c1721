package postgres

import (
	"database/sql"
	"time"
)

type signupTableModel struct {
	ID              string         `db:"id"`
	SettingID       sql.NullString `db:"signup_settings_id"`
	DivisionID      sql.NullString `db:"league_details_id"`
	TeamName        string         `db:"team_name"`
	CaptainName     string         `db:"captain_name"`
	CaptainADL      string         `db:"captain_adl_number"`
	CaptainEmail    string         `db:"captain_email"`
	CaptainPhone    string         `db:"captain_phone_number"`
	CaptainPaidNDA  bool           `db:"captain_paid_nda"`
	TeammateName    string         `db:"teammate_name"`
	TeammateADL     string         `db:"teammate_adl_number"`
	TeammateEmail   string         `db:"teammate_email"`
	TeammatePhone   string         `db:"teammate_phone_number"`
	TeammatePaidNDA bool           `db:"teammate_paid_nda"`
	HomeLocation1   string         `db:"home_location_1"`
	HomeLocation2   string         `db:"home_location_2"`
	PlayPreference  string         `db:"play_preference"`
	TotalFeesDue    float64        `db:"total_fees_due"`
	PaymentMethod   string         `db:"payment_method"`
	ConfirmedPaid   bool           `db:"confirmed_paid"`
	CreatedAt       time.Time      `db:"created_at"`
}

// signupWithDivisionRow is a signup LEFT JOINed to its division.
type signupWithDivisionRow struct {
	signupTableModel
	DivisionRowID         sql.NullString  `db:"division_row_id"`
	DivisionName          sql.NullString  `db:"division_name"`
	DivisionCapDetails    sql.NullString  `db:"division_cap_details"`
	DivisionDayOfWeek     sql.NullString  `db:"division_day_of_week"`
	DivisionStartTime     sql.NullString  `db:"division_start_time"`
	DivisionCostPerPlayer sql.NullFloat64 `db:"division_cost_per_player"`
	DivisionSanctionFee   sql.NullFloat64 `db:"division_sanction_fee"`
}

type signupInsertModel struct {
	SettingID       *string `db:"signup_settings_id"`
	DivisionID      *string `db:"league_details_id"`
	TeamName        string  `db:"team_name"`
	CaptainName     string  `db:"captain_name"`
	CaptainADL      string  `db:"captain_adl_number"`
	CaptainEmail    string  `db:"captain_email"`
	CaptainPhone    string  `db:"captain_phone_number"`
	CaptainPaidNDA  bool    `db:"captain_paid_nda"`
	TeammateName    string  `db:"teammate_name"`
	TeammateADL     string  `db:"teammate_adl_number"`
	TeammateEmail   string  `db:"teammate_email"`
	TeammatePhone   string  `db:"teammate_phone_number"`
	TeammatePaidNDA bool    `db:"teammate_paid_nda"`
	HomeLocation1   string  `db:"home_location_1"`
	HomeLocation2   string  `db:"home_location_2"`
	PlayPreference  string  `db:"play_preference"`
	TotalFeesDue    float64 `db:"total_fees_due"`
	PaymentMethod   string  `db:"payment_method"`
	ConfirmedPaid   bool    `db:"confirmed_paid"`
}
