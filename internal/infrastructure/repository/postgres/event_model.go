package postgres

import (
	"database/sql"
	"time"
)

type eventTableModel struct {
	ID           string          `db:"id"`
	Title        string          `db:"title"`
	Date         time.Time       `db:"date"`
	Games        string          `db:"games"`
	DrawType     string          `db:"draw_type"`
	Location     string          `db:"location"`
	EntryFee     sql.NullFloat64 `db:"entry_fee"`
	SpecialEvent string          `db:"special_event"`
	SignupStart  string          `db:"signup_start"`
	SignupEnd    string          `db:"signup_end"`
	CreatedAt    time.Time       `db:"created_at"`
}

type eventWriteModel struct {
	Title        string   `db:"title"`
	Date         string   `db:"date"`
	Games        string   `db:"games"`
	DrawType     string   `db:"draw_type"`
	Location     string   `db:"location"`
	EntryFee     *float64 `db:"entry_fee"`
	SpecialEvent string   `db:"special_event"`
	SignupStart  string   `db:"signup_start"`
	SignupEnd    string   `db:"signup_end"`
}
