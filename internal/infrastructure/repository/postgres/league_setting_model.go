package postgres

import "time"

type leagueSettingTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	SignupStart time.Time `db:"signup_start"`
	SignupClose time.Time `db:"signup_close"`
	LeagueInfo  string    `db:"league_info"`
	FormType    string    `db:"form_type"`
	CreatedAt   time.Time `db:"created_at"`
}

type leagueSettingWriteModel struct {
	Name        string `db:"name"`
	SignupStart string `db:"signup_start"`
	SignupClose string `db:"signup_close"`
	LeagueInfo  string `db:"league_info"`
	FormType    string `db:"form_type"`
}

type leagueDivisionTableModel struct {
	ID            string    `db:"id"`
	SettingID     string    `db:"signup_settings_id"`
	Name          string    `db:"name"`
	CapDetails    string    `db:"cap_details"`
	DayOfWeek     string    `db:"day_of_week"`
	StartTime     string    `db:"start_time"`
	CostPerPlayer float64   `db:"cost_per_player"`
	SanctionFee   float64   `db:"sanction_fee"`
	CreatedAt     time.Time `db:"created_at"`
}

type leagueDivisionWriteModel struct {
	SettingID     string  `db:"signup_settings_id"`
	Name          string  `db:"name"`
	CapDetails    string  `db:"cap_details"`
	DayOfWeek     string  `db:"day_of_week"`
	StartTime     string  `db:"start_time"`
	CostPerPlayer float64 `db:"cost_per_player"`
	SanctionFee   float64 `db:"sanction_fee"`
}

type leagueFlightTableModel struct {
	ID           string    `db:"id"`
	DivisionID   string    `db:"league_id"`
	FlightName   string    `db:"flight_name"`
	ScheduleURL  string    `db:"schedule_url"`
	StandingsURL string    `db:"standings_url"`
	PlayersURL   string    `db:"players_url"`
	LeagueType   string    `db:"league_type"`
	CreatedAt    time.Time `db:"created_at"`
}

type leagueFlightWriteModel struct {
	DivisionID   string `db:"league_id"`
	FlightName   string `db:"flight_name"`
	ScheduleURL  string `db:"schedule_url"`
	StandingsURL string `db:"standings_url"`
	PlayersURL   string `db:"players_url"`
	LeagueType   string `db:"league_type"`
}
