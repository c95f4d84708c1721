package postgres

import (
	"database/sql"
	"time"
)

type locationTableModel struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Address     string          `db:"address"`
	Details     string          `db:"details"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
	MapEmbedURL string          `db:"map_embed_url"`
	IsNew       bool            `db:"is_new"`
	League      bool            `db:"league"`
	LeagueNote  string          `db:"league_note"`
	CreatedAt   time.Time       `db:"created_at"`
}

type locationWriteModel struct {
	Name        string   `db:"name"`
	Address     string   `db:"address"`
	Details     string   `db:"details"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`
	MapEmbedURL string   `db:"map_embed_url"`
	IsNew       bool     `db:"is_new"`
	League      bool     `db:"league"`
	LeagueNote  string   `db:"league_note"`
}
