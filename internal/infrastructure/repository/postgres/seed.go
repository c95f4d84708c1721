package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo content into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM league_signup_settings`); err != nil {
		return fmt.Errorf("count league settings for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := memory.DevSeed(now)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(name, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		return nil
	}

	for _, u := range seed.Users {
		if err := exec("authorized user "+u.ID, `
INSERT INTO authorized_users (id, name, permissions)
VALUES (:id, :name, :permissions)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          u.ID,
			"name":        u.Name,
			"permissions": pq.StringArray(u.Permissions),
		}); err != nil {
			return err
		}
	}

	for _, a := range seed.Announcements {
		if err := exec("announcement "+a.ID, `
INSERT INTO announcements (id, title, content, author, page, created_at)
VALUES (:id, :title, :content, :author, :page, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         a.ID,
			"title":      a.Title,
			"content":    a.Content,
			"author":     a.Author,
			"page":       announcement.JoinPages(a.Pages),
			"created_at": a.CreatedAt,
		}); err != nil {
			return err
		}
	}

	for _, l := range seed.Locations {
		if err := exec("location "+l.ID, `
INSERT INTO locations (id, name, address, latitude, longitude, league, league_note, created_at)
VALUES (:id, :name, :address, :latitude, :longitude, :league, :league_note, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          l.ID,
			"name":        l.Name,
			"address":     l.Address,
			"latitude":    l.Latitude,
			"longitude":   l.Longitude,
			"league":      l.League,
			"league_note": l.LeagueNote,
			"created_at":  l.CreatedAt,
		}); err != nil {
			return err
		}
	}

	for _, e := range seed.Events {
		if err := exec("event "+e.ID, `
INSERT INTO events (id, title, date, games, draw_type, location, entry_fee, signup_start, signup_end)
VALUES (:id, :title, :date, :games, :draw_type, :location, :entry_fee, :signup_start, :signup_end)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           e.ID,
			"title":        e.Title,
			"date":         e.Date,
			"games":        e.Games,
			"draw_type":    e.DrawType,
			"location":     e.Location,
			"entry_fee":    e.EntryFee,
			"signup_start": e.SignupStart,
			"signup_end":   e.SignupEnd,
		}); err != nil {
			return err
		}
	}

	for _, s := range seed.Settings {
		if err := exec("league setting "+s.ID, `
INSERT INTO league_signup_settings (id, name, signup_start, signup_close, league_info, form_type)
VALUES (:id, :name, :signup_start, :signup_close, :league_info, :form_type)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           s.ID,
			"name":         s.Name,
			"signup_start": s.SignupStart,
			"signup_close": s.SignupClose,
			"league_info":  s.LeagueInfo,
			"form_type":    s.FormType,
		}); err != nil {
			return err
		}
	}

	for _, d := range seed.Divisions {
		if err := exec("division "+d.ID, `
INSERT INTO league_details (id, signup_settings_id, name, cap_details, day_of_week, start_time, cost_per_player, sanction_fee)
VALUES (:id, :signup_settings_id, :name, :cap_details, :day_of_week, :start_time, :cost_per_player, :sanction_fee)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                 d.ID,
			"signup_settings_id": d.SettingID,
			"name":               d.Name,
			"cap_details":        d.CapDetails,
			"day_of_week":        d.DayOfWeek,
			"start_time":         d.StartTime,
			"cost_per_player":    d.CostPerPlayer,
			"sanction_fee":       d.SanctionFee,
		}); err != nil {
			return err
		}
	}

	for _, f := range seed.Flights {
		if err := exec("flight "+f.ID, `
INSERT INTO league_flights (id, league_id, flight_name, league_type)
VALUES (:id, :league_id, :flight_name, :league_type)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          f.ID,
			"league_id":   f.DivisionID,
			"flight_name": f.FlightName,
			"league_type": f.LeagueType,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
