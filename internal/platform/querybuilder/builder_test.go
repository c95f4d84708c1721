package querybuilder

import (
	"database/sql"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("locations").
		Where(Eq("league", true), Eq("name", "Dog House")).
		OrderBy("name", "created_at DESC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM locations WHERE league = $1 AND name = $2 ORDER BY name, created_at DESC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != "Dog House" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Select().From("locations").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("league_flights").
		Set("league_id", "d1").
		Set("flight_name", "A Flight").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO league_flights (league_id, flight_name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "d1" || args[1] != "A Flight" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("league_signups").
		Set("confirmed_paid", true).
		Where(Eq("id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE league_signups SET confirmed_paid = $1 WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Update("league_signups").Set("confirmed_paid", true).ToSQL(); err == nil {
		t.Fatalf("expected unconditional update to be rejected")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("events").Where(Eq("id", "e1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM events WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "e1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("events").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to be rejected")
	}
}

type locationRow struct {
	ID         string         `db:"id,readonly"`
	Name       string         `db:"name"`
	LeagueNote sql.NullString `db:"league_note"`
	internal   string
	Skipped    string `db:"-"`
}

func TestInsertAndUpdateModel(t *testing.T) {
	row := locationRow{ID: "l1", Name: "Dog House", internal: "x", Skipped: "y"}

	query, args, err := InsertModel("locations", row, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if query != "INSERT INTO locations (name, league_note) VALUES ($1, $2) RETURNING id" {
		t.Fatalf("unexpected insert query: %s", query)
	}
	if len(args) != 2 || args[0] != "Dog House" {
		t.Fatalf("unexpected insert args: %+v", args)
	}

	query, args, err = UpdateModel("locations", &row, Eq("id", row.ID))
	if err != nil {
		t.Fatalf("build update model: %v", err)
	}
	if query != "UPDATE locations SET name = $1, league_note = $2 WHERE id = $3" {
		t.Fatalf("unexpected update query: %s", query)
	}
	if len(args) != 3 || args[2] != "l1" {
		t.Fatalf("unexpected update args: %+v", args)
	}

	if _, _, err := InsertModel("locations", (*locationRow)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
