package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/event"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		OrderBy("date DESC", "created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) Insert(ctx context.Context, item event.Event) (event.Event, error) {
	query, args, err := qb.InsertModel("events", eventWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return event.Event{}, fmt.Errorf("build insert event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return event.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return eventFromRow(row), nil
}

func (r *EventRepository) Update(ctx context.Context, item event.Event) error {
	query, args, err := qb.UpdateModel("events", eventWriteModelFrom(item), qb.Eq("id", item.ID))
	if err != nil {
		return fmt.Errorf("build update event query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event id=%s: %w", item.ID, err)
	}
	return requireAffected(result, "update event", item.ID)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("events").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete event id=%s: %w", id, err)
	}
	return nil
}

func eventWriteModelFrom(item event.Event) eventWriteModel {
	return eventWriteModel{
		Title:        item.Title,
		Date:         item.Date,
		Games:        item.Games,
		DrawType:     item.DrawType,
		Location:     item.Location,
		EntryFee:     copyFloat64Ptr(item.EntryFee),
		SpecialEvent: item.SpecialEvent,
		SignupStart:  item.SignupStart,
		SignupEnd:    item.SignupEnd,
	}
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:           row.ID,
		Title:        row.Title,
		Date:         formatDate(row.Date),
		Games:        row.Games,
		DrawType:     row.DrawType,
		Location:     row.Location,
		EntryFee:     nullFloat64Ptr(row.EntryFee),
		SpecialEvent: row.SpecialEvent,
		SignupStart:  row.SignupStart,
		SignupEnd:    row.SignupEnd,
	}
}
