package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type AnnouncementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]announcement.Announcement, error) {
	query, args, err := qb.Select("*").From("announcements").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select announcements query: %w", err)
	}

	var rows []announcementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select announcements: %w", err)
	}

	out := make([]announcement.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, announcementFromRow(row))
	}
	return out, nil
}

func (r *AnnouncementRepository) Insert(ctx context.Context, item announcement.Announcement) (announcement.Announcement, error) {
	query, args, err := qb.InsertModel("announcements", announcementWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("build insert announcement query: %w", err)
	}

	var row announcementTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return announcement.Announcement{}, fmt.Errorf("insert announcement: %w", err)
	}
	return announcementFromRow(row), nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, item announcement.Announcement) error {
	query, args, err := qb.UpdateModel("announcements", announcementWriteModelFrom(item), qb.Eq("id", item.ID))
	if err != nil {
		return fmt.Errorf("build update announcement query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update announcement id=%s: %w", item.ID, err)
	}
	return requireAffected(result, "update announcement", item.ID)
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("announcements").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete announcement query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete announcement id=%s: %w", id, err)
	}
	return nil
}

func announcementWriteModelFrom(item announcement.Announcement) announcementWriteModel {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return announcementWriteModel{
		Title:     item.Title,
		Content:   item.Content,
		Author:    item.Author,
		Page:      announcement.JoinPages(item.Pages),
		CreatedAt: createdAt,
	}
}

func announcementFromRow(row announcementTableModel) announcement.Announcement {
	return announcement.Announcement{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Author:    row.Author,
		CreatedAt: row.CreatedAt,
		Pages:     announcement.SplitPages(row.Page),
	}
}
