package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	qb "github.com/riskibarqy/club-backoffice/internal/platform/querybuilder"
)

type authorizedUserTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Permissions pq.StringArray `db:"permissions"`
	CreatedAt   time.Time      `db:"created_at"`
}

type AuthorizedUserRepository struct {
	db *sqlx.DB
}

func NewAuthorizedUserRepository(db *sqlx.DB) *AuthorizedUserRepository {
	return &AuthorizedUserRepository{db: db}
}

func (r *AuthorizedUserRepository) GetByID(ctx context.Context, userID string) (user.AuthorizedUser, bool, error) {
	query, args, err := qb.Select("*").From("authorized_users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.AuthorizedUser{}, false, fmt.Errorf("build get authorized user query: %w", err)
	}

	var row authorizedUserTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.AuthorizedUser{}, false, nil
		}
		return user.AuthorizedUser{}, false, fmt.Errorf("get authorized user id=%s: %w", userID, err)
	}

	return user.AuthorizedUser{
		ID:          row.ID,
		Name:        row.Name,
		Permissions: append([]string(nil), row.Permissions...),
	}, true, nil
}
