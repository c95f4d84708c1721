package user

import "context"

// Repository reads back-office accounts.
type Repository interface {
	GetByID(ctx context.Context, userID string) (AuthorizedUser, bool, error)
}
