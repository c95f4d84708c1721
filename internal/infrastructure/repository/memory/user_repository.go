package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/club-backoffice/internal/domain/user"
)

type AuthorizedUserRepository struct {
	store *Store
}

func NewAuthorizedUserRepository(store *Store) *AuthorizedUserRepository {
	return &AuthorizedUserRepository{store: store}
}

func (r *AuthorizedUserRepository) GetByID(_ context.Context, userID string) (user.AuthorizedUser, bool, error) {
	item, ok := r.store.users.get(userID)
	if !ok {
		return user.AuthorizedUser{}, false, nil
	}
	item.Permissions = slices.Clone(item.Permissions)
	return item, true, nil
}
