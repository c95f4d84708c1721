package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/domain/user"
)

// AdminService gates the back-office on the admin permission.
type AdminService struct {
	users user.Repository
}

func NewAdminService(users user.Repository) *AdminService {
	return &AdminService{users: users}
}

// Authorize returns the account behind principal when it holds the admin
// permission. Anything else is a denial with no partial access.
func (s *AdminService) Authorize(ctx context.Context, principal user.Principal) (user.AuthorizedUser, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Authorize")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return user.AuthorizedUser{}, fmt.Errorf("%w: no signed-in user", ErrUnauthorized)
	}

	account, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.AuthorizedUser{}, fmt.Errorf("get authorized user: %w", err)
	}
	if !exists || !account.IsAdmin() {
		return user.AuthorizedUser{}, fmt.Errorf("%w: %s", ErrForbidden, MessageNotAdmin)
	}
	if strings.TrimSpace(account.Name) == "" {
		account.Name = principal.Email
	}

	return account, nil
}
