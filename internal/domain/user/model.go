package user

import "slices"

const PermissionAdmin = "admin"

// Principal is the identity behind a verified access token.
type Principal struct {
	UserID string
	Email  string
}

// AuthorizedUser is a back-office account with its granted permissions.
type AuthorizedUser struct {
	ID          string
	Name        string
	Permissions []string
}

func (u AuthorizedUser) HasPermission(permission string) bool {
	return slices.Contains(u.Permissions, permission)
}

func (u AuthorizedUser) IsAdmin() bool {
	return u.HasPermission(PermissionAdmin)
}
