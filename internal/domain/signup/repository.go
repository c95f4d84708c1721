package signup

import "context"

// Repository stores league signups. ListBySetting returns the newest first
// with the division joined in.
type Repository interface {
	ListBySetting(ctx context.Context, settingID string) ([]Signup, error)
	Create(ctx context.Context, item Signup) (Signup, error)
	SetConfirmedPaid(ctx context.Context, id string, paid bool) error
	Delete(ctx context.Context, id string) error
}
