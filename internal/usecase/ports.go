package usecase

import (
	"context"

	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
)

// SignupNotice is what the confirmation email is built from.
type SignupNotice struct {
	Signup     signup.Signup
	LeagueName string
	PaymentURL string
}

type SignupNotifier interface {
	SignupReceived(ctx context.Context, notice SignupNotice) error
}

// SignupExport is one generated CSV file.
type SignupExport struct {
	SettingID string
	Filename  string
	Body      []byte
	Rows      int
}

type ExportArchiver interface {
	ArchiveExport(ctx context.Context, export SignupExport) (string, error)
}
