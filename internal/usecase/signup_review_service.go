package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
)

// SignupReviewService is the signup review table of one league setting.
type SignupReviewService struct {
	workspaces *WorkspaceManager
	settings   league.SettingRepository
	archiver   ExportArchiver
	now        func() time.Time
	logger     *logging.Logger
}

func NewSignupReviewService(workspaces *WorkspaceManager, settings league.SettingRepository, archiver ExportArchiver, logger *logging.Logger) *SignupReviewService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SignupReviewService{
		workspaces: workspaces,
		settings:   settings,
		archiver:   archiver,
		now:        time.Now,
		logger:     logger,
	}
}

type ReviewQuery struct {
	SettingID       string
	Search          string
	OnlyUnconfirmed bool
}

type ReviewRow struct {
	RowView[signup.Signup]
	DivisionLabel string `json:"division_label"`
}

type ReviewPage struct {
	Setting   league.Setting `json:"setting"`
	Rows      []ReviewRow    `json:"rows"`
	Total     int            `json:"total"`
	PaidCount int            `json:"paid_count"`
}

// Settings lists the persisted league settings signups can be reviewed for.
func (s *SignupReviewService) Settings(ctx context.Context, admin user.AuthorizedUser) ([]league.Setting, error) {
	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return nil, err
	}
	out := make([]league.Setting, 0)
	for _, setting := range ws.Settings.Canonical() {
		if !idgen.IsDraft(setting.ID) {
			out = append(out, setting)
		}
	}
	return out, nil
}

func (s *SignupReviewService) List(ctx context.Context, admin user.AuthorizedUser, query ReviewQuery) (ReviewPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupReviewService.List")
	defer span.End()

	setting, ctrl, err := s.review(ctx, admin, query.SettingID)
	if err != nil {
		return ReviewPage{}, err
	}
	return s.page(setting, ctrl, query), nil
}

func (s *SignupReviewService) Reload(ctx context.Context, admin user.AuthorizedUser, query ReviewQuery) (ReviewPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupReviewService.Reload")
	defer span.End()

	setting, ctrl, err := s.review(ctx, admin, query.SettingID)
	if err != nil {
		return ReviewPage{}, err
	}
	if err := ctrl.Load(ctx); err != nil {
		return ReviewPage{}, err
	}
	return s.page(setting, ctrl, query), nil
}

// TogglePaid flips confirmed_paid right away and writes it. A failed write
// puts the previous value back and returns the error.
func (s *SignupReviewService) TogglePaid(ctx context.Context, admin user.AuthorizedUser, settingID, id string) (ReviewRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupReviewService.TogglePaid")
	defer span.End()

	_, ctrl, err := s.review(ctx, admin, settingID)
	if err != nil {
		return ReviewRow{}, err
	}
	signups := s.workspaces.stores.Signups
	rec, err := ctrl.Optimistic(ctx, strings.TrimSpace(id),
		func(item signup.Signup) signup.Signup {
			item.ConfirmedPaid = !item.ConfirmedPaid
			return item
		},
		func(ctx context.Context, item signup.Signup) error {
			return signups.SetConfirmedPaid(ctx, item.ID, item.ConfirmedPaid)
		},
	)
	return reviewRow(rowView(ctrl, rec, []string{FlagExpanded})), err
}

func (s *SignupReviewService) ToggleExpanded(ctx context.Context, admin user.AuthorizedUser, settingID, id string) (ReviewRow, error) {
	_, ctrl, err := s.review(ctx, admin, settingID)
	if err != nil {
		return ReviewRow{}, err
	}
	id = strings.TrimSpace(id)
	if _, err := ctrl.ToggleFlag(id, FlagExpanded); err != nil {
		return ReviewRow{}, err
	}
	rec, _ := ctrl.Effective(id)
	return reviewRow(rowView(ctrl, rec, []string{FlagExpanded})), nil
}

func (s *SignupReviewService) Delete(ctx context.Context, admin user.AuthorizedUser, settingID, id string, confirmed bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupReviewService.Delete")
	defer span.End()

	_, ctrl, err := s.review(ctx, admin, settingID)
	if err != nil {
		return err
	}
	return ctrl.Delete(ctx, strings.TrimSpace(id), confirmed)
}

type ExportResult struct {
	Filename   string
	Body       []byte
	Rows       int
	ArchiveKey string
}

// Export serializes the rows the query shows. When an archiver is set the
// file is also uploaded; an upload failure does not fail the export.
func (s *SignupReviewService) Export(ctx context.Context, admin user.AuthorizedUser, query ReviewQuery) (ExportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupReviewService.Export")
	defer span.End()

	setting, ctrl, err := s.review(ctx, admin, query.SettingID)
	if err != nil {
		return ExportResult{}, err
	}

	rows := signup.Filter(ctrl.Rows(), query.Search, query.OnlyUnconfirmed)
	out := ExportResult{
		Filename: signup.ExportFilename(setting.Name, s.now()),
		Body:     signup.ExportCSV(rows),
		Rows:     len(rows),
	}

	if s.archiver != nil {
		key, err := s.archiver.ArchiveExport(ctx, SignupExport{
			SettingID: setting.ID,
			Filename:  out.Filename,
			Body:      out.Body,
			Rows:      out.Rows,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "signup export not archived", "setting_id", setting.ID, "error", err)
		} else {
			out.ArchiveKey = key
		}
	}

	return out, nil
}

func (s *SignupReviewService) review(ctx context.Context, admin user.AuthorizedUser, settingID string) (league.Setting, *reviewController, error) {
	settingID = strings.TrimSpace(settingID)
	if settingID == "" {
		return league.Setting{}, nil, fmt.Errorf("%w: league setting is required", ErrInvalidInput)
	}

	setting, exists, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return league.Setting{}, nil, fmt.Errorf("get league setting: %w", err)
	}
	if !exists {
		return league.Setting{}, nil, fmt.Errorf("%w: league setting %s", ErrNotFound, settingID)
	}

	ws, err := s.workspaces.Open(ctx, admin)
	if err != nil {
		return league.Setting{}, nil, err
	}
	ctrl, err := ws.Review(ctx, settingID)
	if err != nil {
		return league.Setting{}, nil, err
	}
	return setting, ctrl, nil
}

func (s *SignupReviewService) page(setting league.Setting, ctrl *reviewController, query ReviewQuery) ReviewPage {
	all := ctrl.Rows()
	visible := signup.Filter(all, query.Search, query.OnlyUnconfirmed)

	out := ReviewPage{
		Setting: setting,
		Rows:    make([]ReviewRow, 0, len(visible)),
		Total:   len(all),
	}
	for _, row := range all {
		if row.ConfirmedPaid {
			out.PaidCount++
		}
	}
	for _, row := range visible {
		out.Rows = append(out.Rows, reviewRow(rowView(ctrl, row, []string{FlagExpanded})))
	}
	return out
}

func reviewRow(view RowView[signup.Signup]) ReviewRow {
	return ReviewRow{RowView: view, DivisionLabel: view.Record.DivisionLabel()}
}
