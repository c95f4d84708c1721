package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

// SignupService backs the public league signup form.
type SignupService struct {
	settings  league.SettingRepository
	divisions league.DivisionRepository
	locations location.Repository
	signups   signup.Repository
	notifier  SignupNotifier
	payments  signup.PaymentLinks
	now       func() time.Time
	logger    *logging.Logger
}

type SignupServiceDeps struct {
	Settings  league.SettingRepository
	Divisions league.DivisionRepository
	Locations location.Repository
	Signups   signup.Repository
	// Notifier is optional; without it no confirmation email is sent.
	Notifier SignupNotifier
	Payments signup.PaymentLinks
	Logger   *logging.Logger
}

func NewSignupService(deps SignupServiceDeps) *SignupService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &SignupService{
		settings:  deps.Settings,
		divisions: deps.Divisions,
		locations: deps.Locations,
		signups:   deps.Signups,
		notifier:  deps.Notifier,
		payments:  deps.Payments,
		now:       time.Now,
		logger:    logger,
	}
}

type DivisionOption struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	CostPerPlayer float64 `json:"cost_per_player"`
	SanctionFee   float64 `json:"sanction_fee"`
}

type LocationOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type OpenLeague struct {
	Setting   league.Setting   `json:"setting"`
	Doubles   bool             `json:"doubles"`
	Divisions []DivisionOption `json:"divisions"`
}

type SignupForm struct {
	OpenLeague
	Open      bool             `json:"open"`
	Locations []LocationOption `json:"locations"`
}

// ListOpen returns the league settings whose signup window includes now.
func (s *SignupService) ListOpen(ctx context.Context) ([]OpenLeague, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.ListOpen")
	defer span.End()

	settings, err := s.settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list league settings: %w", err)
	}

	now := s.now()
	open := make([]league.Setting, 0, len(settings))
	for _, setting := range settings {
		if setting.IsActive(now) {
			open = append(open, setting)
		}
	}

	return iter.MapErr(open, func(setting *league.Setting) (OpenLeague, error) {
		return s.openLeague(ctx, *setting)
	})
}

// Form returns what the signup form for one setting needs.
func (s *SignupService) Form(ctx context.Context, settingID string) (SignupForm, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.Form")
	defer span.End()

	setting, err := s.setting(ctx, settingID)
	if err != nil {
		return SignupForm{}, err
	}
	openLeague, err := s.openLeague(ctx, setting)
	if err != nil {
		return SignupForm{}, err
	}
	venues, err := s.locations.ListLeague(ctx)
	if err != nil {
		return SignupForm{}, fmt.Errorf("list league locations: %w", err)
	}

	out := SignupForm{
		OpenLeague: openLeague,
		Open:       setting.IsActive(s.now()),
		Locations:  make([]LocationOption, 0, len(venues)),
	}
	for _, venue := range venues {
		out.Locations = append(out.Locations, LocationOption{ID: venue.ID, Name: venue.Name, Label: venue.Label()})
	}
	return out, nil
}

type QuoteInput struct {
	DivisionID      string `json:"league_details_id"`
	CaptainPaidNDA  bool   `json:"captain_paid_nda"`
	TeammatePaidNDA bool   `json:"teammate_paid_nda"`
}

type Quote struct {
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}

// Quote computes the fee shown while the form is filled in. No division
// selected means nothing is due.
func (s *SignupService) Quote(ctx context.Context, settingID string, input QuoteInput) (Quote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.Quote")
	defer span.End()

	setting, err := s.setting(ctx, settingID)
	if err != nil {
		return Quote{}, err
	}

	var division *league.Division
	if divisionID := strings.TrimSpace(input.DivisionID); divisionID != "" {
		found, err := s.division(ctx, setting.ID, divisionID)
		if err != nil {
			return Quote{}, err
		}
		division = &found
	}

	doubles := setting.IsDoubles()
	captainPaid := input.CaptainPaidNDA
	if !doubles {
		captainPaid = true
	}
	total := signup.TotalFee(division, doubles, captainPaid, input.TeammatePaidNDA)
	return Quote{Total: total, Formatted: signup.FormatAmount(total)}, nil
}

type SubmitResult struct {
	Signup     signup.Signup `json:"signup"`
	PaymentURL string        `json:"payment_url"`
	AmountDue  string        `json:"amount_due"`
}

// Submit validates and stores a signup, then points the player at the
// payment page. Rejections carry the message the form shows.
func (s *SignupService) Submit(ctx context.Context, settingID string, form signup.Form) (SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.Submit")
	defer span.End()

	setting, err := s.setting(ctx, settingID)
	if err != nil {
		return SubmitResult{}, err
	}
	if !setting.IsActive(s.now()) {
		return SubmitResult{}, &signup.FormError{Message: signup.MessageClosed}
	}

	form = form.Normalize()
	if err := form.Check(setting.IsDoubles()); err != nil {
		return SubmitResult{}, err
	}
	division, err := s.division(ctx, setting.ID, form.DivisionID)
	if err != nil {
		if isNotFound(err) {
			return SubmitResult{}, &signup.FormError{Message: signup.MessageSelectLeague}
		}
		return SubmitResult{}, err
	}

	created, err := s.signups.Create(ctx, form.Build(setting, division))
	if err != nil {
		s.logger.ErrorContext(ctx, "create signup failed", "setting_id", setting.ID, "error", err)
		return SubmitResult{}, fmt.Errorf("%w: %w", &signup.FormError{Message: signup.MessageSubmitFailed}, err)
	}
	created.Division = &division

	out := SubmitResult{
		Signup:     created,
		PaymentURL: s.payments.URL(created.PaymentMethod, created.TotalFeesDue, created.CaptainName),
		AmountDue:  signup.FormatAmount(created.TotalFeesDue),
	}

	if s.notifier != nil {
		notice := SignupNotice{Signup: created, LeagueName: setting.Name, PaymentURL: out.PaymentURL}
		if err := s.notifier.SignupReceived(ctx, notice); err != nil {
			s.logger.WarnContext(ctx, "signup confirmation email failed", "signup_id", created.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "signup received", "signup_id", created.ID, "setting_id", setting.ID, "division_id", division.ID)
	return out, nil
}

type ContactCheck struct {
	Phone      string `json:"phone"`
	PhoneValid bool   `json:"phone_valid"`
	PhoneError string `json:"phone_error,omitempty"`
	EmailValid bool   `json:"email_valid"`
	EmailError string `json:"email_error,omitempty"`
}

// CheckContact formats a phone number as typed and reports the inline
// errors the form shows. Empty values are not flagged.
func (s *SignupService) CheckContact(phone, email string) ContactCheck {
	formatted := signup.FormatPhone(phone)
	email = strings.TrimSpace(email)
	return ContactCheck{
		Phone:      formatted,
		PhoneValid: signup.IsValidPhone(formatted),
		PhoneError: signup.PhoneError(formatted),
		EmailValid: signup.IsValidEmail(email),
		EmailError: signup.EmailError(email),
	}
}

func (s *SignupService) openLeague(ctx context.Context, setting league.Setting) (OpenLeague, error) {
	divisions, err := s.divisions.ListBySetting(ctx, setting.ID)
	if err != nil {
		return OpenLeague{}, fmt.Errorf("list divisions: %w", err)
	}
	out := OpenLeague{
		Setting:   setting,
		Doubles:   setting.IsDoubles(),
		Divisions: make([]DivisionOption, 0, len(divisions)),
	}
	for _, division := range divisions {
		out.Divisions = append(out.Divisions, DivisionOption{
			ID:            division.ID,
			Label:         division.FormLabel(),
			CostPerPlayer: division.CostPerPlayer,
			SanctionFee:   division.SanctionFee,
		})
	}
	return out, nil
}

func (s *SignupService) setting(ctx context.Context, settingID string) (league.Setting, error) {
	settingID = strings.TrimSpace(settingID)
	if settingID == "" {
		return league.Setting{}, fmt.Errorf("%w: league setting is required", ErrInvalidInput)
	}
	setting, exists, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return league.Setting{}, fmt.Errorf("get league setting: %w", err)
	}
	if !exists {
		return league.Setting{}, fmt.Errorf("%w: league setting %s", ErrNotFound, settingID)
	}
	return setting, nil
}

func (s *SignupService) division(ctx context.Context, settingID, divisionID string) (league.Division, error) {
	divisions, err := s.divisions.ListBySetting(ctx, settingID)
	if err != nil {
		return league.Division{}, fmt.Errorf("list divisions: %w", err)
	}
	for _, division := range divisions {
		if division.ID == divisionID {
			return division, nil
		}
	}
	return league.Division{}, fmt.Errorf("%w: division %s", ErrNotFound, divisionID)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
