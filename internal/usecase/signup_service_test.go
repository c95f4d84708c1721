package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/memory"
	signupmock "github.com/riskibarqy/club-backoffice/internal/mocks/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newTestSignupService(stores WorkspaceStores, notifier SignupNotifier) *SignupService {
	return NewSignupService(SignupServiceDeps{
		Settings:  stores.Settings,
		Divisions: stores.Divisions,
		Locations: stores.Locations,
		Signups:   stores.Signups,
		Notifier:  notifier,
		Payments:  signup.PaymentLinks{VenmoHandle: "behemothdc", PaypalHandle: "behemothdc"},
		Logger:    logging.NewNop(),
	})
}

func singlesForm(divisionID string) signup.Form {
	return signup.Form{
		Captain:       signup.Player{Name: " Amy ", ADL: "1234", Email: "amy@example.com", Phone: "503-555-1234"},
		DivisionID:    divisionID,
		PaymentMethod: signup.PaymentVenmo,
		AcceptedTerms: true,
	}
}

func assertRejected(t *testing.T, err error, want string) {
	t.Helper()

	var formErr *signup.FormError
	if !errors.As(err, &formErr) {
		t.Fatalf("expected form rejection %q, got %v", want, err)
	}
	if formErr.Message != want {
		t.Fatalf("expected %q, got %q", want, formErr.Message)
	}
}

func TestSignupService_ListOpenAndForm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	svc := newTestSignupService(newMemoryStores(now), nil)

	open, err := svc.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected both seeded leagues open, got %d", len(open))
	}

	svc.now = func() time.Time { return now.AddDate(0, 3, 0) }
	if open, err := svc.ListOpen(ctx); err != nil || len(open) != 0 {
		t.Fatalf("expected no open leagues later, got %d (%v)", len(open), err)
	}

	form, err := svc.Form(ctx, memory.SeedSettingSingles)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Open || form.Doubles || len(form.Divisions) != 2 || len(form.Locations) != 2 {
		t.Fatalf("unexpected form: %+v", form)
	}
	if form.Divisions[1].Label != "Open - No cap Tuesday 7:00 PM" {
		t.Fatalf("unexpected division label: %q", form.Divisions[1].Label)
	}
}

func TestSignupService_Quote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestSignupService(newMemoryStores(time.Now()), nil)

	quote, err := svc.Quote(ctx, memory.SeedSettingSingles, QuoteInput{})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Total != 0 {
		t.Fatalf("expected nothing due without a division, got %v", quote.Total)
	}

	quote, err = svc.Quote(ctx, memory.SeedSettingSingles, QuoteInput{DivisionID: memory.SeedDivisionOpen})
	if err != nil {
		t.Fatalf("quote singles: %v", err)
	}
	if quote.Total != 15 || quote.Formatted != "15.00" {
		t.Fatalf("unexpected singles quote: %+v", quote)
	}

	quote, err = svc.Quote(ctx, memory.SeedSettingDoubles, QuoteInput{DivisionID: memory.SeedDivisionDoubles})
	if err != nil {
		t.Fatalf("quote doubles: %v", err)
	}
	if quote.Total != 50 {
		t.Fatalf("expected two sanction fees, got %v", quote.Total)
	}

	if _, err := svc.Quote(ctx, memory.SeedSettingSingles, QuoteInput{DivisionID: memory.SeedDivisionDoubles}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a division of another league, got %v", err)
	}
}

func TestSignupService_SubmitSingles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newMemoryStores(time.Now())
	notifier := &recordingNotifier{}
	svc := newTestSignupService(stores, notifier)

	out, err := svc.Submit(ctx, memory.SeedSettingSingles, singlesForm(memory.SeedDivisionOpen))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Signup.ID == "" || out.Signup.TeamName != "Amy (Solo)" || out.Signup.CaptainPhone != "(503) 555-1234" {
		t.Fatalf("unexpected signup: %+v", out.Signup)
	}
	if out.AmountDue != "15.00" {
		t.Fatalf("unexpected amount due: %q", out.AmountDue)
	}
	if out.PaymentURL != "https://venmo.com/behemothdc?txn=pay&amount=15.00&note=League%20Signup%3A%20Amy" {
		t.Fatalf("unexpected payment url: %s", out.PaymentURL)
	}

	stored, err := stores.Signups.ListBySetting(ctx, memory.SeedSettingSingles)
	if err != nil {
		t.Fatalf("list stored: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != out.Signup.ID {
		t.Fatalf("expected stored signup, got %+v", stored)
	}

	if len(notifier.notices) != 1 || notifier.notices[0].LeagueName != "Fall Singles" || notifier.notices[0].PaymentURL != out.PaymentURL {
		t.Fatalf("unexpected notices: %+v", notifier.notices)
	}
}

func TestSignupService_SubmitDoubles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestSignupService(newMemoryStores(time.Now()), nil)

	form := signup.Form{
		Captain:       signup.Player{Name: "Amy", ADL: "1", Email: "amy@example.com", Phone: "5035551234", PaidNDA: true},
		Teammate:      &signup.Player{Name: "Ben", ADL: "2", Email: "ben@example.com", Phone: "5035554321"},
		TeamName:      "Bullseyes",
		DivisionID:    memory.SeedDivisionDoubles,
		PaymentMethod: signup.PaymentPaypal,
		AcceptedTerms: true,
	}
	out, err := svc.Submit(ctx, memory.SeedSettingDoubles, form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.AmountDue != "40.00" || out.Signup.TeammateName != "Ben" {
		t.Fatalf("unexpected doubles result: %+v", out)
	}
	if out.PaymentURL != "https://paypal.me/behemothdc/40.00?currencyCode=USD&note=League%20Signup%3A%20Amy" {
		t.Fatalf("unexpected payment url: %s", out.PaymentURL)
	}

	form.Teammate = nil
	_, err = svc.Submit(ctx, memory.SeedSettingDoubles, form)
	assertRejected(t, err, signup.MessageRequired)
}

func TestSignupService_SubmitRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	svc := newTestSignupService(newMemoryStores(now), nil)

	_, err := svc.Submit(ctx, memory.SeedSettingSingles, singlesForm(memory.SeedDivisionDoubles))
	assertRejected(t, err, signup.MessageSelectLeague)

	badPhone := singlesForm(memory.SeedDivisionOpen)
	badPhone.Captain.Phone = "555-1234"
	_, err = svc.Submit(ctx, memory.SeedSettingSingles, badPhone)
	assertRejected(t, err, signup.MessageContact)

	if _, err := svc.Submit(ctx, "missing", singlesForm(memory.SeedDivisionOpen)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	svc.now = func() time.Time { return now.AddDate(0, 3, 0) }
	_, err = svc.Submit(ctx, memory.SeedSettingSingles, singlesForm(memory.SeedDivisionOpen))
	assertRejected(t, err, signup.MessageClosed)
}

func TestSignupService_NotifierFailureDoesNotFailSubmit(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{err: ErrDependencyUnavailable}
	svc := newTestSignupService(newMemoryStores(time.Now()), notifier)

	if _, err := svc.Submit(context.Background(), memory.SeedSettingSingles, singlesForm(memory.SeedDivisionOpen)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(notifier.notices) != 1 {
		t.Fatalf("expected one notice attempt, got %d", len(notifier.notices))
	}
}

func TestSignupService_SubmitStoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	stores := newMemoryStores(time.Now())
	signups := signupmock.NewRepository(t)
	signups.
		On("Create", mock.Anything, mock.MatchedBy(func(item signup.Signup) bool {
			return item.SettingID == memory.SeedSettingSingles && item.TotalFeesDue == 15
		})).
		Return(signup.Signup{}, errStoreDown).
		Once()
	stores.Signups = signups

	_, err := newTestSignupService(stores, nil).Submit(context.Background(), memory.SeedSettingSingles, singlesForm(memory.SeedDivisionOpen))
	assertRejected(t, err, signup.MessageSubmitFailed)
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error in chain, got %v", err)
	}
}

func TestSignupService_CheckContact(t *testing.T) {
	t.Parallel()

	svc := newTestSignupService(newMemoryStores(time.Now()), nil)

	got := svc.CheckContact("5035551", "amy@")
	if got.Phone != "(503) 555-1" || got.PhoneValid || got.PhoneError != signup.PhoneErrorMessage {
		t.Fatalf("unexpected phone check: %+v", got)
	}
	if got.EmailValid || got.EmailError != signup.EmailErrorMessage {
		t.Fatalf("unexpected email check: %+v", got)
	}

	got = svc.CheckContact("", "")
	if got.PhoneError != "" || got.EmailError != "" {
		t.Fatalf("expected empty values to stay unflagged, got %+v", got)
	}
}
