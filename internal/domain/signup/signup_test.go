package signup

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
)

func TestTotalFee(t *testing.T) {
	t.Parallel()

	division := &league.Division{ID: "d1", CostPerPlayer: 15, SanctionFee: 10}

	if got := TotalFee(division, false, true, false); got != 15 {
		t.Fatalf("singles fee = %v, want 15", got)
	}
	if got := FormatAmount(TotalFee(division, false, true, false)); got != "15.00" {
		t.Fatalf("formatted singles fee = %q, want 15.00", got)
	}
	if got := TotalFee(nil, false, true, false); got != 0 {
		t.Fatalf("fee without division = %v, want 0", got)
	}
	if got := TotalFee(division, true, false, false); got != 50 {
		t.Fatalf("doubles fee with two sanctions = %v, want 50", got)
	}
	if got := TotalFee(division, true, true, false); got != 40 {
		t.Fatalf("doubles fee with one sanction = %v, want 40", got)
	}
	if got := TotalFee(division, true, true, true); got != 30 {
		t.Fatalf("doubles fee with no sanction = %v, want 30", got)
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	if !IsValidPhone("5035551234") {
		t.Fatalf("expected 10 digits to be valid")
	}
	if IsValidPhone("503-555-123") {
		t.Fatalf("expected 9 digits to be invalid")
	}

	cases := map[string]string{
		"503":            "503",
		"5035":           "(503) 5",
		"503555":         "(503) 555",
		"5035551":        "(503) 555-1",
		"5035551234":     "(503) 555-1234",
		"(503) 555-1234": "(503) 555-1234",
		"503555123499":   "(503) 555-1234",
		"":               "",
	}
	for in, want := range cases {
		if got := FormatPhone(in); got != want {
			t.Fatalf("FormatPhone(%q) = %q, want %q", in, got, want)
		}
	}

	if PhoneError("(503) 555-12") != PhoneErrorMessage || PhoneError("") != "" {
		t.Fatalf("unexpected inline phone errors")
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	if !IsValidEmail("captain@example.com") {
		t.Fatalf("expected valid email")
	}
	if IsValidEmail("captain@") || IsValidEmail("") {
		t.Fatalf("expected invalid email")
	}
	if EmailError("nope") != EmailErrorMessage || EmailError("") != "" {
		t.Fatalf("unexpected inline email errors")
	}
}

func TestEscapeCSV(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`Smith, "Bob"`: `"Smith, ""Bob"""`,
		"plain":        "plain",
		"two\nlines":   "\"two\nlines\"",
		"":             "",
	}
	for in, want := range cases {
		if got := EscapeCSV(in); got != want {
			t.Fatalf("EscapeCSV(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	rows := []Signup{
		{
			ID:             "s1",
			CreatedAt:      time.Date(2026, 3, 2, 18, 4, 5, 0, time.UTC),
			TeamName:       `Smith, "Bob" (Solo)`,
			CaptainName:    "Bob Smith",
			CaptainPaidNDA: true,
			PlayPreference: PlayEither,
			TotalFeesDue:   15,
			PaymentMethod:  PaymentVenmo,
			Division:       &league.Division{Name: "Open", DayOfWeek: "Tuesday", StartTime: "19:00"},
		},
		{ID: "s2", CreatedAt: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), TotalFeesDue: 42.5},
	}

	out := string(ExportCSV(rows))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(ExportHeader, ",") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	wantFirst := `s1,2026-03-02T18:04:05Z,"Smith, ""Bob"" (Solo)",Open - Tuesday 7:00 PM,Bob Smith,,,,true,,,,,false,,,Either,15,Venmo,false`
	if lines[1] != wantFirst {
		t.Fatalf("unexpected first row:\n got %s\nwant %s", lines[1], wantFirst)
	}
	if !strings.Contains(lines[2], "(unknown)") || !strings.Contains(lines[2], ",42.5,") {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
	if len(ExportHeader) != 20 {
		t.Fatalf("expected 20 columns, got %d", len(ExportHeader))
	}
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	if got := ExportFilename("Fall Singles", now); got != "Fall Singles-signups-2026-09-01.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := ExportFilename("", now); got != "league-signups-2026-09-01.csv" {
		t.Fatalf("unexpected fallback filename: %q", got)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	rows := []Signup{
		{ID: "s1", TeamName: "Bullseyes", CaptainEmail: "amy@example.com", ConfirmedPaid: true},
		{ID: "s2", TeamName: "Triple Twenty", HomeLocation1: "Kelly's"},
		{ID: "s3", TeamName: "Shanghai", Division: &league.Division{Name: "Open", DayOfWeek: "Tuesday"}},
	}

	if got := Filter(rows, "", true); len(got) != 2 || got[0].ID != "s2" {
		t.Fatalf("unexpected unconfirmed rows: %+v", got)
	}
	if got := Filter(rows, "KELLY", false); len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("unexpected search result: %+v", got)
	}
	if got := Filter(rows, "tuesday", false); len(got) != 1 || got[0].ID != "s3" {
		t.Fatalf("expected division label to be searchable: %+v", got)
	}
	if got := Filter(rows, "unknown", false); len(got) != 2 {
		t.Fatalf("expected missing divisions to match (unknown), got %+v", got)
	}
}

func TestPaymentLinks(t *testing.T) {
	t.Parallel()

	links := PaymentLinks{VenmoHandle: "behemothdc", PaypalHandle: "behemothdc"}

	venmo := links.URL(PaymentVenmo, 15, "Bob O'Neil")
	if venmo != "https://venmo.com/behemothdc?txn=pay&amount=15.00&note=League%20Signup%3A%20Bob%20O'Neil" {
		t.Fatalf("unexpected venmo url: %s", venmo)
	}
	paypal := links.URL(PaymentPaypal, 42.5, "Amy")
	if paypal != "https://paypal.me/behemothdc/42.50?currencyCode=USD&note=League%20Signup%3A%20Amy" {
		t.Fatalf("unexpected paypal url: %s", paypal)
	}
}

func TestFormCheckOrder(t *testing.T) {
	t.Parallel()

	valid := Form{
		Captain:       Player{Name: "Amy", ADL: "1234", Email: "amy@example.com", Phone: "5035551234"},
		DivisionID:    "d1",
		PaymentMethod: PaymentVenmo,
		AcceptedTerms: true,
	}.Normalize()

	if err := valid.Check(false); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	noDivision := valid
	noDivision.DivisionID = ""
	assertFormMessage(t, noDivision.Check(false), MessageSelectLeague)

	badPhone := valid
	badPhone.DivisionID = ""
	badPhone.Captain.Phone = FormatPhone("503-555-123")
	assertFormMessage(t, badPhone.Check(false), MessageSelectLeague)
	badPhone.DivisionID = "d1"
	assertFormMessage(t, badPhone.Check(false), MessageContact)

	noTerms := valid
	noTerms.AcceptedTerms = false
	assertFormMessage(t, noTerms.Check(false), MessageRequired)

	assertFormMessage(t, valid.Check(true), MessageRequired)
}

func TestFormBuildSingles(t *testing.T) {
	t.Parallel()

	form := Form{
		Captain:       Player{Name: "Amy", ADL: "1234", Email: "amy@example.com", Phone: "5035551234"},
		DivisionID:    "d1",
		PaymentMethod: PaymentPaypal,
		AcceptedTerms: true,
	}.Normalize()

	setting := league.Setting{ID: "ls1", FormType: league.FormSingles}
	division := league.Division{ID: "d1", CostPerPlayer: 15, SanctionFee: 10}

	got := form.Build(setting, division)
	if got.TeamName != "Amy (Solo)" || !got.CaptainPaidNDA || got.TeammateName != "" {
		t.Fatalf("unexpected singles signup: %+v", got)
	}
	if got.CaptainPhone != "(503) 555-1234" || got.PlayPreference != PlayEither {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.TotalFeesDue != 15 || got.SettingID != "ls1" || got.DivisionID != "d1" {
		t.Fatalf("unexpected fee or references: %+v", got)
	}
}

func TestFormBuildDoubles(t *testing.T) {
	t.Parallel()

	form := Form{
		Captain:       Player{Name: "Amy", ADL: "1", Email: "amy@example.com", Phone: "5035551234", PaidNDA: true},
		Teammate:      &Player{Name: "Ben", ADL: "2", Email: "ben@example.com", Phone: "5035554321"},
		TeamName:      "Bullseyes",
		DivisionID:    "d1",
		PaymentMethod: PaymentVenmo,
		AcceptedTerms: true,
	}.Normalize()
	if err := form.Check(true); err != nil {
		t.Fatalf("check: %v", err)
	}

	got := form.Build(league.Setting{ID: "ls1", FormType: league.FormDoubles}, league.Division{ID: "d1", CostPerPlayer: 15, SanctionFee: 10})
	if got.TeamName != "Bullseyes" || got.TeammateName != "Ben" || got.TeammatePhone != "(503) 555-4321" {
		t.Fatalf("unexpected doubles signup: %+v", got)
	}
	if got.TotalFeesDue != 40 {
		t.Fatalf("expected 40 due, got %v", got.TotalFeesDue)
	}
}

func assertFormMessage(t *testing.T, err error, want string) {
	t.Helper()

	var formErr *FormError
	if !errors.As(err, &formErr) {
		t.Fatalf("expected FormError %q, got %v", want, err)
	}
	if formErr.Message != want {
		t.Fatalf("expected %q, got %q", want, formErr.Message)
	}
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected in chain")
	}
}
