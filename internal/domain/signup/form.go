package signup

import (
	"errors"
	"strings"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
)

const (
	MessageRequired     = "Please fill out all required fields."
	MessageSelectLeague = "Please select a league."
	MessageContact      = "Please correct any email or phone number errors."
	MessageSubmitFailed = "There was an error submitting your form. Please try again."
	MessageClosed       = "Signups for this league are closed."
)

var ErrRejected = errors.New("signup rejected")

// FormError is a submission rejected before anything is written.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

func (e *FormError) Unwrap() error { return ErrRejected }

// Player is the contact block of the captain or the teammate.
type Player struct {
	Name    string `json:"name"`
	ADL     string `json:"adl_number"`
	Email   string `json:"email"`
	Phone   string `json:"phone_number"`
	PaidNDA bool   `json:"paid_nda"`
}

// Form is the public signup submission.
type Form struct {
	Captain        Player  `json:"captain"`
	Teammate       *Player `json:"teammate,omitempty"`
	TeamName       string  `json:"team_name"`
	DivisionID     string  `json:"league_details_id"`
	HomeLocation1  string  `json:"home_location_1"`
	HomeLocation2  string  `json:"home_location_2"`
	PlayPreference string  `json:"play_preference"`
	PaymentMethod  string  `json:"payment_method"`
	AcceptedTerms  bool    `json:"accepted_terms"`
}

// Normalize trims text fields and formats phone numbers.
func (f Form) Normalize() Form {
	f.Captain = f.Captain.normalize()
	if f.Teammate != nil {
		mate := f.Teammate.normalize()
		f.Teammate = &mate
	}
	f.TeamName = strings.TrimSpace(f.TeamName)
	f.DivisionID = strings.TrimSpace(f.DivisionID)
	if strings.TrimSpace(f.PlayPreference) == "" {
		f.PlayPreference = PlayEither
	}
	return f
}

func (p Player) normalize() Player {
	p.Name = strings.TrimSpace(p.Name)
	p.ADL = strings.TrimSpace(p.ADL)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = FormatPhone(p.Phone)
	return p
}

// Check validates a normalized form in the order the form reports
// problems: missing fields, then division choice, then contact details.
func (f Form) Check(doubles bool) error {
	if !f.Captain.complete() || f.PaymentMethod == "" || !f.AcceptedTerms {
		return &FormError{Message: MessageRequired}
	}
	if doubles && (f.Teammate == nil || !f.Teammate.complete() || f.TeamName == "") {
		return &FormError{Message: MessageRequired}
	}
	if f.DivisionID == "" {
		return &FormError{Message: MessageSelectLeague}
	}
	if !f.Captain.contactValid() {
		return &FormError{Message: MessageContact}
	}
	if doubles && !f.Teammate.contactValid() {
		return &FormError{Message: MessageContact}
	}
	return nil
}

func (p Player) complete() bool {
	return p.Name != "" && p.ADL != "" && p.Email != "" && p.Phone != ""
}

func (p Player) contactValid() bool {
	return IsValidEmail(p.Email) && IsValidPhone(p.Phone)
}

// Build turns a checked form into the row to insert. Singles entries are
// named after the player and carry no teammate or sanction fee.
func (f Form) Build(setting league.Setting, division league.Division) Signup {
	doubles := setting.IsDoubles()
	out := Signup{
		SettingID:      setting.ID,
		DivisionID:     division.ID,
		CaptainName:    f.Captain.Name,
		CaptainADL:     f.Captain.ADL,
		CaptainEmail:   f.Captain.Email,
		CaptainPhone:   f.Captain.Phone,
		HomeLocation1:  f.HomeLocation1,
		HomeLocation2:  f.HomeLocation2,
		PlayPreference: f.PlayPreference,
		PaymentMethod:  f.PaymentMethod,
	}

	if !doubles {
		out.TeamName = f.Captain.Name + " (Solo)"
		out.CaptainPaidNDA = true
		out.TotalFeesDue = TotalFee(&division, false, true, false)
		return out
	}

	out.TeamName = f.TeamName
	out.CaptainPaidNDA = f.Captain.PaidNDA
	if f.Teammate != nil {
		out.TeammateName = f.Teammate.Name
		out.TeammateADL = f.Teammate.ADL
		out.TeammateEmail = f.Teammate.Email
		out.TeammatePhone = f.Teammate.Phone
		out.TeammatePaidNDA = f.Teammate.PaidNDA
	}
	out.TotalFeesDue = TotalFee(&division, true, out.CaptainPaidNDA, out.TeammatePaidNDA)
	return out
}
