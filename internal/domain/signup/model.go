package signup

import (
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
)

const (
	PaymentVenmo  = "Venmo"
	PaymentPaypal = "Paypal"
)

const (
	PlayRemote   = "Remote"
	PlayInPerson = "In-person"
	PlayEither   = "Either"
)

// Signup is one league registration: a captain and, for doubles, a
// teammate, with the fee computed at submission time.
type Signup struct {
	ID         string `json:"id"`
	SettingID  string `json:"signup_settings_id"`
	DivisionID string `json:"league_details_id"`
	TeamName   string `json:"team_name"`

	CaptainName    string `json:"captain_name"`
	CaptainADL     string `json:"captain_adl_number"`
	CaptainEmail   string `json:"captain_email"`
	CaptainPhone   string `json:"captain_phone_number"`
	CaptainPaidNDA bool   `json:"captain_paid_nda"`

	TeammateName    string `json:"teammate_name"`
	TeammateADL     string `json:"teammate_adl_number"`
	TeammateEmail   string `json:"teammate_email"`
	TeammatePhone   string `json:"teammate_phone_number"`
	TeammatePaidNDA bool   `json:"teammate_paid_nda"`

	HomeLocation1  string    `json:"home_location_1"`
	HomeLocation2  string    `json:"home_location_2"`
	PlayPreference string    `json:"play_preference"`
	TotalFeesDue   float64   `json:"total_fees_due"`
	PaymentMethod  string    `json:"payment_method"`
	ConfirmedPaid  bool      `json:"confirmed_paid"`
	CreatedAt      time.Time `json:"created_at"`

	// Division is the joined division row, nil when it no longer exists.
	Division *league.Division `json:"league_details,omitempty"`
}

func (s Signup) RecordID() string { return s.ID }

func (s Signup) WithID(id string) Signup {
	s.ID = id
	return s
}

// DivisionLabel is "<name> - <day> <time>", or "(unknown)" without a
// joined division.
func (s Signup) DivisionLabel() string {
	if s.Division == nil {
		return "(unknown)"
	}
	return s.Division.ReviewLabel()
}

// Matches searches the review columns case-insensitively.
func (s Signup) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	parts := []string{
		s.TeamName, s.DivisionLabel(),
		s.CaptainName, s.CaptainEmail, s.CaptainPhone,
		s.TeammateName, s.TeammateEmail, s.TeammatePhone,
		s.HomeLocation1, s.HomeLocation2, s.PlayPreference, s.PaymentMethod,
	}
	blob := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			blob = append(blob, part)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(blob, " ")), query)
}

// Filter is the review table view: search text plus "only unconfirmed".
func Filter(rows []Signup, query string, onlyUnconfirmed bool) []Signup {
	out := make([]Signup, 0, len(rows))
	for _, row := range rows {
		if onlyUnconfirmed && row.ConfirmedPaid {
			continue
		}
		if !row.Matches(query) {
			continue
		}
		out = append(out, row)
	}
	return out
}
