package league

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

const DateLayout = "2006-01-02"

const (
	FormSingles = "SinglesForm"
	FormDoubles = "DoublesForm"
)

const (
	DefaultSanctionFee = 10.0
	DefaultLeagueType  = "Remote"
)

// Setting is a league signup season. Divisions belong to a setting and
// flights belong to a division.
type Setting struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	SignupStart string `json:"signup_start" validate:"required,datetime=2006-01-02"`
	SignupClose string `json:"signup_close" validate:"required,datetime=2006-01-02"`
	LeagueInfo  string `json:"league_info"`
	FormType    string `json:"form_type" validate:"required,oneof=SinglesForm DoublesForm"`
}

func (s Setting) RecordID() string { return s.ID }

func (s Setting) WithID(id string) Setting {
	s.ID = id
	return s
}

// IsActive reports whether now falls inside the signup window. Both dates
// are read as midnight UTC.
func (s Setting) IsActive(now time.Time) bool {
	start, err := time.Parse(DateLayout, s.SignupStart)
	if err != nil {
		return false
	}
	closeAt, err := time.Parse(DateLayout, s.SignupClose)
	if err != nil {
		return false
	}
	return !now.Before(start) && !now.After(closeAt)
}

func (s Setting) IsDoubles() bool {
	return s.FormType == FormDoubles
}

func DraftSetting(id string) Setting {
	return Setting{ID: id}
}

type SettingPatch struct {
	Name        *string `json:"name"`
	SignupStart *string `json:"signup_start"`
	SignupClose *string `json:"signup_close"`
	LeagueInfo  *string `json:"league_info"`
	FormType    *string `json:"form_type"`
}

func (p SettingPatch) Apply(s Setting) Setting {
	editbuffer.Assign(&s.Name, p.Name)
	editbuffer.Assign(&s.SignupStart, p.SignupStart)
	editbuffer.Assign(&s.SignupClose, p.SignupClose)
	editbuffer.Assign(&s.LeagueInfo, p.LeagueInfo)
	editbuffer.Assign(&s.FormType, p.FormType)
	return s
}

// Division is a skill bracket of a league season with its own night,
// start time and fees.
type Division struct {
	ID            string  `json:"id"`
	SettingID     string  `json:"signup_settings_id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	CapDetails    string  `json:"cap_details" validate:"required"`
	DayOfWeek     string  `json:"day_of_week" validate:"required"`
	StartTime     string  `json:"start_time" validate:"required"`
	CostPerPlayer float64 `json:"cost_per_player" validate:"gte=0"`
	SanctionFee   float64 `json:"sanction_fee" validate:"gte=0"`
}

func (d Division) RecordID() string { return d.ID }

func (d Division) WithID(id string) Division {
	d.ID = id
	return d
}

// SelectLabel is the admin picker text: "<name> - <day> <time>".
func (d Division) SelectLabel() string {
	name := d.Name
	if name == "" {
		name = "(No Name)"
	}
	extra := joinNonEmpty(strings.TrimSpace(d.DayOfWeek), FormatTime12h(strings.TrimSpace(d.StartTime)))
	if extra == "" {
		return name
	}
	return name + " - " + extra
}

// FormLabel is the signup form option text, cap details included.
func (d Division) FormLabel() string {
	return d.Name + " - " + d.CapDetails + " " + d.DayOfWeek + " " + FormatTime12h(d.StartTime)
}

// ReviewLabel is the division column of the signup review table.
func (d Division) ReviewLabel() string {
	return strings.TrimSpace(d.Name + " - " + d.DayOfWeek + " " + FormatTime12h(d.StartTime))
}

func DraftDivision(id string) Division {
	return Division{ID: id, SanctionFee: DefaultSanctionFee}
}

type DivisionPatch struct {
	Name          *string  `json:"name"`
	CapDetails    *string  `json:"cap_details"`
	DayOfWeek     *string  `json:"day_of_week"`
	StartTime     *string  `json:"start_time"`
	CostPerPlayer *float64 `json:"cost_per_player"`
	SanctionFee   *float64 `json:"sanction_fee"`
}

func (p DivisionPatch) Apply(d Division) Division {
	editbuffer.Assign(&d.Name, p.Name)
	editbuffer.Assign(&d.CapDetails, p.CapDetails)
	editbuffer.Assign(&d.DayOfWeek, p.DayOfWeek)
	editbuffer.Assign(&d.StartTime, p.StartTime)
	editbuffer.Assign(&d.CostPerPlayer, p.CostPerPlayer)
	editbuffer.Assign(&d.SanctionFee, p.SanctionFee)
	return d
}

// Flight is a playing group inside a division.
type Flight struct {
	ID           string `json:"id"`
	DivisionID   string `json:"league_id" validate:"required"`
	FlightName   string `json:"flight_name" validate:"required"`
	ScheduleURL  string `json:"schedule_url"`
	StandingsURL string `json:"standings_url"`
	PlayersURL   string `json:"players_url"`
	LeagueType   string `json:"league_type" validate:"required"`
}

func (f Flight) RecordID() string { return f.ID }

func (f Flight) WithID(id string) Flight {
	f.ID = id
	return f
}

func DraftFlight(id string) Flight {
	return Flight{ID: id, LeagueType: DefaultLeagueType}
}

type FlightPatch struct {
	FlightName   *string `json:"flight_name"`
	ScheduleURL  *string `json:"schedule_url"`
	StandingsURL *string `json:"standings_url"`
	PlayersURL   *string `json:"players_url"`
	LeagueType   *string `json:"league_type"`
}

func (p FlightPatch) Apply(f Flight) Flight {
	editbuffer.Assign(&f.FlightName, p.FlightName)
	editbuffer.Assign(&f.ScheduleURL, p.ScheduleURL)
	editbuffer.Assign(&f.StandingsURL, p.StandingsURL)
	editbuffer.Assign(&f.PlayersURL, p.PlayersURL)
	editbuffer.Assign(&f.LeagueType, p.LeagueType)
	return f
}

// TrimStartTime cuts a stored time such as "19:00:00" down to "19:00".
func TrimStartTime(raw string) string {
	if len(raw) > 5 {
		return raw[:5]
	}
	return raw
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// FormatTime12h renders "13:05" as "1:05 PM". Empty input gives empty
// output and unparseable input is returned unchanged.
func FormatTime12h(raw string) string {
	if raw == "" {
		return ""
	}
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	hour, _ := strconv.Atoi(m[1])
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return strconv.Itoa(hour) + ":" + m[2] + " " + suffix
}

func SortDivisions(items []Division) {
	slices.SortStableFunc(items, func(a, b Division) int { return cmp.Compare(a.Name, b.Name) })
}

func SortFlights(items []Flight) {
	slices.SortStableFunc(items, func(a, b Flight) int { return cmp.Compare(a.FlightName, b.FlightName) })
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, " ")
}
