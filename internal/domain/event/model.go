package event

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

const DateLayout = "2006-01-02"

const (
	DefaultGames       = "501/Cricket/Choice"
	DefaultDrawType    = "A/B Draw Handicapped"
	DefaultEntryFee    = 10.0
	DefaultSignupStart = "18:30"
	DefaultSignupEnd   = "19:00"
)

// Event is a one-off tournament night on the club calendar.
type Event struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Games        string   `json:"games" validate:"required"`
	DrawType     string   `json:"draw_type" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	EntryFee     *float64 `json:"entry_fee" validate:"required"`
	SpecialEvent string   `json:"special_event"`
	SignupStart  string   `json:"signup_start" validate:"required"`
	SignupEnd    string   `json:"signup_end" validate:"required"`
}

func (e Event) RecordID() string { return e.ID }

func (e Event) WithID(id string) Event {
	e.ID = id
	return e
}

// IsPast reports whether the event date is before the day of today.
func (e Event) IsPast(today time.Time) bool {
	date, err := time.ParseInLocation(DateLayout, e.Date, today.Location())
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	return date.Before(time.Date(y, m, d, 0, 0, 0, 0, today.Location()))
}

// Matches does a case-insensitive substring search across every field.
func (e Event) Matches(query string) bool {
	query = strings.ToLower(query)
	if query == "" {
		return true
	}
	fields := []string{e.ID, e.Title, e.Date, e.Games, e.DrawType, e.Location, e.SpecialEvent, e.SignupStart, e.SignupEnd}
	if e.EntryFee != nil {
		fields = append(fields, strconv.FormatFloat(*e.EntryFee, 'f', -1, 64))
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Draft returns the defaults for a new event dated today.
func Draft(today time.Time) func(id string) Event {
	return func(id string) Event {
		fee := DefaultEntryFee
		return Event{
			ID:          id,
			Date:        today.Format(DateLayout),
			Games:       DefaultGames,
			DrawType:    DefaultDrawType,
			EntryFee:    &fee,
			SignupStart: DefaultSignupStart,
			SignupEnd:   DefaultSignupEnd,
		}
	}
}

type Patch struct {
	Title        *string                      `json:"title"`
	Date         *string                      `json:"date"`
	Games        *string                      `json:"games"`
	DrawType     *string                      `json:"draw_type"`
	Location     *string                      `json:"location"`
	EntryFee     editbuffer.Nullable[float64] `json:"entry_fee"`
	SpecialEvent *string                      `json:"special_event"`
	SignupStart  *string                      `json:"signup_start"`
	SignupEnd    *string                      `json:"signup_end"`
}

func (p Patch) Apply(e Event) Event {
	editbuffer.Assign(&e.Title, p.Title)
	editbuffer.Assign(&e.Date, p.Date)
	editbuffer.Assign(&e.Games, p.Games)
	editbuffer.Assign(&e.DrawType, p.DrawType)
	editbuffer.Assign(&e.Location, p.Location)
	p.EntryFee.AssignTo(&e.EntryFee)
	editbuffer.Assign(&e.SpecialEvent, p.SpecialEvent)
	editbuffer.Assign(&e.SignupStart, p.SignupStart)
	editbuffer.Assign(&e.SignupEnd, p.SignupEnd)
	return e
}

// Visible filters rows for the admin list: query match, and past events
// only when showPast is set.
func Visible(rows []Event, query string, showPast bool, today time.Time) []Event {
	out := make([]Event, 0, len(rows))
	for _, row := range rows {
		if !row.Matches(query) {
			continue
		}
		if !showPast && row.IsPast(today) {
			continue
		}
		out = append(out, row)
	}
	return out
}
