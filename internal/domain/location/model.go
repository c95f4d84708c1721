package location

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

const RequiredMessage = "Name and address are required."

// Location is a venue hosting events or league play.
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	Details     string    `json:"details"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	MapEmbedURL string    `json:"map_embed_url"`
	IsNew       bool      `json:"is_new"`
	League      bool      `json:"league"`
	LeagueNote  string    `json:"league_note"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l Location) RecordID() string { return l.ID }

func (l Location) WithID(id string) Location {
	l.ID = id
	return l
}

// Label is the signup form option text for a league venue.
func (l Location) Label() string {
	if l.LeagueNote == "" {
		return l.Name
	}
	return l.Name + " — " + l.LeagueNote
}

func (l Location) Matches(query string) bool {
	query = strings.ToLower(query)
	if query == "" {
		return true
	}
	fields := []string{
		l.ID, l.Name, l.Address, l.Details, l.MapEmbedURL, l.LeagueNote,
		strconv.FormatBool(l.IsNew), strconv.FormatBool(l.League),
	}
	if l.Latitude != nil {
		fields = append(fields, strconv.FormatFloat(*l.Latitude, 'f', -1, 64))
	}
	if l.Longitude != nil {
		fields = append(fields, strconv.FormatFloat(*l.Longitude, 'f', -1, 64))
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Draft returns the defaults for a new venue; new venues host league play.
func Draft(id string) Location {
	return Location{ID: id, League: true}
}

type Patch struct {
	Name        *string                      `json:"name"`
	Address     *string                      `json:"address"`
	Details     *string                      `json:"details"`
	Latitude    editbuffer.Nullable[float64] `json:"latitude"`
	Longitude   editbuffer.Nullable[float64] `json:"longitude"`
	MapEmbedURL *string                      `json:"map_embed_url"`
	IsNew       *bool                        `json:"is_new"`
	League      *bool                        `json:"league"`
	LeagueNote  *string                      `json:"league_note"`
}

func (p Patch) Apply(l Location) Location {
	editbuffer.Assign(&l.Name, p.Name)
	editbuffer.Assign(&l.Address, p.Address)
	editbuffer.Assign(&l.Details, p.Details)
	p.Latitude.AssignTo(&l.Latitude)
	p.Longitude.AssignTo(&l.Longitude)
	editbuffer.Assign(&l.MapEmbedURL, p.MapEmbedURL)
	editbuffer.Assign(&l.IsNew, p.IsNew)
	editbuffer.Assign(&l.League, p.League)
	editbuffer.Assign(&l.LeagueNote, p.LeagueNote)
	return l
}

func Filter(rows []Location, query string) []Location {
	out := make([]Location, 0, len(rows))
	for _, row := range rows {
		if row.Matches(query) {
			out = append(out, row)
		}
	}
	return out
}
