package memory

import (
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/domain/event"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
)

// Seed is the initial content of a Store.
type Seed struct {
	Users         []user.AuthorizedUser
	Announcements []announcement.Announcement
	Events        []event.Event
	Locations     []location.Location
	Settings      []league.Setting
	Divisions     []league.Division
	Flights       []league.Flight
	Signups       []signup.Signup
}

// Store holds every table so deletes can cascade the way the schema does.
type Store struct {
	now func() time.Time

	users         *table[user.AuthorizedUser]
	announcements *table[announcement.Announcement]
	events        *table[event.Event]
	locations     *table[location.Location]
	settings      *table[league.Setting]
	divisions     *table[league.Division]
	flights       *table[league.Flight]
	signups       *table[signup.Signup]
}

func NewStore(seed Seed) *Store {
	return &Store{
		now:           time.Now,
		users:         newTable("authorized user", authorizedUserID, withAuthorizedUserID, seed.Users),
		announcements: newTable("announcement", announcement.Announcement.RecordID, announcement.Announcement.WithID, seed.Announcements),
		events:        newTable("event", event.Event.RecordID, event.Event.WithID, seed.Events),
		locations:     newTable("location", location.Location.RecordID, location.Location.WithID, seed.Locations),
		settings:      newTable("league setting", league.Setting.RecordID, league.Setting.WithID, seed.Settings),
		divisions:     newTable("division", league.Division.RecordID, league.Division.WithID, seed.Divisions),
		flights:       newTable("flight", league.Flight.RecordID, league.Flight.WithID, seed.Flights),
		signups:       newTable("signup", signup.Signup.RecordID, signup.Signup.WithID, seed.Signups),
	}
}

func authorizedUserID(u user.AuthorizedUser) string {
	return u.ID
}

func withAuthorizedUserID(u user.AuthorizedUser, id string) user.AuthorizedUser {
	u.ID = id
	return u
}

func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}

func byText(a, b string) int {
	return strings.Compare(a, b)
}
