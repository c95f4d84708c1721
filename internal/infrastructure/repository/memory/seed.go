package memory

import (
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/domain/event"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
)

const (
	SeedAdminUserID     = "00000000-0000-4000-8000-000000000001"
	SeedSettingSingles  = "10000000-0000-4000-8000-000000000001"
	SeedSettingDoubles  = "10000000-0000-4000-8000-000000000002"
	SeedDivisionOpen    = "20000000-0000-4000-8000-000000000001"
	SeedDivisionMixed   = "20000000-0000-4000-8000-000000000002"
	SeedDivisionDoubles = "20000000-0000-4000-8000-000000000003"
)

// DevSeed returns demo content with signup windows open around now.
func DevSeed(now time.Time) Seed {
	today := now.UTC().Format(event.DateLayout)
	inAMonth := now.UTC().AddDate(0, 1, 0).Format(event.DateLayout)
	nextWeek := now.UTC().AddDate(0, 0, 7).Format(event.DateLayout)
	fee := event.DefaultEntryFee
	lat, long := 45.5231, -122.6765

	return Seed{
		Users: []user.AuthorizedUser{
			{ID: SeedAdminUserID, Name: "Club Admin", Permissions: []string{user.PermissionAdmin}},
		},
		Announcements: []announcement.Announcement{
			{
				ID:        "30000000-0000-4000-8000-000000000001",
				Title:     "Fall leagues are open",
				Content:   "Signups for the **fall season** are open until the end of the month.",
				Author:    "Club Admin",
				CreatedAt: now.UTC().Add(-time.Hour),
				Pages:     []string{announcement.PageHome, announcement.PageLeagues},
			},
		},
		Events: []event.Event{
			{
				ID:          "40000000-0000-4000-8000-000000000001",
				Title:       "Friday Blind Draw",
				Date:        nextWeek,
				Games:       event.DefaultGames,
				DrawType:    event.DefaultDrawType,
				Location:    "The Dartboard Tavern",
				EntryFee:    &fee,
				SignupStart: event.DefaultSignupStart,
				SignupEnd:   event.DefaultSignupEnd,
			},
		},
		Locations: []location.Location{
			{
				ID:         "50000000-0000-4000-8000-000000000001",
				Name:       "The Dartboard Tavern",
				Address:    "123 Main St",
				Latitude:   &lat,
				Longitude:  &long,
				League:     true,
				LeagueNote: "Tuesdays only",
				CreatedAt:  now.UTC().Add(-48 * time.Hour),
			},
			{
				ID:        "50000000-0000-4000-8000-000000000002",
				Name:      "Bullseye Lounge",
				Address:   "77 Oak Ave",
				League:    true,
				CreatedAt: now.UTC().Add(-24 * time.Hour),
			},
		},
		Settings: []league.Setting{
			{ID: SeedSettingSingles, Name: "Fall Singles", SignupStart: today, SignupClose: inAMonth, FormType: league.FormSingles},
			{ID: SeedSettingDoubles, Name: "Fall Doubles", SignupStart: today, SignupClose: inAMonth, FormType: league.FormDoubles},
		},
		Divisions: []league.Division{
			{ID: SeedDivisionOpen, SettingID: SeedSettingSingles, Name: "Open", CapDetails: "No cap", DayOfWeek: "Tuesday", StartTime: "19:00", CostPerPlayer: 15, SanctionFee: league.DefaultSanctionFee},
			{ID: SeedDivisionMixed, SettingID: SeedSettingSingles, Name: "Mixed", CapDetails: "Cap 40", DayOfWeek: "Thursday", StartTime: "19:30", CostPerPlayer: 15, SanctionFee: league.DefaultSanctionFee},
			{ID: SeedDivisionDoubles, SettingID: SeedSettingDoubles, Name: "Doubles A", CapDetails: "Cap 50", DayOfWeek: "Wednesday", StartTime: "19:00", CostPerPlayer: 15, SanctionFee: league.DefaultSanctionFee},
		},
		Flights: []league.Flight{
			{ID: "60000000-0000-4000-8000-000000000001", DivisionID: SeedDivisionOpen, FlightName: "Flight A", LeagueType: league.DefaultLeagueType},
		},
	}
}
