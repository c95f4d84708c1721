package announcement

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

const RequiredMessage = "Title and content are required."

const (
	PageHome      = "home"
	PageEvents    = "events"
	PageLeagues   = "leagues"
	PageLocations = "locations"
	PageStats     = "stats"
)

// AvailablePages lists the public pages an announcement can be shown on.
var AvailablePages = []string{PageHome, PageEvents, PageLeagues, PageLocations, PageStats}

// Announcement is a club notice rendered on one or more public pages.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Pages     []string  `json:"page"`
}

func (a Announcement) RecordID() string { return a.ID }

func (a Announcement) WithID(id string) Announcement {
	a.ID = id
	return a
}

// ToggleItem flips page membership, keeping the order pages were added in.
func (a Announcement) ToggleItem(field, item string) (Announcement, error) {
	if field != "page" && field != "pages" {
		return a, fmt.Errorf("%w: announcement.%s", editbuffer.ErrUnsupportedField, field)
	}
	if !IsKnownPage(item) {
		return a, fmt.Errorf("unknown page %q", item)
	}

	pages := make([]string, 0, len(a.Pages)+1)
	found := false
	for _, page := range a.Pages {
		if page == item {
			found = true
			continue
		}
		pages = append(pages, page)
	}
	if !found {
		pages = append(pages, item)
	}
	a.Pages = pages
	return a, nil
}

func (a Announcement) VisibleOn(page string) bool {
	return slices.Contains(a.Pages, page)
}

func IsKnownPage(page string) bool {
	return slices.Contains(AvailablePages, page)
}

// SplitPages parses the stored comma-delimited page list.
func SplitPages(raw string) []string {
	pages := make([]string, 0, len(AvailablePages))
	for _, part := range strings.Split(raw, ",") {
		if page := strings.TrimSpace(part); page != "" {
			pages = append(pages, page)
		}
	}
	return pages
}

func JoinPages(pages []string) string {
	return strings.Join(pages, ",")
}

// Draft returns the defaults for a new announcement written by author.
func Draft(author string) func(id string) Announcement {
	return func(id string) Announcement {
		return Announcement{ID: id, Author: author, Pages: []string{}}
	}
}

// Patch carries the editable announcement fields; nil fields are left as is.
type Patch struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Pages   *[]string `json:"page"`
}

func (p Patch) Apply(a Announcement) Announcement {
	editbuffer.Assign(&a.Title, p.Title)
	editbuffer.Assign(&a.Content, p.Content)
	if p.Pages != nil {
		a.Pages = append([]string{}, (*p.Pages)...)
	}
	return a
}
