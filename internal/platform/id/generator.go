package id

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// DraftPrefix marks ids of records that have not been persisted yet.
const DraftPrefix = "new-"

// Generator creates opaque IDs.
type Generator interface {
	NewID() (string, error)
}

// DraftGenerator issues timestamp-derived draft ids ("new-<unix millis>").
// Two calls within the same millisecond still produce distinct ids.
type DraftGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewDraftGenerator() *DraftGenerator {
	return &DraftGenerator{now: time.Now}
}

func (g *DraftGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UnixMilli()
	if stamp <= g.last {
		stamp = g.last + 1
	}
	g.last = stamp

	return DraftPrefix + strconv.FormatInt(stamp, 10), nil
}

// IsDraft reports whether id was issued for an unsaved record.
func IsDraft(id string) bool {
	return strings.HasPrefix(id, DraftPrefix)
}
