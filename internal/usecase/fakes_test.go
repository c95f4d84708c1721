package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/riskibarqy/club-backoffice/internal/domain/event"
)

var errStoreDown = errors.New("store unavailable")

type failingEvents struct{}

func (failingEvents) List(context.Context) ([]event.Event, error) {
	return nil, errStoreDown
}

func (failingEvents) Insert(context.Context, event.Event) (event.Event, error) {
	return event.Event{}, errStoreDown
}

func (failingEvents) Update(context.Context, event.Event) error {
	return errStoreDown
}

func (failingEvents) Delete(context.Context, string) error {
	return errStoreDown
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []SignupNotice
	err     error
}

func (n *recordingNotifier) SignupReceived(_ context.Context, notice SignupNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

type recordingArchiver struct {
	exports []SignupExport
	err     error
}

func (a *recordingArchiver) ArchiveExport(_ context.Context, export SignupExport) (string, error) {
	a.exports = append(a.exports, export)
	if a.err != nil {
		return "", a.err
	}
	return "signup-exports/" + export.SettingID + "/" + export.Filename, nil
}
