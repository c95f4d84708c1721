package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

// table is an insertion-ordered set of rows keyed by id. Inserted rows get
// a random UUID, like the database default.
type table[T any] struct {
	mu     sync.RWMutex
	name   string
	items  map[string]T
	orders []string
	idOf   func(T) string
	withID func(T, string) T
	newID  func() string
}

func newTable[T any](name string, idOf func(T) string, withID func(T, string) T, seed []T) *table[T] {
	t := &table[T]{
		name:   name,
		items:  make(map[string]T, len(seed)),
		orders: make([]string, 0, len(seed)),
		idOf:   idOf,
		withID: withID,
		newID:  func() string { return uuid.NewString() },
	}
	for _, item := range seed {
		id := idOf(item)
		if id == "" {
			id = t.newID()
			item = withID(item, id)
		}
		t.items[id] = item
		t.orders = append(t.orders, id)
	}
	return t
}

func (t *table[T]) list(keep func(T) bool, less func(a, b T) int) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.orders))
	for _, id := range t.orders {
		item := t.items[id]
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	if less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[id]
	return item, ok
}

func (t *table[T]) insert(item T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.newID()
	item = t.withID(item, id)
	t.items[id] = item
	t.orders = append(t.orders, id)
	return item
}

func (t *table[T]) update(item T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(item)
	if _, ok := t.items[id]; !ok {
		return fmt.Errorf("%s id=%s: %w", t.name, id, editbuffer.ErrUnknownRecord)
	}
	t.items[id] = item
	return nil
}

func (t *table[T]) mutate(id string, fn func(T) T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.items[id]
	if !ok {
		return fmt.Errorf("%s id=%s: %w", t.name, id, editbuffer.ErrUnknownRecord)
	}
	t.items[id] = t.withID(fn(item), id)
	return nil
}

// deleteWhere removes every row matching match and returns their ids.
func (t *table[T]) deleteWhere(match func(T) bool) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []string
	kept := t.orders[:0]
	for _, id := range t.orders {
		if match(t.items[id]) {
			removed = append(removed, id)
			delete(t.items, id)
			continue
		}
		kept = append(kept, id)
	}
	t.orders = kept
	return removed
}

func (t *table[T]) delete(id string) {
	t.deleteWhere(func(item T) bool { return t.idOf(item) == id })
}
