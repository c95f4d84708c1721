package editbuffer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	idgen "github.com/riskibarqy/club-backoffice/internal/platform/id"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
)

const DefaultRequiredMessage = "Please fill out all required fields."

// Record is a row the controller can buffer. WithID must return a copy.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// Patch is a typed partial record; unset fields leave the target untouched.
type Patch[T any] interface {
	Apply(T) T
}

// SetToggler is implemented by records holding multi-valued fields.
type SetToggler[T any] interface {
	ToggleItem(field, item string) (T, error)
}

// Store is the record store for one table. Insert returns the stored row
// carrying its store-assigned id. Update wraps ErrUnknownRecord when no row
// has the record's id.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
}

type Config[T any] struct {
	Name            string
	RequiredMessage string
	Validator       *validator.Validate
	// Prepare runs on the buffered record right before it is written.
	Prepare func(T) T
	IDs     idgen.Generator
	Logger  *logging.Logger
}

// Controller keeps the canonical rows of one entity, a sparse overlay of
// rows in edit mode, per-row UI flags, and the ids with a write in flight.
type Controller[T Record[T]] struct {
	name            string
	store           Store[T]
	ids             idgen.Generator
	validate        *validator.Validate
	requiredMessage string
	prepare         func(T) T
	logger          *logging.Logger

	mu       sync.Mutex
	records  []T
	overlay  map[string]T
	flags    map[string]map[string]bool
	inFlight map[string]struct{}
}

func NewController[T Record[T]](store Store[T], cfg Config[T]) *Controller[T] {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Validator == nil {
		cfg.Validator = NewValidator()
	}
	if cfg.IDs == nil {
		cfg.IDs = idgen.NewDraftGenerator()
	}
	if strings.TrimSpace(cfg.RequiredMessage) == "" {
		cfg.RequiredMessage = DefaultRequiredMessage
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "records"
	}

	return &Controller[T]{
		name:            cfg.Name,
		store:           store,
		ids:             cfg.IDs,
		validate:        cfg.Validator,
		requiredMessage: cfg.RequiredMessage,
		prepare:         cfg.Prepare,
		logger:          cfg.Logger.Named("editbuffer." + cfg.Name),
		overlay:         make(map[string]T),
		flags:           make(map[string]map[string]bool),
		inFlight:        make(map[string]struct{}),
	}
}

// NewValidator reports field errors by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func (c *Controller[T]) Name() string {
	return c.name
}

// Load replaces the persisted rows with a fresh store read. Drafts survive.
func (c *Controller[T]) Load(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrStore, c.name, err)
	}

	c.mu.Lock()
	c.replaceLocked(items)
	c.mu.Unlock()

	return nil
}

// BeginEdit copies the canonical row into the overlay, discarding any
// unsaved changes already buffered for id.
func (c *Controller[T]) BeginEdit(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.findLocked(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}
	c.overlay[id] = rec
	return rec, nil
}

// ChangeField merges patch into the overlay, entering edit mode first when
// needed. It never touches the store.
func (c *Controller[T]) ChangeField(id string, patch Patch[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.bufferedLocked(id)
	if err != nil {
		return cur, err
	}
	next := patch.Apply(cur).WithID(id)
	c.overlay[id] = next
	return next, nil
}

// ToggleSetField adds item to a multi-valued field when absent and removes
// it when present.
func (c *Controller[T]) ToggleSetField(id, field, item string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.bufferedLocked(id)
	if err != nil {
		return cur, err
	}
	toggler, ok := any(cur).(SetToggler[T])
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s.%s", ErrUnsupportedField, c.name, field)
	}
	next, err := toggler.ToggleItem(field, item)
	if err != nil {
		var zero T
		return zero, err
	}
	next = next.WithID(id)
	c.overlay[id] = next
	return next, nil
}

// Save validates the overlay and writes it through: drafts are inserted
// without their temporary id, persisted rows are updated. After a
// successful write the canonical rows are reloaded and edit mode ends.
// A failed write leaves the overlay and edit mode intact.
func (c *Controller[T]) Save(ctx context.Context, id string) (T, error) {
	var zero T

	c.mu.Lock()
	buffered, editing := c.overlay[id]
	if !editing {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s", ErrNotEditing, c.name, id)
	}
	if _, busy := c.inFlight[id]; busy {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s", ErrSaveInProgress, c.name, id)
	}
	if err := c.validateRecord(buffered); err != nil {
		c.mu.Unlock()
		return zero, err
	}
	c.inFlight[id] = struct{}{}
	c.mu.Unlock()

	record := buffered
	if c.prepare != nil {
		record = c.prepare(record).WithID(id)
	}

	draft := idgen.IsDraft(id)
	saved := record
	var err error
	if draft {
		saved, err = c.store.Insert(ctx, record.WithID(""))
	} else {
		err = c.store.Update(ctx, record)
	}
	if err != nil {
		c.mu.Lock()
		delete(c.inFlight, id)
		c.mu.Unlock()

		c.logger.WarnContext(ctx, "save failed", "record_id", id, "draft", draft, "error", err)
		return zero, fmt.Errorf("%w: save %s %s: %w", ErrStore, c.name, id, err)
	}

	items, listErr := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, id)
	delete(c.overlay, id)
	if draft {
		c.removeLocked(id)
		delete(c.flags, id)
	}
	if listErr != nil {
		c.logger.WarnContext(ctx, "reload after save failed", "record_id", id, "error", listErr)
		return saved, fmt.Errorf("%w: reload %s: %w", ErrRefresh, c.name, listErr)
	}
	c.replaceLocked(items)

	return saved, nil
}

// Cancel leaves edit mode. A draft is dropped entirely.
func (c *Controller[T]) Cancel(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[id]; busy {
		return fmt.Errorf("%w: %s %s", ErrSaveInProgress, c.name, id)
	}
	_, editing := c.overlay[id]
	_, known := c.findLocked(id)
	if !editing && !known {
		return fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}

	delete(c.overlay, id)
	if idgen.IsDraft(id) {
		c.removeLocked(id)
		delete(c.flags, id)
	}
	return nil
}

// Delete removes a persisted row after explicit confirmation. The row stays
// visible unless the store confirms the deletion.
func (c *Controller[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: %s %s", ErrConfirmationRequired, c.name, id)
	}

	c.mu.Lock()
	if idgen.IsDraft(id) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s %s", ErrDraftRecord, c.name, id)
	}
	if _, ok := c.findLocked(id); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}
	if _, busy := c.inFlight[id]; busy {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s %s", ErrSaveInProgress, c.name, id)
	}
	c.inFlight[id] = struct{}{}
	c.mu.Unlock()

	err := c.store.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
	if err != nil {
		c.logger.WarnContext(ctx, "delete failed", "record_id", id, "error", err)
		return fmt.Errorf("%w: delete %s %s: %w", ErrStore, c.name, id, err)
	}

	c.removeLocked(id)
	delete(c.overlay, id)
	delete(c.flags, id)
	return nil
}

// AddNew prepends a draft built by defaults and puts it in edit mode.
func (c *Controller[T]) AddNew(defaults func(id string) T) (T, error) {
	var zero T
	if defaults == nil {
		return zero, fmt.Errorf("%s: defaults are required", c.name)
	}
	draftID, err := c.ids.NewID()
	if err != nil {
		return zero, fmt.Errorf("generate draft id: %w", err)
	}
	if !idgen.IsDraft(draftID) {
		return zero, fmt.Errorf("%s: generator returned non-draft id %q", c.name, draftID)
	}

	rec := defaults(draftID).WithID(draftID)

	c.mu.Lock()
	c.records = append([]T{rec}, c.records...)
	c.overlay[draftID] = rec
	c.mu.Unlock()

	return rec, nil
}

// Optimistic applies mutate to the canonical row immediately, then writes
// it. On write failure the previous row is restored.
func (c *Controller[T]) Optimistic(ctx context.Context, id string, mutate func(T) T, write func(context.Context, T) error) (T, error) {
	var zero T

	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}
	if _, busy := c.inFlight[id]; busy {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s", ErrSaveInProgress, c.name, id)
	}
	previous := c.records[idx]
	next := mutate(previous).WithID(id)
	c.records[idx] = next
	c.inFlight[id] = struct{}{}
	c.mu.Unlock()

	err := write(ctx, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
	if err != nil {
		if i := c.indexLocked(id); i >= 0 {
			c.records[i] = previous
		}
		c.logger.WarnContext(ctx, "optimistic update rolled back", "record_id", id, "error", err)
		return previous, fmt.Errorf("%w: update %s %s: %w", ErrStore, c.name, id, err)
	}
	return next, nil
}

// DiscardDrafts drops every draft matching match, with its overlay and
// flags, and returns the dropped ids. Drafts with a write in flight stay.
func (c *Controller[T]) DiscardDrafts(match func(T) bool) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dropped []string
	kept := c.records[:0:0]
	for _, rec := range c.records {
		recID := rec.RecordID()
		_, busy := c.inFlight[recID]
		if idgen.IsDraft(recID) && !busy && match(c.effectiveLocked(rec)) {
			dropped = append(dropped, recID)
			delete(c.overlay, recID)
			delete(c.flags, recID)
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	return dropped
}

// RewriteDrafts applies fn to matching drafts and to their overlays.
func (c *Controller[T]) RewriteDrafts(match func(T) bool, fn func(T) T) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for i, rec := range c.records {
		recID := rec.RecordID()
		if !idgen.IsDraft(recID) || !match(c.effectiveLocked(rec)) {
			continue
		}
		c.records[i] = fn(rec).WithID(recID)
		if buffered, ok := c.overlay[recID]; ok {
			c.overlay[recID] = fn(buffered).WithID(recID)
		}
		count++
	}
	return count
}

// Effective returns the overlay for rows in edit mode, else the canonical row.
func (c *Controller[T]) Effective(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if buffered, ok := c.overlay[id]; ok {
		return buffered, true
	}
	return c.findLocked(id)
}

// Rows returns the effective value of every row in display order.
func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, c.effectiveLocked(rec))
	}
	return out
}

// Canonical returns the rows as last confirmed by the store, plus drafts.
func (c *Controller[T]) Canonical() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]T(nil), c.records...)
}

func (c *Controller[T]) IsEditing(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.overlay[id]
	return ok
}

func (c *Controller[T]) IsSaving(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.inFlight[id]
	return ok
}

func (c *Controller[T]) SetFlag(id, flag string, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findLocked(id); !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}
	c.setFlagLocked(id, flag, on)
	return nil
}

func (c *Controller[T]) ToggleFlag(id, flag string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findLocked(id); !ok {
		return false, fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}
	next := !c.flags[id][flag]
	c.setFlagLocked(id, flag, next)
	return next, nil
}

func (c *Controller[T]) Flag(id, flag string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.flags[id][flag]
}

func (c *Controller[T]) setFlagLocked(id, flag string, on bool) {
	if !on {
		delete(c.flags[id], flag)
		if len(c.flags[id]) == 0 {
			delete(c.flags, id)
		}
		return
	}
	if c.flags[id] == nil {
		c.flags[id] = make(map[string]bool)
	}
	c.flags[id][flag] = true
}

func (c *Controller[T]) validateRecord(rec T) error {
	err := c.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s: %w", ErrValidation, c.name, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Message: c.requiredMessage, Fields: fields}
}

func (c *Controller[T]) bufferedLocked(id string) (T, error) {
	if buffered, ok := c.overlay[id]; ok {
		return buffered, nil
	}
	rec, ok := c.findLocked(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", ErrUnknownRecord, c.name, id)
	}
	c.overlay[id] = rec
	return rec, nil
}

func (c *Controller[T]) effectiveLocked(rec T) T {
	if buffered, ok := c.overlay[rec.RecordID()]; ok {
		return buffered
	}
	return rec
}

func (c *Controller[T]) indexLocked(id string) int {
	for i, rec := range c.records {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *Controller[T]) findLocked(id string) (T, bool) {
	if i := c.indexLocked(id); i >= 0 {
		return c.records[i], true
	}
	var zero T
	return zero, false
}

func (c *Controller[T]) removeLocked(id string) {
	if i := c.indexLocked(id); i >= 0 {
		c.records = append(c.records[:i:i], c.records[i+1:]...)
	}
}

// replaceLocked swaps the persisted rows for items, keeping drafts in front
// and dropping buffered state of rows the store no longer returns.
func (c *Controller[T]) replaceLocked(items []T) {
	next := make([]T, 0, len(items)+len(c.records))
	present := make(map[string]struct{}, len(items)+len(c.records))
	for _, rec := range c.records {
		if idgen.IsDraft(rec.RecordID()) {
			next = append(next, rec)
			present[rec.RecordID()] = struct{}{}
		}
	}
	for _, rec := range items {
		next = append(next, rec)
		present[rec.RecordID()] = struct{}{}
	}
	c.records = next

	for recID := range c.overlay {
		if _, ok := present[recID]; !ok {
			delete(c.overlay, recID)
		}
	}
	for recID := range c.flags {
		if _, ok := present[recID]; !ok {
			delete(c.flags, recID)
		}
	}
}
