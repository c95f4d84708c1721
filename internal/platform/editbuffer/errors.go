package editbuffer

import "errors"

var (
	ErrUnknownRecord        = errors.New("record not found")
	ErrValidation           = errors.New("validation failed")
	ErrNotEditing           = errors.New("record is not in edit mode")
	ErrSaveInProgress       = errors.New("already saving")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
	ErrDraftRecord          = errors.New("draft records are discarded with cancel")
	ErrUnsupportedField     = errors.New("field is not multi-valued")
	ErrStore                = errors.New("record store failure")
	ErrRefresh              = errors.New("saved but reload failed")
)

// ValidationError carries the message shown to the user when a save is
// rejected before reaching the store.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
