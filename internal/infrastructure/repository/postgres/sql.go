package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

const dateLayout = "2006-01-02"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// requireAffected turns an update that matched no row into
// editbuffer.ErrUnknownRecord, the same error the memory store returns.
func requireAffected(result sql.Result, op, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected %s id=%s: %w", op, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s id=%s: %w", op, id, editbuffer.ErrUnknownRecord)
	}
	return nil
}

// nullIfEmpty maps "" to NULL for optional foreign keys and text columns.
func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullStringValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func nullFloat64Ptr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	out := value.Float64
	return &out
}

func copyFloat64Ptr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

// formatDate renders a DATE column the way forms submit it.
func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dateLayout)
}
