package editbuffer

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Assign copies *src into *dst when src is set.
func Assign[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// Nullable is a patch field for nullable columns: Set reports whether the
// field was present at all, Value is nil when it was set to null.
type Nullable[V any] struct {
	Set   bool
	Value *V
}

func Some[V any](v V) Nullable[V] {
	return Nullable[V]{Set: true, Value: &v}
}

func Null[V any]() Nullable[V] {
	return Nullable[V]{Set: true}
}

func (n *Nullable[V]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v V
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// AssignTo writes the field into dst when present.
func (n Nullable[V]) AssignTo(dst **V) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}
