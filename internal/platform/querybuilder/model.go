package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertModel inserts every writable db-tagged field of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	fields, err := writableFields(model)
	if err != nil {
		return "", nil, err
	}
	builder := InsertInto(table).Suffix(suffix)
	for _, f := range fields {
		builder.Set(f.column, f.value)
	}
	return builder.ToSQL()
}

// UpdateModel sets every db-tagged column of model. Columns tagged with
// the "readonly" option (e.g. `db:"id,readonly"`) are skipped.
func UpdateModel(table string, model any, conditions ...Condition) (string, []any, error) {
	fields, err := writableFields(model)
	if err != nil {
		return "", nil, err
	}
	builder := Update(table).Where(conditions...)
	for _, f := range fields {
		builder.Set(f.column, f.value)
	}
	return builder.ToSQL()
}

type field struct {
	column string
	value  any
}

func writableFields(model any) ([]field, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	fields := make([]field, 0, typ.NumField())
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		column, options, _ := strings.Cut(sf.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		if slices.Contains(strings.Split(options, ","), "readonly") {
			continue
		}
		fields = append(fields, field{column: column, value: value.Field(i).Interface()})
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return fields, nil
}
