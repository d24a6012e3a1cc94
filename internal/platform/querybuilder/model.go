package querybuilder

import (
	"fmt"
	"reflect"

	"github.com/jmoiron/sqlx/reflectx"
)

// dbMapper reads `db` tags the same way sqlx does when scanning rows, so an
// insert model and its table model agree on column names.
var dbMapper = reflectx.NewMapperFunc("db", func(string) string { return "" })

// InsertModel builds a single-row INSERT from the top-level `db` tagged
// fields of model, in declaration order.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	var (
		cols []string
		vals []any
	)
	for _, fi := range dbMapper.TypeMap(value.Type()).Tree.Children {
		if fi == nil || fi.Name == "" || fi.Field.PkgPath != "" {
			continue
		}
		cols = append(cols, fi.Name)
		vals = append(vals, value.FieldByIndex(fi.Index).Interface())
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}
