package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// InsertModel writes a row from a struct whose exported fields carry db tags.
// A nil conflict produces a plain INSERT.
func InsertModel(table string, model any, conflict *ConflictClause) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("insert into %s: nil model", table)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert into %s: model is %s, not a struct", table, value.Kind())
	}

	layout, err := layoutOf(value.Type())
	if err != nil {
		return "", nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	values := make([]any, len(layout.fields))
	for i, index := range layout.fields {
		values[i] = value.Field(index).Interface()
	}
	return InsertInto(table).Row(layout.columns, values).OnConflict(conflict).ToSQL()
}

type modelLayout struct {
	columns []string
	fields  []int
}

var layouts sync.Map // reflect.Type -> modelLayout

func layoutOf(typ reflect.Type) (modelLayout, error) {
	if cached, ok := layouts.Load(typ); ok {
		return cached.(modelLayout), nil
	}

	var layout modelLayout
	seen := make(map[string]string, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		if prev, dup := seen[column]; dup {
			return modelLayout{}, fmt.Errorf("column %q tagged on both %s and %s", column, prev, field.Name)
		}
		seen[column] = field.Name
		layout.columns = append(layout.columns, column)
		layout.fields = append(layout.fields, i)
	}
	if len(layout.columns) == 0 {
		return modelLayout{}, fmt.Errorf("%s has no db columns", typ)
	}

	layouts.Store(typ, layout)
	return layout, nil
}
