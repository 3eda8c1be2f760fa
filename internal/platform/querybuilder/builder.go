package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and the positional arguments bound into it.
type writer struct {
	strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.WriteString("$")
	w.WriteString(strconv.Itoa(len(w.args)))
}

func (w *writer) list(items []string) {
	w.WriteString(strings.Join(items, ", "))
}

type Condition interface {
	writeTo(w *writer)
}

type compareCondition struct {
	column   string
	operator string
	value    any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, operator: "=", value: value}
}

func NotEq(column string, value any) Condition {
	return compareCondition{column: column, operator: "<>", value: value}
}

func (c compareCondition) writeTo(w *writer) {
	w.WriteString(c.column)
	w.WriteString(" ")
	w.WriteString(c.operator)
	w.WriteString(" ")
	w.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

// In matches column against values. An empty list matches no rows.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) writeTo(w *writer) {
	if len(c.values) == 0 {
		w.WriteString("FALSE")
		return
	}
	w.WriteString(c.column)
	w.WriteString(" IN (")
	for i, value := range c.values {
		if i > 0 {
			w.WriteString(", ")
		}
		w.bind(value)
	}
	w.WriteString(")")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select from %q: no columns", b.table)
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: table is required")
	}

	w := &writer{}
	w.WriteString("SELECT ")
	w.list(b.columns)
	w.WriteString(" FROM ")
	w.WriteString(b.table)
	for i, condition := range b.where {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		condition.writeTo(w)
	}
	if len(b.orderBy) > 0 {
		w.WriteString(" ORDER BY ")
		w.list(b.orderBy)
	}
	if b.limit > 0 {
		w.WriteString(" LIMIT ")
		w.WriteString(strconv.Itoa(b.limit))
	}
	return w.String(), w.args, nil
}

// InsertBuilder writes a single-row INSERT, optionally turned into an
// upsert by a ConflictClause.
type InsertBuilder struct {
	table    string
	columns  []string
	values   []any
	conflict *ConflictClause
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Row(columns []string, values []any) *InsertBuilder {
	b.columns = columns
	b.values = values
	return b
}

func (b *InsertBuilder) OnConflict(conflict *ConflictClause) *InsertBuilder {
	b.conflict = conflict
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert: table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert into %s: no columns", b.table)
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert into %s: %d values for %d columns", b.table, len(b.values), len(b.columns))
	}
	if b.conflict != nil {
		if err := b.conflict.check(b.columns); err != nil {
			return "", nil, fmt.Errorf("insert into %s: %w", b.table, err)
		}
	}

	w := &writer{args: make([]any, 0, len(b.values))}
	w.WriteString("INSERT INTO ")
	w.WriteString(b.table)
	w.WriteString(" (")
	w.list(b.columns)
	w.WriteString(") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.WriteString(", ")
		}
		w.bind(value)
	}
	w.WriteString(")")
	if b.conflict != nil {
		if tail := b.conflict.String(); tail != "" {
			w.WriteString(" ")
			w.WriteString(tail)
		}
	}
	return w.String(), w.args, nil
}
