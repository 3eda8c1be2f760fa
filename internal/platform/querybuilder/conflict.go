package querybuilder

import (
	"fmt"
	"slices"
	"strings"
)

// ConflictClause renders the ON CONFLICT tail of an upsert.
type ConflictClause struct {
	target    []string
	update    []string
	nothing   bool
	returning []string
}

// OnConflict starts a conflict clause on the given unique key.
func OnConflict(columns ...string) *ConflictClause {
	return &ConflictClause{target: append([]string(nil), columns...)}
}

// DoUpdate overwrites the listed columns with the rejected row's values.
func (c *ConflictClause) DoUpdate(columns ...string) *ConflictClause {
	c.update = append(c.update, columns...)
	c.nothing = false
	return c
}

func (c *ConflictClause) DoNothing() *ConflictClause {
	c.update = nil
	c.nothing = true
	return c
}

func (c *ConflictClause) Returning(columns ...string) *ConflictClause {
	c.returning = append(c.returning, columns...)
	return c
}

func (c *ConflictClause) String() string {
	var buf strings.Builder
	if len(c.target) > 0 {
		buf.WriteString("ON CONFLICT (")
		buf.WriteString(strings.Join(c.target, ", "))
		buf.WriteString(")")
		switch {
		case len(c.update) > 0:
			buf.WriteString(" DO UPDATE SET ")
			for i, column := range c.update {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(column)
				buf.WriteString(" = EXCLUDED.")
				buf.WriteString(column)
			}
		default:
			buf.WriteString(" DO NOTHING")
		}
	}
	if len(c.returning) > 0 {
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString("RETURNING ")
		buf.WriteString(strings.Join(c.returning, ", "))
	}
	return buf.String()
}

// check rejects a clause naming a column the insert does not write.
func (c *ConflictClause) check(columns []string) error {
	for _, group := range [][]string{c.target, c.update} {
		for _, column := range group {
			if !slices.Contains(columns, column) {
				return fmt.Errorf("conflict column %q is not inserted", column)
			}
		}
	}
	return nil
}
