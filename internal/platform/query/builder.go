// Package query builds parameterized SQL for the read-only lookup queries.
// Clauses are appended conditionally, so an absent search parameter simply
// contributes nothing to the WHERE clause.
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates WHERE clauses with positional pgx arguments.
type Builder struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

// New creates a Builder for the given table and column list.
func New(table, cols string) *Builder {
	return &Builder{table: table, cols: cols, idx: 1}
}

// Where appends an AND clause. Each "?" in the clause is rewritten to the
// next positional placeholder and consumes one argument.
func (b *Builder) Where(clause string, args ...interface{}) *Builder {
	var sb strings.Builder
	for _, r := range clause {
		if r == '?' {
			fmt.Fprintf(&sb, "$%d", b.idx)
			b.idx++
			continue
		}
		sb.WriteRune(r)
	}
	b.where += " AND " + sb.String()
	b.args = append(b.args, args...)
	return b
}

// OrderBy sets the ORDER BY clause (without the keyword).
func (b *Builder) OrderBy(orderBy string) *Builder {
	b.orderBy = orderBy
	return b
}

// CountSQL returns the count query.
func (b *Builder) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", b.table, b.where)
}

// SQL returns the data query without LIMIT/OFFSET.
func (b *Builder) SQL() string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", b.cols, b.table, b.where)
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	return sql
}

// Args returns the accumulated arguments.
func (b *Builder) Args() []interface{} {
	return b.args
}

// PageSQL returns the data query with LIMIT/OFFSET placeholders appended.
func (b *Builder) PageSQL() string {
	return b.SQL() + fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.idx, b.idx+1)
}

// PageArgs returns Args plus the limit and offset values.
func (b *Builder) PageArgs(limit, offset int) []interface{} {
	out := make([]interface{}, len(b.args)+2)
	copy(out, b.args)
	out[len(b.args)] = limit
	out[len(b.args)+1] = offset
	return out
}

// Contains returns a LIKE pattern matching term anywhere in the value, with
// LIKE metacharacters in the term escaped.
func Contains(term string) string {
	return "%" + EscapeLike(term) + "%"
}

// Prefix returns a LIKE pattern matching values starting with term.
func Prefix(term string) string {
	return EscapeLike(term) + "%"
}

// EscapeLike escapes backslash, percent and underscore so user input is
// matched literally inside LIKE/ILIKE patterns.
func EscapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
