package supabase

import (
	"fmt"
	"net/url"
	"strings"
)

// Query builds a PostgREST query string: column selection, row filters,
// ordering and limit. Zero value selects * with no filters.
type Query struct {
	columns string
	filters []filterClause
	order   []string
	limit   int
}

type filterClause struct {
	column string
	op     string
}

// NewQuery starts an empty query (select *).
func NewQuery() *Query { return &Query{} }

// Columns overrides the selected columns. Embedded resources use the
// PostgREST syntax, e.g. "id, status, service_providers ( id, name )".
func (q *Query) Columns(cols string) *Query {
	q.columns = cols
	return q
}

// Eq adds an equality filter: column=eq.value
func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filterClause{column, fmt.Sprintf("eq.%v", value)})
	return q
}

// Gte adds a greater-or-equal filter: column=gte.value
func (q *Query) Gte(column string, value any) *Query {
	q.filters = append(q.filters, filterClause{column, fmt.Sprintf("gte.%v", value)})
	return q
}

// NotIn excludes rows whose column is one of values: column=not.in.(a,b)
func (q *Query) NotIn(column string, values ...string) *Query {
	q.filters = append(q.filters, filterClause{column, "not.in.(" + strings.Join(values, ",") + ")"})
	return q
}

// NotIsNull keeps rows whose column is non-null: column=not.is.null
func (q *Query) NotIsNull(column string) *Query {
	q.filters = append(q.filters, filterClause{column, "not.is.null"})
	return q
}

// OrderDesc orders by column, newest/largest first.
func (q *Query) OrderDesc(column string) *Query {
	q.order = append(q.order, column+".desc")
	return q
}

// OrderAsc orders by column ascending.
func (q *Query) OrderAsc(column string) *Query {
	q.order = append(q.order, column+".asc")
	return q
}

// Limit caps the result set size.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Encode renders the query string (without leading '?').
func (q *Query) Encode() string {
	v := url.Values{}
	if q.columns != "" {
		// PostgREST embedded-resource syntax is whitespace tolerant but the
		// query string is not; strip spaces so callers can format for humans.
		v.Set("select", strings.ReplaceAll(q.columns, " ", ""))
	}
	for _, f := range q.filters {
		v.Add(f.column, f.op)
	}
	if len(q.order) > 0 {
		v.Set("order", strings.Join(q.order, ","))
	}
	if q.limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", q.limit))
	}
	return v.Encode()
}
