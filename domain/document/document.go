// Package document models the JSON-like records held by a document store,
// the filters a live query is built from, and their protobuf encoding.
package document

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Fields are the JSON-like values of a document. Supported values are
// string, float64, bool, nil, []any, map[string]any and *timestamppb.Timestamp.
// Writers may also use time.Time, []string and Go integer types, which are
// canonicalised on write.
type Fields map[string]any

// Document is a stored record. Seq is a store-assigned, strictly increasing
// insertion sequence within a collection.
type Document struct {
	ID     string
	Seq    uint64
	Fields Fields
}

// SnapshotFunc receives the full current set of matching documents.
type SnapshotFunc func(docs []Document)

func (d Document) String(field string) (string, bool) {
	s, ok := d.Fields[field].(string)
	return s, ok
}

// Strings reads a list field holding only strings.
func (d Document) Strings(field string) ([]string, bool) {
	raw, ok := d.Fields[field].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

type Op string

const (
	OpEqual         Op = "=="
	OpNotEqual      Op = "!="
	OpArrayContains Op = "array-contains"
)

func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpEqual, OpNotEqual, OpArrayContains:
		return op, nil
	default:
		return "", fmt.Errorf("unsupported filter operator %q", s)
	}
}

type Filter struct {
	Field string
	Op    Op
	Value any
}

// Matches follows the usual document-store semantics: a document missing
// the field never matches, whatever the operator.
func (f Filter) Matches(d Document) bool {
	v, ok := d.Fields[f.Field]
	if !ok {
		return false
	}
	want := Canonical(f.Value)
	switch f.Op {
	case OpEqual:
		return equal(v, want)
	case OpNotEqual:
		return !equal(v, want)
	case OpArrayContains:
		list, ok := v.([]any)
		if !ok {
			return false
		}
		return lo.ContainsBy(list, func(item any) bool { return equal(item, want) })
	default:
		return false
	}
}

// Query selects documents of one collection; filters are AND-ed.
type Query struct {
	Collection string
	Filters    []Filter
}

func NewQuery(collection string) Query {
	return Query{Collection: collection}
}

// Where returns a copy of the query with one more filter.
func (q Query) Where(field string, op Op, value any) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) Matches(d Document) bool {
	return lo.EveryBy(q.Filters, func(f Filter) bool { return f.Matches(d) })
}

// Filter keeps the matching documents, preserving their order.
func (q Query) Filter(docs []Document) []Document {
	return lo.Filter(docs, func(d Document, _ int) bool { return q.Matches(d) })
}

func equal(a, b any) bool {
	ta, okA := a.(*timestamppb.Timestamp)
	tb, okB := b.(*timestamppb.Timestamp)
	if okA || okB {
		return okA && okB && ta.AsTime().Equal(tb.AsTime())
	}
	return reflect.DeepEqual(a, b)
}
