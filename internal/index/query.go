package index

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/cassiomolin/lucene-example/internal/domain"
)

// Query kinds, also used as metric labels.
const (
	KindMatchAll           = "match_all"
	KindExactTerm          = "exact_term"
	KindNumericRange       = "numeric_range"
	KindLexicographicRange = "lexicographic_range"
	KindConjunction        = "conjunction"
)

// Query is a search condition. It is compiled against the schema of the
// store it runs on, so the same value can be reused across executions.
type Query interface {
	Kind() string
	String() string
	compile(schema domain.Schema) query.Query
}

// MatchAll matches every document.
func MatchAll() Query {
	return matchAllQuery{}
}

// ExactTerm matches documents whose field equals value.
//
// Exact and date fields match the literal value, case-sensitive. Text
// fields match the whole value, also case-sensitive, through the keyword
// copy the schema keeps for them; a text field without one never matches.
// Numeric and stored-only fields never match.
func ExactTerm(field domain.Field, value string) Query {
	return exactTermQuery{field: field, value: value}
}

// NumericRange matches numeric fields with low <= value <= high.
// An inverted range matches nothing.
func NumericRange(field domain.Field, low, high int64) Query {
	return numericRangeQuery{field: field, low: low, high: high}
}

// LexicographicRange matches terms t with low <= t <= high in byte order.
func LexicographicRange(field domain.Field, low, high string) Query {
	return lexicographicRangeQuery{field: field, low: low, high: high}
}

// DateRange matches date fields between from and to, both inclusive. It
// relies on EncodeDate preserving calendar order.
func DateRange(field domain.Field, from, to domain.Date) Query {
	return LexicographicRange(field, EncodeDate(from), EncodeDate(to))
}

// And matches documents that satisfy every query. With no queries it
// matches everything; with one it is that query.
func And(queries ...Query) Query {
	switch len(queries) {
	case 0:
		return MatchAll()
	case 1:
		return queries[0]
	default:
		return conjunctionQuery{queries: queries}
	}
}

type matchAllQuery struct{}

func (matchAllQuery) Kind() string   { return KindMatchAll }
func (matchAllQuery) String() string { return "match_all" }

func (matchAllQuery) compile(domain.Schema) query.Query {
	return bleve.NewMatchAllQuery()
}

type exactTermQuery struct {
	field domain.Field
	value string
}

func (q exactTermQuery) Kind() string { return KindExactTerm }

func (q exactTermQuery) String() string {
	return fmt.Sprintf("term(%s=%q)", q.field.Name(), q.value)
}

func (q exactTermQuery) compile(schema domain.Schema) query.Query {
	field, ok := schema.Lookup(q.field.Name())
	if !ok {
		return bleve.NewMatchNoneQuery()
	}

	switch field.Kind() {
	case domain.KindExact, domain.KindDate, domain.KindSortable:
		term := bleve.NewTermQuery(q.value)
		term.SetField(field.Name())
		return term
	case domain.KindText:
		if strings.TrimSpace(q.value) == "" {
			return bleve.NewMatchNoneQuery()
		}
		// Analyzed tokens lose case and stop words.
		exact, ok := schema.SortableCopy(field)
		if !ok {
			return bleve.NewMatchNoneQuery()
		}
		term := bleve.NewTermQuery(q.value)
		term.SetField(exact.Name())
		return term
	default:
		return bleve.NewMatchNoneQuery()
	}
}

type numericRangeQuery struct {
	field     domain.Field
	low, high int64
}

func (q numericRangeQuery) Kind() string { return KindNumericRange }

func (q numericRangeQuery) String() string {
	return fmt.Sprintf("numeric_range(%s:[%d,%d])", q.field.Name(), q.low, q.high)
}

func (q numericRangeQuery) compile(schema domain.Schema) query.Query {
	field, ok := schema.Lookup(q.field.Name())
	if !ok || field.Kind() != domain.KindNumeric || q.low > q.high {
		return bleve.NewMatchNoneQuery()
	}
	low, high := float64(q.low), float64(q.high)
	inclusive := true
	nq := bleve.NewNumericRangeInclusiveQuery(&low, &high, &inclusive, &inclusive)
	nq.SetField(field.Name())
	return nq
}

type lexicographicRangeQuery struct {
	field     domain.Field
	low, high string
}

func (q lexicographicRangeQuery) Kind() string { return KindLexicographicRange }

func (q lexicographicRangeQuery) String() string {
	return fmt.Sprintf("term_range(%s:[%s,%s])", q.field.Name(), q.low, q.high)
}

func (q lexicographicRangeQuery) compile(schema domain.Schema) query.Query {
	field, ok := schema.Lookup(q.field.Name())
	if !ok || !field.Indexed() || field.Kind() == domain.KindNumeric || q.low > q.high {
		return bleve.NewMatchNoneQuery()
	}
	inclusive := true
	tq := bleve.NewTermRangeInclusiveQuery(q.low, q.high, &inclusive, &inclusive)
	tq.SetField(field.Name())
	return tq
}

type conjunctionQuery struct {
	queries []Query
}

func (q conjunctionQuery) Kind() string { return KindConjunction }

func (q conjunctionQuery) String() string {
	parts := make([]string, len(q.queries))
	for i, sub := range q.queries {
		parts[i] = sub.String()
	}
	return "and(" + strings.Join(parts, ", ") + ")"
}

func (q conjunctionQuery) compile(schema domain.Schema) query.Query {
	compiled := make([]query.Query, len(q.queries))
	for i, sub := range q.queries {
		compiled[i] = sub.compile(schema)
	}
	return bleve.NewConjunctionQuery(compiled...)
}
