// Package search answers typed record queries against the index stores.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cassiomolin/lucene-example/internal/index"
)

// Options controls how query results become records.
type Options struct {
	// MaxResults caps each result; 0 means index.Unbounded.
	MaxResults int

	// StrictDates fails the whole query when a stored date cannot be
	// decoded. Otherwise the failure is logged and the record is returned
	// with that date unset.
	StrictDates bool
}

func (o Options) maxResults() int {
	if o.MaxResults <= 0 {
		return index.Unbounded
	}
	return o.MaxResults
}

// searcher is the record-agnostic half of Profiles and ShoppingLists.
type searcher[R any] struct {
	store    *index.Store
	executor *index.Executor
	decode   func(index.Document) (R, error)
	opts     Options
	logger   *slog.Logger
}

func newSearcher[R any](store *index.Store, executor *index.Executor, decode func(index.Document) (R, error), opts Options) searcher[R] {
	return searcher[R]{
		store:    store,
		executor: executor,
		decode:   decode,
		opts:     opts,
		logger:   slog.Default().With("component", "searcher", "collection", store.Name()),
	}
}

// run executes q, sorted by the schema's sort field, and decodes every hit.
func (s searcher[R]) run(ctx context.Context, q index.Query) ([]R, error) {
	docs, err := s.executor.Execute(ctx, s.store, q, s.store.Schema().Sort, s.opts.maxResults())
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", q, err)
	}

	records := make([]R, 0, len(docs))
	for _, doc := range docs {
		r, err := s.toRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// get reads one record by ID.
func (s searcher[R]) get(ctx context.Context, id string) (R, bool, error) {
	var zero R

	reader, err := s.store.Reader()
	if err != nil {
		return zero, false, err
	}
	doc, found, err := reader.Fetch(ctx, id)
	if err != nil || !found {
		return zero, found, err
	}

	r, err := s.toRecord(doc)
	if err != nil {
		return zero, false, err
	}
	return r, true, nil
}

func (s searcher[R]) toRecord(doc index.Document) (R, error) {
	r, err := s.decode(doc)
	if err == nil {
		return r, nil
	}
	if errors.Is(err, index.ErrDateDecode) && !s.opts.StrictDates {
		s.logger.Warn("Leaving undecodable date unset", "id", doc.ID, "error", err)
		return r, nil
	}
	var zero R
	return zero, fmt.Errorf("document %s: %w", doc.ID, err)
}

// Count returns the number of indexed records.
func (s searcher[R]) Count() (uint64, error) {
	reader, err := s.store.Reader()
	if err != nil {
		return 0, err
	}
	return reader.DocCount()
}
