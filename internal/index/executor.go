package index

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/cassiomolin/lucene-example/internal/domain"
)

// Unbounded asks Execute for every matching document.
const Unbounded = math.MaxInt32

// idSortField is Bleve's built-in document ID sort key.
const idSortField = "_id"

// Executor runs queries against a store.
type Executor struct {
	metrics *Metrics
	logger  *slog.Logger
}

// NewExecutor creates an executor. metrics may be nil.
func NewExecutor(metrics *Metrics) *Executor {
	return &Executor{
		metrics: metrics,
		logger:  slog.Default().With("component", "query-executor"),
	}
}

// Execute runs q against a fresh read session of store and returns at most
// maxResults documents, ascending by sortField. Documents with equal sort
// values are ordered by document ID.
//
// There is no paging: the whole result is materialized. maxResults is
// clamped to the number of documents in the store.
func (e *Executor) Execute(ctx context.Context, store *Store, q Query, sortField domain.Field, maxResults int) (docs []Document, err error) {
	started := time.Now()
	defer func() {
		e.metrics.query(store.Name(), q.Kind(), started, len(docs), err)
	}()

	reader, err := store.Reader()
	if err != nil {
		return nil, err
	}

	count, err := reader.DocCount()
	if err != nil {
		return nil, err
	}
	size := maxResults
	if size < 0 {
		size = Unbounded
	}
	if uint64(size) > count {
		size = int(count)
	}
	if size <= 0 {
		return []Document{}, nil
	}

	req := bleve.NewSearchRequestOptions(q.compile(store.Schema()), size, 0, false)
	req.SortBy([]string{sortField.Name(), idSortField})
	req.Fields = store.Schema().StoredFieldNames()

	res, err := reader.Search(ctx, req)
	if err != nil {
		e.logger.Error("Query failed", "collection", store.Name(), "query", q.String(), "error", err)
		return nil, err
	}

	docs = make([]Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		docs = append(docs, reader.Document(hit))
	}

	e.logger.Debug("Query executed",
		"collection", store.Name(),
		"query", q.String(),
		"total", res.Total,
		"returned", len(docs),
		"took", res.Took,
	)
	return docs, nil
}
