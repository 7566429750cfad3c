package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/cassiomolin/lucene-example/internal/domain"
)

// Store is an in-memory Bleve index holding the documents of one record
// schema. Writes are staged with Add and become searchable on Commit.
// Writers are serialized; readers may run concurrently with each other.
type Store struct {
	schema domain.Schema
	index  bleve.Index
	logger *slog.Logger

	mu     sync.RWMutex
	batch  *bleve.Batch
	closed bool
}

// OpenStore creates an empty in-memory index for the schema.
func OpenStore(schema domain.Schema) (*Store, error) {
	idx, err := bleve.NewMemOnly(NewIndexMapping(schema))
	if err != nil {
		return nil, ioError("open "+schema.Name, err)
	}
	return &Store{
		schema: schema,
		index:  idx,
		batch:  idx.NewBatch(),
		logger: slog.Default().With("component", "index", "collection", schema.Name),
	}, nil
}

// Schema returns the schema the store was opened with.
func (s *Store) Schema() domain.Schema {
	return s.schema
}

// Name returns the collection name.
func (s *Store) Name() string {
	return s.schema.Name
}

// Add stages a document for the next Commit.
func (s *Store) Add(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ioError("add", ErrClosed)
	}
	if doc.ID == "" {
		return ioError("add", errors.New("document has no ID"))
	}
	if err := doc.checkInts(); err != nil {
		return ioError("add "+doc.ID, err)
	}
	if err := s.batch.Index(doc.ID, doc.data()); err != nil {
		return ioError("add "+doc.ID, err)
	}
	return nil
}

// Pending returns the number of staged, uncommitted operations.
func (s *Store) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch.Size()
}

// Commit makes every staged document searchable.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ioError("commit", ErrClosed)
	}
	if s.batch.Size() == 0 {
		return nil
	}
	if err := s.index.Batch(s.batch); err != nil {
		return ioError("commit", err)
	}
	s.batch.Reset()
	return nil
}

// Close releases the index. Staged but uncommitted documents are dropped.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if pending := s.batch.Size(); pending > 0 {
		s.logger.Warn("Closing index with uncommitted documents", "pending", pending)
	}
	if err := s.index.Close(); err != nil {
		return ioError("close", err)
	}
	return nil
}

// Reader opens a read session. Each search runs against the committed
// state at the time it starts.
func (s *Store) Reader() (*Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ioError("open reader", ErrClosed)
	}
	return &Reader{schema: s.schema, index: s.index}, nil
}

// Reader is a read session over a Store.
type Reader struct {
	schema domain.Schema
	index  bleve.Index
}

// DocCount returns the number of committed documents.
func (r *Reader) DocCount() (uint64, error) {
	n, err := r.index.DocCount()
	if err != nil {
		return 0, ioError("count", err)
	}
	return n, nil
}

// Search runs a raw Bleve search request.
func (r *Reader) Search(ctx context.Context, req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	res, err := r.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, ioError("search", err)
	}
	return res, nil
}

// Fetch reads a single document by ID. The boolean is false when no
// document has that ID.
func (r *Reader) Fetch(ctx context.Context, id string) (Document, bool, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = r.schema.StoredFieldNames()

	res, err := r.Search(ctx, req)
	if err != nil {
		return Document{}, false, err
	}
	if len(res.Hits) == 0 {
		return Document{}, false, nil
	}
	return r.Document(res.Hits[0]), true, nil
}

// Document rebuilds a document from the stored fields loaded into a hit.
// Field tuples follow schema order; repeated values keep the order the
// store returned them in.
func (r *Reader) Document(hit *search.DocumentMatch) Document {
	doc := Document{ID: hit.ID}
	for _, f := range r.schema.Fields {
		if !f.Stored() {
			continue
		}
		raw, ok := hit.Fields[f.Name()]
		if !ok {
			continue
		}
		for _, v := range flatten(raw) {
			if fv, ok := storedValue(f, v); ok {
				doc.Fields = append(doc.Fields, fv)
			}
		}
	}
	return doc
}

func flatten(raw interface{}) []interface{} {
	switch v := raw.(type) {
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []interface{}{v}
	}
}

func storedValue(f domain.Field, v interface{}) (Field, bool) {
	switch f.Kind() {
	case domain.KindNumeric:
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) || n > MaxExactInt || n < -MaxExactInt {
				return Field{}, false
			}
			return Field{Def: f, Value: int64(n)}, true
		case int64:
			return Field{Def: f, Value: n}, true
		}
		return Field{}, false
	default:
		switch s := v.(type) {
		case string:
			return Field{Def: f, Value: s}, true
		case fmt.Stringer:
			return Field{Def: f, Value: s.String()}, true
		}
		return Field{}, false
	}
}
