package index

import (
	"log/slog"
)

// DefaultCommitEvery commits after every added document. The loads in this
// system are small and one-shot; larger loads should raise it.
const DefaultCommitEvery = 1

// Writer adds documents to a store and commits them.
type Writer struct {
	commitEvery int
	metrics     *Metrics
	logger      *slog.Logger
}

// NewWriter creates a writer that commits after every commitEvery documents.
// Values below 1 fall back to DefaultCommitEvery.
func NewWriter(commitEvery int, metrics *Metrics) *Writer {
	if commitEvery < 1 {
		commitEvery = DefaultCommitEvery
	}
	return &Writer{
		commitEvery: commitEvery,
		metrics:     metrics,
		logger:      slog.Default().With("component", "index-writer"),
	}
}

// Write adds and commits docs. It stops at the first failure; documents
// committed before it stay in the store.
func (w *Writer) Write(store *Store, docs ...Document) (written int, err error) {
	collection := store.Name()

	for _, doc := range docs {
		if err := store.Add(doc); err != nil {
			return written, err
		}
		w.metrics.docIndexed(collection)
		written++

		if written%w.commitEvery == 0 {
			if err := w.commit(store); err != nil {
				return written, err
			}
		}
	}

	if err := w.commit(store); err != nil {
		return written, err
	}
	return written, nil
}

func (w *Writer) commit(store *Store) error {
	if store.Pending() == 0 {
		return nil
	}
	err := store.Commit()
	w.metrics.commit(store.Name(), err)
	return err
}

// IndexAll maps every record to a document and writes it to store, one
// document per record.
func IndexAll[R any](w *Writer, store *Store, records []R, toDocument func(R) Document) error {
	docs := make([]Document, len(records))
	for i, r := range records {
		docs[i] = toDocument(r)
	}

	written, err := w.Write(store, docs...)
	if err != nil {
		w.logger.Error("Indexing failed", "collection", store.Name(), "written", written, "error", err)
		return err
	}

	w.logger.Info("Indexing complete", "collection", store.Name(), "documents", written)
	return nil
}
