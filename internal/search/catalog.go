package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/index"
	"github.com/cassiomolin/lucene-example/internal/loader"
	"github.com/cassiomolin/lucene-example/internal/mapper"
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogOptions configures NewCatalog.
type CatalogOptions struct {
	Options

	// CommitEvery is passed to index.NewWriter.
	CommitEvery int

	// Registerer receives the index metrics. May be nil.
	Registerer prometheus.Registerer
}

// Catalog owns one store per record type, indexed from a dataset, and the
// searchers over them.
type Catalog struct {
	Profiles      *Profiles
	ShoppingLists *ShoppingLists

	profileStore *index.Store
	listStore    *index.Store
}

// NewCatalog opens both stores, indexes the dataset into them and wires the
// searchers. On error every store opened so far is closed.
func NewCatalog(ctx context.Context, data *loader.Dataset, opts CatalogOptions) (*Catalog, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}

	metrics := index.NewMetrics(opts.Registerer)
	writer := index.NewWriter(opts.CommitEvery, metrics)
	executor := index.NewExecutor(metrics)

	c := &Catalog{}
	var err error

	c.profileStore, err = index.OpenStore(domain.ProfileSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile index: %w", err)
	}
	c.listStore, err = index.OpenStore(domain.ShoppingListSchema)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to open shopping-list index: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := index.IndexAll(writer, c.profileStore, data.Profiles, mapper.ProfileToDocument); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to index profiles: %w", err)
	}
	if err := index.IndexAll(writer, c.listStore, data.ShoppingLists, mapper.ShoppingListToDocument); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to index shopping lists: %w", err)
	}

	c.Profiles = NewProfiles(c.profileStore, executor, opts.Options)
	c.ShoppingLists = NewShoppingLists(c.listStore, executor, opts.Options)

	slog.Info("Catalog ready",
		"profiles", len(data.Profiles),
		"shopping_lists", len(data.ShoppingLists),
		"strict_dates", opts.StrictDates,
	)
	return c, nil
}

// Close releases both stores.
func (c *Catalog) Close() error {
	var errs []error
	for _, s := range []*index.Store{c.profileStore, c.listStore} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
