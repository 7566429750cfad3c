package search

import (
	"context"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/index"
	"github.com/cassiomolin/lucene-example/internal/mapper"
)

// ShoppingLists answers shopping-list queries. Results are sorted by the
// name of the person the list belongs to.
type ShoppingLists struct {
	searcher[domain.ShoppingList]
}

// NewShoppingLists creates a shopping-list searcher over store.
func NewShoppingLists(store *index.Store, executor *index.Executor, opts Options) *ShoppingLists {
	return &ShoppingLists{searcher: newSearcher(store, executor, mapper.DocumentToShoppingList, opts)}
}

// FindAll returns every shopping list.
func (s *ShoppingLists) FindAll(ctx context.Context) ([]domain.ShoppingList, error) {
	return s.run(ctx, index.MatchAll())
}

// FindByPersonName returns the lists owned by the person with this whole name.
func (s *ShoppingLists) FindByPersonName(ctx context.Context, name string) ([]domain.ShoppingList, error) {
	return s.run(ctx, index.ExactTerm(domain.ShoppingListName, name))
}

// FindByItem returns the lists containing item, matched exactly.
func (s *ShoppingLists) FindByItem(ctx context.Context, item string) ([]domain.ShoppingList, error) {
	return s.run(ctx, index.ExactTerm(domain.ShoppingListItems, item))
}

// FindByDateRange returns the lists dated between from and to, inclusive.
func (s *ShoppingLists) FindByDateRange(ctx context.Context, from, to domain.Date) ([]domain.ShoppingList, error) {
	return s.run(ctx, index.DateRange(domain.ShoppingListDate, from, to))
}

// Search runs an arbitrary query against the shopping-list store.
func (s *ShoppingLists) Search(ctx context.Context, q index.Query) ([]domain.ShoppingList, error) {
	return s.run(ctx, q)
}

// Get returns the shopping list with the given ID.
func (s *ShoppingLists) Get(ctx context.Context, id string) (domain.ShoppingList, bool, error) {
	return s.get(ctx, id)
}
