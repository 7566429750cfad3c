package mapper

import (
	"encoding/json"
	"log/slog"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/index"
)

// ShoppingListToDocument maps a shopping list to its index document. Each
// item becomes its own exact-match tuple, in list order. The ordered list
// is also stored whole so reconstruction does not depend on the order in
// which the store returns repeated values.
func ShoppingListToDocument(l domain.ShoppingList) index.Document {
	doc := index.NewDocument(l.ID).
		AddString(domain.ShoppingListID, l.ID).
		AddString(domain.ShoppingListName, l.Name).
		AddString(domain.ShoppingListNameSort, l.Name)

	if !l.Date.IsZero() {
		doc.AddDate(domain.ShoppingListDate, l.Date)
	}

	for _, item := range l.Items {
		doc.AddString(domain.ShoppingListItems, item)
	}
	if len(l.Items) > 0 {
		order, err := json.Marshal(l.Items)
		if err != nil {
			slog.Warn("Storing items without their order", "id", l.ID, "error", err)
		} else {
			doc.AddString(domain.ShoppingListItemsOrder, string(order))
		}
	}

	doc.AddString(domain.ShoppingListFileName, l.SourceFileName)
	return *doc
}

// DocumentToShoppingList rebuilds a shopping list from a document. Items
// come from the stored order copy when present, otherwise from the item
// tuples as returned by the store. A list without items has nil Items.
//
// As with profiles, a malformed date leaves Date unset and is reported
// through an error wrapping index.ErrDateDecode.
func DocumentToShoppingList(doc index.Document) (domain.ShoppingList, error) {
	l := domain.ShoppingList{
		ID:             doc.String(domain.ShoppingListID),
		Name:           doc.String(domain.ShoppingListName),
		Items:          items(doc),
		SourceFileName: doc.String(domain.ShoppingListFileName),
	}
	if l.ID == "" {
		l.ID = doc.ID
	}

	date, err := decodeDate(doc, domain.ShoppingListDate)
	l.Date = date
	return l, err
}

func items(doc index.Document) []string {
	if doc.Has(domain.ShoppingListItemsOrder) {
		var ordered []string
		err := json.Unmarshal([]byte(doc.String(domain.ShoppingListItemsOrder)), &ordered)
		if err == nil {
			if len(ordered) == 0 {
				return nil
			}
			return ordered
		}
		slog.Warn("Ignoring unreadable item order", "id", doc.ID, "error", err)
	}
	return doc.Strings(domain.ShoppingListItems)
}
