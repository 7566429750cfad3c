// Package testkit holds fixtures and helpers shared by package tests.
package testkit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/loader"
	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Profiles returns profiles covering both sides of the 70000..75000 salary
// band, both bounds included, and births in three decades.
func Profiles() []domain.Profile {
	return []domain.Profile{
		{ID: "p-1", Name: "Sarah Connor", Gender: "female", DateOfBirth: domain.MustParseDate("1984-05-12"), JobTitle: "Operations Manager", Salary: 72000},
		{ID: "p-2", Name: "John Smith", Gender: "male", DateOfBirth: domain.MustParseDate("1979-11-03"), JobTitle: "Software Engineer", Salary: 85000},
		{ID: "p-3", Name: "Alice Johnson", Gender: "female", DateOfBirth: domain.MustParseDate("1990-02-28"), JobTitle: "Data Analyst", Salary: 69999},
		{ID: "p-4", Name: "Bob Williams", Gender: "male", DateOfBirth: domain.MustParseDate("1988-07-19"), JobTitle: "Sales Representative", Salary: 70000},
		{ID: "p-5", Name: "Emily Davis", Gender: "female", DateOfBirth: domain.MustParseDate("1995-09-30"), JobTitle: "UX Designer", Salary: 75000},
		{ID: "p-6", Name: "Michael Brown", Gender: "male", DateOfBirth: domain.MustParseDate("1972-01-15"), JobTitle: "Chief Financial Officer", Salary: 75001},
	}
}

// ShoppingLists returns lists where "John Doe" owns two, "Milk" appears in
// three and one list repeats an item.
func ShoppingLists() []domain.ShoppingList {
	lists := []domain.ShoppingList{
		{Name: "John Doe", Date: domain.MustParseDate("2017-01-01"), Items: []string{"Milk", "Bread", "Eggs"}, SourceFileName: "john-doe-2017-01-01.json"},
		{Name: "Jane Roe", Date: domain.MustParseDate("2017-01-02"), Items: []string{"Apples", "Milk", "Cheese", "Apples"}, SourceFileName: "jane-roe-2017-01-02.json"},
		{Name: "Alice Smith", Date: domain.MustParseDate("2017-01-03"), Items: []string{"Rice", "Beans"}, SourceFileName: "alice-smith-2017-01-03.json"},
		{Name: "John Doe", Date: domain.MustParseDate("2017-01-05"), Items: []string{"Coffee", "Milk"}, SourceFileName: "john-doe-2017-01-05.json"},
	}
	for i := range lists {
		lists[i].ID = loader.ShoppingListID(lists[i].SourceFileName)
	}
	return lists
}

// Dataset returns Profiles and ShoppingLists together.
func Dataset() *loader.Dataset {
	return &loader.Dataset{Profiles: Profiles(), ShoppingLists: ShoppingLists()}
}

// NewCatalog indexes data and closes the catalog when the test ends.
func NewCatalog(t testing.TB, data *loader.Dataset, opts search.CatalogOptions) *search.Catalog {
	t.Helper()
	c, err := search.NewCatalog(context.Background(), data, opts)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Catalog close failed: %v", err)
		}
	})
	return c
}

// WriteDataDir writes data as a record directory in the format selected by
// ext (".json", ".yaml" or ".toml") and returns its path.
func WriteDataDir(t testing.TB, data *loader.Dataset, ext string) string {
	t.Helper()

	dir := t.TempDir()
	listsDir := filepath.Join(dir, loader.ShoppingListsDir)
	if err := os.MkdirAll(listsDir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", listsDir, err)
	}

	var profiles any = data.Profiles
	if ext == ".toml" {
		profiles = map[string]any{"profiles": data.Profiles}
	}
	writeFile(t, filepath.Join(dir, loader.ProfilesBaseName+ext), encode(t, ext, profiles))

	for _, l := range data.ShoppingLists {
		name := strings.TrimSuffix(l.SourceFileName, filepath.Ext(l.SourceFileName)) + ext
		writeFile(t, filepath.Join(listsDir, name), encode(t, ext, l))
	}
	return dir
}

func encode(t testing.TB, ext string, v any) []byte {
	t.Helper()

	var (
		data []byte
		err  error
	)
	switch ext {
	case ".json":
		data, err = json.MarshalIndent(v, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(v)
	case ".toml":
		data, err = toml.Marshal(v)
	default:
		t.Fatalf("Unsupported fixture format %q", ext)
	}
	if err != nil {
		t.Fatalf("Failed to encode fixture as %s: %v", ext, err)
	}
	return data
}

func writeFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
