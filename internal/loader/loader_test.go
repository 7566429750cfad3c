package loader

import (
	"context"
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/cassiomolin/lucene-example/internal/domain"
)

func TestLoad_Bundled(t *testing.T) {
	data, err := Load(context.Background(), Bundled())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(data.Profiles) != 10 {
		t.Errorf("Expected 10 profiles, got %d", len(data.Profiles))
	}
	if len(data.ShoppingLists) != 5 {
		t.Fatalf("Expected 5 shopping lists, got %d", len(data.ShoppingLists))
	}

	var files []string
	for _, l := range data.ShoppingLists {
		files = append(files, l.SourceFileName)
		if l.ID != ShoppingListID(l.SourceFileName) {
			t.Errorf("%s: expected derived ID, got %q", l.SourceFileName, l.ID)
		}
		if l.Date.IsZero() || len(l.Items) == 0 {
			t.Errorf("%s: incomplete list %+v", l.SourceFileName, l)
		}
	}
	if !slices.IsSorted(files) {
		t.Errorf("Expected lists in file name order, got %v", files)
	}
}

func TestLoad_Formats(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles.yaml": {Data: []byte(`
- id: p-1
  name: Sarah Connor
  gender: female
  dateOfBirth: 1984-05-12
  jobTitle: Operations Manager
  salary: 72000
`)},
		"shopping-lists/john-doe-2017-01-01.toml": {Data: []byte(`
name = "John Doe"
date = "2017-01-01"
items = ["Milk", "Bread"]
`)},
		"shopping-lists/jane-roe-2017-01-02.yml": {Data: []byte(`
id: custom-id
name: Jane Roe
date: "2017-01-02"
items: [Apples, Milk, Apples]
`)},
		"shopping-lists/a-readme.txt":  {Data: []byte("ignored")},
		"shopping-lists/nested/x.json": {Data: []byte(`{"name":"Hidden"}`)},
	}

	data, err := Load(context.Background(), fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := domain.Profile{
		ID:          "p-1",
		Name:        "Sarah Connor",
		Gender:      "female",
		DateOfBirth: domain.MustParseDate("1984-05-12"),
		JobTitle:    "Operations Manager",
		Salary:      72000,
	}
	if len(data.Profiles) != 1 || data.Profiles[0] != want {
		t.Errorf("Unexpected profiles: %+v", data.Profiles)
	}

	if len(data.ShoppingLists) != 2 {
		t.Fatalf("Expected 2 shopping lists, got %d", len(data.ShoppingLists))
	}
	jane, john := data.ShoppingLists[0], data.ShoppingLists[1]
	if jane.ID != "custom-id" {
		t.Errorf("Expected payload ID to be kept, got %q", jane.ID)
	}
	if !slices.Equal(jane.Items, []string{"Apples", "Milk", "Apples"}) {
		t.Errorf("Expected payload item order, got %v", jane.Items)
	}
	if john.SourceFileName != "john-doe-2017-01-01.toml" || john.Date != domain.MustParseDate("2017-01-01") {
		t.Errorf("Unexpected TOML list: %+v", john)
	}
}

func TestLoadProfiles_TOML(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles.toml": {Data: []byte(`
[[profiles]]
id = "p-1"
name = "Sarah Connor"
dateOfBirth = "1984-05-12"
salary = 72000

[[profiles]]
id = "p-2"
name = "John Smith"
`)},
	}

	profiles, err := LoadProfiles(fsys)
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}
	if len(profiles) != 2 || profiles[1].Name != "John Smith" || profiles[0].Salary != 72000 {
		t.Errorf("Unexpected profiles: %+v", profiles)
	}
	if !profiles[1].DateOfBirth.IsZero() {
		t.Error("Expected missing date to stay unset")
	}
}

func TestLoadProfiles_PrefersJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles.json": {Data: []byte(`[{"id":"json","name":"From JSON"}]`)},
		"profiles.yaml": {Data: []byte(`[{id: yaml, name: From YAML}]`)},
	}

	profiles, err := LoadProfiles(fsys)
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != "json" {
		t.Errorf("Expected the JSON file, got %+v", profiles)
	}
}

func TestLoad_Empty(t *testing.T) {
	data, err := Load(context.Background(), fstest.MapFS{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data.Profiles) != 0 || len(data.ShoppingLists) != 0 {
		t.Errorf("Expected no records, got %+v", data)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "malformed profiles",
			fsys: fstest.MapFS{"profiles.json": {Data: []byte(`[{"id":`)}},
		},
		{
			name: "profile without id",
			fsys: fstest.MapFS{"profiles.json": {Data: []byte(`[{"name":"No ID"}]`)}},
		},
		{
			name: "bad profile date",
			fsys: fstest.MapFS{"profiles.json": {Data: []byte(`[{"id":"p","name":"n","dateOfBirth":"12/05/1984"}]`)}},
		},
		{
			name: "salary beyond 32 bits",
			fsys: fstest.MapFS{"profiles.json": {Data: []byte(`[{"id":"p","name":"n","salary":9007199254740993}]`)}},
		},
		{
			name: "salary below 32 bits",
			fsys: fstest.MapFS{"profiles.json": {Data: []byte(`[{"id":"p","name":"n","salary":-2147483649}]`)}},
		},
		{
			name: "list without name",
			fsys: fstest.MapFS{"shopping-lists/x.json": {Data: []byte(`{"date":"2017-01-01"}`)}},
		},
		{
			name: "malformed list",
			fsys: fstest.MapFS{"shopping-lists/x.yaml": {Data: []byte("name: [unterminated")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(context.Background(), tt.fsys); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadProfiles_SalaryBounds(t *testing.T) {
	fsys := fstest.MapFS{"profiles.json": {Data: []byte(
		`[{"id":"p-1","name":"Max","salary":2147483647},{"id":"p-2","name":"Min","salary":-2147483648}]`,
	)}}

	profiles, err := LoadProfiles(fsys)
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}
	if len(profiles) != 2 || profiles[0].Salary != domain.MaxSalary || profiles[1].Salary != domain.MinSalary {
		t.Errorf("Expected boundary salaries, got %+v", profiles)
	}
}

func TestLoadShoppingLists_EmptyItems(t *testing.T) {
	fsys := fstest.MapFS{"shopping-lists/x.json": {Data: []byte(`{"name":"X","items":[]}`)}}

	lists, err := LoadShoppingLists(context.Background(), fsys, "shopping-lists")
	if err != nil {
		t.Fatalf("LoadShoppingLists failed: %v", err)
	}
	if len(lists) != 1 || lists[0].Items != nil {
		t.Errorf("Expected one list with nil items, got %#v", lists)
	}
}

func TestLoadShoppingLists_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := fstest.MapFS{"shopping-lists/x.json": {Data: []byte(`{"name":"X"}`)}}
	if _, err := LoadShoppingLists(ctx, fsys, ShoppingListsDir); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestShoppingListID(t *testing.T) {
	a := ShoppingListID("john-doe-2017-01-01.json")
	if a != ShoppingListID("john-doe-2017-01-01.json") {
		t.Error("Expected a stable ID")
	}
	if a == ShoppingListID("john-doe-2017-01-05.json") {
		t.Error("Expected distinct IDs for distinct files")
	}
	if len(a) != 36 {
		t.Errorf("Expected a UUID, got %q", a)
	}
}

func TestDecode_Unsupported(t *testing.T) {
	var v any
	if err := Decode("list.xml", []byte("<x/>"), &v); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if Supported("list.xml") || !Supported("LIST.JSON") {
		t.Error("Unexpected Supported result")
	}
}
