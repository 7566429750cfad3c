package index

import (
	"testing"

	"github.com/cassiomolin/lucene-example/internal/domain"
)

type person struct {
	id, name, gender, born string
	salary                 int64
}

var people = []person{
	{"p-1", "Sarah Connor", "female", "1984-05-12", 72000},
	{"p-2", "John Smith", "male", "1979-11-03", 85000},
	{"p-3", "Alice Johnson", "female", "1990-02-28", 69999},
	{"p-4", "Bob Williams", "male", "1988-07-19", 70000},
	{"p-5", "Emily Davis", "female", "1995-09-30", 75000},
	{"p-6", "Michael Brown", "male", "1972-01-15", 75001},
	{"p-7", "John", "male", "2000-01-01", 1000},
}

func personDocument(p person) Document {
	return *NewDocument(p.id).
		AddString(domain.ProfileID, p.id).
		AddString(domain.ProfileName, p.name).
		AddString(domain.ProfileNameSort, p.name).
		AddString(domain.ProfileGender, p.gender).
		AddDate(domain.ProfileDateOfBirth, domain.MustParseDate(p.born)).
		AddInt(domain.ProfileSalary, p.salary)
}

// openPeople returns a profile store holding people, closed at test end.
func openPeople(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(domain.ProfileSchema)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	docs := make([]Document, len(people))
	for i, p := range people {
		docs[i] = personDocument(p)
	}
	if _, err := NewWriter(3, nil).Write(store, docs...); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return store
}

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func names(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.String(domain.ProfileName)
	}
	return out
}
