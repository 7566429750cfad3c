// Package mapper converts typed records to index documents and back.
package mapper

import (
	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/index"
)

// ProfileToDocument maps a profile to its index document. The name and the
// job title are emitted twice: once as text and once as their exact copy.
func ProfileToDocument(p domain.Profile) index.Document {
	doc := index.NewDocument(p.ID).
		AddString(domain.ProfileID, p.ID).
		AddString(domain.ProfileName, p.Name).
		AddString(domain.ProfileNameSort, p.Name).
		AddString(domain.ProfileGender, p.Gender)

	if !p.DateOfBirth.IsZero() {
		doc.AddDate(domain.ProfileDateOfBirth, p.DateOfBirth)
	}

	doc.AddString(domain.ProfileJobTitle, p.JobTitle).
		AddString(domain.ProfileJobTitleExact, p.JobTitle).
		AddInt(domain.ProfileSalary, p.Salary)

	return *doc
}

// DocumentToProfile rebuilds a profile from a document.
//
// A malformed date does not stop reconstruction: the profile is returned
// with DateOfBirth unset together with an error wrapping index.ErrDateDecode.
func DocumentToProfile(doc index.Document) (domain.Profile, error) {
	p := domain.Profile{
		ID:       doc.String(domain.ProfileID),
		Name:     doc.String(domain.ProfileName),
		Gender:   doc.String(domain.ProfileGender),
		JobTitle: doc.String(domain.ProfileJobTitle),
	}
	if p.ID == "" {
		p.ID = doc.ID
	}
	if salary, ok := doc.Int(domain.ProfileSalary); ok {
		p.Salary = salary
	}

	dob, err := decodeDate(doc, domain.ProfileDateOfBirth)
	p.DateOfBirth = dob
	return p, err
}

func decodeDate(doc index.Document, f domain.Field) (domain.Date, error) {
	if !doc.Has(f) {
		return domain.Date{}, nil
	}
	return index.DecodeDate(doc.String(f))
}
