package domain

import "math"

// MinSalary and MaxSalary bound Profile.Salary to the 32-bit range. Every
// value in it survives the index's float64 numeric encoding unchanged.
const (
	MinSalary = math.MinInt32
	MaxSalary = math.MaxInt32
)

// Profile is a personal-profile record.
type Profile struct {
	// ID is an opaque unique identifier taken from the payload.
	ID string `json:"id" yaml:"id" toml:"id"`

	// Name is the person's full name and the primary sort key.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Gender is a low-cardinality tag such as "female" or "male".
	Gender string `json:"gender" yaml:"gender" toml:"gender"`

	DateOfBirth Date   `json:"dateOfBirth" yaml:"dateOfBirth" toml:"dateOfBirth"`
	JobTitle    string `json:"jobTitle" yaml:"jobTitle" toml:"jobTitle"`
	Salary      int64  `json:"salary" yaml:"salary" toml:"salary"`
}

// ValidSalary reports whether Salary lies within MinSalary and MaxSalary.
func (p Profile) ValidSalary() bool {
	return p.Salary >= MinSalary && p.Salary <= MaxSalary
}

// ShoppingList is a shopping-list record loaded from a single source file.
type ShoppingList struct {
	// ID identifies the list. When the payload omits it the loader derives
	// a stable one from SourceFileName.
	ID string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`

	// Name is the owner of the list and the primary sort key.
	Name string `json:"name" yaml:"name" toml:"name"`

	Date Date `json:"date" yaml:"date" toml:"date"`

	// Items keeps payload order and may contain repeats.
	Items []string `json:"items" yaml:"items" toml:"items"`

	// SourceFileName is the file the list was loaded from. It is set by the
	// loader and is never part of the payload.
	SourceFileName string `json:"-" yaml:"-" toml:"-"`
}
