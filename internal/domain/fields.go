package domain

// FieldKind is the storage and index strategy applied to a field.
type FieldKind uint8

const (
	// KindExact is stored and indexed as a single atomic token.
	KindExact FieldKind = iota + 1
	// KindText is stored and indexed as analyzed word tokens.
	KindText
	// KindSortable is an unstored exact copy of a text field used for sorting
	// and whole-value matching.
	KindSortable
	// KindDate is a calendar date stored as a fixed-width sortable string.
	KindDate
	// KindNumeric is stored as an integer and indexed as a numeric point.
	KindNumeric
	// KindStored is stored but never indexed.
	KindStored
)

func (k FieldKind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindText:
		return "text"
	case KindSortable:
		return "sortable"
	case KindDate:
		return "date"
	case KindNumeric:
		return "numeric"
	case KindStored:
		return "stored"
	default:
		return "unknown"
	}
}

// Field is a member of the closed set of index fields declared in this
// package. Its zero value is not a valid field.
type Field struct {
	name   string
	kind   FieldKind
	copyOf string
	multi  bool
}

// Name returns the index field name.
func (f Field) Name() string { return f.name }

// Kind returns the field encoding kind.
func (f Field) Kind() FieldKind { return f.kind }

// MultiValued reports whether a document may carry the field more than once.
func (f Field) MultiValued() bool { return f.multi }

// Stored reports whether the field value can be read back from the index.
func (f Field) Stored() bool { return f.kind != KindSortable }

// Indexed reports whether the field can be queried.
func (f Field) Indexed() bool { return f.kind != KindStored }

// IsValid reports whether f is one of the declared fields.
func (f Field) IsValid() bool { return f.name != "" && f.kind != 0 }

func (f Field) String() string { return f.name }

// Profile fields.
var (
	ProfileID            = Field{name: "id", kind: KindExact}
	ProfileName          = Field{name: "name", kind: KindText}
	ProfileNameSort      = Field{name: "name_sort", kind: KindSortable, copyOf: "name"}
	ProfileGender        = Field{name: "gender", kind: KindExact}
	ProfileDateOfBirth   = Field{name: "dateOfBirth", kind: KindDate}
	ProfileJobTitle      = Field{name: "jobTitle", kind: KindText}
	ProfileJobTitleExact = Field{name: "jobTitle_exact", kind: KindSortable, copyOf: "jobTitle"}
	ProfileSalary        = Field{name: "salary", kind: KindNumeric}
)

// Shopping list fields.
var (
	ShoppingListID         = Field{name: "id", kind: KindExact}
	ShoppingListName       = Field{name: "name", kind: KindText}
	ShoppingListNameSort   = Field{name: "name_sort", kind: KindSortable, copyOf: "name"}
	ShoppingListDate       = Field{name: "date", kind: KindDate}
	ShoppingListItems      = Field{name: "items", kind: KindExact, multi: true}
	ShoppingListItemsOrder = Field{name: "items_order", kind: KindStored}
	ShoppingListFileName   = Field{name: "fileName", kind: KindExact}
)

// Schema is the field table of one record variant.
type Schema struct {
	// Name identifies the variant, e.g. in logs and metric labels.
	Name string

	// ID is the field whose value becomes the document ID.
	ID Field

	// Sort is the field every query result is ordered by.
	Sort Field

	Fields []Field
}

// ProfileSchema is the field table for Profile records.
var ProfileSchema = Schema{
	Name: "profiles",
	ID:   ProfileID,
	Sort: ProfileNameSort,
	Fields: []Field{
		ProfileID,
		ProfileName,
		ProfileNameSort,
		ProfileGender,
		ProfileDateOfBirth,
		ProfileJobTitle,
		ProfileJobTitleExact,
		ProfileSalary,
	},
}

// ShoppingListSchema is the field table for ShoppingList records.
var ShoppingListSchema = Schema{
	Name: "shopping_lists",
	ID:   ShoppingListID,
	Sort: ShoppingListNameSort,
	Fields: []Field{
		ShoppingListID,
		ShoppingListName,
		ShoppingListNameSort,
		ShoppingListDate,
		ShoppingListItems,
		ShoppingListItemsOrder,
		ShoppingListFileName,
	},
}

// Lookup returns the schema field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SortableCopy returns the sortable copy the schema keeps for a text field.
func (s Schema) SortableCopy(f Field) (Field, bool) {
	for _, c := range s.Fields {
		if c.kind == KindSortable && c.copyOf == f.name {
			return c, true
		}
	}
	return Field{}, false
}

// StoredFieldNames returns the names of all fields that can be read back.
func (s Schema) StoredFieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Stored() {
			names = append(names, f.name)
		}
	}
	return names
}
