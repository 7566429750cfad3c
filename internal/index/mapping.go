package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/cassiomolin/lucene-example/internal/domain"
)

// NewIndexMapping creates the Bleve index mapping for a record schema.
// Only declared fields are indexed; anything else in a document is ignored.
func NewIndexMapping(schema domain.Schema) *mapping.IndexMappingImpl {
	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false

	for _, f := range schema.Fields {
		docMapping.AddFieldMappingsAt(f.Name(), fieldMapping(f.Kind()))
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name
	indexMapping.StoreDynamic = false
	indexMapping.IndexDynamic = false

	return indexMapping
}

func fieldMapping(kind domain.FieldKind) *mapping.FieldMapping {
	switch kind {
	case domain.KindText:
		return textField()
	case domain.KindSortable:
		return sortableField()
	case domain.KindNumeric:
		return numericField()
	case domain.KindStored:
		return storedOnlyField()
	default:
		// Exact and date fields are both single keyword terms.
		return keywordField()
	}
}

// keywordField indexes the whole value as one term and stores it.
func keywordField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = keyword.Name
	fm.Store = true
	fm.IncludeInAll = false
	return fm
}

// textField indexes word tokens and stores the original value.
func textField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = standard.Name
	fm.Store = true
	fm.IncludeTermVectors = true
	fm.IncludeInAll = false
	return fm
}

// sortableField is an unstored keyword copy with doc values for sorting.
func sortableField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = keyword.Name
	fm.Store = false
	fm.DocValues = true
	fm.IncludeInAll = false
	return fm
}

func numericField() *mapping.FieldMapping {
	fm := bleve.NewNumericFieldMapping()
	fm.Store = true
	fm.IncludeInAll = false
	return fm
}

func storedOnlyField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Store = true
	fm.Index = false
	fm.DocValues = false
	fm.IncludeInAll = false
	return fm
}
