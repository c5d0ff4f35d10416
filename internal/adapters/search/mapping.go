package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Document field names.
const (
	fieldUserID      = "user_id"
	fieldTitle       = "title"
	fieldSummary     = "summary"
	fieldDescription = "description"
	fieldExcerpt     = "excerpt"
	fieldNotes       = "notes"
	fieldURL         = "url"
	fieldTags        = "tags"
	fieldCategory    = "category"
	fieldCreatedAt   = "created_at"
)

// highlightFields are the stored text fields fragments are returned for.
var highlightFields = []string{fieldTitle, fieldSummary}

// buildIndexMapping returns the bookmark document mapping. Prose fields use
// the English analyzer, identifiers and tags are indexed verbatim.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()

	for _, name := range []string{fieldTitle, fieldSummary} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = en.AnalyzerName
		f.Store = true
		f.IncludeTermVectors = true
		doc.AddFieldMappingsAt(name, f)
	}

	// Large bodies are searchable but not stored.
	for _, name := range []string{fieldDescription, fieldExcerpt, fieldNotes} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = en.AnalyzerName
		f.Store = false
		f.IncludeTermVectors = true
		doc.AddFieldMappingsAt(name, f)
	}

	urlField := bleve.NewTextFieldMapping()
	urlField.Analyzer = simple.Name
	urlField.Store = true
	doc.AddFieldMappingsAt(fieldURL, urlField)

	for _, name := range []string{fieldUserID, fieldCategory} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		doc.AddFieldMappingsAt(name, f)
	}

	// Keyword keeps compound tags such as "machine-learning" intact.
	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = keyword.Name
	tagsField.Store = true
	doc.AddFieldMappingsAt(fieldTags, tagsField)

	createdAt := bleve.NewNumericFieldMapping()
	createdAt.Store = true
	doc.AddFieldMappingsAt(fieldCreatedAt, createdAt)

	indexMapping.DefaultMapping = doc

	return indexMapping
}
