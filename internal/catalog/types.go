// Package catalog ingests hierarchical collection descriptors (TEI or
// DTS collection/resource trees declaring identifier, title, parents,
// members, and Dublin Core/extension metadata) and keeps a queryable
// registry of what has been ingested.
package catalog

// Metadata is one Dublin Core or extension metadata value attached to a
// Collection.
type Metadata struct {
	Term     string
	Value    string
	Language string
}

// Collection is one node of an ingested collection/resource tree.
type Collection struct {
	Identifier  string
	Title       string
	Description string
	DublinCore  []Metadata
	Extension   []Metadata
	Resource    bool
	FilePath    string
}

// Catalog accumulates every Collection discovered while ingesting one or
// more descriptor files, plus the parent/child relationships declared
// between them (a collection may be declared once and referenced as a
// member from several parents).
type Catalog struct {
	Relationships [][2]string
	Objects       map[string]*Collection
}

// NewCatalog returns an empty, ready-to-populate Catalog.
func NewCatalog() *Catalog {
	return &Catalog{Objects: make(map[string]*Collection)}
}
