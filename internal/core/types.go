package core

// CitableStructure is one declared citation level, compiled from a
// citeStructure element. Immutable once built by the grammar compiler.
type CitableStructure struct {
	// CiteType is the semantic name of this level, e.g. "book", "verse".
	CiteType string

	// Match is the locator fragment selecting candidate nodes relative
	// to the parent context.
	Match string

	// Use is the locator fragment yielding the identifier value from a
	// matched node: an attribute expression, or "position()".
	Use string

	// Delim separates this level's identifier from its parent's in the
	// concatenated reference. May be empty.
	Delim string

	// Children are nested CitableStructures in declaration order.
	Children []*CitableStructure

	// Metadata are the CiteData bindings declared on this level.
	Metadata []CiteData
}

// IsPositional reports whether Use is the special positional function
// rather than an attribute/text expression.
func (s *CitableStructure) IsPositional() bool {
	return s.Use == "position()"
}

// CiteData is a metadata binding on a citation level.
type CiteData struct {
	// XPath produces string values relative to a matched unit.
	XPath string

	// Property is the metadata key, a URI by convention.
	Property string
}

// MetadataBucket classifies which map a CiteData's values land in.
type MetadataBucket string

const (
	BucketDublinCore MetadataBucket = "dublinCore"
	BucketExtension  MetadataBucket = "extension"
)

// dublinCoreTermsURI is the prefix that routes a CiteData's Property into
// the dublinCore bucket; anything else is an extension.
const dublinCoreTermsURI = "http://purl.org/dc/terms/"

// Bucket classifies a property strictly by its URI prefix. A property
// that doesn't start with the Dublin Core terms URI is always an
// extension, never misclassified into dublinCore (see design note on
// strict classification).
func (d CiteData) Bucket() MetadataBucket {
	if len(d.Property) >= len(dublinCoreTermsURI) && d.Property[:len(dublinCoreTermsURI)] == dublinCoreTermsURI {
		return BucketDublinCore
	}
	return BucketExtension
}

// CitableUnit is one node of the enumerated reference tree.
type CitableUnit struct {
	CiteType string
	Ref      string
	Parent   string // ref of the containing unit, or "" for top-level
	Level    int    // 1-based depth

	Children []*CitableUnit

	// DublinCore and Extension are multi-valued, order-preserving
	// metadata maps keyed by property name.
	DublinCore map[string][]string
	Extension  map[string][]string
}

// AddMetadata appends value to the appropriate bucket for d, preserving
// occurrence order.
func (u *CitableUnit) AddMetadata(d CiteData, value string) {
	switch d.Bucket() {
	case BucketDublinCore:
		if u.DublinCore == nil {
			u.DublinCore = make(map[string][]string)
		}
		u.DublinCore[d.Property] = append(u.DublinCore[d.Property], value)
	default:
		if u.Extension == nil {
			u.Extension = make(map[string][]string)
		}
		u.Extension[d.Property] = append(u.Extension[d.Property], value)
	}
}

// Summary returns a shallow copy of u with Children stripped, matching
// the navigation engine's contract of returning unit-summaries.
func (u *CitableUnit) Summary() *CitableUnit {
	cp := *u
	cp.Children = nil
	return &cp
}

// PathIndex maps a ref to the sequence of indices that walk units down
// through Children to reach it. Iteration order equals document order.
type PathIndex struct {
	order []string
	paths map[string][]int
}

// NewPathIndex returns an empty, ready-to-append PathIndex.
func NewPathIndex() *PathIndex {
	return &PathIndex{paths: make(map[string][]int)}
}

// Append records ref's path, preserving call order as the iteration order.
func (p *PathIndex) Append(ref string, path []int) {
	if _, exists := p.paths[ref]; exists {
		return
	}
	p.order = append(p.order, ref)
	pathCopy := make([]int, len(path))
	copy(pathCopy, path)
	p.paths[ref] = pathCopy
}

// Keys returns every ref in document order.
func (p *PathIndex) Keys() []string {
	return p.order
}

// Path returns the stored path for ref.
func (p *PathIndex) Path(ref string) ([]int, bool) {
	path, ok := p.paths[ref]
	return path, ok
}

// Len returns the number of indexed refs.
func (p *PathIndex) Len() int {
	return len(p.order)
}

// CitationTree is a named reference tree for a document.
type CitationTree struct {
	// Name is the declared tree name, or "" for the default/unnamed tree.
	Name string

	Root *CitableStructure

	// Units are the top-level CitableUnits, in document order.
	Units []*CitableUnit

	PathIndex *PathIndex
}

// GetMemberByPath walks units by path and returns the unit reached, or
// nil if path does not resolve (index out of range at any step).
func GetMemberByPath(units []*CitableUnit, path []int) *CitableUnit {
	var current *CitableUnit
	level := units
	for _, idx := range path {
		if idx < 0 || idx >= len(level) {
			return nil
		}
		current = level[idx]
		level = current.Children
	}
	return current
}
