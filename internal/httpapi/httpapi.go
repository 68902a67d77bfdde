// Package httpapi is the thin facade an HTTP (or other RPC) transport
// would sit on top of: it maps the core's abstract error kinds to status
// codes and exposes Navigation/Passage/Collection operations with no
// router or middleware of its own, since wiring an actual transport is
// out of scope here.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/dtscore/dts/internal/catalog"
	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/document"
	"github.com/dtscore/dts/internal/nav"
)

// StatusForKind maps one of the core's abstract error kinds to the HTTP
// status code a transport layer would return for it.
func StatusForKind(kind core.Kind) int {
	switch kind {
	case core.KindRefSyntax, core.KindBadRangeRequest:
		return http.StatusBadRequest
	case core.KindUnknownTree, core.KindUnknownRef:
		return http.StatusNotFound
	case core.KindInvalidRangeOrder:
		return http.StatusUnprocessableEntity
	case core.KindNonTraversable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MapError classifies err (a *core.Error if it came from the core, any
// other error otherwise) into a status code and message a transport
// layer can return directly.
func MapError(err error) (status int, kind core.Kind, message string) {
	var ce *core.Error
	if errors.As(err, &ce) {
		return StatusForKind(ce.Kind), ce.Kind, ce.Error()
	}
	return http.StatusInternalServerError, "", err.Error()
}

// Navigation exposes the Navigation Engine to a transport layer.
type Navigation struct {
	doc *document.Document
}

// NewNavigation wraps doc for navigation queries.
func NewNavigation(doc *document.Document) *Navigation {
	return &Navigation{doc: doc}
}

// Get answers one get_nav query, returning the status a transport
// should send alongside any error.
func (n *Navigation) Get(tree, start, end string, down int) (*nav.Result, int, error) {
	res, err := n.doc.GetNav(tree, start, end, down)
	if err != nil {
		status, _, _ := MapError(err)
		return nil, status, err
	}
	return res, http.StatusOK, nil
}

// Passage exposes the Passage Reconstructor to a transport layer.
type Passage struct {
	doc *document.Document
}

// NewPassage wraps doc for passage queries.
func NewPassage(doc *document.Document) *Passage {
	return &Passage{doc: doc}
}

// Get answers one get_passage query.
func (p *Passage) Get(tree, refOrStart, end string) (string, int, error) {
	out, err := p.doc.GetPassage(tree, refOrStart, end)
	if err != nil {
		status, _, _ := MapError(err)
		return "", status, err
	}
	return out, http.StatusOK, nil
}

// Collections exposes the ingested catalog registry to a transport
// layer.
type Collections struct{}

// Get returns the registered Collection for identifier.
func (Collections) Get(identifier string) (*catalog.Collection, int, error) {
	col, ok := catalog.Lookup(identifier)
	if !ok {
		return nil, http.StatusNotFound, core.New(core.KindUnknownRef, "collection "+identifier+" is not registered")
	}
	return col, http.StatusOK, nil
}

// List returns every registered Collection, sorted by identifier.
func (Collections) List() []*catalog.Collection {
	return catalog.All()
}
