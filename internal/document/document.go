// Package document composes the Grammar Compiler, Reference Resolver,
// and Path Index into a single queryable handle over one parsed TEI
// file: every declared citation tree, compiled and enumerated once at
// open time.
package document

import (
	"fmt"
	"os"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/grammar"
	"github.com/dtscore/dts/internal/nav"
	"github.com/dtscore/dts/internal/passage"
	"github.com/dtscore/dts/internal/pathindex"
	"github.com/dtscore/dts/internal/resolver"
	"github.com/dtscore/dts/internal/xmlnav"
)

// Document is one opened TEI resource with every declared citation tree
// compiled and enumerated.
type Document struct {
	Path string
	Root *xmlnav.Node

	// Trees and Grammars are keyed by declared tree name, "" for a tree
	// with no n attribute.
	Trees    map[string]*core.CitationTree
	Grammars map[string]*grammar.CitationGrammar

	// DefaultName is the key into Trees/Grammars that an empty tree
	// name in a request resolves to.
	DefaultName string
}

// Open parses path and compiles + enumerates every citeStructure tree
// declared in its teiHeader/refsDecl elements.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := xmlnav.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("document: parsing %s: %w", path, err)
	}

	doc := &Document{
		Path:     path,
		Root:     root,
		Trees:    make(map[string]*core.CitationTree),
		Grammars: make(map[string]*grammar.CitationGrammar),
	}

	declarations, err := xmlnav.Select(root, "//refsDecl[./citeStructure]")
	if err != nil {
		return nil, err
	}
	if len(declarations) == 0 {
		return nil, core.New(core.KindUnknownTree, "document declares no citeStructure grammars")
	}

	defaultSeen := false
	for i, decl := range declarations {
		name := xmlnav.Attr(decl, "n")
		isDefault := xmlnav.Attr(decl, "default") == "true"

		root0, err := xmlnav.SelectOne(decl, "./citeStructure")
		if err != nil {
			return nil, err
		}
		if root0 == nil {
			return nil, core.New(core.KindRefSyntax, fmt.Sprintf("refsDecl %q has no citeStructure", name))
		}

		g, err := grammar.Compile(root0)
		if err != nil {
			return nil, err
		}
		units, err := resolver.FindRefs(root, g.Structure)
		if err != nil {
			return nil, err
		}

		doc.Trees[name] = &core.CitationTree{
			Name:      name,
			Root:      g.Structure,
			Units:     units,
			PathIndex: pathindex.Build(units),
		}
		doc.Grammars[name] = g

		if isDefault && !defaultSeen {
			doc.DefaultName = name
			defaultSeen = true
		}
		if i == 0 && !defaultSeen {
			doc.DefaultName = name
		}
	}

	return doc, nil
}

func (d *Document) resolveName(name string) string {
	if name == "" {
		return d.DefaultName
	}
	return name
}

// Tree returns the named citation tree, or the default tree if name is
// empty.
func (d *Document) Tree(name string) (*core.CitationTree, error) {
	t, ok := d.Trees[d.resolveName(name)]
	if !ok {
		return nil, core.New(core.KindUnknownTree, fmt.Sprintf("tree %q is not declared by this document", name))
	}
	return t, nil
}

// Grammar returns the named tree's compiled grammar, or the default
// tree's grammar if name is empty.
func (d *Document) Grammar(name string) (*grammar.CitationGrammar, error) {
	g, ok := d.Grammars[d.resolveName(name)]
	if !ok {
		return nil, core.New(core.KindUnknownTree, fmt.Sprintf("tree %q is not declared by this document", name))
	}
	return g, nil
}

// GetNav answers a navigation query against the named tree.
func (d *Document) GetNav(treeName, startOrRef, end string, down int) (*nav.Result, error) {
	tree, err := d.Tree(treeName)
	if err != nil {
		return nil, err
	}
	return nav.GetNav(tree.Units, tree.PathIndex, startOrRef, end, down)
}

// GetPassage reconstructs a passage against the named tree's grammar.
func (d *Document) GetPassage(treeName, refOrStart, end string) (string, error) {
	g, err := d.Grammar(treeName)
	if err != nil {
		return "", err
	}
	return passage.GetPassage(d.Root, g, refOrStart, end)
}
