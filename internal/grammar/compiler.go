// Package grammar compiles a declarative citeStructure tree into a
// CitationGrammar: a two-way translator between human-readable citation
// strings and XML-locator expressions (spec §4.1).
package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/xmlnav"
)

// CitationGrammar is the compiled Parser+Locator pair for one declared
// citeStructure tree.
type CitationGrammar struct {
	Structure *core.CitableStructure

	regex      *regexp.Regexp
	order      []string          // accumulated keys in declaration order
	citeType   map[string]string // key -> CiteType, for Parse's result
	templates  map[string]string // key -> "%s"-slot locator template
	positional map[string]bool   // key -> whether its Use is position()
}

// LevelMatch is one captured level from a successful Parse.
type LevelMatch struct {
	Key      string
	CiteType string
	Value    string
}

// Compile builds a CitationGrammar from the root citeStructure element of
// one declared citation tree.
func Compile(root *xmlnav.Node) (*CitationGrammar, error) {
	g := &CitationGrammar{
		citeType:   make(map[string]string),
		templates:  make(map[string]string),
		positional: make(map[string]bool),
	}

	frag, structure, err := g.compileLevel(root, "")
	if err != nil {
		return nil, err
	}
	g.Structure = structure

	re, err := regexp.Compile("^" + frag)
	if err != nil {
		return nil, fmt.Errorf("grammar: compiled pattern invalid: %w", err)
	}
	g.regex = re
	return g, nil
}

// compileLevel depth-first compiles one citeStructure element and its
// children, returning this level's regex fragment and semantic structure.
func (g *CitationGrammar) compileLevel(elem *xmlnav.Node, accumulated string) (string, *core.CitableStructure, error) {
	unit := xmlnav.Attr(elem, "unit")
	match := xmlnav.Attr(elem, "match")
	use := xmlnav.Attr(elem, "use")
	delim := xmlnav.Attr(elem, "delim")

	if unit == "" || match == "" || use == "" {
		return "", nil, core.New(core.KindRefSyntax, "citeStructure is missing unit, match, or use")
	}

	key := unit
	if accumulated != "" {
		key = accumulated + "__" + unit
	}

	structure := &core.CitableStructure{
		CiteType: unit,
		Match:    match,
		Use:      use,
		Delim:    delim,
	}

	children, err := xmlnav.Select(elem, "./citeStructure")
	if err != nil {
		return "", nil, err
	}

	citeDataNodes, err := xmlnav.Select(elem, "./citeData")
	if err != nil {
		return "", nil, err
	}
	for _, d := range citeDataNodes {
		structure.Metadata = append(structure.Metadata, core.CiteData{
			XPath:    xmlnav.Attr(d, "use"),
			Property: xmlnav.Attr(d, "property"),
		})
	}

	var childDelims strings.Builder
	for _, c := range children {
		childDelims.WriteString(xmlnav.Attr(c, "delim"))
	}
	charClass := "."
	if len(children) > 0 {
		charClass = "[^" + regexp.QuoteMeta(childDelims.String()) + "]"
	}

	var frag string
	if delim != "" {
		frag = fmt.Sprintf("(?:%s(?P<%s>%s+))", regexp.QuoteMeta(delim), key, charClass)
	} else {
		frag = fmt.Sprintf("(?P<%s>%s+)", key, charClass)
	}

	g.order = append(g.order, key)
	g.citeType[key] = unit
	if structure.IsPositional() {
		g.templates[key] = match + "[" + use + "=%s]"
	} else {
		g.templates[key] = match + "[" + use + "='%s']"
	}
	g.positional[key] = structure.IsPositional()

	var childFrags []string
	for _, c := range children {
		childFrag, childStructure, err := g.compileLevel(c, key)
		if err != nil {
			return "", nil, err
		}
		structure.Children = append(structure.Children, childStructure)
		childFrags = append(childFrags, childFrag)
	}

	switch len(childFrags) {
	case 0:
	case 1:
		frag += "(?:" + childFrags[0] + ")?"
	default:
		alts := make([]string, len(childFrags))
		for i, cf := range childFrags {
			alts[i] = "(?:" + cf + ")"
		}
		frag += "(?:" + strings.Join(alts, "|") + ")?"
	}

	return frag, structure, nil
}

// Parse matches ref against the aggregate regex and returns the captured
// levels in declaration order, skipping levels the reference didn't
// reach. Fails with a core.Error of KindRefSyntax on no match.
func (g *CitationGrammar) Parse(ref string) ([]LevelMatch, error) {
	m := g.regex.FindStringSubmatch(ref)
	if m == nil {
		return nil, core.New(core.KindRefSyntax, fmt.Sprintf("ref %q does not match its tree's grammar", ref))
	}
	names := g.regex.SubexpNames()
	byName := make(map[string]string, len(names))
	for i, name := range names {
		if name == "" || m[i] == "" {
			continue
		}
		byName[name] = m[i]
	}

	var out []LevelMatch
	for _, key := range g.order {
		v, ok := byName[key]
		if !ok {
			continue
		}
		out = append(out, LevelMatch{Key: key, CiteType: g.citeType[key], Value: v})
	}
	return out, nil
}

// ToLocator translates ref into the XML-locator expression selecting
// exactly the node it denotes.
func (g *CitationGrammar) ToLocator(ref string) (string, error) {
	matches, err := g.Parse(ref)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(matches))
	for _, lm := range matches {
		tmpl := g.templates[lm.Key]
		value := lm.Value
		if g.positional[lm.Key] {
			// positional: must be a valid integer, no quoting.
			if _, err := strconv.Atoi(value); err != nil {
				return "", core.Wrap(core.KindRefSyntax, "positional value is not numeric", err)
			}
		}
		parts = append(parts, fmt.Sprintf(tmpl, value))
	}

	locator := strings.Join(parts, "/")
	return strings.ReplaceAll(locator, "///", "//"), nil
}
