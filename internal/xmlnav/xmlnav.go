// Package xmlnav is the narrow abstraction the rest of the engine uses
// to talk to XML: parse, evaluate a locator relative to a node, read
// attributes/text, and compare document order. It is the only package
// that imports the XML/XPath engine directly (github.com/antchfx/xmlquery,
// which evaluates XPath through github.com/antchfx/xpath), the way the Grammar Compiler, Reference
// Resolver, and Passage Reconstructor all expect per the design notes:
// any XPath-capable engine with a document-order predicate would do.
package xmlnav

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Node is an XML element (or text/comment/attribute) node in a parsed
// document tree.
type Node = xmlquery.Node

// Parse reads r as an XML document and returns its root node.
func Parse(r io.Reader) (*Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("xmlnav: parse: %w", err)
	}
	return doc, nil
}

// Select evaluates expr relative to ctx and returns the matched nodes in
// document order.
func Select(ctx *Node, expr string) ([]*Node, error) {
	nodes, err := xmlquery.QuerySelectorAll(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("xmlnav: select %q: %w", expr, err)
	}
	return nodes, nil
}

// SelectOne evaluates expr relative to ctx and returns the first match,
// or nil if expr matched nothing.
func SelectOne(ctx *Node, expr string) (*Node, error) {
	node, err := xmlquery.QuerySelector(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("xmlnav: select %q: %w", expr, err)
	}
	return node, nil
}

// StringValue returns the string value of a matched node: an attribute's
// value if it is an attribute node, otherwise its concatenated text
// content.
func StringValue(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Type == xmlquery.AttributeNode {
		return n.InnerText()
	}
	return n.InnerText()
}

// EvalUse evaluates a level's `use` locator (either "position()" or an
// attribute/text expression) against a matched node. ord is the matched
// node's 1-based position among its siblings selected by the level's
// `match`, used when use is the positional function — the DTS grammar's
// own convention, since a bare XPath path can't combine a node-test with
// a function call the way match+"/"+use is declared.
func EvalUse(matched *Node, use string, ord int) (string, error) {
	if use == "position()" {
		return fmt.Sprintf("%d", ord), nil
	}
	expr := use
	if !strings.HasPrefix(expr, "@") && !strings.Contains(expr, "(") {
		expr = "./" + expr
	}
	n, err := SelectOne(matched, expr)
	if err != nil {
		return "", err
	}
	if n == nil {
		return "", nil
	}
	return StringValue(n), nil
}

// Attr returns the value of attribute name on n, or "" if absent.
func Attr(n *Node, name string) string {
	if n == nil {
		return ""
	}
	return n.SelectAttr(name)
}

// OutputXML serialises n's subtree back to XML text. When self is true
// n's own tag is written around its children; when false only the
// children are written.
func OutputXML(n *Node, self bool) string {
	return n.OutputXML(self)
}

// DocOrderIndex assigns every node in root's subtree an increasing
// integer in document (preorder) order, computed once so Branch Merger
// can sort candidates without repeated pairwise document-order checks
// (see design note on avoiding N² predicates).
type DocOrderIndex struct {
	index map[*Node]int
}

// BuildDocOrderIndex walks root's subtree once and records each node's
// preorder position.
func BuildDocOrderIndex(root *Node) *DocOrderIndex {
	idx := &DocOrderIndex{index: make(map[*Node]int)}
	seq := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		idx.index[n] = seq
		seq++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return idx
}

// Less reports whether a precedes b in document order. Unknown nodes
// (outside the indexed subtree) sort last.
func (d *DocOrderIndex) Less(a, b *Node) bool {
	ai, aok := d.index[a]
	bi, bok := d.index[b]
	if !aok {
		return false
	}
	if !bok {
		return true
	}
	return ai < bi
}

// SameNode reports whether a and b are the same underlying node.
func SameNode(a, b *Node) bool {
	return a == b
}

// IsText reports whether n is a text node, as opposed to an element.
func IsText(n *Node) bool {
	return n != nil && n.Type == xmlquery.TextNode
}

// TagName returns n's element name, including its namespace prefix if any.
func TagName(n *Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// AttrName returns a's local (unprefixed) attribute name.
func AttrName(a xmlquery.Attr) string {
	return a.Name.Local
}

// IsDirectChild reports whether n's parent is exactly parent.
func IsDirectChild(n, parent *Node) bool {
	return n != nil && n.Parent == parent
}
