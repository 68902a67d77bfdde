package passage

import (
	"strings"

	"github.com/dtscore/dts/internal/xmlnav"
)

// outAttr is one attribute on a reconstructed node.
type outAttr struct {
	Name  string
	Value string
}

// outNode is a node of the freshly built passage tree. It is a plain,
// write-oriented structure distinct from xmlnav.Node (which is read and
// query oriented) because reconstruct_doc builds a brand new tree rather
// than mutating the parsed document.
type outNode struct {
	Tag      string
	Attrs    []outAttr
	Children []*outNode
	Text     string
	isText   bool
}

// copyNode builds a new outNode from n. When deep is false only the tag
// and attributes are copied (no children) — the shallow copy used while
// still walking down toward the passage boundary. When deep is true the
// whole subtree is copied, matching the point reconstruct_doc stops
// walking and takes everything below as-is.
func copyNode(n *xmlnav.Node, deep bool) *outNode {
	if n == nil {
		return nil
	}
	out := &outNode{Tag: xmlnav.TagName(n)}
	for _, a := range n.Attr {
		out.Attrs = append(out.Attrs, outAttr{Name: xmlnav.AttrName(a), Value: a.Value})
	}
	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if copied := copyChild(c); copied != nil {
				out.Children = append(out.Children, copied)
			}
		}
	}
	return out
}

// copyChild deep-copies one node of an already-matched subtree, whether
// element or text.
func copyChild(n *xmlnav.Node) *outNode {
	if xmlnav.IsText(n) {
		return &outNode{Text: n.Data, isText: true}
	}
	if n.Data == "" {
		return nil
	}
	child := &outNode{Tag: xmlnav.TagName(n)}
	for _, a := range n.Attr {
		child.Attrs = append(child.Attrs, outAttr{Name: xmlnav.AttrName(a), Value: a.Value})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if copied := copyChild(c); copied != nil {
			child.Children = append(child.Children, copied)
		}
	}
	return child
}

func appendChild(parent, child *outNode) {
	if parent == nil || child == nil {
		return
	}
	parent.Children = append(parent.Children, child)
}

// render serialises tree to well-formed XML text.
func render(tree *outNode) string {
	var b strings.Builder
	writeNode(&b, tree)
	return b.String()
}

func writeNode(b *strings.Builder, n *outNode) {
	if n == nil {
		return
	}
	if n.isText {
		escapeText(b, n.Text)
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		escapeAttr(b, a.Value)
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
