package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtscore/dts/internal/xmlnav"
)

func parseMetadataBlock(n *xmlnav.Node, selector string) ([]Metadata, error) {
	nodes, err := xmlnav.Select(n, selector)
	if err != nil {
		return nil, err
	}
	out := make([]Metadata, 0, len(nodes))
	for _, child := range nodes {
		out = append(out, Metadata{
			Term:     child.Data,
			Value:    xmlnav.StringValue(child),
			Language: xmlnav.Attr(child, "xml:lang"),
		})
	}
	return out, nil
}

// parseCollection parses one Collection/resource element, registers it
// (and its parent relationships) in cat, recurses into any ./members
// children, and returns the parsed Collection.
func parseCollection(elem *xmlnav.Node, basedir string, cat *Catalog) (*Collection, error) {
	identifier := xmlnav.Attr(elem, "identifier")
	if identifier == "" {
		return nil, fmt.Errorf("catalog: element %q is missing a required identifier attribute", elem.Data)
	}

	title, err := xmlnav.SelectOne(elem, "./title[1]")
	if err != nil {
		return nil, err
	}
	description, err := xmlnav.SelectOne(elem, "./description[1]")
	if err != nil {
		return nil, err
	}

	dublinCore, err := parseMetadataBlock(elem, "./dublinCore/*")
	if err != nil {
		return nil, err
	}
	extension, err := parseMetadataBlock(elem, "./extension/*")
	if err != nil {
		return nil, err
	}

	col := &Collection{
		Identifier: identifier,
		Title:      xmlnav.StringValue(title),
		Resource:   elem.Data == "resource",
		DublinCore: dublinCore,
		Extension:  extension,
	}
	if description != nil {
		col.Description = xmlnav.StringValue(description)
	}
	if col.Resource {
		if fp := xmlnav.Attr(elem, "filepath"); fp != "" {
			col.FilePath = filepath.Join(basedir, fp)
		}
	}

	parents, err := xmlnav.Select(elem, "./parent")
	if err != nil {
		return nil, err
	}
	for _, p := range parents {
		cat.Relationships = append(cat.Relationships, [2]string{xmlnav.StringValue(p), identifier})
	}

	cat.Objects[identifier] = col
	Register(col)

	members, err := xmlnav.Select(elem, "./members/*")
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		hasTitle, err := xmlnav.SelectOne(member, "./title")
		if err != nil {
			return nil, err
		}
		if hasTitle != nil {
			child, err := parseCollection(member, basedir, cat)
			if err != nil {
				return nil, err
			}
			cat.Relationships = append(cat.Relationships, [2]string{identifier, child.Identifier})
			continue
		}
		memberPath := filepath.Join(basedir, xmlnav.Attr(member, "filepath"))
		_, child, err := ParseFile(memberPath, cat)
		if err != nil {
			return nil, err
		}
		cat.Relationships = append(cat.Relationships, [2]string{identifier, child.Identifier})
	}

	return col, nil
}

// ParseFile ingests one collection descriptor file, adding everything it
// declares (including members referenced by a relative filepath) into
// cat, creating a fresh Catalog if cat is nil.
func ParseFile(path string, cat *Catalog) (*Catalog, *Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := xmlnav.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}

	if cat == nil {
		cat = NewCatalog()
	}
	basedir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}

	docElem, err := xmlnav.SelectOne(root, "/*")
	if err != nil {
		return nil, nil, err
	}
	if docElem == nil {
		return nil, nil, fmt.Errorf("catalog: %s has no root element", path)
	}

	col, err := parseCollection(docElem, basedir, cat)
	if err != nil {
		return nil, nil, err
	}
	return cat, col, nil
}
