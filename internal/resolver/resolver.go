// Package resolver implements the Reference Resolver: it walks a parsed
// TEI document against a compiled CitableStructure tree and enumerates
// every CitableUnit the grammar denotes, in document order.
//
// A single document-order index built once over the whole document (the
// Branch Merger) lets heterogeneous sibling CitableStructures — several
// declared child levels applicable at the same point in the tree — be
// interleaved by a single stable sort instead of pairwise document-order
// comparisons for every candidate pair.
package resolver

import (
	"sort"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/xmlnav"
)

type candidate struct {
	node      *xmlnav.Node
	unit      *core.CitableUnit
	structure *core.CitableStructure
}

// FindRefs enumerates the full reference tree for structure against root,
// the document's root node.
func FindRefs(root *xmlnav.Node, structure *core.CitableStructure) ([]*core.CitableUnit, error) {
	docIdx := xmlnav.BuildDocOrderIndex(root)
	return collect(root, []*core.CitableStructure{structure}, "", 1, docIdx)
}

// collect matches every structure in siblings against ctx, merges the
// candidates into document order, then recurses into each match's own
// children. This same path serves both the common single-structure case
// and the heterogeneous-sibling (branch merger) case: they differ only
// in how many structures are passed in.
func collect(ctx *xmlnav.Node, siblings []*core.CitableStructure, parentRef string, depth int, docIdx *xmlnav.DocOrderIndex) ([]*core.CitableUnit, error) {
	var pairs []candidate

	for _, cs := range siblings {
		nodes, err := xmlnav.Select(ctx, cs.Match)
		if err != nil {
			return nil, err
		}
		for i, n := range nodes {
			value, err := xmlnav.EvalUse(n, cs.Use, i+1)
			if err != nil {
				return nil, err
			}
			ref := value
			if parentRef != "" {
				ref = parentRef + cs.Delim + value
			}
			unit := &core.CitableUnit{
				CiteType: cs.CiteType,
				Ref:      ref,
				Parent:   parentRef,
				Level:    depth,
			}
			for _, d := range cs.Metadata {
				values, err := xmlnav.Select(n, d.XPath)
				if err != nil {
					return nil, err
				}
				for _, v := range values {
					unit.AddMetadata(d, xmlnav.StringValue(v))
				}
			}
			pairs = append(pairs, candidate{node: n, unit: unit, structure: cs})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return docIdx.Less(pairs[i].node, pairs[j].node)
	})

	units := make([]*core.CitableUnit, 0, len(pairs))
	for _, p := range pairs {
		if len(p.structure.Children) > 0 {
			children, err := collect(p.node, p.structure.Children, p.unit.Ref, depth+1, docIdx)
			if err != nil {
				return nil, err
			}
			p.unit.Children = children
		}
		units = append(units, p.unit)
	}
	return units, nil
}
