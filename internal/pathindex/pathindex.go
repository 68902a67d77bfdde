// Package pathindex builds the ref-to-tree-path lookup the Navigation
// Engine and Passage Reconstructor use to locate a unit without
// re-walking the whole enumerated tree.
package pathindex

import "github.com/dtscore/dts/internal/core"

// Build walks units in document order and records each one's path of
// child indices, matching core.GetMemberByPath's walk semantics.
func Build(units []*core.CitableUnit) *core.PathIndex {
	idx := core.NewPathIndex()
	var walk func(level []*core.CitableUnit, prefix []int)
	walk = func(level []*core.CitableUnit, prefix []int) {
		for i, u := range level {
			path := make([]int, len(prefix)+1)
			copy(path, prefix)
			path[len(prefix)] = i
			idx.Append(u.Ref, path)
			if len(u.Children) > 0 {
				walk(u.Children, path)
			}
		}
	}
	walk(units, nil)
	return idx
}
