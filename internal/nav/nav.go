// Package nav implements the Navigation Engine's get_nav query: given a
// start/end ref range and a down depth, it returns the members in that
// window plus summaries of the range's endpoints.
package nav

import (
	"fmt"

	"github.com/dtscore/dts/internal/core"
)

// Result is the answer to one navigation query.
type Result struct {
	Members []*core.CitableUnit
	Start   *core.CitableUnit
	End     *core.CitableUnit
}

// GetNav answers a range/depth query over an enumerated reference tree
// and its path index. startOrRef and end may be empty to mean "unset".
// down follows the upstream convention: 0 means only the level reached,
// -1 means unrestricted depth, and N>0 means N levels below the level
// reached; callers with no explicit down should pass 1.
//
// When only start is given (and down is not 0), the window ends just
// before the next ref at start's depth or shallower, so it holds start
// and its descendants and nothing after them. In that case down≥1 starts
// one level below start, excluding start's own level.
func GetNav(units []*core.CitableUnit, idx *core.PathIndex, startOrRef, end string, down int) (*Result, error) {
	if down < -1 {
		return nil, core.New(core.KindBadRangeRequest, fmt.Sprintf("down must be -1, 0, or a positive integer, got %d", down))
	}

	keys := idx.Keys()
	hasStart := startOrRef != ""
	hasEnd := end != ""

	indexOf := func(ref string) int {
		for i, k := range keys {
			if k == ref {
				return i
			}
		}
		return -1
	}

	startIndex := 0
	endIndex := len(keys)

	var startPath, endPath []int

	if hasEnd {
		ei := indexOf(end)
		if ei < 0 {
			return nil, core.New(core.KindUnknownRef, fmt.Sprintf("end ref %q is not in the enumerated tree", end))
		}
		endPath, _ = idx.Path(end)
		endIndex = ei
		lenEnd := len(endPath)
		for offset, ref := range keys[ei+1:] {
			p, _ := idx.Path(ref)
			if samePrefix(p, endPath, lenEnd) {
				endIndex = ei + offset + 1
			} else {
				break
			}
		}
	}

	if hasStart {
		si := indexOf(startOrRef)
		if si < 0 {
			return nil, core.New(core.KindUnknownRef, fmt.Sprintf("start ref %q is not in the enumerated tree", startOrRef))
		}
		startIndex = si
		startPath, _ = idx.Path(startOrRef)

		if !hasEnd {
			if down == 0 {
				endIndex = len(keys)
			} else {
				for offset, ref := range keys[startIndex+1:] {
					p, _ := idx.Path(ref)
					if len(p) <= len(startPath) {
						endIndex = offset + startIndex
						break
					}
				}
			}
		}

		if startIndex > endIndex {
			return nil, core.New(core.KindInvalidRangeOrder, "start appears after end in document order")
		}
	}

	lo := startIndex
	hi := endIndex + 1
	if hi > len(keys) {
		hi = len(keys)
	}
	if lo > hi {
		lo = hi
	}
	window := keys[lo:hi]

	currentLevel := 0
	if hasStart && len(startPath) > currentLevel {
		currentLevel = len(startPath)
	}
	if hasEnd && len(endPath) > currentLevel {
		currentLevel = len(endPath)
	}

	members := make([]*core.CitableUnit, 0, len(window))
	for _, k := range window {
		p, ok := idx.Path(k)
		if !ok {
			continue
		}
		switch {
		case down == 0:
			if len(p) != currentLevel {
				continue
			}
		case down == -1:
			if len(p) < currentLevel {
				continue
			}
		default:
			minLevel := currentLevel
			if hasStart && !hasEnd {
				// §4.5 table: "start set, end unset, down≥1" returns
				// descendants starting one level deeper than start's own
				// level, not start's own level again.
				minLevel = currentLevel + 1
			}
			if len(p) < minLevel || len(p) > down+currentLevel {
				continue
			}
		}
		if u := core.GetMemberByPath(units, p); u != nil {
			members = append(members, u.Summary())
		}
	}

	result := &Result{Members: members}
	if hasStart {
		if u := core.GetMemberByPath(units, startPath); u != nil {
			result.Start = u.Summary()
		}
	}
	if hasEnd {
		if u := core.GetMemberByPath(units, endPath); u != nil {
			result.End = u.Summary()
		}
	}
	return result, nil
}

func samePrefix(p, q []int, n int) bool {
	if len(p) < n || len(q) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
