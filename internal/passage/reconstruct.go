// Package passage implements the Passage Reconstructor: given a start
// (and optional end) XML locator, it rebuilds the minimal well-formed
// XML subtree spanning that range, including the sibling-axis bridging
// needed when start and end fall under different parents.
package passage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/grammar"
	"github.com/dtscore/dts/internal/xmlnav"
)

var locatorStepPattern = regexp.MustCompile(`/(/?[^/]+)`)

// splitLocator breaks a slash-joined XML locator into one segment per
// step, keeping a leading "/" attached to a step when it followed "//"
// in the source (marking that step as traversing).
func splitLocator(locator string) []string {
	matches := locatorStepPattern.FindAllStringSubmatch(locator, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != "" {
			out = append(out, m[1])
		}
	}
	return out
}

// normalizeLocatorSteps mirrors the upstream normalize_xpath pass over an
// already-split step list.
func normalizeLocatorSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for i, s := range steps {
		if i > 0 && len(steps[i-1]) == 0 {
			out = append(out, "/"+s)
		} else if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// xpathWalk peels the first step off steps, folding the remaining steps
// into a predicate so the returned expression selects exactly the node
// that also satisfies the rest of the path.
func xpathWalk(steps []string) (string, []string) {
	if len(steps) > 1 {
		current := fmt.Sprintf("./%s[./%s]", steps[0], strings.Join(steps[1:], "/"))
		return current, steps[1:]
	}
	return "./" + steps[0], nil
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isTraversingXPath reports whether a ".//"-style expression actually
// reaches past a direct child — i.e. whether the first node it matches
// differs from what its direct-child equivalent would match.
func isTraversingXPath(parent *xmlnav.Node, xpath string) (bool, error) {
	if !strings.HasPrefix(xpath, ".//") {
		return false, nil
	}
	direct := strings.Replace(xpath, ".//", "./", 1)
	full, err := xmlnav.SelectOne(parent, xpath)
	if err != nil {
		return false, err
	}
	directNode, err := xmlnav.SelectOne(parent, direct)
	if err != nil {
		return false, err
	}
	if full == nil && directNode == nil {
		return false, nil
	}
	return !xmlnav.SameNode(full, directNode), nil
}

// xpathWalkStep evaluates one walk step against parent, returning the
// matched node and whether the step was a traversing one.
func xpathWalkStep(parent *xmlnav.Node, xpath string) (*xmlnav.Node, bool, error) {
	if strings.HasPrefix(xpath, ".//") {
		traversing, err := isTraversingXPath(parent, xpath)
		if err != nil {
			return nil, false, err
		}
		if traversing {
			n, err := xmlnav.SelectOne(parent, "./*["+xpath+"]")
			return n, true, err
		}
		n, err := xmlnav.SelectOne(parent, xpath)
		return n, false, err
	}
	n, err := xmlnav.SelectOne(parent, xpath)
	return n, false, err
}

// siblingAxisFragment rewrites a walk-step expression into the bare node
// test used inside a preceding-sibling::/following-sibling:: axis.
func siblingAxisFragment(current string, traversing bool) string {
	switch {
	case traversing && strings.HasPrefix(current, ".//"):
		return "*[" + current + "]"
	case !traversing && strings.HasPrefix(current, ".//"):
		return current[3:]
	default:
		return current[2:]
	}
}

// reconstructDoc is the recursive core of the Passage Reconstructor,
// ported from the reference implementation's reconstruct_doc.
func reconstructDoc(root *xmlnav.Node, startSteps, endSteps []string, newTree *outNode) (*outNode, error) {
	currentStart, queueStart := xpathWalk(startSteps)

	resultStart, startTraversing, err := xpathWalkStep(root, currentStart)
	if err != nil {
		return nil, err
	}
	if resultStart == nil {
		return nil, core.New(core.KindUnknownRef, fmt.Sprintf("locator step %q matched nothing", currentStart))
	}

	var currentEnd string
	var queueEnd []string
	haveCurrentEnd := false
	if startTraversing {
		queueStart = startSteps
		if stringSlicesEqual(endSteps, startSteps) {
			currentEnd, queueEnd = currentStart, queueStart
			haveCurrentEnd = true
		}
	}
	if !haveCurrentEnd {
		currentEnd, queueEnd = xpathWalk(endSteps)
	}

	sameSteps := stringSlicesEqual(startSteps, endSteps)
	same := sameSteps
	if !same {
		startNode, err := xmlnav.SelectOne(root, currentStart)
		if err != nil {
			return nil, err
		}
		endNode, err := xmlnav.SelectOne(root, currentEnd)
		if err != nil {
			return nil, err
		}
		same = xmlnav.SameNode(startNode, endNode)
	}

	if same {
		copied := copyNode(resultStart, len(queueStart) == 0)
		appendChild(newTree, copied)
		if newTree == nil {
			newTree = copied
		}
		if !sameSteps {
			trav, err := isTraversingXPath(root, currentEnd)
			if err != nil {
				return nil, err
			}
			if trav {
				queueEnd = endSteps
			}
		}
		if len(queueStart) > 0 {
			if _, err := reconstructDoc(resultStart, queueStart, queueEnd, copied); err != nil {
				return nil, err
			}
		}
		return newTree, nil
	}

	resultEnd, endTraversing, err := xpathWalkStep(root, currentEnd)
	if err != nil {
		return nil, err
	}
	if resultEnd == nil {
		return nil, core.New(core.KindUnknownRef, fmt.Sprintf("locator step %q matched nothing", currentEnd))
	}
	if endTraversing {
		queueEnd = endSteps
	}

	startCopy := copyNode(resultStart, len(queueStart) == 0)
	appendChild(newTree, startCopy)
	if len(queueStart) > 0 {
		if _, err := reconstructDoc(resultStart, queueStart, queueStart, startCopy); err != nil {
			return nil, err
		}
	}

	sibStart := siblingAxisFragment(currentStart, startTraversing)
	sibEnd := siblingAxisFragment(currentEnd, endTraversing)

	siblings, err := xmlnav.Select(root, fmt.Sprintf("./*[preceding-sibling::%s and following-sibling::%s]", sibStart, sibEnd))
	if err != nil {
		return nil, core.Wrap(core.KindNonTraversable, "start and end locators cannot be bridged via sibling axes", err)
	}
	for _, sib := range siblings {
		appendChild(newTree, copyNode(sib, true))
	}

	node := copyNode(resultEnd, len(queueEnd) == 0)
	appendChild(newTree, node)
	if len(queueEnd) > 0 {
		if _, err := reconstructDoc(resultEnd, queueEnd, queueEnd, node); err != nil {
			return nil, err
		}
	}

	return newTree, nil
}

// GetPassage rebuilds the minimal well-formed XML subtree denoted by
// refOrStart (and, if given, the inclusive range ending at end), using g
// to translate refs into XML locators. Passing neither returns the whole
// document serialised back out.
func GetPassage(doc *xmlnav.Node, g *grammar.CitationGrammar, refOrStart, end string) (string, error) {
	if refOrStart == "" {
		if end != "" {
			return "", core.New(core.KindBadRangeRequest, "end was given without a start ref")
		}
		return xmlnav.OutputXML(doc, true), nil
	}

	startLocator, err := g.ToLocator(refOrStart)
	if err != nil {
		return "", err
	}
	endLocator := startLocator
	if end != "" {
		endLocator, err = g.ToLocator(end)
		if err != nil {
			return "", err
		}
	}

	startSteps := normalizeLocatorSteps(splitLocator(startLocator))
	endSteps := normalizeLocatorSteps(splitLocator(endLocator))
	if len(startSteps) == 0 || len(endSteps) == 0 {
		return "", core.New(core.KindRefSyntax, "locator produced no path steps")
	}

	tree, err := reconstructDoc(doc, startSteps, endSteps, nil)
	if err != nil {
		return "", err
	}
	return render(tree), nil
}
