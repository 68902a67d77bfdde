package passage

import (
	"strings"
	"testing"

	"github.com/dtscore/dts/internal/grammar"
	"github.com/dtscore/dts/internal/xmlnav"
)

const sampleCiteStructure = `
<citeStructure unit="book" match="//body/div" use="@n">
  <citeStructure unit="chapter" match="div" use="@n" delim=" ">
    <citeStructure unit="verse" match="div" use="@n" delim=":"/>
  </citeStructure>
</citeStructure>`

const sampleDoc = `<TEI><text><body>
<div n="Luke">
  <div n="1">
    <div n="1"><w>In</w><w>principio</w></div>
    <div n="2"><w>erat</w></div>
  </div>
  <div n="2">
    <div n="1"><w>Solo</w></div>
  </div>
</div>
</body></text></TEI>`

func mustGrammar(t *testing.T) *grammar.CitationGrammar {
	t.Helper()
	root, err := xmlnav.Parse(strings.NewReader(sampleCiteStructure))
	if err != nil {
		t.Fatalf("xmlnav.Parse grammar: %v", err)
	}
	cs, err := xmlnav.SelectOne(root, "//citeStructure")
	if err != nil || cs == nil {
		t.Fatalf("locating root citeStructure: %v", err)
	}
	g, err := grammar.Compile(cs)
	if err != nil {
		t.Fatalf("grammar.Compile: %v", err)
	}
	return g
}

func TestGetPassageSingleRef(t *testing.T) {
	g := mustGrammar(t)
	doc, err := xmlnav.Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("xmlnav.Parse doc: %v", err)
	}

	out, err := GetPassage(doc, g, "Luke 1:1", "")
	if err != nil {
		t.Fatalf("GetPassage: %v", err)
	}

	for _, want := range []string{"<TEI>", "<text>", "<body", `n="Luke"`, `n="1"`, "<w>In</w>", "<w>principio</w>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "erat") {
		t.Fatalf("output should not include sibling verse content:\n%s", out)
	}
	if strings.Contains(out, "Solo") {
		t.Fatalf("output should not include sibling chapter content:\n%s", out)
	}
}

func TestGetPassageWholeDocument(t *testing.T) {
	g := mustGrammar(t)
	doc, err := xmlnav.Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("xmlnav.Parse doc: %v", err)
	}
	out, err := GetPassage(doc, g, "", "")
	if err != nil {
		t.Fatalf("GetPassage: %v", err)
	}
	if !strings.Contains(out, "erat") || !strings.Contains(out, "Solo") {
		t.Fatalf("whole-document passage should contain everything:\n%s", out)
	}
}

func TestGetPassageRange(t *testing.T) {
	g := mustGrammar(t)
	doc, err := xmlnav.Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("xmlnav.Parse doc: %v", err)
	}
	out, err := GetPassage(doc, g, "Luke 1:1", "Luke 1:2")
	if err != nil {
		t.Fatalf("GetPassage: %v", err)
	}
	if !strings.Contains(out, "principio") || !strings.Contains(out, "erat") {
		t.Fatalf("range passage should span both verses:\n%s", out)
	}
	if strings.Contains(out, "Solo") {
		t.Fatalf("range passage should not spill into the next chapter:\n%s", out)
	}
}
