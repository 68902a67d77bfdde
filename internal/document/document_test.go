package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTEI = `<TEI>
  <teiHeader>
    <refsDecl n="default" default="true">
      <citeStructure unit="book" match="//body/div" use="@n">
        <citeStructure unit="chapter" match="div" use="@n" delim=" ">
          <citeStructure unit="verse" match="div" use="@n" delim=":"/>
        </citeStructure>
      </citeStructure>
    </refsDecl>
  </teiHeader>
  <text><body>
    <div n="Luke">
      <div n="1">
        <div n="1"><w>In</w></div>
        <div n="2"><w>principio</w></div>
      </div>
    </div>
    <div n="Mark">
      <div n="1">
        <div n="1"><w>Solo</w></div>
      </div>
    </div>
  </body></text>
</TEI>`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.xml")
	if err := os.WriteFile(path, []byte(sampleTEI), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestOpenCompilesDefaultTree(t *testing.T) {
	doc, err := Open(writeSample(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.DefaultName != "default" {
		t.Fatalf("DefaultName = %q, want %q", doc.DefaultName, "default")
	}
	tree, err := doc.Tree("")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if len(tree.Units) != 2 {
		t.Fatalf("expected 2 books, got %d", len(tree.Units))
	}
}

func TestDocumentGetNav(t *testing.T) {
	doc, err := Open(writeSample(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	res, err := doc.GetNav("", "", "", 1)
	if err != nil {
		t.Fatalf("GetNav: %v", err)
	}
	if len(res.Members) != 2 || res.Members[0].Ref != "Luke" || res.Members[1].Ref != "Mark" {
		t.Fatalf("Members = %+v", res.Members)
	}
}

func TestDocumentGetPassage(t *testing.T) {
	doc, err := Open(writeSample(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	out, err := doc.GetPassage("", "Luke 1:1", "")
	if err != nil {
		t.Fatalf("GetPassage: %v", err)
	}
	if !strings.Contains(out, "In") || strings.Contains(out, "principio") {
		t.Fatalf("unexpected passage output: %s", out)
	}
}

func TestDocumentUnknownTree(t *testing.T) {
	doc, err := Open(writeSample(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := doc.Tree("nope"); err == nil {
		t.Fatal("expected an UnknownTree error")
	}
}
