package xmlnav

import (
	"strings"
	"testing"
)

const sampleDoc = `<TEI>
  <text>
    <body>
      <div n="Luke">
        <div n="1">
          <l n="1">In the beginning</l>
          <l n="2">the word</l>
        </div>
        <div n="2">
          <l n="1">Again</l>
        </div>
      </div>
    </body>
  </text>
</TEI>`

func TestParseAndSelect(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	divs, err := Select(root, "//div")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(divs) != 3 {
		t.Fatalf("expected 3 divs, got %d", len(divs))
	}
}

func TestEvalUsePositional(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))
	n, _ := SelectOne(root, "//div[@n='Luke']")
	v, err := EvalUse(n, "position()", 7)
	if err != nil {
		t.Fatalf("EvalUse: %v", err)
	}
	if v != "7" {
		t.Fatalf("EvalUse positional = %q, want 7", v)
	}
}

func TestEvalUseAttribute(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))
	n, _ := SelectOne(root, "//div[@n='Luke']")
	v, err := EvalUse(n, "@n", 1)
	if err != nil {
		t.Fatalf("EvalUse: %v", err)
	}
	if v != "Luke" {
		t.Fatalf("EvalUse attribute = %q, want Luke", v)
	}
}

func TestDocOrderIndex(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))
	idx := BuildDocOrderIndex(root)
	divs, _ := Select(root, "//div")
	if !idx.Less(divs[0], divs[1]) {
		t.Fatal("expected first div to precede second in document order")
	}
	if idx.Less(divs[1], divs[0]) {
		t.Fatal("document order comparison is not antisymmetric")
	}
}

func TestIsDirectChild(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))
	luke, _ := SelectOne(root, "//div[@n='Luke']")
	one, _ := SelectOne(root, "//div[@n='1']")
	if !IsDirectChild(one, luke) {
		t.Fatal("expected div[@n=1] to be a direct child of div[@n=Luke]")
	}
}
