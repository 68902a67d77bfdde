package nav

import (
	"testing"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/pathindex"
)

func sampleTree() []*core.CitableUnit {
	return []*core.CitableUnit{
		{Ref: "Luke", CiteType: "book", Level: 1, Children: []*core.CitableUnit{
			{Ref: "Luke 1", CiteType: "chapter", Level: 2, Children: []*core.CitableUnit{
				{Ref: "Luke 1:1", CiteType: "verse", Level: 3},
				{Ref: "Luke 1:2", CiteType: "verse", Level: 3},
			}},
		}},
		{Ref: "Mark", CiteType: "book", Level: 1, Children: []*core.CitableUnit{
			{Ref: "Mark 1", CiteType: "chapter", Level: 2},
		}},
	}
}

func refsOf(units []*core.CitableUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Ref
	}
	return out
}

func TestGetNavTopLevelDefault(t *testing.T) {
	units := sampleTree()
	idx := pathindex.Build(units)

	res, err := GetNav(units, idx, "", "", 1)
	if err != nil {
		t.Fatalf("GetNav: %v", err)
	}
	got := refsOf(res.Members)
	if len(got) != 2 || got[0] != "Luke" || got[1] != "Mark" {
		t.Fatalf("Members = %v, want [Luke Mark]", got)
	}
	if res.Start != nil || res.End != nil {
		t.Fatalf("expected no start/end summary when neither given")
	}
}

func TestGetNavStartOnlyStaysWithinSubtree(t *testing.T) {
	units := sampleTree()
	idx := pathindex.Build(units)

	res, err := GetNav(units, idx, "Luke", "", 1)
	if err != nil {
		t.Fatalf("GetNav: %v", err)
	}
	got := refsOf(res.Members)
	if len(got) != 1 || got[0] != "Luke 1" {
		t.Fatalf("Members = %v, want [Luke 1]", got)
	}
	if res.Start == nil || res.Start.Ref != "Luke" {
		t.Fatalf("Start = %v, want Luke", res.Start)
	}
	if res.End != nil {
		t.Fatalf("expected no end summary when end not given")
	}
}

func TestGetNavStartEndUnrestrictedDepth(t *testing.T) {
	units := sampleTree()
	idx := pathindex.Build(units)

	res, err := GetNav(units, idx, "Luke", "Luke 1", -1)
	if err != nil {
		t.Fatalf("GetNav: %v", err)
	}
	got := refsOf(res.Members)
	want := []string{"Luke 1", "Luke 1:1", "Luke 1:2"}
	if len(got) != len(want) {
		t.Fatalf("Members = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Members = %v, want %v", got, want)
		}
	}
	if res.Start == nil || res.Start.Ref != "Luke" || res.End == nil || res.End.Ref != "Luke 1" {
		t.Fatalf("Start/End = %v/%v", res.Start, res.End)
	}
}

func TestGetNavInvalidRangeOrder(t *testing.T) {
	units := sampleTree()
	idx := pathindex.Build(units)

	_, err := GetNav(units, idx, "Mark", "Luke", 1)
	if err == nil {
		t.Fatal("expected an error for a reversed range")
	}
	if e, ok := err.(*core.Error); !ok || e.Kind != core.KindInvalidRangeOrder {
		t.Fatalf("err = %v, want KindInvalidRangeOrder", err)
	}
}

func TestGetNavUnknownRef(t *testing.T) {
	units := sampleTree()
	idx := pathindex.Build(units)

	_, err := GetNav(units, idx, "Nonexistent", "", 1)
	if err == nil {
		t.Fatal("expected an error for an unknown ref")
	}
	if e, ok := err.(*core.Error); !ok || e.Kind != core.KindUnknownRef {
		t.Fatalf("err = %v, want KindUnknownRef", err)
	}
}

func TestGetNavBadDown(t *testing.T) {
	units := sampleTree()
	idx := pathindex.Build(units)

	if _, err := GetNav(units, idx, "", "", -2); err == nil {
		t.Fatal("expected an error for an invalid down value")
	}
}
