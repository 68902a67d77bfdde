package core

import "testing"

func TestCiteDataBucket(t *testing.T) {
	cases := []struct {
		property string
		want     MetadataBucket
	}{
		{"http://purl.org/dc/terms/creator", BucketDublinCore},
		{"http://purl.org/dc/terms/", BucketDublinCore},
		{"http://purl.org/dc/terms", BucketExtension},
		{"myapp:level", BucketExtension},
		{"", BucketExtension},
	}
	for _, c := range cases {
		if got := (CiteData{Property: c.property}).Bucket(); got != c.want {
			t.Errorf("Bucket(%q) = %q, want %q", c.property, got, c.want)
		}
	}
}

func TestPathIndexOrderAndLookup(t *testing.T) {
	idx := NewPathIndex()
	idx.Append("Luke", []int{0})
	idx.Append("Luke 1", []int{0, 0})
	idx.Append("Mark", []int{1})

	if got := idx.Keys(); len(got) != 3 || got[0] != "Luke" || got[2] != "Mark" {
		t.Fatalf("unexpected key order: %v", got)
	}
	path, ok := idx.Path("Luke 1")
	if !ok || len(path) != 2 || path[1] != 0 {
		t.Fatalf("unexpected path: %v ok=%v", path, ok)
	}
	if _, ok := idx.Path("nope"); ok {
		t.Fatal("expected missing ref to report not found")
	}
}

func TestGetMemberByPath(t *testing.T) {
	units := []*CitableUnit{
		{Ref: "Luke", Children: []*CitableUnit{
			{Ref: "Luke 1", Children: []*CitableUnit{
				{Ref: "Luke 1:1"},
			}},
		}},
	}
	got := GetMemberByPath(units, []int{0, 0, 0})
	if got == nil || got.Ref != "Luke 1:1" {
		t.Fatalf("GetMemberByPath = %v", got)
	}
	if GetMemberByPath(units, []int{5}) != nil {
		t.Fatal("expected nil for out-of-range path")
	}
}
