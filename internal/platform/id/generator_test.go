package id

import (
	"testing"
	"time"
)

func TestDraftGenerator_TimestampDerivedAndUnique(t *testing.T) {
	t.Parallel()

	fixed := time.UnixMilli(1760000000000)
	g := NewDraftGenerator()
	g.now = func() time.Time { return fixed }

	first, err := g.NewID()
	if err != nil {
		t.Fatalf("first id: %v", err)
	}
	second, err := g.NewID()
	if err != nil {
		t.Fatalf("second id: %v", err)
	}

	if first != "new-1760000000000" {
		t.Fatalf("unexpected first id: %s", first)
	}
	if second != "new-1760000000001" {
		t.Fatalf("expected bumped id for same millisecond, got %s", second)
	}
	if !IsDraft(first) || !IsDraft(second) {
		t.Fatalf("expected generated ids to be drafts")
	}
}

func TestIsDraft(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"new-1":                                true,
		"4a1c2f5e-8a43-4b71-9bd6-1f0b2f0a7d11": false,
		"":                                     false,
		"renew-1":                              false,
	}
	for in, want := range cases {
		if got := IsDraft(in); got != want {
			t.Fatalf("IsDraft(%q)=%t want %t", in, got, want)
		}
	}
}
