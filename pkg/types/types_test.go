package types

import (
	"testing"
	"time"
)

func TestReferenceItems_Membership(t *testing.T) {
	refs := NewReferenceItems([]int64{1, 2}, []int64{2, 3})

	if !refs.IsLactate(1) || !refs.IsLactate(2) {
		t.Error("IsLactate: expected 1 and 2 to be members")
	}
	if refs.IsLactate(3) {
		t.Error("IsLactate(3): got true, want false")
	}
	if !refs.IsPH(2) || !refs.IsPH(3) {
		t.Error("IsPH: expected 2 and 3 to be members")
	}
	if refs.IsPH(1) {
		t.Error("IsPH(1): got true, want false")
	}
}

func TestReferenceItems_ItemIDs(t *testing.T) {
	refs := NewReferenceItems([]int64{5, 1, 5}, []int64{3, 1})

	got := refs.ItemIDs()
	want := []int64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("ItemIDs: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ItemIDs: got %v, want %v (sorted, deduplicated)", got, want)
		}
	}
}

func TestEpisode_Duration(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ep := Episode{Start: start, End: start.Add(130 * time.Minute)}

	if d := ep.Duration(); d != 130*time.Minute {
		t.Errorf("Duration: got %v, want 130m", d)
	}
}
