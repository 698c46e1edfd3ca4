package reconcile

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name            string
		withExtras      Set
		members         Set
		suppressRemoval bool
		wantAdd         []string
		wantRemove      []string
	}{
		{
			name:       "both empty",
			withExtras: NewSet(),
			members:    NewSet(),
		},
		{
			name:       "collection emptied when no extras remain",
			withExtras: NewSet(),
			members:    NewSet("x"),
			wantRemove: []string{"x"},
		},
		{
			name:       "first addition creates collection",
			withExtras: NewSet("x"),
			members:    nil,
			wantAdd:    []string{"x"},
		},
		{
			name:       "overlapping sets",
			withExtras: NewSet("1", "2", "3"),
			members:    NewSet("2", "3", "4"),
			wantAdd:    []string{"1"},
			wantRemove: []string{"4"},
		},
		{
			name:            "overlapping sets with removal suppressed",
			withExtras:      NewSet("1", "2", "3"),
			members:         NewSet("2", "3", "4"),
			suppressRemoval: true,
			wantAdd:         []string{"1"},
		},
		{
			name:       "disjoint sets swap fully",
			withExtras: NewSet("a", "b"),
			members:    NewSet("c", "d"),
			wantAdd:    []string{"a", "b"},
			wantRemove: []string{"c", "d"},
		},
		{
			name:       "identical sets are a no-op",
			withExtras: NewSet("a", "b"),
			members:    NewSet("a", "b"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Diff(tt.withExtras, tt.members, tt.suppressRemoval)
			if !reflect.DeepEqual(plan.Add, tt.wantAdd) {
				t.Errorf("Add = %v, want %v", plan.Add, tt.wantAdd)
			}
			if !reflect.DeepEqual(plan.Remove, tt.wantRemove) {
				t.Errorf("Remove = %v, want %v", plan.Remove, tt.wantRemove)
			}
		})
	}
}

func TestDiffIsIdempotent(t *testing.T) {
	withExtras := NewSet("1", "2", "3")
	members := NewSet("2", "3", "4")

	first := Diff(withExtras, members, false)

	// Apply the first plan to the membership set.
	updated := make(Set)
	for id := range members {
		updated[id] = struct{}{}
	}
	for _, id := range first.Add {
		updated[id] = struct{}{}
	}
	for _, id := range first.Remove {
		delete(updated, id)
	}

	second := Diff(withExtras, updated, false)
	if !second.Empty() {
		t.Fatalf("second pass should be a no-op, got %+v", second)
	}
}

func TestDiffOutputsAreSorted(t *testing.T) {
	plan := Diff(NewSet("c", "a", "b"), NewSet("z", "x", "y"), false)
	if !reflect.DeepEqual(plan.Add, []string{"a", "b", "c"}) {
		t.Fatalf("Add not sorted: %v", plan.Add)
	}
	if !reflect.DeepEqual(plan.Remove, []string{"x", "y", "z"}) {
		t.Fatalf("Remove not sorted: %v", plan.Remove)
	}
}
