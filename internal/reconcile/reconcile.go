package reconcile

import "sort"

// Set is a set of library item identifiers.
type Set map[string]struct{}

// NewSet builds a Set from identifiers.
func NewSet(ids ...string) Set {
	set := make(Set, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Plan lists the mutations needed to converge collection membership on the
// items that have local extras. Both slices are sorted and disjoint.
type Plan struct {
	Add    []string
	Remove []string
}

// Empty reports whether the plan contains no mutations.
func (p Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0
}

// Diff computes the plan that makes members equal withExtras. When
// suppressRemoval is set, items without extras are left in the collection and
// Remove is empty. A nil members set (collection does not exist yet) means
// every item with extras is added.
func Diff(withExtras, members Set, suppressRemoval bool) Plan {
	var plan Plan
	for id := range withExtras {
		if _, ok := members[id]; !ok {
			plan.Add = append(plan.Add, id)
		}
	}
	if !suppressRemoval {
		for id := range members {
			if _, ok := withExtras[id]; !ok {
				plan.Remove = append(plan.Remove, id)
			}
		}
	}
	sort.Strings(plan.Add)
	sort.Strings(plan.Remove)
	return plan
}
