package coll

// SetLike is what set algebra needs from its operands: membership checks and
// iteration. Both *Set and *MutableSet satisfy it.
type SetLike interface {
	Collection
	HasValue(v any) bool
}

func copyToMutable(s SetLike) *MutableSet {
	return MutableHashSetOf(s.ToArray()...)
}

// Union returns s1 ∪ s2.
func Union(s1, s2 SetLike) *MutableSet {
	r := copyToMutable(s1)
	r.PutValues(s2.ToArray()...)
	return r
}

// Intersection returns s1 ∩ s2.
func Intersection(s1, s2 SetLike) *MutableSet {
	r := copyToMutable(s1)
	r.RetainValues(s2.ToArray()...)
	return r
}

// Difference returns the members of s1 that are not in s2.
func Difference(s1, s2 SetLike) *MutableSet {
	r := copyToMutable(s1)
	r.RemoveValues(s2.ToArray()...)
	return r
}

// SymmetricDifference returns (s1 ∪ s2) minus (s1 ∩ s2).
func SymmetricDifference(s1, s2 SetLike) *MutableSet {
	return Difference(Union(s1, s2), Intersection(s1, s2))
}

// IsSubset reports whether s1 contains every member of s2.
func IsSubset(s1, s2 SetLike) bool {
	for v := range s2.Values() {
		if !s1.HasValue(v) {
			return false
		}
	}
	return true
}

// IsSuperset reports whether s2 contains every member of s1.
func IsSuperset(s1, s2 SetLike) bool {
	return IsSubset(s2, s1)
}

// CartesianProduct returns the set of all tuples (as immutable Lists) taking
// one member from each set in order. The product of no sets is a set holding
// one empty tuple.
func CartesianProduct(sets ...SetLike) *MutableSet {
	if len(sets) == 0 {
		return MutableHashSetOf(ListOf())
	}
	rest := CartesianProduct(sets[1:]...)
	r := MutableHashSetOf()
	for v := range sets[0].Values() {
		for t := range rest.Values() {
			tuple := t.(*List)
			items := make([]any, 0, tuple.Count()+1)
			items = append(items, v)
			items = append(items, tuple.items...)
			r.PutValue(&List{items: items})
		}
	}
	return r
}

// PowerSet returns the set of all subsets of s, each an immutable hash Set.
// After processing k members the result holds exactly 2^k subsets.
func PowerSet(s SetLike) *MutableSet {
	subsets := []*Set{HashSetOf()}
	for v := range s.Values() {
		n := len(subsets)
		for _, sub := range subsets[:n] {
			grown := sub.Clone()
			grown.put(IdentityKey(v), v)
			subsets = append(subsets, grown)
		}
	}
	r := MutableHashSetOf()
	for _, sub := range subsets {
		r.PutValue(sub)
	}
	return r
}
