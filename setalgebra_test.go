package coll

import "testing"

func assertSetEquals(t testing.TB, s SetLike, values ...any) {
	t.Helper()
	if !Equal(s, HashSetOf(values...)) {
		t.Fatalf("** got %v, wanted %v", Dump(s), Dump(HashSetOf(values...)))
	}
}

func TestSetAlgebra_Basic(t *testing.T) {
	a := HashSetOf(1, 2, 3)
	b := OrderedSetOf(3, 4)

	assertSetEquals(t, Union(a, b), 1, 2, 3, 4)
	assertSetEquals(t, Intersection(a, b), 3)
	assertSetEquals(t, Difference(a, b), 1, 2)
	assertSetEquals(t, Difference(b, a), 4)
	assertSetEquals(t, SymmetricDifference(a, b), 1, 2, 4)

	eq(t, a.Count(), 3)
	eq(t, b.Count(), 2)
}

func TestSetAlgebra_UnionCardinality(t *testing.T) {
	a := MutableHashSetOf("x", "y", ListOf(1), 5)
	b := HashSetOf("y", []any{1}, 6, 7)
	u := Union(a, b)
	i := Intersection(a, b)
	eq(t, u.Count(), a.Count()+b.Count()-i.Count())
	eq(t, i.Count(), 2)
}

func TestSetAlgebra_SubsetSuperset(t *testing.T) {
	big := HashSetOf(1, 2, 3)
	small := HashSetOf(1, 3)
	eq(t, IsSubset(big, small), true)
	eq(t, IsSubset(small, big), false)
	eq(t, IsSuperset(small, big), true)
	eq(t, IsSuperset(big, small), false)
	eq(t, IsSubset(big, HashSetOf()), true)
	eq(t, IsSubset(big, big), true)
}

func TestSetAlgebra_CartesianProduct(t *testing.T) {
	a := OrderedSetOf(1, 2)
	b := OrderedSetOf("x", "y", "z")
	p := CartesianProduct(a, b)
	eq(t, p.Count(), 6)
	eq(t, p.HasValue(ListOf(2, "y")), true)
	eq(t, p.HasValue([]any{"y", 2}), false)

	for tuple := range p.Values() {
		eq(t, tuple.(*List).Count(), 2)
	}

	empty := CartesianProduct()
	eq(t, empty.Count(), 1)
	eq(t, empty.HasValue([]any{}), true)

	eq(t, CartesianProduct(a, HashSetOf()).Count(), 0)
}

func TestSetAlgebra_PowerSet(t *testing.T) {
	p := PowerSet(HashSetOf(1, 2))
	eq(t, p.Count(), 4)
	for _, sub := range [][]any{{}, {1}, {2}, {1, 2}} {
		if !p.HasValue(HashSetOf(sub...)) {
			t.Errorf("PowerSet missing %v", sub)
		}
	}

	eq(t, PowerSet(HashSetOf()).Count(), 1)
	eq(t, PowerSet(OrderedSetOf("a", "b", "c", "d", "e")).Count(), 32)
}
