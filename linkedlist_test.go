package coll

import (
	"slices"
	"testing"
)

func TestLinkedList_Basics(t *testing.T) {
	l := LinkedListOf("a", "b", "c")
	eq(t, l.Count(), 3)
	v, err := l.Value(2)
	ok(t, err)
	eq(t, v, any("c"))
	_, err = l.Value(3)
	isErr(t, err, ErrOutOfBounds)

	first, _ := l.First()
	last, _ := l.Last()
	eq(t, first, any("a"))
	eq(t, last, any("c"))

	i, err := l.Find("b")
	ok(t, err)
	eq(t, i, 1)
	i, err = l.Find("z")
	ok(t, err)
	eq(t, i, -1)

	_, err = LinkedListOf().Find("a")
	isErr(t, err, ErrEmptyCollection)
	_, err = LinkedListOf().Last()
	isErr(t, err, ErrEmptyCollection)

	isErr(t, l.Put(0, "x"), ErrUnsupported)
	isErr(t, l.Delete(0), ErrUnsupported)
}

func TestLinkedList_Range(t *testing.T) {
	l := must(NewLinkedList(ints(40)))
	r, err := l.RangeOfValues(20, 30)
	ok(t, err)
	eq(t, r.Count(), 10)
	v, _ := r.First()
	eq(t, v, any(20))
	v, _ = r.Last()
	eq(t, v, any(29))

	_, err = l.RangeOfValues(30, 20)
	isErr(t, err, ErrInvalidRange)
}

func TestMutableLinkedList_Edits(t *testing.T) {
	l := MutableLinkedListOf(2, 3)
	l.Prepend(1)
	l.Append(4)
	ok(t, l.InsertValue(2, "x"))
	deepEqual(t, l.ToArray(), []any{1, 2, "x", 3, 4})
	isErr(t, l.InsertValue(7, 0), ErrOutOfBounds)

	ok(t, l.SetValue(2, "y"))
	ok(t, l.SetValue(l.Count(), 5))
	deepEqual(t, l.ToArray(), []any{1, 2, "y", 3, 4, 5})
	isErr(t, l.SetValue(-1, 0), ErrOutOfBounds)

	ok(t, l.RemoveIndex(0))
	ok(t, l.RemoveIndex(l.Count()-1))
	deepEqual(t, l.ToArray(), []any{2, "y", 3, 4})
	last, _ := l.Last()
	eq(t, last, any(4))

	l.AddValue(6)
	last, _ = l.Last()
	eq(t, last, any(6))
}

func TestMutableLinkedList_RemoveAndDeleteNode(t *testing.T) {
	l := MutableLinkedListOf(1, 2, 1, 3, 1)
	found, err := l.DeleteNode(1)
	ok(t, err)
	eq(t, found, true)
	deepEqual(t, l.ToArray(), []any{2, 1, 3, 1})

	eq(t, l.RemoveValue(1), true)
	deepEqual(t, l.ToArray(), []any{2, 3})
	last, _ := l.Last()
	eq(t, last, any(3))

	found, err = l.DeleteNode(42)
	ok(t, err)
	eq(t, found, false)

	eq(t, l.RetainValues(3), true)
	deepEqual(t, l.ToArray(), []any{3})

	l.Clear()
	_, err = l.DeleteNode(3)
	isErr(t, err, ErrEmptyCollection)
}

func TestMutableLinkedList_PopFrontReusesNodes(t *testing.T) {
	l := MutableLinkedListOf()
	for i := range 100 {
		l.Append(i)
		v, err := l.PopFront()
		ok(t, err)
		eq(t, v, any(i))
	}
	eq(t, l.Count(), 0)
	if len(l.nodes) > 1 {
		t.Fatalf("arena grew to %d nodes, wanted reuse", len(l.nodes))
	}
	_, err := l.PopFront()
	isErr(t, err, ErrEmptyCollection)
}

func TestMutableLinkedList_Reverse(t *testing.T) {
	l := MutableLinkedListOf(1, 2, 3, 4)
	l.Reverse()
	deepEqual(t, slices.Collect(l.Values()), []any{4, 3, 2, 1})
	first, _ := l.First()
	last, _ := l.Last()
	eq(t, first, any(4))
	eq(t, last, any(1))
	l.Append(0)
	deepEqual(t, l.ToArray(), []any{4, 3, 2, 1, 0})

	empty := MutableLinkedListOf()
	empty.Reverse()
	eq(t, empty.Count(), 0)
}

func TestMutableLinkedList_Accessor(t *testing.T) {
	l := MutableLinkedListOf("a", "b")
	ok(t, l.Put(1, "c"))
	ok(t, l.Delete(0))
	deepEqual(t, l.ToArray(), []any{"c"})
	eq(t, l.Has(0), true)
	eq(t, l.Has(1), false)

	im := l.Immutable()
	l.Append("d")
	eq(t, im.Count(), 1)
}

func TestMutableLinkedList_RemoveByIndex(t *testing.T) {
	l := MutableLinkedListOf(0, 1, 2, 3, 4, 5)
	ok(t, l.RemoveIndexes(4, 0, 4))
	deepEqual(t, l.ToArray(), []any{1, 2, 3, 5})
	isErr(t, l.RemoveIndexes(1, 4), ErrOutOfBounds)
	deepEqual(t, l.ToArray(), []any{1, 2, 3, 5})

	ok(t, l.RemoveRangeOfIndexes(1, 3))
	deepEqual(t, l.ToArray(), []any{1, 5})
	isErr(t, l.RemoveRangeOfIndexes(1, 0), ErrInvalidRange)
	isErr(t, l.RemoveRangeOfIndexes(0, 3), ErrInvalidRange)
	ok(t, l.RemoveRangeOfIndexes(2, 2))
	deepEqual(t, l.ToArray(), []any{1, 5})

	ok(t, l.RemoveRangeOfIndexes(1, 2))
	last, _ := l.Last()
	eq(t, last, any(1))
	l.Append(9)
	deepEqual(t, l.ToArray(), []any{1, 9})
}

func TestMutableLinkedList_Retain(t *testing.T) {
	l := MutableLinkedListOf("a", "b", "c", "d")
	changed, err := l.RetainIndexes(3, 1)
	ok(t, err)
	eq(t, changed, true)
	deepEqual(t, l.ToArray(), []any{"b", "d"})
	_, err = l.RetainIndexes(0, 2)
	isErr(t, err, ErrOutOfBounds)
	deepEqual(t, l.ToArray(), []any{"b", "d"})

	changed, err = l.RetainIndex(1)
	ok(t, err)
	eq(t, changed, true)
	deepEqual(t, l.ToArray(), []any{"d"})
	_, err = l.RetainIndex(1)
	isErr(t, err, ErrOutOfBounds)
	changed, err = l.RetainIndex(0)
	ok(t, err)
	eq(t, changed, false)

	l = MutableLinkedListOf(0, 1, 2, 3, 4)
	changed, err = l.RetainRangeOfIndexes(1, 4)
	ok(t, err)
	eq(t, changed, true)
	deepEqual(t, l.ToArray(), []any{1, 2, 3})
	changed, err = l.RetainRangeOfIndexes(0, 3)
	ok(t, err)
	eq(t, changed, false)
	_, err = l.RetainRangeOfIndexes(2, 5)
	isErr(t, err, ErrInvalidRange)

	l = MutableLinkedListOf(1, "x", ListOf(1), 1, 2)
	eq(t, l.RetainValue(1), true)
	deepEqual(t, l.ToArray(), []any{1, 1})
	eq(t, l.RetainValue(1), false)
	l.Append(3)
	last, _ := l.Last()
	eq(t, last, any(3))
}

func TestMutableLinkedList_Shuffle(t *testing.T) {
	l := must(NewMutableLinkedList(ints(50)))
	ok(t, l.RemoveIndex(0))
	l.Prepend(0)
	l.Shuffle()
	eq(t, l.Count(), 50)
	seen := make(map[any]bool)
	for v := range l.Values() {
		seen[v] = true
	}
	eq(t, len(seen), 50)
	for i := range 50 {
		if !l.HasValue(i) {
			t.Fatalf("Shuffle lost value %d", i)
		}
	}

	empty := MutableLinkedListOf()
	empty.Shuffle()
	eq(t, empty.Count(), 0)
}
