package coll

import (
	"math/rand/v2"
	"slices"
)

// MutableList extends List with in-place mutation. It shares List's
// representation; every mutator validates its arguments before touching the
// list, so a returned error means nothing changed.
type MutableList struct {
	List
}

func NewMutableList(src any) (*MutableList, error) {
	items, err := valuesOf("NewMutableList", src)
	if err != nil {
		return nil, err
	}
	return &MutableList{List{items: items}}, nil
}

func MutableListOf(values ...any) *MutableList {
	return &MutableList{List{items: append([]any(nil), values...)}}
}

// Immutable returns an immutable copy of the list.
func (l *MutableList) Immutable() *List {
	return l.List.ToList()
}

// RangeOfValues returns a new MutableList over [start,end).
func (l *MutableList) RangeOfValues(start, end int) (*MutableList, error) {
	items, err := l.rangeOf("RangeOfValues", start, end)
	if err != nil {
		return nil, err
	}
	return &MutableList{List{items: items}}, nil
}

func (l *MutableList) Iterator() *Iterator {
	return NewIterator(l)
}

func (l *MutableList) AddValue(v any) {
	l.items = append(l.items, v)
}

func (l *MutableList) AddValues(src any) error {
	values, err := valuesOf("AddValues", src)
	if err != nil {
		return err
	}
	l.items = append(l.items, values...)
	return nil
}

// InsertValue inserts v at index i, shifting later values right. Inserting at
// i == Count() appends.
func (l *MutableList) InsertValue(i int, v any) error {
	if i < 0 || i > len(l.items) {
		return outOfBounds("InsertValue", i, len(l.items)+1)
	}
	l.items = slices.Insert(l.items, i, v)
	return nil
}

func (l *MutableList) InsertValues(i int, src any) error {
	if i < 0 || i > len(l.items) {
		return outOfBounds("InsertValues", i, len(l.items)+1)
	}
	values, err := valuesOf("InsertValues", src)
	if err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, values...)
	return nil
}

// SetValue replaces the value at index i. Setting i == Count() appends.
func (l *MutableList) SetValue(i int, v any) error {
	switch {
	case i >= 0 && i < len(l.items):
		l.items[i] = v
	case i == len(l.items):
		l.items = append(l.items, v)
	default:
		return outOfBounds("SetValue", i, len(l.items)+1)
	}
	return nil
}

func (l *MutableList) RemoveIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return outOfBounds("RemoveIndex", i, len(l.items))
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// RemoveIndexes removes all given indexes at once; the remaining values are
// compacted so indexes stay contiguous. Duplicate indexes are allowed.
func (l *MutableList) RemoveIndexes(indexes ...int) error {
	drop, err := indexSet("RemoveIndexes", indexes, len(l.items))
	if err != nil {
		return err
	}
	l.keepIf(func(i int, _ any) bool { return !drop[i] })
	return nil
}

func (l *MutableList) RemoveRangeOfIndexes(start, end int) error {
	if err := checkRange("RemoveRangeOfIndexes", start, end, len(l.items)); err != nil {
		return err
	}
	l.items = slices.Delete(l.items, start, end)
	return nil
}

// RemoveValue removes every value with the same Identity Key as v.
func (l *MutableList) RemoveValue(v any) bool {
	key := IdentityKey(v)
	return l.keepIf(func(_ int, item any) bool { return IdentityKey(item) != key })
}

func (l *MutableList) RemoveValues(values ...any) bool {
	keys := identityKeys(values)
	return l.keepIf(func(_ int, item any) bool {
		_, found := keys[IdentityKey(item)]
		return !found
	})
}

// RetainIndex keeps only the value at index i.
func (l *MutableList) RetainIndex(i int) (bool, error) {
	if i < 0 || i >= len(l.items) {
		return false, outOfBounds("RetainIndex", i, len(l.items))
	}
	return l.keepIf(func(j int, _ any) bool { return j == i }), nil
}

func (l *MutableList) RetainIndexes(indexes ...int) (bool, error) {
	keep, err := indexSet("RetainIndexes", indexes, len(l.items))
	if err != nil {
		return false, err
	}
	return l.keepIf(func(i int, _ any) bool { return keep[i] }), nil
}

func (l *MutableList) RetainRangeOfIndexes(start, end int) (bool, error) {
	if err := checkRange("RetainRangeOfIndexes", start, end, len(l.items)); err != nil {
		return false, err
	}
	return l.keepIf(func(i int, _ any) bool { return i >= start && i < end }), nil
}

// RetainValue keeps only the values with the same Identity Key as v.
func (l *MutableList) RetainValue(v any) bool {
	key := IdentityKey(v)
	return l.keepIf(func(_ int, item any) bool { return IdentityKey(item) == key })
}

func (l *MutableList) RetainValues(values ...any) bool {
	keys := identityKeys(values)
	return l.keepIf(func(_ int, item any) bool {
		_, found := keys[IdentityKey(item)]
		return found
	})
}

func (l *MutableList) Reverse() {
	slices.Reverse(l.items)
}

// Shuffle applies a uniformly random permutation.
func (l *MutableList) Shuffle() {
	rand.Shuffle(len(l.items), func(i, j int) {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	})
}

func (l *MutableList) Clear() bool {
	if len(l.items) == 0 {
		return false
	}
	clear(l.items)
	l.items = l.items[:0]
	return true
}

func (l *MutableList) Put(key any, v any) error {
	i, err := indexKey("Put", key)
	if err != nil {
		return err
	}
	return l.SetValue(i, v)
}

func (l *MutableList) Delete(key any) error {
	i, err := indexKey("Delete", key)
	if err != nil {
		return err
	}
	return l.RemoveIndex(i)
}

// indexSet validates indexes against a sequence of count values.
func indexSet(op string, indexes []int, count int) (map[int]bool, error) {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= count {
			return nil, outOfBounds(op, i, count)
		}
		set[i] = true
	}
	return set, nil
}

// keepIf compacts the list in place, keeping the values for which keep
// returns true, and reports whether anything was removed.
func (l *MutableList) keepIf(keep func(i int, v any) bool) bool {
	n := 0
	for i, v := range l.items {
		if keep(i, v) {
			l.items[n] = v
			n++
		}
	}
	if n == len(l.items) {
		return false
	}
	clear(l.items[n:])
	l.items = l.items[:n]
	return true
}
