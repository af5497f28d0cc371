package coll

import (
	"iter"
	"strconv"
)

// List is an immutable, array-backed sequence. Indexes are always exactly
// 0..Count()-1. Build a List once with NewList or ListOf; use MutableList for
// a list that changes after construction.
type List struct {
	items []any
}

// NewList builds a List from any finite source: nil, a Collection, a slice or
// array, a Go map (values in key order) or an iter.Seq[any].
func NewList(src any) (*List, error) {
	items, err := valuesOf("NewList", src)
	if err != nil {
		return nil, err
	}
	return &List{items: items}, nil
}

func ListOf(values ...any) *List {
	return &List{items: append([]any(nil), values...)}
}

func (l *List) Count() int    { return len(l.items) }
func (l *List) IsEmpty() bool { return len(l.items) == 0 }
func (l *List) String() string {
	return Dump(l)
}

// Value returns the value at index i, failing with ErrOutOfBounds unless
// 0 <= i < Count().
func (l *List) Value(i int) (any, error) {
	if i < 0 || i >= len(l.items) {
		return nil, outOfBounds("Value", i, len(l.items))
	}
	return l.items[i], nil
}

func (l *List) First() (any, error) {
	if len(l.items) == 0 {
		return nil, emptyCollection("First")
	}
	return l.items[0], nil
}

func (l *List) Last() (any, error) {
	if len(l.items) == 0 {
		return nil, emptyCollection("Last")
	}
	return l.items[len(l.items)-1], nil
}

// IndexOf returns the index of the first value with the same Identity Key as
// v, or -1.
func (l *List) IndexOf(v any) int {
	key := IdentityKey(v)
	for i, item := range l.items {
		if IdentityKey(item) == key {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last value with the same Identity Key
// as v, or -1.
func (l *List) LastIndexOf(v any) int {
	key := IdentityKey(v)
	for i := len(l.items) - 1; i >= 0; i-- {
		if IdentityKey(l.items[i]) == key {
			return i
		}
	}
	return -1
}

func (l *List) HasValue(v any) bool {
	return l.IndexOf(v) >= 0
}

// RangeOfValues returns a new List over [start,end). It fails with
// ErrInvalidRange when end < start, start < 0 or end > Count().
func (l *List) RangeOfValues(start, end int) (*List, error) {
	items, err := l.rangeOf("RangeOfValues", start, end)
	if err != nil {
		return nil, err
	}
	return &List{items: items}, nil
}

func (l *List) rangeOf(op string, start, end int) ([]any, error) {
	if err := checkRange(op, start, end, len(l.items)); err != nil {
		return nil, err
	}
	return append([]any(nil), l.items[start:end]...), nil
}

func checkRange(op string, start, end, count int) error {
	if end < start || start < 0 || end > count {
		return invalidRange(op, start, end, count)
	}
	return nil
}

func (l *List) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range l.items {
			if !yield(v) {
				return
			}
		}
	}
}

func (l *List) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (l *List) Iterator() *Iterator {
	return NewIterator(l)
}

func (l *List) ToArray() []any {
	return append([]any(nil), l.items...)
}

func (l *List) ToDictionary() map[string]any {
	d := make(map[string]any, len(l.items))
	for i, v := range l.items {
		d[strconv.Itoa(i)] = v
	}
	return d
}

func (l *List) ToList() *List {
	return &List{items: l.ToArray()}
}

func (l *List) ToMap() *Map {
	m := newMapCap(len(l.items))
	for i, v := range l.items {
		m.put(IntKey(i), v)
	}
	return m
}

func (l *List) Get(key any) (any, error) {
	i, err := indexKey("Get", key)
	if err != nil {
		return nil, err
	}
	return l.Value(i)
}

func (l *List) Has(key any) bool {
	i, err := indexKey("Has", key)
	return err == nil && i >= 0 && i < len(l.items)
}

func (l *List) Put(key any, v any) error {
	return unsupported("Put", "List")
}

func (l *List) Delete(key any) error {
	return unsupported("Delete", "List")
}
