package coll

import (
	"iter"
	"slices"
	"strconv"
)

// setMembers is implemented by sets so that identity hashing can use the
// members' Identity Keys without recomputing them.
type setMembers interface {
	memberKeys() []string
}

// Set holds values that are unique under Identity Key equality.
//
// A hash set (NewHashSet) iterates in unspecified order; an ordered set
// (NewOrderedSet) iterates in insertion order. Both share the same contract.
type Set struct {
	items   map[string]any
	order   []string
	ordered bool
}

func NewHashSet(src any) (*Set, error) {
	return newSet("NewHashSet", src, false)
}

func NewOrderedSet(src any) (*Set, error) {
	return newSet("NewOrderedSet", src, true)
}

func HashSetOf(values ...any) *Set {
	return newSetOf(values, false)
}

func OrderedSetOf(values ...any) *Set {
	return newSetOf(values, true)
}

func newSet(op string, src any, ordered bool) (*Set, error) {
	values, err := valuesOf(op, src)
	if err != nil {
		return nil, err
	}
	return newSetOf(values, ordered), nil
}

func newSetOf(values []any, ordered bool) *Set {
	s := &Set{items: make(map[string]any, len(values)), ordered: ordered}
	for _, v := range values {
		s.put(IdentityKey(v), v)
	}
	return s
}

func (s *Set) Count() int      { return len(s.items) }
func (s *Set) IsEmpty() bool   { return len(s.items) == 0 }
func (s *Set) IsOrdered() bool { return s.ordered }
func (s *Set) String() string {
	return Dump(s)
}

func (s *Set) HasValue(v any) bool {
	_, found := s.items[IdentityKey(v)]
	return found
}

func (s *Set) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		if s.ordered {
			for _, k := range s.order {
				if !yield(s.items[k]) {
					return
				}
			}
			return
		}
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Set) ToArray() []any {
	out := make([]any, 0, len(s.items))
	for v := range s.Values() {
		out = append(out, v)
	}
	return out
}

func (s *Set) ToDictionary() map[string]any {
	d := make(map[string]any, len(s.items))
	i := 0
	for v := range s.Values() {
		d[strconv.Itoa(i)] = v
		i++
	}
	return d
}

func (s *Set) ToList() *List {
	return &List{items: s.ToArray()}
}

func (s *Set) ToMap() *Map {
	return s.ToList().ToMap()
}

// Clone returns an independent immutable copy of the same flavor.
func (s *Set) Clone() *Set {
	c := &Set{items: make(map[string]any, len(s.items)), ordered: s.ordered}
	for k, v := range s.items {
		c.items[k] = v
	}
	if s.ordered {
		c.order = slices.Clone(s.order)
	}
	return c
}

// Get returns v itself if the set contains it, and fails with ErrKeyNotFound
// otherwise.
func (s *Set) Get(v any) (any, error) {
	stored, found := s.items[IdentityKey(v)]
	if !found {
		return nil, collErrf("Get", ErrKeyNotFound, nil, "value not in set")
	}
	return stored, nil
}

func (s *Set) Has(v any) bool {
	return s.HasValue(v)
}

func (s *Set) Put(key any, v any) error {
	return unsupported("Put", "Set")
}

func (s *Set) Delete(key any) error {
	return unsupported("Delete", "Set")
}

func (s *Set) memberKeys() []string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

func (s *Set) put(key string, v any) bool {
	if _, found := s.items[key]; found {
		return false
	}
	s.items[key] = v
	if s.ordered {
		s.order = append(s.order, key)
	}
	return true
}

// keepIf drops the members for which keep returns false and reports whether
// anything was removed.
func (s *Set) keepIf(keep func(key string) bool) bool {
	removed := false
	for k := range s.items {
		if !keep(k) {
			delete(s.items, k)
			removed = true
		}
	}
	if removed && s.ordered {
		s.order = slices.DeleteFunc(s.order, func(k string) bool {
			_, found := s.items[k]
			return !found
		})
	}
	return removed
}
