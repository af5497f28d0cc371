package coll

import (
	"iter"
	"slices"
)

type entry struct {
	key   Key
	value any
}

// Map is an immutable key→value association. Keys are integers or strings
// (see Key); lookup is by key, iteration follows insertion order.
type Map struct {
	entries []entry
	index   map[Key]int
}

// NewMap builds a Map from any finite source. Keyed sources keep their keys
// (Go maps are visited in key order); sequential sources are keyed 0..n-1.
func NewMap(src any) (*Map, error) {
	keys, values, err := entriesOf("NewMap", src)
	if err != nil {
		return nil, err
	}
	m := newMapCap(len(keys))
	for i, k := range keys {
		m.put(k, values[i])
	}
	return m, nil
}

// MapOf builds a Map from alternating keys and values.
func MapOf(kv ...any) (*Map, error) {
	if len(kv)%2 != 0 {
		return nil, collErrf("MapOf", ErrInvalidArgument, nil, "odd number of arguments (%d)", len(kv))
	}
	m := newMapCap(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		k, err := KeyOf(kv[i])
		if err != nil {
			return nil, err
		}
		m.put(k, kv[i+1])
	}
	return m, nil
}

func newMapCap(n int) *Map {
	return &Map{
		entries: make([]entry, 0, n),
		index:   make(map[Key]int, n),
	}
}

func (m *Map) Count() int    { return len(m.entries) }
func (m *Map) IsEmpty() bool { return len(m.entries) == 0 }
func (m *Map) String() string {
	return Dump(m)
}

// Value returns the value stored under key. It fails with ErrKeyNotFound if
// the key is absent and with ErrInvalidArgument if key is not a valid key.
func (m *Map) Value(key any) (any, error) {
	k, err := KeyOf(key)
	if err != nil {
		return nil, err
	}
	i, found := m.index[k]
	if !found {
		return nil, collErrf("Value", ErrKeyNotFound, k.Value(), "")
	}
	return m.entries[i].value, nil
}

func (m *Map) HasKey(key any) bool {
	k, err := KeyOf(key)
	if err != nil {
		return false
	}
	_, found := m.index[k]
	return found
}

func (m *Map) Keys() []any {
	keys := make([]any, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key.Value()
	}
	return keys
}

func (m *Map) HasValue(v any) bool {
	_, found := m.KeyOf(v)
	return found
}

// KeyOf returns the key of the first entry whose value has the same Identity
// Key as v.
func (m *Map) KeyOf(v any) (any, bool) {
	key := IdentityKey(v)
	for _, e := range m.entries {
		if IdentityKey(e.value) == key {
			return e.key.Value(), true
		}
	}
	return nil, false
}

func (m *Map) Entries() iter.Seq2[Key, any] {
	return func(yield func(Key, any) bool) {
		for _, e := range m.entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// All yields plain keys (int or string) and values in insertion order.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, e := range m.entries {
			if !yield(e.key.Value(), e.value) {
				return
			}
		}
	}
}

func (m *Map) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range m.entries {
			if !yield(e.value) {
				return
			}
		}
	}
}

func (m *Map) ToArray() []any {
	out := make([]any, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.value
	}
	return out
}

func (m *Map) ToDictionary() map[string]any {
	d := make(map[string]any, len(m.entries))
	for _, e := range m.entries {
		d[e.key.String()] = e.value
	}
	return d
}

func (m *Map) ToList() *List {
	return &List{items: m.ToArray()}
}

func (m *Map) ToMap() *Map {
	c := newMapCap(len(m.entries))
	for _, e := range m.entries {
		c.put(e.key, e.value)
	}
	return c
}

func (m *Map) Get(key any) (any, error) {
	return m.Value(key)
}

func (m *Map) Has(key any) bool {
	return m.HasKey(key)
}

func (m *Map) Put(key any, v any) error {
	return unsupported("Put", "Map")
}

func (m *Map) Delete(key any) error {
	return unsupported("Delete", "Map")
}

// put upserts without validation; an existing key keeps its position.
func (m *Map) put(k Key, v any) bool {
	if m.index == nil {
		m.index = make(map[Key]int)
	}
	if i, found := m.index[k]; found {
		m.entries[i].value = v
		return false
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, entry{k, v})
	return true
}

// keepIf compacts the entries, keeping those for which keep returns true,
// and reports whether anything was removed.
func (m *Map) keepIf(keep func(e entry) bool) bool {
	n := 0
	for _, e := range m.entries {
		if keep(e) {
			m.entries[n] = e
			m.index[e.key] = n
			n++
		} else {
			delete(m.index, e.key)
		}
	}
	if n == len(m.entries) {
		return false
	}
	clear(m.entries[n:])
	m.entries = m.entries[:n]
	return true
}

func sortKeys(keys []Key) {
	slices.SortFunc(keys, func(a, b Key) int {
		if a == b {
			return 0
		} else if a.Less(b) {
			return -1
		}
		return 1
	})
}
