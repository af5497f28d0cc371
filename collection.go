package coll

import (
	"iter"
	"reflect"
)

// Collection is the export contract shared by every in-memory container.
type Collection interface {
	Count() int
	IsEmpty() bool
	Values() iter.Seq[any]
	// ToArray returns the values in iteration order, keys discarded.
	ToArray() []any
	// ToDictionary returns a flat keyed map; keys use their canonical string form.
	ToDictionary() map[string]any
	ToList() *List
	ToMap() *Map
}

// Sequence is an index-addressed collection with contiguous indexes 0..Count()-1.
type Sequence interface {
	Collection
	Value(i int) (any, error)
	All() iter.Seq2[int, any]
	IndexOf(v any) int
	LastIndexOf(v any) int
	HasValue(v any) bool
}

// Dictionary is a key-addressed collection.
type Dictionary interface {
	Collection
	Entries() iter.Seq2[Key, any]
	HasKey(key any) bool
}

// Accessor is the typed element access shared by all containers. Immutable
// containers fail Put and Delete with ErrUnsupported.
type Accessor interface {
	Get(key any) (any, error)
	Has(key any) bool
	Put(key any, v any) error
	Delete(key any) error
}

var (
	_ Sequence   = (*List)(nil)
	_ Sequence   = (*MutableList)(nil)
	_ Sequence   = (*LinkedList)(nil)
	_ Sequence   = (*MutableLinkedList)(nil)
	_ Dictionary = (*Map)(nil)
	_ Dictionary = (*MutableMap)(nil)
	_ Collection = (*Set)(nil)
	_ Collection = (*MutableSet)(nil)
	_ Accessor   = (*List)(nil)
	_ Accessor   = (*MutableList)(nil)
	_ Accessor   = (*LinkedList)(nil)
	_ Accessor   = (*MutableLinkedList)(nil)
	_ Accessor   = (*Map)(nil)
	_ Accessor   = (*MutableMap)(nil)
	_ Accessor   = (*Set)(nil)
	_ Accessor   = (*MutableSet)(nil)
)

// Iterator walks a Sequence by index. It holds a logical cursor, not a
// snapshot: mutating the underlying container while an iterator is live is
// not supported and gives unspecified results.
//
// States are "positioned at k" for k in [0,Count()) and "exhausted".
type Iterator struct {
	seq Sequence
	pos int
}

func NewIterator(seq Sequence) *Iterator {
	return &Iterator{seq: seq}
}

func (it *Iterator) Rewind()     { it.pos = 0 }
func (it *Iterator) Next()       { it.pos++ }
func (it *Iterator) Valid() bool { return it.pos >= 0 && it.pos < it.seq.Count() }
func (it *Iterator) Index() int  { return it.pos }

// Value returns the value at the cursor, or nil when the iterator is exhausted.
func (it *Iterator) Value() any {
	if !it.Valid() {
		return nil
	}
	v, _ := it.seq.Value(it.pos)
	return v
}

// valuesOf materializes any supported finite source into a fresh slice of
// values. Keys of keyed sources are discarded.
func valuesOf(op string, src any) ([]any, error) {
	switch src := src.(type) {
	case nil:
		return nil, nil
	case Collection:
		return src.ToArray(), nil
	case []any:
		return append([]any(nil), src...), nil
	case iter.Seq[any]:
		var out []any
		for v := range src {
			out = append(out, v)
		}
		return out, nil
	case string, []byte:
		return nil, collErrf(op, ErrInvalidArgument, nil, "%T is not iterable", src)
	}

	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		out := make([]any, n)
		for i := range n {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		_, vals, err := entriesOf(op, src)
		return vals, err
	default:
		return nil, collErrf(op, ErrInvalidArgument, nil, "%T is not iterable", src)
	}
}

// entriesOf materializes any supported finite source into parallel key and
// value slices. Sequential sources are keyed 0..n-1; Go maps are visited in
// key order so that construction is deterministic.
func entriesOf(op string, src any) ([]Key, []any, error) {
	switch src := src.(type) {
	case nil:
		return nil, nil, nil
	case Dictionary:
		keys := make([]Key, 0, src.Count())
		vals := make([]any, 0, src.Count())
		for k, v := range src.Entries() {
			keys = append(keys, k)
			vals = append(vals, v)
		}
		return keys, vals, nil
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Map {
		if kk := rv.Type().Key().Kind(); !isKeyKind(kk) && kk != reflect.Interface {
			return nil, nil, collErrf(op, ErrInvalidArgument, nil, "unsupported map key type %v", rv.Type().Key())
		}
		n := rv.Len()
		keys := make([]Key, 0, n)
		byKey := make(map[Key]any, n)
		it := rv.MapRange()
		for it.Next() {
			k, err := KeyOf(it.Key().Interface())
			if err != nil {
				return nil, nil, err
			}
			if _, dup := byKey[k]; !dup {
				keys = append(keys, k)
			}
			byKey[k] = it.Value().Interface()
		}
		sortKeys(keys)
		vals := make([]any, len(keys))
		for i, k := range keys {
			vals[i] = byKey[k]
		}
		return keys, vals, nil
	}

	vals, err := valuesOf(op, src)
	if err != nil {
		return nil, nil, err
	}
	keys := make([]Key, len(vals))
	for i := range vals {
		keys[i] = IntKey(i)
	}
	return keys, vals, nil
}

// indexKey converts an Accessor key into a list index.
func indexKey(op string, key any) (int, error) {
	switch key.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, Key:
	default:
		return 0, collErrf(op, ErrInvalidArgument, key, "index must be an integer, got %T", key)
	}
	k, err := KeyOf(key)
	if err != nil {
		return 0, err
	}
	if !k.IsInt() {
		return 0, collErrf(op, ErrInvalidArgument, key, "index must be an integer")
	}
	return k.Int(), nil
}
