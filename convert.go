package coll

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a plain keyed record, the shape UseObjects produces for
// map-shaped levels.
type Record map[string]any

// PathSeparator joins the keys of nested levels in Flatten and Unflatten.
const PathSeparator = "."

// levelOf splits v into keys and values if v is a nested level (a sequence,
// a map, a set or a struct). Sequences and sets are keyed 0..n-1.
func levelOf(op string, v any) ([]Key, []any, bool, error) {
	if compositeKind(v) != 0 {
		keys, vals, err := entriesOf(op, v)
		return keys, vals, true, err
	}
	if sv, ok := structValue(v); ok {
		keys, vals := reflectType(sv.Type()).entries(sv)
		return keys, vals, true, nil
	}
	return nil, nil, false, nil
}

// IsDictionary reports whether a level with the given keys is map-shaped.
// A level is list-shaped only when its keys are exactly 0, 1, 2, ... in
// order; an empty level is list-shaped.
func IsDictionary(keys []any) bool {
	for i, raw := range keys {
		k, err := KeyOf(raw)
		if err != nil || !k.IsInt() || k.Int() != i {
			return true
		}
	}
	return false
}

func isDictionaryKeys(keys []Key) bool {
	for i, k := range keys {
		if !k.IsInt() || k.Int() != i {
			return true
		}
	}
	return false
}

// Flatten walks nested sequences, maps, sets and structs and returns a flat
// Map from dotted paths ("a.0.b") to leaf values. Empty nested levels are
// kept as leaves. With stringify, every leaf is replaced by its string form.
func Flatten(data any, stringify bool) (*Map, error) {
	keys, vals, ok, err := levelOf("Flatten", data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, collErrf("Flatten", ErrInvalidArgument, nil, "%T is not a nested structure", data)
	}
	out := newMapCap(len(keys))
	for i, k := range keys {
		if err := flattenInto(out, k.String(), vals[i], stringify); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func flattenInto(out *Map, path string, v any, stringify bool) error {
	keys, vals, ok, err := levelOf("Flatten", v)
	if err != nil {
		return err
	}
	if !ok || len(keys) == 0 {
		if stringify {
			v = leafString(v)
		}
		out.put(StringKey(path), v)
		return nil
	}
	for i, k := range keys {
		if err := flattenInto(out, path+PathSeparator+k.String(), vals[i], stringify); err != nil {
			return err
		}
	}
	return nil
}

func leafString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case Key:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	if compositeKind(v) != 0 {
		return Dump(v)
	}
	return fmt.Sprint(v)
}

// flatLevel is one level of the tree Unflatten rebuilds. Values are either
// leaves or *flatLevel.
type flatLevel struct {
	m Map
}

// Unflatten is the inverse of Flatten: it splits every key of flat on dots
// and rebuilds the nested levels. List-shaped levels become *List, the rest
// become *Map. A path that is both a leaf and a level fails with
// ErrConflict.
func Unflatten(flat any) (any, error) {
	keys, vals, err := entriesOf("Unflatten", flat)
	if err != nil {
		return nil, err
	}
	root := &flatLevel{}
	for i, k := range keys {
		path := k.String()
		parts := strings.Split(path, PathSeparator)
		cur := root
		for j, part := range parts {
			pk := StringKey(part)
			idx, found := cur.m.index[pk]
			if j == len(parts)-1 {
				if found {
					return nil, collErrf("Unflatten", ErrConflict, path, "path is both a value and a nested level")
				}
				cur.m.put(pk, vals[i])
				break
			}
			if !found {
				child := &flatLevel{}
				cur.m.put(pk, child)
				cur = child
				continue
			}
			child, ok := cur.m.entries[idx].value.(*flatLevel)
			if !ok {
				return nil, collErrf("Unflatten", ErrConflict, path, "path is both a value and a nested level")
			}
			cur = child
		}
	}
	return root.build(), nil
}

func (lv *flatLevel) build() any {
	keys := make([]Key, len(lv.m.entries))
	vals := make([]any, len(lv.m.entries))
	for i, e := range lv.m.entries {
		keys[i] = e.key
		if child, ok := e.value.(*flatLevel); ok {
			vals[i] = child.build()
		} else {
			vals[i] = e.value
		}
	}
	if !isDictionaryKeys(keys) {
		return &List{items: vals}
	}
	m := newMapCap(len(keys))
	for i, k := range keys {
		m.put(k, vals[i])
	}
	return m
}

// reshape rebuilds every nested level of v bottom-up, handing list-shaped
// levels to seq and map-shaped levels to dict. Leaves are returned as is.
func reshape(op string, v any, seq func(vals []any) any, dict func(keys []Key, vals []any) any) (any, error) {
	keys, vals, ok, err := levelOf(op, v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return v, nil
	}
	for i, val := range vals {
		vals[i], err = reshape(op, val, seq, dict)
		if err != nil {
			return nil, err
		}
	}
	if isDictionaryKeys(keys) {
		return dict(keys, vals), nil
	}
	return seq(vals), nil
}

// UseArrays re-materializes v as plain Go values: []any for list-shaped
// levels and map[string]any for map-shaped ones.
func UseArrays(v any) (any, error) {
	return reshape("UseArrays", v,
		func(vals []any) any { return vals },
		func(keys []Key, vals []any) any {
			m := make(map[string]any, len(keys))
			for i, k := range keys {
				m[k.String()] = vals[i]
			}
			return m
		})
}

// UseCollections re-materializes v as containers: *List for list-shaped
// levels and *Map for map-shaped ones.
func UseCollections(v any) (any, error) {
	return reshape("UseCollections", v,
		func(vals []any) any { return &List{items: vals} },
		func(keys []Key, vals []any) any {
			m := newMapCap(len(keys))
			for i, k := range keys {
				m.put(k, vals[i])
			}
			return m
		})
}

// UseObjects re-materializes v as []any for list-shaped levels and Record
// for map-shaped ones.
func UseObjects(v any) (any, error) {
	return reshape("UseObjects", v,
		func(vals []any) any { return vals },
		func(keys []Key, vals []any) any {
			r := make(Record, len(keys))
			for i, k := range keys {
				r[k.String()] = vals[i]
			}
			return r
		})
}
