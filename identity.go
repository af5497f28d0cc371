package coll

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Class is the coarse classification of a value for identity purposes.
type Class int

const (
	// ClassUnknown covers values of unsupported kinds (structs, funcs, channels,
	// pointers that are not Objects). Their identity is a degraded,
	// collision-tolerant digest of their formatted representation.
	ClassUnknown Class = iota
	// ClassPrimitive covers every value compared by content: null, bool,
	// integers, floats, strings, sequences, maps and sets.
	ClassPrimitive
	// ClassObject covers Object values, compared by their instance id.
	ClassObject
)

func (c Class) String() string {
	switch c {
	case ClassPrimitive:
		return "primitive"
	case ClassObject:
		return "object"
	default:
		return "unknown"
	}
}

// Object is an opaque value compared by identity rather than by content.
// Embed *ObjectRef (or ObjectRef in a struct used through a pointer) to get one.
type Object interface {
	ObjectID() uint64
}

var lastObjectID atomic.Uint64

// ObjectRef hands out a process-unique instance id on first use.
type ObjectRef struct {
	id uint64
}

// NewObjectRef returns a reference with a freshly allocated id.
func NewObjectRef() ObjectRef {
	return ObjectRef{id: lastObjectID.Add(1)}
}

func (r *ObjectRef) ObjectID() uint64 {
	if r.id == 0 {
		r.id = lastObjectID.Add(1)
	}
	return r.id
}

// canonical encoding tags
const (
	tagNull     byte = 'N'
	tagBool     byte = 'B'
	tagInt      byte = 'I'
	tagUint     byte = 'U'
	tagFloat    byte = 'D'
	tagString   byte = 'S'
	tagSequence byte = 'A'
	tagMap      byte = 'M'
	tagSet      byte = 'E'
	tagObject   byte = 'O'
	tagUnknown  byte = '?'
)

// Classify returns the class, the type name and the Identity Key of v.
// Two values are equal for membership purposes iff their Identity Keys match.
func Classify(v any) (Class, string, string) {
	switch v := v.(type) {
	case nil:
		return ClassPrimitive, "null", "n:"
	case bool:
		if v {
			return ClassPrimitive, "bool", "b:1"
		}
		return ClassPrimitive, "bool", "b:0"
	case int:
		return ClassPrimitive, "int", "i:" + strconv.FormatInt(int64(v), 10)
	case int64:
		return ClassPrimitive, "int", "i:" + strconv.FormatInt(v, 10)
	case int32:
		return ClassPrimitive, "int", "i:" + strconv.FormatInt(int64(v), 10)
	case int16:
		return ClassPrimitive, "int", "i:" + strconv.FormatInt(int64(v), 10)
	case int8:
		return ClassPrimitive, "int", "i:" + strconv.FormatInt(int64(v), 10)
	case uint:
		return ClassPrimitive, "int", "i:" + strconv.FormatUint(uint64(v), 10)
	case uint64:
		return ClassPrimitive, "int", "i:" + strconv.FormatUint(v, 10)
	case uint32:
		return ClassPrimitive, "int", "i:" + strconv.FormatUint(uint64(v), 10)
	case uint16:
		return ClassPrimitive, "int", "i:" + strconv.FormatUint(uint64(v), 10)
	case uint8:
		return ClassPrimitive, "int", "i:" + strconv.FormatUint(uint64(v), 10)
	case float64:
		return ClassPrimitive, "float", "d:" + formatFloat(v)
	case float32:
		return ClassPrimitive, "float", "d:" + formatFloat(float64(v))
	case string:
		return ClassPrimitive, "string", "s:" + v
	case []byte:
		return ClassPrimitive, "string", "s:" + string(v)
	case Key:
		return ClassPrimitive, keyTypeName(v), v.identity()
	case Object:
		return ClassObject, fmt.Sprintf("%T", v), "o:" + strconv.FormatUint(v.ObjectID(), 10)
	}

	switch kind := compositeKind(v); kind {
	case tagSequence:
		return ClassPrimitive, "array", "a:" + digest(v)
	case tagMap:
		return ClassPrimitive, "map", "m:" + digest(v)
	case tagSet:
		return ClassPrimitive, "set", "e:" + digest(v)
	}

	typ := fmt.Sprintf("%T", v)
	return ClassUnknown, typ, "u:" + typ + ":" + digest(v)
}

// IdentityKey returns the Identity Key of v.
func IdentityKey(v any) string {
	_, _, key := Classify(v)
	return key
}

// Equal reports whether a and b have the same Identity Key.
func Equal(a, b any) bool {
	return IdentityKey(a) == IdentityKey(b)
}

func keyTypeName(k Key) string {
	if k.isStr {
		return "string"
	}
	return "int"
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0 // folds -0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func digest(v any) string {
	buf := identityBytesPool.Get().([]byte)
	buf = appendCanonical(buf[:0], v)
	h := xxhash.Sum64(buf)
	releaseIdentityBytes(buf)
	return fmt.Sprintf("%016x", h)
}

// compositeKind reports whether v is a sequence, a map or a set, returning
// the matching tag, or 0 for anything else. Byte slices are strings here.
func compositeKind(v any) byte {
	switch v.(type) {
	case []byte:
		return 0
	case setMembers:
		return tagSet
	case Dictionary:
		return tagMap
	case Sequence:
		return tagSequence
	case []any:
		return tagSequence
	case map[string]any:
		return tagMap
	case Record:
		return tagMap
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return tagSequence
	case reflect.Map:
		if isKeyKind(rv.Type().Key().Kind()) {
			return tagMap
		}
	}
	return 0
}

func isKeyKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// appendCanonical appends a deterministic, tag- and length-prefixed encoding
// of v. Map entries are sorted by key and set members by their Identity Key,
// so neither depends on iteration order.
func appendCanonical(buf []byte, v any) []byte {
	switch v := v.(type) {
	case nil:
		return append(buf, tagNull)
	case bool:
		if v {
			return append(buf, tagBool, 1)
		}
		return append(buf, tagBool, 0)
	case int:
		return appendUint64(append(buf, tagInt), uint64(int64(v)))
	case int64:
		return appendUint64(append(buf, tagInt), uint64(v))
	case int32:
		return appendUint64(append(buf, tagInt), uint64(int64(v)))
	case int16:
		return appendUint64(append(buf, tagInt), uint64(int64(v)))
	case int8:
		return appendUint64(append(buf, tagInt), uint64(int64(v)))
	case uint:
		return appendUnsigned(buf, uint64(v))
	case uint64:
		return appendUnsigned(buf, v)
	case uint32:
		return appendUint64(append(buf, tagInt), uint64(v))
	case uint16:
		return appendUint64(append(buf, tagInt), uint64(v))
	case uint8:
		return appendUint64(append(buf, tagInt), uint64(v))
	case float64:
		return appendFloat(buf, v)
	case float32:
		return appendFloat(buf, float64(v))
	case string:
		return appendVarstring(append(buf, tagString), v)
	case []byte:
		return appendVarbytes(append(buf, tagString), v)
	case Key:
		return v.appendCanonical(buf)
	case Object:
		return appendUint64(append(buf, tagObject), v.ObjectID())
	case setMembers:
		keys := v.memberKeys()
		slices.Sort(keys)
		buf = appendUvarint(append(buf, tagSet), uint64(len(keys)))
		for _, k := range keys {
			buf = appendVarstring(buf, k)
		}
		return buf
	case Dictionary:
		entries := make([]Key, 0, v.Count())
		vals := make(map[Key]any, v.Count())
		for k, val := range v.Entries() {
			entries = append(entries, k)
			vals[k] = val
		}
		return appendCanonicalMap(buf, entries, func(k Key) any { return vals[k] })
	case Sequence:
		buf = appendUvarint(append(buf, tagSequence), uint64(v.Count()))
		for el := range v.Values() {
			buf = appendCanonical(buf, el)
		}
		return buf
	case []any:
		buf = appendUvarint(append(buf, tagSequence), uint64(len(v)))
		for _, el := range v {
			buf = appendCanonical(buf, el)
		}
		return buf
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		buf = appendUvarint(append(buf, tagSequence), uint64(n))
		for i := range n {
			buf = appendCanonical(buf, rv.Index(i).Interface())
		}
		return buf
	case reflect.Map:
		if isKeyKind(rv.Type().Key().Kind()) {
			keys := make([]Key, 0, rv.Len())
			vals := make(map[Key]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				k, err := KeyOf(iter.Key().Interface())
				if err != nil {
					k = Key{s: fmt.Sprint(iter.Key().Interface()), isStr: true}
				}
				keys = append(keys, k)
				vals[k] = iter.Value().Interface()
			}
			return appendCanonicalMap(buf, keys, func(k Key) any { return vals[k] })
		}
	}
	buf = append(buf, tagUnknown)
	buf = appendVarstring(buf, fmt.Sprintf("%T", v))
	return appendVarstring(buf, fmt.Sprintf("%#v", v))
}

func appendCanonicalMap(buf []byte, keys []Key, value func(k Key) any) []byte {
	sortKeys(keys)
	buf = appendUvarint(append(buf, tagMap), uint64(len(keys)))
	for _, k := range keys {
		buf = k.appendCanonical(buf)
		buf = appendCanonical(buf, value(k))
	}
	return buf
}

func appendUnsigned(buf []byte, v uint64) []byte {
	if v > math.MaxInt64 {
		return appendUint64(append(buf, tagUint), v)
	}
	return appendUint64(append(buf, tagInt), v)
}

func appendFloat(buf []byte, f float64) []byte {
	if f == 0 {
		f = 0
	}
	return appendUint64(append(buf, tagFloat), math.Float64bits(f))
}

// identityKeys computes the Identity Keys of all values up front, so that
// membership checks against a batch cost one classification per value.
func identityKeys(values []any) map[string]struct{} {
	keys := make(map[string]struct{}, len(values))
	for _, v := range values {
		keys[IdentityKey(v)] = struct{}{}
	}
	return keys
}
