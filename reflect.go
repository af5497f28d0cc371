package coll

import (
	"encoding"
	"encoding/json"
	"reflect"
	"sync"
)

var typeInfoCache sync.Map

// structInfo lists the exported fields a struct contributes when it is
// walked as a map-shaped level. Names follow json, msgpack and yaml tags, in
// that order of preference.
type structInfo struct {
	fields []fieldInfo
}

type fieldInfo struct {
	name      string
	index     []int
	omitEmpty bool
}

func (si *structInfo) entries(structVal reflect.Value) ([]Key, []any) {
	keys := make([]Key, 0, len(si.fields))
	vals := make([]any, 0, len(si.fields))
	for _, f := range si.fields {
		fv, err := structVal.FieldByIndexErr(f.index)
		if err != nil {
			continue // nil embedded pointer
		}
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		keys = append(keys, StringKey(f.name))
		vals = append(vals, fv.Interface())
	}
	return keys, vals
}

func reflectType(typ reflect.Type) *structInfo {
	if v, ok := typeInfoCache.Load(typ); ok {
		return v.(*structInfo)
	}
	info := reflectTypeWithoutCache(typ)
	actual, _ := typeInfoCache.LoadOrStore(typ, info)
	return actual.(*structInfo)
}

func reflectTypeWithoutCache(typ reflect.Type) *structInfo {
	if typ.Kind() != reflect.Struct {
		panic(collErrf("reflectType", ErrInvalidArgument, nil, "%v is not a struct", typ))
	}
	info := &structInfo{}
	for _, f := range reflect.VisibleFields(typ) {
		if !f.IsExported() || (f.Anonymous && isStructType(f.Type)) {
			continue
		}
		name, omitEmpty, skip := fieldName(f)
		if skip {
			continue
		}
		info.fields = append(info.fields, fieldInfo{
			name:      name,
			index:     f.Index,
			omitEmpty: omitEmpty,
		})
	}
	return info
}

func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.Kind() == reflect.Struct
}

func fieldName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	for _, tagName := range []string{"json", "msgpack", "yaml"} {
		tag, ok := f.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		if tag == "-" {
			return "", false, true
		}
		name, opts, _ := splitByte(tag, ',')
		for opts != "" {
			var opt string
			opt, opts, _ = splitByte(opts, ',')
			if opt == "omitempty" {
				omitEmpty = true
			}
		}
		if name != "" {
			return name, omitEmpty, false
		}
	}
	return f.Name, omitEmpty, false
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// structValue returns the struct behind v when v should be walked field by
// field. Structs that marshal themselves (time.Time and friends), keys and
// opaque Objects are leaves.
func structValue(v any) (reflect.Value, bool) {
	switch v.(type) {
	case Object, Key:
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		if rv.Type().Implements(jsonMarshalerType) || rv.Type().Implements(textMarshalerType) {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	if rv.Type().Implements(jsonMarshalerType) || rv.Type().Implements(textMarshalerType) {
		return reflect.Value{}, false
	}
	if pt := reflect.PointerTo(rv.Type()); pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
		return reflect.Value{}, false
	}
	return rv, true
}
