package coll

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Encoding selects how StoredList serializes its records.
type Encoding int

const (
	// MsgPack stores every record as one MessagePack value.
	MsgPack Encoding = iota
	// JSON stores every record as one JSON document. Floats are always
	// written with a fraction or an exponent so they come back as floats.
	// NaN and infinities cannot be stored.
	JSON

	defaultEncoding = MsgPack
)

func (enc Encoding) String() string {
	switch enc {
	case MsgPack:
		return "msgpack"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("encoding(%d)", int(enc))
	}
}

// appendValue appends the encoding of v to buf.
//
// Sequences and sets are written as arrays, dictionaries as maps with their
// keys in iteration order. Opaque objects cannot be stored.
func (enc Encoding) appendValue(buf []byte, v any) ([]byte, error) {
	switch enc {
	case MsgPack:
		bb := bytesBuilder{buf}
		e := msgpack.GetEncoder()
		e.ResetDict(&bb, nil)
		e.SetSortMapKeys(true)
		err := encodeMsgpack(e, v)
		msgpack.PutEncoder(e)
		return bb.Buf, err
	case JSON:
		return appendJSON(buf, v)
	default:
		panic("unsupported encoding")
	}
}

// decodeValue decodes one record. Arrays decode to []any, maps to *Map and
// integers to int whenever they fit.
func (enc Encoding) decodeValue(data []byte) (any, error) {
	switch enc {
	case MsgPack:
		var r bytes.Reader
		r.Reset(data)
		d := msgpack.GetDecoder()
		d.ResetDict(&r, nil)
		v, err := decodeMsgpack(d)
		msgpack.PutDecoder(d)
		if err != nil {
			return nil, dataErrf(data, 0, err, "failed to decode msgpack record")
		}
		return v, nil
	case JSON:
		d := json.NewDecoder(bytes.NewReader(data))
		d.UseNumber()
		v, err := decodeJSON(d)
		if err != nil {
			return nil, dataErrf(data, 0, err, "failed to decode JSON record")
		}
		return v, nil
	default:
		panic("unsupported encoding")
	}
}

func objectNotStorable(v any) error {
	return collErrf("encode", ErrInvalidArgument, nil, "cannot serialize opaque object %T", v)
}

func encodeMsgpack(e *msgpack.Encoder, v any) error {
	switch v := v.(type) {
	case nil:
		return e.EncodeNil()
	case bool:
		return e.EncodeBool(v)
	case int:
		return e.EncodeInt(int64(v))
	case int64:
		return e.EncodeInt(v)
	case int32:
		return e.EncodeInt(int64(v))
	case int16:
		return e.EncodeInt(int64(v))
	case int8:
		return e.EncodeInt(int64(v))
	case uint:
		return e.EncodeUint(uint64(v))
	case uint64:
		return e.EncodeUint(v)
	case uint32:
		return e.EncodeUint(uint64(v))
	case uint16:
		return e.EncodeUint(uint64(v))
	case uint8:
		return e.EncodeUint(uint64(v))
	case float64:
		return e.EncodeFloat64(v)
	case float32:
		return e.EncodeFloat64(float64(v))
	case string:
		return e.EncodeString(v)
	case []byte:
		return e.EncodeBytes(v)
	case Key:
		return encodeMsgpackKey(e, v)
	case Object:
		return objectNotStorable(v)
	case Dictionary:
		if err := e.EncodeMapLen(v.Count()); err != nil {
			return err
		}
		for k, val := range v.Entries() {
			if err := encodeMsgpackKey(e, k); err != nil {
				return err
			}
			if err := encodeMsgpack(e, val); err != nil {
				return err
			}
		}
		return nil
	case Collection:
		if err := e.EncodeArrayLen(v.Count()); err != nil {
			return err
		}
		for val := range v.Values() {
			if err := encodeMsgpack(e, val); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := e.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for _, val := range v {
			if err := encodeMsgpack(e, val); err != nil {
				return err
			}
		}
		return nil
	}

	switch compositeKind(v) {
	case tagSequence:
		vals, err := valuesOf("encode", v)
		if err != nil {
			return err
		}
		return encodeMsgpack(e, vals)
	case tagMap:
		m, err := NewMap(v)
		if err != nil {
			return err
		}
		return encodeMsgpack(e, m)
	}
	return e.Encode(v)
}

func encodeMsgpackKey(e *msgpack.Encoder, k Key) error {
	if k.IsInt() {
		return e.EncodeInt(int64(k.Int()))
	}
	return e.EncodeString(k.String())
}

func decodeMsgpack(d *msgpack.Decoder) (any, error) {
	c, err := d.PeekCode()
	if err != nil {
		return nil, err
	}
	switch {
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := d.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		items := make([]any, n)
		for i := range items {
			items[i], err = decodeMsgpack(d)
			if err != nil {
				return nil, err
			}
		}
		return items, nil
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := d.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		m := newMapCap(n)
		for range n {
			rawKey, err := decodeMsgpack(d)
			if err != nil {
				return nil, err
			}
			k, err := KeyOf(rawKey)
			if err != nil {
				return nil, err
			}
			v, err := decodeMsgpack(d)
			if err != nil {
				return nil, err
			}
			m.put(k, v)
		}
		return m, nil
	}

	v, err := d.DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	return normalizeNumber(v), nil
}

func normalizeNumber(v any) any {
	switch v := v.(type) {
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
	}
	return v
}

// appendJSON appends the JSON form of v. Dictionaries become objects with
// keys in iteration order.
func appendJSON(buf []byte, v any) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return append(buf, "null"...), nil
	case bool:
		return strconv.AppendBool(buf, v), nil
	case int:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case float64:
		return appendJSONFloat(buf, v)
	case float32:
		return appendJSONFloat(buf, float64(v))
	case string:
		return appendJSONString(buf, v)
	case Key:
		if v.IsInt() {
			return strconv.AppendInt(buf, int64(v.Int()), 10), nil
		}
		return appendJSONString(buf, v.String())
	case Object:
		return nil, objectNotStorable(v)
	case Dictionary:
		buf = append(buf, '{')
		first := true
		for k, val := range v.Entries() {
			if !first {
				buf = append(buf, ',')
			}
			first = false
			var err error
			buf, err = appendJSONString(buf, k.String())
			if err != nil {
				return nil, err
			}
			buf = append(buf, ':')
			buf, err = appendJSON(buf, val)
			if err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	case Collection:
		return appendJSONArray(buf, v.Values())
	case []any:
		return appendJSONArray(buf, func(yield func(any) bool) {
			for _, val := range v {
				if !yield(val) {
					return
				}
			}
		})
	case []byte:
		return appendJSONString(buf, string(v))
	}

	switch compositeKind(v) {
	case tagSequence:
		vals, err := valuesOf("encode", v)
		if err != nil {
			return nil, err
		}
		return appendJSON(buf, vals)
	case tagMap:
		m, err := NewMap(v)
		if err != nil {
			return nil, err
		}
		return appendJSON(buf, m)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T to JSON: %w", v, err)
	}
	return appendRaw(buf, raw), nil
}

// appendJSONFloat always writes a fraction or an exponent, so that the
// decoder can tell 5.0 from 5.
func appendJSONFloat(buf []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, collErrf("encode", ErrInvalidArgument, nil, "cannot encode %v to JSON", f)
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
	if bytes.IndexAny(buf[start:], ".eE") < 0 {
		buf = append(buf, ".0"...)
	}
	return buf, nil
}

func appendJSONArray(buf []byte, values func(yield func(any) bool)) ([]byte, error) {
	buf = append(buf, '[')
	first := true
	var err error
	for val := range values {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf, err = appendJSON(buf, val)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, ']'), nil
}

func appendJSONString(buf []byte, s string) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return appendRaw(buf, raw), nil
}

func decodeJSON(d *json.Decoder) (any, error) {
	tok, err := d.Token()
	if err != nil {
		return nil, err
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '[':
			items := make([]any, 0)
			for d.More() {
				v, err := decodeJSON(d)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			if _, err := d.Token(); err != nil {
				return nil, err
			}
			return items, nil
		case '{':
			m := newMapCap(0)
			for d.More() {
				kt, err := d.Token()
				if err != nil {
					return nil, err
				}
				ks, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				v, err := decodeJSON(d)
				if err != nil {
					return nil, err
				}
				m.put(StringKey(ks), v)
			}
			if _, err := d.Token(); err != nil {
				return nil, err
			}
			return m, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", tok)
		}
	case json.Number:
		if !strings.ContainsAny(string(tok), ".eE") {
			if n, err := tok.Int64(); err == nil {
				return normalizeNumber(n), nil
			}
		}
		return tok.Float64()
	default:
		return tok, nil
	}
}

// MarshalJSON implements json.Marshaler.
func (l *List) MarshalJSON() ([]byte, error)       { return appendJSON(nil, l) }
func (l *LinkedList) MarshalJSON() ([]byte, error) { return appendJSON(nil, l) }
func (m *Map) MarshalJSON() ([]byte, error)        { return appendJSON(nil, m) }
func (s *Set) MarshalJSON() ([]byte, error)        { return appendJSON(nil, s) }

// EncodeMsgpack implements msgpack.CustomEncoder so containers nested in
// arbitrary structs keep their shape.
func (l *List) EncodeMsgpack(e *msgpack.Encoder) error       { return encodeMsgpack(e, l) }
func (l *LinkedList) EncodeMsgpack(e *msgpack.Encoder) error { return encodeMsgpack(e, l) }
func (m *Map) EncodeMsgpack(e *msgpack.Encoder) error        { return encodeMsgpack(e, m) }
func (s *Set) EncodeMsgpack(e *msgpack.Encoder) error        { return encodeMsgpack(e, s) }

var (
	_ json.Marshaler        = (*List)(nil)
	_ msgpack.CustomEncoder = (*Map)(nil)
)
