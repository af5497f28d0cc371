package coll

import (
	"fmt"
	"math"
	"strconv"
)

// Key is a normalized map key: either an integer or a string.
//
// Decimal strings in canonical form ("0", "42", "-7", but not "007" or "-0")
// normalize to integer keys, so "5" and 5 address the same entry.
type Key struct {
	s     string
	n     int
	isStr bool
}

func IntKey(n int) Key {
	return Key{n: n}
}

// StringKey returns the key for s, applying the decimal normalization rule.
func StringKey(s string) Key {
	if n, ok := decimalKey(s); ok {
		return Key{n: n}
	}
	return Key{s: s, isStr: true}
}

// KeyOf normalizes v into a Key. Integers, strings, booleans, integral floats
// and fmt.Stringer values are accepted; anything else fails with
// ErrInvalidArgument.
func KeyOf(v any) (Key, error) {
	switch v := v.(type) {
	case Key:
		return v, nil
	case string:
		return StringKey(v), nil
	case int:
		return Key{n: v}, nil
	case int8:
		return Key{n: int(v)}, nil
	case int16:
		return Key{n: int(v)}, nil
	case int32:
		return Key{n: int(v)}, nil
	case int64:
		return Key{n: int(v)}, nil
	case uint:
		if uint64(v) > math.MaxInt {
			return Key{}, collErrf("key", ErrInvalidArgument, v, "unsigned key overflows int")
		}
		return Key{n: int(v)}, nil
	case uint8:
		return Key{n: int(v)}, nil
	case uint16:
		return Key{n: int(v)}, nil
	case uint32:
		return Key{n: int(v)}, nil
	case uint64:
		if v > math.MaxInt {
			return Key{}, collErrf("key", ErrInvalidArgument, v, "unsigned key overflows int")
		}
		return Key{n: int(v)}, nil
	case bool:
		if v {
			return Key{n: 1}, nil
		}
		return Key{n: 0}, nil
	case float64:
		return floatKey(v)
	case float32:
		return floatKey(float64(v))
	case fmt.Stringer:
		return StringKey(v.String()), nil
	default:
		return Key{}, collErrf("key", ErrInvalidArgument, nil, "unsupported key type %T", v)
	}
}

func floatKey(f float64) (Key, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return Key{}, collErrf("key", ErrInvalidArgument, f, "non-integral float key")
	}
	if f >= 1<<63 || f < -1<<63 {
		return Key{}, collErrf("key", ErrInvalidArgument, f, "float key out of int range")
	}
	return Key{n: int(f)}, nil
}

func decimalKey(s string) (int, bool) {
	if s == "" || len(s) > 20 {
		return 0, false
	}
	c := s[0]
	if c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

func (k Key) IsInt() bool { return !k.isStr }
func (k Key) Int() int    { return k.n }

// Value returns the key as a plain int or string.
func (k Key) Value() any {
	if k.isStr {
		return k.s
	}
	return k.n
}

// String returns the canonical string form of the key.
func (k Key) String() string {
	if k.isStr {
		return k.s
	}
	return strconv.Itoa(k.n)
}

func (k Key) identity() string {
	if k.isStr {
		return "s:" + k.s
	}
	return "i:" + strconv.Itoa(k.n)
}

// Less orders integer keys numerically before string keys, and string keys
// lexicographically.
func (k Key) Less(o Key) bool {
	if k.isStr != o.isStr {
		return !k.isStr
	}
	if k.isStr {
		return k.s < o.s
	}
	return k.n < o.n
}

func (k Key) appendCanonical(buf []byte) []byte {
	if k.isStr {
		buf = append(buf, tagString)
		return appendVarstring(buf, k.s)
	}
	buf = append(buf, tagInt)
	return appendUint64(buf, uint64(int64(k.n)))
}
