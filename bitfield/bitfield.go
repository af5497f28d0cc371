// Package bitfield packs named unsigned fields into a single 32- or 64-bit
// word.
//
// A Pattern lists fields low bits first. For Pattern{{"A", 1}, {"B", 4},
// {"C", 7}} in a 32-bit BitField the layout is:
//
//	[   20:31-12   ] [  7:11-05  ] [ 4:04-01 ] [ 1:00 ]
//	<rest,unnamed>   <C>           <B>         <A>
//
// Bits above the pattern are kept as an unnamed remainder, so converting a
// value to a BitField and back is lossless.
package bitfield

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/andreyvit/coll"
)

type Field struct {
	Name string
	Bits int
}

// Pattern is an ordered list of fields, lowest bits first.
type Pattern []Field

// PatternOf builds a Pattern from a Map of field name to bit width, in the
// Map's iteration order.
func PatternOf(m *coll.Map) (Pattern, error) {
	p := make(Pattern, 0, m.Count())
	for k, v := range m.Entries() {
		n, err := coll.KeyOf(v)
		if err != nil || !n.IsInt() {
			return nil, errf("PatternOf", coll.ErrInvalidArgument, k.String(), "bit width must be an integer, got %T", v)
		}
		p = append(p, Field{Name: k.String(), Bits: n.Int()})
	}
	return p, nil
}

// Width returns the total number of bits used by the named fields.
func (p Pattern) Width() int {
	var w int
	for _, f := range p {
		w += f.Bits
	}
	return w
}

func (p Pattern) indexOf(name string) int {
	for i, f := range p {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (p Pattern) validate(op string, boundary int) error {
	if boundary != 32 && boundary != 64 {
		return errf(op, coll.ErrInvalidArgument, boundary, "boundary must be 32 or 64")
	}
	seen := make(map[string]bool, len(p))
	for _, f := range p {
		if f.Bits <= 0 {
			return errf(op, coll.ErrInvalidArgument, f.Name, "field width must be positive, got %d", f.Bits)
		}
		if seen[f.Name] {
			return errf(op, coll.ErrInvalidArgument, f.Name, "duplicate field")
		}
		seen[f.Name] = true
	}
	if w := p.Width(); w > boundary {
		return errf(op, coll.ErrRuntime, nil, "pattern needs %d bits, boundary is %d", w, boundary)
	}
	return nil
}

// Binary is an initial value given as a string of '0' and '1' digits.
type Binary string

// Hex is an initial value given as hexadecimal digits, without a prefix.
type Hex string

type BitField struct {
	pattern  Pattern
	boundary int
	values   []uint64
	rest     uint64
}

// New builds a BitField over pattern from initial, which may be any integer
// kind, Binary, Hex, a plain string (binary when it only has 0 and 1 digits,
// hex otherwise) or another *BitField.
//
// The initial value is rendered as a boundary-wide binary string: shorter
// strings are zero-padded on the left, longer ones lose their rightmost
// digits, integers are taken modulo 2^boundary. Fields are then sliced from
// the low end upward in pattern order.
func New(pattern Pattern, initial any, boundary int) (*BitField, error) {
	if err := pattern.validate("New", boundary); err != nil {
		return nil, err
	}
	digits, err := binaryDigits(initial, boundary)
	if err != nil {
		return nil, err
	}
	bf := &BitField{
		pattern:  append(Pattern(nil), pattern...),
		boundary: boundary,
		values:   make([]uint64, len(pattern)),
	}
	bf.mapDigits(fitWidth(digits, boundary))
	return bf, nil
}

func (bf *BitField) mapDigits(digits string) {
	pos := len(digits)
	for i, f := range bf.pattern {
		bf.values[i] = mustParseBinary(digits[pos-f.Bits : pos])
		pos -= f.Bits
	}
	bf.rest = mustParseBinary(digits[:pos])
}

func binaryDigits(v any, boundary int) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case Binary:
		return checkDigits(string(v), "01", "binary")
	case Hex:
		return hexToBinary(string(v))
	case string:
		if strings.Trim(v, "01") == "" {
			return v, nil
		}
		return hexToBinary(v)
	case *BitField:
		return v.ToBinary(), nil
	case uint64:
		return unsignedDigits(v, boundary), nil
	case uint:
		return unsignedDigits(uint64(v), boundary), nil
	}
	k, err := coll.KeyOf(v)
	if err != nil || !k.IsInt() {
		return "", errf("New", coll.ErrInvalidArgument, nil, "unsupported initial value %T", v)
	}
	return unsignedDigits(uint64(k.Int()), boundary), nil
}

func unsignedDigits(u uint64, boundary int) string {
	if boundary < 64 {
		u &= 1<<boundary - 1
	}
	return strconv.FormatUint(u, 2)
}

func checkDigits(s, allowed, what string) (string, error) {
	if i := strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune(allowed, r) }); i >= 0 {
		return "", errf("New", coll.ErrInvalidArgument, s, "invalid %s digit at %d", what, i)
	}
	return s, nil
}

func hexToBinary(s string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(s) * 4)
	for i, r := range strings.ToLower(s) {
		d := strings.IndexRune("0123456789abcdef", r)
		if d < 0 {
			return "", errf("New", coll.ErrInvalidArgument, s, "invalid hex digit at %d", i)
		}
		fmt.Fprintf(&buf, "%04b", d)
	}
	return buf.String(), nil
}

// fitWidth right-aligns digits in a width-wide string.
func fitWidth(digits string, width int) string {
	if len(digits) > width {
		return digits[:width]
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

func mustParseBinary(s string) uint64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		panic(err)
	}
	return v
}

func (bf *BitField) Boundary() int    { return bf.boundary }
func (bf *BitField) Pattern() Pattern { return append(Pattern(nil), bf.pattern...) }

// Get returns the value of the named field.
func (bf *BitField) Get(name string) (uint64, error) {
	i := bf.pattern.indexOf(name)
	if i < 0 {
		return 0, errf("Get", coll.ErrInvalidProperty, name, "no such field")
	}
	return bf.values[i], nil
}

// Set replaces the value of the named field. v must fit the field's width.
func (bf *BitField) Set(name string, v uint64) error {
	i := bf.pattern.indexOf(name)
	if i < 0 {
		return errf("Set", coll.ErrInvalidProperty, name, "no such field")
	}
	if w := bf.pattern[i].Bits; bits.Len64(v) > w {
		return errf("Set", coll.ErrOutOfBounds, name, "%d does not fit into %d bits", v, w)
	}
	bf.values[i] = v
	return nil
}

// ToBinary returns exactly Boundary() binary digits, high field first.
func (bf *BitField) ToBinary() string {
	var buf strings.Builder
	buf.Grow(bf.boundary)
	if restBits := bf.boundary - bf.pattern.Width(); restBits > 0 {
		buf.WriteString(padBinary(bf.rest, restBits))
	}
	for i := len(bf.pattern) - 1; i >= 0; i-- {
		buf.WriteString(padBinary(bf.values[i], bf.pattern[i].Bits))
	}
	return buf.String()
}

func padBinary(v uint64, width int) string {
	s := strconv.FormatUint(v, 2)
	return strings.Repeat("0", width-len(s)) + s
}

// ToHex returns Boundary()/4 lowercase hex digits.
func (bf *BitField) ToHex() string {
	return fmt.Sprintf("%0*x", bf.boundary/4, bf.ToInteger())
}

func (bf *BitField) ToInteger() uint64 {
	v := bf.rest
	for i := len(bf.pattern) - 1; i >= 0; i-- {
		v = v<<bf.pattern[i].Bits | bf.values[i]
	}
	return v
}

// Fields returns the field values in pattern order.
func (bf *BitField) Fields() []uint64 {
	return append([]uint64(nil), bf.values...)
}

// ToMap returns a Map of field name to value, in pattern order.
func (bf *BitField) ToMap() *coll.Map {
	kv := make([]any, 0, 2*len(bf.pattern))
	for i, f := range bf.pattern {
		kv = append(kv, f.Name, bf.values[i])
	}
	m, err := coll.MapOf(kv...)
	if err != nil {
		panic(err)
	}
	return m
}

func (bf *BitField) String() string {
	var buf strings.Builder
	for i, f := range bf.pattern {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s=%d", f.Name, bf.values[i])
	}
	return buf.String()
}

func errf(op string, kind error, key any, format string, args ...any) error {
	return &coll.Error{Op: "bitfield." + op, Kind: kind, Key: key, Msg: fmt.Sprintf(format, args...)}
}
