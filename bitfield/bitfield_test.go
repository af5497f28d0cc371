package bitfield_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/andreyvit/coll"
	"github.com/andreyvit/coll/bitfield"
)

var abc = bitfield.Pattern{{Name: "A", Bits: 1}, {Name: "B", Bits: 4}, {Name: "C", Bits: 7}}

func TestBitField_SetAndPack(t *testing.T) {
	bf := must(bitfield.New(abc, nil, 32))
	eq(t, bf.ToInteger(), uint64(0))
	ensure(bf.Set("B", 5))
	eq(t, bf.ToInteger(), uint64(10))
	eq(t, bf.ToBinary(), strings.Repeat("0", 28)+"1010")
	eq(t, bf.ToHex(), "0000000a")
	eq(t, bf.String(), "A=0 B=5 C=0")
	deepEq(t, bf.Fields(), []uint64{0, 5, 0})
	deepEq(t, bf.ToMap().Keys(), []any{"A", "B", "C"})
	eq(t, must(bf.ToMap().Value("B")), any(uint64(5)))
	eq(t, bf.Boundary(), 32)
	deepEq(t, bf.Pattern(), abc)
}

func TestBitField_InitialValues(t *testing.T) {
	tests := []struct {
		initial any
		a, b, c uint64
	}{
		{10, 0, 5, 0},
		{uint64(10), 0, 5, 0},
		{bitfield.Binary("1010"), 0, 5, 0},
		{"1010", 0, 5, 0},
		{"a", 0, 5, 0},
		{bitfield.Hex("10"), 0, 8, 0},
		{bitfield.Hex("FFF"), 1, 15, 127},
		{0b1_0000011_0110_1, 1, 6, 3},
	}
	for _, tc := range tests {
		bf := must(bitfield.New(abc, tc.initial, 32))
		eq(t, must(bf.Get("A")), tc.a)
		eq(t, must(bf.Get("B")), tc.b)
		eq(t, must(bf.Get("C")), tc.c)
	}
}

func TestBitField_Lossless(t *testing.T) {
	bf := must(bitfield.New(abc, uint64(0xFFFFFFFF), 32))
	deepEq(t, bf.Fields(), []uint64{1, 15, 127})
	eq(t, bf.ToInteger(), uint64(0xFFFFFFFF))

	bf = must(bitfield.New(abc, -1, 32))
	eq(t, bf.ToInteger(), uint64(0xFFFFFFFF))

	copied := must(bitfield.New(bitfield.Pattern{{Name: "X", Bits: 12}}, bf, 32))
	eq(t, must(copied.Get("X")), uint64(0xFFF))
	eq(t, copied.ToInteger(), uint64(0xFFFFFFFF))

	wide := must(bitfield.New(abc, uint64(math.MaxUint64), 64))
	eq(t, wide.ToHex(), "ffffffffffffffff")
	eq(t, wide.ToInteger(), uint64(math.MaxUint64))
}

func TestBitField_LongStringsKeepLeftmostDigits(t *testing.T) {
	bf := must(bitfield.New(abc, bitfield.Binary("1"+strings.Repeat("0", 32)), 32))
	eq(t, bf.ToInteger(), uint64(1)<<31)
}

func TestBitField_Errors(t *testing.T) {
	_, err := bitfield.New(bitfield.Pattern{{Name: "X", Bits: 40}}, nil, 32)
	isErr(t, err, coll.ErrRuntime)
	_, err = bitfield.New(abc, nil, 16)
	isErr(t, err, coll.ErrInvalidArgument)
	_, err = bitfield.New(bitfield.Pattern{{Name: "X", Bits: 1}, {Name: "X", Bits: 2}}, nil, 32)
	isErr(t, err, coll.ErrInvalidArgument)
	_, err = bitfield.New(bitfield.Pattern{{Name: "X", Bits: 0}}, nil, 32)
	isErr(t, err, coll.ErrInvalidArgument)
	_, err = bitfield.New(abc, bitfield.Binary("102"), 32)
	isErr(t, err, coll.ErrInvalidArgument)
	_, err = bitfield.New(abc, bitfield.Hex("zz"), 32)
	isErr(t, err, coll.ErrInvalidArgument)
	_, err = bitfield.New(abc, 1.5, 32)
	isErr(t, err, coll.ErrInvalidArgument)

	bf := must(bitfield.New(abc, nil, 32))
	_, err = bf.Get("Z")
	isErr(t, err, coll.ErrInvalidProperty)
	isErr(t, bf.Set("Z", 1), coll.ErrInvalidProperty)
	isErr(t, bf.Set("A", 2), coll.ErrOutOfBounds)
	eq(t, must(bf.Get("A")), uint64(0))
}

func TestPatternOf(t *testing.T) {
	p := must(bitfield.PatternOf(must(coll.MapOf("A", 1, "B", 4, "C", 7))))
	deepEq(t, p, abc)
	eq(t, p.Width(), 12)

	_, err := bitfield.PatternOf(must(coll.MapOf("A", "x")))
	isErr(t, err, coll.ErrInvalidArgument)
}

func eq[T comparable](t testing.TB, a, e T) {
	if a != e {
		t.Helper()
		t.Fatalf("** got %v, wanted %v", a, e)
	}
}

func deepEq[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isErr(t testing.TB, err error, kind error) {
	if !errors.Is(err, kind) {
		t.Helper()
		t.Fatalf("** got error %v, wanted %v", err, kind)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func ensure(err error) {
	if err != nil {
		panic(err)
	}
}
