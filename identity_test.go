package coll

import (
	"strings"
	"testing"
)

type widget struct {
	ObjectRef
	name string
}

func TestClassify(t *testing.T) {
	tests := []struct {
		v     any
		class Class
		typ   string
		key   string
	}{
		{nil, ClassPrimitive, "null", "n:"},
		{true, ClassPrimitive, "bool", "b:1"},
		{false, ClassPrimitive, "bool", "b:0"},
		{42, ClassPrimitive, "int", "i:42"},
		{int8(-3), ClassPrimitive, "int", "i:-3"},
		{uint16(7), ClassPrimitive, "int", "i:7"},
		{1.5, ClassPrimitive, "float", "d:1.5"},
		{"hello", ClassPrimitive, "string", "s:hello"},
		{[]byte("hello"), ClassPrimitive, "string", "s:hello"},
		{StringKey("x"), ClassPrimitive, "string", "s:x"},
		{StringKey("12"), ClassPrimitive, "int", "i:12"},
	}
	for _, tc := range tests {
		class, typ, key := Classify(tc.v)
		eq(t, class, tc.class)
		eq(t, typ, tc.typ)
		eq(t, key, tc.key)
	}
}

func TestClassify_Composites(t *testing.T) {
	class, typ, key := Classify([]any{1, 2})
	eq(t, class, ClassPrimitive)
	eq(t, typ, "array")
	eq(t, key[:2], "a:")

	_, typ, key = Classify(map[string]any{"a": 1})
	eq(t, typ, "map")
	eq(t, key[:2], "m:")

	_, typ, key = Classify(HashSetOf(1, 2))
	eq(t, typ, "set")
	eq(t, key[:2], "e:")

	class, _, key = Classify(struct{ A int }{1})
	eq(t, class, ClassUnknown)
	if !strings.HasPrefix(key, "u:struct { A int }:") {
		t.Fatalf("unknown key = %q", key)
	}
}

func TestIdentity_SequencesCompareStructurally(t *testing.T) {
	a := []any{1, "x", []any{true}}
	b := ListOf(1, "x", ListOf(true))
	c := []int{1, 2}
	if !Equal(a, b) {
		t.Fatalf("[]any and *List with same content differ: %s vs %s", IdentityKey(a), IdentityKey(b))
	}
	if !Equal(c, []any{1, 2}) {
		t.Fatalf("[]int and []any with same content differ")
	}
	if Equal([]any{1, 2}, []any{2, 1}) {
		t.Fatalf("sequence order ignored")
	}
	if !Equal(LinkedListOf(1, 2), MutableListOf(1, 2)) {
		t.Fatalf("LinkedList and MutableList with same content differ")
	}
}

func TestIdentity_MapsIgnoreOrder(t *testing.T) {
	m1 := must(MapOf("a", 1, "b", 2))
	m2 := must(MapOf("b", 2, "a", 1))
	if !Equal(m1, m2) {
		t.Fatalf("maps with same entries in different order differ")
	}
	if !Equal(m1, map[string]int{"a": 1, "b": 2}) {
		t.Fatalf("*Map and Go map with same entries differ")
	}
	if Equal(m1, must(MapOf("a", 1, "b", 3))) {
		t.Fatalf("maps with different values are equal")
	}
	if Equal(ListOf(1, 2), m1) {
		t.Fatalf("list equals map")
	}
}

func TestIdentity_SetsIgnoreOrder(t *testing.T) {
	if !Equal(OrderedSetOf(1, 2, 3), OrderedSetOf(3, 2, 1)) {
		t.Fatalf("sets with same members in different order differ")
	}
	if !Equal(HashSetOf(1, 2), MutableOrderedSetOf(2, 1)) {
		t.Fatalf("hash and ordered sets with same members differ")
	}
	if Equal(HashSetOf(1, 2), ListOf(1, 2)) {
		t.Fatalf("set equals list")
	}
}

func TestIdentity_NumbersAndStrings(t *testing.T) {
	if !Equal(int64(5), uint8(5)) {
		t.Fatalf("integer kinds differ")
	}
	if Equal(5, "5") {
		t.Fatalf("int equals string")
	}
	if Equal(1, 1.0) {
		t.Fatalf("int equals float")
	}
	if !Equal(0.0, -0.0) {
		t.Fatalf("zero and negative zero differ")
	}
	if Equal(true, 1) {
		t.Fatalf("bool equals int")
	}
}

func TestIdentity_Objects(t *testing.T) {
	a := &widget{name: "a"}
	b := &widget{name: "a"}
	if Equal(a, b) {
		t.Fatalf("distinct objects with same content are equal")
	}
	if !Equal(a, a) {
		t.Fatalf("object differs from itself")
	}
	class, _, key := Classify(a)
	eq(t, class, ClassObject)
	eq(t, key[:2], "o:")
	eq(t, IdentityKey(a), key)

	ref := NewObjectRef()
	if ref.ObjectID() == 0 {
		t.Fatalf("NewObjectRef id = 0")
	}
}

func TestClassString(t *testing.T) {
	eq(t, ClassPrimitive.String(), "primitive")
	eq(t, ClassObject.String(), "object")
	eq(t, ClassUnknown.String(), "unknown")
}
