package coll

import "testing"

func TestSplitByte(t *testing.T) {
	a, b, ok := splitByte("a:b", ':')
	if !ok || a != "a" || b != "b" {
		t.Fatalf("splitByte = (%q, %q, %v), wanted (\"a\", \"b\", true)", a, b, ok)
	}

	a, b, ok = splitByte("ab", ':')
	if ok || a != "ab" || b != "" {
		t.Fatalf("splitByte(no sep) = (%q, %q, %v), wanted (\"ab\", \"\", false)", a, b, ok)
	}
}

func TestRoundUpToPowerOf2(t *testing.T) {
	for _, tc := range []struct{ n, e int }{{0, 4}, {3, 4}, {4, 4}, {5, 8}, {1000, 1024}} {
		eq(t, roundUpToPowerOf2(tc.n), tc.e)
	}
}

func TestMustAndEnsure(t *testing.T) {
	eq(t, must(IntKey(3), nil), IntKey(3))
	assertPanics(t, func() { must(KeyOf(struct{}{})) })
	assertPanics(t, func() { ensure(ErrRuntime) })
}
