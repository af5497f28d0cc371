package coll

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const dumpSep = ", "

// Dump renders v compactly: sequences as [a, b], maps as {k: v} and sets as
// {a, b}. Hash set members are sorted by their rendering so the output is
// stable.
func Dump(v any) string {
	var buf strings.Builder
	dumpValue(&buf, v)
	return buf.String()
}

func dumpValue(w *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		w.WriteString("null")
	case string:
		w.WriteString(strconv.Quote(v))
	case []byte:
		w.WriteString(strconv.Quote(string(v)))
	case bool:
		w.WriteString(strconv.FormatBool(v))
	case float64:
		w.WriteString(formatFloat(v))
	case float32:
		w.WriteString(formatFloat(float64(v)))
	case Key:
		dumpKey(w, v)
	case Object:
		fmt.Fprintf(w, "<%T #%d>", v, v.ObjectID())
	case setMembers:
		dumpSet(w, v)
	case Dictionary:
		w.WriteByte('{')
		first := true
		for k, val := range v.Entries() {
			if !first {
				w.WriteString(dumpSep)
			}
			first = false
			dumpKey(w, k)
			w.WriteString(": ")
			dumpValue(w, val)
		}
		w.WriteByte('}')
	case Collection:
		dumpSeq(w, v.ToArray())
	case []any:
		dumpSeq(w, v)
	default:
		switch compositeKind(v) {
		case tagSequence:
			vals, _ := valuesOf("Dump", v)
			dumpSeq(w, vals)
		case tagMap:
			if m, err := NewMap(v); err == nil {
				dumpValue(w, m)
			} else {
				fmt.Fprintf(w, "%v", v)
			}
		default:
			fmt.Fprintf(w, "%v", v)
		}
	}
}

func dumpKey(w *strings.Builder, k Key) {
	if k.IsInt() {
		w.WriteString(strconv.Itoa(k.Int()))
	} else {
		w.WriteString(strconv.Quote(k.String()))
	}
}

func dumpSeq(w *strings.Builder, values []any) {
	w.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			w.WriteString(dumpSep)
		}
		dumpValue(w, v)
	}
	w.WriteByte(']')
}

func dumpSet(w *strings.Builder, s setMembers) {
	var members []string
	if c, ok := s.(Collection); ok {
		for v := range c.Values() {
			members = append(members, Dump(v))
		}
	}
	if o, ok := s.(interface{ IsOrdered() bool }); !ok || !o.IsOrdered() {
		slices.Sort(members)
	}
	w.WriteByte('{')
	w.WriteString(strings.Join(members, dumpSep))
	w.WriteByte('}')
}
