package schema

import (
	"strconv"
	"strings"

	"theoremc/internal/source"
)

type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString  // plain strings are always literals
	ValueRef     // {ref: name}
	ValueLiteral // {literal: value}
	ValueList
	ValueMap
)

var valueKindNames = [...]string{
	ValueInvalid: "invalid",
	ValueBool:    "bool",
	ValueInt:     "integer",
	ValueFloat:   "float",
	ValueString:  "string",
	ValueRef:     "ref",
	ValueLiteral: "literal",
	ValueList:    "list",
	ValueMap:     "map",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "invalid"
}

// Value is an action argument or opaque backend configuration.
type Value struct {
	Kind  ValueKind
	Pos   source.Pos
	Bool  bool
	Int   int64
	Float float64
	Str   string // ValueString text or ValueRef target
	Inner *Value // ValueLiteral payload
	List  []Value
	Map   []Entry
}

// Entry is one key of a map value; order is the source order.
type Entry struct {
	Key   Text
	Value Value
}

// Get returns the map entry named key.
func (v *Value) Get(key string) (*Value, bool) {
	for i := range v.Map {
		if v.Map[i].Key.Value == key {
			return &v.Map[i].Value, true
		}
	}
	return nil, false
}

// String renders the value in a compact flow style, mainly for dumps.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case ValueBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case ValueInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case ValueFloat:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case ValueString:
		b.WriteString(strconv.Quote(v.Str))
	case ValueRef:
		b.WriteString("{ref: ")
		b.WriteString(v.Str)
		b.WriteByte('}')
	case ValueLiteral:
		b.WriteString("{literal: ")
		if v.Inner != nil {
			v.Inner.write(b)
		}
		b.WriteByte('}')
	case ValueList:
		b.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte(']')
	case ValueMap:
		b.WriteByte('{')
		for i, e := range v.Map {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key.Value)
			b.WriteString(": ")
			e.Value.write(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString("<invalid>")
	}
}
