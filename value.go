package rson

import "fmt"

// Value is satisfied by every member of the Value Tree — the in-memory
// sum type representing any RSON document for callers who do not bring
// a schema of their own.
type Value interface {
	rsonValue()
}

// Bool is the Value Tree's boolean leaf.
type Bool bool

// Int64 is the Value Tree's signed-integer leaf.
type Int64 int64

// Uint64 is the Value Tree's unsigned-integer leaf.
type Uint64 uint64

// Float64 is the Value Tree's floating-point leaf.
type Float64 float64

// Char is the Value Tree's single-Unicode-scalar leaf.
type Char rune

// String is the Value Tree's UTF-8 string leaf.
type String string

// Bytes is the Value Tree's byte-sequence leaf. On the wire it is written
// as a sequence of unsigned bytes.
type Bytes []byte

// Unit is the Value Tree's `()` leaf.
type Unit struct{}

// Seq is an ordered list of values — RSON's `[...]` production.
type Seq []Value

// Pair is one key-value entry of an OrderedMap.
type Pair struct {
	Key Value
	Val Value
}

// OrderedMap is a map whose entries preserve their source (or
// caller-supplied) order. Keys may be any Value, not just strings, since
// RSON map keys are not restricted to strings.
type OrderedMap []Pair

// Map is a map whose iteration order is not meaningful. Used when a
// caller only cares about lookup, not the source order of entries.
type Map map[string]Value

// Tuple is a fixed-arity, heterogeneous, optionally-named compound —
// RSON's `(a, b, c)` production. Name is empty for an anonymous tuple.
type Tuple struct {
	Name  string
	Elems []Value
}

// Field is one name:value pair of a Record.
type Field struct {
	Name string
	Val  Value
}

// Record is a named-or-anonymous struct — RSON's `Name { field: value }`
// production. Name is empty for an anonymous record.
type Record struct {
	Name   string
	Fields []Field
}

// Option is RSON's `None` / `Some(v)` production. Inner is nil for None.
type Option struct {
	Inner Value
}

// VariantKind distinguishes the three payload shapes a tagged Variant may
// carry.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantStruct
)

// Variant is a tagged sum-type value — RSON's `Tag`, `Tag(...)`, and
// `Tag{...}` productions. The variant name is mandatory; the payload
// shape is carried explicitly since Go has no native tagged-union kind
// to infer it from.
type Variant struct {
	Name   string
	Kind   VariantKind
	Tuple  []Value
	Fields []Field
}

func (Bool) rsonValue()       {}
func (Int64) rsonValue()      {}
func (Uint64) rsonValue()     {}
func (Float64) rsonValue()    {}
func (Char) rsonValue()       {}
func (String) rsonValue()     {}
func (Bytes) rsonValue()      {}
func (Unit) rsonValue()       {}
func (Seq) rsonValue()        {}
func (OrderedMap) rsonValue() {}
func (Map) rsonValue()        {}
func (Tuple) rsonValue()      {}
func (Record) rsonValue()     {}
func (Option) rsonValue()     {}
func (Variant) rsonValue()    {}

// Get returns the value associated with key in an OrderedMap, scanning
// entries in order, along with whether it was found.
func (m OrderedMap) Get(key string) (Value, bool) {
	for _, p := range m {
		if s, ok := p.Key.(String); ok && string(s) == key {
			return p.Val, true
		}
	}
	return nil, false
}

// debugString renders a Go-syntax-ish debug form of v, used by the Value
// Tree's tests.
func debugString(v Value) string {
	switch v := v.(type) {
	case Bool:
		return fmt.Sprintf("Bool(%v)", bool(v))
	case Int64:
		return fmt.Sprintf("Int64(%d)", int64(v))
	case Uint64:
		return fmt.Sprintf("Uint64(%d)", uint64(v))
	case Float64:
		return fmt.Sprintf("Float64(%v)", float64(v))
	case Char:
		return fmt.Sprintf("Char(%q)", rune(v))
	case String:
		return fmt.Sprintf("String(%q)", string(v))
	case Bytes:
		return fmt.Sprintf("Bytes(%v)", []byte(v))
	case Unit:
		return "Unit"
	case Seq:
		return fmt.Sprintf("Seq(%d elems)", len(v))
	case OrderedMap:
		return fmt.Sprintf("OrderedMap(%d entries)", len(v))
	case Map:
		return fmt.Sprintf("Map(%d entries)", len(v))
	case Tuple:
		return fmt.Sprintf("Tuple(%q, %d elems)", v.Name, len(v.Elems))
	case Record:
		return fmt.Sprintf("Record(%q, %d fields)", v.Name, len(v.Fields))
	case Option:
		if v.Inner == nil {
			return "None"
		}
		return fmt.Sprintf("Some(%s)", debugString(v.Inner))
	case Variant:
		return fmt.Sprintf("Variant(%q)", v.Name)
	default:
		return fmt.Sprintf("%v", v)
	}
}
