package rson

import (
	"fmt"
	"reflect"
	"strconv"
)

// Marshaler is implemented by types that want to take over their own
// encoding — the write-side counterpart of Unmarshaler, used chiefly by
// types representing a tagged variant (Go has no tagged-union kind the
// default reflection path could drive a Begin/EndVariant* pair from).
type Marshaler interface {
	MarshalRSON(e *Encoder) error
}

// EncoderOptions configures an Encoder. The zero value is the compact,
// unnamed-struct form, the baseline encoding.
type EncoderOptions struct {
	// Pretty turns on multi-line output: four spaces per level around
	// sequences, maps, records, and struct-shaped variants. Tuples and
	// tuple-shaped variants stay single-line regardless.
	Pretty bool

	// StructNames, when true, writes the Go type name ahead of a
	// record, tuple-struct, newtype-struct, or unit-struct's body
	// (`Name { ... }` vs a bare `{ ... }`). Variant names are always
	// written — they are data, not a type name — regardless of this
	// option.
	StructNames bool
}

// Encoder drives RSON's write-side productions onto a growing byte
// buffer. Each method corresponds to one production of the grammar —
// a scalar, a bracketed compound, or a piece of one.
type Encoder struct {
	out    []byte
	opts   EncoderOptions
	indent int
}

// NewEncoder constructs an Encoder with the given options.
func NewEncoder(opts EncoderOptions) *Encoder {
	return &Encoder{opts: opts}
}

// Output returns the accumulated output.
func (e *Encoder) Output() []byte { return e.out }

func (e *Encoder) writeString(s string) { e.out = append(e.out, s...) }
func (e *Encoder) writeByte(b byte)     { e.out = append(e.out, b) }

// newline writes a bare newline in pretty mode, matching the original
// serializer's start_indent/per-element NEWLINE (no spaces attached).
func (e *Encoder) newline() {
	if e.opts.Pretty {
		e.writeByte('\n')
	}
}

// indentSpaces writes the current indent level's leading spaces in
// pretty mode, matching the original serializer's indent() call at the
// start of each element/field/entry.
func (e *Encoder) indentSpaces() {
	if !e.opts.Pretty {
		return
	}
	for i := 0; i < e.indent*4; i++ {
		e.writeByte(' ')
	}
}

// Bool writes the boolean production.
func (e *Encoder) Bool(v bool) {
	if v {
		e.writeString("true")
	} else {
		e.writeString("false")
	}
}

// I64 writes a signed integer.
func (e *Encoder) I64(v int64) { e.writeString(strconv.FormatInt(v, 10)) }

// U64 writes an unsigned integer.
func (e *Encoder) U64(v uint64) { e.writeString(strconv.FormatUint(v, 10)) }

// F64 writes a float at the given bit width (32 or 64).
func (e *Encoder) F64(v float64, bitSize int) {
	e.writeString(strconv.FormatFloat(v, 'g', -1, bitSize))
}

// Char writes the char production: the two-byte conservative escape set
// only (`\\`, `\'`).
func (e *Encoder) Char(r rune) {
	e.writeByte('\'')
	if r == '\\' || r == '\'' {
		e.writeByte('\\')
	}
	e.out = append(e.out, []byte(string(r))...)
	e.writeByte('\'')
}

// Str writes the string production, escaping only `"` and `\\` (the
// encoder never emits a raw string; raw strings are purely an input
// convenience).
func (e *Encoder) Str(s string) {
	e.writeByte('"')
	for _, r := range s {
		if r == '\\' || r == '"' {
			e.writeByte('\\')
		}
		e.out = append(e.out, []byte(string(r))...)
	}
	e.writeByte('"')
}

// Bytes writes a byte sequence as a list of small unsigned integers.
func (e *Encoder) Bytes(b []byte) {
	e.BeginSeq()
	for _, x := range b {
		e.SeqElem(func() { e.U64(uint64(x)) })
	}
	e.EndSeq()
}

// Unit writes `()`.
func (e *Encoder) Unit() { e.writeString("()") }

// UnitStruct writes a unit struct: its bare type name if StructNames is
// set, else `()`.
func (e *Encoder) UnitStruct(name string) {
	if e.opts.StructNames && name != "" {
		e.writeString(name)
		return
	}
	e.Unit()
}

// NewtypeStruct writes a single-field tuple struct: `Name(value)` or
// `(value)` depending on StructNames. value runs the wrapped field's own
// encoding.
func (e *Encoder) NewtypeStruct(name string, value func()) {
	if e.opts.StructNames && name != "" {
		e.writeString(name)
	}
	e.writeByte('(')
	value()
	e.writeByte(')')
}

// BeginSeq/EndSeq bracket the list production.
func (e *Encoder) BeginSeq() {
	e.writeByte('[')
	e.indent++
	e.newline()
}

// SeqElem writes one sequence element followed by its trailing comma,
// indenting before the element in pretty mode.
func (e *Encoder) SeqElem(value func()) {
	e.indentSpaces()
	value()
	e.writeByte(',')
	e.newline()
}

func (e *Encoder) EndSeq() {
	e.indent--
	e.indentSpaces()
	e.writeByte(']')
}

// BeginMap/EndMap bracket the map production.
func (e *Encoder) BeginMap() {
	e.writeByte('{')
	e.indent++
	e.newline()
}

// MapEntry writes one key:value pair followed by its trailing comma.
func (e *Encoder) MapEntry(key, value func()) {
	e.indentSpaces()
	key()
	e.writeByte(':')
	if e.opts.Pretty {
		e.writeByte(' ')
	}
	value()
	e.writeByte(',')
	e.newline()
}

func (e *Encoder) EndMap() {
	e.indent--
	e.indentSpaces()
	e.writeByte('}')
}

// BeginStruct/EndStruct bracket the record production. In pretty mode a
// space separates a written type name from the `{`.
func (e *Encoder) BeginStruct(name string) {
	if e.opts.StructNames && name != "" {
		e.writeString(name)
		if e.opts.Pretty {
			e.writeByte(' ')
		}
	}
	e.writeByte('{')
	e.indent++
	e.newline()
}

// StructField writes one `name: value` record field followed by its
// trailing comma.
func (e *Encoder) StructField(name string, value func()) {
	e.indentSpaces()
	e.writeString(name)
	e.writeByte(':')
	if e.opts.Pretty {
		e.writeByte(' ')
	}
	value()
	e.writeByte(',')
	e.newline()
}

func (e *Encoder) EndStruct() {
	e.indent--
	e.indentSpaces()
	e.writeByte('}')
}

// BeginTuple/EndTuple bracket the tuple and tuple-struct productions.
// Always single-line, regardless of the Pretty option.
func (e *Encoder) BeginTuple(name string) {
	if e.opts.StructNames && name != "" {
		e.writeString(name)
	}
	e.writeByte('(')
}

// TupleElem writes one tuple element with its comma separator (a
// trailing space in pretty mode, never a newline).
func (e *Encoder) TupleElem(first bool, value func()) {
	if !first {
		e.writeByte(',')
		if e.opts.Pretty {
			e.writeByte(' ')
		}
	}
	value()
}

func (e *Encoder) EndTuple() { e.writeByte(')') }

// Option writes `None`, or `Some(` inner `)` when has is true.
func (e *Encoder) Option(has bool, inner func()) {
	if !has {
		e.writeString("None")
		return
	}
	e.writeString("Some(")
	inner()
	e.writeByte(')')
}

// BeginVariantUnit writes a unit variant: the bare tag name.
func (e *Encoder) BeginVariantUnit(name string) { e.writeString(name) }

// BeginVariantTuple/EndVariantTuple bracket a tuple variant's payload,
// single-line like any other tuple production.
func (e *Encoder) BeginVariantTuple(name string) {
	e.writeString(name)
	e.writeByte('(')
}

func (e *Encoder) EndVariantTuple() { e.writeByte(')') }

// BeginVariantStruct/EndVariantStruct bracket a struct variant's payload.
func (e *Encoder) BeginVariantStruct(name string) {
	e.writeString(name)
	e.writeByte('{')
	e.indent++
	e.newline()
}

func (e *Encoder) EndVariantStruct() {
	e.indent--
	e.indentSpaces()
	e.writeByte('}')
}

// Value writes a Value Tree node, dispatching on its dynamic type — the
// schema-less write path symmetric with Decoder.Any.
func (e *Encoder) Value(v Value) error {
	switch v := v.(type) {
	case Bool:
		e.Bool(bool(v))
	case Int64:
		e.I64(int64(v))
	case Uint64:
		e.U64(uint64(v))
	case Float64:
		e.F64(float64(v), 64)
	case Char:
		e.Char(rune(v))
	case String:
		e.Str(string(v))
	case Bytes:
		e.Bytes([]byte(v))
	case Unit:
		e.Unit()
	case Seq:
		e.BeginSeq()
		for _, elem := range v {
			elem := elem
			var err error
			e.SeqElem(func() { err = e.Value(elem) })
			if err != nil {
				return err
			}
		}
		e.EndSeq()
	case OrderedMap:
		e.BeginMap()
		for _, p := range v {
			p := p
			var err error
			e.MapEntry(func() { err = e.Value(p.Key) }, func() {
				if err == nil {
					err = e.Value(p.Val)
				}
			})
			if err != nil {
				return err
			}
		}
		e.EndMap()
	case Map:
		e.BeginMap()
		for k, val := range v {
			k, val := k, val
			var err error
			e.MapEntry(func() { e.Str(k) }, func() { err = e.Value(val) })
			if err != nil {
				return err
			}
		}
		e.EndMap()
	case Tuple:
		e.BeginTuple(v.Name)
		for i, elem := range v.Elems {
			elem := elem
			var err error
			e.TupleElem(i == 0, func() { err = e.Value(elem) })
			if err != nil {
				return err
			}
		}
		e.EndTuple()
	case Record:
		e.BeginStruct(v.Name)
		for _, f := range v.Fields {
			f := f
			var err error
			e.StructField(f.Name, func() { err = e.Value(f.Val) })
			if err != nil {
				return err
			}
		}
		e.EndStruct()
	case Option:
		var err error
		e.Option(v.Inner != nil, func() { err = e.Value(v.Inner) })
		if err != nil {
			return err
		}
	case Variant:
		return e.variant(v)
	default:
		return fmt.Errorf("rson: cannot encode Value of type %T", v)
	}
	return nil
}

func (e *Encoder) variant(v Variant) error {
	switch v.Kind {
	case VariantUnit:
		e.BeginVariantUnit(v.Name)
		return nil
	case VariantTuple:
		e.BeginVariantTuple(v.Name)
		for i, elem := range v.Tuple {
			elem := elem
			var err error
			e.TupleElem(i == 0, func() { err = e.Value(elem) })
			if err != nil {
				return err
			}
		}
		e.EndVariantTuple()
		return nil
	case VariantStruct:
		e.BeginVariantStruct(v.Name)
		for _, f := range v.Fields {
			f := f
			var err error
			e.StructField(f.Name, func() { err = e.Value(f.Val) })
			if err != nil {
				return err
			}
		}
		e.EndVariantStruct()
		return nil
	default:
		return fmt.Errorf("rson: unknown variant kind %d", v.Kind)
	}
}

var marshalerType = reflect.TypeFor[Marshaler]()

// Marshal encodes v into RSON, using opts to control pretty-printing and
// struct-name emission. As with Unmarshal's destination pointer, a
// top-level pointer argument addresses the value to encode and is
// transparently dereferenced; a pointer reached while walking into a
// struct field, slice element, or map value is instead treated as an
// Option, symmetric with decodeValue.
func Marshal(v any, opts EncoderOptions) ([]byte, error) {
	e := NewEncoder(opts)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("rson: cannot marshal a nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if err := encodeAny(e, rv); err != nil {
		return nil, err
	}
	return e.Output(), nil
}

func encodeAny(e *Encoder, rv reflect.Value) error {
	if !rv.IsValid() {
		e.writeString("None")
		return nil
	}
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			e.writeString("None")
			return nil
		}
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(marshalerType) {
		return rv.Addr().Interface().(Marshaler).MarshalRSON(e)
	}
	if rv.Type().Implements(marshalerType) {
		return rv.Interface().(Marshaler).MarshalRSON(e)
	}
	if rv.Type() == charType {
		e.Char(rune(rv.Int()))
		return nil
	}
	if v, ok := rv.Interface().(Value); ok {
		return e.Value(v)
	}

	switch rv.Kind() {
	case reflect.Bool:
		e.Bool(rv.Bool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.I64(rv.Int())
		return nil
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.U64(rv.Uint())
		return nil
	case reflect.Uint8:
		e.U64(rv.Uint())
		return nil
	case reflect.Float32:
		e.F64(rv.Float(), 32)
		return nil
	case reflect.Float64:
		e.F64(rv.Float(), 64)
		return nil
	case reflect.String:
		e.Str(rv.String())
		return nil
	case reflect.Pointer:
		var err error
		e.Option(true, func() { err = encodeAny(e, rv.Elem()) })
		return err
	case reflect.Interface:
		return encodeAny(e, rv.Elem())
	case reflect.Slice:
		if rv.Type() == byteSliceType {
			e.Bytes(rv.Bytes())
			return nil
		}
		return encodeSeq(e, rv)
	case reflect.Array:
		return encodeFixedTuple(e, rv, "")
	case reflect.Map:
		return encodeMapReflect(e, rv)
	case reflect.Struct:
		return encodeStruct(e, rv)
	default:
		return fmt.Errorf("rson: unsupported source type %s", rv.Type())
	}
}

func encodeSeq(e *Encoder, rv reflect.Value) error {
	e.BeginSeq()
	for i := 0; i < rv.Len(); i++ {
		var err error
		e.SeqElem(func() { err = encodeAny(e, rv.Index(i)) })
		if err != nil {
			return err
		}
	}
	e.EndSeq()
	return nil
}

func encodeFixedTuple(e *Encoder, rv reflect.Value, name string) error {
	e.BeginTuple(name)
	for i := 0; i < rv.Len(); i++ {
		var err error
		e.TupleElem(i == 0, func() { err = encodeAny(e, rv.Index(i)) })
		if err != nil {
			return err
		}
	}
	e.EndTuple()
	return nil
}

func encodeMapReflect(e *Encoder, rv reflect.Value) error {
	e.BeginMap()
	iter := rv.MapRange()
	for iter.Next() {
		k, v := iter.Key(), iter.Value()
		var err error
		e.MapEntry(func() { err = encodeAny(e, k) }, func() {
			if err == nil {
				err = encodeAny(e, v)
			}
		})
		if err != nil {
			return err
		}
	}
	e.EndMap()
	return nil
}

func encodeStruct(e *Encoder, rv reflect.Value) error {
	t := rv.Type()
	fields := structFields(t)
	if isTupleStructType(t) {
		e.BeginTuple(t.Name())
		for i, f := range fields {
			var err error
			e.TupleElem(i == 0, func() { err = encodeAny(e, rv.Field(f.index)) })
			if err != nil {
				return err
			}
		}
		e.EndTuple()
		return nil
	}
	if len(fields) == 0 {
		e.UnitStruct(t.Name())
		return nil
	}
	e.BeginStruct(t.Name())
	for _, f := range fields {
		fv := rv.Field(f.index)
		if f.omitempty && isEmptyValue(fv) {
			continue
		}
		name := f.name
		var err error
		e.StructField(name, func() { err = encodeAny(e, fv) })
		if err != nil {
			return err
		}
	}
	e.EndStruct()
	return nil
}

// isEmptyValue reports whether rv holds its type's zero value, the
// omitempty rule also used by encoding/json.
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return rv.IsNil()
	}
	return false
}
