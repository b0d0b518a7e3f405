package rson

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshaler is implemented by types that want to take over their own
// decoding. It is the escape hatch for productions the default,
// reflection-driven binding cannot infer from a plain Go type alone,
// chiefly tagged variants: Go has no tagged-union kind to dispatch on.
type Unmarshaler interface {
	UnmarshalRSON(d *Decoder) error
}

// TupleStruct, embedded as an anonymous field, marks a struct type as
// RSON's tuple-struct production (`Name(a, b, c)`) rather than its
// default record production (`Name { field: value }`): fields decode and
// encode positionally, by declaration order, ignoring field names.
type TupleStruct struct{}

// Decoder drives the schema-directed productions of an RSON document
// over a single input. Each method corresponds to one "expected type"
// hint; the ambiguities the grammar admits (struct-vs-map,
// tuple-vs-tuple-struct, unit-variant-vs-identifier,
// byte-sequence-vs-list) are resolved by which method the caller
// invokes rather than by sniffing the input.
type Decoder struct {
	c *cursor
}

// NewDecoder constructs a Decoder over data. MaxDepth, when non-zero,
// overrides the default recursion guard that bounds stack use against
// adversarially nested input.
func NewDecoder(data []byte, maxDepth int) *Decoder {
	c := newCursor(data)
	if maxDepth > 0 {
		c.maxDepth = maxDepth
	}
	return &Decoder{c: c}
}

func (d *Decoder) pos() Position { return d.c.pos() }

func (d *Decoder) errorf(format string, args ...any) error {
	return newCustomError(d.pos(), format, args...)
}

// Finish verifies no significant bytes remain after the last value was
// read.
func (d *Decoder) Finish() error {
	d.c.skipWS()
	if _, ok := d.c.peek(); ok {
		return d.c.err(ErrTrailingCharacters)
	}
	return nil
}

// Bool implements "Expected bool".
func (d *Decoder) Bool() (bool, error) { return d.c.boolLiteral() }

// I64 implements "Expected integer" for a signed destination of the given
// bit width (8, 16, 32, or 64).
func (d *Decoder) I64(bitSize int) (int64, error) { return d.c.signedInteger(bitSize) }

// U64 implements "Expected integer" for an unsigned destination.
func (d *Decoder) U64(bitSize int) (uint64, error) { return d.c.unsignedInteger(bitSize) }

// F64 implements "Expected float".
func (d *Decoder) F64(bitSize int) (float64, error) { return d.c.float(bitSize) }

// Char implements "Expected char".
func (d *Decoder) Char() (rune, error) { return d.c.charLiteral() }

// Str implements "Expected string": if next is '"', the escaped-string
// production; if 'r', the raw-string production.
func (d *Decoder) Str() (string, error) {
	s, err := d.c.stringLiteral()
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// Bytes implements the byte-sequence production: a `[...]` list of small
// unsigned integers.
func (d *Decoder) Bytes() ([]byte, error) {
	if err := d.c.enter(); err != nil {
		return nil, err
	}
	defer d.c.leave()
	d.c.skipWS()
	if !d.c.consume("[") {
		return nil, d.c.err(ErrExpectedOpenBracket)
	}
	var out []byte
	d.c.skipWS()
	for {
		if d.c.consume("]") {
			return out, nil
		}
		n, err := d.c.unsignedInteger(8)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(n))
		if !d.c.comma() {
			if d.c.consume("]") {
				return out, nil
			}
			return nil, d.c.err(ErrExpectedComma)
		}
	}
}

// Unit implements "Expected unit": `()`.
func (d *Decoder) Unit() error {
	d.c.skipWS()
	if !d.c.consume("(") {
		return d.c.err(ErrExpectedOpenParen)
	}
	d.c.skipWS()
	if !d.c.consume(")") {
		return d.c.err(ErrExpectedCloseParen)
	}
	return nil
}

// UnitStruct implements "Expected unit-struct": either `()` or the bare
// type name identifier.
func (d *Decoder) UnitStruct(name string) error {
	d.c.skipWS()
	if d.c.testFor("(") {
		return d.Unit()
	}
	if name != "" && d.c.consumeIdent(name) {
		return nil
	}
	return d.c.err(ErrExpectedIdentifier)
}

// Seq implements "Expected sequence": `[` elem (, elem)* [,] `]`. elem is
// invoked once per element with a Decoder positioned at that element.
func (d *Decoder) Seq(elem func(d *Decoder) error) error {
	if err := d.c.enter(); err != nil {
		return err
	}
	defer d.c.leave()
	d.c.skipWS()
	if !d.c.consume("[") {
		return d.c.err(ErrExpectedOpenBracket)
	}
	d.c.skipWS()
	for {
		if d.c.consume("]") {
			return nil
		}
		if err := elem(d); err != nil {
			return err
		}
		d.c.skipWS()
		if d.c.consume(",") {
			d.c.skipWS()
			continue
		}
		if !d.c.consume("]") {
			return d.c.err(ErrExpectedComma)
		}
		return nil
	}
}

// MapEntries implements "Expected map": `{` key:value (, key:value)* [,]
// `}`. entry is invoked once per pair with decoders for the key and the
// value in turn.
func (d *Decoder) MapEntries(entry func(key, val *Decoder) error) error {
	if err := d.c.enter(); err != nil {
		return err
	}
	defer d.c.leave()
	d.c.skipWS()
	if !d.c.consume("{") {
		return d.c.err(ErrExpectedOpenBrace)
	}
	d.c.skipWS()
	for {
		if d.c.consume("}") {
			return nil
		}
		if err := entry(d, d); err != nil {
			return err
		}
		d.c.skipWS()
		if d.c.consume(",") {
			d.c.skipWS()
			continue
		}
		if !d.c.consume("}") {
			return d.c.err(ErrExpectedComma)
		}
		return nil
	}
}

// MapColon consumes the ':' between a map entry's key and value. Call
// this from within a MapEntries callback between reading the key and
// reading the value.
func (d *Decoder) MapColon() error {
	d.c.skipWS()
	if !d.c.consume(":") {
		return d.c.err(ErrExpectedMapColon)
	}
	d.c.skipWS()
	return nil
}

// structName optionally consumes a leading type-name identifier, used by
// Struct and Tuple. Any identifier is accepted; it is not compared with
// name, so `Game { ... }` decodes into a Go type named game.
func (d *Decoder) structName(name string) {
	d.c.skipWS()
	if b, ok := d.c.peek(); ok && isIdentFirst(b) {
		_, _ = d.c.identifier()
	}
}

// Struct implements "Expected struct (record)": an optional leading type
// name, then `{` ident:value (, ident:value)* [,] `}`. field is invoked
// once per entry with the bare field identifier and a Decoder positioned
// at its value.
func (d *Decoder) Struct(name string, field func(name string, d *Decoder) error) error {
	if err := d.c.enter(); err != nil {
		return err
	}
	defer d.c.leave()
	d.structName(name)
	d.c.skipWS()
	if !d.c.consume("{") {
		return d.c.err(ErrExpectedOpenBrace)
	}
	d.c.skipWS()
	for {
		if d.c.consume("}") {
			return nil
		}
		ident, err := d.c.identifier()
		if err != nil {
			return err
		}
		d.c.skipWS()
		if !d.c.consume(":") {
			return d.c.err(ErrExpectedColon)
		}
		d.c.skipWS()
		if err := field(string(ident), d); err != nil {
			return err
		}
		d.c.skipWS()
		if d.c.consume(",") {
			d.c.skipWS()
			continue
		}
		if !d.c.consume("}") {
			return d.c.err(ErrExpectedComma)
		}
		return nil
	}
}

// Tuple implements "Expected tuple / tuple-struct": an optional leading
// type name, then `(` elem (, elem)* [,] `)`. elem is invoked once per
// element, in order, with a Decoder positioned at that element. n is the
// number of elements read; a caller expecting more learns from n that
// the closing paren came first.
func (d *Decoder) Tuple(name string, elem func(i int, d *Decoder) error) (n int, err error) {
	if err := d.c.enter(); err != nil {
		return 0, err
	}
	defer d.c.leave()
	d.structName(name)
	d.c.skipWS()
	if !d.c.consume("(") {
		return 0, d.c.err(ErrExpectedOpenParen)
	}
	d.c.skipWS()
	for i := 0; ; i++ {
		if d.c.consume(")") {
			return i, nil
		}
		if err := elem(i, d); err != nil {
			return i, err
		}
		d.c.skipWS()
		if d.c.consume(",") {
			d.c.skipWS()
			continue
		}
		if !d.c.consume(")") {
			return i + 1, d.c.err(ErrExpectedComma)
		}
		return i + 1, nil
	}
}

// Option implements "Expected option": `None`, or `Some(` value `)`. some
// is invoked with a Decoder positioned at the inner value when present.
func (d *Decoder) Option(some func(d *Decoder) error) (hasValue bool, err error) {
	d.c.skipWS()
	if d.c.consumeIdent("None") {
		return false, nil
	}
	if d.c.consumeIdent("Some") {
		d.c.skipWS()
		if !d.c.consume("(") {
			return false, d.c.err(ErrExpectedOpenParen)
		}
		d.c.skipWS()
		if err := some(d); err != nil {
			return false, err
		}
		d.c.skipWS()
		if !d.c.consume(")") {
			return false, d.c.err(ErrExpectedCloseParen)
		}
		return true, nil
	}
	return false, d.c.err(ErrExpectedIdentifier)
}

// Enum implements "Expected enum": an identifier (the variant name), then
// dispatch on the following byte: '(' tuple-variant, '{' struct-variant,
// anything else unit-variant. visit is invoked with the variant name, its
// kind, and (for non-unit variants) a Decoder ready to consume the
// payload via Tuple/Struct.
func (d *Decoder) Enum(visit func(name string, kind VariantKind, d *Decoder) error) error {
	d.c.skipWS()
	name, err := d.c.identifier()
	if err != nil {
		return err
	}
	variant := string(name)
	if b, ok := d.c.peek(); ok {
		if b == '(' {
			return visit(variant, VariantTuple, d)
		}
		if b == '{' {
			return visit(variant, VariantStruct, d)
		}
	}
	return visit(variant, VariantUnit, d)
}

// Any implements "Expected any": the schema-less dispatch into the Value
// Tree, keyed on the leading significant byte.
func (d *Decoder) Any() (Value, error) {
	if err := d.c.enter(); err != nil {
		return nil, err
	}
	defer d.c.leave()
	d.c.skipWS()
	b, err := d.c.peekOrEOF()
	if err != nil {
		return nil, err
	}
	switch {
	case b == '\'':
		r, err := d.Char()
		if err != nil {
			return nil, err
		}
		return Char(r), nil
	case b == '"' || b == 'r':
		s, err := d.Str()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case b == '[':
		var seq Seq
		err := d.Seq(func(d *Decoder) error {
			v, err := d.Any()
			if err != nil {
				return err
			}
			seq = append(seq, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if seq == nil {
			seq = Seq{}
		}
		return seq, nil
	case b == '(':
		var elems []Value
		_, err := d.Tuple("", func(i int, d *Decoder) error {
			v, err := d.Any()
			if err != nil {
				return err
			}
			elems = append(elems, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return Unit{}, nil
		}
		return Tuple{Elems: elems}, nil
	case b == '{':
		var m OrderedMap
		err := d.MapEntries(func(key, val *Decoder) error {
			k, err := key.Any()
			if err != nil {
				return err
			}
			if err := key.MapColon(); err != nil {
				return err
			}
			v, err := val.Any()
			if err != nil {
				return err
			}
			m = append(m, Pair{Key: k, Val: v})
			return nil
		})
		if err != nil {
			return nil, err
		}
		if m == nil {
			m = OrderedMap{}
		}
		return m, nil
	case b == '+' || b == '-' || (b >= '0' && b <= '9'):
		return d.anyNumber()
	case isIdentFirst(b):
		return d.anyIdentifierLed()
	default:
		return nil, d.c.err(ErrExpectedIdentifier)
	}
}

func (d *Decoder) anyNumber() (Value, error) {
	span := d.c.numSpan()
	isFloat := false
	for _, ch := range span {
		if ch == '.' || ch == 'e' || ch == 'E' {
			isFloat = true
			break
		}
	}
	if isFloat {
		f, err := d.F64(64)
		if err != nil {
			return nil, err
		}
		return Float64(f), nil
	}
	if len(span) > 0 && span[0] == '-' {
		n, err := d.I64(64)
		if err != nil {
			return nil, err
		}
		return Int64(n), nil
	}
	n, err := d.U64(64)
	if err != nil {
		return nil, err
	}
	return Uint64(n), nil
}

func (d *Decoder) anyIdentifierLed() (Value, error) {
	if d.c.checkIdent("true") {
		b, _ := d.Bool()
		return Bool(b), nil
	}
	if d.c.checkIdent("false") {
		b, _ := d.Bool()
		return Bool(b), nil
	}
	if d.c.checkIdent("None") || d.c.checkIdent("Some") {
		var inner Value
		has, err := d.Option(func(d *Decoder) error {
			v, err := d.Any()
			if err != nil {
				return err
			}
			inner = v
			return nil
		})
		if err != nil {
			return nil, err
		}
		if !has {
			return Option{}, nil
		}
		return Option{Inner: inner}, nil
	}
	// Unit-variant, tuple-variant, struct-variant, or a bare record/tuple
	// type name: peek past the identifier to disambiguate.
	save := *d.c
	name, err := d.c.identifier()
	if err != nil {
		return nil, err
	}
	b, ok := d.c.peek()
	switch {
	case ok && b == '(':
		*d.c = save
		var elems []Value
		_, err := d.Tuple(string(name), func(i int, d *Decoder) error {
			v, err := d.Any()
			if err != nil {
				return err
			}
			elems = append(elems, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return Variant{Name: string(name), Kind: VariantTuple, Tuple: elems}, nil
	case ok && b == '{':
		*d.c = save
		var fields []Field
		err := d.Struct(string(name), func(fname string, d *Decoder) error {
			v, err := d.Any()
			if err != nil {
				return err
			}
			fields = append(fields, Field{Name: fname, Val: v})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return Variant{Name: string(name), Kind: VariantStruct, Fields: fields}, nil
	default:
		return Variant{Name: string(name), Kind: VariantUnit}, nil
	}
}

// Unmarshal parses RSON data and stores the result in the value pointed
// to by v, using the static Go type of *v as the expected-type hint
// needed to resolve the grammar's ambiguous productions.
//
// A struct field's name may be overridden with a `rson:"name"` tag. A
// struct embedding TupleStruct decodes positionally (RSON's tuple-struct
// production) instead of by field name (the record production). A type
// implementing Unmarshaler takes full control of its own decoding.
func Unmarshal(data []byte, v any) error {
	return UnmarshalDepth(data, v, 0)
}

// UnmarshalDepth is Unmarshal with an explicit recursion bound (0 uses
// the package default).
func UnmarshalDepth(data []byte, v any, maxDepth int) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("rson: Unmarshal requires a non-nil pointer, got %T", v)
	}
	d := NewDecoder(data, maxDepth)
	if err := decodeValue(d, rv.Elem()); err != nil {
		return err
	}
	return d.Finish()
}

var (
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	charType        = reflect.TypeFor[Char]()
	byteSliceType   = reflect.TypeFor[[]byte]()
)

func decodeValue(d *Decoder, rv reflect.Value) error {
	if rv.Type() == charType {
		r, err := d.Char()
		if err != nil {
			return err
		}
		rv.SetInt(int64(r))
		return nil
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalRSON(d)
	}
	if rv.Type().Implements(unmarshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return rv.Interface().(Unmarshaler).UnmarshalRSON(d)
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.Bool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := d.I64(bitSizeOf(rv.Kind()))
		if err != nil {
			return err
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := d.U64(bitSizeOf(rv.Kind()))
		if err != nil {
			return err
		}
		rv.SetUint(n)
		return nil
	case reflect.Uint8:
		n, err := d.U64(8)
		if err != nil {
			return err
		}
		rv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := d.F64(bitSizeOf(rv.Kind()))
		if err != nil {
			return err
		}
		rv.SetFloat(f)
		return nil
	case reflect.String:
		s, err := d.Str()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil
	case reflect.Pointer:
		has, err := d.Option(func(d *Decoder) error {
			rv.Set(reflect.New(rv.Type().Elem()))
			return decodeValue(d, rv.Elem())
		})
		if err != nil {
			return err
		}
		if !has {
			rv.Set(reflect.Zero(rv.Type()))
		}
		return nil
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("rson: cannot decode into non-empty interface %s", rv.Type())
		}
		v, err := d.Any()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	case reflect.Slice:
		if rv.Type() == byteSliceType {
			b, err := d.Bytes()
			if err != nil {
				return err
			}
			rv.SetBytes(b)
			return nil
		}
		out := reflect.MakeSlice(rv.Type(), 0, 0)
		err := d.Seq(func(d *Decoder) error {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeValue(d, elem); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
			return nil
		})
		if err != nil {
			return err
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		i := 0
		_, err := d.Tuple("", func(idx int, d *Decoder) error {
			if i >= rv.Len() {
				return d.errorf("too many elements for array of length %d", rv.Len())
			}
			if err := decodeValue(d, rv.Index(i)); err != nil {
				return err
			}
			i++
			return nil
		})
		if err != nil {
			return err
		}
		if i != rv.Len() {
			return d.errorf("expected %d-tuple, got %d elements", rv.Len(), i)
		}
		return nil
	case reflect.Map:
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(rv.Type()))
		}
		return d.MapEntries(func(key, val *Decoder) error {
			k := reflect.New(rv.Type().Key()).Elem()
			if err := decodeValue(key, k); err != nil {
				return err
			}
			if err := key.MapColon(); err != nil {
				return err
			}
			v := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeValue(val, v); err != nil {
				return err
			}
			rv.SetMapIndex(k, v)
			return nil
		})
	case reflect.Struct:
		return decodeStruct(d, rv)
	default:
		return fmt.Errorf("rson: unsupported destination type %s", rv.Type())
	}
}

func bitSizeOf(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 32
	default:
		return 64
	}
}

type fieldInfo struct {
	index     int
	name      string
	omitempty bool
}

func isTupleStructType(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == reflect.TypeFor[TupleStruct]() {
			return true
		}
	}
	return false
}

func structFields(t reflect.Type) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type == reflect.TypeFor[TupleStruct]() {
			continue
		}
		name := f.Name
		omitempty := false
		if tag, ok := f.Tag.Lookup("rson"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					omitempty = true
				}
			}
		}
		fields = append(fields, fieldInfo{index: i, name: name, omitempty: omitempty})
	}
	return fields
}

func decodeStruct(d *Decoder, rv reflect.Value) error {
	t := rv.Type()
	if isTupleStructType(t) {
		fields := structFields(t)
		i := 0
		_, err := d.Tuple(t.Name(), func(idx int, d *Decoder) error {
			if i >= len(fields) {
				return d.errorf("too many elements for tuple struct %s", t.Name())
			}
			if err := decodeValue(d, rv.Field(fields[i].index)); err != nil {
				return err
			}
			i++
			return nil
		})
		return err
	}
	if t.NumField() == 0 || len(structFields(t)) == 0 {
		return d.UnitStruct(t.Name())
	}
	fields := structFields(t)
	byName := make(map[string]fieldInfo, len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}
	return d.Struct(t.Name(), func(name string, d *Decoder) error {
		fi, ok := byName[name]
		if !ok {
			return d.errorf("no field named %q on %s", name, t.Name())
		}
		return decodeValue(d, rv.Field(fi.index))
	})
}
