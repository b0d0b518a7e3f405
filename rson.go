// RSON is a readable, typed configuration and data-interchange format: a
// text grammar close to Rust's own struct/enum/literal notation, rather
// than a generic tree like JSON.
//
//	Game {
//	    title: "Celeste",
//	    levels: [
//	        Level { name: "Forsaken City", deaths: 0 },
//	        Level { name: "Old Site", deaths: 0 },
//	    ],
//	    high_score: Some(802),
//	}
//
// Decoding is schema-directed: there is no single "parse this into a
// tree" entry point the way encoding/json has. Instead the destination
// Go type tells the decoder which production to expect, which is what
// resolves the grammar's few genuine ambiguities (is `{...}` a map or a
// record? is `(a, b)` a tuple or a tuple-struct? is a bare identifier a
// unit variant or something else?). A caller with no schema uses Any to
// get back the Value Tree instead.
//
// # Comments
//
// Two forms, matching most C-family languages: `//` runs to end of
// line, `/* */` nests.
//
//	// a line comment
//	/* a /* nested */ block comment */
//
// # Literals
//
//	true false                  booleans
//	'a'  '\\' '\''               chars (only those two escapes)
//	"a string\nwith\tescapes"   escaped strings (\" \\ \b \f \n \r \t \uXXXX)
//	r"no escapes in here"       raw strings
//	r#"can contain "quotes""#   raw strings, N '#' delimiters
//	-12  34  1.5  -6.0e10       numbers
//
// # Compounds
//
//	[1, 2, 3]                   sequence
//	(1, "two", 3.0)             anonymous tuple
//	Point(1, 2)                 tuple struct
//	{"a": 1, "b": 2}            map
//	Point { x: 1, y: 2 }        record
//	None                        absent option
//	Some(5)                     present option
//	()                          unit
//	Red                         unit variant
//	Point(1, 2)                 tuple variant (same shape as a tuple struct)
//	Move { x: 1, y: 2 }         struct variant
//
// Trailing commas are accepted everywhere a comma separates elements.
package rson

// Decode parses data as RSON into the value pointed to by v, identical
// to Unmarshal. It exists alongside Unmarshal for callers who already
// hold a Decoder-shaped mental model (encoding/json, encoding/gob); both
// names resolve to the same function.
func Decode(data []byte, v any) error { return Unmarshal(data, v) }

// ToValue parses data and returns its schema-less Value Tree
// representation.
func ToValue(data []byte) (Value, error) {
	d := NewDecoder(data, 0)
	v, err := d.Any()
	if err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}

// ToString encodes v compactly, with struct and tuple-struct type names
// omitted, the baseline encoding. (Named ToString, not String, since
// rson.String already names the Value Tree's string leaf type.)
func ToString(v any) (string, error) {
	b, err := Marshal(v, EncoderOptions{})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToPrettyString encodes v across multiple lines with four-space
// indents and struct/tuple-struct type names included, suited for
// human-edited configuration files rather than wire transmission.
func ToPrettyString(v any) (string, error) {
	b, err := Marshal(v, EncoderOptions{Pretty: true, StructNames: true})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MustToString is ToString, panicking on error, for callers encoding a
// value they know is encodable.
func MustToString(v any) string {
	s, err := ToString(v)
	if err != nil {
		panic(err)
	}
	return s
}
