package rson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type point struct {
	X int `rson:"x"`
	Y int `rson:"y"`
}

func TestMarshalCompactStructNoTypeName(t *testing.T) {
	out, err := Marshal(point{X: 1, Y: 2}, EncoderOptions{StructNames: false})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "{x:1,y:2,}"
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshalPrettyTupleSingleLine(t *testing.T) {
	tup := Tuple{Elems: []Value{Int64(1), String("a"), Option{}}}
	out, err := Marshal(tup, EncoderOptions{Pretty: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `(1, "a", None)`
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshalByteSliceAsUintList(t *testing.T) {
	out, err := Marshal([]byte{1, 2, 3}, EncoderOptions{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "[1,2,3,]"
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshalPrettySeqIndent(t *testing.T) {
	out, err := Marshal([]int{1, 2}, EncoderOptions{Pretty: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "[\n    1,\n    2,\n]"
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshalTopLevelPointerIsAddressNotOption(t *testing.T) {
	p := point{X: 3, Y: 4}
	out, err := Marshal(&p, EncoderOptions{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "{x:3,y:4,}"
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshalNestedPointerIsOption(t *testing.T) {
	type withPtr struct {
		Inner *int `rson:"inner"`
	}
	n := 5
	out, err := Marshal(withPtr{Inner: &n}, EncoderOptions{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "{inner:Some(5),}"
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	out, err = Marshal(withPtr{Inner: nil}, EncoderOptions{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want = "{inner:None,}"
	if got := string(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := game{
		Title: "Hello, RSON!",
		Level: level{
			Buildings: []string{"Tower", "Keep"},
		},
	}
	out, err := Marshal(in, EncoderOptions{StructNames: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back game
	if err := Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal(%s): %v", out, err)
	}
	if diff := cmp.Diff(in, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
