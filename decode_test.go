package rson

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type level struct {
	Buildings []string `rson:"buildings"`
	Boss      *string  `rson:"boss"`
}

type game struct {
	Title string `rson:"title"`
	Level level  `rson:"level"`
}

func TestUnmarshalNestedRecord(t *testing.T) {
	input := `Game {
		title: "Hello, RSON!",
		level: Level {
			buildings: ["Tower", "Keep",],
			boss: Some("Dragon"),
		},
	}`
	var g game
	if err := Unmarshal([]byte(input), &g); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	boss := "Dragon"
	want := game{
		Title: "Hello, RSON!",
		Level: level{
			Buildings: []string{"Tower", "Keep"},
			Boss:      &boss,
		},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalOptionNone(t *testing.T) {
	var g level
	input := `{ buildings: [], boss: None, }`
	if err := Unmarshal([]byte(input), &g); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if g.Boss != nil {
		t.Fatalf("Boss = %v, want nil", g.Boss)
	}
}

func TestUnmarshalTupleTrailingComma(t *testing.T) {
	var a [3]int32
	if err := Unmarshal([]byte("(1, 2, 3,)"), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a != [3]int32{1, 2, 3} {
		t.Fatalf("a = %v, want [1 2 3]", a)
	}
}

func TestUnmarshalSeqIntoSlice(t *testing.T) {
	var s []int
	err := Unmarshal([]byte("[1, 2, 3]"), &s)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, s); diff != "" {
		t.Fatalf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalTrailingCharacters(t *testing.T) {
	var b bool
	err := Unmarshal([]byte("true extra"), &b)
	var syn *SyntaxError
	if !errors.As(err, &syn) || syn.Kind != ErrTrailingCharacters {
		t.Fatalf("err = %v, want ErrTrailingCharacters", err)
	}
}

func TestUnmarshalIntegerOverflowNoSilentWidening(t *testing.T) {
	var n int8
	err := Unmarshal([]byte("200"), &n)
	var syn *SyntaxError
	if !errors.As(err, &syn) || syn.Kind != ErrExpectedInteger {
		t.Fatalf("err = %v, want ErrExpectedInteger", err)
	}
}

func TestUnmarshalDepthExceeded(t *testing.T) {
	depth := defaultMaxDepth + 10
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	var v any
	err := Unmarshal([]byte(input), &v)
	var syn *SyntaxError
	if !errors.As(err, &syn) || syn.Kind != ErrDepthExceeded {
		t.Fatalf("err = %v, want ErrDepthExceeded", err)
	}
}

func TestUnmarshalAnyNestedCommentBeforeLiteral(t *testing.T) {
	var b bool
	input := "/* a /* nested */ comment */ true"
	if err := Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !b {
		t.Fatalf("b = %v, want true", b)
	}
}

func TestToValueTuple(t *testing.T) {
	v, err := ToValue([]byte("(1, 2, 3,)"))
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	tup, ok := v.(Tuple)
	if !ok {
		t.Fatalf("got %T, want Tuple", v)
	}
	if len(tup.Elems) != 3 {
		t.Fatalf("len(Elems) = %d, want 3", len(tup.Elems))
	}
}
