package rson

import "testing"

func TestToStringCompact(t *testing.T) {
	got, err := ToString(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if want := "{x:1,y:2,}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToPrettyStringUsesStructNames(t *testing.T) {
	got, err := ToPrettyString(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("ToPrettyString: %v", err)
	}
	want := "point {\n    x: 1,\n    y: 2,\n}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMustToStringPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustToString to panic on an unsupported type")
		}
	}()
	MustToString(func() {})
}

func TestDecodeWrapsUnmarshal(t *testing.T) {
	var b bool
	if err := Decode([]byte("true"), &b); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !b {
		t.Fatalf("b = %v, want true", b)
	}
}
