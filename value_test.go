package rson

import "testing"

func TestOrderedMapGet(t *testing.T) {
	m := OrderedMap{
		{Key: String("a"), Val: Int64(1)},
		{Key: String("b"), Val: Int64(2)},
	}
	v, ok := m.Get("b")
	if !ok {
		t.Fatalf("Get(\"b\") not found")
	}
	if v != Int64(2) {
		t.Fatalf("Get(\"b\") = %v, want Int64(2)", v)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("Get(\"missing\") unexpectedly found")
	}
}

func TestDebugStringOption(t *testing.T) {
	if got := debugString(Option{}); got != "None" {
		t.Fatalf("debugString(Option{}) = %q, want %q", got, "None")
	}
	got := debugString(Option{Inner: Int64(5)})
	want := "Some(Int64(5))"
	if got != want {
		t.Fatalf("debugString(Some) = %q, want %q", got, want)
	}
}

func TestDebugStringVariant(t *testing.T) {
	got := debugString(Variant{Name: "Foo", Kind: VariantUnit})
	want := `Variant("Foo")`
	if got != want {
		t.Fatalf("debugString(Variant) = %q, want %q", got, want)
	}
}
