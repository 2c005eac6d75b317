package validate_test

import (
	"testing"

	"modublock/internal/validate"
)

func TestDimTolerantParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{" 3.5 ", 3.5},
		{"", 0},
		{"abc", 0},
		{"-4", 0},
	}
	for _, c := range cases {
		if got := validate.Dim(c.in); got != c.want {
			t.Fatalf("Dim(%q): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestBlockTypeDefaults(t *testing.T) {
	if validate.BlockType("8") != "8" {
		t.Fatal("8 should pass through")
	}
	if validate.BlockType("12") != "6" {
		t.Fatal("unsupported size should default to 6")
	}
}

func TestOrderIDNormalizes(t *testing.T) {
	id, ok := validate.OrderID(" mod-12345 ")
	if !ok || id != "MOD-12345" {
		t.Fatalf("want MOD-12345, got %q ok=%v", id, ok)
	}
	if _, ok := validate.OrderID("garbage"); ok {
		t.Fatal("free text must not validate as an order id")
	}
}

func TestQtyClamps(t *testing.T) {
	if validate.Qty("0") != 1 || validate.Qty("junk") != 1 {
		t.Fatal("bad qty should default to 1")
	}
	if validate.Qty("7") != 7 {
		t.Fatal("valid qty should parse")
	}
}
