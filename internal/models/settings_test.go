package models

import (
	"math"
	"testing"
)

func TestValidAccent(t *testing.T) {
	tests := map[string]bool{
		"#111827":  true,
		"#ABCDEF":  true,
		"#abc":     false,
		"111827":   false,
		"#11182g":  false,
		"#1118270": false,
		"":         false,
	}
	for in, want := range tests {
		if got := ValidAccent(in); got != want {
			t.Errorf("ValidAccent(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidSize(t *testing.T) {
	for _, v := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if ValidSize(v) {
			t.Errorf("ValidSize(%v) = true", v)
		}
	}
	if !ValidSize(18) {
		t.Error("ValidSize(18) = false")
	}
}

func TestEnums(t *testing.T) {
	if !DefaultTemplate.Valid() || !DefaultDensity.Valid() || !DefaultFont.Valid() || !DefaultAlign.Valid() {
		t.Error("defaults must be valid")
	}
	if Template("grid").Valid() || Density("airy").Valid() || Font("cursive").Valid() || Align("justify").Valid() {
		t.Error("unknown values must be invalid")
	}
}

func TestParseDirection(t *testing.T) {
	if d, ok := ParseDirection("up"); !ok || d != Up {
		t.Errorf("ParseDirection(up) = %v, %v", d, ok)
	}
	if d, ok := ParseDirection("down"); !ok || d != Down {
		t.Errorf("ParseDirection(down) = %v, %v", d, ok)
	}
	if _, ok := ParseDirection("left"); ok {
		t.Error("ParseDirection(left) should fail")
	}
}
