package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampUnit(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "inside", value: 0.25, expected: 0.25},
		{name: "below", value: -3, expected: -1},
		{name: "above", value: 1.0001, expected: 1},
		{name: "boundary", value: -1, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampUnit(tt.value)
			if got != tt.expected {
				t.Fatalf("ClampUnit() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize(0.5, 0); got != 0.5 {
		t.Fatalf("Sanitize passed through finite value wrong: %v", got)
	}
	if got := Sanitize(math.NaN(), 0); got != 0 {
		t.Fatalf("Sanitize(NaN) = %v, want 0", got)
	}
	if got := Sanitize(math.Inf(1), -0.5); got != -0.5 {
		t.Fatalf("Sanitize(+Inf) = %v, want -0.5", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1e300) {
		t.Fatal("expected 1e300 to be finite")
	}
	if IsFinite(math.Inf(-1)) || IsFinite(math.NaN()) {
		t.Fatal("expected Inf and NaN to be non-finite")
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}
