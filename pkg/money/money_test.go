package money

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{21.95, 21.95},
		{22.0, 22.0},
		{12.950000762939453, 12.95},
		{10.0 / 3, 3.33},
		{2.675, 2.68},
		{-1.005, -1.01},
		{-0.001, 0},
		{1e17, 1e17},
		{-1e20, -1e20},
	}
	for _, tt := range tests {
		if got := Round(tt.value); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{5, "5.00"},
		{12.5, "12.50"},
		{20.0 / 3, "6.67"},
		{-4.2, "-4.20"},
		{-0.004, "0.00"},
		{1234.5, "1234.50"},
		{0.005, "0.01"},
		{9e16, "90000000000000000.00"},
		{1e17, "100000000000000000.00"},
		{-1e17, "-100000000000000000.00"},
		{1e20, "100000000000000000000.00"},
	}
	for _, tt := range tests {
		if got := Format(tt.value); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestNonFinite(t *testing.T) {
	if got := Round(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("Round(+Inf) = %v, want +Inf", got)
	}
	if got := Format(math.NaN()); got != "NaN" {
		t.Errorf("Format(NaN) = %q, want %q", got, "NaN")
	}
	if _, err := json.Marshal(Amount{Value: math.Inf(-1)}); err == nil {
		t.Error("expected error marshaling -Inf")
	}
}

func TestAmountJSON(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{21.95, "21.95"},
		{22.0, "22.00"},
		{10.0 / 3, "3.33"},
		{1e18, "1000000000000000000.00"},
	}
	for _, tt := range tests {
		b, err := json.Marshal(NewAmount(tt.value))
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if got := string(b); got != tt.want {
			t.Errorf("Marshal(%v) = %q, want %q", tt.value, got, tt.want)
		}

		var back Amount
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if back.Value != Round(tt.value) {
			t.Errorf("Unmarshal(%s) = %v, want %v", b, back.Value, Round(tt.value))
		}
	}
}
