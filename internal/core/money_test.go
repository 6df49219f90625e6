package core

import (
	"errors"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"no fraction", "10", 1000, false},
		{"one fractional digit", "5.5", 550, false},
		{"third decimal rounds up", "0.555", 56, false},
		{"third decimal rounds down", "0.554", 55, false},
		{"leading dot", ".50", 50, false},
		{"whitespace trimmed", "  7.25  ", 725, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"zero with fraction", "0.00", 0, true},
		{"negative rejected", "-5.00", 0, true},
		{"plus rejected", "+5.00", 0, true},
		{"two separators", "1.2.3", 0, true},
		{"letters", "abc", 0, true},
		{"mixed", "12a.30", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseDecimalToCents(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSignedCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"negative", "-12.34", -1234, false},
		{"positive", "12.34", 1234, false},
		{"explicit plus", "+5", 500, false},
		{"zero", "0", 0, false},
		{"zero decimal", "0.00", 0, false},
		{"negative zero", "-0", 0, false},
		{"comma negative", "-1500,50", -150050, false},
		{"empty", "", 0, true},
		{"garbage", "n/a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSignedCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSignedCents(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSignedCents(%q) unexpected error: %v", tt.input, err)
			}
			if got.Cents != tt.want {
				t.Fatalf("ParseSignedCents(%q) = %d cents, want %d", tt.input, got.Cents, tt.want)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1500}
	b := Money{Cents: -400}

	if got := a.Add(b); got.Cents != 1100 {
		t.Errorf("Add = %d, want 1100", got.Cents)
	}
	if got := a.Sub(b); got.Cents != 1900 {
		t.Errorf("Sub = %d, want 1900", got.Cents)
	}
	if got := b.Neg(); got.Cents != 400 {
		t.Errorf("Neg = %d, want 400", got.Cents)
	}
	if got := b.Abs(); got.Cents != 400 {
		t.Errorf("Abs = %d, want 400", got.Cents)
	}
	if !b.IsDebit() {
		t.Error("IsDebit should be true for negative amount")
	}
	if a.IsDebit() {
		t.Error("IsDebit should be false for positive amount")
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{-5000, "-50.00"},
		{1234, "12.34"},
		{0, "0.00"},
		{5, "0.05"},
		{-7, "-0.07"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
