package core

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("09/15/26")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.Year() != 2026 || d.Month() != 9 || d.Day() != 15 {
		t.Fatalf("ParseDate() = %v, want 2026-09-15", d)
	}
	if got := d.Format(); got != "09/15/26" {
		t.Errorf("Format() = %q, want %q", got, "09/15/26")
	}

	for _, bad := range []string{"", "2026-09-15", "13/40/26", "Sep 15"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, 9, 1)
	b := NewDate(2026, 9, 2)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before misordered")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After misordered")
	}
	if !a.Equal(NewDate(2026, 9, 1)) {
		t.Error("Equal should match same calendar day")
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2026, 1, 31).AddDays(1)
	if d.Month() != 2 || d.Day() != 1 {
		t.Errorf("AddDays across month = %v, want 02/01", d)
	}
	d = NewDate(2026, 12, 31).AddDays(1)
	if d.Year() != 2027 || d.Month() != 1 || d.Day() != 1 {
		t.Errorf("AddDays across year = %v, want 01/01/27", d)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2026, 2, 28},
		{2028, 2, 29}, // leap year
		{2026, 4, 30},
		{2026, 12, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := (Date{}).Validate(); err == nil {
		t.Error("zero date should not validate")
	}
	if err := NewDate(2026, 9, 1).Validate(); err != nil {
		t.Errorf("valid date should validate, got %v", err)
	}
}
