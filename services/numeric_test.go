package services

import (
	"testing"
)

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"Rp 1.500.000", 1500000, true},
		{"rp2.000.000", 2000000, true},
		{"RP 750,000", 750000, true},
		{"1.000.000 - 2.000.000", 1500000, true},
		{"Rp 1.000.000–Rp 3.000.000", 2000000, true},
		{"500000", 500000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"Rp", 0, false},
		{"tidak ada", 0, false},
		{"> 5.000.000", 0, false},
		{"1-2-3", 0, false},
		{"- 2.000.000", 0, false},
	}

	for _, tt := range tests {
		got := NormalizeCurrency(tt.raw)
		if got.Valid != tt.valid {
			t.Errorf("NormalizeCurrency(%q).Valid = %v; want %v", tt.raw, got.Valid, tt.valid)
			continue
		}
		if tt.valid && got.Float64 != tt.want {
			t.Errorf("NormalizeCurrency(%q) = %.2f; want %.2f", tt.raw, got.Float64, tt.want)
		}
	}
}

func TestCleanNumeric(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"1.234.567", 1234567, true},
		{"12.000.000.000", 12000000000, true},
		{"1.234,5", 1234.5, true},
		{"12,3", 12.3, true},
		{"12,5 %", 12.5, true},
		{"3.75", 3.75, true},
		{"1.5.25", 15.25, true},
		{"-2,5", -2.5, true},
		{"42", 42, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"5-", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		got := CleanNumeric(tt.raw)
		if got.Valid != tt.valid {
			t.Errorf("CleanNumeric(%q).Valid = %v; want %v", tt.raw, got.Valid, tt.valid)
			continue
		}
		if tt.valid && got.Float64 != tt.want {
			t.Errorf("CleanNumeric(%q) = %v; want %v", tt.raw, got.Float64, tt.want)
		}
	}
}
