package service

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"iso layout", "2026-03-15", "2026-03-15", true},
		{"european layout", "15-03-2026", "2026-03-15", true},
		{"whitespace trimmed", "  2026-03-15 ", "2026-03-15", true},
		{"empty", "", "", false},
		{"garbage", "not-a-date", "", false},
		{"wrong separators", "2026/03/15", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			if ok != tt.valid {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.raw, ok, tt.valid)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestParseOrderDateFallsBackToNow(t *testing.T) {
	before := time.Now()
	got := ParseOrderDate("invalid")
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("ParseOrderDate fallback = %v, expected between %v and %v", got, before, after)
	}
}

func TestParseOptionalDate(t *testing.T) {
	if got := ParseOptionalDate("invalid"); got != nil {
		t.Errorf("ParseOptionalDate(invalid) = %v, want nil", got)
	}
	got := ParseOptionalDate("2026-01-02")
	if got == nil || got.Format("2006-01-02") != "2026-01-02" {
		t.Errorf("ParseOptionalDate(2026-01-02) = %v", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct{ raw, want string }{
		{"pending", "PENDING"},
		{" Delivered ", "DELIVERED"},
		{"CANCELLED", "CANCELLED"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
