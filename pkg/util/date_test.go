package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-06-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2024-13-01", "15/06/2024", "yesterday"} {
		if _, ok := ParseDate(s); ok {
			t.Fatalf("expected %q to fail", s)
		}
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	got := ParseDateDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	d := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2023-02-28" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 6, 15, 13, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
	if FormatDate(got) != "2024-06-15" {
		t.Fatalf("wrong day %v", got)
	}
}
