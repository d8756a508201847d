package models

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 0, true},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"", 0, true},
		{"ten", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAddMinutesWrapsPastMidnight(t *testing.T) {
	got, err := AddMinutes("23:30", 60)
	if err != nil {
		t.Fatalf("AddMinutes failed: %v", err)
	}
	if got != "00:30" {
		t.Fatalf("expected 00:30, got %s", got)
	}

	got, err = AddMinutes("10:00", 90)
	if err != nil {
		t.Fatalf("AddMinutes failed: %v", err)
	}
	if got != "11:30" {
		t.Fatalf("expected 11:30, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Vilnius")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	d, err := ParseDate("2024-01-15", loc)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Location() != loc || d.Day() != 15 || d.Hour() != 0 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("15/01/2024", loc); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}
