package availability

import (
	"testing"
	"time"

	"tourbook/models"
)

func TestGenerateDefaultPattern(t *testing.T) {
	// Monday 2024-01-15.
	today := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	cal := Generate(today, models.DefaultWeeklyPattern(), 6)

	want := []string{"2024-01-16", "2024-01-17", "2024-01-18", "2024-01-19", "2024-01-20"}
	if len(cal) != len(want) {
		t.Fatalf("expected %d open days, got %d: %v", len(want), len(cal), cal)
	}
	for _, day := range want {
		slots, ok := cal[day]
		if !ok {
			t.Fatalf("expected %s to be open", day)
		}
		if len(slots) != 4 || slots[0] != "09:00" || slots[3] != "15:00" {
			t.Fatalf("unexpected slots on %s: %v", day, slots)
		}
	}
	if _, ok := cal["2024-01-15"]; ok {
		t.Fatal("monday must be closed")
	}
	if _, ok := cal["2024-01-21"]; ok {
		t.Fatal("sunday must be closed")
	}
}

func TestGenerateHorizonIsInclusive(t *testing.T) {
	today := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC) // tuesday
	pattern := models.WeeklyPattern{OpenDays: []string{"tuesday"}, DailySlots: []string{"10:00"}}

	cal := Generate(today, pattern, 7)
	if _, ok := cal["2024-01-23"]; !ok {
		t.Fatalf("day today+7 should be included: %v", cal)
	}
	if len(cal) != 2 {
		t.Fatalf("expected two tuesdays, got %v", cal)
	}

	if got := Generate(today, pattern, 0); len(got) != 1 {
		t.Fatalf("horizon 0 should only cover today, got %v", got)
	}
}

func TestGenerateNinetyDayHorizon(t *testing.T) {
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	cal := Generate(today, models.DefaultWeeklyPattern(), 90)
	last := today.AddDate(0, 0, 90).Format(models.DateLayout)
	for day := range cal {
		if day < "2024-01-15" || day > last {
			t.Fatalf("day %s outside horizon", day)
		}
		d, err := time.Parse(models.DateLayout, day)
		if err != nil {
			t.Fatalf("bad key %s", day)
		}
		if d.Weekday() == time.Sunday || d.Weekday() == time.Monday {
			t.Fatalf("closed weekday %s present", day)
		}
	}
	// 13 full weeks of five open days.
	if len(cal) != 65 {
		t.Fatalf("expected 65 open days, got %d", len(cal))
	}
}

func TestGenerateAcrossDSTKeepsDays(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Vilnius")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// DST starts on Sunday 2024-03-31 in Vilnius.
	today := time.Date(2024, 3, 28, 8, 0, 0, 0, loc)
	pattern := models.WeeklyPattern{
		OpenDays:   []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
		DailySlots: []string{"09:00"},
	}
	cal := Generate(today, pattern, 6)
	for _, day := range []string{"2024-03-28", "2024-03-31", "2024-04-01", "2024-04-03"} {
		if _, ok := cal[day]; !ok {
			t.Fatalf("expected %s in calendar %v", day, cal)
		}
	}
	if len(cal) != 7 {
		t.Fatalf("expected 7 days, got %d", len(cal))
	}
}

func TestGenerateEmptyPattern(t *testing.T) {
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if cal := Generate(today, models.WeeklyPattern{OpenDays: []string{"monday"}}, 30); len(cal) != 0 {
		t.Fatalf("no slots should mean no days, got %v", cal)
	}
	if cal := Generate(today, models.WeeklyPattern{DailySlots: []string{"09:00"}}, 30); len(cal) != 0 {
		t.Fatalf("no open days should mean no days, got %v", cal)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cal := Calendar{"2024-01-16": {"09:00", "11:00"}}
	cp := cal.Clone()
	cp["2024-01-16"][0] = "changed"
	if cal["2024-01-16"][0] != "09:00" {
		t.Fatal("Clone must not share slot slices")
	}
}
