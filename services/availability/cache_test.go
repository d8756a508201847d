package availability

import (
	"context"
	"testing"
	"time"

	"tourbook/models"
)

func TestCacheKeyTracksInputs(t *testing.T) {
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	pattern := models.DefaultWeeklyPattern()
	base := CacheKey("p1", today, pattern, 90)

	if CacheKey("p1", today, pattern, 90) != base {
		t.Fatal("same inputs must give the same key")
	}
	reordered := models.WeeklyPattern{
		OpenDays:   []string{"Saturday", "friday", "thursday", "wednesday", "tuesday"},
		DailySlots: pattern.DailySlots,
	}
	if CacheKey("p1", today, reordered, 90) != base {
		t.Fatal("day order and case must not change the key")
	}

	changed := []string{
		CacheKey("p2", today, pattern, 90),
		CacheKey("p1", today.AddDate(0, 0, 1), pattern, 90),
		CacheKey("p1", today, pattern, 30),
		CacheKey("p1", today, models.WeeklyPattern{OpenDays: pattern.OpenDays, DailySlots: []string{"10:00"}}, 90),
	}
	for i, k := range changed {
		if k == base {
			t.Fatalf("case %d: key should differ from base", i)
		}
	}
}

func TestLRUCalendarCacheReturnsCopies(t *testing.T) {
	cache, err := NewLRUCalendarCache(2)
	if err != nil {
		t.Fatalf("NewLRUCalendarCache failed: %v", err)
	}
	ctx := context.Background()
	cache.Set(ctx, "a", Calendar{"2024-01-16": {"09:00"}})

	got, ok := cache.Get(ctx, "a")
	if !ok {
		t.Fatal("expected cache hit")
	}
	got["2024-01-16"][0] = "mutated"
	again, _ := cache.Get(ctx, "a")
	if again["2024-01-16"][0] != "09:00" {
		t.Fatal("callers must not be able to mutate cached calendars")
	}
}

func TestLRUCalendarCacheEvicts(t *testing.T) {
	cache, err := NewLRUCalendarCache(2)
	if err != nil {
		t.Fatalf("NewLRUCalendarCache failed: %v", err)
	}
	ctx := context.Background()
	cache.Set(ctx, "a", Calendar{})
	cache.Set(ctx, "b", Calendar{})
	cache.Set(ctx, "c", Calendar{})

	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
	if _, ok := cache.Get(ctx, "a"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
}
