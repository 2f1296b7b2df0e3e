package schedule

import (
	"sort"
	"testing"
	"time"
)

func TestAllSlotsFixedAndOrdered(t *testing.T) {
	slots := AllSlots()
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	if !sort.StringsAreSorted(slots) {
		t.Fatalf("expected ascending slot order, got %v", slots)
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "16:30" {
		t.Fatalf("unexpected catalog bounds: %v", slots)
	}
	for _, s := range slots {
		if s >= "12:00" && s < "13:00" {
			t.Fatalf("lunch slot %s must not be bookable", s)
		}
	}
}

func TestAllSlotsReturnsCopy(t *testing.T) {
	first := AllSlots()
	first[0] = "00:00"
	if AllSlots()[0] != "09:00" {
		t.Fatal("mutating the returned slice must not change the catalog")
	}
}

func TestIsSlot(t *testing.T) {
	for _, s := range AllSlots() {
		if !IsSlot(s) {
			t.Errorf("expected %s to be a valid slot", s)
		}
	}
	for _, s := range []string{"", "12:00", "09:15", "17:00", "9:00"} {
		if IsSlot(s) {
			t.Errorf("expected %s to be rejected", s)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-03-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range []string{"", "2025-3-10", "10-03-2025", "2025-03-10T00:00:00Z", "not-a-date"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestIsBookable(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC) // a Monday, mid-afternoon

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"today is bookable despite time of day", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"future weekday", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), true},
		{"past weekday", time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), false},
		{"saturday", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBookable(tt.date, today); got != tt.want {
				t.Fatalf("IsBookable(%s) = %v, want %v", tt.date.Format(DateLayout), got, tt.want)
			}
		})
	}
}
