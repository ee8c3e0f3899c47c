package slot

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/currency"
)

var usd = currency.Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2}

func TestGenerateFullHoursNoBreak(t *testing.T) {
	slots, err := Generate(1, "09:00", "12:00", 60, 0, decimal.NewFromInt(20), TierRegular, usd)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}, {"11:00", "12:00"}}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i, w := range want {
		if slots[i].StartTime != w[0] || slots[i].EndTime != w[1] {
			t.Errorf("slot %d = %s-%s, want %s-%s", i, slots[i].StartTime, slots[i].EndTime, w[0], w[1])
		}
	}
}

func TestGenerateStopsBeforeClose(t *testing.T) {
	// 09:00-10:30 with 60min slots and 15min breaks: only 09:00-10:00 fits;
	// the next cursor 10:15 would end at 11:15, past close.
	slots, err := Generate(2, "09:00", "10:30", 60, 15, decimal.NewFromInt(25), TierRegular, usd)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "10:00" {
		t.Errorf("slot = %s-%s, want 09:00-10:00", slots[0].StartTime, slots[0].EndTime)
	}
}

func TestGenerateCountFormula(t *testing.T) {
	cases := []struct {
		open, close        string
		dur, brk, expected int
	}{
		{"08:00", "22:00", 60, 0, 14},
		{"08:00", "22:00", 90, 30, 7},
		{"06:30", "08:00", 45, 15, 1},
		{"10:00", "10:30", 60, 0, 0},
		{"10:00", "10:00", 60, 0, 0},
		{"12:00", "10:00", 60, 0, 0}, // close before open: zero slots, no error
	}
	for _, tc := range cases {
		slots, err := Generate(0, tc.open, tc.close, tc.dur, tc.brk, decimal.NewFromInt(10), TierRegular, usd)
		if err != nil {
			t.Fatalf("Generate(%s,%s): %v", tc.open, tc.close, err)
		}
		if len(slots) != tc.expected {
			t.Errorf("Generate(%s,%s,%d,%d) = %d slots, want %d",
				tc.open, tc.close, tc.dur, tc.brk, len(slots), tc.expected)
		}
		for _, s := range slots {
			if s.EndTime > tc.close {
				t.Errorf("slot %s-%s overruns close %s", s.StartTime, s.EndTime, tc.close)
			}
		}
	}
}

func TestGenerateTierPricing(t *testing.T) {
	base := decimal.RequireFromString("20.50")
	cases := []struct {
		tier Tier
		want string
	}{
		{TierRegular, "20.5"},
		{TierPeak, "30.75"},
		{TierPremium, "41"},
	}
	for _, tc := range cases {
		slots, err := Generate(3, "09:00", "10:00", 60, 0, base, tc.tier, usd)
		if err != nil {
			t.Fatalf("Generate(%s): %v", tc.tier, err)
		}
		if len(slots) != 1 {
			t.Fatalf("Generate(%s) = %d slots, want 1", tc.tier, len(slots))
		}
		if slots[0].Price.String() != tc.want {
			t.Errorf("tier %s price = %s, want %s", tc.tier, slots[0].Price, tc.want)
		}
	}
}

func TestGenerateZeroDecimalCurrencyRounding(t *testing.T) {
	jpy := currency.Currency{Code: "JPY", Symbol: "¥", DecimalPlaces: 0}
	slots, err := Generate(4, "09:00", "10:00", 60, 0, decimal.NewFromInt(2001), TierPeak, jpy)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 2001 * 1.5 = 3001.5 rounds to 3002 with zero decimal places.
	if got := slots[0].Price.String(); got != "3002" {
		t.Errorf("price = %s, want 3002", got)
	}
}

func TestGenerateRejectsNonPositiveDuration(t *testing.T) {
	for _, dur := range []int{0, -30} {
		if _, err := Generate(1, "09:00", "12:00", dur, 0, decimal.NewFromInt(10), TierRegular, usd); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: err = %v, want ErrInvalidDuration", dur, err)
		}
	}
}

func TestGenerateRejectsMalformedTimes(t *testing.T) {
	if _, err := Generate(1, "9am", "12:00", 60, 0, decimal.NewFromInt(10), TierRegular, usd); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("err = %v, want ErrInvalidTime", err)
	}
}

func TestGenerateWeekUsesPerDayHours(t *testing.T) {
	hours := map[int]DayHours{
		1: {Open: "09:00", Close: "11:00", IsOpen: true},
		2: {Open: "14:00", Close: "15:00", IsOpen: true},
		3: {Open: "09:00", Close: "18:00", IsOpen: false}, // closed day contributes nothing
	}
	slots, err := GenerateWeek(hours, 60, 0, decimal.NewFromInt(10), TierRegular, usd)
	if err != nil {
		t.Fatalf("GenerateWeek: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	byDay := map[int]int{}
	for _, s := range slots {
		byDay[s.DayOfWeek]++
	}
	if byDay[1] != 2 || byDay[2] != 1 || byDay[3] != 0 {
		t.Errorf("per-day counts = %v, want map[1:2 2:1]", byDay)
	}
}

func TestNewCustomSlot(t *testing.T) {
	base := decimal.NewFromInt(20)
	s, err := NewCustom(5, "18:00", "20:00", decimal.NewFromInt(50), base, TierPremium, usd)
	if err != nil {
		t.Fatalf("NewCustom: %v", err)
	}
	if !s.Custom {
		t.Error("expected Custom flag set")
	}
	if s.DurationMinutes != 120 {
		t.Errorf("duration = %d, want 120", s.DurationMinutes)
	}
	if s.PriceMultiplier.String() != "2.5" {
		t.Errorf("multiplier = %s, want 2.5", s.PriceMultiplier)
	}
	if !strings.HasPrefix(s.ID, "custom-5-18:00-") {
		t.Errorf("unexpected id %q", s.ID)
	}
}

func TestNewCustomIDsDoNotCollide(t *testing.T) {
	a, _ := NewCustom(5, "18:00", "20:00", decimal.NewFromInt(50), decimal.NewFromInt(20), TierRegular, usd)
	b, _ := NewCustom(5, "18:00", "20:00", decimal.NewFromInt(50), decimal.NewFromInt(20), TierRegular, usd)
	if a.ID == b.ID {
		t.Errorf("two custom slots for the same window share id %q", a.ID)
	}
}

func TestNewCustomRejectsInvertedWindow(t *testing.T) {
	if _, err := NewCustom(1, "20:00", "18:00", decimal.NewFromInt(50), decimal.NewFromInt(20), TierRegular, usd); err == nil {
		t.Error("expected error for end <= start")
	}
}
