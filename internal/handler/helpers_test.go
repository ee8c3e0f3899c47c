package handler

import (
	"testing"
	"time"

	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/pricing"
)

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "13:05", "23:59"}
	for _, s := range valid {
		if !validTime(s) {
			t.Errorf("validTime(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "24:00", "9:30", "12:60", "12:5", "12:30:00", "noon"}
	for _, s := range invalid {
		if validTime(s) {
			t.Errorf("validTime(%q) = true, want false", s)
		}
	}
}

func TestParseDateStrict(t *testing.T) {
	if _, ok := parseDate("2026-02-28"); !ok {
		t.Error("parseDate rejected a valid date")
	}
	for _, s := range []string{"", "2026-2-28", "2026-02-30", "28-02-2026", "2026/02/28"} {
		if _, ok := parseDate(s); ok {
			t.Errorf("parseDate(%q) accepted malformed input", s)
		}
	}
}

func TestWindowHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"09:00", "10:00", "1"},
		{"09:00", "10:30", "1.5"},
		{"09:00", "09:20", "0.33"},
		// malformed or inverted windows fall back to one hour
		{"10:00", "09:00", "1"},
		{"bad", "10:00", "1"},
	}
	for _, tc := range cases {
		if got := windowHours(tc.start, tc.end); got.String() != tc.want {
			t.Errorf("windowHours(%s, %s) = %s, want %s", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestPurchaseUsableOn(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q", s)
		}
		return d
	}
	p := model.PassPurchase{
		Status:    model.PurchaseActive,
		StartDate: day("2026-09-01"),
		EndDate:   day("2026-09-30"),
	}
	if !purchaseUsableOn(p, day("2026-09-01")) || !purchaseUsableOn(p, day("2026-09-30")) {
		t.Error("window boundaries must be usable")
	}
	if purchaseUsableOn(p, day("2026-08-31")) || purchaseUsableOn(p, day("2026-10-01")) {
		t.Error("dates outside the window must not be usable")
	}

	// A PENDING purchase whose window has opened is usable; the lazy
	// refresh promotes it on the next read.
	p.Status = model.PurchasePending
	if !purchaseUsableOn(p, day("2026-09-15")) {
		t.Error("pending purchase inside its window must be usable")
	}

	p.Status = model.PurchaseCancelled
	if purchaseUsableOn(p, day("2026-09-15")) {
		t.Error("cancelled purchase must never be usable")
	}
}

func TestPurchaseEndDateCoversFullWindow(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q", s)
		}
		return d
	}
	start := day("2026-09-01")
	end := purchaseEndDate(start, 7)
	if got := end.Format("2006-01-02"); got != "2026-09-08" {
		t.Fatalf("end date = %s, want 2026-09-08", got)
	}

	// A 7-day pass bought on the 1st must still cover the 8th and
	// nothing after it.
	p := model.PassPurchase{
		Status:    model.PurchaseActive,
		StartDate: start,
		EndDate:   end,
	}
	if !purchaseUsableOn(p, day("2026-09-08")) {
		t.Error("last day of the window must be usable")
	}
	if purchaseUsableOn(p, day("2026-09-09")) {
		t.Error("day after the window must not be usable")
	}
}

func TestParsePlaygroundSlot(t *testing.T) {
	valid := addPlaygroundSlotReq{
		SlotType:  "premium",
		DayOfWeek: 3,
		StartTime: "18:00",
		EndTime:   "20:00",
		Price:     "45.50",
	}
	s, msg := parsePlaygroundSlot(valid, "EUR")
	if msg != "" {
		t.Fatalf("unexpected rejection: %s", msg)
	}
	if s.SlotType != model.SlotPremium || s.CurrencyCode != "EUR" || !s.IsActive {
		t.Errorf("slot = %+v", s)
	}
	if s.MaxCapacity != 1 {
		t.Errorf("capacity = %d, want default 1", s.MaxCapacity)
	}
	if s.Price.String() != "45.5" {
		t.Errorf("price = %s, want 45.5", s.Price)
	}

	invalid := []struct {
		name string
		req  addPlaygroundSlotReq
	}{
		{"bad type", addPlaygroundSlotReq{SlotType: "DELUXE", DayOfWeek: 3, StartTime: "18:00", EndTime: "20:00", Price: "45"}},
		{"bad day", addPlaygroundSlotReq{SlotType: "VIP", DayOfWeek: 7, StartTime: "18:00", EndTime: "20:00", Price: "45"}},
		{"inverted window", addPlaygroundSlotReq{SlotType: "VIP", DayOfWeek: 3, StartTime: "20:00", EndTime: "18:00", Price: "45"}},
		{"zero price", addPlaygroundSlotReq{SlotType: "VIP", DayOfWeek: 3, StartTime: "18:00", EndTime: "20:00", Price: "0"}},
	}
	for _, tc := range invalid {
		if _, msg := parsePlaygroundSlot(tc.req, "EUR"); msg == "" {
			t.Errorf("%s: request accepted", tc.name)
		}
	}
}

func TestDurationTypeFor(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{7, model.PassWeekly},
		{30, model.PassMonthly},
		{1, model.PassCustom},
		{90, model.PassCustom},
	}
	for _, tc := range cases {
		if got := durationTypeFor(tc.days); got != tc.want {
			t.Errorf("durationTypeFor(%d) = %s, want %s", tc.days, got, tc.want)
		}
	}
}

func TestPassFeaturesOnlyPricedFlags(t *testing.T) {
	fs := passFeatures(createPassReq{Equipment: true, Priority: true, Guests: true, Coaching: true})
	if len(fs) != 2 {
		t.Fatalf("got %d priced features, want 2", len(fs))
	}
	if fs[0] != pricing.FeatureEquipment || fs[1] != pricing.FeatureCoaching {
		t.Errorf("features = %v", fs)
	}
	if got := passFeatures(createPassReq{Priority: true, Guests: true}); len(got) != 0 {
		t.Errorf("entitlement-only flags produced %d priced features", len(got))
	}
}
