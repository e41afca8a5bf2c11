package service

import (
	"strings"
	"testing"
	"time"

	"groomroute_backend/internal/waitlist/repository"
	"groomroute_backend/internal/waitlist/transport"
	"groomroute_backend/platform/geo"

	"github.com/google/uuid"
)

var testAnchor = geo.Point{Lat: 40.0, Lng: -75.0}

func testContext(anchors ...geo.Point) ScoreContext {
	target := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	return ScoreContext{
		TargetDate:  target,
		AreaName:    "North Hills",
		Anchors:     anchors,
		RevenueHigh: 500,
		RevenueLow:  100,
		Now:         target,
	}
}

func baseEntry(sc ScoreContext) repository.Entry {
	lat, lng := 40.0145, -75.0 // about a mile north of the anchor
	return repository.Entry{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Dana Reyes",
		PetName:       "Biscuit",
		PreferredDays: []string{strings.ToLower(sc.TargetDate.Weekday().String())},
		PreferredArea: "North Hills",
		Lat:           &lat,
		Lng:           &lng,
		CreatedAt:     sc.Now.AddDate(0, 0, -3),
	}
}

func daysAgo(sc ScoreContext, days int) *time.Time {
	t := sc.Now.AddDate(0, 0, -days)
	return &t
}

func TestScoreEntryFullMatch(t *testing.T) {
	sc := testContext(testAnchor)
	entry := baseEntry(sc)
	stats := repository.CustomerStats{
		AppointmentCount: 6,
		CompletedCount:   5,
		CompletedRevenue: 250,
		LastCompletedAt:  daysAgo(sc, 10),
	}

	got, ok := scoreEntry(entry, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}

	// 30 day + 25 area + 20 proximity + 8 medium value + 10 excellent.
	if got.Score != 93 {
		t.Errorf("Score = %d, want 93", got.Score)
	}
	if got.ValueTier != transport.ValueMedium {
		t.Errorf("ValueTier = %v, want medium", got.ValueTier)
	}
	if got.Reliability != transport.ReliabilityExcellent {
		t.Errorf("Reliability = %v, want excellent", got.Reliability)
	}
	if got.DistanceMiles == nil || *got.DistanceMiles > 2 {
		t.Errorf("DistanceMiles = %v, want about a mile", got.DistanceMiles)
	}
	if len(got.Reasons) == 0 {
		t.Error("expected human-readable reasons")
	}
}

func TestScoreEntryCarriesHistoryMetrics(t *testing.T) {
	sc := testContext(testAnchor)
	entry := baseEntry(sc)
	stats := repository.CustomerStats{
		AppointmentCount: 8,
		CompletedCount:   6,
		CompletedRevenue: 420,
		LastCompletedAt:  daysAgo(sc, 12),
	}

	got, ok := scoreEntry(entry, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	if got.LifetimeAppointments != 8 {
		t.Errorf("LifetimeAppointments = %d, want 8", got.LifetimeAppointments)
	}
	if got.LifetimeRevenue != 420 {
		t.Errorf("LifetimeRevenue = %v, want 420", got.LifetimeRevenue)
	}
	if got.CompletionRate != 75 {
		t.Errorf("CompletionRate = %v, want 75", got.CompletionRate)
	}
	if got.LastCompletedAt == nil {
		t.Error("LastCompletedAt = nil, want the last completed date")
	}

	fresh, ok := scoreEntry(entry, repository.CustomerStats{}, false, sc, Filters{})
	if !ok {
		t.Fatal("new customer unexpectedly dropped")
	}
	if fresh.CompletionRate != 100 {
		t.Errorf("new-customer CompletionRate = %v, want 100", fresh.CompletionRate)
	}
}

func TestScoreEntryClampsAt100(t *testing.T) {
	sc := testContext(testAnchor)
	entry := baseEntry(sc)
	stats := repository.CustomerStats{
		AppointmentCount: 20,
		CompletedCount:   20,
		CompletedRevenue: 2000,
		LastCompletedAt:  daysAgo(sc, 90),
	}

	got, ok := scoreEntry(entry, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, want clamp at 100", got.Score)
	}
}

func TestScoreEntryDropsNonPositive(t *testing.T) {
	sc := testContext(testAnchor)
	entry := repository.Entry{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		PreferredDays: []string{"friday"},
		CreatedAt:     sc.Now.AddDate(0, 0, -2),
	}
	stats := repository.CustomerStats{AppointmentCount: 8, NoShowCount: 3}

	if _, ok := scoreEntry(entry, stats, true, sc, Filters{}); ok {
		t.Error("entry with a non-positive score should be dropped")
	}
}

func TestScoreEntryFlexibleTiming(t *testing.T) {
	sc := testContext(testAnchor)
	stats := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 5, CompletedRevenue: 250}

	entry := baseEntry(sc)
	entry.PreferredDays = nil
	entry.FlexibleTiming = true

	got, ok := scoreEntry(entry, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	// Flexible timing earns 10 instead of the 30 for an exact day ask.
	if got.Score != 73 {
		t.Errorf("Score = %d, want 73", got.Score)
	}

	// Without the flag, a day miss earns nothing.
	rigid := baseEntry(sc)
	rigid.PreferredDays = []string{"friday"}

	gotRigid, ok := scoreEntry(rigid, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	if gotRigid.Score != 63 {
		t.Errorf("Score = %d, want 63 with no day points", gotRigid.Score)
	}
}

func TestScoreEntryNoCoordinates(t *testing.T) {
	sc := testContext(testAnchor)
	entry := baseEntry(sc)
	entry.Lat, entry.Lng = nil, nil
	stats := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 5, CompletedRevenue: 250}

	got, ok := scoreEntry(entry, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	if got.DistanceMiles != nil {
		t.Errorf("DistanceMiles = %v, want nil without coordinates", got.DistanceMiles)
	}
	if got.Score != 73 {
		t.Errorf("Score = %d, want 73 without proximity points", got.Score)
	}
}

func TestScoreEntryNewCustomerBonus(t *testing.T) {
	sc := testContext(testAnchor)
	entry := baseEntry(sc)
	entry.CreatedAt = sc.Now.AddDate(0, 0, -45)

	got, ok := scoreEntry(entry, repository.CustomerStats{}, false, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	// New customers get the flat bonus instead of the recency bonus.
	// 30 + 25 + 20 + 0 value + 10 excellent + 8 new.
	if got.Score != 93 {
		t.Errorf("Score = %d, want 93", got.Score)
	}
	if got.ValueTier != transport.ValueLow {
		t.Errorf("ValueTier = %v, want low for a new customer", got.ValueTier)
	}
}

func TestScoreEntryRecencyLadder(t *testing.T) {
	sc := testContext()

	cases := []struct {
		daysSinceLastVisit int
		want               int
	}{
		{90, 10},
		{60, 10},
		{50, 7},
		{35, 5},
		{10, 0},
	}

	for _, tc := range cases {
		entry := baseEntry(sc)
		entry.Lat, entry.Lng = nil, nil
		entry.PreferredDays = nil
		entry.FlexibleTiming = true
		entry.PreferredArea = ""

		stats := repository.CustomerStats{
			AppointmentCount: 4,
			CompletedCount:   4,
			CompletedRevenue: 250,
			LastCompletedAt:  daysAgo(sc, tc.daysSinceLastVisit),
		}

		got, ok := scoreEntry(entry, stats, true, sc, Filters{})
		if !ok {
			t.Fatalf("daysSinceLastVisit=%d: entry unexpectedly dropped", tc.daysSinceLastVisit)
		}
		// 10 flexible + 8 medium + 10 excellent + recency bonus.
		if want := 28 + tc.want; got.Score != want {
			t.Errorf("daysSinceLastVisit=%d: Score = %d, want %d", tc.daysSinceLastVisit, got.Score, want)
		}
	}
}

func TestScoreEntryFilters(t *testing.T) {
	sc := testContext(testAnchor)
	steady := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 5, CompletedRevenue: 250}

	t.Run("reliability floor", func(t *testing.T) {
		filters := Filters{MinReliability: transport.ReliabilityGood}

		shaky := repository.CustomerStats{AppointmentCount: 6, NoShowCount: 2}
		if _, ok := scoreEntry(baseEntry(sc), shaky, true, sc, filters); ok {
			t.Error("fair candidate should be dropped by a good floor")
		}

		oneMiss := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 5, CompletedRevenue: 250, NoShowCount: 1}
		if _, ok := scoreEntry(baseEntry(sc), oneMiss, true, sc, filters); !ok {
			t.Error("good candidate should pass a good floor")
		}
	})

	t.Run("value allow-list", func(t *testing.T) {
		filters := Filters{ValueTiers: []transport.ValueTier{transport.ValueHigh}}
		if _, ok := scoreEntry(baseEntry(sc), steady, true, sc, filters); ok {
			t.Error("medium-value candidate should be dropped by a high-only allow-list")
		}

		big := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 6, CompletedRevenue: 900}
		if _, ok := scoreEntry(baseEntry(sc), big, true, sc, filters); !ok {
			t.Error("high-value candidate should pass")
		}
	})

	t.Run("caller distance ceiling", func(t *testing.T) {
		half := 0.5
		if _, ok := scoreEntry(baseEntry(sc), steady, true, sc, Filters{MaxDistanceMiles: &half}); ok {
			t.Error("candidate a mile out should be dropped by a half-mile ceiling")
		}
	})

	t.Run("candidate's own distance preference", func(t *testing.T) {
		entry := baseEntry(sc)
		half := 0.5
		entry.MaxDistanceMiles = &half
		if _, ok := scoreEntry(entry, steady, true, sc, Filters{}); ok {
			t.Error("candidate outside their own stated range should be dropped")
		}
	})

	t.Run("unlocated candidates pass distance filters", func(t *testing.T) {
		entry := baseEntry(sc)
		entry.Lat, entry.Lng = nil, nil
		half := 0.5
		entry.MaxDistanceMiles = &half
		if _, ok := scoreEntry(entry, steady, true, sc, Filters{MaxDistanceMiles: &half}); !ok {
			t.Error("a candidate with no coordinates cannot exceed a distance ceiling")
		}
	})
}

func TestScoreEntryNearestAnchorWins(t *testing.T) {
	far := geo.Point{Lat: 41.0, Lng: -75.0}
	sc := testContext(far, testAnchor)
	entry := baseEntry(sc)
	stats := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 5, CompletedRevenue: 250}

	got, ok := scoreEntry(entry, stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	if got.DistanceMiles == nil || *got.DistanceMiles > 2 {
		t.Errorf("DistanceMiles = %v, want distance to the closest stop", got.DistanceMiles)
	}
}

func TestReliabilityTier(t *testing.T) {
	cases := []struct {
		name  string
		stats repository.CustomerStats
		want  transport.ReliabilityTier
	}{
		{"clean history", repository.CustomerStats{AppointmentCount: 10}, transport.ReliabilityExcellent},
		{"one no-show", repository.CustomerStats{NoShowCount: 1}, transport.ReliabilityGood},
		{"two cancellations", repository.CustomerStats{CancellationCount: 2}, transport.ReliabilityGood},
		{"two no-shows", repository.CustomerStats{NoShowCount: 2}, transport.ReliabilityFair},
		{"three cancellations", repository.CustomerStats{CancellationCount: 3}, transport.ReliabilityFair},
		{"three no-shows", repository.CustomerStats{NoShowCount: 3}, transport.ReliabilityPoor},
		{"five cancellations", repository.CustomerStats{CancellationCount: 5}, transport.ReliabilityPoor},
		{"worst rung wins", repository.CustomerStats{NoShowCount: 3, CancellationCount: 2}, transport.ReliabilityPoor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reliabilityTier(tc.stats); got != tc.want {
				t.Errorf("reliabilityTier(%+v) = %v, want %v", tc.stats, got, tc.want)
			}
		})
	}
}

func TestValueTier(t *testing.T) {
	if got := valueTier(repository.CustomerStats{CompletedRevenue: 600}, true, 500, 100); got != transport.ValueHigh {
		t.Errorf("revenue 600 = %v, want high", got)
	}
	if got := valueTier(repository.CustomerStats{CompletedRevenue: 250}, true, 500, 100); got != transport.ValueMedium {
		t.Errorf("revenue 250 = %v, want medium", got)
	}
	if got := valueTier(repository.CustomerStats{CompletedRevenue: 100}, true, 500, 100); got != transport.ValueMedium {
		t.Errorf("revenue exactly at the low threshold = %v, want medium", got)
	}
	if got := valueTier(repository.CustomerStats{CompletedRevenue: 50}, true, 500, 100); got != transport.ValueLow {
		t.Errorf("revenue 50 = %v, want low", got)
	}
	if got := valueTier(repository.CustomerStats{}, false, 500, 100); got != transport.ValueLow {
		t.Errorf("no history = %v, want low", got)
	}
}

func TestScoreEntryMediumValueAddsReason(t *testing.T) {
	sc := testContext(testAnchor)
	stats := repository.CustomerStats{AppointmentCount: 6, CompletedCount: 5, CompletedRevenue: 250}

	got, ok := scoreEntry(baseEntry(sc), stats, true, sc, Filters{})
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	found := false
	for _, reason := range got.Reasons {
		if strings.Contains(reason, "spending") {
			found = true
		}
	}
	if !found {
		t.Errorf("medium-value bonus fired without a reason: %v", got.Reasons)
	}
}

func TestScoreEntryBounds(t *testing.T) {
	sc := testContext(testAnchor)
	statsVariants := []repository.CustomerStats{
		{},
		{AppointmentCount: 3, CompletedCount: 2, CompletedRevenue: 50, NoShowCount: 1},
		{AppointmentCount: 12, CompletedCount: 12, CompletedRevenue: 900},
		{AppointmentCount: 8, NoShowCount: 4, CancellationCount: 6},
	}

	for days := 0; days <= 90; days += 5 {
		for _, stats := range statsVariants {
			if stats.CompletedCount > 0 {
				stats.LastCompletedAt = daysAgo(sc, days)
			}
			entry := baseEntry(sc)
			got, ok := scoreEntry(entry, stats, stats.AppointmentCount > 0, sc, Filters{})
			if !ok {
				continue
			}
			if got.Score < 1 || got.Score > 100 {
				t.Fatalf("score %d out of range for days=%d stats=%+v", got.Score, days, stats)
			}
		}
	}
}

func TestRankHonorsCallerLimit(t *testing.T) {
	suggestions := make([]transport.Suggestion, 15)
	for i := range suggestions {
		suggestions[i] = transport.Suggestion{Score: i + 1}
	}

	got := rank(append([]transport.Suggestion(nil), suggestions...), 12)
	if len(got) != 12 {
		t.Errorf("len(rank(_, 12)) = %d, want 12", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("ranking not descending at %d: %d > %d", i, got[i].Score, got[i-1].Score)
		}
	}

	got = rank(append([]transport.Suggestion(nil), suggestions...), 0)
	if len(got) != DefaultLimit {
		t.Errorf("len(rank(_, 0)) = %d, want the default %d", len(got), DefaultLimit)
	}

	got = rank(append([]transport.Suggestion(nil), suggestions...), 50)
	if len(got) != 15 {
		t.Errorf("len(rank(_, 50)) = %d, want all 15", len(got))
	}
}
