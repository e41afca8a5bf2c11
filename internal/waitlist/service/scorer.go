package service

import (
	"fmt"
	"strings"
	"time"

	"groomroute_backend/internal/waitlist/repository"
	"groomroute_backend/internal/waitlist/transport"
	"groomroute_backend/platform/geo"
)

// Scoring weights. The total is clamped to 100 and anything at or below zero
// is not suggested at all.
const (
	pointsPreferredDay = 30
	pointsFlexibleDay  = 10
	pointsAreaMatch    = 25
	pointsHighValue    = 15
	pointsMediumValue  = 8
	pointsRecency60    = 10
	pointsRecency45    = 7
	pointsRecency30    = 5
	pointsNewCustomer  = 8
)

// Proximity bands in miles to the nearest scheduled stop.
var proximityBands = []struct {
	maxMiles float64
	points   int
}{
	{2, 20},
	{5, 15},
	{10, 10},
	{15, 5},
}

// Reliability adjustments per tier.
var reliabilityPoints = map[transport.ReliabilityTier]int{
	transport.ReliabilityExcellent: 10,
	transport.ReliabilityGood:      5,
	transport.ReliabilityFair:      0,
	transport.ReliabilityPoor:      -10,
}

// Revenue cutoffs used when the organization has no history to draw
// percentiles from.
const (
	fallbackHighRevenue = 500
	fallbackLowRevenue  = 100
)

// ScoreContext is everything about the open slot that scoring needs.
type ScoreContext struct {
	TargetDate  time.Time
	AreaName    string
	Anchors     []geo.Point
	RevenueHigh float64
	RevenueLow  float64
	Now         time.Time
}

// Filters narrows the candidate pool before any scoring happens. The zero
// value filters nothing.
type Filters struct {
	// MinReliability drops candidates below this tier. Empty means no floor.
	MinReliability transport.ReliabilityTier
	// ValueTiers keeps only candidates in these tiers. Empty means all.
	ValueTiers []transport.ValueTier
	// MaxDistanceMiles drops candidates farther than this from the route.
	MaxDistanceMiles *float64
}

var reliabilityRank = map[transport.ReliabilityTier]int{
	transport.ReliabilityPoor:      0,
	transport.ReliabilityFair:      1,
	transport.ReliabilityGood:      2,
	transport.ReliabilityExcellent: 3,
}

// passesFilters decides whether a candidate is scored at all. A nil distance
// cannot exceed any ceiling, so unlocated candidates are kept.
func passesFilters(entry repository.Entry, reliability transport.ReliabilityTier, value transport.ValueTier, distance *float64, f Filters) bool {
	if f.MinReliability != "" && reliabilityRank[reliability] < reliabilityRank[f.MinReliability] {
		return false
	}
	if len(f.ValueTiers) > 0 {
		allowed := false
		for _, tier := range f.ValueTiers {
			if tier == value {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	if distance != nil {
		if f.MaxDistanceMiles != nil && *distance > *f.MaxDistanceMiles {
			return false
		}
		if entry.MaxDistanceMiles != nil && *distance > *entry.MaxDistanceMiles {
			return false
		}
	}
	return true
}

// scoreEntry scores one waitlist entry against the open slot. The second
// return is false when the entry is filtered out or scores zero or below.
func scoreEntry(entry repository.Entry, stats repository.CustomerStats, hasHistory bool, sc ScoreContext, filters Filters) (transport.Suggestion, bool) {
	distance := nearestAnchorMiles(entry, sc.Anchors)
	value := valueTier(stats, hasHistory, sc.RevenueHigh, sc.RevenueLow)
	reliability := reliabilityTier(stats)

	if !passesFilters(entry, reliability, value, distance, filters) {
		return transport.Suggestion{}, false
	}

	score := 0
	var reasons []string

	weekday := strings.ToLower(sc.TargetDate.Weekday().String())
	switch {
	case containsFold(entry.PreferredDays, weekday):
		score += pointsPreferredDay
		reasons = append(reasons, "asked for this day of the week")
	case entry.FlexibleTiming:
		score += pointsFlexibleDay
		reasons = append(reasons, "flexible on scheduling")
	}

	if sc.AreaName != "" && strings.EqualFold(entry.PreferredArea, sc.AreaName) {
		score += pointsAreaMatch
		reasons = append(reasons, fmt.Sprintf("lives in the day's service area (%s)", sc.AreaName))
	}

	if distance != nil {
		for _, band := range proximityBands {
			if *distance <= band.maxMiles {
				score += band.points
				reasons = append(reasons, fmt.Sprintf("%.1f miles from the route", *distance))
				break
			}
		}
	}

	switch value {
	case transport.ValueHigh:
		score += pointsHighValue
		reasons = append(reasons, "top-tier customer")
	case transport.ValueMedium:
		score += pointsMediumValue
		reasons = append(reasons, "solid spending history")
	}

	score += reliabilityPoints[reliability]
	switch reliability {
	case transport.ReliabilityExcellent:
		reasons = append(reasons, "always shows up")
	case transport.ReliabilityGood:
		reasons = append(reasons, "reliable show-up history")
	case transport.ReliabilityPoor:
		reasons = append(reasons, "history of no-shows or late cancellations")
	}

	if !hasHistory || stats.AppointmentCount == 0 {
		score += pointsNewCustomer
		reasons = append(reasons, "new customer")
	} else if stats.LastCompletedAt != nil {
		daysSince := int(sc.Now.Sub(*stats.LastCompletedAt).Hours() / 24)
		switch {
		case daysSince >= 60:
			score += pointsRecency60
			reasons = append(reasons, fmt.Sprintf("last visit %d days ago", daysSince))
		case daysSince >= 45:
			score += pointsRecency45
			reasons = append(reasons, fmt.Sprintf("last visit %d days ago", daysSince))
		case daysSince >= 30:
			score += pointsRecency30
			reasons = append(reasons, fmt.Sprintf("last visit %d days ago", daysSince))
		}
	}

	if score <= 0 {
		return transport.Suggestion{}, false
	}
	if score > 100 {
		score = 100
	}

	return transport.Suggestion{
		EntryID:              entry.ID,
		CustomerID:           entry.CustomerID,
		CustomerName:         entry.CustomerName,
		CustomerPhone:        entry.CustomerPhone,
		PetName:              entry.PetName,
		Breed:                entry.Breed,
		Score:                score,
		DistanceMiles:        distance,
		ValueTier:            value,
		Reliability:          reliability,
		LifetimeAppointments: stats.AppointmentCount,
		LifetimeRevenue:      stats.CompletedRevenue,
		CompletionRate:       completionRate(stats, hasHistory),
		LastCompletedAt:      stats.LastCompletedAt,
		PreferredTimes:       entry.PreferredTimes,
		WaitingSince:         entry.CreatedAt,
		Reasons:              reasons,
	}, true
}

func completionRate(stats repository.CustomerStats, hasHistory bool) float64 {
	if !hasHistory {
		return 100
	}
	return stats.CompletionRate()
}

// nearestAnchorMiles returns the distance from the entry's home to the
// closest scheduled stop, or nil when either side lacks coordinates.
func nearestAnchorMiles(entry repository.Entry, anchors []geo.Point) *float64 {
	if entry.Lat == nil || entry.Lng == nil || len(anchors) == 0 {
		return nil
	}

	home := geo.Point{Lat: *entry.Lat, Lng: *entry.Lng}
	best := geo.DistanceMiles(home, anchors[0])
	for _, anchor := range anchors[1:] {
		if d := geo.DistanceMiles(home, anchor); d < best {
			best = d
		}
	}
	return &best
}

// valueTier buckets a customer by lifetime completed revenue against the
// organization's percentile thresholds.
func valueTier(stats repository.CustomerStats, hasHistory bool, high, low float64) transport.ValueTier {
	if !hasHistory {
		return transport.ValueLow
	}
	switch {
	case stats.CompletedRevenue >= high:
		return transport.ValueHigh
	case stats.CompletedRevenue < low:
		return transport.ValueLow
	default:
		return transport.ValueMedium
	}
}

// reliabilityTier buckets show-up history. The worst matching tier wins, so
// the poor rung is checked first.
func reliabilityTier(stats repository.CustomerStats) transport.ReliabilityTier {
	switch {
	case stats.NoShowCount >= 3 || stats.CancellationCount >= 5:
		return transport.ReliabilityPoor
	case stats.NoShowCount >= 2 || stats.CancellationCount >= 3:
		return transport.ReliabilityFair
	case stats.NoShowCount >= 1 || stats.CancellationCount >= 2:
		return transport.ReliabilityGood
	default:
		return transport.ReliabilityExcellent
	}
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
