package workload

import (
	"fmt"
	"math"
)

// Each large dog counts as extra fractional work on top of the visit itself.
const largeDogFactor = 0.3

// An assistant raises what a groomer can comfortably carry.
const assistantFactor = 1.4

type tier struct {
	level    Level
	count    float64
	minutes  float64
}

// Thresholds are "at most": a day fits a tier only when both the effective
// appointment count and the total minutes are inside it.
var tiers = []tier{
	{LevelLight, 3, 180},
	{LevelModerate, 5, 300},
	{LevelBusy, 7, 420},
	{LevelHeavy, 9, 540},
}

// Assess scores a groomer's day. The zero-appointment day is a day off, never
// an error.
func Assess(in Input) Assessment {
	if in.AppointmentCount <= 0 {
		return Assessment{
			Level:        LevelDayOff,
			HasAssistant: in.HasAssistant,
			Display:      displayFor(LevelDayOff, in.HasAssistant),
		}
	}

	effective := effectiveCount(in.AppointmentCount, in.LargeDogCount)
	level := classify(effective, float64(in.TotalMinutes), in.HasAssistant)

	out := Assessment{
		Level:            level,
		Score:            score(effective, float64(in.TotalMinutes), in.HasAssistant),
		AppointmentCount: in.AppointmentCount,
		TotalMinutes:     in.TotalMinutes,
		LargeDogCount:    in.LargeDogCount,
		EffectiveCount:   effective,
		HasAssistant:     in.HasAssistant,
		StressPoints:     stressPoints(in, level),
		Display:          displayFor(level, in.HasAssistant),
	}

	if in.CompletedCount > 0 {
		out.Remaining = assessRemaining(in, effective)
	}

	return out
}

// assessRemaining scales the day's load by the fraction of appointments still
// ahead. Minutes are assumed evenly spread; the dashboard only needs a rough
// mid-day read, not a per-appointment ledger.
func assessRemaining(in Input, effective float64) *Remaining {
	left := in.AppointmentCount - in.CompletedCount
	if left <= 0 {
		return &Remaining{Level: LevelDayOff}
	}

	fraction := float64(left) / float64(in.AppointmentCount)
	remainingEffective := effective * fraction
	remainingMinutes := float64(in.TotalMinutes) * fraction

	return &Remaining{
		Level:            classify(remainingEffective, remainingMinutes, in.HasAssistant),
		Score:            score(remainingEffective, remainingMinutes, in.HasAssistant),
		AppointmentCount: left,
		TotalMinutes:     int(math.Round(remainingMinutes)),
		EffectiveCount:   remainingEffective,
	}
}

// stressPoints lists the human-readable strain flags for the day. Threshold
// comparisons use the same assistant-scaled caps as level classification.
func stressPoints(in Input, level Level) []string {
	points := make([]string, 0, 4)

	switch {
	case in.LargeDogCount >= 3:
		points = append(points, fmt.Sprintf("%d large dogs today - that is a lot of heavy lifting", in.LargeDogCount))
	case in.LargeDogCount >= 2:
		points = append(points, fmt.Sprintf("%d large dogs on the schedule", in.LargeDogCount))
	}

	busyMinutes := scaledCap(tierFor(LevelBusy).minutes, in.HasAssistant)
	if float64(in.TotalMinutes) > busyMinutes {
		points = append(points, fmt.Sprintf("%d minutes of grooming booked", in.TotalMinutes))
	}

	moderateCount := scaledCap(tierFor(LevelModerate).count, in.HasAssistant)
	if float64(in.AppointmentCount) > moderateCount {
		points = append(points, fmt.Sprintf("%d appointments is a full day", in.AppointmentCount))
	}

	if level == LevelOverloaded {
		points = append(points, "This day is over capacity - consider rescheduling or getting help")
	}

	return points
}

func tierFor(level Level) tier {
	for _, t := range tiers {
		if t.level == level {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func scaledCap(limit float64, hasAssistant bool) float64 {
	if hasAssistant {
		return math.Floor(limit * assistantFactor)
	}
	return limit
}

func effectiveCount(appointments, largeDogs int) float64 {
	return float64(appointments) + largeDogFactor*float64(largeDogs)
}

func classify(effective, minutes float64, hasAssistant bool) Level {
	for _, t := range tiers {
		countCap, minutesCap := t.count, t.minutes
		if hasAssistant {
			countCap = math.Floor(countCap * assistantFactor)
			minutesCap = math.Floor(minutesCap * assistantFactor)
		}
		if effective <= countCap && minutes <= minutesCap {
			return t.level
		}
	}
	return LevelOverloaded
}

// score maps the day onto 0..100 against the heavy-tier capacity, taking
// whichever dimension is more saturated.
func score(effective, minutes float64, hasAssistant bool) int {
	heavy := tiers[len(tiers)-1]
	countCap, minutesCap := heavy.count, heavy.minutes
	if hasAssistant {
		countCap = math.Floor(countCap * assistantFactor)
		minutesCap = math.Floor(minutesCap * assistantFactor)
	}

	byCount := effective / countCap * 100
	byMinutes := minutes / minutesCap * 100

	return int(math.Min(100, math.Round(math.Max(byCount, byMinutes))))
}
