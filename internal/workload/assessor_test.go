package workload

import (
	"strings"
	"testing"
)

var levelRank = map[Level]int{
	LevelDayOff:     0,
	LevelLight:      1,
	LevelModerate:   2,
	LevelBusy:       3,
	LevelHeavy:      4,
	LevelOverloaded: 5,
}

func TestAssessLevels(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want Level
	}{
		{"no appointments is a day off", Input{}, LevelDayOff},
		{"two short visits", Input{AppointmentCount: 2, TotalMinutes: 120}, LevelLight},
		{"at the light boundary", Input{AppointmentCount: 3, TotalMinutes: 180}, LevelLight},
		{"minutes alone push past light", Input{AppointmentCount: 3, TotalMinutes: 200}, LevelModerate},
		{"full steady day", Input{AppointmentCount: 5, TotalMinutes: 300}, LevelModerate},
		{"packed solo day", Input{AppointmentCount: 6, TotalMinutes: 360, LargeDogCount: 1}, LevelBusy},
		{"same day with an assistant", Input{AppointmentCount: 6, TotalMinutes: 360, LargeDogCount: 1, HasAssistant: true}, LevelModerate},
		{"heavy day", Input{AppointmentCount: 8, TotalMinutes: 500}, LevelHeavy},
		{"over capacity", Input{AppointmentCount: 12, TotalMinutes: 700}, LevelOverloaded},
		{"large dogs tip the count", Input{AppointmentCount: 3, TotalMinutes: 150, LargeDogCount: 1}, LevelModerate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Assess(tc.in)
			if got.Level != tc.want {
				t.Errorf("Assess(%+v).Level = %v, want %v", tc.in, got.Level, tc.want)
			}
		})
	}
}

func TestAssessScore(t *testing.T) {
	got := Assess(Input{AppointmentCount: 6, TotalMinutes: 360, LargeDogCount: 1})
	if got.Score != 70 {
		t.Errorf("Score = %d, want 70", got.Score)
	}

	if got := Assess(Input{}).Score; got != 0 {
		t.Errorf("day-off Score = %d, want 0", got)
	}

	if got := Assess(Input{AppointmentCount: 20, TotalMinutes: 1200}).Score; got != 100 {
		t.Errorf("over-capacity Score = %d, want clamp at 100", got)
	}
}

func TestAssessScoreBounds(t *testing.T) {
	for count := 0; count <= 15; count++ {
		for _, minutes := range []int{0, 60, 240, 480, 720} {
			for _, large := range []int{0, 2, 5} {
				got := Assess(Input{AppointmentCount: count, TotalMinutes: minutes, LargeDogCount: large})
				if got.Score < 0 || got.Score > 100 {
					t.Fatalf("score %d out of range for count=%d minutes=%d large=%d",
						got.Score, count, minutes, large)
				}
			}
		}
	}
}

// An assistant must never make the same day look worse.
func TestAssistantNeverRaisesLevel(t *testing.T) {
	for count := 1; count <= 14; count++ {
		for _, minutes := range []int{60, 180, 300, 420, 540, 700} {
			solo := Assess(Input{AppointmentCount: count, TotalMinutes: minutes})
			helped := Assess(Input{AppointmentCount: count, TotalMinutes: minutes, HasAssistant: true})
			if levelRank[helped.Level] > levelRank[solo.Level] {
				t.Errorf("count=%d minutes=%d: assistant raised level %v -> %v",
					count, minutes, solo.Level, helped.Level)
			}
			if helped.Score > solo.Score {
				t.Errorf("count=%d minutes=%d: assistant raised score %d -> %d",
					count, minutes, solo.Score, helped.Score)
			}
		}
	}
}

func TestAssessRemaining(t *testing.T) {
	got := Assess(Input{AppointmentCount: 6, TotalMinutes: 360, LargeDogCount: 1, CompletedCount: 3})
	if got.Remaining == nil {
		t.Fatal("Remaining = nil, want mid-day view")
	}
	if got.Remaining.AppointmentCount != 3 {
		t.Errorf("Remaining.AppointmentCount = %d, want 3", got.Remaining.AppointmentCount)
	}
	if got.Remaining.TotalMinutes != 180 {
		t.Errorf("Remaining.TotalMinutes = %d, want 180", got.Remaining.TotalMinutes)
	}
	if got.Remaining.Level != LevelModerate {
		t.Errorf("Remaining.Level = %v, want %v", got.Remaining.Level, LevelModerate)
	}

	done := Assess(Input{AppointmentCount: 4, TotalMinutes: 240, CompletedCount: 4})
	if done.Remaining == nil || done.Remaining.Level != LevelDayOff {
		t.Errorf("fully completed day Remaining = %+v, want day off", done.Remaining)
	}

	fresh := Assess(Input{AppointmentCount: 4, TotalMinutes: 240})
	if fresh.Remaining != nil {
		t.Errorf("untouched day Remaining = %+v, want nil", fresh.Remaining)
	}
}

func TestStressPoints(t *testing.T) {
	hasPoint := func(points []string, substr string) bool {
		for _, p := range points {
			if strings.Contains(p, substr) {
				return true
			}
		}
		return false
	}

	got := Assess(Input{AppointmentCount: 8, TotalMinutes: 600, LargeDogCount: 3})
	if got.Level != LevelOverloaded {
		t.Fatalf("Level = %v, want overloaded", got.Level)
	}
	if len(got.StressPoints) != 4 {
		t.Fatalf("StressPoints = %v, want 4 entries", got.StressPoints)
	}
	if !hasPoint(got.StressPoints, "heavy lifting") {
		t.Errorf("missing escalated large-dog flag in %v", got.StressPoints)
	}
	if !hasPoint(got.StressPoints, "600 minutes") {
		t.Errorf("missing minutes flag in %v", got.StressPoints)
	}
	if !hasPoint(got.StressPoints, "8 appointments") {
		t.Errorf("missing appointment-count flag in %v", got.StressPoints)
	}
	if !hasPoint(got.StressPoints, "over capacity") {
		t.Errorf("missing overload warning in %v", got.StressPoints)
	}

	pair := Assess(Input{AppointmentCount: 3, TotalMinutes: 180, LargeDogCount: 2})
	if len(pair.StressPoints) != 1 || !hasPoint(pair.StressPoints, "2 large dogs") {
		t.Errorf("two large dogs should flag mildly, got %v", pair.StressPoints)
	}
	if hasPoint(pair.StressPoints, "heavy lifting") {
		t.Errorf("two large dogs should not use the escalated wording: %v", pair.StressPoints)
	}

	calm := Assess(Input{AppointmentCount: 3, TotalMinutes: 150})
	if len(calm.StressPoints) != 0 {
		t.Errorf("calm day StressPoints = %v, want none", calm.StressPoints)
	}

	// Assistant-scaled thresholds: 6 appointments clear the scaled moderate
	// cap of 7 and 400 minutes clear the scaled busy cap of 588.
	helped := Assess(Input{AppointmentCount: 6, TotalMinutes: 400, HasAssistant: true})
	if len(helped.StressPoints) != 0 {
		t.Errorf("assisted day StressPoints = %v, want none", helped.StressPoints)
	}
}

func TestDisplayBundle(t *testing.T) {
	heavy := Assess(Input{AppointmentCount: 8, TotalMinutes: 500})
	if !heavy.Display.ShowReliefLink {
		t.Error("heavy day should offer the relief link")
	}
	if heavy.Display.Label == "" || heavy.Display.Message == "" || heavy.Display.Color == "" {
		t.Errorf("incomplete display bundle: %+v", heavy.Display)
	}

	light := Assess(Input{AppointmentCount: 2, TotalMinutes: 90})
	if light.Display.ShowReliefLink {
		t.Error("light day should not offer the relief link")
	}

	solo := Assess(Input{AppointmentCount: 8, TotalMinutes: 500})
	helped := Assess(Input{AppointmentCount: 10, TotalMinutes: 700, HasAssistant: true})
	if helped.Level != LevelHeavy {
		t.Fatalf("helped level = %v, want heavy", helped.Level)
	}
	if solo.Display.Message == helped.Display.Message {
		t.Error("assistant phrasing should differ on heavy days")
	}
}
