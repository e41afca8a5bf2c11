// Package workload assesses how heavy a groomer's day is and renders the
// result for the schedule dashboard.
package workload

// Level buckets a day from empty to over capacity.
type Level string

const (
	LevelDayOff     Level = "day_off"
	LevelLight      Level = "light"
	LevelModerate   Level = "moderate"
	LevelBusy       Level = "busy"
	LevelHeavy      Level = "heavy"
	LevelOverloaded Level = "overloaded"
)

// Input is the day aggregate the assessor scores. CompletedCount lets the
// dashboard show the remaining load mid-day.
type Input struct {
	AppointmentCount int
	TotalMinutes     int
	LargeDogCount    int
	HasAssistant     bool
	CompletedCount   int
}

// Remaining is the mid-day view of what is still ahead of the groomer.
type Remaining struct {
	Level            Level   `json:"level"`
	Score            int     `json:"score"`
	AppointmentCount int     `json:"appointmentCount"`
	TotalMinutes     int     `json:"totalMinutes"`
	EffectiveCount   float64 `json:"effectiveCount"`
}

// Display is the ready-to-render dashboard bundle for a level.
type Display struct {
	Label          string `json:"label"`
	Message        string `json:"message"`
	Color          string `json:"color"`
	Emoji          string `json:"emoji"`
	ShowReliefLink bool   `json:"showReliefLink"`
}

// Assessment is the full workload verdict for a groomer's day.
type Assessment struct {
	Level            Level      `json:"level"`
	Score            int        `json:"score"`
	AppointmentCount int        `json:"appointmentCount"`
	TotalMinutes     int        `json:"totalMinutes"`
	LargeDogCount    int        `json:"largeDogCount"`
	EffectiveCount   float64    `json:"effectiveCount"`
	HasAssistant     bool       `json:"hasAssistant"`
	StressPoints     []string   `json:"stressPoints"`
	Remaining        *Remaining `json:"remaining,omitempty"`
	Display          Display    `json:"display"`
}
