// Package transport defines the waitlist API request and response shapes.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// ValueTier buckets customers by lifetime revenue.
type ValueTier string

const (
	ValueHigh   ValueTier = "high"
	ValueMedium ValueTier = "medium"
	ValueLow    ValueTier = "low"
)

// ReliabilityTier buckets customers by show-up history.
type ReliabilityTier string

const (
	ReliabilityExcellent ReliabilityTier = "excellent"
	ReliabilityGood      ReliabilityTier = "good"
	ReliabilityFair      ReliabilityTier = "fair"
	ReliabilityPoor      ReliabilityTier = "poor"
)

// Suggestion is one scored waitlist candidate for an open slot, carrying the
// history metrics the score was derived from.
type Suggestion struct {
	EntryID              uuid.UUID       `json:"entryId"`
	CustomerID           uuid.UUID       `json:"customerId"`
	CustomerName         string          `json:"customerName"`
	CustomerPhone        string          `json:"customerPhone,omitempty"`
	PetName              string          `json:"petName"`
	Breed                string          `json:"breed,omitempty"`
	Score                int             `json:"score"`
	DistanceMiles        *float64        `json:"distanceMiles,omitempty"`
	ValueTier            ValueTier       `json:"valueTier"`
	Reliability          ReliabilityTier `json:"reliability"`
	LifetimeAppointments int             `json:"lifetimeAppointments"`
	LifetimeRevenue      float64         `json:"lifetimeRevenue"`
	CompletionRate       float64         `json:"completionRate"`
	LastCompletedAt      *time.Time      `json:"lastCompletedAt,omitempty"`
	PreferredTimes       []string        `json:"preferredTimes,omitempty"`
	WaitingSince         time.Time       `json:"waitingSince"`
	Reasons              []string        `json:"reasons"`
}

// SuggestionsResponse is the payload for GET /waitlist/suggestions.
type SuggestionsResponse struct {
	TargetDate     string       `json:"targetDate"`
	GroomerID      uuid.UUID    `json:"groomerId"`
	AreaName       string       `json:"areaName,omitempty"`
	CandidateCount int          `json:"candidateCount"`
	Suggestions    []Suggestion `json:"suggestions"`
}
