// Package service scores waitlist entries against open schedule slots.
package service

import (
	"context"
	"sort"
	"time"

	"groomroute_backend/internal/events"
	"groomroute_backend/internal/scheduler"
	"groomroute_backend/internal/waitlist/repository"
	"groomroute_backend/internal/waitlist/transport"
	"groomroute_backend/platform/apperr"
	"groomroute_backend/platform/geo"
	"groomroute_backend/platform/logger"
	"groomroute_backend/platform/metrics"
	"groomroute_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is how many suggestions a request returns when the caller
// does not say otherwise.
const DefaultLimit = 10

// SuggestOptions tunes one suggestion request. The zero value means the
// default limit and no candidate filtering.
type SuggestOptions struct {
	Limit   int
	Filters Filters
}

// rank orders suggestions by score, best first, and keeps the top limit.
// A non-positive limit means the default; larger limits are honored as-is.
func rank(suggestions []transport.Suggestion, limit int) []transport.Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Service produces ranked waitlist suggestions for an open slot.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
	sched    scheduler.ReminderScheduler
	log      *logger.Logger
}

// New creates a new waitlist service. sched may be nil when offer emails are
// not configured.
func New(repo *repository.Repository, eventBus events.Bus, sched scheduler.ReminderScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, sched: sched, log: log}
}

// OfferSlot queues a slot-offer email to a waitlisted customer.
func (s *Service) OfferSlot(ctx context.Context, orgID, entryID uuid.UUID, day time.Time) error {
	const op = "waitlist.Service.OfferSlot"

	if s.sched == nil {
		return apperr.Unavailable("offer emails are not configured").WithOp(op)
	}

	status, err := s.repo.EntryStatus(ctx, orgID, entryID)
	if err != nil {
		return err
	}
	if status != "active" {
		return apperr.BadRequest("waitlist entry is no longer active").WithOp(op)
	}

	return s.sched.ScheduleWaitlistSlotOffer(ctx, scheduler.WaitlistSlotOfferPayload{
		EntryID:        entryID.String(),
		OrganizationID: orgID.String(),
		OfferedDate:    day.Format("Monday, January 2"),
	}, time.Now())
}

// Suggestions ranks the organization's active waitlist against an open slot
// on the groomer's day. An empty waitlist yields an empty list, not an error.
func (s *Service) Suggestions(ctx context.Context, orgID, groomerID uuid.UUID, day time.Time, opts SuggestOptions) (*transport.SuggestionsResponse, error) {
	started := time.Now()
	defer func() {
		metrics.WaitlistSuggestionDuration.Observe(time.Since(started).Seconds())
	}()

	var (
		entries  []repository.Entry
		stats    map[uuid.UUID]repository.CustomerStats
		anchors  []geo.Point
		areaName string
		revHigh  float64
		revLow   float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.repo.ActiveEntries(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.repo.StatsByCustomer(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		anchors, err = s.repo.DayAnchors(gctx, orgID, groomerID, day)
		if err != nil {
			return err
		}
		if len(anchors) == 0 {
			base, err := s.repo.GroomerBase(gctx, orgID, groomerID)
			if err != nil {
				return err
			}
			if base != nil {
				anchors = []geo.Point{*base}
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		areaName, err = s.repo.AreaForDate(gctx, orgID, groomerID, day)
		return err
	})
	g.Go(func() error {
		high, low, ok, err := s.repo.RevenueThresholds(gctx, orgID)
		if err != nil {
			return err
		}
		if !ok {
			high, low = fallbackHighRevenue, fallbackLowRevenue
		}
		revHigh, revLow = high, low
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sc := ScoreContext{
		TargetDate:  day,
		AreaName:    areaName,
		Anchors:     anchors,
		RevenueHigh: revHigh,
		RevenueLow:  revLow,
		Now:         time.Now(),
	}

	suggestions := make([]transport.Suggestion, 0, len(entries))
	for _, entry := range entries {
		entryStats, hasHistory := stats[entry.CustomerID]
		suggestion, ok := scoreEntry(entry, entryStats, hasHistory, sc, opts.Filters)
		if !ok {
			continue
		}
		suggestion.CustomerPhone = phone.NormalizeE164(suggestion.CustomerPhone)
		suggestions = append(suggestions, suggestion)
	}

	suggestions = rank(suggestions, opts.Limit)

	s.eventBus.Publish(ctx, events.WaitlistSuggestionsServed{
		BaseEvent:       events.NewBaseEvent(),
		OrganizationID:  orgID,
		GroomerID:       groomerID,
		TargetDate:      day,
		CandidateCount:  len(entries),
		SuggestionCount: len(suggestions),
	})

	s.log.Info("waitlist suggestions served",
		"groomer_id", groomerID.String(),
		"date", day.Format("2006-01-02"),
		"candidates", len(entries),
		"suggestions", len(suggestions),
	)

	return &transport.SuggestionsResponse{
		TargetDate:     day.Format("2006-01-02"),
		GroomerID:      groomerID,
		AreaName:       areaName,
		CandidateCount: len(entries),
		Suggestions:    suggestions,
	}, nil
}
