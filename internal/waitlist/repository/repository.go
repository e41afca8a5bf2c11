// Package repository provides data access for waitlist matching.
package repository

import (
	"context"
	"errors"
	"time"

	"groomroute_backend/platform/apperr"
	"groomroute_backend/platform/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is an active waitlist entry with the customer and pet context the
// scorer needs.
type Entry struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	CustomerName     string
	CustomerPhone    string
	PetID            uuid.UUID
	PetName          string
	Species          string
	Breed            string
	PreferredDays    []string
	PreferredTimes   []string
	FlexibleTiming   bool
	MaxDistanceMiles *float64
	PreferredArea    string
	Lat              *float64
	Lng              *float64
	CreatedAt        time.Time
}

// CustomerStats aggregates a customer's appointment history.
type CustomerStats struct {
	AppointmentCount  int
	CompletedCount    int
	CompletedRevenue  float64
	NoShowCount       int
	CancellationCount int
	LastCompletedAt   *time.Time
}

// CompletionRate is the share of the customer's appointments that completed,
// as a percentage. A customer with no history rates 100.
func (s CustomerStats) CompletionRate() float64 {
	if s.AppointmentCount == 0 {
		return 100
	}
	return float64(s.CompletedCount) / float64(s.AppointmentCount) * 100
}

// Repository provides waitlist data access.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new waitlist repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ActiveEntries returns all open waitlist entries for the organization.
func (r *Repository) ActiveEntries(ctx context.Context, orgID uuid.UUID) ([]Entry, error) {
	const op = "waitlist.Repository.ActiveEntries"

	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.customer_id, c.full_name, COALESCE(c.phone, ''),
		       w.pet_id, p.name, p.species, COALESCE(p.breed, ''),
		       COALESCE(w.preferred_days, '{}'), COALESCE(w.preferred_times, '{}'),
		       COALESCE(w.flexible_timing, FALSE), w.max_distance_miles,
		       COALESCE(w.preferred_area, ''),
		       c.lat, c.lng, w.created_at
		FROM waitlist_entries w
		JOIN customers c ON c.id = w.customer_id
		JOIN pets p ON p.id = w.pet_id
		WHERE w.organization_id = $1
		  AND w.status = 'active'
		ORDER BY w.created_at`,
		orgID,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load waitlist entries", err).WithOp(op)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.CustomerID, &e.CustomerName, &e.CustomerPhone,
			&e.PetID, &e.PetName, &e.Species, &e.Breed,
			&e.PreferredDays, &e.PreferredTimes,
			&e.FlexibleTiming, &e.MaxDistanceMiles,
			&e.PreferredArea,
			&e.Lat, &e.Lng, &e.CreatedAt,
		); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan waitlist entry", err).WithOp(op)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read waitlist entries", err).WithOp(op)
	}

	return entries, nil
}

// StatsByCustomer aggregates appointment history for every customer in the
// organization in one pass. Customers with no history are simply absent.
func (r *Repository) StatsByCustomer(ctx context.Context, orgID uuid.UUID) (map[uuid.UUID]CustomerStats, error) {
	const op = "waitlist.Repository.StatsByCustomer"

	rows, err := r.pool.Query(ctx, `
		SELECT customer_id,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0),
		       COUNT(*) FILTER (WHERE status = 'no_show'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       MAX(scheduled_date) FILTER (WHERE status = 'completed')
		FROM appointments
		WHERE organization_id = $1
		GROUP BY customer_id`,
		orgID,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load customer history", err).WithOp(op)
	}
	defer rows.Close()

	stats := make(map[uuid.UUID]CustomerStats)
	for rows.Next() {
		var id uuid.UUID
		var s CustomerStats
		if err := rows.Scan(&id, &s.AppointmentCount, &s.CompletedCount, &s.CompletedRevenue,
			&s.NoShowCount, &s.CancellationCount, &s.LastCompletedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan customer history", err).WithOp(op)
		}
		stats[id] = s
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read customer history", err).WithOp(op)
	}

	return stats, nil
}

// EntryStatus returns the status of one waitlist entry.
func (r *Repository) EntryStatus(ctx context.Context, orgID, entryID uuid.UUID) (string, error) {
	const op = "waitlist.Repository.EntryStatus"

	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT status
		FROM waitlist_entries
		WHERE id = $1 AND organization_id = $2`,
		entryID, orgID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("waitlist entry not found").WithOp(op)
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to load waitlist entry", err).WithOp(op)
	}

	return status, nil
}

// DayAnchors returns the coordinates of the groomer's scheduled stops on the
// target day. These anchor the proximity scoring.
func (r *Repository) DayAnchors(ctx context.Context, orgID, groomerID uuid.UUID, day time.Time) ([]geo.Point, error) {
	const op = "waitlist.Repository.DayAnchors"

	rows, err := r.pool.Query(ctx, `
		SELECT c.lat, c.lng
		FROM appointments a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.organization_id = $1
		  AND a.groomer_id = $2
		  AND a.scheduled_date = $3
		  AND a.status <> 'cancelled'
		  AND c.lat IS NOT NULL AND c.lng IS NOT NULL`,
		orgID, groomerID, day,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load day stops", err).WithOp(op)
	}
	defer rows.Close()

	var anchors []geo.Point
	for rows.Next() {
		var p geo.Point
		if err := rows.Scan(&p.Lat, &p.Lng); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan day stop", err).WithOp(op)
		}
		anchors = append(anchors, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read day stops", err).WithOp(op)
	}

	return anchors, nil
}

// GroomerBase returns the groomer's home-base coordinates, or nil when none
// are on file.
func (r *Repository) GroomerBase(ctx context.Context, orgID, groomerID uuid.UUID) (*geo.Point, error) {
	const op = "waitlist.Repository.GroomerBase"

	var lat, lng *float64
	err := r.pool.QueryRow(ctx, `
		SELECT base_lat, base_lng
		FROM groomers
		WHERE id = $1 AND organization_id = $2`,
		groomerID, orgID,
	).Scan(&lat, &lng)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("groomer not found").WithOp(op)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load groomer", err).WithOp(op)
	}

	if lat == nil || lng == nil {
		return nil, nil
	}
	return &geo.Point{Lat: *lat, Lng: *lng}, nil
}

// AreaForDate resolves which service area the groomer covers on a date.
// A date-specific override wins over the weekly assignment. Returns "" when
// neither exists.
func (r *Repository) AreaForDate(ctx context.Context, orgID, groomerID uuid.UUID, day time.Time) (string, error) {
	const op = "waitlist.Repository.AreaForDate"

	var area string
	err := r.pool.QueryRow(ctx, `
		SELECT area_name
		FROM service_area_assignments
		WHERE organization_id = $1
		  AND groomer_id = $2
		  AND (assignment_date = $3 OR (assignment_date IS NULL AND weekday = $4))
		ORDER BY assignment_date NULLS LAST
		LIMIT 1`,
		orgID, groomerID, day, int(day.Weekday()),
	).Scan(&area)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to load service area", err).WithOp(op)
	}

	return area, nil
}

// RevenueThresholds returns the 75th and 25th percentile of per-customer
// completed revenue. ok is false when the organization has no completed
// appointments yet.
func (r *Repository) RevenueThresholds(ctx context.Context, orgID uuid.UUID) (high, low float64, ok bool, err error) {
	const op = "waitlist.Repository.RevenueThresholds"

	var highPct, lowPct *float64
	err = r.pool.QueryRow(ctx, `
		SELECT percentile_cont(0.75) WITHIN GROUP (ORDER BY revenue),
		       percentile_cont(0.25) WITHIN GROUP (ORDER BY revenue)
		FROM (
			SELECT SUM(total_price) AS revenue
			FROM appointments
			WHERE organization_id = $1 AND status = 'completed'
			GROUP BY customer_id
		) per_customer`,
		orgID,
	).Scan(&highPct, &lowPct)
	if err != nil {
		return 0, 0, false, apperr.Wrap(apperr.KindInternal, "failed to load revenue percentiles", err).WithOp(op)
	}

	if highPct == nil || lowPct == nil {
		return 0, 0, false, nil
	}
	return *highPct, *lowPct, true, nil
}
