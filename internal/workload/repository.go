package workload

import (
	"context"
	"errors"
	"time"

	"groomroute_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dogs above this weight count as extra effort for the assessor.
const largeDogWeightLbs = 50

// Repository loads day aggregates for the workload assessor.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// DayInput aggregates a groomer's schedule for one day. Cancelled
// appointments do not count against the workload.
func (r *Repository) DayInput(ctx context.Context, orgID, groomerID uuid.UUID, day time.Time) (Input, error) {
	const op = "workload.Repository.DayInput"

	var hasAssistant bool
	err := r.pool.QueryRow(ctx, `
		SELECT has_assistant
		FROM groomers
		WHERE id = $1 AND organization_id = $2`,
		groomerID, orgID,
	).Scan(&hasAssistant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Input{}, apperr.NotFound("groomer not found").WithOp(op)
		}
		return Input{}, apperr.Wrap(apperr.KindInternal, "failed to load groomer", err).WithOp(op)
	}

	var in Input
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(a.duration_minutes), 0),
		       COUNT(*) FILTER (WHERE p.species = 'dog' AND p.weight_lbs > $4),
		       COUNT(*) FILTER (WHERE a.status = 'completed')
		FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		WHERE a.organization_id = $1
		  AND a.groomer_id = $2
		  AND a.scheduled_date = $3
		  AND a.status <> 'cancelled'`,
		orgID, groomerID, day, largeDogWeightLbs,
	).Scan(&in.AppointmentCount, &in.TotalMinutes, &in.LargeDogCount, &in.CompletedCount)
	if err != nil {
		return Input{}, apperr.Wrap(apperr.KindInternal, "failed to load day schedule", err).WithOp(op)
	}

	in.HasAssistant = hasAssistant
	return in, nil
}
