package scheduler

import (
	"context"
	"time"

	"groomroute_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reminders go out this long before the start of the appointment day.
const reminderLeadTime = 15 * time.Hour

// ReminderSweep periodically enqueues reminder tasks for tomorrow's
// appointments. Each appointment is marked as enqueued so overlapping sweeps
// never double-send.
type ReminderSweep struct {
	pool     *pgxpool.Pool
	client   *Client
	log      *logger.Logger
	interval time.Duration
}

func NewReminderSweep(pool *pgxpool.Pool, client *Client, log *logger.Logger, interval time.Duration) *ReminderSweep {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ReminderSweep{pool: pool, client: client, log: log, interval: interval}
}

func (s *ReminderSweep) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ReminderSweep) sweep(ctx context.Context) {
	tomorrow := time.Now().AddDate(0, 0, 1)

	rows, err := s.pool.Query(ctx, `
		UPDATE appointments
		SET reminder_enqueued_at = NOW()
		WHERE scheduled_date = $1
		  AND status = 'scheduled'
		  AND reminder_enqueued_at IS NULL
		RETURNING id, organization_id, scheduled_date`,
		tomorrow,
	)
	if err != nil {
		s.log.DatabaseError("reminder_sweep", err)
		return
	}
	defer rows.Close()

	var enqueued int
	for rows.Next() {
		var (
			id    uuid.UUID
			orgID uuid.UUID
			day   time.Time
		)
		if err := rows.Scan(&id, &orgID, &day); err != nil {
			s.log.DatabaseError("reminder_sweep_scan", err)
			return
		}

		runAt := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).Add(-reminderLeadTime)
		if runAt.Before(time.Now()) {
			runAt = time.Now()
		}

		payload := AppointmentReminderPayload{
			AppointmentID:  id.String(),
			OrganizationID: orgID.String(),
		}
		if err := s.client.ScheduleAppointmentReminder(ctx, payload, runAt); err != nil {
			s.log.Error("failed to enqueue appointment reminder", "appointment_id", id.String(), "error", err)
			continue
		}
		enqueued++
	}
	if err := rows.Err(); err != nil {
		s.log.DatabaseError("reminder_sweep", err)
		return
	}

	if enqueued > 0 {
		s.log.Info("appointment reminders enqueued", "count", enqueued)
	}
}
