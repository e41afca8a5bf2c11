package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groomroute_backend/internal/email"
	"groomroute_backend/platform/config"
	"groomroute_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	pool   *pgxpool.Pool
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		pool:   pool,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskAppointmentReminder, w.handleAppointmentReminder)
	mux.HandleFunc(TaskWaitlistSlotOffer, w.handleWaitlistSlotOffer)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleAppointmentReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAppointmentReminderPayload(task)
	if err != nil {
		return err
	}

	apptID, err := uuid.Parse(payload.AppointmentID)
	if err != nil {
		return err
	}

	orgID, err := uuid.Parse(payload.OrganizationID)
	if err != nil {
		return err
	}

	var (
		status        string
		customerName  string
		customerEmail *string
		petName       string
		scheduledDate time.Time
		timeWindow    *string
	)
	err = w.pool.QueryRow(ctx, `
		SELECT a.status, c.full_name, c.email, p.name, a.scheduled_date, a.time_window
		FROM appointments a
		JOIN customers c ON c.id = a.customer_id
		JOIN pets p ON p.id = a.pet_id
		WHERE a.id = $1 AND a.organization_id = $2`,
		apptID, orgID,
	).Scan(&status, &customerName, &customerEmail, &petName, &scheduledDate, &timeWindow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	// Cancelled or already-finished appointments need no reminder.
	if status != "scheduled" {
		return nil
	}
	if customerEmail == nil || *customerEmail == "" {
		return nil
	}

	window := ""
	if timeWindow != nil {
		window = *timeWindow
	}

	if err := w.sender.SendAppointmentReminder(ctx, *customerEmail, customerName, petName,
		scheduledDate.Format("Monday, January 2"), window); err != nil {
		return err
	}

	w.log.Info("appointment reminder sent", "appointment_id", apptID.String())
	return nil
}

func (w *Worker) handleWaitlistSlotOffer(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseWaitlistSlotOfferPayload(task)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(payload.EntryID)
	if err != nil {
		return err
	}

	orgID, err := uuid.Parse(payload.OrganizationID)
	if err != nil {
		return err
	}

	var (
		entryStatus   string
		customerName  string
		customerEmail *string
		petName       string
	)
	err = w.pool.QueryRow(ctx, `
		SELECT w.status, c.full_name, c.email, p.name
		FROM waitlist_entries w
		JOIN customers c ON c.id = w.customer_id
		JOIN pets p ON p.id = w.pet_id
		WHERE w.id = $1 AND w.organization_id = $2`,
		entryID, orgID,
	).Scan(&entryStatus, &customerName, &customerEmail, &petName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	if entryStatus != "active" {
		return nil
	}
	if customerEmail == nil || *customerEmail == "" {
		return nil
	}

	if err := w.sender.SendWaitlistSlotOffer(ctx, *customerEmail, customerName, petName, payload.OfferedDate); err != nil {
		return err
	}

	w.log.Info("waitlist slot offer sent", "entry_id", entryID.String())
	return nil
}
