// Package waitlist provides the waitlist matching domain module.
package waitlist

import (
	"groomroute_backend/internal/events"
	apphttp "groomroute_backend/internal/http"
	"groomroute_backend/internal/scheduler"
	"groomroute_backend/internal/waitlist/handler"
	"groomroute_backend/internal/waitlist/repository"
	"groomroute_backend/internal/waitlist/service"
	"groomroute_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the waitlist domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new waitlist module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, sched scheduler.ReminderScheduler, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, sched, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "waitlist"
}

// RegisterRoutes registers the module's routes under /api/v1/waitlist.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/waitlist")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
