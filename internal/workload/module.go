package workload

import (
	apphttp "groomroute_backend/internal/http"
	"groomroute_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the workload assessment routes.
type Module struct {
	handler *Handler
}

// NewModule creates the workload module with its repository and service.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	service := NewService(repo, log)
	return &Module{handler: NewHandler(service)}
}

func (m *Module) Name() string {
	return "workload"
}

// RegisterRoutes mounts the assessment route behind authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/workload")
	group.GET("/assessment", m.handler.Assessment)
}

var _ apphttp.Module = (*Module)(nil)
