package routing

import (
	"groomroute_backend/internal/events"
	apphttp "groomroute_backend/internal/http"
	"groomroute_backend/platform/logger"
)

// Module wires the routing provider routes.
type Module struct {
	handler  *Handler
	Provider Provider
}

// NewModule creates the routing module around an already-built provider.
func NewModule(provider Provider, eventBus events.Bus, log *logger.Logger) *Module {
	return &Module{
		handler:  NewHandler(provider, eventBus, log),
		Provider: provider,
	}
}

func (m *Module) Name() string {
	return "routing"
}

// RegisterRoutes mounts the routing endpoints behind authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/routes")
	group.POST("/optimize", m.handler.Optimize)
	group.GET("/geocode", m.handler.GeocodeAddress)
}

var _ apphttp.Module = (*Module)(nil)
