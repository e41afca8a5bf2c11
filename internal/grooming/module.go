// Package grooming provides breed intensity classification and appointment
// duration estimation.
package grooming

import (
	apphttp "groomroute_backend/internal/http"
	"groomroute_backend/platform/validator"
)

// Module wires the grooming estimation HTTP routes.
type Module struct {
	handler *Handler
}

// NewModule creates the grooming module.
func NewModule(val *validator.Validator) *Module {
	return &Module{handler: NewHandler(val)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "grooming"
}

// RegisterRoutes mounts the estimation routes. The booking funnel needs them
// unauthenticated; staff tooling reaches the same handlers behind auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	booking := ctx.Public.Group("/booking")
	booking.POST("/duration-estimate", m.handler.EstimateDuration)
	booking.GET("/default-duration", m.handler.DefaultDurationHandler)

	staff := ctx.Protected.Group("/grooming")
	staff.POST("/duration-estimate", m.handler.EstimateDuration)
}

var _ apphttp.Module = (*Module)(nil)
