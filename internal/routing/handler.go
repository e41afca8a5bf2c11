package routing

import (
	"net/http"
	"time"

	"groomroute_backend/internal/events"
	"groomroute_backend/platform/geo"
	"groomroute_backend/platform/httpkit"
	"groomroute_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Providers support at most this many stops per optimization request.
const maxWaypoints = 23

type pointPayload struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

type waypointPayload struct {
	ID                     string       `json:"id" binding:"required"`
	Label                  string       `json:"label"`
	Location               pointPayload `json:"location" binding:"required"`
	ServiceDurationMinutes int          `json:"serviceDurationMinutes" binding:"min=0"`
	TimeWindow             string       `json:"timeWindow"`
}

// OptimizeRequest is the payload for POST /routes/optimize. ReturnToOrigin
// defaults to true; it only matters when no destination is given.
type OptimizeRequest struct {
	GroomerID      string            `json:"groomerId" binding:"required,uuid"`
	Origin         pointPayload      `json:"origin" binding:"required"`
	Destination    *pointPayload     `json:"destination"`
	Waypoints      []waypointPayload `json:"waypoints" binding:"required,min=1,dive"`
	StartTime      *time.Time        `json:"startTime"`
	ReturnToOrigin *bool             `json:"returnToOrigin"`
}

// Handler exposes route optimization and geocoding.
type Handler struct {
	provider Provider
	eventBus events.Bus
	log      *logger.Logger
}

// NewHandler creates a new routing handler.
func NewHandler(provider Provider, eventBus events.Bus, log *logger.Logger) *Handler {
	return &Handler{provider: provider, eventBus: eventBus, log: log}
}

// Optimize handles POST /routes/optimize.
func (h *Handler) Optimize(c *gin.Context) {
	identity, ok := httpkit.GetIdentity(c)
	if !ok || identity.OrgID() == nil {
		httpkit.Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "origin and at least one waypoint are required", err.Error())
		return
	}
	if len(req.Waypoints) > maxWaypoints {
		httpkit.Error(c, http.StatusBadRequest, "too many waypoints for a single route", nil)
		return
	}

	routeReq := RouteRequest{
		Origin:         geo.Point{Lat: req.Origin.Lat, Lng: req.Origin.Lng},
		StartTime:      req.StartTime,
		ReturnToOrigin: req.ReturnToOrigin == nil || *req.ReturnToOrigin,
	}
	if req.Destination != nil {
		routeReq.Destination = &geo.Point{Lat: req.Destination.Lat, Lng: req.Destination.Lng}
	}
	for _, wp := range req.Waypoints {
		routeReq.Waypoints = append(routeReq.Waypoints, Waypoint{
			ID:                     wp.ID,
			Label:                  wp.Label,
			Location:               geo.Point{Lat: wp.Location.Lat, Lng: wp.Location.Lng},
			ServiceDurationMinutes: wp.ServiceDurationMinutes,
			TimeWindow:             wp.TimeWindow,
		})
	}

	result, err := h.provider.OptimizeRoute(c.Request.Context(), routeReq)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	groomerID, _ := uuid.Parse(req.GroomerID)
	h.eventBus.Publish(c.Request.Context(), events.RouteOptimized{
		BaseEvent:            events.NewBaseEvent(),
		OrganizationID:       *identity.OrgID(),
		GroomerID:            groomerID,
		Provider:             result.Provider,
		StopCount:            len(result.Waypoints),
		TotalDurationMinutes: result.TotalDurationMinutes,
	})

	httpkit.OK(c, result)
}

// GeocodeAddress handles GET /routes/geocode. Unresolvable addresses come
// back with status "failed" and a 200, so the caller can queue a retry.
func (h *Handler) GeocodeAddress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		httpkit.Error(c, http.StatusBadRequest, "address is required", nil)
		return
	}

	httpkit.OK(c, h.provider.Geocode(c.Request.Context(), address))
}
