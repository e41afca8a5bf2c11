// Package handler exposes the waitlist suggestion endpoint.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"groomroute_backend/internal/waitlist/service"
	"groomroute_backend/internal/waitlist/transport"
	"groomroute_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves waitlist suggestion requests.
type Handler struct {
	service *service.Service
}

// New creates a new waitlist handler.
func New(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// RegisterRoutes registers handlers on the provided router group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/suggestions", h.Suggestions)
	group.POST("/entries/:entryId/offer", h.OfferSlot)
}

type offerSlotRequest struct {
	Date string `json:"date" binding:"required"`
}

// OfferSlot handles POST /waitlist/entries/:entryId/offer and queues the
// slot-offer email.
func (h *Handler) OfferSlot(c *gin.Context) {
	identity, ok := httpkit.GetIdentity(c)
	if !ok || identity.OrgID() == nil {
		httpkit.Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "entryId must be a valid UUID", nil)
		return
	}

	var req offerSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "date is required", err.Error())
		return
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	if err := h.service.OfferSlot(c.Request.Context(), *identity.OrgID(), entryID, day); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, gin.H{"queued": true})
}

// Suggestions handles GET /waitlist/suggestions.
//
// Query parameters:
//   - groomerId:        required groomer UUID
//   - date:             optional YYYY-MM-DD, defaults to today
//   - limit:            optional cap on results, defaults to 10
//   - minReliability:   optional reliability floor (poor|fair|good|excellent)
//   - valueTiers:       optional comma-separated allow-list (high,medium,low)
//   - maxDistanceMiles: optional distance ceiling
func (h *Handler) Suggestions(c *gin.Context) {
	identity, ok := httpkit.GetIdentity(c)
	if !ok || identity.OrgID() == nil {
		httpkit.Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	groomerID, err := uuid.Parse(c.Query("groomerId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "groomerId must be a valid UUID", nil)
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
	}

	var opts service.SuggestOptions
	if raw := c.Query("limit"); raw != "" {
		opts.Limit, err = strconv.Atoi(raw)
		if err != nil || opts.Limit < 1 {
			httpkit.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
	}

	if raw := c.Query("minReliability"); raw != "" {
		tier := transport.ReliabilityTier(strings.ToLower(raw))
		switch tier {
		case transport.ReliabilityPoor, transport.ReliabilityFair, transport.ReliabilityGood, transport.ReliabilityExcellent:
			opts.Filters.MinReliability = tier
		default:
			httpkit.Error(c, http.StatusBadRequest, "minReliability must be poor, fair, good, or excellent", nil)
			return
		}
	}

	if raw := c.Query("valueTiers"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			tier := transport.ValueTier(strings.ToLower(strings.TrimSpace(part)))
			switch tier {
			case transport.ValueHigh, transport.ValueMedium, transport.ValueLow:
				opts.Filters.ValueTiers = append(opts.Filters.ValueTiers, tier)
			default:
				httpkit.Error(c, http.StatusBadRequest, "valueTiers must list high, medium, or low", nil)
				return
			}
		}
	}

	if raw := c.Query("maxDistanceMiles"); raw != "" {
		ceiling, err := strconv.ParseFloat(raw, 64)
		if err != nil || ceiling <= 0 {
			httpkit.Error(c, http.StatusBadRequest, "maxDistanceMiles must be a positive number", nil)
			return
		}
		opts.Filters.MaxDistanceMiles = &ceiling
	}

	out, err := h.service.Suggestions(c.Request.Context(), *identity.OrgID(), groomerID, day, opts)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, out)
}
