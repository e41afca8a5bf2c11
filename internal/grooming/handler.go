package grooming

import (
	"net/http"

	"groomroute_backend/platform/httpkit"
	"groomroute_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes duration estimation to the booking funnel and staff tools.
type Handler struct {
	val *validator.Validator
}

// NewHandler creates a new grooming handler.
func NewHandler(val *validator.Validator) *Handler {
	return &Handler{val: val}
}

// EstimateDuration handles POST /booking/duration-estimate.
// The estimate itself cannot fail; only a malformed request is rejected.
func (h *Handler) EstimateDuration(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "species, breed, and size are required", err.Error())
		return
	}

	estimate := EstimateDuration(PetProfile{
		Species: Species(req.Species),
		Breed:   req.Breed,
		Size:    SizeBucket(req.Size),
	})

	httpkit.OK(c, estimate)
}

// DefaultDurationHandler handles GET /booking/default-duration for callers
// with no pet data.
func (h *Handler) DefaultDurationHandler(c *gin.Context) {
	httpkit.OK(c, gin.H{"minutes": DefaultDuration()})
}
