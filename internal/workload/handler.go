package workload

import (
	"net/http"
	"strconv"
	"time"

	"groomroute_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the workload assessment to the schedule dashboard.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Assessment handles GET /workload/assessment.
//
// Query parameters:
//   - groomerId: required groomer UUID
//   - date:      optional YYYY-MM-DD, defaults to today
//   - completed: optional override for the number of finished appointments
func (h *Handler) Assessment(c *gin.Context) {
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

	completed := -1
	if raw := c.Query("completed"); raw != "" {
		completed, err = strconv.Atoi(raw)
		if err != nil || completed < 0 {
			httpkit.Error(c, http.StatusBadRequest, "completed must be a non-negative integer", nil)
			return
		}
	}

	out, err := h.service.AssessDay(c.Request.Context(), *identity.OrgID(), groomerID, day, completed)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, out)
}
