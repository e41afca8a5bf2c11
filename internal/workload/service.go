package workload

import (
	"context"
	"time"

	"groomroute_backend/platform/logger"

	"github.com/google/uuid"
)

// Service loads a groomer's day and runs the assessor over it.
type Service struct {
	repo *Repository
	log  *logger.Logger
}

func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// AssessDay assesses a groomer's workload for one day. completedOverride, when
// non-negative, replaces the completed count derived from appointment statuses
// so clients can preview the remaining load.
func (s *Service) AssessDay(ctx context.Context, orgID, groomerID uuid.UUID, day time.Time, completedOverride int) (Assessment, error) {
	in, err := s.repo.DayInput(ctx, orgID, groomerID, day)
	if err != nil {
		return Assessment{}, err
	}

	if completedOverride >= 0 {
		in.CompletedCount = completedOverride
	}

	out := Assess(in)

	s.log.Info("workload assessed",
		"groomer_id", groomerID.String(),
		"date", day.Format("2006-01-02"),
		"level", string(out.Level),
		"score", out.Score,
	)

	return out, nil
}
