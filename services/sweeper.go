// services/sweeper.go
package services

import (
	"log"
	"time"

	"scorecard-api/models"

	"github.com/go-co-op/gocron/v2"
)

// SweepOrphanedHoleScores deletes hole scores whose parent scorecard no
// longer exists and reports how many rows were removed. The CRUD paths are
// transactional, so orphans only appear on stores without foreign-key
// enforcement or through rows written outside the service.
func (s *ScorecardService) SweepOrphanedHoleScores() (int64, error) {
	res := s.DB.
		Where("scorecard_id NOT IN (?)", s.DB.Model(&models.Scorecard{}).Select("id")).
		Delete(&models.HoleScore{})
	return res.RowsAffected, res.Error
}

// StartIntegritySweeper runs the orphan sweep on a fixed interval.
func (s *ScorecardService) StartIntegritySweeper(interval time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			removed, err := s.SweepOrphanedHoleScores()
			if err != nil {
				log.Printf("[Sweeper] DB error: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("[Sweeper] Removed %d orphaned hole scores", removed)
			}
		}),
	)
}
