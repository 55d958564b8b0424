package services

import (
	"errors"
	"time"

	"scorecard-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScorecardService struct {
	DB *gorm.DB
}

func NewScorecardService(db *gorm.DB) *ScorecardService {
	return &ScorecardService{DB: db}
}

// HoleScoreInput is one hole result supplied inline on create or update.
type HoleScoreInput struct {
	HoleNumber int   `json:"holeNumber" validate:"required,min=1"`
	Score      int   `json:"score" validate:"required,min=1"`
	Putts      *int  `json:"putts" validate:"omitempty,min=0"`
	FairwayHit *bool `json:"fairwayHit"`
}

// CreateScorecardInput carries a new round. Date defaults to now when omitted.
// TotalScore is a pointer so an explicit 0 is distinguishable from a missing
// field; only the latter is rejected.
type CreateScorecardInput struct {
	PlayerName string           `json:"playerName" validate:"required"`
	CourseID   string           `json:"courseId" validate:"required"`
	Date       *time.Time       `json:"date"`
	TotalScore *int             `json:"totalScore" validate:"required"`
	Notes      string           `json:"notes"`
	Scores     []HoleScoreInput `json:"scores" validate:"omitempty,dive"`
}

// UpdateScorecardInput is a partial overwrite; nil fields are left unchanged.
// A non-nil Scores list fully replaces the existing hole scores, even when
// it is empty.
type UpdateScorecardInput struct {
	PlayerName *string          `json:"playerName" validate:"omitempty,min=1"`
	CourseID   *string          `json:"courseId" validate:"omitempty,min=1"`
	Date       *time.Time       `json:"date"`
	TotalScore *int             `json:"totalScore"`
	Notes      *string          `json:"notes"`
	Scores     []HoleScoreInput `json:"scores" validate:"omitempty,dive"`
}

// ScorecardFilterScope translates an optional filter into equality
// constraints. Absent fields add no constraint, so an empty filter matches
// every scorecard.
func ScorecardFilterScope(filter models.ScorecardFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PlayerName != "" {
			db = db.Where("player_name = ?", filter.PlayerName)
		}
		if filter.CourseID != "" {
			db = db.Where("course_id = ?", filter.CourseID)
		}
		return db
	}
}

// GetAllScorecards returns every scorecard matching the filter, each with its
// hole scores attached.
func (s *ScorecardService) GetAllScorecards(filter models.ScorecardFilter) ([]models.Scorecard, error) {
	scorecards := []models.Scorecard{}
	err := s.DB.Scopes(ScorecardFilterScope(filter)).Preload("Scores").Find(&scorecards).Error
	if err != nil {
		return nil, internalError("failed to fetch scorecards", err)
	}
	return scorecards, nil
}

// GetScorecardByID returns a single scorecard with its hole scores.
func (s *ScorecardService) GetScorecardByID(id string) (*models.Scorecard, error) {
	var scorecard models.Scorecard
	if err := s.DB.Preload("Scores").First(&scorecard, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Scorecard not found")
		}
		return nil, internalError("failed to fetch scorecard", err)
	}
	return &scorecard, nil
}

// CreateScorecard persists the scorecard and its inline hole scores as one
// transactional unit, then re-reads the aggregate for the response. The
// handler validates the payload first, but required fields are re-checked
// here so the service stays safe to call directly.
func (s *ScorecardService) CreateScorecard(input CreateScorecardInput) (*models.Scorecard, error) {
	if input.PlayerName == "" || input.CourseID == "" {
		return nil, validationError("playerName and courseId are required")
	}
	if input.TotalScore == nil {
		return nil, validationError("totalScore is a required field")
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	scorecard := &models.Scorecard{
		ID:         uuid.NewString(),
		PlayerName: input.PlayerName,
		CourseID:   input.CourseID,
		Date:       date,
		TotalScore: *input.TotalScore,
		Notes:      input.Notes,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Scores").Create(scorecard).Error; err != nil {
			return err
		}
		if len(input.Scores) > 0 {
			scores := buildHoleScores(scorecard.ID, input.Scores)
			if err := tx.Create(&scores).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("A scorecard with this ID already exists")
		}
		return nil, internalError("failed to create scorecard", err)
	}

	return s.GetScorecardByID(scorecard.ID)
}

// UpdateScorecard applies a partial overwrite. When a scores list is present
// the prior set is replaced wholesale: existing rows are deleted before the
// new ones are inserted, so a holeNumber uniqueness constraint can never see
// both generations at once.
func (s *ScorecardService) UpdateScorecard(id string, input UpdateScorecardInput) (*models.Scorecard, error) {
	var existing models.Scorecard
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Scorecard not found")
		}
		return nil, internalError("failed to fetch scorecard", err)
	}

	updates := map[string]interface{}{}
	if input.PlayerName != nil {
		updates["player_name"] = *input.PlayerName
	}
	if input.CourseID != nil {
		updates["course_id"] = *input.CourseID
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.TotalScore != nil {
		updates["total_score"] = *input.TotalScore
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.Scores != nil {
			if err := tx.Where("scorecard_id = ?", id).Delete(&models.HoleScore{}).Error; err != nil {
				return err
			}
			if len(input.Scores) > 0 {
				scores := buildHoleScores(id, input.Scores)
				if err := tx.Create(&scores).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, internalError("failed to update scorecard", err)
	}

	return s.GetScorecardByID(id)
}

// DeleteScorecard removes the scorecard and all of its hole scores, returning
// the last-known state. The FK cascade covers stores that enforce it; the
// explicit child delete keeps the invariant on those that don't.
func (s *ScorecardService) DeleteScorecard(id string) (*models.Scorecard, error) {
	scorecard, err := s.GetScorecardByID(id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scorecard_id = ?", id).Delete(&models.HoleScore{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Scorecard{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, internalError("failed to delete scorecard", err)
	}
	return scorecard, nil
}

func buildHoleScores(scorecardID string, inputs []HoleScoreInput) []models.HoleScore {
	scores := make([]models.HoleScore, 0, len(inputs))
	for _, in := range inputs {
		scores = append(scores, models.HoleScore{
			ID:          uuid.NewString(),
			ScorecardID: scorecardID,
			HoleNumber:  in.HoleNumber,
			Score:       in.Score,
			Putts:       in.Putts,
			FairwayHit:  in.FairwayHit,
		})
	}
	return scores
}
