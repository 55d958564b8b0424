package services

import (
	"testing"
	"time"

	"scorecard-api/models"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Scorecard{}, &models.HoleScore{}, &models.Todo{}))
	return db
}

func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func strPtr(v string) *string { return &v }

type ScorecardServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ScorecardService
}

func TestScorecardServiceSuite(t *testing.T) {
	suite.Run(t, new(ScorecardServiceSuite))
}

func (s *ScorecardServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewScorecardService(s.db)
}

func (s *ScorecardServiceSuite) createScorecard(playerName, courseID string, total int, scores ...HoleScoreInput) *models.Scorecard {
	created, err := s.service.CreateScorecard(CreateScorecardInput{
		PlayerName: playerName,
		CourseID:   courseID,
		TotalScore: intPtr(total),
		Scores:     scores,
	})
	s.Require().NoError(err)
	return created
}

func (s *ScorecardServiceSuite) errorKind(err error) ErrorKind {
	s.Require().Error(err)
	var svcErr *ServiceError
	s.Require().ErrorAs(err, &svcErr)
	return svcErr.Kind
}

func (s *ScorecardServiceSuite) TestCreateAndGetByID() {
	created, err := s.service.CreateScorecard(CreateScorecardInput{
		PlayerName: "Ada",
		CourseID:   "c1",
		TotalScore: intPtr(85),
		Notes:      "windy conditions",
		Scores: []HoleScoreInput{
			{HoleNumber: 1, Score: 5, Putts: intPtr(2), FairwayHit: boolPtr(true)},
			{HoleNumber: 2, Score: 4},
		},
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	fetched, err := s.service.GetScorecardByID(created.ID)
	s.Require().NoError(err)
	s.Equal("Ada", fetched.PlayerName)
	s.Equal("c1", fetched.CourseID)
	s.Equal(85, fetched.TotalScore)
	s.Equal("windy conditions", fetched.Notes)
	s.Require().Len(fetched.Scores, 2)

	byHole := map[int]models.HoleScore{}
	for _, hs := range fetched.Scores {
		s.Equal(created.ID, hs.ScorecardID)
		s.NotEmpty(hs.ID)
		byHole[hs.HoleNumber] = hs
	}
	s.Equal(5, byHole[1].Score)
	s.Require().NotNil(byHole[1].Putts)
	s.Equal(2, *byHole[1].Putts)
	s.Require().NotNil(byHole[1].FairwayHit)
	s.True(*byHole[1].FairwayHit)
	s.Equal(4, byHole[2].Score)
	s.Nil(byHole[2].Putts)
	s.Nil(byHole[2].FairwayHit)
}

func (s *ScorecardServiceSuite) TestCreateDefaultsDateToNow() {
	created := s.createScorecard("Ada", "c1", 85)
	s.WithinDuration(time.Now(), created.Date, time.Minute)
}

func (s *ScorecardServiceSuite) TestCreateKeepsExplicitDate() {
	date := time.Date(2023, 8, 15, 14, 30, 0, 0, time.UTC)
	created, err := s.service.CreateScorecard(CreateScorecardInput{
		PlayerName: "Ada",
		CourseID:   "c1",
		TotalScore: intPtr(85),
		Date:       &date,
	})
	s.Require().NoError(err)
	s.WithinDuration(date, created.Date, time.Second)
}

func (s *ScorecardServiceSuite) TestCreateRejectsMissingRequiredFields() {
	_, err := s.service.CreateScorecard(CreateScorecardInput{CourseID: "c1", TotalScore: intPtr(85)})
	s.Equal(ErrorValidation, s.errorKind(err))

	_, err = s.service.CreateScorecard(CreateScorecardInput{PlayerName: "Ada", TotalScore: intPtr(85)})
	s.Equal(ErrorValidation, s.errorKind(err))

	_, err = s.service.CreateScorecard(CreateScorecardInput{PlayerName: "Ada", CourseID: "c1"})
	s.Equal(ErrorValidation, s.errorKind(err))
}

// An explicit zero is a legitimate total, distinct from a missing field.
func (s *ScorecardServiceSuite) TestCreateAllowsZeroTotalScore() {
	created := s.createScorecard("Ada", "c1", 0)
	s.Equal(0, created.TotalScore)

	fetched, err := s.service.GetScorecardByID(created.ID)
	s.Require().NoError(err)
	s.Equal(0, fetched.TotalScore)
}

func (s *ScorecardServiceSuite) TestUpdateReplacesScores() {
	created := s.createScorecard("Ada", "c1", 85, HoleScoreInput{HoleNumber: 1, Score: 5})

	updated, err := s.service.UpdateScorecard(created.ID, UpdateScorecardInput{
		Scores: []HoleScoreInput{
			{HoleNumber: 1, Score: 4},
			{HoleNumber: 2, Score: 3},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(updated.Scores, 2)

	byHole := map[int]int{}
	for _, hs := range updated.Scores {
		s.NotEqual(created.Scores[0].ID, hs.ID)
		byHole[hs.HoleNumber] = hs.Score
	}
	s.Equal(map[int]int{1: 4, 2: 3}, byHole)

	var count int64
	s.Require().NoError(s.db.Model(&models.HoleScore{}).Where("scorecard_id = ?", created.ID).Count(&count).Error)
	s.EqualValues(2, count)
}

func (s *ScorecardServiceSuite) TestUpdatePartialPreservesOtherFields() {
	created := s.createScorecard("Ada", "c1", 85, HoleScoreInput{HoleNumber: 1, Score: 5})

	updated, err := s.service.UpdateScorecard(created.ID, UpdateScorecardInput{
		TotalScore: intPtr(82),
	})
	s.Require().NoError(err)
	s.Equal(82, updated.TotalScore)
	s.Equal("Ada", updated.PlayerName)
	s.Equal("c1", updated.CourseID)
	s.Require().Len(updated.Scores, 1)
	s.Equal(created.Scores[0].ID, updated.Scores[0].ID)
}

func (s *ScorecardServiceSuite) TestUpdateWithEmptyScoresListClears() {
	created := s.createScorecard("Ada", "c1", 85, HoleScoreInput{HoleNumber: 1, Score: 5})

	updated, err := s.service.UpdateScorecard(created.ID, UpdateScorecardInput{
		Scores: []HoleScoreInput{},
	})
	s.Require().NoError(err)
	s.Empty(updated.Scores)
}

func (s *ScorecardServiceSuite) TestUpdateWithoutScoresLeavesThemUntouched() {
	created := s.createScorecard("Ada", "c1", 85, HoleScoreInput{HoleNumber: 1, Score: 5})

	updated, err := s.service.UpdateScorecard(created.ID, UpdateScorecardInput{
		Notes: strPtr("back nine only"),
	})
	s.Require().NoError(err)
	s.Require().Len(updated.Scores, 1)
	s.Equal(created.Scores[0].ID, updated.Scores[0].ID)
}

func (s *ScorecardServiceSuite) TestDeleteCascadesToHoleScores() {
	created := s.createScorecard("Ada", "c1", 85,
		HoleScoreInput{HoleNumber: 1, Score: 5},
		HoleScoreInput{HoleNumber: 2, Score: 4},
	)

	deleted, err := s.service.DeleteScorecard(created.ID)
	s.Require().NoError(err)
	s.Len(deleted.Scores, 2)

	var count int64
	s.Require().NoError(s.db.Model(&models.HoleScore{}).Where("scorecard_id = ?", created.ID).Count(&count).Error)
	s.Zero(count)

	_, err = s.service.GetScorecardByID(created.ID)
	s.Equal(ErrorNotFound, s.errorKind(err))
}

func (s *ScorecardServiceSuite) TestNotFoundContract() {
	_, err := s.service.GetScorecardByID("missing")
	s.Equal(ErrorNotFound, s.errorKind(err))

	_, err = s.service.UpdateScorecard("missing", UpdateScorecardInput{TotalScore: intPtr(1)})
	s.Equal(ErrorNotFound, s.errorKind(err))

	_, err = s.service.DeleteScorecard("missing")
	s.Equal(ErrorNotFound, s.errorKind(err))
}

func (s *ScorecardServiceSuite) TestFilterCorrectness() {
	s.createScorecard("Ada", "c1", 85)
	s.createScorecard("Ada", "c2", 90)
	s.createScorecard("Bob", "c1", 95)

	all, err := s.service.GetAllScorecards(models.ScorecardFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	byPlayer, err := s.service.GetAllScorecards(models.ScorecardFilter{PlayerName: "Ada"})
	s.Require().NoError(err)
	s.Len(byPlayer, 2)
	for _, sc := range byPlayer {
		s.Equal("Ada", sc.PlayerName)
	}

	byCourse, err := s.service.GetAllScorecards(models.ScorecardFilter{CourseID: "c1"})
	s.Require().NoError(err)
	s.Len(byCourse, 2)

	both, err := s.service.GetAllScorecards(models.ScorecardFilter{PlayerName: "Ada", CourseID: "c1"})
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.Equal("Ada", both[0].PlayerName)
	s.Equal("c1", both[0].CourseID)

	none, err := s.service.GetAllScorecards(models.ScorecardFilter{PlayerName: "Zoe"})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ScorecardServiceSuite) TestFilterScopeBuildsOnlyPresentConstraints() {
	var out []models.Scorecard

	tx := s.db.Session(&gorm.Session{DryRun: true}).
		Scopes(ScorecardFilterScope(models.ScorecardFilter{PlayerName: "Ada"})).
		Find(&out)
	s.Contains(tx.Statement.SQL.String(), "player_name")
	s.NotContains(tx.Statement.SQL.String(), "course_id")
	s.Contains(tx.Statement.Vars, "Ada")

	tx = s.db.Session(&gorm.Session{DryRun: true}).
		Scopes(ScorecardFilterScope(models.ScorecardFilter{})).
		Find(&out)
	s.NotContains(tx.Statement.SQL.String(), "WHERE")
}

func (s *ScorecardServiceSuite) TestSweepRemovesOnlyOrphans() {
	created := s.createScorecard("Ada", "c1", 85, HoleScoreInput{HoleNumber: 1, Score: 5})

	orphan := models.HoleScore{ID: "orphan-1", ScorecardID: "ghost", HoleNumber: 1, Score: 4}
	s.Require().NoError(s.db.Create(&orphan).Error)

	removed, err := s.service.SweepOrphanedHoleScores()
	s.Require().NoError(err)
	s.EqualValues(1, removed)

	fetched, err := s.service.GetScorecardByID(created.ID)
	s.Require().NoError(err)
	s.Len(fetched.Scores, 1)
}

// Mirrors the documented end-to-end scenario: create, replace the hole
// scores, delete, then observe not-found.
func (s *ScorecardServiceSuite) TestLifecycleScenario() {
	created := s.createScorecard("Ada", "c1", 85, HoleScoreInput{HoleNumber: 1, Score: 5})
	s.Require().Len(created.Scores, 1)
	s.Equal(1, created.Scores[0].HoleNumber)
	s.Equal(5, created.Scores[0].Score)

	updated, err := s.service.UpdateScorecard(created.ID, UpdateScorecardInput{
		Scores: []HoleScoreInput{
			{HoleNumber: 1, Score: 4},
			{HoleNumber: 2, Score: 3},
		},
	})
	s.Require().NoError(err)
	s.Len(updated.Scores, 2)
	for _, hs := range updated.Scores {
		s.False(hs.HoleNumber == 1 && hs.Score == 5, "original hole score survived the replace")
	}

	_, err = s.service.DeleteScorecard(created.ID)
	s.Require().NoError(err)

	_, err = s.service.GetScorecardByID(created.ID)
	s.Equal(ErrorNotFound, s.errorKind(err))
}
