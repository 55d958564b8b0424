package models

import (
	"time"
)

// Scorecard represents one played round of golf, owning its per-hole results.
type Scorecard struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	PlayerName string    `json:"playerName" gorm:"not null;index"`
	CourseID   string    `json:"courseId" gorm:"not null;index"`
	Date       time.Time `json:"date"`
	TotalScore int       `json:"totalScore"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relationship: one scorecard owns many hole scores
	Scores []HoleScore `json:"scores" gorm:"foreignKey:ScorecardID;constraint:OnDelete:CASCADE"`
}

// HoleScore is one hole's result within a scorecard. It has no lifecycle of
// its own outside its parent's create/update/delete operations.
type HoleScore struct {
	ID          string `json:"id" gorm:"primaryKey"`
	ScorecardID string `json:"scorecardId" gorm:"not null;index"`
	HoleNumber  int    `json:"holeNumber" gorm:"not null"`
	Score       int    `json:"score" gorm:"not null"`
	Putts       *int   `json:"putts"`
	FairwayHit  *bool  `json:"fairwayHit"`
}

// ScorecardFilter narrows scorecard listings; empty fields are unconstrained.
type ScorecardFilter struct {
	PlayerName string
	CourseID   string
}
