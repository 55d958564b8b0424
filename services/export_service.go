package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"scorecard-api/utils"

	"github.com/gosimple/slug"
)

// ExportScorecard renders the scorecard and its hole scores as CSV and
// uploads it to the R2 bucket, returning the public URL.
func (s *ScorecardService) ExportScorecard(id string) (string, error) {
	scorecard, err := s.GetScorecardByID(id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"playerName", scorecard.PlayerName})
	_ = w.Write([]string{"courseId", scorecard.CourseID})
	_ = w.Write([]string{"date", scorecard.Date.Format(time.RFC3339)})
	_ = w.Write([]string{"totalScore", strconv.Itoa(scorecard.TotalScore)})
	if scorecard.Notes != "" {
		_ = w.Write([]string{"notes", scorecard.Notes})
	}
	_ = w.Write([]string{"holeNumber", "score", "putts", "fairwayHit"})
	for _, hs := range scorecard.Scores {
		putts := ""
		if hs.Putts != nil {
			putts = strconv.Itoa(*hs.Putts)
		}
		fairwayHit := ""
		if hs.FairwayHit != nil {
			fairwayHit = strconv.FormatBool(*hs.FairwayHit)
		}
		_ = w.Write([]string{strconv.Itoa(hs.HoleNumber), strconv.Itoa(hs.Score), putts, fairwayHit})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", internalError("failed to render scorecard CSV", err)
	}

	key := fmt.Sprintf("exports/%s-%s.csv", slug.Make(scorecard.PlayerName), scorecard.ID)
	url, err := utils.UploadBytesToR2(buf.Bytes(), key, "text/csv")
	if err != nil {
		return "", internalError("failed to upload scorecard export", err)
	}
	return url, nil
}
