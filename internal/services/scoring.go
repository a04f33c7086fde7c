package services

import (
	"sort"

	"assessment-backend/internal/models"
)

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Total sums the scores of the chosen options. optionScores maps option id to score.
func (s *ScoringService) Total(responses []models.Response, optionScores map[uint]int) int {
	total := 0
	for _, r := range responses {
		total += optionScores[r.OptionID]
	}
	return total
}

// MaxPossible is the best score a submission against the questions can reach.
func (s *ScoringService) MaxPossible(questions []models.Question) int {
	sum := 0
	for _, q := range questions {
		sum += q.MaxScore
	}
	return sum
}

// Percent returns total as a percentage of maxScore, rounded down to two decimals.
func (s *ScoringService) Percent(total, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	return float64(total*10000/maxScore) / 100
}

// Rank orders submissions by score, best first; ties go to the earlier submission.
func (s *ScoringService) Rank(submissions []models.Submission) []models.Submission {
	sort.SliceStable(submissions, func(a, b int) bool {
		if submissions[a].TotalScore != submissions[b].TotalScore {
			return submissions[a].TotalScore > submissions[b].TotalScore
		}
		return submissions[a].SubmittedAt.Before(submissions[b].SubmittedAt)
	})
	return submissions
}
