package services

import "strings"

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// ScoreResponse assigns the server-side score for a submitted response: a
// base participation award, a small bonus for structured payloads, and a
// length bonus capped so long rambles don't dominate the leaderboard.
func (s *ScoringService) ScoreResponse(text string, hasData bool) int {
	score := 10
	if hasData {
		score += 5
	}
	bonus := len(strings.TrimSpace(text)) / 20
	if bonus > 40 {
		bonus = 40
	}
	return score + bonus
}
