package models

// MatchResult is one ranked smart-match entry. Ephemeral; never stored.
type MatchResult struct {
	PlayerID string      `json:"playerId"`
	Score    int         `json:"score"`
	Reason   string      `json:"reason"`
	Player   UserProfile `json:"player"`
}
