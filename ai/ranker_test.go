package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testPool(n int) []models.UserProfile {
	pool := make([]models.UserProfile, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, models.UserProfile{
			UserID:     fmt.Sprintf("p%d", i+1),
			Username:   fmt.Sprintf("Player%d", i+1),
			Role:       "Tank",
			SkillLevel: "Gold",
		})
	}
	return pool
}

func testRequester() models.UserProfile {
	return models.UserProfile{UserID: "me", Role: "Mage", SkillLevel: "Platinum"}
}

func TestRankHappyPath(t *testing.T) {
	stub := &stubCompleter{response: `[
		{"playerId": "p2", "score": 95, "reason": "Great synergy"},
		{"playerId": "p1", "score": 88, "reason": "Complementary roles"},
		{"playerId": "p3", "score": 80, "reason": "Same region"},
		{"playerId": "p4", "score": 75, "reason": "Similar hours"},
		{"playerId": "p5", "score": 70, "reason": "Voice chat"}
	]`}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(10))
	require.NoError(t, err)
	require.Len(t, matches, models.MatchTargetCount)
	assert.Equal(t, "p2", matches[0].PlayerID)
	assert.Equal(t, 95, matches[0].Score)
	assert.Equal(t, "Great synergy", matches[0].Reason)
}

func TestRankStripsCodeFences(t *testing.T) {
	stub := &stubCompleter{response: "```json\n[{\"playerId\": \"p1\", \"score\": 90, \"reason\": \"ok\"}]\n```"}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(1))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "p1", matches[0].PlayerID)
}

func TestRankDedupesKeepingFirst(t *testing.T) {
	stub := &stubCompleter{response: `[
		{"playerId": "p1", "score": 90, "reason": "first"},
		{"playerId": "p1", "score": 40, "reason": "second"},
		{"playerId": "p2", "score": 85, "reason": "other"}
	]`}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(2))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "p1", matches[0].PlayerID)
	assert.Equal(t, 90, matches[0].Score)
	assert.Equal(t, "first", matches[0].Reason)
	assert.Equal(t, "p2", matches[1].PlayerID)
}

func TestRankDiscardsHallucinatedIDs(t *testing.T) {
	stub := &stubCompleter{response: `[
		{"playerId": "ghost-1", "score": 99, "reason": "made up"},
		{"playerId": "p1", "score": 80, "reason": "real"}
	]`}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(2))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "p1", matches[0].PlayerID)
	// shortfall backfilled from the pool
	assert.Equal(t, "p2", matches[1].PlayerID)
	assert.Equal(t, models.MatchFallbackScore, matches[1].Score)
	assert.Contains(t, matches[1].Reason, "Tank role")
}

func TestRankBackfillsToTarget(t *testing.T) {
	stub := &stubCompleter{response: `[]`}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(10))
	require.NoError(t, err)
	require.Len(t, matches, models.MatchTargetCount)
	for i, match := range matches {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), match.PlayerID)
		assert.Equal(t, models.MatchFallbackScore, match.Score)
	}
}

func TestRankTargetCappedBySmallPool(t *testing.T) {
	stub := &stubCompleter{response: `[]`}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(3))
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestRankAnalyzesAtMostTwenty(t *testing.T) {
	stub := &stubCompleter{response: fmt.Sprintf(`[{"playerId": "p%d", "score": 90, "reason": "late pool"}]`, models.MatchAnalyzeLimit+1)}
	ranker := NewRanker(stub, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), testRequester(), testPool(models.MatchAnalyzeLimit+10))
	require.NoError(t, err)
	require.Len(t, matches, models.MatchTargetCount)
	// p21 is outside the analyzed slice, so it counts as hallucinated
	for _, match := range matches {
		assert.NotEqual(t, fmt.Sprintf("p%d", models.MatchAnalyzeLimit+1), match.PlayerID)
		assert.Equal(t, models.MatchFallbackScore, match.Score)
	}
}

func TestRankParseFailure(t *testing.T) {
	stub := &stubCompleter{response: "I cannot rank these players."}
	ranker := NewRanker(stub, zap.NewNop())

	_, err := ranker.Rank(context.Background(), testRequester(), testPool(3))
	assert.Error(t, err)
}

func TestRankEmptyPool(t *testing.T) {
	ranker := NewRanker(&stubCompleter{response: "[]"}, zap.NewNop())

	_, err := ranker.Rank(context.Background(), testRequester(), nil)
	assert.Error(t, err)
}

func TestRankCompleterError(t *testing.T) {
	stub := &stubCompleter{err: fmt.Errorf("upstream timeout")}
	ranker := NewRanker(stub, zap.NewNop())

	_, err := ranker.Rank(context.Background(), testRequester(), testPool(3))
	assert.ErrorContains(t, err, "upstream timeout")
}

func TestCoerceScore(t *testing.T) {
	assert.Equal(t, 88, coerceScore("87.6"))
	assert.Equal(t, 0, coerceScore("-5"))
	assert.Equal(t, 100, coerceScore("250"))
	assert.Equal(t, 0, coerceScore("not-a-number"))
}

func TestPromptIncludesPoolAndTarget(t *testing.T) {
	stub := &stubCompleter{response: `[]`}
	ranker := NewRanker(stub, zap.NewNop())

	_, err := ranker.Rank(context.Background(), testRequester(), testPool(4))
	require.NoError(t, err)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Player 1 (ID: p1)")
	assert.Contains(t, stub.prompts[0], "Player 4 (ID: p4)")
	assert.NotContains(t, stub.prompts[0], "{{")
}
