package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Durjoy96/magiccraft-teammate-finder/ai"
	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type matchStubCompleter struct {
	response string
	err      error
}

func (s *matchStubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newMatchService(completer ai.Completer) (*MatchService, *fakeDynamo) {
	dynamo, fake := newTestDynamo()
	profiles := &UserProfileService{Dynamo: dynamo, Logger: zap.NewNop()}
	search := &SearchService{Dynamo: dynamo, Logger: zap.NewNop()}
	svc := &MatchService{
		Profiles: profiles,
		Search:   search,
		Ranker:   ai.NewRanker(completer, zap.NewNop()),
		Logger:   zap.NewNop(),
	}
	return svc, fake
}

func TestSmartMatch(t *testing.T) {
	svc, fake := newMatchService(&matchStubCompleter{response: `[
		{"playerId": "c1", "score": 92, "reason": "Strong frontline pairing"}
	]`})
	ctx := context.Background()

	seedCandidate(fake, "me", func(p *models.UserProfile) { p.Role = "Mage" })
	seedCandidate(fake, "c1", nil)
	seedCandidate(fake, "c2", nil)

	results, err := svc.SmartMatch(ctx, "me")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "c1", results[0].PlayerID)
	assert.Equal(t, 92, results[0].Score)
	assert.Equal(t, "player-c1", results[0].Player.Username)
	assert.Empty(t, results[0].Player.Email)

	// second slot backfilled from the pool
	assert.Equal(t, "c2", results[1].PlayerID)
	assert.Equal(t, models.MatchFallbackScore, results[1].Score)
}

func TestSmartMatchRequiresCompleteProfile(t *testing.T) {
	svc, fake := newMatchService(&matchStubCompleter{response: "[]"})
	ctx := context.Background()

	seedCandidate(fake, "me", func(p *models.UserProfile) { p.Role = "" })
	seedCandidate(fake, "c1", nil)

	_, err := svc.SmartMatch(ctx, "me")
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestSmartMatchNoCandidates(t *testing.T) {
	svc, fake := newMatchService(&matchStubCompleter{response: "[]"})
	ctx := context.Background()

	seedCandidate(fake, "me", nil)

	_, err := svc.SmartMatch(ctx, "me")
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSmartMatchUnknownRequester(t *testing.T) {
	svc, _ := newMatchService(&matchStubCompleter{response: "[]"})

	_, err := svc.SmartMatch(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSmartMatchRankerFailure(t *testing.T) {
	svc, fake := newMatchService(&matchStubCompleter{err: fmt.Errorf("model unavailable")})
	ctx := context.Background()

	seedCandidate(fake, "me", nil)
	seedCandidate(fake, "c1", nil)

	_, err := svc.SmartMatch(ctx, "me")
	assert.ErrorIs(t, err, ErrMatchingFailed)
}
