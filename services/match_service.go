package services

import (
	"context"

	"github.com/Durjoy96/magiccraft-teammate-finder/ai"
	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"go.uber.org/zap"
)

// MatchService orchestrates smart matching: it gates on profile
// completeness, assembles the candidate pool, delegates ranking to the
// completion service and enriches the result with full profiles.
type MatchService struct {
	Profiles *UserProfileService
	Search   *SearchService
	Ranker   *ai.Ranker
	Logger   *zap.Logger
}

// SmartMatch returns exactly min(MatchTargetCount, pool size) ranked
// matches for the requester. The upstream call is synchronous and never
// retried; the caller may re-invoke.
func (ms *MatchService) SmartMatch(ctx context.Context, requesterID string) ([]models.MatchResult, error) {
	requester, err := ms.Profiles.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if !requester.HasRole() {
		return nil, ErrProfileIncomplete
	}

	pool, err := ms.Search.MatchPool(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	ranked, err := ms.Ranker.Rank(ctx, requester.Public(), pool)
	if err != nil {
		ms.Logger.Error("smart match ranking failed", zap.String("requesterId", requesterID), zap.Error(err))
		return nil, ErrMatchingFailed
	}

	byID := make(map[string]models.UserProfile, len(pool))
	for _, p := range pool {
		byID[p.UserID] = p
	}

	results := make([]models.MatchResult, 0, len(ranked))
	for _, match := range ranked {
		player, ok := byID[match.PlayerID]
		if !ok {
			continue
		}
		results = append(results, models.MatchResult{
			PlayerID: match.PlayerID,
			Score:    match.Score,
			Reason:   match.Reason,
			Player:   player,
		})
	}

	ms.Logger.Info("smart match completed",
		zap.String("requesterId", requesterID),
		zap.Int("matches", len(results)),
	)
	return results, nil
}
