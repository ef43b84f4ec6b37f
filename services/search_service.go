package services

import (
	"context"
	"sort"
	"strings"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"go.uber.org/zap"
)

// SearchFilters are the optional teammate search criteria. Zero values
// mean "any".
type SearchFilters struct {
	Role            string `json:"role"`
	SkillLevel      string `json:"skillLevel"`
	Region          string `json:"region"`
	Language        string `json:"language"`
	ExperienceLevel string `json:"experienceLevel"`
	LookingFor      string `json:"lookingFor"`
	VoiceOnly       bool   `json:"voiceOnly"`
}

type SearchService struct {
	Dynamo *DynamoService
	Logger *zap.Logger
}

// Search returns up to SearchResultLimit candidate profiles matching the
// filters, boosted profiles first, newest first within each group.
// Private fields are stripped. No match is an empty list, not an error.
func (ss *SearchService) Search(ctx context.Context, requesterID string, filters SearchFilters) ([]models.UserProfile, error) {
	candidates, err := ss.scanCandidates(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	results := make([]models.UserProfile, 0, len(candidates))
	for _, p := range candidates {
		if !matchesFilters(p, filters) {
			continue
		}
		results = append(results, p.Public())
	}

	sortBoostedFirst(results)

	if len(results) > models.SearchResultLimit {
		results = results[:models.SearchResultLimit]
	}

	ss.Logger.Debug("search completed",
		zap.String("requesterId", requesterID),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// MatchPool returns the smart-match candidate pool: every searchable
// profile except the requester's, same ordering and cap as Search,
// private fields stripped.
func (ss *SearchService) MatchPool(ctx context.Context, requesterID string) ([]models.UserProfile, error) {
	candidates, err := ss.scanCandidates(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	pool := make([]models.UserProfile, 0, len(candidates))
	for _, p := range candidates {
		pool = append(pool, p.Public())
	}

	sortBoostedFirst(pool)

	if len(pool) > models.MatchPoolLimit {
		pool = pool[:models.MatchPoolLimit]
	}
	return pool, nil
}

// scanCandidates fetches every profile except the requester's that has a
// role set. Incomplete profiles are not searchable.
func (ss *SearchService) scanCandidates(ctx context.Context, requesterID string) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := ss.Dynamo.ScanWithFilter(
		ctx,
		models.UserProfilesTable,
		nil,
		map[string]string{"userId": requesterID},
		&profiles,
	)
	if err != nil {
		return nil, err
	}

	candidates := profiles[:0]
	for _, p := range profiles {
		if p.HasRole() {
			candidates = append(candidates, p)
		}
	}
	return candidates, nil
}

func matchesFilters(p models.UserProfile, f SearchFilters) bool {
	if f.Role != "" && p.Role != f.Role {
		return false
	}
	if f.SkillLevel != "" && p.SkillLevel != f.SkillLevel {
		return false
	}
	if f.Region != "" && p.Region != f.Region {
		return false
	}
	if f.Language != "" && !strings.Contains(strings.ToLower(p.Language), strings.ToLower(f.Language)) {
		return false
	}
	if f.ExperienceLevel != "" && p.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	if f.LookingFor != "" && p.LookingFor != f.LookingFor {
		return false
	}
	if f.VoiceOnly && !p.Voice {
		return false
	}
	return true
}

// sortBoostedFirst orders by boostedUntil descending, then createdAt
// descending. The fixed-width timestamp layout makes string comparison
// chronological; never-boosted profiles have an empty boostedUntil and
// sort after all boosted ones.
func sortBoostedFirst(profiles []models.UserProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].BoostedUntil != profiles[j].BoostedUntil {
			return profiles[i].BoostedUntil > profiles[j].BoostedUntil
		}
		return profiles[i].CreatedAt > profiles[j].CreatedAt
	})
}
