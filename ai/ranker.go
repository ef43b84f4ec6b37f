package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/Durjoy96/magiccraft-teammate-finder/logger"
	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"go.uber.org/zap"
)

//go:embed smart_match_prompt.md
var smartMatchTemplate string

const defaultMaxLogLength = 200

// RankedMatch is one entry of the ranker's output, before profile
// enrichment.
type RankedMatch struct {
	PlayerID string
	Score    int
	Reason   string
}

// Ranker asks the completion service to pick compatible teammates out of
// a candidate pool and defends against malformed output: duplicates and
// hallucinated ids are discarded, shortfalls are backfilled from the
// pool so the caller always gets a full result set.
type Ranker struct {
	completer Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewRanker(completer Completer, log *zap.Logger) *Ranker {
	return &Ranker{
		completer: completer,
		logger:    log,
		maxLogLen: defaultMaxLogLength,
	}
}

// Rank presents up to models.MatchAnalyzeLimit candidates to the
// completion service and returns exactly min(MatchTargetCount, analyzed)
// unique matches. The pool must be non-empty.
func (r *Ranker) Rank(ctx context.Context, requester models.UserProfile, pool []models.UserProfile) ([]RankedMatch, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("candidate pool is empty")
	}

	analyzed := pool
	if len(analyzed) > models.MatchAnalyzeLimit {
		analyzed = analyzed[:models.MatchAnalyzeLimit]
	}

	maxMatches := models.MatchTargetCount
	if len(analyzed) < maxMatches {
		maxMatches = len(analyzed)
	}

	prompt := buildSmartMatchPrompt(requester, analyzed, maxMatches)

	r.logger.Debug("smart match request",
		zap.String("userId", requester.UserID),
		zap.Int("pool_size", len(analyzed)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("smart match response",
		zap.String("userId", requester.UserID),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	matches, err := parseRankedMatches(raw)
	if err != nil {
		return nil, err
	}

	// Keep first occurrence per player, drop ids outside the analyzed pool
	poolIDs := make(map[string]bool, len(analyzed))
	for _, p := range analyzed {
		poolIDs[p.UserID] = true
	}

	unique := make([]RankedMatch, 0, maxMatches)
	seen := make(map[string]bool)
	for _, match := range matches {
		if match.PlayerID == "" || seen[match.PlayerID] || !poolIDs[match.PlayerID] {
			continue
		}
		unique = append(unique, match)
		seen[match.PlayerID] = true
		if len(unique) == maxMatches {
			break
		}
	}

	// Backfill from the pool, in original order, when the model under-delivers
	if len(unique) < maxMatches {
		r.logger.Warn("backfilling smart matches",
			zap.String("userId", requester.UserID),
			zap.Int("usable", len(unique)),
			zap.Int("target", maxMatches),
		)
		for _, player := range analyzed {
			if len(unique) == maxMatches {
				break
			}
			if seen[player.UserID] {
				continue
			}
			unique = append(unique, RankedMatch{
				PlayerID: player.UserID,
				Score:    models.MatchFallbackScore,
				Reason: fmt.Sprintf(
					"Compatible teammate with %s role and %s skill level. Good potential for team synergy.",
					player.Role, player.SkillLevel,
				),
			})
			seen[player.UserID] = true
		}
	}

	return unique, nil
}

type rankedMatchWire struct {
	PlayerID string      `json:"playerId"`
	Score    json.Number `json:"score"`
	Reason   string      `json:"reason"`
}

func parseRankedMatches(raw string) ([]RankedMatch, error) {
	cleaned := extractJSON(raw)

	var wire []rankedMatchWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("parse match response: %w", err)
	}

	matches := make([]RankedMatch, 0, len(wire))
	for _, w := range wire {
		matches = append(matches, RankedMatch{
			PlayerID: strings.TrimSpace(w.PlayerID),
			Score:    coerceScore(w.Score),
			Reason:   strings.TrimSpace(w.Reason),
		})
	}
	return matches, nil
}

func coerceScore(n json.Number) int {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0
	}
	score := int(f + 0.5)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func buildSmartMatchPrompt(requester models.UserProfile, pool []models.UserProfile, maxMatches int) string {
	prompt := smartMatchTemplate
	prompt = strings.ReplaceAll(prompt, "{{USER_SUMMARY}}", profileSummaryText(requester))
	prompt = strings.ReplaceAll(prompt, "{{PLAYER_COUNT}}", strconv.Itoa(len(pool)))
	prompt = strings.ReplaceAll(prompt, "{{PLAYERS_LIST}}", playersListText(pool))
	prompt = strings.ReplaceAll(prompt, "{{MAX_MATCHES}}", strconv.Itoa(maxMatches))
	return prompt
}

func profileSummaryText(p models.UserProfile) string {
	return strings.TrimSpace(fmt.Sprintf(`Role: %s
Skill Level: %s
Playstyle: %s
Experience: %s
Looking For: %s
Region: %s
Language: %s
Bio: %s`,
		p.Role,
		p.SkillLevel,
		p.Playstyle,
		orDefault(p.ExperienceLevel, "Not specified"),
		orDefault(p.LookingFor, "teammates"),
		p.Region,
		p.Language,
		orDefault(p.Bio, "No bio"),
	))
}

func playersListText(pool []models.UserProfile) string {
	entries := make([]string, 0, len(pool))
	for idx, p := range pool {
		voice := "No"
		if p.Voice {
			voice = "Yes"
		}
		entries = append(entries, strings.TrimSpace(fmt.Sprintf(`Player %d (ID: %s):
- Username: %s
- Role: %s
- Skill: %s
- Playstyle: %s
- Experience: %s
- Looking For: %s
- Region: %s
- Language: %s
- Bio: %s
- Voice: %s`,
			idx+1, p.UserID,
			p.Username,
			p.Role,
			p.SkillLevel,
			p.Playstyle,
			orDefault(p.ExperienceLevel, "Not specified"),
			orDefault(p.LookingFor, "teammates"),
			p.Region,
			p.Language,
			orDefault(p.Bio, "No bio"),
			voice,
		)))
	}
	return strings.Join(entries, "\n\n")
}
