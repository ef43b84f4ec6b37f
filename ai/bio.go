package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"
)

//go:embed bio_prompt.md
var bioTemplate string

// BioInput carries the profile fields the bio generator works from.
type BioInput struct {
	Role            string `json:"role"`
	SkillLevel      string `json:"skillLevel"`
	Playstyle       string `json:"playstyle"`
	ExperienceLevel string `json:"experienceLevel"`
	Region          string `json:"region"`
	LookingFor      string `json:"lookingFor"`
}

// BioStyles holds the three generated bio variants.
type BioStyles struct {
	Professional string `json:"professional"`
	Casual       string `json:"casual"`
	Competitive  string `json:"competitive"`
}

// BioComposer generates profile bios in three registers.
type BioComposer struct {
	completer Completer
	logger    *zap.Logger
}

func NewBioComposer(completer Completer, log *zap.Logger) *BioComposer {
	return &BioComposer{completer: completer, logger: log}
}

// Generate asks the completion service for three bio variants. Role,
// skill level and playstyle must be set; validation happens at the
// boundary before this is called.
func (b *BioComposer) Generate(ctx context.Context, input BioInput) (*BioStyles, error) {
	prompt := bioTemplate
	prompt = strings.ReplaceAll(prompt, "{{ROLE}}", input.Role)
	prompt = strings.ReplaceAll(prompt, "{{SKILL_LEVEL}}", input.SkillLevel)
	prompt = strings.ReplaceAll(prompt, "{{PLAYSTYLE}}", input.Playstyle)
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCE}}", orDefault(input.ExperienceLevel, "Not specified"))
	prompt = strings.ReplaceAll(prompt, "{{REGION}}", orDefault(input.Region, "Not specified"))
	prompt = strings.ReplaceAll(prompt, "{{LOOKING_FOR}}", orDefault(input.LookingFor, "teammates"))

	raw, err := b.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var bios BioStyles
	if err := json.Unmarshal([]byte(extractJSON(raw)), &bios); err != nil {
		b.logger.Warn("unparseable bio response", zap.Error(err))
		return nil, fmt.Errorf("parse bio response: %w", err)
	}

	return &bios, nil
}
