package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	_ "embed"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"go.uber.org/zap"
)

//go:embed assistant_prompt.md
var assistantTemplate string

// AssistantContext is the optional situational context attached to an
// assistant command: who is asking and, in a team chat, who else is on
// the roster.
type AssistantContext struct {
	UserProfile *models.UserProfile
	TeamMembers []models.ProfileSummary
}

// Assistant answers in-chat gameplay questions.
type Assistant struct {
	completer Completer
	logger    *zap.Logger
}

func NewAssistant(completer Completer, log *zap.Logger) *Assistant {
	return &Assistant{completer: completer, logger: log}
}

var (
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)
	headerPattern = regexp.MustCompile(`(?m)^#+\s`)
	listPattern   = regexp.MustCompile(`(?m)^[-*]\s`)
)

// Respond sends the command with situational context to the completion
// service and returns the answer with any stray markdown stripped.
func (a *Assistant) Respond(ctx context.Context, command string, actx AssistantContext) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("command is required")
	}

	prompt := assistantTemplate
	prompt = strings.ReplaceAll(prompt, "{{CONTEXT}}", contextText(actx))
	prompt = strings.ReplaceAll(prompt, "{{COMMAND}}", command)

	response, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	return cleanMarkdown(response), nil
}

func contextText(actx AssistantContext) string {
	var builder strings.Builder

	if len(actx.TeamMembers) > 0 {
		builder.WriteString("\n\nTEAM COMPOSITION:\n")
		for _, member := range actx.TeamMembers {
			fmt.Fprintf(&builder, "- %s: %s (%s)\n", member.Username, member.Role, member.SkillLevel)
		}
	}

	if actx.UserProfile != nil {
		p := actx.UserProfile
		builder.WriteString("\n\nUSER PROFILE:\n")
		fmt.Fprintf(&builder, "Role: %s\n", p.Role)
		fmt.Fprintf(&builder, "Skill: %s\n", p.SkillLevel)
		fmt.Fprintf(&builder, "Playstyle: %s\n", p.Playstyle)
	}

	return builder.String()
}

// cleanMarkdown removes formatting the model uses despite instructions.
func cleanMarkdown(s string) string {
	s = boldPattern.ReplaceAllString(s, "$1")
	s = italicPattern.ReplaceAllString(s, "$1")
	s = headerPattern.ReplaceAllString(s, "")
	s = listPattern.ReplaceAllString(s, "• ")
	return strings.TrimSpace(s)
}
