package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Broadcaster pushes new messages to connected clients. Satisfied by
// *socketio.Server; nil disables push (clients still poll).
type Broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// ChatService is the append-only message relay for team chats.
type ChatService struct {
	Dynamo    *DynamoService
	Profiles  *UserProfileService
	Broadcast Broadcaster
	Logger    *zap.Logger
}

// SendMessage appends a normal chat message. The sender must be a
// member of the team and the trimmed content must be non-empty.
func (cs *ChatService) SendMessage(ctx context.Context, teamID, senderID, content string) (*models.Message, error) {
	return cs.send(ctx, teamID, senderID, content, false, false)
}

// SendAICommand echoes the user's assistant command into the team log.
func (cs *ChatService) SendAICommand(ctx context.Context, teamID, senderID, content string) (*models.Message, error) {
	return cs.send(ctx, teamID, senderID, content, true, false)
}

// SendAIResponse appends an assistant reply under the AI sentinel
// sender, which bypasses the membership check.
func (cs *ChatService) SendAIResponse(ctx context.Context, teamID, content string) (*models.Message, error) {
	return cs.send(ctx, teamID, models.AISenderID, content, false, true)
}

func (cs *ChatService) send(ctx context.Context, teamID, senderID, content string, isCommand, isAI bool) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	team, err := cs.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if senderID != models.AISenderID && !containsMember(team.Members, senderID) {
		return nil, ErrNotTeamMember
	}

	message := models.Message{
		TeamID:      teamID,
		CreatedAt:   now(),
		MessageID:   uuid.New().String(),
		SenderID:    senderID,
		Content:     content,
		IsAICommand: isCommand,
		IsAI:        isAI,
	}
	message.SortKey = models.MessageSortKey(message.CreatedAt, message.MessageID)

	if err := cs.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, err
	}

	if cs.Broadcast != nil {
		cs.Broadcast.BroadcastToRoom("/", teamID, "newMessage", message)
	}

	cs.Logger.Debug("message stored",
		zap.String("teamId", teamID),
		zap.String("messageId", message.MessageID),
		zap.String("kind", message.Kind()),
	)
	return &message, nil
}

// ChatMessage is a message annotated for clients: resolved sender name
// and a kind label.
type ChatMessage struct {
	models.Message
	Kind string `json:"kind"`
}

// GetMessages returns the team's full log in ascending creation order.
// Only members may read.
func (cs *ChatService) GetMessages(ctx context.Context, teamID, requesterID string) ([]ChatMessage, error) {
	team, err := cs.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !containsMember(team.Members, requesterID) {
		return nil, ErrNotTeamMember
	}

	keyCondition := "teamId = :teamId"
	expressionValues := map[string]types.AttributeValue{
		":teamId": &types.AttributeValueMemberS{Value: teamID},
	}

	items, err := cs.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 0, true)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}

	var senderIDs []string
	for _, msg := range messages {
		if msg.SenderID != models.AISenderID {
			senderIDs = append(senderIDs, msg.SenderID)
		}
	}
	profiles, err := cs.Profiles.GetProfilesByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	annotated := make([]ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.SenderID == models.AISenderID {
			msg.SenderName = models.AISenderName
		} else if profile, ok := profiles[msg.SenderID]; ok {
			msg.SenderName = profile.Username
		}
		annotated = append(annotated, ChatMessage{Message: msg, Kind: msg.Kind()})
	}
	return annotated, nil
}

// TeamMembers resolves the roster of a team the requester belongs to.
// Used to build assistant context.
func (cs *ChatService) TeamMembers(ctx context.Context, teamID string) ([]models.ProfileSummary, error) {
	team, err := cs.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	profiles, err := cs.Profiles.GetProfilesByIDs(ctx, team.Members)
	if err != nil {
		return nil, err
	}
	return memberSummaries(team.Members, profiles, false), nil
}

func (cs *ChatService) getTeam(ctx context.Context, teamID string) (*models.Team, error) {
	key := map[string]types.AttributeValue{
		"teamId": &types.AttributeValueMemberS{Value: teamID},
	}
	item, err := cs.Dynamo.GetItem(ctx, models.TeamsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrTeamNotFound
	}

	var team models.Team
	if err := attributevalue.UnmarshalMap(item, &team); err != nil {
		return nil, fmt.Errorf("unmarshal team: %w", err)
	}
	return &team, nil
}
