package services

import (
	"context"
	"testing"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingBroadcaster struct {
	rooms  []string
	events []string
}

func (b *recordingBroadcaster) BroadcastToRoom(namespace, room, event string, args ...interface{}) bool {
	b.rooms = append(b.rooms, room)
	b.events = append(b.events, event)
	return true
}

func newChatService() (*ChatService, *fakeDynamo, *recordingBroadcaster) {
	dynamo, fake := newTestDynamo()
	profiles := &UserProfileService{Dynamo: dynamo, Logger: zap.NewNop()}
	broadcaster := &recordingBroadcaster{}
	svc := &ChatService{Dynamo: dynamo, Profiles: profiles, Broadcast: broadcaster, Logger: zap.NewNop()}
	return svc, fake, broadcaster
}

func seedTeamChat(fake *fakeDynamo) {
	seedPlayer(fake, "alice", "Alice")
	seedPlayer(fake, "bob", "Bob")
	seedPlayer(fake, "eve", "Eve")
	fake.seed(models.TeamsTable, models.Team{
		TeamID:  "team-1",
		Members: []string{"alice", "bob"},
	})
}

func TestSendMessage(t *testing.T) {
	svc, fake, broadcaster := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	message, err := svc.SendMessage(ctx, "team-1", "alice", "  anyone up for ranked?  ")
	require.NoError(t, err)
	assert.Equal(t, "anyone up for ranked?", message.Content)
	assert.NotEmpty(t, message.MessageID)
	assert.Equal(t, "normal", message.Kind())

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, "newMessage", broadcaster.events[0])
	assert.Equal(t, "team-1", broadcaster.rooms[0])
}

func TestSendMessageRejections(t *testing.T) {
	svc, fake, _ := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	_, err := svc.SendMessage(ctx, "team-1", "alice", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(ctx, "no-team", "alice", "hello")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = svc.SendMessage(ctx, "team-1", "eve", "let me in")
	assert.ErrorIs(t, err, ErrNotTeamMember)
}

func TestAISenderBypassesMembership(t *testing.T) {
	svc, fake, _ := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	message, err := svc.SendAIResponse(ctx, "team-1", "Here are some tips.")
	require.NoError(t, err)
	assert.Equal(t, models.AISenderID, message.SenderID)
	assert.Equal(t, "ai-response", message.Kind())
}

func TestGetMessagesOrderAndNames(t *testing.T) {
	svc, fake, _ := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	_, err := svc.SendMessage(ctx, "team-1", "alice", "first")
	require.NoError(t, err)
	_, err = svc.SendAICommand(ctx, "team-1", "bob", "/ai which hero counters a mage?")
	require.NoError(t, err)
	_, err = svc.SendAIResponse(ctx, "team-1", "Try an assassin with gap close.")
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx, "team-1", "bob")
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "Alice", messages[0].SenderName)
	assert.Equal(t, "normal", messages[0].Kind)

	assert.Equal(t, "Bob", messages[1].SenderName)
	assert.Equal(t, "ai-command", messages[1].Kind)

	assert.Equal(t, models.AISenderName, messages[2].SenderName)
	assert.Equal(t, "ai-response", messages[2].Kind)
}

func TestSameInstantMessagesBothSurvive(t *testing.T) {
	svc, fake, _ := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	instant := "2026-08-29T10:00:00.000000000Z"
	for _, m := range []models.Message{
		{TeamID: "team-1", CreatedAt: instant, MessageID: "a-msg", SenderID: "alice", Content: "first"},
		{TeamID: "team-1", CreatedAt: instant, MessageID: "b-msg", SenderID: "bob", Content: "second"},
	} {
		m.SortKey = models.MessageSortKey(m.CreatedAt, m.MessageID)
		fake.seed(models.MessagesTable, m)
	}

	messages, err := svc.GetMessages(ctx, "team-1", "alice")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestGetMessagesMemberGate(t *testing.T) {
	svc, fake, _ := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	_, err := svc.GetMessages(ctx, "team-1", "eve")
	assert.ErrorIs(t, err, ErrNotTeamMember)

	_, err = svc.GetMessages(ctx, "no-team", "alice")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamMembers(t *testing.T) {
	svc, fake, _ := newChatService()
	ctx := context.Background()
	seedTeamChat(fake)

	members, err := svc.TeamMembers(ctx, "team-1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice", members[0].Username)
	assert.Empty(t, members[0].GameUID)
}
