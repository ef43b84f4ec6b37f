package models

// Message is one immutable entry in a team's chat log.
// Keyed by teamId (partition) + sortKey (sort) so reads come back in
// send order straight from the store. The sort key is the fixed-width
// timestamp suffixed with the message id, so two sends landing on the
// same instant both survive.
type Message struct {
	TeamID      string `dynamodbav:"teamId" json:"teamId"`
	SortKey     string `dynamodbav:"sortKey" json:"-"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	MessageID   string `dynamodbav:"messageId" json:"messageId"`
	SenderID    string `dynamodbav:"senderId" json:"senderId"`
	Content     string `dynamodbav:"content" json:"content"`
	IsAICommand bool   `dynamodbav:"isAiCommand" json:"isAiCommand,omitempty"`
	IsAI        bool   `dynamodbav:"isAi" json:"isAi,omitempty"`

	// Resolved at read time, never stored
	SenderName string `dynamodbav:"-" json:"senderName,omitempty"`
}

// MessageSortKey builds the chat log sort key for a message.
func MessageSortKey(createdAt, messageID string) string {
	return createdAt + "#" + messageID
}

// Kind labels the message for clients: normal, ai-command or ai-response.
func (m Message) Kind() string {
	switch {
	case m.IsAI:
		return MessageKindAIResponse
	case m.IsAICommand:
		return MessageKindAICommand
	default:
		return MessageKindNormal
	}
}

// MessagesTable is the DynamoDB table name for team messages
const MessagesTable = "Messages"

const (
	MessageKindNormal     = "normal"
	MessageKindAICommand  = "ai-command"
	MessageKindAIResponse = "ai-response"
)
