package models

// TeamRequest is a directed invitation from one player to another to form a team.
type TeamRequest struct {
	RequestID  string `dynamodbav:"requestId" json:"requestId"`
	SenderID   string `dynamodbav:"senderId" json:"senderId"` // ✅ GSI partition key (senderId-index)
	ReceiverID string `dynamodbav:"receiverId" json:"receiverId"`
	Status     string `dynamodbav:"status" json:"status"` // pending, accepted, rejected
	TeamID     string `dynamodbav:"teamId,omitempty" json:"teamId,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`

	// Populated for listings, never stored
	Sender   *ProfileSummary `dynamodbav:"-" json:"sender,omitempty"`
	Receiver *ProfileSummary `dynamodbav:"-" json:"receiver,omitempty"`
}

// Team is the persistent grouping formed from an accepted request.
type Team struct {
	TeamID    string   `dynamodbav:"teamId" json:"teamId"`
	Members   []string `dynamodbav:"members" json:"members"`
	CreatedAt string   `dynamodbav:"createdAt" json:"createdAt"`

	// Populated for listings, never stored
	MemberDetails []ProfileSummary `dynamodbav:"-" json:"memberDetails,omitempty"`
}

// ProfileSummary is the slim profile view attached to requests, teams and notifications.
type ProfileSummary struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar,omitempty"`
	Role       string `json:"role,omitempty"`
	SkillLevel string `json:"skillLevel,omitempty"`
	Region     string `json:"region,omitempty"`
	Level      int    `json:"level,omitempty"`

	// Set only on team views, where contact info is visible to members
	GameUID    string `json:"uid,omitempty"`
	DiscordTag string `json:"discordTag,omitempty"`
}

// Summary projects the listing view of a profile. Contact fields are
// excluded; team views attach them separately for members only.
func (p UserProfile) Summary() ProfileSummary {
	return ProfileSummary{
		UserID:     p.UserID,
		Username:   p.Username,
		Avatar:     p.Avatar,
		Role:       p.Role,
		SkillLevel: p.SkillLevel,
		Region:     p.Region,
		Level:      p.Level,
	}
}

// Notification is a dashboard alert derived from pending requests.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Sender    *ProfileSummary `json:"sender,omitempty"`
	CreatedAt string          `json:"createdAt"`
	Link      string          `json:"link"`
}

const (
	TeamRequestsTable = "TeamRequests"
	TeamsTable        = "Teams"

	SenderIndex   = "senderId-index"
	ReceiverIndex = "receiverId-index"
)
