package models

// UserProfile defines the structure for teammate-finder user profiles
type UserProfile struct {
	UserID       string `dynamodbav:"userId" json:"userId"`
	Email        string `dynamodbav:"email" json:"email,omitempty"`
	PasswordHash string `dynamodbav:"passwordHash" json:"-"`
	Username     string `dynamodbav:"username" json:"username"`
	Avatar       string `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`

	// Game profile
	GameUID         string `dynamodbav:"uid,omitempty" json:"uid,omitempty"`
	Level           int    `dynamodbav:"level,omitempty" json:"level,omitempty"`
	Role            string `dynamodbav:"role,omitempty" json:"role,omitempty"`
	SkillLevel      string `dynamodbav:"skillLevel,omitempty" json:"skillLevel,omitempty"`
	Playstyle       string `dynamodbav:"playstyle,omitempty" json:"playstyle,omitempty"`
	ExperienceLevel string `dynamodbav:"experienceLevel,omitempty" json:"experienceLevel,omitempty"`

	// Availability
	Region      string `dynamodbav:"region,omitempty" json:"region,omitempty"`
	Language    string `dynamodbav:"language,omitempty" json:"language,omitempty"`
	ActiveHours string `dynamodbav:"activeHours,omitempty" json:"activeHours,omitempty"`

	// Communication (private until matched)
	Voice      bool   `dynamodbav:"voice" json:"voice"`
	DiscordTag string `dynamodbav:"discordTag,omitempty" json:"discordTag,omitempty"`

	// Optional
	Bio        string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	LookingFor string `dynamodbav:"lookingFor,omitempty" json:"lookingFor,omitempty"`

	// Promotion
	MCRTBalance   int    `dynamodbav:"mcrtBalance" json:"mcrtBalance,omitempty"`
	BoostedUntil  string `dynamodbav:"boostedUntil,omitempty" json:"boostedUntil,omitempty"`
	BoostTier     string `dynamodbav:"boostTier,omitempty" json:"boostTier,omitempty"`
	ProfileViews  int    `dynamodbav:"profileViews" json:"profileViews,omitempty"`
	TotalBoosts   int    `dynamodbav:"totalBoosts" json:"totalBoosts,omitempty"`
	LastBoostDate string `dynamodbav:"lastBoostDate,omitempty" json:"lastBoostDate,omitempty"`

	LastActive string `dynamodbav:"lastActive,omitempty" json:"lastActive,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Public returns a copy safe to show to users outside the profile owner's team.
// The in-game UID and Discord tag stay hidden until a team is formed.
func (p UserProfile) Public() UserProfile {
	p.Email = ""
	p.PasswordHash = ""
	p.GameUID = ""
	p.DiscordTag = ""
	return p
}

// HasRole reports whether the game profile is complete enough to be searchable.
func (p UserProfile) HasRole() bool {
	return p.Role != ""
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

// EmailIndex is the GSI used to look profiles up by email at registration and login
const EmailIndex = "email-index"
