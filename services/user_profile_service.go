package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserProfileService struct {
	Dynamo *DynamoService
	Logger *zap.Logger
}

func now() string {
	return time.Now().UTC().Format(models.TimeLayout)
}

// Register creates a new account with an empty game profile and the
// starting MCRT grant.
func (ups *UserProfileService) Register(ctx context.Context, email, password, username string) (*models.UserProfile, error) {
	existing, err := ups.getProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	createdAt := now()
	profile := models.UserProfile{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
		Avatar:       "https://api.dicebear.com/7.x/adventurer/svg?seed=" + url.QueryEscape(username),
		MCRTBalance:  models.StartingMCRTBalance,
		LastActive:   createdAt,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}

	ups.Logger.Info("profile registered", zap.String("userId", profile.UserID))
	return &profile, nil
}

// Authenticate checks credentials and returns the profile on success.
func (ups *UserProfileService) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	profile, err := ups.getProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return profile, nil
}

// GetProfile retrieves a full profile by ID, private fields included.
// Callers decide what view to expose.
func (ups *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrProfileNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	return &profile, nil
}

// GetPublicProfile returns the private-field-stripped view and counts
// the visit.
func (ups *UserProfileService) GetPublicProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := ups.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	values := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}
	if _, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, "ADD profileViews :one", key, values, nil); err != nil {
		// A lost view count never fails the read
		ups.Logger.Warn("failed to count profile view", zap.String("userId", userID), zap.Error(err))
	}

	public := profile.Public()
	public.ProfileViews++
	return &public, nil
}

// ProfileUpdate carries the owner-editable fields. Nil means "leave as is".
type ProfileUpdate struct {
	Username        *string `json:"username"`
	Avatar          *string `json:"avatar"`
	GameUID         *string `json:"uid"`
	Level           *int    `json:"level"`
	Role            *string `json:"role"`
	SkillLevel      *string `json:"skillLevel"`
	Playstyle       *string `json:"playstyle"`
	Region          *string `json:"region"`
	Language        *string `json:"language"`
	ActiveHours     *string `json:"activeHours"`
	Voice           *bool   `json:"voice"`
	DiscordTag      *string `json:"discordTag"`
	Bio             *string `json:"bio"`
	LookingFor      *string `json:"lookingFor"`
	ExperienceLevel *string `json:"experienceLevel"`
}

// UpdateProfile applies the owner's edits and bumps activity timestamps.
func (ups *UserProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.UserProfile, error) {
	if _, err := ups.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"lastActive": now(),
		"updatedAt":  now(),
	}
	collect := func(name string, v interface{}) {
		fields[name] = v
	}
	if update.Username != nil {
		collect("username", *update.Username)
	}
	if update.Avatar != nil {
		collect("avatar", *update.Avatar)
	}
	if update.GameUID != nil {
		collect("uid", *update.GameUID)
	}
	if update.Level != nil {
		collect("level", *update.Level)
	}
	if update.Role != nil {
		collect("role", *update.Role)
	}
	if update.SkillLevel != nil {
		collect("skillLevel", *update.SkillLevel)
	}
	if update.Playstyle != nil {
		collect("playstyle", *update.Playstyle)
	}
	if update.Region != nil {
		collect("region", *update.Region)
	}
	if update.Language != nil {
		collect("language", *update.Language)
	}
	if update.ActiveHours != nil {
		collect("activeHours", *update.ActiveHours)
	}
	if update.Voice != nil {
		collect("voice", *update.Voice)
	}
	if update.DiscordTag != nil {
		collect("discordTag", *update.DiscordTag)
	}
	if update.Bio != nil {
		collect("bio", *update.Bio)
	}
	if update.LookingFor != nil {
		collect("lookingFor", *update.LookingFor)
	}
	if update.ExperienceLevel != nil {
		collect("experienceLevel", *update.ExperienceLevel)
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)
	first := true
	for name, value := range fields {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", name, err)
		}
		if !first {
			updateExpression += ","
		}
		first = false
		updateExpression += " #" + name + " = :" + name
		expressionAttributeNames["#"+name] = name
		expressionAttributeValues[":"+name] = av
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updated, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updated, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal updated profile: %w", err)
	}

	ups.Logger.Info("profile updated", zap.String("userId", userID))
	return &profile, nil
}

// BoostReceipt is returned to the caller after a successful purchase.
type BoostReceipt struct {
	BoostedUntil string `json:"boostedUntil"`
	NewBalance   int    `json:"newBalance"`
	Tier         string `json:"tier"`
}

// Boost spends MCRT to raise the profile's search priority. An active
// boost is extended from its current end, an expired one from now.
func (ups *UserProfileService) Boost(ctx context.Context, userID, tier string) (*BoostReceipt, error) {
	plan, ok := models.BoostPlans[tier]
	if !ok {
		return nil, ErrInvalidBoostTier
	}

	profile, err := ups.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.MCRTBalance < plan.Price {
		return nil, ErrInsufficientMCRT
	}

	nowTime := time.Now().UTC()
	boostStart := nowTime
	if profile.BoostedUntil != "" {
		if current, err := time.Parse(models.TimeLayout, profile.BoostedUntil); err == nil && current.After(nowTime) {
			boostStart = current
		}
	}
	boostedUntil := boostStart.Add(time.Duration(plan.Hours) * time.Hour).Format(models.TimeLayout)

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updateExpression := "SET boostedUntil = :until, boostTier = :tier, lastBoostDate = :now, updatedAt = :now ADD mcrtBalance :debit, totalBoosts :one"
	values := map[string]types.AttributeValue{
		":until": &types.AttributeValueMemberS{Value: boostedUntil},
		":tier":  &types.AttributeValueMemberS{Value: tier},
		":now":   &types.AttributeValueMemberS{Value: nowTime.Format(models.TimeLayout)},
		":debit": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", -plan.Price)},
		":one":   &types.AttributeValueMemberN{Value: "1"},
	}

	if _, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, values, nil); err != nil {
		return nil, err
	}

	ups.Logger.Info("profile boosted",
		zap.String("userId", userID),
		zap.String("tier", tier),
		zap.String("boostedUntil", boostedUntil),
	)

	return &BoostReceipt{
		BoostedUntil: boostedUntil,
		NewBalance:   profile.MCRTBalance - plan.Price,
		Tier:         tier,
	}, nil
}

// GetProfilesByIDs resolves a set of profile ids, skipping unknown ones.
func (ups *UserProfileService) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]models.UserProfile, error) {
	profiles := make(map[string]models.UserProfile, len(ids))
	for _, id := range ids {
		if _, ok := profiles[id]; ok {
			continue
		}
		profile, err := ups.GetProfile(ctx, id)
		if errors.Is(err, ErrProfileNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		profiles[id] = *profile
	}
	return profiles, nil
}

func (ups *UserProfileService) getProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	keyCondition := "email = :email"
	expressionValues := map[string]types.AttributeValue{
		":email": &types.AttributeValueMemberS{Value: email},
	}

	items, err := ups.Dynamo.QueryItemsWithIndex(ctx, models.UserProfilesTable, models.EmailIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch profile by email: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}
