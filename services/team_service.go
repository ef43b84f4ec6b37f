package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TeamService struct {
	Dynamo   *DynamoService
	Profiles *UserProfileService
	Logger   *zap.Logger
}

// SendRequest creates a pending team request from sender to receiver.
// At most one pending request may exist per ordered (sender, receiver)
// pair, and a player cannot request themselves.
func (ts *TeamService) SendRequest(ctx context.Context, senderID, receiverID string) (*models.TeamRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	if _, err := ts.Profiles.GetProfile(ctx, receiverID); err != nil {
		return nil, err
	}

	sent, err := ts.requestsBySender(ctx, senderID)
	if err != nil {
		return nil, err
	}
	for _, req := range sent {
		if req.ReceiverID == receiverID && req.Status == models.StatusPending {
			return nil, ErrDuplicateRequest
		}
	}

	request := models.TeamRequest{
		RequestID:  uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
		CreatedAt:  now(),
	}

	if err := ts.Dynamo.PutItem(ctx, models.TeamRequestsTable, request); err != nil {
		return nil, err
	}

	ts.Logger.Info("team request sent",
		zap.String("requestId", request.RequestID),
		zap.String("senderId", senderID),
		zap.String("receiverId", receiverID),
	)
	return &request, nil
}

// Respond accepts or rejects a pending request. Only the receiver may
// respond, and a resolved request is terminal. On accept the request is
// linked to the team for its pair, reusing an existing one when the two
// players already formed a team.
func (ts *TeamService) Respond(ctx context.Context, requestID, responderID string, accept bool) (string, error) {
	request, err := ts.getRequest(ctx, requestID)
	if err != nil {
		return "", err
	}

	if request.ReceiverID != responderID {
		return "", ErrNotReceiver
	}
	if request.Status != models.StatusPending {
		return "", ErrRequestNotPending
	}

	if !accept {
		if err := ts.updateRequestStatus(ctx, requestID, models.StatusRejected, ""); err != nil {
			return "", err
		}
		ts.Logger.Info("team request rejected", zap.String("requestId", requestID))
		return "", nil
	}

	team, err := ts.findTeamByMembers(ctx, request.SenderID, request.ReceiverID)
	if err != nil {
		return "", err
	}

	if team == nil {
		team = &models.Team{
			TeamID:    uuid.New().String(),
			Members:   []string{request.SenderID, request.ReceiverID},
			CreatedAt: now(),
		}
		if err := ts.Dynamo.PutItem(ctx, models.TeamsTable, *team); err != nil {
			return "", err
		}
		ts.Logger.Info("team created",
			zap.String("teamId", team.TeamID),
			zap.Strings("members", team.Members),
		)
	}

	if err := ts.updateRequestStatus(ctx, requestID, models.StatusAccepted, team.TeamID); err != nil {
		return "", err
	}

	ts.Logger.Info("team request accepted",
		zap.String("requestId", requestID),
		zap.String("teamId", team.TeamID),
	)
	return team.TeamID, nil
}

// ListRequests returns every request the user sent or received, newest
// first, populated with counterpart profile summaries.
func (ts *TeamService) ListRequests(ctx context.Context, userID string) ([]models.TeamRequest, error) {
	sent, err := ts.requestsBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := ts.requestsByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests := append(sent, received...)
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt > requests[j].CreatedAt
	})

	ids := make([]string, 0, len(requests)*2)
	for _, req := range requests {
		ids = append(ids, req.SenderID, req.ReceiverID)
	}
	profiles, err := ts.Profiles.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		if sender, ok := profiles[requests[i].SenderID]; ok {
			summary := sender.Summary()
			requests[i].Sender = &summary
		}
		if receiver, ok := profiles[requests[i].ReceiverID]; ok {
			summary := receiver.Summary()
			requests[i].Receiver = &summary
		}
	}

	return requests, nil
}

// ListTeams returns the user's teams, newest first, with member
// summaries attached.
func (ts *TeamService) ListTeams(ctx context.Context, userID string) ([]models.Team, error) {
	teams, err := ts.scanTeams(ctx)
	if err != nil {
		return nil, err
	}

	var mine []models.Team
	for _, team := range teams {
		if containsMember(team.Members, userID) {
			mine = append(mine, team)
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt > mine[j].CreatedAt
	})

	var memberIDs []string
	for _, team := range mine {
		memberIDs = append(memberIDs, team.Members...)
	}
	profiles, err := ts.Profiles.GetProfilesByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	for i := range mine {
		mine[i].MemberDetails = memberSummaries(mine[i].Members, profiles, false)
	}
	return mine, nil
}

// GetTeam returns a team view for one of its members. Contact fields
// (in-game UID, Discord tag) are included, since membership is the gate
// that makes them visible.
func (ts *TeamService) GetTeam(ctx context.Context, teamID, requesterID string) (*models.Team, error) {
	team, err := ts.getTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if !containsMember(team.Members, requesterID) {
		return nil, ErrNotTeamMember
	}

	profiles, err := ts.Profiles.GetProfilesByIDs(ctx, team.Members)
	if err != nil {
		return nil, err
	}

	team.MemberDetails = memberSummaries(team.Members, profiles, true)
	return team, nil
}

// Notifications lists up to five newest pending received requests as
// dashboard alerts.
func (ts *TeamService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	received, err := ts.requestsByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pending []models.TeamRequest
	for _, req := range received {
		if req.Status == models.StatusPending {
			pending = append(pending, req)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt > pending[j].CreatedAt
	})
	if len(pending) > 5 {
		pending = pending[:5]
	}

	var senderIDs []string
	for _, req := range pending {
		senderIDs = append(senderIDs, req.SenderID)
	}
	profiles, err := ts.Profiles.GetProfilesByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(pending))
	for _, req := range pending {
		n := models.Notification{
			ID:        req.RequestID,
			Type:      "team_request",
			CreatedAt: req.CreatedAt,
			Link:      "/requests",
		}
		if sender, ok := profiles[req.SenderID]; ok {
			summary := sender.Summary()
			n.Sender = &summary
			n.Message = fmt.Sprintf("%s sent you a team request", sender.Username)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (ts *TeamService) getRequest(ctx context.Context, requestID string) (*models.TeamRequest, error) {
	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}
	item, err := ts.Dynamo.GetItem(ctx, models.TeamRequestsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrRequestNotFound
	}

	var request models.TeamRequest
	if err := attributevalue.UnmarshalMap(item, &request); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	return &request, nil
}

func (ts *TeamService) updateRequestStatus(ctx context.Context, requestID, status, teamID string) error {
	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}
	updateExpression := "SET #status = :status, updatedAt = :now"
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: status},
		":now":    &types.AttributeValueMemberS{Value: now()},
	}
	names := map[string]string{"#status": "status"}

	if teamID != "" {
		updateExpression += ", teamId = :teamId"
		values[":teamId"] = &types.AttributeValueMemberS{Value: teamID}
	}

	_, err := ts.Dynamo.UpdateItem(ctx, models.TeamRequestsTable, updateExpression, key, values, names)
	return err
}

// findTeamByMembers looks for a team whose member set is exactly the
// given pair. Lookup-before-create; two simultaneous acceptances can
// still race, which is tolerated.
func (ts *TeamService) findTeamByMembers(ctx context.Context, memberA, memberB string) (*models.Team, error) {
	teams, err := ts.scanTeams(ctx)
	if err != nil {
		return nil, err
	}

	want := []string{memberA, memberB}
	for i := range teams {
		if sameMembers(teams[i].Members, want) {
			return &teams[i], nil
		}
	}
	return nil, nil
}

func (ts *TeamService) getTeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	key := map[string]types.AttributeValue{
		"teamId": &types.AttributeValueMemberS{Value: teamID},
	}
	item, err := ts.Dynamo.GetItem(ctx, models.TeamsTable, key)
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

func (ts *TeamService) scanTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := ts.Dynamo.ScanWithFilter(ctx, models.TeamsTable, nil, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (ts *TeamService) requestsBySender(ctx context.Context, senderID string) ([]models.TeamRequest, error) {
	return ts.queryRequests(ctx, models.SenderIndex, "senderId", senderID)
}

func (ts *TeamService) requestsByReceiver(ctx context.Context, receiverID string) ([]models.TeamRequest, error) {
	return ts.queryRequests(ctx, models.ReceiverIndex, "receiverId", receiverID)
}

func (ts *TeamService) queryRequests(ctx context.Context, index, field, value string) ([]models.TeamRequest, error) {
	keyCondition := field + " = :value"
	expressionValues := map[string]types.AttributeValue{
		":value": &types.AttributeValueMemberS{Value: value},
	}

	items, err := ts.Dynamo.QueryItemsWithIndex(ctx, models.TeamRequestsTable, index, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, err
	}

	var requests []models.TeamRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("unmarshal requests: %w", err)
	}
	return requests, nil
}

func containsMember(members []string, userID string) bool {
	for _, m := range members {
		if m == userID {
			return true
		}
	}
	return false
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func memberSummaries(members []string, profiles map[string]models.UserProfile, withContact bool) []models.ProfileSummary {
	summaries := make([]models.ProfileSummary, 0, len(members))
	for _, id := range members {
		profile, ok := profiles[id]
		if !ok {
			continue
		}
		summary := profile.Summary()
		if withContact {
			summary.GameUID = profile.GameUID
			summary.DiscordTag = profile.DiscordTag
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
