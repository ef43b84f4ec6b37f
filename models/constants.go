package models

// ✅ Team request statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// AISenderID is the sentinel sender for assistant messages. It bypasses
// the team membership check in the messaging relay.
const AISenderID = "ai"

// AISenderName is the display name resolved for assistant messages.
const AISenderName = "MagicCraft AI"

// Search and matching bounds
const (
	SearchResultLimit  = 50 // max profiles returned by a filter search
	MatchPoolLimit     = 50 // max candidates fetched for smart matching
	MatchAnalyzeLimit  = 20 // max candidates presented to the completion service
	MatchTargetCount   = 5  // desired number of smart matches
	MatchFallbackScore = 70 // score assigned to backfilled matches
)

// StartingMCRTBalance is the free token grant for new accounts.
const StartingMCRTBalance = 2000

// BoostPlan is a purchasable profile promotion tier.
type BoostPlan struct {
	Hours int
	Price int
}

// BoostPlans maps tier names to duration and MCRT price.
var BoostPlans = map[string]BoostPlan{
	"48h": {Hours: 48, Price: 500},
	"7d":  {Hours: 168, Price: 1200},
	"15d": {Hours: 360, Price: 2200},
	"30d": {Hours: 720, Price: 3500},
}

// TimeLayout is the stored timestamp format. Fixed-width fractional
// seconds keep lexicographic order equal to chronological order, which
// the Messages sort key relies on.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
