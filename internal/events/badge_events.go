package events

import "time"

// Event type names published by the domain services.
const (
	EventBadgeAwarded    = "badge.awarded"
	EventRoundResolved   = "round.resolved"
	EventProphecyCreated = "prophecy.created"
	EventRatingCreated   = "rating.created"
)

// BadgeAwardedEvent is emitted once per newly persisted badge award.
// Re-evaluations of an already-held badge never emit it.
type BadgeAwardedEvent struct {
	BaseEvent
	UserID    int64     `json:"user_id"`
	BadgeKey  string    `json:"badge_key"`
	BadgeName string    `json:"badge_name"`
	Rarity    string    `json:"rarity"`
	EarnedAt  time.Time `json:"earned_at"`
}

// NewBadgeAwardedEvent creates a new BadgeAwardedEvent
func NewBadgeAwardedEvent(userID int64, badgeKey, badgeName, rarity string, earnedAt time.Time) *BadgeAwardedEvent {
	return &BadgeAwardedEvent{
		BaseEvent: BaseEvent{
			EventID:   GenerateEventID(),
			EventType: EventBadgeAwarded,
			Timestamp: time.Now(),
			UserID:    &userID,
		},
		UserID:    userID,
		BadgeKey:  badgeKey,
		BadgeName: badgeName,
		Rarity:    rarity,
		EarnedAt:  earnedAt,
	}
}

// RoundResolvedEvent is emitted after a round's prophecies are marked
// fulfilled or not and its status moved to resolved.
type RoundResolvedEvent struct {
	BaseEvent
	RoundID        int64     `json:"round_id"`
	ParticipantIDs []int64   `json:"participant_ids"`
	ResolvedAt     time.Time `json:"resolved_at"`
}

// NewRoundResolvedEvent creates a new RoundResolvedEvent
func NewRoundResolvedEvent(roundID int64, participantIDs []int64, resolvedAt time.Time) *RoundResolvedEvent {
	return &RoundResolvedEvent{
		BaseEvent: BaseEvent{
			EventID:   GenerateEventID(),
			EventType: EventRoundResolved,
			Timestamp: time.Now(),
		},
		RoundID:        roundID,
		ParticipantIDs: participantIDs,
		ResolvedAt:     resolvedAt,
	}
}

// ProphecyCreatedEvent is emitted when a prophecy is submitted.
type ProphecyCreatedEvent struct {
	BaseEvent
	ProphecyID int64 `json:"prophecy_id"`
	RoundID    int64 `json:"round_id"`
	AuthorID   int64 `json:"author_id"`
}

// NewProphecyCreatedEvent creates a new ProphecyCreatedEvent
func NewProphecyCreatedEvent(prophecyID, roundID, authorID int64) *ProphecyCreatedEvent {
	return &ProphecyCreatedEvent{
		BaseEvent: BaseEvent{
			EventID:   GenerateEventID(),
			EventType: EventProphecyCreated,
			Timestamp: time.Now(),
			UserID:    &authorID,
		},
		ProphecyID: prophecyID,
		RoundID:    roundID,
		AuthorID:   authorID,
	}
}

// RatingCreatedEvent is emitted when a rating is submitted.
type RatingCreatedEvent struct {
	BaseEvent
	RatingID   int64 `json:"rating_id"`
	ProphecyID int64 `json:"prophecy_id"`
	RaterID    int64 `json:"rater_id"`
	Score      int   `json:"score"`
}

// NewRatingCreatedEvent creates a new RatingCreatedEvent
func NewRatingCreatedEvent(ratingID, prophecyID, raterID int64, score int) *RatingCreatedEvent {
	return &RatingCreatedEvent{
		BaseEvent: BaseEvent{
			EventID:   GenerateEventID(),
			EventType: EventRatingCreated,
			Timestamp: time.Now(),
			UserID:    &raterID,
		},
		RatingID:   ratingID,
		ProphecyID: prophecyID,
		RaterID:    raterID,
		Score:      score,
	}
}
