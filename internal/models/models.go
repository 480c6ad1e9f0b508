// file: internal/models/models.go
package models

import "time"

// ===============================
// USERS
// ===============================

// User represents a registered participant
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	DisplayName string     `json:"display_name" db:"display_name"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// Aggregated statistics (joined from activity, not stored on users)
	PropheciesCount int `json:"prophecies_count" db:"prophecies_count"`
	RatingsCount    int `json:"ratings_count" db:"ratings_count"`
	BadgesCount     int `json:"badges_count" db:"badges_count"`
	AccuracyPercent int `json:"accuracy_percent" db:"accuracy_percent"`
}

// ===============================
// ROUNDS
// ===============================

// RoundStatus enumerates the lifecycle of a round.
type RoundStatus string

const (
	RoundOpen     RoundStatus = "open"     // accepting prophecies
	RoundRating   RoundStatus = "rating"   // submission closed, accepting ratings
	RoundResolved RoundStatus = "resolved" // prophecies marked fulfilled or not
)

// Round is a time-boxed period with submission and rating deadlines.
type Round struct {
	ID                 int64       `json:"id" db:"id"`
	Title              string      `json:"title" db:"title"`
	Description        *string     `json:"description,omitempty" db:"description"`
	Status             RoundStatus `json:"status" db:"status"`
	SubmissionDeadline time.Time   `json:"submission_deadline" db:"submission_deadline"`
	RatingDeadline     time.Time   `json:"rating_deadline" db:"rating_deadline"`
	ResolvedAt         *time.Time  `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`

	PropheciesCount int `json:"prophecies_count" db:"prophecies_count"`
}

// IsOpenForSubmission reports whether new prophecies may be submitted.
func (r *Round) IsOpenForSubmission(now time.Time) bool {
	return r.Status == RoundOpen && now.Before(r.SubmissionDeadline)
}

// IsOpenForRating reports whether ratings may be submitted.
func (r *Round) IsOpenForRating(now time.Time) bool {
	return r.Status == RoundRating && now.Before(r.RatingDeadline)
}

// ===============================
// PROPHECIES
// ===============================

// Prophecy is a user-submitted prediction tied to a round.
// Fulfilled stays nil until the round is resolved.
type Prophecy struct {
	ID        int64     `json:"id" db:"id"`
	RoundID   int64     `json:"round_id" db:"round_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Fulfilled *bool     `json:"fulfilled,omitempty" db:"fulfilled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined display fields
	Username      string   `json:"username,omitempty" db:"username"`
	RatingsCount  int      `json:"ratings_count" db:"ratings_count"`
	AverageRating *float64 `json:"average_rating,omitempty" db:"average_rating"`
}

// ===============================
// RATINGS
// ===============================

// Rating is a single user's 1-5 score of a prophecy, given after the
// round's submission phase closed. One rating per (prophecy, rater).
type Rating struct {
	ID         int64     `json:"id" db:"id"`
	ProphecyID int64     `json:"prophecy_id" db:"prophecy_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Score      int       `json:"score" db:"score"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// NOTIFICATIONS
// ===============================

// Notification is a persisted per-user message, currently only badge
// awards. Delivery to a client transport happens elsewhere.
type Notification struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Kind      string     `json:"kind" db:"kind"`
	Payload   string     `json:"payload" db:"payload"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams holds common list query parameters
type PaginationParams struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Sort   string `json:"sort"`
	Order  string `json:"order"`
}

// PaginationMeta describes a page of results
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// LeaderboardEntry is a single row of the public leaderboard.
type LeaderboardEntry struct {
	UserID          int64  `json:"user_id" db:"user_id"`
	Username        string `json:"username" db:"username"`
	BadgesCount     int    `json:"badges_count" db:"badges_count"`
	PropheciesCount int    `json:"prophecies_count" db:"prophecies_count"`
	AccuracyPercent int    `json:"accuracy_percent" db:"accuracy_percent"`
}
