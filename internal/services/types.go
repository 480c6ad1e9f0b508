// file: internal/services/types.go
package services

import "time"

// ===============================
// REQUEST TYPES
// ===============================

// CreateUserRequest carries the fields needed to register a user
type CreateUserRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=32,alphanum"`
	DisplayName string  `json:"display_name" validate:"required,min=1,max=64"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// CreateRoundRequest carries the fields needed to open a round
type CreateRoundRequest struct {
	Title              string    `json:"title" validate:"required,min=3,max=120"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	SubmissionDeadline time.Time `json:"submission_deadline" validate:"required"`
	RatingDeadline     time.Time `json:"rating_deadline" validate:"required,gtfield=SubmissionDeadline"`
}

// CreateProphecyRequest carries a prophecy submission
type CreateProphecyRequest struct {
	RoundID int64  `json:"round_id" validate:"required,gt=0"`
	UserID  int64  `json:"-" validate:"required,gt=0"`
	Title   string `json:"title" validate:"required,min=3,max=120"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// RateProphecyRequest carries a 1-5 rating of a prophecy
type RateProphecyRequest struct {
	ProphecyID int64 `json:"prophecy_id" validate:"required,gt=0"`
	UserID     int64 `json:"-" validate:"required,gt=0"`
	Score      int   `json:"score" validate:"required,min=1,max=5"`
}

// ProphecyOutcome pairs a prophecy with its resolution verdict
type ProphecyOutcome struct {
	ProphecyID int64 `json:"prophecy_id" validate:"required,gt=0"`
	Fulfilled  bool  `json:"fulfilled"`
}

// ResolveRoundRequest resolves a round: every prophecy of the round
// gets a verdict, the round moves to resolved, and every participant
// goes through a badge evaluation pass.
type ResolveRoundRequest struct {
	RoundID  int64             `json:"-" validate:"required,gt=0"`
	Outcomes []ProphecyOutcome `json:"outcomes" validate:"required,min=1,dive"`
}
