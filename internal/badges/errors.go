// file: internal/badges/errors.go
package badges

import "fmt"

// ===============================
// ENGINE ERROR TYPES
// ===============================

// CatalogError reports malformed catalog data at load time. It is
// fatal: the engine must not initialize with a bad catalog.
type CatalogError struct {
	Source   string   // file path or "inline"
	Problems []string // one entry per rejected definition
	Cause    error
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("badge catalog %s invalid: %d problem(s), first: %s",
			e.Source, len(e.Problems), e.Problems[0])
	}
	if e.Cause != nil {
		return fmt.Sprintf("badge catalog %s unreadable: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("badge catalog %s invalid", e.Source)
}

// Unwrap returns the underlying error
func (e *CatalogError) Unwrap() error { return e.Cause }

// AggregationError reports that a user's activity counts could not be
// read. The evaluation pass for that user aborts; the caller may retry.
type AggregationError struct {
	UserID int64
	Cause  error
}

// Error implements the error interface
func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to aggregate activity for user %d: %v", e.UserID, e.Cause)
}

// Unwrap returns the underlying error
func (e *AggregationError) Unwrap() error { return e.Cause }

// AwardError reports a persistence failure while writing an award that
// is not a uniqueness conflict. The pass aborts; the caller may retry.
// Uniqueness conflicts are not errors: the writer treats them as
// already-awarded no-ops.
type AwardError struct {
	UserID   int64
	BadgeKey string
	Cause    error
}

// Error implements the error interface
func (e *AwardError) Error() string {
	return fmt.Sprintf("failed to persist badge %q for user %d: %v", e.BadgeKey, e.UserID, e.Cause)
}

// Unwrap returns the underlying error
func (e *AwardError) Unwrap() error { return e.Cause }
