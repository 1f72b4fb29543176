package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Meeting errors
var (
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrOrgMismatch      = errors.New("meeting belongs to another organization")
	ErrMeetingCompleted = errors.New("meeting already completed")
)

// Task errors
var (
	ErrNoValidTasks   = errors.New("no valid tasks supplied")
	ErrDuplicateBatch = errors.New("task batch already processed")
)

// Summary errors
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrSummaryDisabled = errors.New("summary generation not configured")
)
