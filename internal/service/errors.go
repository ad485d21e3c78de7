package service

import "errors"

// Domain errors surfaced to handlers, which map them onto the response
// error taxonomy.
var (
	ErrDuplicateUser    = errors.New("username or email already exists")
	ErrAlreadyAssigned  = errors.New("exam already assigned to this student")
	ErrAlreadyCompleted = errors.New("exam already completed by this student")
	ErrExamInactive     = errors.New("exam is not active")
	ErrDeadlineExceeded = errors.New("submission received after the deadline")
	ErrNotOwner         = errors.New("result belongs to another student")
	ErrUserHasResults   = errors.New("account still owns exam results")

	ErrPassingExceedsTotal = errors.New("passing marks cannot exceed total marks")
)

// Submission validation errors. Wrapped with the offending question id
// or label so handlers can report the exact field.
var (
	ErrUnknownQuestion = errors.New("answer references a question outside this exam")
	ErrInvalidOption   = errors.New("selected option is not a valid label")
)
