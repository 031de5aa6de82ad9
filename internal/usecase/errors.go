package usecase

import "errors"

// Error taxonomy shared by the hiring usecases. Validation and transition
// failures are the caller's to fix and are never retried automatically;
// collaborator failures are transient and left to the operator to retry.
var (
	ErrValidation              = errors.New("validation failed")
	ErrInvalidTransition       = errors.New("invalid transition")
	ErrNoEligibleCandidates    = errors.New("no eligible candidates")
	ErrInsufficientData        = errors.New("insufficient resume data")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrNotFound                = errors.New("not found")
	ErrInternal                = errors.New("internal error")
)
