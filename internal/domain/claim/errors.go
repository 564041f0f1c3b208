package claim

import "errors"

var (
	ErrClaimNotFound           = errors.New("claim not found")
	ErrPolicyNotFound          = errors.New("approval policy not found")
	ErrUnauthorizedAction      = errors.New("actor is not authorized for this approval stage")
	ErrInvalidTransition       = errors.New("claim is not in an actionable status")
	ErrStaleState              = errors.New("claim status changed since it was read")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrUnknownStatus           = errors.New("unknown claim status")
	ErrUnknownClaimType        = errors.New("unknown claim type")
)
