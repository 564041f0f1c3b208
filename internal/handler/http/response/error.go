package response

import (
	"errors"
	"net/http"

	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
	"github.com/utamahr/claims-backend-go/internal/domain/user"
	"github.com/utamahr/claims-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Claim domain errors
	case errors.Is(err, claim.ErrClaimNotFound):
		NotFound(w, "Claim not found")
	case errors.Is(err, claim.ErrPolicyNotFound):
		NotFound(w, "Approval policy not found")
	case errors.Is(err, claim.ErrUnauthorizedAction):
		Forbidden(w, "Not authorized to act on this claim")
	case errors.Is(err, claim.ErrInvalidTransition):
		Conflict(w, "Claim is not in a state that permits this action")
	case errors.Is(err, claim.ErrStaleState):
		Conflict(w, "Claim was updated by another request, reload and retry")
	case errors.Is(err, claim.ErrRejectionReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, claim.ErrUnknownClaimType):
		BadRequest(w, "Unknown claim type", nil)
	case errors.Is(err, claim.ErrUnknownStatus):
		BadRequest(w, "Unknown claim status", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, user.ErrPermissionRequired):
		Forbidden(w, "Insufficient permissions")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
