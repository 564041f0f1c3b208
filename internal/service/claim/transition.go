package claim

import (
	"strings"

	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Transition validates an approve/reject action against the claim's current
// status and the actor's standing in the policy, and returns the next
// status. It never mutates the record; persisting the result is the
// caller's job, conditional on the status it read.
//
// Pending -> FirstLevelApproved (two-level policy) or Approved (single-level)
// Pending -> Rejected
// FirstLevelApproved -> Approved | Rejected
// Approved/Rejected -> no transition
func Transition(record claim.ClaimRecord, action Action, actor employee.Employee, pol claim.ApprovalPolicy, reason string) (claim.Status, error) {
	if record.Status.IsTerminal() {
		return "", claim.ErrInvalidTransition
	}

	actions := ResolveActions(pol, &actor, record)

	switch action {
	case ActionApprove:
		if !actions.CanApprove {
			return "", claim.ErrUnauthorizedAction
		}
		if record.Status == claim.StatusPending && !pol.SingleLevel() {
			return claim.StatusFirstLevelApproved, nil
		}
		return claim.StatusApproved, nil

	case ActionReject:
		if !actions.CanReject {
			return "", claim.ErrUnauthorizedAction
		}
		if strings.TrimSpace(reason) == "" {
			return "", claim.ErrRejectionReasonRequired
		}
		return claim.StatusRejected, nil
	}

	return "", claim.ErrInvalidTransition
}
