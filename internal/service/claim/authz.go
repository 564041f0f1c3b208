package claim

import (
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
)

// ResolveActions decides what the actor may do with the claim at its current
// status. Pure function of its inputs; it fails closed: a nil actor, a
// malformed policy, or a terminal status all yield {false, false}.
func ResolveActions(pol claim.ApprovalPolicy, actor *employee.Employee, record claim.ClaimRecord) claim.ActionSet {
	if actor == nil || !pol.Valid() {
		return claim.ActionSet{}
	}

	isFirstLevel := actor.ID == pol.FirstLevelApproverID
	isSecondLevel := !pol.SingleLevel() && actor.ID == *pol.SecondLevelApproverID

	switch record.Status {
	case claim.StatusPending:
		return claim.ActionSet{CanApprove: isFirstLevel, CanReject: isFirstLevel}
	case claim.StatusFirstLevelApproved:
		// Without a configured second level nobody can act here; such
		// claims only exist when the policy lost its second approver
		// after the first approval.
		return claim.ActionSet{CanApprove: isSecondLevel, CanReject: isSecondLevel}
	}

	return claim.ActionSet{}
}

// HoldsApprovalRights reports whether the actor is designated at any level
// of the policy, independent of claim status. The approval tab uses this as
// its visibility gate.
func HoldsApprovalRights(pol claim.ApprovalPolicy, actor *employee.Employee) bool {
	if actor == nil || !pol.Valid() {
		return false
	}
	if actor.ID == pol.FirstLevelApproverID {
		return true
	}
	return !pol.SingleLevel() && actor.ID == *pol.SecondLevelApproverID
}
