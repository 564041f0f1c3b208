package claim

import "time"

// ApprovalPolicy designates the approvers for one claim type. It is written
// by system configuration and read-only to the approval engine.
type ApprovalPolicy struct {
	ClaimType             Type
	FirstLevelApproverID  string
	SecondLevelApproverID *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Valid reports whether the policy is complete enough to grant anyone
// approval rights. A policy without a first-level approver grants nothing.
func (p ApprovalPolicy) Valid() bool {
	return p.FirstLevelApproverID != ""
}

// SingleLevel reports whether the workflow has no second approval stage, in
// which case first-level approval finalizes the claim.
func (p ApprovalPolicy) SingleLevel() bool {
	return p.SecondLevelApproverID == nil || *p.SecondLevelApproverID == ""
}
