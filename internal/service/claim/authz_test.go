package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
)

func TestResolveActions_PendingClaim(t *testing.T) {
	pol := twoLevelPolicy()
	rec := pendingClaim()

	first := testEmployee(firstApproverID)
	assert.Equal(t, claim.ActionSet{CanApprove: true, CanReject: true}, ResolveActions(pol, &first, rec))

	second := testEmployee(secondApproverID)
	assert.Equal(t, claim.ActionSet{}, ResolveActions(pol, &second, rec))

	owner := testEmployee(ownerID)
	assert.Equal(t, claim.ActionSet{}, ResolveActions(pol, &owner, rec))
}

func TestResolveActions_FirstLevelApprovedClaim(t *testing.T) {
	pol := twoLevelPolicy()
	rec := pendingClaim()
	rec.Status = claim.StatusFirstLevelApproved

	second := testEmployee(secondApproverID)
	assert.Equal(t, claim.ActionSet{CanApprove: true, CanReject: true}, ResolveActions(pol, &second, rec))

	first := testEmployee(firstApproverID)
	assert.Equal(t, claim.ActionSet{}, ResolveActions(pol, &first, rec))
}

func TestResolveActions_FailsClosed(t *testing.T) {
	rec := pendingClaim()
	first := testEmployee(firstApproverID)

	// nil actor
	assert.Equal(t, claim.ActionSet{}, ResolveActions(twoLevelPolicy(), nil, rec))

	// policy without a first-level approver grants nothing
	assert.Equal(t, claim.ActionSet{}, ResolveActions(claim.ApprovalPolicy{}, &first, rec))

	// terminal statuses grant nothing, even to designated approvers
	for _, status := range []claim.Status{claim.StatusApproved, claim.StatusRejected} {
		terminal := pendingClaim()
		terminal.Status = status
		assert.Equal(t, claim.ActionSet{}, ResolveActions(twoLevelPolicy(), &first, terminal))
	}
}

func TestResolveActions_StrandedAtSecondLevel(t *testing.T) {
	// A claim awaiting second approval under a policy that no longer has a
	// second approver is actionable by nobody.
	pol := singleLevelPolicy()
	rec := pendingClaim()
	rec.Status = claim.StatusFirstLevelApproved

	first := testEmployee(firstApproverID)
	assert.Equal(t, claim.ActionSet{}, ResolveActions(pol, &first, rec))
}

func TestHoldsApprovalRights(t *testing.T) {
	pol := twoLevelPolicy()

	first := testEmployee(firstApproverID)
	second := testEmployee(secondApproverID)
	owner := testEmployee(ownerID)

	assert.True(t, HoldsApprovalRights(pol, &first))
	assert.True(t, HoldsApprovalRights(pol, &second))
	assert.False(t, HoldsApprovalRights(pol, &owner))
	assert.False(t, HoldsApprovalRights(pol, nil))
	assert.False(t, HoldsApprovalRights(claim.ApprovalPolicy{}, &first))

	single := singleLevelPolicy()
	assert.True(t, HoldsApprovalRights(single, &first))
	assert.False(t, HoldsApprovalRights(single, &second))
}

func TestHoldsApprovalRights_EmptySecondApprover(t *testing.T) {
	empty := ""
	pol := claim.ApprovalPolicy{
		ClaimType:             claim.TypeOvertime,
		FirstLevelApproverID:  firstApproverID,
		SecondLevelApproverID: &empty,
	}

	var nobody employee.Employee
	assert.False(t, HoldsApprovalRights(pol, &nobody))
	assert.True(t, pol.SingleLevel())
}
