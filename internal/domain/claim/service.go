package claim

import "context"

type ClaimService interface {
	Submit(ctx context.Context, req SubmitClaimRequest) (ClaimResponse, error)
	ResolveActions(ctx context.Context, userID string, claimID string) (ActionSet, error)
	Approve(ctx context.Context, claimID string, userID string) (ClaimResponse, error)
	Reject(ctx context.Context, claimID string, userID string, reason string) (ClaimResponse, error)
	List(ctx context.Context, claimType Type, tab Tab, criteria FilterCriteria, userID string) ([]ClaimResponse, error)
	Summarize(ctx context.Context, claimType Type, criteria FilterCriteria) ([]SummaryRow, error)
	GetPolicy(ctx context.Context, claimType Type) (PolicyResponse, error)
}
