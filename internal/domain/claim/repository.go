package claim

import (
	"context"
	"time"
)

// StatusUpdate is a conditional transition write. Expected is the status the
// caller read before deciding; the repository must refuse the write when the
// stored status no longer matches and surface ErrStaleState.
type StatusUpdate struct {
	ID              string
	Expected        Status
	Next            Status
	ActorEmployeeID string
	Reason          *string
	At              time.Time
}

// ClaimRepository - interface for the claims table
type ClaimRepository interface {
	Create(ctx context.Context, record ClaimRecord) (ClaimRecord, error)
	GetByID(ctx context.Context, id string) (ClaimRecord, error)
	ListByType(ctx context.Context, claimType Type) ([]ClaimRecord, error)
	UpdateStatus(ctx context.Context, update StatusUpdate) error
}

// PolicyRepository - interface for the approval_policies table. Policies are
// written by system configuration; the engine only reads them.
type PolicyRepository interface {
	GetByType(ctx context.Context, claimType Type) (ApprovalPolicy, error)
}
