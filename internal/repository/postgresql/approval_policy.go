package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) claim.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

func (r *policyRepositoryImpl) GetByType(ctx context.Context, claimType claim.Type) (claim.ApprovalPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT claim_type, COALESCE(first_level_approver_id, ''), second_level_approver_id,
		       created_at, updated_at
		FROM approval_policies
		WHERE claim_type = $1
	`

	var policy claim.ApprovalPolicy
	var rawType string
	err := q.QueryRow(ctx, query, string(claimType)).Scan(
		&rawType,
		&policy.FirstLevelApproverID,
		&policy.SecondLevelApproverID,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.ApprovalPolicy{}, claim.ErrPolicyNotFound
		}
		return claim.ApprovalPolicy{}, err
	}

	policy.ClaimType, err = claim.ParseType(rawType)
	if err != nil {
		return claim.ApprovalPolicy{}, err
	}
	return policy, nil
}
