package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/pkg/database"
)

type claimRepositoryImpl struct {
	db *database.DB
}

func NewClaimRepository(db *database.DB) claim.ClaimRepository {
	return &claimRepositoryImpl{db: db}
}

const claimColumns = `
	c.id, c.claim_type, c.employee_id, c.status,
	COALESCE(c.amount, 0), c.claim_date,
	COALESCE(c.particulars, ''), COALESCE(c.policy_name, ''), COALESCE(c.category, ''),
	COALESCE(c.overtime_policy_type, ''), COALESCE(c.total_hours, 0), COALESCE(c.hourly_rate, 0),
	c.start_time, c.end_time,
	c.supporting_documents,
	c.first_approved_by, c.first_approved_at,
	c.approved_by, c.approved_at,
	c.rejected_by, c.rejected_at, c.rejection_reason,
	c.created_at, c.updated_at
`

func (r *claimRepositoryImpl) Create(ctx context.Context, record claim.ClaimRecord) (claim.ClaimRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO claims (
			id, claim_type, employee_id, status, amount, claim_date,
			particulars, policy_name, category,
			overtime_policy_type, total_hours, hourly_rate, start_time, end_time,
			supporting_documents,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12, $13,
			$14,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		string(record.Type), record.EmployeeID, string(record.Status), record.Amount, nullableDate(record.ClaimDate),
		record.Particulars, record.PolicyName, record.Category,
		record.OvertimePolicyType, record.TotalHours, record.HourlyRate, record.StartTime, record.EndTime,
		record.SupportingDocuments,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return claim.ClaimRecord{}, err
	}

	return record, nil
}

func (r *claimRepositoryImpl) GetByID(ctx context.Context, id string) (claim.ClaimRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + claimColumns + ` FROM claims c WHERE c.id = $1`

	record, err := scanClaim(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.ClaimRecord{}, claim.ErrClaimNotFound
		}
		return claim.ClaimRecord{}, err
	}
	return record, nil
}

func (r *claimRepositoryImpl) ListByType(ctx context.Context, claimType claim.Type) ([]claim.ClaimRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + claimColumns + ` FROM claims c WHERE c.claim_type = $1 ORDER BY c.created_at DESC`

	rows, err := q.Query(ctx, query, string(claimType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []claim.ClaimRecord
	for rows.Next() {
		record, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateStatus applies the transition conditionally on the expected prior
// status so two concurrent decisions on the same claim cannot both succeed.
func (r *claimRepositoryImpl) UpdateStatus(ctx context.Context, update claim.StatusUpdate) error {
	q := GetQuerier(ctx, r.db)

	var query string
	args := []interface{}{update.ID, string(update.Next), string(update.Expected), update.ActorEmployeeID, update.At}

	switch update.Next {
	case claim.StatusFirstLevelApproved:
		query = `
			UPDATE claims
			SET status = $2, first_approved_by = $4, first_approved_at = $5, updated_at = NOW()
			WHERE id = $1 AND status = $3
		`
	case claim.StatusApproved:
		query = `
			UPDATE claims
			SET status = $2, approved_by = $4, approved_at = $5, updated_at = NOW()
			WHERE id = $1 AND status = $3
		`
	case claim.StatusRejected:
		query = `
			UPDATE claims
			SET status = $2, rejected_by = $4, rejected_at = $5, rejection_reason = $6, updated_at = NOW()
			WHERE id = $1 AND status = $3
		`
		args = append(args, update.Reason)
	default:
		return fmt.Errorf("%w: cannot persist status %q", claim.ErrInvalidTransition, update.Next)
	}

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 1 {
		return nil
	}

	// Zero rows: either the claim is gone or its status moved under us.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM claims WHERE id = $1)`, update.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return claim.ErrClaimNotFound
	}
	return claim.ErrStaleState
}

func scanClaim(row pgx.Row) (claim.ClaimRecord, error) {
	var record claim.ClaimRecord
	var rawType, rawStatus string
	var claimDate *time.Time

	err := row.Scan(
		&record.ID,
		&rawType,
		&record.EmployeeID,
		&rawStatus,
		&record.Amount,
		&claimDate,
		&record.Particulars,
		&record.PolicyName,
		&record.Category,
		&record.OvertimePolicyType,
		&record.TotalHours,
		&record.HourlyRate,
		&record.StartTime,
		&record.EndTime,
		&record.SupportingDocuments,
		&record.FirstApprovedBy,
		&record.FirstApprovedAt,
		&record.ApprovedBy,
		&record.ApprovedAt,
		&record.RejectedBy,
		&record.RejectedAt,
		&record.RejectionReason,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return claim.ClaimRecord{}, err
	}

	// Stored statuses carry legacy spellings; normalize before anything
	// downstream sees them.
	record.Type, err = claim.ParseType(rawType)
	if err != nil {
		return claim.ClaimRecord{}, err
	}
	record.Status, err = claim.ParseStatus(rawStatus)
	if err != nil {
		return claim.ClaimRecord{}, err
	}
	if claimDate != nil {
		record.ClaimDate = *claimDate
	}

	return record, nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
