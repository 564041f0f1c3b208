package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
	"github.com/utamahr/claims-backend-go/internal/pkg/database"
	"github.com/utamahr/claims-backend-go/internal/repository/postgresql"
)

type ClaimServiceImpl struct {
	db           *database.DB
	claimRepo    claim.ClaimRepository
	policyRepo   claim.PolicyRepository
	employeeRepo employee.EmployeeRepository
}

func NewClaimService(db *database.DB, claimRepo claim.ClaimRepository, policyRepo claim.PolicyRepository, employeeRepo employee.EmployeeRepository) claim.ClaimService {
	return &ClaimServiceImpl{
		db:           db,
		claimRepo:    claimRepo,
		policyRepo:   policyRepo,
		employeeRepo: employeeRepo,
	}
}

// withTx runs fn inside a database transaction. Unit tests inject fake
// repositories without a database handle; fn then runs directly.
func (s *ClaimServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// Submit files a new claim application in Pending status. Overtime amounts
// are derived from hours x rate at submission time.
func (s *ClaimServiceImpl) Submit(ctx context.Context, req claim.SubmitClaimRequest) (claim.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return claim.ClaimResponse{}, err
	}

	claimType, err := claim.ParseType(req.ClaimType)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return claim.ClaimResponse{}, fmt.Errorf("failed to resolve claim owner: %w", err)
	}

	claimDate, err := time.Parse("2006-01-02", req.ClaimDate)
	if err != nil {
		return claim.ClaimResponse{}, fmt.Errorf("failed to parse claim date: %w", err)
	}

	record := claim.ClaimRecord{
		Type:                claimType,
		EmployeeID:          emp.ID,
		Status:              claim.StatusPending,
		ClaimDate:           claimDate,
		Particulars:         req.Particulars,
		SupportingDocuments: req.SupportingDocuments,
	}

	switch claimType {
	case claim.TypeFinancial:
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return claim.ClaimResponse{}, fmt.Errorf("failed to parse amount: %w", err)
		}
		record.Amount = amount.Round(2)
		record.PolicyName = req.PolicyName
		record.Category = req.Category

	case claim.TypeOvertime:
		hours, err := decimal.NewFromString(req.TotalHours)
		if err != nil {
			return claim.ClaimResponse{}, fmt.Errorf("failed to parse total hours: %w", err)
		}
		rate, err := decimal.NewFromString(req.HourlyRate)
		if err != nil {
			return claim.ClaimResponse{}, fmt.Errorf("failed to parse hourly rate: %w", err)
		}
		record.TotalHours = hours
		record.HourlyRate = rate
		record.Amount = hours.Mul(rate).Round(2)
		record.OvertimePolicyType = req.OvertimePolicyType
		record.StartTime = req.StartTime
		record.EndTime = req.EndTime
	}

	created, err := s.claimRepo.Create(ctx, record)
	if err != nil {
		return claim.ClaimResponse{}, fmt.Errorf("failed to create claim: %w", err)
	}

	return claim.NewClaimResponse(created, emp.FullName), nil
}

// ResolveActions reports what the logged-in user may do with the claim.
// "No rights" is a valid outcome, not an error: a missing employee record or
// an incomplete policy resolves to {false, false}.
func (s *ClaimServiceImpl) ResolveActions(ctx context.Context, userID string, claimID string) (claim.ActionSet, error) {
	record, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return claim.ActionSet{}, fmt.Errorf("failed to get claim by ID: %w", err)
	}

	actor, pol, ok, err := s.resolveActor(ctx, userID, record.Type)
	if err != nil {
		return claim.ActionSet{}, err
	}
	if !ok {
		return claim.ActionSet{}, nil
	}

	return ResolveActions(pol, &actor, record), nil
}

// Approve advances the claim one approval stage. The status update is
// conditional on the status read here; a concurrent transition surfaces as
// ErrStaleState.
func (s *ClaimServiceImpl) Approve(ctx context.Context, claimID string, userID string) (claim.ClaimResponse, error) {
	return s.transition(ctx, claimID, userID, ActionApprove, "")
}

// Reject declines the claim with a mandatory reason.
func (s *ClaimServiceImpl) Reject(ctx context.Context, claimID string, userID string, reason string) (claim.ClaimResponse, error) {
	return s.transition(ctx, claimID, userID, ActionReject, reason)
}

func (s *ClaimServiceImpl) transition(ctx context.Context, claimID string, userID string, action Action, reason string) (claim.ClaimResponse, error) {
	record, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return claim.ClaimResponse{}, fmt.Errorf("failed to get claim by ID: %w", err)
	}

	if record.Status.IsTerminal() {
		return claim.ClaimResponse{}, claim.ErrInvalidTransition
	}

	actor, pol, ok, err := s.resolveActor(ctx, userID, record.Type)
	if err != nil {
		return claim.ClaimResponse{}, err
	}
	if !ok {
		return claim.ClaimResponse{}, claim.ErrUnauthorizedAction
	}

	next, err := Transition(record, action, actor, pol, reason)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	update := claim.StatusUpdate{
		ID:              record.ID,
		Expected:        record.Status,
		Next:            next,
		ActorEmployeeID: actor.ID,
		At:              time.Now(),
	}
	if action == ActionReject {
		update.Reason = &reason
	}

	var updated claim.ClaimRecord
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.UpdateStatus(txCtx, update); err != nil {
			return err
		}
		updated, err = s.claimRepo.GetByID(txCtx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to reload claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	name := ""
	if owner, err := s.employeeRepo.GetByID(ctx, updated.EmployeeID); err == nil {
		name = owner.FullName
	}
	return claim.NewClaimResponse(updated, name), nil
}

// resolveActor loads the acting employee and the claim type's policy.
// ok=false means the actor holds no standing at all (no employee record or
// no usable policy) without being an error condition.
func (s *ClaimServiceImpl) resolveActor(ctx context.Context, userID string, claimType claim.Type) (employee.Employee, claim.ApprovalPolicy, bool, error) {
	actor, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, claim.ApprovalPolicy{}, false, nil
		}
		return employee.Employee{}, claim.ApprovalPolicy{}, false, fmt.Errorf("failed to resolve acting employee: %w", err)
	}

	pol, err := s.policyRepo.GetByType(ctx, claimType)
	if err != nil {
		if errors.Is(err, claim.ErrPolicyNotFound) {
			return employee.Employee{}, claim.ApprovalPolicy{}, false, nil
		}
		return employee.Employee{}, claim.ApprovalPolicy{}, false, fmt.Errorf("failed to get approval policy: %w", err)
	}

	return actor, pol, true, nil
}

// List returns the tab's view of the claim set after base status filtering,
// the approval-tab authorization gate, and the user criteria.
func (s *ClaimServiceImpl) List(ctx context.Context, claimType claim.Type, tab claim.Tab, criteria claim.FilterCriteria, userID string) ([]claim.ClaimResponse, error) {
	records, err := s.claimRepo.ListByType(ctx, claimType)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	records = FilterTab(records, tab)

	if tab == claim.TabApproval {
		actor, pol, ok, err := s.resolveActor(ctx, userID, claimType)
		if err != nil {
			return nil, err
		}
		// No approval rights: an empty listing, not an unauthorized
		// error.
		if !ok || !HoldsApprovalRights(pol, &actor) {
			return []claim.ClaimResponse{}, nil
		}
	}

	records = ApplyFilters(records, criteria, dir)

	responses := make([]claim.ClaimResponse, 0, len(records))
	for _, rec := range records {
		name, _ := dir.DisplayName(rec.EmployeeID)
		responses = append(responses, claim.NewClaimResponse(rec, name))
	}
	return responses, nil
}

// Summarize rolls up the summary tab's claim set per employee.
func (s *ClaimServiceImpl) Summarize(ctx context.Context, claimType claim.Type, criteria claim.FilterCriteria) ([]claim.SummaryRow, error) {
	records, err := s.claimRepo.ListByType(ctx, claimType)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	records = FilterTab(records, claim.TabSummary)
	records = ApplyFilters(records, criteria, dir)

	return Summarize(records, dir, claimType), nil
}

func (s *ClaimServiceImpl) GetPolicy(ctx context.Context, claimType claim.Type) (claim.PolicyResponse, error) {
	pol, err := s.policyRepo.GetByType(ctx, claimType)
	if err != nil {
		return claim.PolicyResponse{}, fmt.Errorf("failed to get approval policy: %w", err)
	}
	return claim.NewPolicyResponse(pol), nil
}

func (s *ClaimServiceImpl) directory(ctx context.Context) (employee.Directory, error) {
	list, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employee.NewDirectory(list), nil
}
