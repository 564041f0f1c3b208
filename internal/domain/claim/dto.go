package claim

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/utamahr/claims-backend-go/internal/pkg/validator"
)

// SubmitClaimRequest represents a new financial or overtime claim
// application. EmployeeID is taken from the access token, never from the
// request body.
type SubmitClaimRequest struct {
	EmployeeID string `json:"-"`

	ClaimType   string `json:"claim_type"`
	ClaimDate   string `json:"claim_date"`
	Particulars string `json:"particulars"`

	// Financial fields
	Amount     string `json:"amount,omitempty"`
	PolicyName string `json:"policy_name,omitempty"`
	Category   string `json:"category,omitempty"`

	// Overtime fields
	OvertimePolicyType string  `json:"overtime_policy_type,omitempty"`
	TotalHours         string  `json:"total_hours,omitempty"`
	HourlyRate         string  `json:"hourly_rate,omitempty"`
	StartTime          *string `json:"start_time,omitempty"`
	EndTime            *string `json:"end_time,omitempty"`

	SupportingDocuments []string `json:"supporting_documents,omitempty"`
}

func (r *SubmitClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	claimType, typeErr := ParseType(r.ClaimType)
	if typeErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_type",
			Message: "claim_type must be financial or overtime",
		})
	}

	if validator.IsEmpty(r.ClaimDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_date",
			Message: "claim_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.ClaimDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "claim_date",
			Message: "claim_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Particulars) {
		errs = append(errs, validator.ValidationError{
			Field:   "particulars",
			Message: "particulars is required",
		})
	}

	switch claimType {
	case TypeFinancial:
		if validator.IsEmpty(r.Amount) {
			errs = append(errs, validator.ValidationError{
				Field:   "amount",
				Message: "amount is required",
			})
		} else if !validator.IsPositiveAmount(r.Amount) {
			errs = append(errs, validator.ValidationError{
				Field:   "amount",
				Message: "amount must be a positive decimal",
			})
		}
	case TypeOvertime:
		if !validator.IsPositiveAmount(r.TotalHours) {
			errs = append(errs, validator.ValidationError{
				Field:   "total_hours",
				Message: "total_hours must be a positive decimal",
			})
		}
		if !validator.IsPositiveAmount(r.HourlyRate) {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_rate",
				Message: "hourly_rate must be a positive decimal",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RejectClaimRequest carries the mandatory rejection reason.
type RejectClaimRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ActionSet reports what the current user may do with a claim.
type ActionSet struct {
	CanApprove bool `json:"can_approve"`
	CanReject  bool `json:"can_reject"`
}

// ClaimResponse represents claim data in API responses.
type ClaimResponse struct {
	ID           string `json:"id"`
	ClaimType    string `json:"claim_type"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Status       string `json:"status"`
	Amount       string `json:"amount"`
	AmountLabel  string `json:"amount_label"`
	ClaimDate    string `json:"claim_date,omitempty"`
	Particulars  string `json:"particulars"`

	PolicyName string `json:"policy_name,omitempty"`
	Category   string `json:"category,omitempty"`

	OvertimePolicyType string  `json:"overtime_policy_type,omitempty"`
	TotalHours         string  `json:"total_hours,omitempty"`
	StartTime          *string `json:"start_time,omitempty"`
	EndTime            *string `json:"end_time,omitempty"`

	SupportingDocuments []string `json:"supporting_documents,omitempty"`

	RejectionReason *string `json:"rejection_reason,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewClaimResponse maps a ClaimRecord to its API shape. name may be empty
// when the owning employee could not be resolved.
func NewClaimResponse(c ClaimRecord, name string) ClaimResponse {
	resp := ClaimResponse{
		ID:                  c.ID,
		ClaimType:           string(c.Type),
		EmployeeID:          c.EmployeeID,
		EmployeeName:        name,
		Status:              string(c.Status),
		Amount:              c.Amount.StringFixed(2),
		AmountLabel:         FormatRM(c.Amount),
		Particulars:         c.Particulars,
		PolicyName:          c.PolicyName,
		Category:            c.Category,
		OvertimePolicyType:  c.OvertimePolicyType,
		StartTime:           c.StartTime,
		EndTime:             c.EndTime,
		SupportingDocuments: c.SupportingDocuments,
		RejectionReason:     c.RejectionReason,
		ApprovedBy:          c.ApprovedBy,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
	}
	if !c.ClaimDate.IsZero() {
		resp.ClaimDate = c.ClaimDate.Format("2006-01-02")
	}
	if c.Type == TypeOvertime && !c.TotalHours.Equal(decimal.Zero) {
		resp.TotalHours = c.TotalHours.String()
	}
	if c.ApprovedAt != nil {
		formatted := c.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &formatted
	}
	return resp
}

// SummaryRow is the per-employee rollup displayed on the summary tab.
type SummaryRow struct {
	EmployeeID       string `json:"employee_id"`
	Name             string `json:"name"`
	PendingClaim     string `json:"pending_claim"`
	ApprovedClaim    string `json:"approved_claim"`
	TotalAmountClaim string `json:"total_amount_claim"`
}

// PolicyResponse represents an approval policy in API responses.
type PolicyResponse struct {
	ClaimType             string  `json:"claim_type"`
	FirstLevelApproverID  string  `json:"first_level_approver_id"`
	SecondLevelApproverID *string `json:"second_level_approver_id,omitempty"`
}

func NewPolicyResponse(p ApprovalPolicy) PolicyResponse {
	return PolicyResponse{
		ClaimType:             string(p.ClaimType),
		FirstLevelApproverID:  p.FirstLevelApproverID,
		SecondLevelApproverID: p.SecondLevelApproverID,
	}
}
