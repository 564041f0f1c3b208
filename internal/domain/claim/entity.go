package claim

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type discriminates the two claim variants sharing the approval workflow.
type Type string

const (
	TypeFinancial Type = "financial"
	TypeOvertime  Type = "overtime"
)

// ParseType normalizes a raw claim type string.
func ParseType(raw string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "financial":
		return TypeFinancial, nil
	case "overtime":
		return TypeOvertime, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClaimType, raw)
}

type Status string

const (
	StatusPending            Status = "pending"
	StatusFirstLevelApproved Status = "firstLevelApproved"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
)

// ParseStatus folds the mixed spellings found in stored data into the
// canonical set. Unknown strings error at the boundary so raw statuses never
// reach the transition engine.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	switch normalized {
	case "pending":
		return StatusPending, nil
	case "firstlevelapproved", "awaitingsecondapproval":
		return StatusFirstLevelApproved, nil
	case "approved", "secondlevelapproved":
		return StatusApproved, nil
	case "rejected", "firstlevelrejected":
		return StatusRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ClaimRecord is the claim entity shared by financial and overtime claims,
// discriminated by Type. Type-specific fields are zero-valued on the other
// variant.
type ClaimRecord struct {
	ID         string
	Type       Type
	EmployeeID string
	Status     Status

	// Financial: submitted claim amount. Overtime: calculated amount
	// derived from hours x rate at submission.
	Amount decimal.Decimal

	// ClaimDate is the date the claim pertains to, distinct from the audit
	// timestamps. Zero when the stored date could not be parsed.
	ClaimDate time.Time

	Particulars string

	// Financial detail
	PolicyName string
	Category   string

	// Overtime detail
	OvertimePolicyType string
	TotalHours         decimal.Decimal
	HourlyRate         decimal.Decimal
	StartTime          *string
	EndTime            *string

	// References into the external document store.
	SupportingDocuments []string

	FirstApprovedBy *string
	FirstApprovedAt *time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RelevantDate returns the date used for period filtering: the claim date
// for financial claims, the claim date with a created-at fallback for
// overtime. ok is false when no usable date exists, in which case the claim
// is excluded from date-bounded views.
func (c ClaimRecord) RelevantDate() (time.Time, bool) {
	if !c.ClaimDate.IsZero() {
		return c.ClaimDate, true
	}
	if c.Type == TypeOvertime && !c.CreatedAt.IsZero() {
		return c.CreatedAt, true
	}
	return time.Time{}, false
}

// CategoryLabel is the field the claim-type filter matches against:
// financial claims match on policy name or category, overtime claims on the
// overtime policy type.
func (c ClaimRecord) CategoryLabel() []string {
	if c.Type == TypeOvertime {
		return []string{c.OvertimePolicyType}
	}
	return []string{c.PolicyName, c.Category}
}

// FormatRM renders a monetary amount the way claim listings display it.
func FormatRM(d decimal.Decimal) string {
	return "RM " + d.StringFixed(2)
}
