package claim

import (
	"fmt"
	"strings"
	"time"
)

// FilterAll is the sentinel criteria value meaning "no restriction".
const FilterAll = "all"

// Tab identifies which consuming view a claim listing feeds; each tab pins
// its own base status filter before user criteria apply.
type Tab string

const (
	TabApproval Tab = "approval"
	TabReport   Tab = "report"
	TabSummary  Tab = "summary"
)

func ParseTab(raw string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "approval":
		return TabApproval, nil
	case "report":
		return TabReport, nil
	case "summary":
		return TabSummary, nil
	}
	return "", fmt.Errorf("unknown tab %q", raw)
}

// FilterCriteria is the explicit value object the filter pipeline consumes.
// Every field defaults to "no restriction".
type FilterCriteria struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Department string
	EmployeeID string
	Category   string
	Search     string
}

// restricts reports whether a select-style criteria field restricts at all.
func restricts(v string) bool {
	return v != "" && !strings.EqualFold(v, FilterAll)
}

// RestrictsDepartment reports whether the department criterion is narrowing.
func (fc FilterCriteria) RestrictsDepartment() bool { return restricts(fc.Department) }

// RestrictsEmployee reports whether the employee criterion is narrowing.
func (fc FilterCriteria) RestrictsEmployee() bool { return restricts(fc.EmployeeID) }

// RestrictsCategory reports whether the claim-type criterion is narrowing.
func (fc FilterCriteria) RestrictsCategory() bool { return restricts(fc.Category) }
