package claim

import (
	"strings"
	"time"

	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
)

// tabStatuses is the base status filter each tab applies before user
// criteria. Approval lists actionable claims, Report lists terminal ones,
// Summary everything not rejected.
var tabStatuses = map[claim.Tab][]claim.Status{
	claim.TabApproval: {claim.StatusPending, claim.StatusFirstLevelApproved},
	claim.TabReport:   {claim.StatusApproved, claim.StatusRejected},
	claim.TabSummary:  {claim.StatusPending, claim.StatusFirstLevelApproved, claim.StatusApproved},
}

// FilterTab keeps only the claims whose status belongs to the tab's base
// status set.
func FilterTab(records []claim.ClaimRecord, tab claim.Tab) []claim.ClaimRecord {
	allowed, ok := tabStatuses[tab]
	if !ok {
		return nil
	}
	out := make([]claim.ClaimRecord, 0, len(records))
	for _, rec := range records {
		for _, s := range allowed {
			if rec.Status == s {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// ApplyFilters intersects all criteria predicates over the claim slice.
// Predicates are order-independent; input order is preserved. dir resolves
// claim owners for the department and search predicates.
func ApplyFilters(records []claim.ClaimRecord, criteria claim.FilterCriteria, dir employee.Directory) []claim.ClaimRecord {
	out := make([]claim.ClaimRecord, 0, len(records))
	for _, rec := range records {
		if !matchDate(rec, criteria) {
			continue
		}
		if !matchDepartment(rec, criteria, dir) {
			continue
		}
		if criteria.RestrictsEmployee() && rec.EmployeeID != criteria.EmployeeID {
			continue
		}
		if !matchCategory(rec, criteria) {
			continue
		}
		if !matchSearch(rec, criteria, dir) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchDate(rec claim.ClaimRecord, criteria claim.FilterCriteria) bool {
	if criteria.DateFrom == nil && criteria.DateTo == nil {
		return true
	}
	relevant, ok := rec.RelevantDate()
	if !ok {
		// A claim whose date cannot be established is excluded from
		// date-bounded views rather than failing the whole filter.
		return false
	}
	day := toDay(relevant)
	if criteria.DateFrom != nil && day.Before(toDay(*criteria.DateFrom)) {
		return false
	}
	if criteria.DateTo != nil && day.After(toDay(*criteria.DateTo)) {
		return false
	}
	return true
}

// toDay truncates to calendar date so both bounds are inclusive.
func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func matchDepartment(rec claim.ClaimRecord, criteria claim.FilterCriteria, dir employee.Directory) bool {
	if !criteria.RestrictsDepartment() {
		return true
	}
	owner, ok := dir[rec.EmployeeID]
	if !ok {
		return false
	}
	return strings.EqualFold(owner.Department, criteria.Department)
}

func matchCategory(rec claim.ClaimRecord, criteria claim.FilterCriteria) bool {
	if !criteria.RestrictsCategory() {
		return true
	}
	for _, label := range rec.CategoryLabel() {
		if label != "" && strings.EqualFold(label, criteria.Category) {
			return true
		}
	}
	return false
}

func matchSearch(rec claim.ClaimRecord, criteria claim.FilterCriteria, dir employee.Directory) bool {
	term := strings.ToLower(strings.TrimSpace(criteria.Search))
	if term == "" {
		return true
	}
	if name, ok := dir.DisplayName(rec.EmployeeID); ok {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(rec.Particulars), term)
}
