package claim

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
)

// Summarize groups an already filtered, non-rejected claim set by employee
// and computes the per-employee rollup. Totals are type-specific: financial
// totals cover every claim in the group (exposure regardless of approval
// state), overtime totals cover only approved-equivalent claims so pending
// overtime never shows up as a committed payroll liability.
//
// Groups whose employee cannot be resolved in the directory are dropped; an
// "Unknown Employee" row never appears in a summary.
func Summarize(records []claim.ClaimRecord, dir employee.Directory, claimType claim.Type) []claim.SummaryRow {
	type group struct {
		pending  decimal.Decimal
		total    decimal.Decimal
		approved int
		count    int
	}

	groups := make(map[string]*group)
	for _, rec := range records {
		g, ok := groups[rec.EmployeeID]
		if !ok {
			g = &group{}
			groups[rec.EmployeeID] = g
		}
		g.count++

		approvedEquivalent := rec.Status == claim.StatusApproved || rec.Status == claim.StatusFirstLevelApproved
		if approvedEquivalent {
			g.approved++
		}

		if rec.Status == claim.StatusPending {
			g.pending = g.pending.Add(rec.Amount)
		}

		if claimType == claim.TypeOvertime {
			if approvedEquivalent {
				g.total = g.total.Add(rec.Amount)
			}
		} else {
			g.total = g.total.Add(rec.Amount)
		}
	}

	rows := make([]claim.SummaryRow, 0, len(groups))
	for employeeID, g := range groups {
		name, ok := dir.DisplayName(employeeID)
		if !ok {
			continue
		}
		rows = append(rows, claim.SummaryRow{
			EmployeeID:       employeeID,
			Name:             name,
			PendingClaim:     claim.FormatRM(g.pending),
			ApprovedClaim:    ratio(g.approved, g.count),
			TotalAmountClaim: claim.FormatRM(g.total),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func ratio(approved, total int) string {
	return strconv.Itoa(approved) + "/" + strconv.Itoa(total)
}
