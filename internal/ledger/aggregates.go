// nti-admin/internal/ledger/aggregates.go

package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/perm"
)

// Summary is the institute-wide financial picture. Everything here is
// recomputed from current state on every call; there is no cache to go
// stale.
type Summary struct {
	ExpectedFees decimal.Decimal `json:"expectedFees"`
	Collected    decimal.Decimal `json:"collected"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Expenses     decimal.Decimal `json:"expenses"`
	SalariesPaid decimal.Decimal `json:"salariesPaid"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	StudentCount int             `json:"studentCount"`
	StaffCount   int             `json:"staffCount"`
}

// DepartmentSummary is the per-department slice of the fee aggregates.
type DepartmentSummary struct {
	DepartmentID uint            `json:"departmentId"`
	Name         string          `json:"name"`
	ExpectedFees decimal.Decimal `json:"expectedFees"`
	Collected    decimal.Decimal `json:"collected"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	StudentCount int             `json:"studentCount"`
}

// Summarize computes the global aggregates. salaryYear selects which
// calendar year's salary payments count against the result.
func (e *Engine) Summarize(ctx context.Context, actor Actor, salaryYear int) (Summary, error) {
	if err := e.authorize(ctx, actor, perm.PermViewReports); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		ExpectedFees: decimal.Zero,
		Collected:    decimal.Zero,
		Outstanding:  decimal.Zero,
		Expenses:     decimal.Zero,
		SalariesPaid: decimal.Zero,
	}

	students, err := e.store.Students(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.StudentCount = len(students)
	for _, s := range students {
		for _, yp := range s.YearPayments {
			sum.ExpectedFees = sum.ExpectedFees.Add(yp.TotalFee)
			sum.Collected = sum.Collected.Add(yp.PaidAmount)
			if debt := yp.TotalFee.Sub(yp.PaidAmount); debt.IsPositive() {
				sum.Outstanding = sum.Outstanding.Add(debt)
			}
		}
	}

	expenses, err := e.store.Expenses(ctx)
	if err != nil {
		return Summary{}, err
	}
	for _, ex := range expenses {
		sum.Expenses = sum.Expenses.Add(ex.Amount)
	}

	staff, err := e.store.StaffList(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.StaffCount = len(staff)

	salaries, err := e.store.SalariesInYear(ctx, salaryYear)
	if err != nil {
		return Summary{}, err
	}
	for _, p := range salaries {
		sum.SalariesPaid = sum.SalariesPaid.Add(p.Amount)
	}

	sum.NetProfit = sum.Collected.Sub(sum.Expenses).Sub(sum.SalariesPaid)
	return sum, nil
}

// SummarizeDepartments computes the fee aggregates per department.
// Students whose department was deleted are grouped under id 0.
func (e *Engine) SummarizeDepartments(ctx context.Context, actor Actor) ([]DepartmentSummary, error) {
	if err := e.authorize(ctx, actor, perm.PermViewReports); err != nil {
		return nil, err
	}

	students, err := e.store.Students(ctx)
	if err != nil {
		return nil, err
	}
	byDep := make(map[uint]*DepartmentSummary)
	for _, s := range students {
		var depID uint
		name := "unassigned"
		if s.DepartmentID != nil {
			depID = *s.DepartmentID
			if s.Department != nil {
				name = s.Department.Name
			}
		}
		agg, ok := byDep[depID]
		if !ok {
			agg = &DepartmentSummary{
				DepartmentID: depID,
				Name:         name,
				ExpectedFees: decimal.Zero,
				Collected:    decimal.Zero,
				Outstanding:  decimal.Zero,
			}
			byDep[depID] = agg
		}
		agg.StudentCount++
		for _, yp := range s.YearPayments {
			agg.ExpectedFees = agg.ExpectedFees.Add(yp.TotalFee)
			agg.Collected = agg.Collected.Add(yp.PaidAmount)
			if debt := yp.TotalFee.Sub(yp.PaidAmount); debt.IsPositive() {
				agg.Outstanding = agg.Outstanding.Add(debt)
			}
		}
	}

	out := make([]DepartmentSummary, 0, len(byDep))
	for _, agg := range byDep {
		out = append(out, *agg)
	}
	return out, nil
}
