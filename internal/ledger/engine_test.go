package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagold/nti-admin/internal/audit"
	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/internal/store/inmem"
	"github.com/hamagold/nti-admin/models"
)

var (
	ctx        = context.Background()
	superadmin = ledger.Actor{Name: "root", Role: perm.RoleSuperadmin}
	viewer     = ledger.Actor{Name: "viewer", Role: perm.RoleLocalStaff}
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newTestEngine(t *testing.T) (*ledger.Engine, *inmem.Store, models.Department) {
	t.Helper()
	st := inmem.New()
	dep := st.AddDepartment(models.Department{
		Name:             "Networking",
		DefaultYearlyFee: amount(1_800_000),
	})
	resolver := perm.NewResolver(st, nil)
	recorder := audit.NewRecorder(st, nil)
	return ledger.NewEngine(st, resolver, recorder), st, dep
}

func enroll(t *testing.T, eng *ledger.Engine, dep models.Department) models.Student {
	t.Helper()
	student, err := eng.EnrollStudent(ctx, superadmin, ledger.EnrollInput{
		FirstName:    "Aram",
		LastName:     "Hassan",
		DepartmentID: dep.ID,
	})
	require.NoError(t, err)
	return student
}

func TestEnrollStudent(t *testing.T) {
	eng, st, dep := newTestEngine(t)

	student := enroll(t, eng, dep)
	assert.Equal(t, "NTI-NET-01-001", student.Code)
	assert.Equal(t, 1, student.Year)
	assert.True(t, student.TotalFee.Equal(amount(1_800_000)))
	assert.True(t, student.PaidAmount.IsZero())
	require.Len(t, student.YearPayments, 1)
	assert.Equal(t, 1, student.YearPayments[0].Year)
	assert.False(t, student.YearPayments[0].IsCompleted)

	// Sequence numbers advance per department and year.
	second := enroll(t, eng, dep)
	assert.Equal(t, "NTI-NET-01-002", second.Code)

	entries, err := st.ActivityEntries(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, models.ActivityEnrollment, entries[0].Category)
}

func TestEnrollStudentValidation(t *testing.T) {
	eng, _, dep := newTestEngine(t)

	_, err := eng.EnrollStudent(ctx, superadmin, ledger.EnrollInput{LastName: "Hassan", DepartmentID: dep.ID})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = eng.EnrollStudent(ctx, superadmin, ledger.EnrollInput{
		FirstName: "Aram", LastName: "Hassan", DepartmentID: dep.ID, Year: 6,
	})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = eng.EnrollStudent(ctx, superadmin, ledger.EnrollInput{
		FirstName: "Aram", LastName: "Hassan", DepartmentID: 999,
	})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestStudentCode(t *testing.T) {
	assert.Equal(t, "NTI-NET-01-007", ledger.StudentCode("Networking", 1, 7))
	assert.Equal(t, "NTI-IT-03-012", ledger.StudentCode("IT", 3, 12))
	assert.Equal(t, "NTI-SUR-05-100", ledger.StudentCode("surveying", 5, 100))
}

// Scenario: two half payments complete the year, then promotion picks
// up the department default fee and leaves the old row untouched.
func TestPaymentAndPromotionFlow(t *testing.T) {
	eng, st, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(900_000)})
	require.NoError(t, err)

	got, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(amount(900_000)))
	assert.False(t, got.YearPayments[0].IsCompleted)

	_, err = eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(900_000)})
	require.NoError(t, err)

	got, err = st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(amount(1_800_000)))
	assert.True(t, got.YearPayments[0].IsCompleted)

	promoted, err := eng.ProgressToNextYear(ctx, superadmin, student.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, promoted.Year)
	assert.True(t, promoted.TotalFee.Equal(amount(1_800_000)))
	assert.True(t, promoted.PaidAmount.IsZero())

	got, err = st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, got.YearPayments, 2)
	// The closed year stays exactly as it was.
	assert.True(t, got.YearPayments[0].IsCompleted)
	assert.True(t, got.YearPayments[0].PaidAmount.Equal(amount(1_800_000)))
	assert.Equal(t, 2, got.YearPayments[1].Year)
	assert.False(t, got.YearPayments[1].IsCompleted)
}

// Scenario: promotion is gated on full payment; a failed gate mutates
// nothing and leaves no audit entry.
func TestPromotionGate(t *testing.T) {
	eng, st, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(900_000)})
	require.NoError(t, err)
	before, err := st.ActivityEntries(ctx, 0)
	require.NoError(t, err)

	_, err = eng.ProgressToNextYear(ctx, superadmin, student.ID, nil)
	assert.ErrorIs(t, err, ledger.ErrPrecondition)

	got, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Year)
	assert.Len(t, got.YearPayments, 1)

	after, err := st.ActivityEntries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestPromotionStopsAtFinalYear(t *testing.T) {
	eng, _, dep := newTestEngine(t)
	student, err := eng.EnrollStudent(ctx, superadmin, ledger.EnrollInput{
		FirstName: "Sara", LastName: "Omar", DepartmentID: dep.ID, Year: 5,
	})
	require.NoError(t, err)

	_, err = eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(1_800_000)})
	require.NoError(t, err)

	_, err = eng.ProgressToNextYear(ctx, superadmin, student.ID, nil)
	assert.ErrorIs(t, err, ledger.ErrPrecondition)
}

func TestPromotionFeeFallback(t *testing.T) {
	eng, st, dep := newTestEngine(t)
	student := enroll(t, eng, dep)
	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(1_800_000)})
	require.NoError(t, err)

	// Explicit fee wins over the department default.
	fee := amount(2_000_000)
	promoted, err := eng.ProgressToNextYear(ctx, superadmin, student.ID, &fee)
	require.NoError(t, err)
	assert.True(t, promoted.TotalFee.Equal(fee))

	got, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, got.YearPayments[1].TotalFee.Equal(fee))
}

// A writer still holding a pre-mutation copy of the student must lose:
// the version check rejects both payment and promotion writes.
func TestStaleVersionIsRejected(t *testing.T) {
	eng, st, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	stale, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)

	// A concurrent payment commits first and bumps the version.
	_, err = eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(900_000)})
	require.NoError(t, err)

	stale.PaidAmount = stale.PaidAmount.Add(amount(100_000))
	payment := models.Payment{StudentID: stale.ID, Amount: amount(100_000)}
	row := *stale.CurrentYearPayment()
	row.PaidAmount = row.PaidAmount.Add(amount(100_000))
	err = st.RecordPayment(ctx, &stale, &payment, &row, nil)
	assert.ErrorIs(t, err, store.ErrVersionConflict)

	stale.Year = 2
	next := models.YearPayment{StudentID: stale.ID, Year: 2, TotalFee: amount(1_800_000)}
	err = st.AdvanceYear(ctx, &stale, &next, nil)
	assert.ErrorIs(t, err, store.ErrVersionConflict)

	// The committed state is untouched by the losing writer.
	got, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Year)
	assert.True(t, got.PaidAmount.Equal(amount(900_000)))
	assert.Len(t, got.Payments, 1)
}

// When the department default fee is not positive, promotion carries
// the current fee forward into the next year.
func TestPromotionFeeCarryForward(t *testing.T) {
	eng, st, _ := newTestEngine(t)
	dep := st.AddDepartment(models.Department{Name: "Media", DefaultYearlyFee: decimal.Zero})

	fee := amount(1_500_000)
	student, err := eng.EnrollStudent(ctx, superadmin, ledger.EnrollInput{
		FirstName: "Lana", LastName: "Salim", DepartmentID: dep.ID, TotalFee: &fee,
	})
	require.NoError(t, err)

	_, err = eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: fee})
	require.NoError(t, err)

	promoted, err := eng.ProgressToNextYear(ctx, superadmin, student.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, promoted.Year)
	assert.True(t, promoted.TotalFee.Equal(fee))

	got, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, got.YearPayments, 2)
	assert.True(t, got.YearPayments[1].TotalFee.Equal(fee))
}

// A student row without a matching year ledger row is inconsistent
// state; a payment against it fails with a structured error.
func TestPaymentWithoutYearRow(t *testing.T) {
	eng, st, dep := newTestEngine(t)

	depID := dep.ID
	broken := models.Student{
		Code:         "NTI-NET-01-999",
		FirstName:    "Lone",
		LastName:     "Row",
		DepartmentID: &depID,
		Year:         1,
		TotalFee:     amount(1_000_000),
		PaidAmount:   decimal.Zero,
	}
	require.NoError(t, st.EnrollStudent(ctx, &broken, nil))

	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: broken.ID, Amount: amount(100)})
	assert.ErrorIs(t, err, ledger.ErrPrecondition)
}

func TestAddPaymentValidation(t *testing.T) {
	eng, _, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(0)})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(-100)})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	// Over-payment beyond the remaining balance is rejected outright.
	_, err = eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(1_800_001)})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

// Invariant: the student balance always equals the sum of payments
// made since the last promotion, and the year set has no gaps.
func TestPaymentAccumulation(t *testing.T) {
	eng, st, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	total := decimal.Zero
	for _, v := range []int64{100_000, 250_000, 400_000} {
		_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(v)})
		require.NoError(t, err)
		total = total.Add(amount(v))
	}

	got, err := st.StudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(total))

	sum := decimal.Zero
	for _, p := range got.Payments {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, got.PaidAmount.Equal(sum))

	years := make(map[int]bool)
	for _, yp := range got.YearPayments {
		assert.False(t, years[yp.Year], "duplicate year row %d", yp.Year)
		years[yp.Year] = true
	}
	for y := 1; y <= got.Year; y++ {
		assert.True(t, years[y], "missing year row %d", y)
	}
}

func TestEngineAuthorization(t *testing.T) {
	eng, _, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	// local_staff can view but not mutate.
	_, err := eng.AddPayment(ctx, viewer, ledger.PaymentInput{StudentID: student.ID, Amount: amount(100)})
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	_, err = eng.EnrollStudent(ctx, viewer, ledger.EnrollInput{FirstName: "X", LastName: "Y", DepartmentID: dep.ID})
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	// The zero actor is unauthenticated and can do nothing.
	_, err = eng.AddPayment(ctx, ledger.Actor{}, ledger.PaymentInput{StudentID: student.ID, Amount: amount(100)})
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	err = eng.DeleteStudent(ctx, viewer, student.ID)
	assert.ErrorIs(t, err, ledger.ErrForbidden)
}

func TestSalaryPayments(t *testing.T) {
	eng, st, _ := newTestEngine(t)

	staff, err := eng.AddStaff(ctx, superadmin, ledger.StaffInput{
		FullName:      "Dana Karim",
		Role:          models.StaffRoleEmployee,
		MonthlySalary: amount(750_000),
	})
	require.NoError(t, err)

	// Amount defaults to the configured monthly salary.
	payment, err := eng.AddSalaryPayment(ctx, superadmin, ledger.SalaryInput{
		StaffID: staff.ID, Month: 3, Year: 2026,
	})
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(amount(750_000)))

	// A month is payable exactly once.
	_, err = eng.AddSalaryPayment(ctx, superadmin, ledger.SalaryInput{
		StaffID: staff.ID, Month: 3, Year: 2026, Amount: amount(750_000),
	})
	assert.ErrorIs(t, err, ledger.ErrConflict)

	// Other months stay independently payable.
	_, err = eng.AddSalaryPayment(ctx, superadmin, ledger.SalaryInput{
		StaffID: staff.ID, Month: 4, Year: 2026,
	})
	require.NoError(t, err)

	_, err = eng.AddSalaryPayment(ctx, superadmin, ledger.SalaryInput{
		StaffID: staff.ID, Month: 13, Year: 2026,
	})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	salaries, err := st.SalariesInYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, salaries, 2)
}

func TestExpenses(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.AddExpense(ctx, superadmin, ledger.ExpenseInput{Category: "fuel", Amount: amount(50_000)})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = eng.AddExpense(ctx, superadmin, ledger.ExpenseInput{Category: models.ExpenseWater, Amount: amount(0)})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	expense, err := eng.AddExpense(ctx, superadmin, ledger.ExpenseInput{
		Category: models.ExpenseElectricity, Amount: amount(120_000), Note: "march bill",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseElectricity, expense.Category)
}

func TestSummarize(t *testing.T) {
	eng, _, dep := newTestEngine(t)
	student := enroll(t, eng, dep)

	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(600_000)})
	require.NoError(t, err)

	staff, err := eng.AddStaff(ctx, superadmin, ledger.StaffInput{
		FullName: "Dana Karim", Role: models.StaffRoleEmployee, MonthlySalary: amount(500_000),
	})
	require.NoError(t, err)
	_, err = eng.AddSalaryPayment(ctx, superadmin, ledger.SalaryInput{StaffID: staff.ID, Month: 1, Year: 2026})
	require.NoError(t, err)

	_, err = eng.AddExpense(ctx, superadmin, ledger.ExpenseInput{Category: models.ExpenseOther, Amount: amount(100_000)})
	require.NoError(t, err)

	sum, err := eng.Summarize(ctx, superadmin, 2026)
	require.NoError(t, err)
	assert.True(t, sum.ExpectedFees.Equal(amount(1_800_000)))
	assert.True(t, sum.Collected.Equal(amount(600_000)))
	assert.True(t, sum.Outstanding.Equal(amount(1_200_000)))
	assert.True(t, sum.Expenses.Equal(amount(100_000)))
	assert.True(t, sum.SalariesPaid.Equal(amount(500_000)))
	assert.True(t, sum.NetProfit.Equal(amount(0)))
	assert.Equal(t, 1, sum.StudentCount)

	_, err = eng.Summarize(ctx, ledger.Actor{Role: perm.RoleLocalStaff}, 2026)
	assert.ErrorIs(t, err, ledger.ErrForbidden)
}

func TestDeleteStudentCascades(t *testing.T) {
	eng, st, dep := newTestEngine(t)
	student := enroll(t, eng, dep)
	_, err := eng.AddPayment(ctx, superadmin, ledger.PaymentInput{StudentID: student.ID, Amount: amount(100_000)})
	require.NoError(t, err)

	require.NoError(t, eng.DeleteStudent(ctx, superadmin, student.ID))
	_, err = st.StudentByID(ctx, student.ID)
	assert.Error(t, err)
}
