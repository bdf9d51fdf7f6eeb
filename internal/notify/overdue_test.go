package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagold/nti-admin/internal/notify"
	"github.com/hamagold/nti-admin/internal/store/inmem"
	"github.com/hamagold/nti-admin/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func seedStudent(t *testing.T, st *inmem.Store, name string, total, paid int64, lastPayment time.Time) {
	t.Helper()
	student := models.Student{
		FirstName:    name,
		LastName:     "Test",
		Code:         "NTI-NET-01-" + name,
		Year:         1,
		TotalFee:     decimal.NewFromInt(total),
		PaidAmount:   decimal.NewFromInt(paid),
		RegisteredAt: daysAgo(400),
	}
	if paid > 0 {
		student.Payments = []models.Payment{{
			Amount: decimal.NewFromInt(paid),
			PaidAt: lastPayment,
		}}
	}
	require.NoError(t, st.EnrollStudent(context.Background(), &student, nil))
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, notify.SeverityLow, notify.BandFor(50))
	assert.Equal(t, notify.SeverityLow, notify.BandFor(60))
	assert.Equal(t, notify.SeverityMedium, notify.BandFor(61))
	assert.Equal(t, notify.SeverityMedium, notify.BandFor(90))
	assert.Equal(t, notify.SeverityHigh, notify.BandFor(91))
	assert.Equal(t, notify.SeverityHigh, notify.BandFor(365))
}

func TestOverdueStudents(t *testing.T) {
	ctx := context.Background()
	st := inmem.New()
	d := notify.NewDeriver(st)

	seedStudent(t, st, "stale", 1_000_000, 100_000, daysAgo(95))
	seedStudent(t, st, "medium", 1_000_000, 100_000, daysAgo(70))
	seedStudent(t, st, "edge", 1_000_000, 100_000, daysAgo(60))
	seedStudent(t, st, "fresh", 1_000_000, 100_000, daysAgo(10))
	seedStudent(t, st, "settled", 1_000_000, 1_000_000, daysAgo(200))

	out, err := d.OverdueStudents(ctx, now)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Sorted by staleness, most overdue first.
	assert.Equal(t, "stale", out[0].Student.FirstName)
	assert.Equal(t, notify.SeverityHigh, out[0].Severity)
	assert.Equal(t, 95, out[0].DaysSincePayment)

	assert.Equal(t, "medium", out[1].Student.FirstName)
	assert.Equal(t, notify.SeverityMedium, out[1].Severity)

	// Exactly 60 days sits below the medium band boundary.
	assert.Equal(t, "edge", out[2].Student.FirstName)
	assert.Equal(t, notify.SeverityLow, out[2].Severity)

	for _, o := range out {
		assert.True(t, o.Debt.Equal(decimal.NewFromInt(900_000)))
	}
}

func TestOverdueUsesRegistrationWhenUnpaid(t *testing.T) {
	ctx := context.Background()
	st := inmem.New()
	d := notify.NewDeriver(st)

	// Never paid anything: staleness counts from enrollment.
	seedStudent(t, st, "silent", 1_000_000, 0, time.Time{})

	out, err := d.OverdueStudents(ctx, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 400, out[0].DaysSincePayment)
	assert.Equal(t, notify.SeverityHigh, out[0].Severity)
}

func TestThresholdSetting(t *testing.T) {
	ctx := context.Background()
	st := inmem.New()
	d := notify.NewDeriver(st)

	assert.Equal(t, notify.DefaultThresholdDays, d.ThresholdDays(ctx))

	require.NoError(t, st.PutSetting(ctx, models.SettingNotificationDays, "70"))
	assert.Equal(t, 70, d.ThresholdDays(ctx))

	seedStudent(t, st, "sixty", 1_000_000, 100_000, daysAgo(65))
	out, err := d.OverdueStudents(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, out)

	// Malformed values fall back to the default.
	require.NoError(t, st.PutSetting(ctx, models.SettingNotificationDays, "soon"))
	assert.Equal(t, notify.DefaultThresholdDays, d.ThresholdDays(ctx))
	require.NoError(t, st.PutSetting(ctx, models.SettingNotificationDays, "-5"))
	assert.Equal(t, notify.DefaultThresholdDays, d.ThresholdDays(ctx))
}

func TestInclusionIsAtLeastThreshold(t *testing.T) {
	ctx := context.Background()
	st := inmem.New()
	d := notify.NewDeriver(st)

	seedStudent(t, st, "onedge", 1_000_000, 100_000, daysAgo(notify.DefaultThresholdDays))
	seedStudent(t, st, "under", 1_000_000, 100_000, daysAgo(notify.DefaultThresholdDays-1))

	out, err := d.OverdueStudents(ctx, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "onedge", out[0].Student.FirstName)
}
