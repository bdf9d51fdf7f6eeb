// Package notify derives the overdue-payment set. It is a pure
// projection over ledger state: nothing is persisted, no "sent" flag
// exists, and rerunning the query always reflects the live ledger.
package notify

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

// DefaultThresholdDays applies when no notification_days setting is
// stored.
const DefaultThresholdDays = 50

// Severity bands an overdue entry for presentation. The bands are
// strict greater-than: exactly 90 days is medium, exactly 60 is low.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Overdue is one student behind on payment.
type Overdue struct {
	Student          models.Student  `json:"student"`
	Debt             decimal.Decimal `json:"debt"`
	DaysSincePayment int             `json:"daysSincePayment"`
	Severity         Severity        `json:"severity"`
}

// Deriver recomputes the overdue set on demand.
type Deriver struct {
	store store.Store
}

func NewDeriver(st store.Store) *Deriver {
	return &Deriver{store: st}
}

// ThresholdDays reads the configured threshold, falling back to the
// default on missing or malformed settings.
func (d *Deriver) ThresholdDays(ctx context.Context) int {
	value, found, err := d.store.Setting(ctx, models.SettingNotificationDays)
	if err != nil || !found {
		return DefaultThresholdDays
	}
	days, err := strconv.Atoi(value)
	if err != nil || days <= 0 {
		return DefaultThresholdDays
	}
	return days
}

// BandFor returns the severity band for a day count.
func BandFor(days int) Severity {
	switch {
	case days > 90:
		return SeverityHigh
	case days > 60:
		return SeverityMedium
	}
	return SeverityLow
}

// OverdueStudents returns every student carrying a positive balance
// whose days since the last payment (or since registration when no
// payment exists) reach the threshold, sorted by staleness descending.
func (d *Deriver) OverdueStudents(ctx context.Context, now time.Time) ([]Overdue, error) {
	threshold := d.ThresholdDays(ctx)
	students, err := d.store.Students(ctx)
	if err != nil {
		return nil, err
	}

	var out []Overdue
	for _, s := range students {
		debt := s.Debt()
		if !debt.IsPositive() {
			continue
		}
		since := s.RegisteredAt
		if last, ok := s.LastPaymentAt(); ok {
			since = last
		}
		days := int(now.Sub(since).Hours() / 24)
		if days < threshold {
			continue
		}
		out = append(out, Overdue{
			Student:          s,
			Debt:             debt,
			DaysSincePayment: days,
			Severity:         BandFor(days),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DaysSincePayment > out[j].DaysSincePayment
	})
	return out, nil
}
