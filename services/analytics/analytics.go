// Package analytics computes the back-office dashboard counters.
package analytics

import (
	"context"
	"time"

	"rplsite/models"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LeadCounts counts lead submissions of every kind from a start time on
type LeadCounts struct {
	Eligibility int64 `json:"eligibility"`
	Contacts    int64 `json:"contacts"`
	Bookings    int64 `json:"bookings"`
	Total       int64 `json:"total"`
}

// Dashboard is the snapshot shown on the admin home page
type Dashboard struct {
	Sections int64            `json:"sections"`
	Courses  int64            `json:"courses"`
	Reviews  map[string]int64 `json:"reviews"` // by status
	Leads    struct {
		Today     LeadCounts `json:"today"`
		ThisWeek  LeadCounts `json:"thisWeek"`
		ThisMonth LeadCounts `json:"thisMonth"`
	} `json:"leads"`
	// paid revenue this month in cents, by currency
	RevenueThisMonth map[string]int64 `json:"revenueThisMonth"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}

// weeks start on Monday
var calendar = &now.Config{WeekStartDay: time.Monday}

// Collect builds the dashboard as seen at the given time
func Collect(ctx context.Context, db *gorm.DB, at time.Time) (*Dashboard, error) {
	db = db.WithContext(ctx)
	t := calendar.With(at)
	d := &Dashboard{GeneratedAt: at}

	if err := db.Model(&models.Section{}).Count(&d.Sections).Error; err != nil {
		return nil, errors.Wrap(err, "count sections")
	}
	if err := db.Model(&models.Course{}).Count(&d.Courses).Error; err != nil {
		return nil, errors.Wrap(err, "count courses")
	}

	var err error
	if d.Reviews, err = reviewsByStatus(db); err != nil {
		return nil, err
	}

	for _, r := range []struct {
		from time.Time
		into *LeadCounts
	}{
		{t.BeginningOfDay(), &d.Leads.Today},
		{t.BeginningOfWeek(), &d.Leads.ThisWeek},
		{t.BeginningOfMonth(), &d.Leads.ThisMonth},
	} {
		if *r.into, err = countLeads(db, r.from, at); err != nil {
			return nil, err
		}
	}

	if d.RevenueThisMonth, err = paidRevenue(db, t.BeginningOfMonth(), at); err != nil {
		return nil, err
	}
	return d, nil
}

func reviewsByStatus(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Review{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count reviews")
	}
	out := map[string]int64{
		models.ReviewStatusPending:  0,
		models.ReviewStatusApproved: 0,
		models.ReviewStatusRejected: 0,
	}
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func countLeads(db *gorm.DB, from, to time.Time) (LeadCounts, error) {
	var c LeadCounts
	for _, q := range []struct {
		model any
		into  *int64
	}{
		{&models.EligibilityCheck{}, &c.Eligibility},
		{&models.ContactResponse{}, &c.Contacts},
		{&models.Booking{}, &c.Bookings},
	} {
		if err := db.Model(q.model).Where("created_at >= ? AND created_at <= ?", from, to).Count(q.into).Error; err != nil {
			return c, errors.Wrap(err, "count leads")
		}
	}
	c.Total = c.Eligibility + c.Contacts + c.Bookings
	return c, nil
}

func paidRevenue(db *gorm.DB, from, to time.Time) (map[string]int64, error) {
	var rows []struct {
		Currency string
		Total    int64
	}
	err := db.Model(&models.Payment{}).
		Select("currency, SUM(amount_cents) AS total").
		Where("status = ? AND paid_at >= ? AND paid_at <= ?", models.PaymentStatusPaid, from, to).
		Group("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "sum revenue")
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Currency] = r.Total
	}
	return out, nil
}
