package utils

import (
	"context"
	"database/sql"
	"log"

	"rplsite/models"
	"rplsite/ordering"
	"rplsite/revalidate"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func logAudit(format string, args ...interface{}) {
	log.Printf("[ORDERING-AUDIT] "+format, args...)
}

// AuditResult summarizes one audit run
type AuditResult struct {
	Scopes   int // scopes inspected
	Repaired int // scopes that were not dense
	Fixed    int // rows whose position was rewritten
}

// InitializeOrderingAudit schedules RunOrderingAudit on spec and starts the cron
func InitializeOrderingAudit(spec string, db *gorm.DB, txOpts *sql.TxOptions, notifier revalidate.Notifier) (*cron.Cron, error) {
	logAudit("Initializing ordering audit...")

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		logAudit("Running ordering audit...")
		result, err := RunOrderingAudit(context.Background(), db, txOpts, notifier)
		if err != nil {
			logAudit("Audit failed: %v", err)
			return
		}
		logAudit("Checked %d scopes, repaired %d, fixed %d rows", result.Scopes, result.Repaired, result.Fixed)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "schedule ordering audit %q", spec)
	}

	c.Start()
	logAudit("Ordering audit started - schedule %q", spec)
	return c, nil
}

// RunOrderingAudit checks the section order and the course order of every
// section, compacting each scope whose positions are not exactly 1..N.
func RunOrderingAudit(ctx context.Context, db *gorm.DB, txOpts *sql.TxOptions, notifier revalidate.Notifier) (AuditResult, error) {
	var result AuditResult
	db = db.WithContext(ctx)

	fixed, err := auditScope[models.Section](db, txOpts, ordering.All, "sections")
	if err != nil {
		return result, err
	}
	result.record(fixed)

	var sections []models.Section
	if err := db.Select("id", "link").Find(&sections).Error; err != nil {
		return result, errors.Wrap(err, "list sections")
	}
	target := revalidate.Target{}
	if fixed > 0 {
		target.Tags = append(target.Tags, "sections")
		target.Paths = append(target.Paths, "/", "/courses")
	}

	for _, s := range sections {
		fixed, err := auditScope[models.Course](db, txOpts, ordering.Where("section_id", s.ID), "courses of section "+s.Link)
		if err != nil {
			return result, err
		}
		result.record(fixed)
		if fixed > 0 {
			target.Tags = append(target.Tags, "courses", "section:"+s.Link)
			target.Paths = append(target.Paths, "/courses/"+s.Link)
		}
	}

	revalidate.Notify(ctx, notifier, target)
	return result, nil
}

func (r *AuditResult) record(fixed int) {
	r.Scopes++
	if fixed > 0 {
		r.Repaired++
		r.Fixed += fixed
	}
}

func auditScope[T any, P interface {
	*T
	ordering.Item
}](db *gorm.DB, txOpts *sql.TxOptions, scope ordering.Scope, name string) (int, error) {
	report, err := ordering.Check[T](db, scope)
	if err != nil {
		return 0, errors.Wrapf(err, "check %s", name)
	}
	if report.Dense() {
		return 0, nil
	}

	logAudit("%s not dense: count=%d duplicates=%v missing=%v outOfRange=%v",
		name, report.Count, report.Duplicates, report.Missing, report.OutOfRange)

	var opts []*sql.TxOptions
	if txOpts != nil {
		opts = append(opts, txOpts)
	}
	var fixed int
	err = db.Transaction(func(tx *gorm.DB) error {
		fixed, err = ordering.Compact[T, P](tx, scope)
		return err
	}, opts...)
	if err != nil {
		return 0, errors.Wrapf(err, "compact %s", name)
	}
	logAudit("%s compacted, %d rows moved", name, fixed)
	return fixed, nil
}
