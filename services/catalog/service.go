// Package catalog holds the section and course operations of the back-office
// and the public catalog reads.
package catalog

import (
	"context"
	"database/sql"

	"rplsite/revalidate"
	"rplsite/validators"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Service runs catalog mutations inside transactions and notifies page
// caches once they commit.
type Service struct {
	db       *gorm.DB
	txOpts   *sql.TxOptions
	notifier revalidate.Notifier
}

// NewService returns a catalog service. txOpts may be nil for the driver's
// default isolation; notifier may be nil to skip cache revalidation.
func NewService(db *gorm.DB, txOpts *sql.TxOptions, notifier revalidate.Notifier) *Service {
	if notifier == nil {
		notifier = revalidate.Nop{}
	}
	return &Service{db: db, txOpts: txOpts, notifier: notifier}
}

func (s *Service) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.db.WithContext(ctx)
	if s.txOpts != nil {
		return db.Transaction(fn, s.txOpts)
	}
	return db.Transaction(fn)
}

func validate(in any) error {
	if fields := validators.Struct(in); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// linkFree fails with ErrLinkTaken when a row of T already uses link.
func linkFree[T any](tx *gorm.DB, link string) error {
	var n int64
	if err := tx.Model(new(T)).Where("link = ?", link).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrLinkTaken
	}
	return nil
}

func notFound(err error, kind error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kind
	}
	return err
}

func sectionTarget(link string) revalidate.Target {
	return revalidate.Target{
		Tags:  []string{"sections", "section:" + link},
		Paths: []string{"/", "/courses", "/courses/" + link},
	}
}

func courseTarget(sectionLink, courseLink string) revalidate.Target {
	return revalidate.Target{
		Tags:  []string{"sections", "courses", "section:" + sectionLink, "course:" + courseLink},
		Paths: []string{"/courses/" + sectionLink, "/courses/" + sectionLink + "/" + courseLink},
	}
}

func merge(targets ...revalidate.Target) revalidate.Target {
	var out revalidate.Target
	seen := map[string]bool{}
	for _, t := range targets {
		for _, tag := range t.Tags {
			if !seen["t:"+tag] {
				seen["t:"+tag] = true
				out.Tags = append(out.Tags, tag)
			}
		}
		for _, path := range t.Paths {
			if !seen["p:"+path] {
				seen["p:"+path] = true
				out.Paths = append(out.Paths, path)
			}
		}
	}
	return out
}
