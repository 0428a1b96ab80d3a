// Package revalidate tells page caches that catalog data changed.
package revalidate

import (
	"context"
	"errors"
	"log"
)

// Target names the caches to mark stale, by logical tag and by page path.
type Target struct {
	Tags  []string `json:"tags"`
	Paths []string `json:"paths"`
}

// Empty reports whether the target names nothing.
func (t Target) Empty() bool {
	return len(t.Tags) == 0 && len(t.Paths) == 0
}

// Notifier marks caches stale. It never affects the data layer.
type Notifier interface {
	Revalidate(ctx context.Context, target Target) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Revalidate(context.Context, Target) error { return nil }

// Multi fans a notification out to every notifier, collecting failures.
type Multi []Notifier

func (m Multi) Revalidate(ctx context.Context, target Target) error {
	var errs []error
	for _, n := range m {
		if err := n.Revalidate(ctx, target); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Default is the notifier used by the catalog after each committed mutation.
var Default Notifier = Nop{}

// Notify sends target through n and only logs failures; a stale page must
// never fail a committed write.
func Notify(ctx context.Context, n Notifier, target Target) {
	if n == nil || target.Empty() {
		return
	}
	if err := n.Revalidate(ctx, target); err != nil {
		log.Printf("[REVALIDATE] tags=%v paths=%v: %v", target.Tags, target.Paths, err)
	}
}
