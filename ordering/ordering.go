// Package ordering keeps the position column of sibling rows dense.
//
// N siblings always hold the positions 1..N. Every function here expects to
// run inside a transaction owned by the caller, so a failed statement rolls
// back every shift made before it.
package ordering

import (
	"fmt"

	"gorm.io/gorm"
)

// Column is the position column shared by every ordered table.
const Column = "order_index"

// Item is a row that occupies a position among its siblings.
type Item interface {
	Key() string
	Position() int
	SetPosition(int)
}

// Scope restricts a query to one sibling set.
type Scope func(*gorm.DB) *gorm.DB

// All is the scope of tables ordered globally.
func All(db *gorm.DB) *gorm.DB { return db }

// Where scopes siblings to the rows whose column equals value.
func Where(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// RangeError reports a requested position outside the valid range.
type RangeError struct {
	Index int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d out of range [%d, %d]", e.Index, e.Min, e.Max)
}

// Count returns the number of siblings in scope.
func Count[T any](tx *gorm.DB, scope Scope) (int, error) {
	var n int64
	if err := tx.Model(new(T)).Scopes(scope).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// Insert creates row at position at, shifting every sibling at or after it
// up by one. at must be within [1, n+1].
func Insert[T any, P interface {
	*T
	Item
}](tx *gorm.DB, scope Scope, row P, at int) error {
	n, err := Count[T](tx, scope)
	if err != nil {
		return err
	}
	if at < 1 || at > n+1 {
		return &RangeError{Index: at, Min: 1, Max: n + 1}
	}

	if err := shift[T](tx, scope, 1, Column+" >= ?", at); err != nil {
		return err
	}
	row.SetPosition(at)
	return tx.Create(row).Error
}

// Move places row at position to. Siblings between the old and the new
// position shift by one toward the gap left behind. row must hold its
// committed position.
func Move[T any, P interface {
	*T
	Item
}](tx *gorm.DB, scope Scope, row P, to int) error {
	from := row.Position()
	if to == from {
		return nil
	}

	n, err := Count[T](tx, scope)
	if err != nil {
		return err
	}
	if to < 1 || to > n {
		return &RangeError{Index: to, Min: 1, Max: n}
	}

	if to < from {
		err = shift[T](tx, scope, 1, Column+" >= ? AND "+Column+" < ? AND id <> ?", to, from, row.Key())
	} else {
		err = shift[T](tx, scope, -1, Column+" > ? AND "+Column+" <= ? AND id <> ?", from, to, row.Key())
	}
	if err != nil {
		return err
	}

	row.SetPosition(to)
	return tx.Model(row).UpdateColumn(Column, to).Error
}

// Transfer moves row out of the from scope into position at of the to scope.
// The caller still has to persist whatever column places row in the new
// scope.
func Transfer[T any, P interface {
	*T
	Item
}](tx *gorm.DB, from, to Scope, row P, at int) error {
	m, err := Count[T](tx, to)
	if err != nil {
		return err
	}
	if at < 1 || at > m+1 {
		return &RangeError{Index: at, Min: 1, Max: m + 1}
	}

	if err := shift[T](tx, from, -1, Column+" > ? AND id <> ?", row.Position(), row.Key()); err != nil {
		return err
	}
	if err := shift[T](tx, to, 1, Column+" >= ?", at); err != nil {
		return err
	}

	row.SetPosition(at)
	return tx.Model(row).UpdateColumn(Column, at).Error
}

// Remove deletes row and closes the gap it leaves.
func Remove[T any, P interface {
	*T
	Item
}](tx *gorm.DB, scope Scope, row P) error {
	res := tx.Delete(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return shift[T](tx, scope, -1, Column+" > ?", row.Position())
}

func shift[T any](tx *gorm.DB, scope Scope, delta int, query string, args ...any) error {
	return tx.Model(new(T)).Scopes(scope).Where(query, args...).
		UpdateColumn(Column, gorm.Expr(Column+" + ?", delta)).Error
}
