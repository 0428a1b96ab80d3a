package ordering

import (
	"sort"

	"gorm.io/gorm"
)

// Report describes the positions found in one sibling scope.
type Report struct {
	Count      int
	Duplicates []int
	Missing    []int
	OutOfRange []int
}

// Dense reports whether the scope holds exactly the positions 1..Count.
func (r Report) Dense() bool {
	return len(r.Duplicates) == 0 && len(r.Missing) == 0 && len(r.OutOfRange) == 0
}

// Check inspects the positions of a scope without changing them.
func Check[T any](tx *gorm.DB, scope Scope) (Report, error) {
	var positions []int
	if err := tx.Model(new(T)).Scopes(scope).Pluck(Column, &positions).Error; err != nil {
		return Report{}, err
	}
	return inspect(positions), nil
}

func inspect(positions []int) Report {
	r := Report{Count: len(positions)}
	seen := make(map[int]int, len(positions))
	for _, p := range positions {
		seen[p]++
		if p < 1 || p > r.Count {
			r.OutOfRange = append(r.OutOfRange, p)
		}
	}
	for p, n := range seen {
		if n > 1 {
			r.Duplicates = append(r.Duplicates, p)
		}
	}
	for p := 1; p <= r.Count; p++ {
		if seen[p] == 0 {
			r.Missing = append(r.Missing, p)
		}
	}
	sort.Ints(r.Duplicates)
	sort.Ints(r.OutOfRange)
	return r
}

// Compact rewrites the positions of a scope to 1..N keeping the current
// order. Ties are broken by creation time, then id. It returns the number of
// rows it had to touch.
func Compact[T any, P interface {
	*T
	Item
}](tx *gorm.DB, scope Scope) (int, error) {
	var rows []T
	if err := tx.Scopes(scope).Order(Column).Order("created_at").Order("id").Find(&rows).Error; err != nil {
		return 0, err
	}

	fixed := 0
	for i := range rows {
		row := P(&rows[i])
		if row.Position() == i+1 {
			continue
		}
		if err := tx.Model(row).UpdateColumn(Column, i+1).Error; err != nil {
			return fixed, err
		}
		row.SetPosition(i + 1)
		fixed++
	}
	return fixed, nil
}
