// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBudgetExceeded is returned when a page would not fit the memory budget.
var ErrBudgetExceeded = errors.New("surface: memory budget exceeded")

// BudgetStats contains budget usage statistics.
type BudgetStats struct {
	// TotalBytes is the budget limit in bytes.
	TotalBytes uint64

	// UsedBytes is the memory held by live pages.
	UsedBytes uint64

	// AvailableBytes is the remaining budget.
	AvailableBytes uint64

	// PageCount is the number of live pages.
	PageCount int

	// Rejected is the number of pages refused for lack of budget.
	Rejected uint64

	// Utilization is the fraction of the budget in use (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable string of budget stats.
func (s BudgetStats) String() string {
	return fmt.Sprintf("Budget[%.1f%% used, %d/%d KB, %d pages, %d rejected]",
		s.Utilization*100,
		s.UsedBytes/1024,
		s.TotalBytes/1024,
		s.PageCount,
		s.Rejected)
}

// Budget bounds the memory of pages created by one or more providers.
//
// Budget is safe for concurrent use.
type Budget struct {
	mu       sync.Mutex
	limit    uint64
	used     uint64
	pages    int
	rejected uint64
}

// NewBudget creates a budget of limit bytes.
func NewBudget(limit uint64) *Budget {
	return &Budget{limit: limit}
}

// Reserve charges n bytes for a new page.
func (b *Budget) Reserve(n uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.used+n > b.limit {
		b.rejected++
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrBudgetExceeded, n, b.used, b.limit)
	}
	b.used += n
	b.pages++
	return nil
}

// Release returns n bytes of a released page.
func (b *Budget) Release(n uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.used {
		n = b.used
	}
	b.used -= n
	if b.pages > 0 {
		b.pages--
	}
}

// Stats returns current budget statistics.
func (b *Budget) Stats() BudgetStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := BudgetStats{
		TotalBytes: b.limit,
		UsedBytes:  b.used,
		PageCount:  b.pages,
		Rejected:   b.rejected,
	}
	if b.limit > b.used {
		s.AvailableBytes = b.limit - b.used
	}
	if b.limit > 0 {
		s.Utilization = float64(b.used) / float64(b.limit)
	}
	return s
}
