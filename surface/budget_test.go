// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"sync"
	"testing"
)

func TestBudgetReserve(t *testing.T) {
	b := NewBudget(1000)
	if err := b.Reserve(600); err != nil {
		t.Fatalf("Reserve(600): %v", err)
	}
	if err := b.Reserve(600); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("Reserve past limit: err = %v, want %v", err, ErrBudgetExceeded)
	}
	s := b.Stats()
	if s.UsedBytes != 600 || s.AvailableBytes != 400 || s.PageCount != 1 || s.Rejected != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.Utilization != 0.6 {
		t.Errorf("Utilization = %v, want 0.6", s.Utilization)
	}

	b.Release(600)
	if err := b.Reserve(1000); err != nil {
		t.Errorf("Reserve after release: %v", err)
	}
}

func TestBudgetStatsString(t *testing.T) {
	s := BudgetStats{TotalBytes: 4096, UsedBytes: 1024, PageCount: 2, Rejected: 1, Utilization: 0.25}
	if got := s.String(); got != "Budget[25.0% used, 1/4 KB, 2 pages, 1 rejected]" {
		t.Errorf("String() = %q", got)
	}
}

func TestBudgetConcurrent(t *testing.T) {
	b := NewBudget(1 << 30)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := b.Reserve(1024); err == nil {
				b.Release(1024)
			}
		}()
	}
	wg.Wait()
	if s := b.Stats(); s.UsedBytes != 0 || s.PageCount != 0 {
		t.Errorf("stats after concurrent use = %+v", s)
	}
}
