// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"math"
	"sync"

	"github.com/jeranaias/courier/internal/api"
)

// DefaultMaxHistory bounds the store when no limit is configured.
const DefaultMaxHistory = 1000

// Store keeps processed messages in memory, oldest first. When full the
// oldest item is evicted. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []api.HistoryItem
	max   int

	// successful and failed count every processed request since the last
	// Clear, including items that were later evicted.
	successful int
	failed     int
	wordTotal  int
}

// NewStore creates a store holding at most max items.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &Store{max: max}
}

// Add records a successfully processed message.
func (s *Store) Add(item api.HistoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) >= s.max {
		drop := len(s.items) - s.max + 1
		s.items = append(s.items[:0:0], s.items[drop:]...)
	}
	s.items = append(s.items, item)
	s.successful++
	if item.Metadata != nil {
		s.wordTotal += item.Metadata.WordCount
	}
}

// RecordFailure counts a rejected message for the error rate.
func (s *Store) RecordFailure() {
	s.mu.Lock()
	s.failed++
	s.mu.Unlock()
}

// List returns up to limit items, newest first. limit <= 0 returns all.
func (s *Store) List(limit int) []api.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]api.HistoryItem, 0, n)
	for i := len(s.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.items[i])
	}
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (api.HistoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.items) - 1; i >= 0; i-- {
		if string(s.items[i].ID) == id {
			return s.items[i], true
		}
	}
	return api.HistoryItem{}, false
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear removes all items and resets the counters. It returns the number of
// items removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	s.items = nil
	s.successful = 0
	s.failed = 0
	s.wordTotal = 0
	return n
}

// Stats summarizes everything processed since the last Clear.
func (s *Store) Stats() api.HistoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.successful + s.failed
	stats := api.HistoryStats{
		TotalMessages:      total,
		SuccessfulMessages: s.successful,
	}
	if total > 0 {
		stats.ErrorRate = round2(float64(s.failed) / float64(total))
	}
	if s.successful > 0 {
		stats.AverageWordCount = round2(float64(s.wordTotal) / float64(s.successful))
	}
	return stats
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
