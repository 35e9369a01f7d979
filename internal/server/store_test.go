// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jeranaias/courier/internal/api"
)

func item(id string, words int) api.HistoryItem {
	return api.HistoryItem{
		ID:       api.HistoryID(id),
		Input:    api.HistoryInput{Name: "n", Message: id},
		Metadata: &api.MessageMetadata{WordCount: words},
	}
}

func TestStore_Eviction(t *testing.T) {
	s := NewStore(3)
	for i := 1; i <= 5; i++ {
		s.Add(item(fmt.Sprint(i), 1))
	}

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	got := s.List(0)
	if got[0].ID != "5" || got[2].ID != "3" {
		t.Errorf("List = %v, %v, %v", got[0].ID, got[1].ID, got[2].ID)
	}
	if _, ok := s.Get("1"); ok {
		t.Error("evicted item still present")
	}
	if st := s.Stats(); st.SuccessfulMessages != 5 {
		t.Errorf("SuccessfulMessages = %d, want 5 (evictions still count)", st.SuccessfulMessages)
	}
	if st := s.Stats(); st.TotalMessages != 5 || st.AverageWordCount != 1 {
		t.Errorf("stats after eviction = %+v", st)
	}
}

func TestStore_Stats(t *testing.T) {
	s := NewStore(10)
	if st := s.Stats(); st.ErrorRate != 0 || st.AverageWordCount != 0 {
		t.Errorf("empty stats = %+v", st)
	}

	s.Add(item("a", 1))
	s.Add(item("b", 2))
	s.RecordFailure()

	st := s.Stats()
	if st.TotalMessages != 3 || st.SuccessfulMessages != 2 {
		t.Errorf("stats = %+v", st)
	}
	if st.ErrorRate != 0.33 {
		t.Errorf("ErrorRate = %v, want 0.33", st.ErrorRate)
	}
	if st.AverageWordCount != 1.5 {
		t.Errorf("AverageWordCount = %v, want 1.5", st.AverageWordCount)
	}
}

func TestStore_ListLimit(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 4; i++ {
		s.Add(item(fmt.Sprint(i), 1))
	}
	if n := len(s.List(2)); n != 2 {
		t.Errorf("List(2) returned %d", n)
	}
	if n := len(s.List(10)); n != 4 {
		t.Errorf("List(10) returned %d", n)
	}
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			s.Add(item(fmt.Sprint(i), 1))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.List(5)
			_ = s.Stats()
		}()
		go func() {
			defer wg.Done()
			s.RecordFailure()
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("Len = %d, want 20", s.Len())
	}
}
