package pricing

import (
	"context"
	"sync"
)

// maxMemoryQuotes caps how many quotes the in-memory audit trail retains.
const maxMemoryQuotes = 1000

// MemoryStore is an in-memory implementation of Store for demo/test use.
type MemoryStore struct {
	mu     sync.RWMutex
	quotes []*Quote
}

// NewMemoryStore creates an in-memory quote audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(ctx context.Context, quote *Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = append(s.quotes, copyQuote(quote))
	if len(s.quotes) > maxMemoryQuotes {
		s.quotes = s.quotes[len(s.quotes)-maxMemoryQuotes:]
	}
	return nil
}

func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.quotes) == 0 || limit <= 0 {
		return nil, nil
	}

	start := len(s.quotes) - limit
	if start < 0 {
		start = 0
	}

	// Most recent first
	result := make([]*Quote, 0, len(s.quotes)-start)
	for i := len(s.quotes) - 1; i >= start; i-- {
		result = append(result, copyQuote(s.quotes[i]))
	}
	return result, nil
}

func copyQuote(q *Quote) *Quote {
	cp := *q
	cp.Adjustments = append([]Adjustment(nil), q.Adjustments...)
	if q.Profile != nil {
		p := *q.Profile
		p.HistoryCategories = append([]string(nil), q.Profile.HistoryCategories...)
		cp.Profile = &p
	}
	return &cp
}
