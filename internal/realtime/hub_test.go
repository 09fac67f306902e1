package realtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mkwei/pricelens/internal/pricing"
)

func testHub() *Hub {
	return NewHub(slog.Default())
}

func testQuote(category, strategy string, finalPrice float64) *pricing.Quote {
	return &pricing.Quote{
		ID:         "qt_test",
		SKU:        "earbuds-599",
		Category:   category,
		Strategy:   strategy,
		BasePrice:  599,
		FinalPrice: finalPrice,
		QuotedAt:   time.Now(),
	}
}

// ---------------------------------------------------------------------------
// shouldSend tests
// ---------------------------------------------------------------------------

func TestShouldSend_AllEvents(t *testing.T) {
	h := testHub()
	client := &Client{sub: Subscription{AllEvents: true}}

	event := &Event{Type: EventQuote, Timestamp: time.Now()}
	if !h.shouldSend(client, event) {
		t.Error("AllEvents client should receive all events")
	}
}

func TestShouldSend_EventTypeFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		EventTypes: []EventType{EventPopulation},
	}}

	quoteEvent := &Event{Type: EventQuote}
	popEvent := &Event{Type: EventPopulation}

	if h.shouldSend(client, quoteEvent) {
		t.Error("Should NOT receive quote events")
	}
	if !h.shouldSend(client, popEvent) {
		t.Error("Should receive population events")
	}
}

func TestShouldSend_CategoryFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		Categories: []string{"数码"},
	}}

	matching := &Event{Type: EventQuote, Data: testQuote("数码", "interactive", 599)}
	notMatching := &Event{Type: EventQuote, Data: testQuote("服饰", "interactive", 199)}

	if !h.shouldSend(client, matching) {
		t.Error("Should match on quote category")
	}
	if h.shouldSend(client, notMatching) {
		t.Error("Should NOT match unrelated categories")
	}
}

func TestShouldSend_StrategyFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		Strategies: []string{"multiplicative"},
	}}

	matching := &Event{Type: EventQuote, Data: testQuote("数码", "multiplicative", 599)}
	notMatching := &Event{Type: EventQuote, Data: testQuote("数码", "interactive", 599)}

	if !h.shouldSend(client, matching) {
		t.Error("Should match on quote strategy")
	}
	if h.shouldSend(client, notMatching) {
		t.Error("Should NOT match other strategies")
	}
}

func TestShouldSend_MinPriceFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		MinPrice: 500.0,
	}}

	expensive := &Event{Type: EventQuote, Data: testQuote("数码", "interactive", 650)}
	cheap := &Event{Type: EventQuote, Data: testQuote("服饰", "interactive", 180)}
	population := &Event{Type: EventPopulation, Data: map[string]interface{}{"count": 50}}

	if !h.shouldSend(client, expensive) {
		t.Error("Should receive expensive quote")
	}
	if h.shouldSend(client, cheap) {
		t.Error("Should NOT receive cheap quote")
	}
	if !h.shouldSend(client, population) {
		t.Error("MinPrice filter should only apply to quotes")
	}
}

func TestShouldSend_EmptySubscription(t *testing.T) {
	h := testHub()

	// No filters, not AllEvents
	client := &Client{sub: Subscription{}}

	event := &Event{Type: EventQuote}
	if !h.shouldSend(client, event) {
		t.Error("Empty subscription (no filters) should receive events")
	}
}

func TestShouldSend_NonQuoteData(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		Categories: []string{"数码"},
	}}

	// Event with non-quote data should not crash
	event := &Event{
		Type: EventPopulation,
		Data: "string data not a quote",
	}

	// Category filter skips non-quote data, so event passes through
	if !h.shouldSend(client, event) {
		t.Error("Non-quote data should pass through when category filter can't inspect it")
	}
}

// ---------------------------------------------------------------------------
// Hub lifecycle tests
// ---------------------------------------------------------------------------

func TestHub_Stats_Initial(t *testing.T) {
	h := testHub()

	stats := h.Stats()
	if stats["connectedClients"].(int) != 0 {
		t.Errorf("Expected 0 connected clients, got %v", stats["connectedClients"])
	}
	if stats["totalEvents"].(int64) != 0 {
		t.Errorf("Expected 0 total events, got %v", stats["totalEvents"])
	}
}

func TestHub_BroadcastAndStats(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// Broadcast an event
	h.Broadcast(&Event{Type: EventQuote, Timestamp: time.Now()})
	time.Sleep(50 * time.Millisecond)

	stats := h.Stats()
	if stats["totalEvents"].(int64) != 1 {
		t.Errorf("Expected 1 total event, got %v", stats["totalEvents"])
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{AllEvents: true},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	stats := h.Stats()
	if stats["connectedClients"].(int) != 1 {
		t.Errorf("Expected 1 connected client, got %v", stats["connectedClients"])
	}
	if stats["peakClients"].(int64) != 1 {
		t.Errorf("Expected peak 1, got %v", stats["peakClients"])
	}

	h.unregister <- client
	time.Sleep(50 * time.Millisecond)

	stats = h.Stats()
	if stats["connectedClients"].(int) != 0 {
		t.Errorf("Expected 0 connected clients after unregister, got %v", stats["connectedClients"])
	}
	// Peak should still be 1
	if stats["peakClients"].(int64) != 1 {
		t.Errorf("Expected peak still 1, got %v", stats["peakClients"])
	}
}

func TestHub_BroadcastToClient(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{AllEvents: true},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	h.BroadcastQuote(testQuote("数码", "interactive", 599))

	select {
	case msg := <-client.send:
		if len(msg) == 0 {
			t.Error("Expected non-empty message")
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for broadcast")
	}
}

func TestHub_BroadcastPopulation(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// Should not panic
	h.BroadcastPopulation(map[string]interface{}{
		"count": 50, "mean": 583.20,
	})
}

func TestHub_ContextCancellation(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Hub stopped
	case <-time.After(2 * time.Second):
		t.Error("Hub did not stop after context cancellation")
	}
}

func TestHub_FilteredBroadcast(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// Client only wants population events
	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{EventTypes: []EventType{EventPopulation}},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	// Send a quote event (should be filtered out)
	h.Broadcast(&Event{Type: EventQuote, Timestamp: time.Now()})
	time.Sleep(100 * time.Millisecond)

	select {
	case <-client.send:
		t.Error("Client should NOT receive quote event")
	default:
		// Good - filtered out
	}

	// Send a population event (should be received)
	h.Broadcast(&Event{Type: EventPopulation, Timestamp: time.Now()})

	select {
	case msg := <-client.send:
		if len(msg) == 0 {
			t.Error("Expected non-empty message")
		}
	case <-time.After(time.Second):
		t.Error("Client should receive population event")
	}
}
