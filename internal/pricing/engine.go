package pricing

import (
	"context"
	"time"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/idgen"
	"github.com/mkwei/pricelens/internal/metrics"
	"github.com/mkwei/pricelens/internal/profile"
	"github.com/mkwei/pricelens/internal/retry"
	"github.com/mkwei/pricelens/internal/traces"
)

// Engine dispatches quote requests to named strategies, enforces the
// base-price precondition, rounds the result and records quotes to the
// audit store.
type Engine struct {
	strategies      map[string]Strategy
	defaultStrategy string
	store           Store
}

// NewEngine creates an engine with both built-in strategies registered and
// the interactive chain as the default. The store may be nil to disable the
// audit trail.
func NewEngine(store Store) *Engine {
	e := &Engine{
		strategies:      make(map[string]Strategy),
		defaultStrategy: StrategyInteractive,
		store:           store,
	}
	e.Register(NewInteractive())
	e.Register(NewMultiplicative())
	return e
}

// Register adds or replaces a strategy under its own name.
func (e *Engine) Register(s Strategy) {
	e.strategies[s.Name()] = s
}

// WithDefaultStrategy overrides which strategy handles requests that don't
// name one. The name must already be registered.
func (e *Engine) WithDefaultStrategy(name string) *Engine {
	if _, ok := e.strategies[name]; ok {
		e.defaultStrategy = name
	}
	return e
}

// Strategies lists the registered strategy names.
func (e *Engine) Strategies() []string {
	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	return names
}

// DefaultStrategy returns the name used when a request names no strategy.
func (e *Engine) DefaultStrategy() string { return e.defaultStrategy }

// Quote prices the product for the profile using the named strategy
// ("" selects the default). The profile's CurrentCategory is overwritten
// with the product's category so category-aware rules see the right tag.
func (e *Engine) Quote(ctx context.Context, product *catalog.Product, p *profile.Profile, strategyName string) (*Quote, error) {
	if product == nil || product.BasePrice <= 0 {
		return nil, ErrInvalidBasePrice
	}
	if strategyName == "" {
		strategyName = e.defaultStrategy
	}
	strategy, ok := e.strategies[strategyName]
	if !ok {
		return nil, ErrUnknownStrategy
	}

	ctx, span := traces.StartSpan(ctx, "pricing.Quote",
		traces.SKU(product.SKU),
		traces.Strategy(strategyName),
	)
	defer span.End()

	// Work on a copy so callers never observe mutation.
	prof := *p
	prof.CurrentCategory = product.Category

	final, adjustments := strategy.Apply(product.BasePrice, &prof)

	quote := &Quote{
		ID:          idgen.WithPrefix("qt_"),
		SKU:         product.SKU,
		Category:    product.Category,
		Strategy:    strategyName,
		BasePrice:   product.BasePrice,
		FinalPrice:  round2(final),
		Adjustments: adjustments,
		Profile:     &prof,
		QuotedAt:    time.Now(),
	}

	span.SetAttributes(traces.Price(quote.FinalPrice))

	metrics.QuotesTotal.WithLabelValues(strategyName).Inc()
	metrics.QuoteDeltaPercent.Observe(quote.DeltaPercent())

	// Persist asynchronously (best-effort audit trail). Transient store
	// failures get a couple of retries before the quote is dropped.
	if e.store != nil {
		go func() {
			_ = retry.Do(context.Background(), 3, 200*time.Millisecond, func() error {
				return e.store.Record(context.Background(), quote)
			})
		}()
	}

	return quote, nil
}
