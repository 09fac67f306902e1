// Package pricing implements the personalized price quote engine.
//
// A quote starts from a product's reference price and walks a fixed ordered
// rule chain driven by the user profile. Two strategies exist: the
// multiplicative chain compounds percentage factors (with a final random
// jitter), the interactive chain sums per-rule monetary deltas and models
// rule interactions (device x spending, sale period x return rate). Both
// produce an ordered adjustment trail so the dashboard can show exactly how
// the final price was assembled.
package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/mkwei/pricelens/internal/profile"
)

// Kind classifies an adjustment's effect on the price.
type Kind string

const (
	KindDiscount Kind = "discount"
	KindMarkup   Kind = "markup"
	KindNeutral  Kind = "neutral"
)

// kindOf derives the classification from a signed delta.
func kindOf(delta float64) Kind {
	switch {
	case delta < 0:
		return KindDiscount
	case delta > 0:
		return KindMarkup
	default:
		return KindNeutral
	}
}

// Adjustment is one named, signed contribution to the final price.
// The slice order on a Quote is the rule evaluation order and is the
// user-visible audit trail.
type Adjustment struct {
	Rule  string  `json:"rule"`  // stable rule identifier
	Label string  `json:"label"` // human-readable factor name + magnitude
	Kind  Kind    `json:"kind"`
	Delta float64 `json:"delta"` // signed yuan applied to the running price
}

// Quote is the result of pricing one product for one profile.
type Quote struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Category    string           `json:"category"`
	Strategy    string           `json:"strategy"`
	BasePrice   float64          `json:"basePrice"`
	FinalPrice  float64          `json:"finalPrice"`
	Adjustments []Adjustment     `json:"adjustments"`
	Profile     *profile.Profile `json:"profile,omitempty"`
	QuotedAt    time.Time        `json:"quotedAt"`
}

// DeltaPercent returns the final price's deviation from base in percent.
func (q *Quote) DeltaPercent() float64 {
	if q.BasePrice <= 0 {
		return 0
	}
	return (q.FinalPrice/q.BasePrice - 1) * 100
}

// Strategy is a pricing rule chain. Apply returns the unrounded final price
// and the ordered adjustment trail for the given base price and profile.
// Implementations must not mutate the profile.
type Strategy interface {
	Name() string
	Apply(basePrice float64, p *profile.Profile) (float64, []Adjustment)
}

// Store persists quotes for the audit trail.
type Store interface {
	Record(ctx context.Context, quote *Quote) error
	ListRecent(ctx context.Context, limit int) ([]*Quote, error)
}

// Errors returned by the engine.
var (
	ErrInvalidBasePrice = errors.New("base price must be positive")
	ErrUnknownStrategy  = errors.New("unknown pricing strategy")
)
