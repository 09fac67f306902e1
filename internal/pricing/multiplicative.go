package pricing

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/mkwei/pricelens/internal/profile"
)

// StrategyMultiplicative names the compounding percentage chain.
const StrategyMultiplicative = "multiplicative"

// Jitter bounds for the closing "real-time fluctuation" factor.
const (
	jitterMin = 0.97
	jitterMax = 1.03
)

// Multiplicative is the original compounding rule chain: each applicable
// rule multiplies the already-adjusted running price, so rules compound.
// Inapplicable rules are skipped and leave no record; the jitter entry is
// always last. Reported percentage labels are nominal, not recomputed
// against the running price.
type Multiplicative struct {
	mu     sync.Mutex
	rng    *rand.Rand
	jitter func() float64 // overrides rng when set
}

// NewMultiplicative creates the strategy with a time-seeded jitter source.
func NewMultiplicative() *Multiplicative {
	return &Multiplicative{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// WithSeed makes the jitter sequence reproducible.
func (m *Multiplicative) WithSeed(seed int64) *Multiplicative {
	m.rng = rand.New(rand.NewSource(seed))
	return m
}

// WithJitter replaces the jitter source entirely. Pass a constant 1.0
// function to disable the fluctuation (used by tests and the generator).
func (m *Multiplicative) WithJitter(f func() float64) *Multiplicative {
	m.jitter = f
	return m
}

func (m *Multiplicative) Name() string { return StrategyMultiplicative }

func (m *Multiplicative) nextJitter() float64 {
	if m.jitter != nil {
		return m.jitter()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return jitterMin + m.rng.Float64()*(jitterMax-jitterMin)
}

// Apply walks the rule chain in fixed order. Rounding happens once, on the
// engine side, after the full chain.
func (m *Multiplicative) Apply(basePrice float64, p *profile.Profile) (float64, []Adjustment) {
	price := basePrice
	var adjustments []Adjustment

	scale := func(rule, label string, factor float64) {
		before := price
		price *= factor
		adjustments = append(adjustments, Adjustment{
			Rule:  rule,
			Label: label,
			Kind:  kindOf(factor - 1),
			Delta: round2(price - before),
		})
	}

	// 1. New/loyal user adjustment
	switch p.UserType {
	case profile.UserNew:
		scale("user_type", "新用户优惠 -15%", 0.85)
	case profile.UserLoyal:
		scale("user_type", "忠诚用户溢价 +10%", 1.10)
	}

	// 2. Spending power
	switch p.SpendingLevel {
	case profile.LevelHigh:
		scale("spending_level", "高消费用户 +15%", 1.15)
	case profile.LevelLow:
		scale("spending_level", "低消费用户优惠 -10%", 0.90)
	}

	// 3. Device ("Apple tax")
	if p.Device == profile.DeviceIOS {
		scale("device", "iOS设备 +8%", 1.08)
	}

	// 4. Platform activity
	switch p.Activity {
	case profile.LevelHigh:
		scale("activity", "高活跃度 +5%", 1.05)
	case profile.LevelLow:
		scale("activity", "低活跃度 -5%", 0.95)
	}

	// 5. Browsing frequency
	if p.Frequency == profile.FrequencyOften {
		scale("frequency", "高频浏览 +12%", 1.12)
	}

	// 6. Coupon marker, informational only (no price effect)
	if p.HasCoupon {
		adjustments = append(adjustments, Adjustment{
			Rule:  "coupon",
			Label: "优惠券已选择（待抵扣）",
			Kind:  KindNeutral,
		})
	}

	// 7. Membership tier
	if p.VIPLevel == profile.VIPHigh {
		scale("vip_level", "高级会员 -12%", 0.88)
	}

	// 8. Closing jitter, always recorded
	factor := m.nextJitter()
	before := price
	price *= factor
	adjustments = append(adjustments, Adjustment{
		Rule:  "jitter",
		Label: fmt.Sprintf("实时波动 %+.1f%%", (factor-1)*100),
		Kind:  kindOf(factor - 1),
		Delta: round2(price - before),
	})

	return price, adjustments
}

// round2 rounds to 2 decimal places (cents).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
