package pricing

import (
	"github.com/mkwei/pricelens/internal/profile"
)

// StrategyInteractive names the additive, interaction-aware chain.
const StrategyInteractive = "interactive"

// Score thresholds for the interactive rules.
const (
	highSpendingScore = 80 // above this, the iOS markup escalates
	lowSpendingScore  = 40 // below this, android price-sensitivity kicks in
	highActivityScore = 75
	lowActivityScore  = 25

	sensitiveBasePrice = 500 // android protection applies above this base
)

// Flat deltas in yuan.
const (
	rareViewerRebate  = -30
	lowReturnerRebate = -5
	noveltyIncentive  = -20
	cartSimilarMarkup = 5
)

// Interactive is the refined additive chain: every rule contributes a
// signed monetary delta (percent-of-base deltas are rounded to cents), and
// every rule through category novelty emits a record even when neutral, so
// the audit trail has a fixed shape. The cart-similarity rule only emits
// when it applies. No random jitter: identical inputs always yield
// identical quotes, and base + sum(deltas) equals the final price exactly.
type Interactive struct{}

// NewInteractive creates the interaction-aware strategy.
func NewInteractive() *Interactive { return &Interactive{} }

func (i *Interactive) Name() string { return StrategyInteractive }

// Apply evaluates the rule chain against basePrice. The category-novelty
// and cart rules read the product's category tag from p.CurrentCategory,
// which the engine fills in from the quoted product.
func (i *Interactive) Apply(basePrice float64, p *profile.Profile) (float64, []Adjustment) {
	price := basePrice
	var adjustments []Adjustment

	emit := func(rule, label string, delta float64) {
		price += delta
		adjustments = append(adjustments, Adjustment{
			Rule:  rule,
			Label: label,
			Kind:  kindOf(delta),
			Delta: delta,
		})
	}
	pct := func(fraction float64) float64 {
		return round2(basePrice * fraction)
	}

	// 1. New/loyal user adjustment
	switch p.UserType {
	case profile.UserNew:
		emit("user_type", "新用户优惠 -15%", pct(-0.15))
	case profile.UserLoyal:
		emit("user_type", "忠诚用户溢价 +5%", pct(0.05))
	default:
		emit("user_type", "普通用户", 0)
	}

	// 2. Device x spending interaction
	switch {
	case p.Device == profile.DeviceIOS && p.SpendingScore > highSpendingScore:
		emit("device_spending", "iOS+高消费叠加溢价 +12%", pct(0.12))
	case p.Device == profile.DeviceIOS:
		emit("device_spending", "iOS设备溢价 +5%", pct(0.05))
	case p.Device == profile.DeviceAndroid && basePrice > sensitiveBasePrice && p.SpendingScore < lowSpendingScore:
		emit("device_spending", "价格敏感保护 -5%", pct(-0.05))
	default:
		emit("device_spending", "设备因素", 0)
	}

	// 3. Activity score
	switch {
	case p.ActivityScore >= highActivityScore:
		emit("activity", "高活跃溢价 +2%", pct(0.02))
	case p.ActivityScore < lowActivityScore:
		emit("activity", "唤回激励 -3%", pct(-0.03))
	default:
		emit("activity", "活跃度适中", 0)
	}

	// 4. Browsing frequency
	switch p.Frequency {
	case profile.FrequencyOften:
		emit("frequency", "高频浏览溢价 +8%", pct(0.08))
	case profile.FrequencyRare:
		emit("frequency", "首次浏览让利 -¥30", rareViewerRebate)
	default:
		emit("frequency", "浏览频率适中", 0)
	}

	// 5. Sale period x return rate interaction.
	// During a sale, frequent returners are excluded from the promo.
	if p.PurchasePeriod == profile.PeriodSpecial {
		if p.ReturnRate == profile.LevelHigh {
			emit("returns_period", "大促优惠不适用（高退货率）", 0)
		} else {
			emit("returns_period", "大促促销优惠 -10%", pct(-0.10))
		}
	} else {
		if p.ReturnRate == profile.LevelLow {
			emit("returns_period", "优质用户回馈 -¥5", lowReturnerRebate)
		} else {
			emit("returns_period", "退货率因素", 0)
		}
	}

	// 6. Category novelty: only meaningful when there is a history signal.
	if len(p.HistoryCategories) > 0 && !p.HasHistoryCategory(p.CurrentCategory) {
		emit("category_novelty", "品类尝新激励 -¥20", noveltyIncentive)
	} else {
		emit("category_novelty", "品类偏好", 0)
	}

	// 7. Cart similarity: emitted only when it applies.
	if p.HasSimilarInCart {
		emit("cart_similarity", "购物车相似商品 +¥5", cartSimilarMarkup)
	}

	return price, adjustments
}
