// Package profile defines the canonical user profile that drives price
// personalization, plus the normalizer that maps raw UI selections onto it.
//
// Every attribute is drawn from a closed option set controlled by the
// presentation layer, so normalization is total: unknown labels fall back to
// a documented default instead of failing.
package profile

// UserType classifies how established the user is on the platform.
type UserType string

const (
	UserNew     UserType = "new"
	UserRegular UserType = "regular"
	UserLoyal   UserType = "loyal"
)

// Device is the user's primary client device.
type Device string

const (
	DeviceAndroid Device = "android"
	DeviceIOS     Device = "ios"
)

// Level is a coarse low/medium/high bucket used for spending, activity and
// return rate.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Frequency is how often the user has viewed the current product.
type Frequency string

const (
	FrequencyRare      Frequency = "rare"
	FrequencySometimes Frequency = "sometimes"
	FrequencyOften     Frequency = "often"
)

// VIPLevel is the user's membership tier.
type VIPLevel string

const (
	VIPNone   VIPLevel = "none"
	VIPMedium VIPLevel = "medium"
	VIPHigh   VIPLevel = "high"
)

// Period distinguishes normal shopping days from platform sale events.
type Period string

const (
	PeriodNormal  Period = "normal"
	PeriodSpecial Period = "special"
)

// Profile is the canonical, immutable-per-quote set of user attributes.
// Bucketed fields (SpendingLevel, Activity, HasCoupon, VIPLevel) feed the
// multiplicative strategy; score and interaction fields (SpendingScore,
// ActivityScore, ReturnRate, PurchasePeriod, HistoryCategories,
// HasSimilarInCart) feed the interactive strategy.
type Profile struct {
	UserType      UserType  `json:"userType"`
	SpendingLevel Level     `json:"spendingLevel"`
	SpendingScore int       `json:"spendingScore"` // 0-100, derived from monthly spending
	Device        Device    `json:"device"`
	Activity      Level     `json:"activity"`
	ActivityScore int       `json:"activityScore"`
	Frequency     Frequency `json:"frequency"`
	HasCoupon     bool      `json:"hasCoupon"`
	VIPLevel      VIPLevel  `json:"vipLevel"`

	ReturnRate        Level    `json:"returnRate"`
	PurchasePeriod    Period   `json:"purchasePeriod"`
	HistoryCategories []string `json:"historyCategories"`
	CurrentCategory   string   `json:"currentCategory"` // category of the product being quoted
	HasSimilarInCart  bool     `json:"hasSimilarInCart"`
}

// HasHistoryCategory reports whether category appears in the user's
// browsing-history categories.
func (p *Profile) HasHistoryCategory(category string) bool {
	for _, c := range p.HistoryCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Default returns a profile with every attribute at its neutral midpoint.
// Quoting it against any strategy yields no net adjustment apart from jitter.
func Default() *Profile {
	return &Profile{
		UserType:       UserRegular,
		SpendingLevel:  LevelMedium,
		SpendingScore:  50,
		Device:         DeviceAndroid,
		Activity:       LevelMedium,
		ActivityScore:  50,
		Frequency:      FrequencySometimes,
		VIPLevel:       VIPNone,
		ReturnRate:     LevelMedium,
		PurchasePeriod: PeriodNormal,
	}
}
