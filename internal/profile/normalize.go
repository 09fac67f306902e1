package profile

// The dashboard presents human-readable (Chinese) option labels; these
// tables map them onto canonical enum values. Each lookup has a fallback so
// normalization never fails on input the UI shouldn't produce.

// DefaultSpendingAmount is used when a spending-range label is unrecognized.
const DefaultSpendingAmount = 1000

var userTypeLabels = map[string]UserType{
	"新用户（首次使用）":  UserNew,
	"普通用户（偶尔使用）": UserRegular,
	"忠诚用户（高频使用）": UserLoyal,
}

var spendingLevelLabels = map[string]Level{
	"低消费":  LevelLow,
	"中等消费": LevelMedium,
	"高消费":  LevelHigh,
}

// spendingRangeLabels maps a monthly-spending range to a representative
// point value that SpendingScore buckets into a 0-100 score.
var spendingRangeLabels = map[string]float64{
	"100元以下":     50,
	"100-500元":   300,
	"500-1000元":  750,
	"1000-3000元": 2000,
	"3000元以上":    5000,
}

var deviceLabels = map[string]Device{
	"Android手机":    DeviceAndroid,
	"iPhone (iOS)": DeviceIOS,
}

var activityLabels = map[string]Level{
	"不活跃":  LevelLow,
	"一般活跃": LevelMedium,
	"非常活跃": LevelHigh,
}

// activityScoreLabels covers the finer-grained activity slider. Values are
// the discrete scores the interactive strategy thresholds against.
var activityScoreLabels = map[string]int{
	"几乎不用": 10,
	"很少使用": 20,
	"偶尔使用": 40,
	"一般活跃": 50,
	"比较活跃": 70,
	"经常使用": 80,
	"重度使用": 90,
}

var frequencyLabels = map[string]Frequency{
	"第一次看": FrequencyRare,
	"看过几次": FrequencySometimes,
	"经常查看": FrequencyOften,
}

var vipLabels = map[string]VIPLevel{
	"非会员":  VIPNone,
	"普通会员": VIPMedium,
	"高级会员": VIPHigh,
}

var returnRateLabels = map[string]Level{
	"很少退货": LevelLow,
	"偶尔退货": LevelMedium,
	"经常退货": LevelHigh,
}

var periodLabels = map[string]Period{
	"平时":   PeriodNormal,
	"大促期间": PeriodSpecial,
}

// MapUserType converts a user-type label, defaulting to regular.
func MapUserType(label string) UserType {
	if v, ok := userTypeLabels[label]; ok {
		return v
	}
	return UserRegular
}

// MapSpendingLevel converts a spending-level label, defaulting to medium.
func MapSpendingLevel(label string) Level {
	if v, ok := spendingLevelLabels[label]; ok {
		return v
	}
	return LevelMedium
}

// MapSpendingRange converts a monthly-spending range label to its
// representative amount, defaulting to DefaultSpendingAmount.
func MapSpendingRange(label string) float64 {
	if v, ok := spendingRangeLabels[label]; ok {
		return v
	}
	return DefaultSpendingAmount
}

// MapDevice converts a device label, defaulting to android.
func MapDevice(label string) Device {
	if v, ok := deviceLabels[label]; ok {
		return v
	}
	return DeviceAndroid
}

// MapActivity converts a coarse activity label, defaulting to medium.
func MapActivity(label string) Level {
	if v, ok := activityLabels[label]; ok {
		return v
	}
	return LevelMedium
}

// MapActivityScore converts an activity slider label to its discrete score,
// defaulting to the 50 midpoint.
func MapActivityScore(label string) int {
	if v, ok := activityScoreLabels[label]; ok {
		return v
	}
	return 50
}

// MapFrequency converts a browsing-frequency label, defaulting to sometimes.
func MapFrequency(label string) Frequency {
	if v, ok := frequencyLabels[label]; ok {
		return v
	}
	return FrequencySometimes
}

// MapVIPLevel converts a membership label, defaulting to none.
func MapVIPLevel(label string) VIPLevel {
	if v, ok := vipLabels[label]; ok {
		return v
	}
	return VIPNone
}

// MapReturnRate converts a return-rate label, defaulting to medium.
func MapReturnRate(label string) Level {
	if v, ok := returnRateLabels[label]; ok {
		return v
	}
	return LevelMedium
}

// MapPeriod converts a purchase-period label, defaulting to normal.
func MapPeriod(label string) Period {
	if v, ok := periodLabels[label]; ok {
		return v
	}
	return PeriodNormal
}

// SpendingScore buckets a monthly spending amount into a 0-100 score.
// Breakpoints use ≤ semantics: an amount exactly on a breakpoint maps to
// the lower tier.
func SpendingScore(amount float64) int {
	switch {
	case amount <= 100:
		return 10
	case amount <= 500:
		return 30
	case amount <= 1000:
		return 50
	case amount <= 3000:
		return 75
	default:
		return 90
	}
}
