// Package population generates synthetic user populations and prices them,
// producing the datasets behind the dashboard's distribution charts.
package population

import (
	"context"
	"math/rand"
	"time"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/metrics"
	"github.com/mkwei/pricelens/internal/pricing"
	"github.com/mkwei/pricelens/internal/profile"
	"github.com/mkwei/pricelens/internal/traces"
)

// DefaultSize is the population size when the caller doesn't pick one.
const DefaultSize = 50

// historyMaxCategories bounds the sampled browsing-history subset.
const historyMaxCategories = 3

// Config controls one generation run.
type Config struct {
	Size     int
	Seed     int64  // 0 means time-seeded
	Strategy string // "" means the engine default
}

// Row is one synthetic user with the price that user would see.
type Row struct {
	ID      int              `json:"id"`
	Profile *profile.Profile `json:"profile"`
	Price   float64          `json:"price"`
}

// Dataset is the result of pricing a synthetic population against one product.
type Dataset struct {
	Product  *catalog.Product `json:"product"`
	Strategy string           `json:"strategy"`
	Seed     int64            `json:"seed"`
	Rows     []Row            `json:"rows"`
}

// Generator samples profiles from fixed categorical distributions and runs
// them through the pricing engine. The distributions are deliberately
// hard-coded: they are part of the demo, not configuration.
type Generator struct {
	engine *pricing.Engine
}

// New creates a generator backed by the given engine.
func New(engine *pricing.Engine) *Generator {
	return &Generator{engine: engine}
}

// pick draws one option by weight. Weights must be positive; they don't
// need to sum to 1.
func pick(r *rand.Rand, options []string, weights []float64) string {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// sampleProfile draws one synthetic user. Attributes are sampled
// independently; only the derived bucket fields are kept consistent with
// their score counterparts so either strategy sees a coherent user.
func sampleProfile(r *rand.Rand) *profile.Profile {
	userType := pick(r, []string{"new", "regular", "loyal"}, []float64{0.2, 0.6, 0.2})
	device := pick(r, []string{"android", "ios"}, []float64{0.6, 0.4})
	spendingLevel := pick(r, []string{"low", "medium", "high"}, []float64{0.3, 0.4, 0.3})
	activityLevel := pick(r, []string{"low", "medium", "high"}, []float64{0.2, 0.5, 0.3})
	frequency := pick(r, []string{"rare", "sometimes", "often"}, []float64{0.3, 0.5, 0.2})
	returnRate := pick(r, []string{"low", "medium", "high"}, []float64{0.5, 0.3, 0.2})
	period := pick(r, []string{"normal", "special"}, []float64{0.7, 0.3})

	spendingScores := map[string][]int{
		"low":    {10, 30},
		"medium": {50, 75},
		"high":   {90},
	}
	activityScores := map[string][]int{
		"low":    {10, 20},
		"medium": {40, 50, 70},
		"high":   {80, 90},
	}
	pickScore := func(scores []int) int { return scores[r.Intn(len(scores))] }

	// Random-size subset (0-3) of the category set, without repetition
	cats := catalog.Categories()
	r.Shuffle(len(cats), func(i, j int) { cats[i], cats[j] = cats[j], cats[i] })
	history := append([]string(nil), cats[:r.Intn(historyMaxCategories+1)]...)

	return &profile.Profile{
		UserType:          profile.UserType(userType),
		SpendingLevel:     profile.Level(spendingLevel),
		SpendingScore:     pickScore(spendingScores[spendingLevel]),
		Device:            profile.Device(device),
		Activity:          profile.Level(activityLevel),
		ActivityScore:     pickScore(activityScores[activityLevel]),
		Frequency:         profile.Frequency(frequency),
		VIPLevel:          profile.VIPNone,
		ReturnRate:        profile.Level(returnRate),
		PurchasePeriod:    profile.Period(period),
		HistoryCategories: history,
		HasSimilarInCart:  r.Float64() < 0.3,
	}
}

// Generate prices cfg.Size synthetic users against the product. It respects
// context cancellation; Size <= 0 yields an empty dataset.
func (g *Generator) Generate(ctx context.Context, product *catalog.Product, cfg Config) (*Dataset, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = g.engine.DefaultStrategy()
	}

	size := cfg.Size
	if size < 0 {
		size = 0
	}

	ctx, span := traces.StartSpan(ctx, "population.Generate",
		traces.SKU(product.SKU),
		traces.Strategy(strategy),
		traces.PopulationSize(size),
	)
	defer span.End()

	ds := &Dataset{
		Product:  product,
		Strategy: strategy,
		Seed:     seed,
		Rows:     make([]Row, 0, size),
	}

	for i := 0; i < size; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := sampleProfile(r)
		quote, err := g.engine.Quote(ctx, product, p, strategy)
		if err != nil {
			return nil, err
		}

		ds.Rows = append(ds.Rows, Row{
			ID:      i + 1,
			Profile: quote.Profile,
			Price:   quote.FinalPrice,
		})
	}

	metrics.PopulationsGeneratedTotal.Inc()
	metrics.PopulationSize.Observe(float64(size))

	return ds, nil
}
