package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/logging"
	"github.com/mkwei/pricelens/internal/population"
	"github.com/mkwei/pricelens/internal/pricing"
	"github.com/mkwei/pricelens/internal/profile"
	"github.com/mkwei/pricelens/internal/session"
	"github.com/mkwei/pricelens/internal/validation"
)

// -----------------------------------------------------------------------------
// Catalog
// -----------------------------------------------------------------------------

func (s *Server) listProductsHandler(c *gin.Context) {
	products, err := s.catalog.List(c.Request.Context())
	if err != nil {
		logging.L(c.Request.Context()).Error("failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": catalog.Categories(),
	})
}

func (s *Server) getProductHandler(c *gin.Context) {
	product, err := s.catalog.Get(c.Request.Context(), c.Param("sku"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "product_not_found",
				"message": "No product with this SKU",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load product",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// -----------------------------------------------------------------------------
// Quotes
// -----------------------------------------------------------------------------

// rawLabels carries the option labels exactly as the dashboard's selectors
// present them. Unknown labels fall back to neutral defaults.
type rawLabels struct {
	UserType      string `json:"userType"`
	SpendingLevel string `json:"spendingLevel"`
	SpendingRange string `json:"spendingRange"`
	Device        string `json:"device"`
	Activity      string `json:"activity"`
	ActivityLevel string `json:"activityLevel"`
	Frequency     string `json:"frequency"`
	VIPLevel      string `json:"vipLevel"`
	ReturnRate    string `json:"returnRate"`
	Period        string `json:"period"`

	HasCoupon         bool     `json:"hasCoupon"`
	HasSimilarInCart  bool     `json:"hasSimilarInCart"`
	HistoryCategories []string `json:"historyCategories"`
}

// toProfile normalizes UI labels into the canonical profile. The coarse
// spending level is derived from the range when no explicit label came in,
// so both strategies see a coherent user.
func (r *rawLabels) toProfile() *profile.Profile {
	amount := profile.MapSpendingRange(r.SpendingRange)
	score := profile.SpendingScore(amount)

	level := profile.MapSpendingLevel(r.SpendingLevel)
	if r.SpendingLevel == "" {
		switch {
		case score <= 30:
			level = profile.LevelLow
		case score <= 75:
			level = profile.LevelMedium
		default:
			level = profile.LevelHigh
		}
	}

	activityScore := profile.MapActivityScore(r.Activity)
	activity := profile.MapActivity(r.ActivityLevel)
	if r.ActivityLevel == "" {
		switch {
		case activityScore < 25:
			activity = profile.LevelLow
		case activityScore < 75:
			activity = profile.LevelMedium
		default:
			activity = profile.LevelHigh
		}
	}

	return &profile.Profile{
		UserType:          profile.MapUserType(r.UserType),
		SpendingLevel:     level,
		SpendingScore:     score,
		Device:            profile.MapDevice(r.Device),
		Activity:          activity,
		ActivityScore:     activityScore,
		Frequency:         profile.MapFrequency(r.Frequency),
		HasCoupon:         r.HasCoupon,
		VIPLevel:          profile.MapVIPLevel(r.VIPLevel),
		ReturnRate:        profile.MapReturnRate(r.ReturnRate),
		PurchasePeriod:    profile.MapPeriod(r.Period),
		HistoryCategories: r.HistoryCategories,
		HasSimilarInCart:  r.HasSimilarInCart,
	}
}

type quoteRequest struct {
	SKU       string  `json:"sku"`
	BasePrice float64 `json:"basePrice"` // ad-hoc product when no SKU given
	Category  string  `json:"category"`
	Strategy  string  `json:"strategy"`

	// Exactly one of Labels (raw UI selections) or Profile (canonical)
	// should be set; Labels wins when both are present.
	Labels  *rawLabels       `json:"labels"`
	Profile *profile.Profile `json:"profile"`
}

func (s *Server) computeQuoteHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	strategy := req.Strategy
	if q := c.Query("strategy"); q != "" {
		strategy = q
	}

	checks := []func() *validation.ValidationError{
		validation.ValidSKU("sku", req.SKU),
		validation.OneOf("strategy", strategy, s.engine.Strategies()...),
		validation.MaxLength("category", req.Category, 50),
	}
	// Either a catalog SKU or an explicit ad-hoc price must be given
	if req.BasePrice <= 0 {
		checks = append(checks, validation.Required("sku", req.SKU))
	}
	if req.SKU == "" {
		checks = append(checks, validation.PositivePrice("basePrice", req.BasePrice))
	}
	if errs := validation.Validate(checks...); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
			"details": errs,
		})
		return
	}

	// Resolve the product: catalog SKU, or an ad-hoc base price
	var product *catalog.Product
	if req.SKU != "" {
		p, err := s.catalog.Get(ctx, req.SKU)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "product_not_found",
				"message": "No product with this SKU",
			})
			return
		}
		product = p
	} else {
		product = &catalog.Product{
			SKU:       "custom",
			Name:      "自定义商品",
			BasePrice: req.BasePrice,
			Category:  validation.SanitizeString(req.Category, 50),
		}
	}

	var p *profile.Profile
	switch {
	case req.Labels != nil:
		p = req.Labels.toProfile()
	case req.Profile != nil:
		p = req.Profile
	default:
		p = profile.Default()
	}

	quote, err := s.engine.Quote(ctx, product, p, strategy)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidBasePrice):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_base_price",
				"message": "Base price must be greater than zero",
			})
		case errors.Is(err, pricing.ErrUnknownStrategy):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "unknown_strategy",
				"message": "Unknown pricing strategy",
			})
		default:
			logging.L(ctx).Error("quote failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to compute quote",
			})
		}
		return
	}

	// Push to the live feed
	s.realtimeHub.BroadcastQuote(quote)

	c.JSON(http.StatusOK, quote)
}

func (s *Server) recentQuotesHandler(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_limit",
				"message": "limit must be an integer between 1 and 100",
			})
			return
		}
		limit = n
	}

	quotes, err := s.quoteStore.ListRecent(ctx, limit)
	if err != nil {
		logging.L(ctx).Error("failed to list recent quotes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list recent quotes",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (s *Server) listStrategiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"strategies": s.engine.Strategies(),
		"default":    s.engine.DefaultStrategy(),
	})
}

// -----------------------------------------------------------------------------
// Population
// -----------------------------------------------------------------------------

func (s *Server) generatePopulationHandler(c *gin.Context) {
	ctx := c.Request.Context()

	sku := c.DefaultQuery("sku", "earbuds-599")
	if !validation.IsValidSKU(sku) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_sku",
			"message": "sku must be a lowercase slug (letters, digits, dashes)",
		})
		return
	}

	product, err := s.catalog.Get(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "product_not_found",
			"message": "No product with this SKU",
		})
		return
	}

	n := s.cfg.DefaultPopulationSize
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > s.cfg.MaxPopulationSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_population_size",
				"message": "n must be an integer between 0 and " + strconv.Itoa(s.cfg.MaxPopulationSize),
			})
			return
		}
		n = v
	}

	var seed int64
	if raw := c.Query("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_seed",
				"message": "seed must be an integer",
			})
			return
		}
		seed = v
	}

	strategy := c.Query("strategy")
	if errs := validation.Validate(
		validation.OneOf("strategy", strategy, s.engine.Strategies()...),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
		})
		return
	}

	ds, err := s.generator.Generate(ctx, product, population.Config{
		Size:     n,
		Seed:     seed,
		Strategy: strategy,
	})
	if err != nil {
		logging.L(ctx).Error("population generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to generate population",
		})
		return
	}

	summary := population.Summarize(ds)

	// Push the run summary to the live feed
	s.realtimeHub.BroadcastPopulation(gin.H{
		"sku":      product.SKU,
		"strategy": ds.Strategy,
		"count":    summary.Count,
		"mean":     summary.Mean,
		"spread":   summary.Spread,
	})

	c.JSON(http.StatusOK, gin.H{
		"dataset": ds,
		"summary": summary,
	})
}

// -----------------------------------------------------------------------------
// Session (the "reveal" toggle)
// -----------------------------------------------------------------------------

// currentSession loads the caller's session from the cookie, creating a new
// session (and setting the cookie) when absent or expired.
func (s *Server) currentSession(c *gin.Context) *session.Session {
	if id, err := c.Cookie(session.CookieName); err == nil {
		if sess, err := s.sessions.Get(id); err == nil {
			return sess
		}
	}

	sess := s.sessions.Create()
	c.SetCookie(session.CookieName, sess.ID, 86400, "/", "", false, true)
	return sess
}

func (s *Server) getSessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.currentSession(c))
}

func (s *Server) setRevealHandler(c *gin.Context) {
	var req struct {
		Reveal bool `json:"reveal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	sess := s.currentSession(c)
	updated, err := s.sessions.SetReveal(sess.ID, req.Reveal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to update session",
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
