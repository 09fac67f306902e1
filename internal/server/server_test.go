package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mkwei/pricelens/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig returns a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Port:                  "0",
		Env:                   "development",
		LogLevel:              "error",
		DefaultStrategy:       "interactive",
		JitterDisabled:        true,
		DefaultPopulationSize: 20,
		MaxPopulationSize:     100,
		RateLimitRPM:          100000,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	s.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

// ---------------------------------------------------------------------------
// Health endpoint tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", resp["status"])
	}
}

func TestLivenessEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "GET", "/health/live", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestReadinessEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "GET", "/health/ready", "")

	// Server hasn't called Run() so ready is false
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 (not ready), got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Route registration tests
// ---------------------------------------------------------------------------

func TestCoreRoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	routes := s.router.Routes()
	expected := []string{
		"GET:/health",
		"GET:/health/live",
		"GET:/health/ready",
		"GET:/metrics",
		"GET:/",
		"GET:/ws",
		"GET:/v1/products",
		"GET:/v1/products/:sku",
		"POST:/v1/quotes",
		"GET:/v1/quotes/recent",
		"GET:/v1/population",
		"GET:/v1/session",
		"POST:/v1/session/reveal",
		"GET:/v1/strategies",
	}

	routeSet := make(map[string]bool)
	for _, route := range routes {
		routeSet[route.Method+":"+route.Path] = true
	}

	for _, e := range expected {
		if !routeSet[e] {
			t.Errorf("Core route %s not registered", e)
		}
	}
}

// ---------------------------------------------------------------------------
// Dashboard page test
// ---------------------------------------------------------------------------

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for dashboard, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML content type, got %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "价格透镜") {
		t.Error("Expected dashboard page content")
	}
}

// ---------------------------------------------------------------------------
// Product endpoints
// ---------------------------------------------------------------------------

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/v1/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	products, ok := resp["products"].([]interface{})
	if !ok || len(products) == 0 {
		t.Fatal("Expected non-empty products list")
	}
	if _, ok := resp["categories"].([]interface{}); !ok {
		t.Error("Expected categories in response")
	}
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/v1/products/earbuds-599", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", w.Code, resp)
	}
	if resp["sku"] != "earbuds-599" {
		t.Errorf("Expected sku earbuds-599, got %v", resp["sku"])
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "GET", "/v1/products/nonexistent-sku", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestGetProduct_InvalidSKU(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "GET", "/v1/products/Not%20A%20Sku!", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid SKU, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Quote endpoint
// ---------------------------------------------------------------------------

func TestComputeQuote_NeutralLabels(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"sku": "earbuds-599",
		"labels": {
			"userType": "普通用户（偶尔使用）",
			"spendingRange": "500-1000元",
			"device": "Android手机",
			"activity": "偶尔使用",
			"frequency": "看过几次",
			"vipLevel": "非会员",
			"returnRate": "偶尔退货",
			"period": "平时"
		}
	}`
	w, resp := doJSON(t, s, "POST", "/v1/quotes", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", w.Code, resp)
	}

	// Every attribute neutral keeps the base price under the interactive chain
	if resp["finalPrice"] != 599.0 {
		t.Errorf("Expected finalPrice 599, got %v", resp["finalPrice"])
	}
	if resp["strategy"] != "interactive" {
		t.Errorf("Expected interactive strategy, got %v", resp["strategy"])
	}
	adjustments, ok := resp["adjustments"].([]interface{})
	if !ok || len(adjustments) != 6 {
		t.Errorf("Expected 6 adjustments for cart-free profile, got %v", resp["adjustments"])
	}
}

func TestComputeQuote_CanonicalProfile(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"sku": "laptop-4999",
		"profile": {
			"userType": "new",
			"spendingLevel": "high",
			"spendingScore": 90,
			"device": "ios",
			"activity": "low",
			"activityScore": 10,
			"frequency": "rare",
			"vipLevel": "none",
			"returnRate": "low",
			"purchasePeriod": "special",
			"historyCategories": ["服饰"],
			"hasSimilarInCart": true
		}
	}`
	w, resp := doJSON(t, s, "POST", "/v1/quotes", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", w.Code, resp)
	}
	if resp["finalPrice"] != 4154.16 {
		t.Errorf("Expected finalPrice 4154.16, got %v", resp["finalPrice"])
	}
}

func TestComputeQuote_AdHocBasePrice(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "POST", "/v1/quotes", `{"basePrice": 100, "category": "数码"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", w.Code, resp)
	}
	if resp["sku"] != "custom" {
		t.Errorf("Expected custom sku, got %v", resp["sku"])
	}
	if resp["finalPrice"] != 100.0 {
		t.Errorf("Expected finalPrice 100 for neutral default profile, got %v", resp["finalPrice"])
	}
}

func TestComputeQuote_MissingProduct(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "POST", "/v1/quotes", `{"sku": "does-not-exist"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestComputeQuote_UnknownStrategy(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "POST", "/v1/quotes", `{"sku": "earbuds-599", "strategy": "learned"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown strategy, got %d", w.Code)
	}
}

func TestComputeQuote_NoProductNoPrice(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "POST", "/v1/quotes", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without sku or basePrice, got %d", w.Code)
	}
	if resp["error"] != "validation_failed" {
		t.Errorf("Expected validation_failed envelope, got %v", resp)
	}
}

func TestComputeQuote_NegativeAdHocPrice(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "POST", "/v1/quotes", `{"basePrice": -10}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative basePrice, got %d", w.Code)
	}
	if resp["error"] != "validation_failed" {
		t.Errorf("Expected validation_failed envelope, got %v", resp)
	}
}

func TestComputeQuote_CategoryTooLong(t *testing.T) {
	s := newTestServer(t)

	long := strings.Repeat("x", 51)
	w, _ := doJSON(t, s, "POST", "/v1/quotes", `{"basePrice": 100, "category": "`+long+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized category, got %d", w.Code)
	}
}

func TestInfoIncludesFeedStats(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/api", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	feed, ok := resp["feed"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected feed stats object, got %v", resp["feed"])
	}
	if feed["connectedClients"] != 0.0 {
		t.Errorf("Expected 0 connected clients, got %v", feed["connectedClients"])
	}
}

func TestRecentQuotes_InvalidLimit(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "GET", "/v1/quotes/recent?limit=9999", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range limit, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Population endpoint
// ---------------------------------------------------------------------------

func TestGeneratePopulation(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/v1/population?sku=sneakers-199&n=10&seed=7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", w.Code, resp)
	}

	summary, ok := resp["summary"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected summary in response")
	}
	if summary["count"] != 10.0 {
		t.Errorf("Expected count 10, got %v", summary["count"])
	}

	dataset, ok := resp["dataset"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected dataset in response")
	}
	if dataset["seed"] != 7.0 {
		t.Errorf("Expected seed 7, got %v", dataset["seed"])
	}
}

func TestGeneratePopulation_TooLarge(t *testing.T) {
	s := newTestServer(t)

	// Max is 100 in the test config
	w, _ := doJSON(t, s, "GET", "/v1/population?sku=sneakers-199&n=500", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized population, got %d", w.Code)
	}
}

func TestGeneratePopulation_UnknownProduct(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, "GET", "/v1/population?sku=missing-1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Session endpoints
// ---------------------------------------------------------------------------

func TestSessionRevealFlow(t *testing.T) {
	s := newTestServer(t)

	// First visit creates a session with reveal off
	w1, resp1 := doJSON(t, s, "GET", "/v1/session", "")
	if w1.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w1.Code)
	}
	if resp1["reveal"] != false {
		t.Errorf("Expected reveal false on new session, got %v", resp1["reveal"])
	}

	cookies := w1.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected session cookie to be set")
	}

	// Toggle reveal on for this session
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/v1/session/reveal", strings.NewReader(`{"reveal": true}`))
	req2.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	s.router.ServeHTTP(w2, req2)

	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// The same session now reports reveal on
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest("GET", "/v1/session", nil)
	for _, c := range cookies {
		req3.AddCookie(c)
	}
	s.router.ServeHTTP(w3, req3)

	var resp3 map[string]interface{}
	if err := json.Unmarshal(w3.Body.Bytes(), &resp3); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp3["reveal"] != true {
		t.Errorf("Expected reveal true after toggle, got %v", resp3["reveal"])
	}

	// A fresh visitor still gets reveal off
	_, resp4 := doJSON(t, s, "GET", "/v1/session", "")
	if resp4["reveal"] != false {
		t.Errorf("Expected reveal false for a new visitor, got %v", resp4["reveal"])
	}
}

// ---------------------------------------------------------------------------
// Strategies endpoint
// ---------------------------------------------------------------------------

func TestListStrategies(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/v1/strategies", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if resp["default"] != "interactive" {
		t.Errorf("Expected default interactive, got %v", resp["default"])
	}

	names, ok := resp["strategies"].([]interface{})
	if !ok || len(names) != 2 {
		t.Fatalf("Expected 2 strategies, got %v", resp["strategies"])
	}
}

// ---------------------------------------------------------------------------
// 404 test
// ---------------------------------------------------------------------------

func TestNotFoundRoute(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, "GET", "/v1/nonexistent", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if resp["error"] != "not_found" {
		t.Errorf("Expected JSON not_found envelope, got %v", resp)
	}
}
