// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cradlecart/internal/assistant"
	"github.com/tomtom215/cradlecart/internal/cart"
	"github.com/tomtom215/cradlecart/internal/catalog"
	"github.com/tomtom215/cradlecart/internal/checkout"
	"github.com/tomtom215/cradlecart/internal/config"
	"github.com/tomtom215/cradlecart/internal/models"
	"github.com/tomtom215/cradlecart/internal/recommend"
	"github.com/tomtom215/cradlecart/internal/search"
)

// newTestServer builds the whole HTTP stack over the embedded catalog with
// rate limiting disabled and a zero checkout delay.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, Timeout: 5 * time.Second},
		API: config.APIConfig{
			DefaultPageSize:   20,
			MaxPageSize:       100,
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		Recommend: config.RecommendConfig{DefaultK: 4, MaxK: 20},
		Cart:      config.CartConfig{FreeShippingMin: 500, ShippingFlat: 50},
	}

	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	engine, err := recommend.NewEngine(recommend.DefaultConfig())
	if err != nil {
		t.Fatalf("recommend.NewEngine() error = %v", err)
	}
	searcher := search.NewSearcher(cat)
	carts := cart.NewStore(cart.Config{FreeShippingMin: 500, ShippingFlat: 50})
	checkoutSvc := checkout.NewService(0)
	assistantSvc := assistant.NewService(searcher, nil)

	handler := NewHandler(cfg, cat, engine, searcher, carts, checkoutSvc, assistantSvc, "test")
	router := NewRouter(handler, NewMiddleware(cfg))

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

// getEnvelope fetches url and decodes the response envelope.
func getEnvelope(t *testing.T, url string) (int, models.APIResponse) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, decodeEnvelope(t, resp.Body)
}

func postEnvelope(t *testing.T, url string, body interface{}) (int, models.APIResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, decodeEnvelope(t, resp.Body)
}

func decodeEnvelope(t *testing.T, r io.Reader) models.APIResponse {
	t.Helper()
	var env models.APIResponse
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

// dataMap extracts the envelope's data payload as a map.
func dataMap(t *testing.T, env models.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want object", env.Data)
	}
	return m
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	status, env := getEnvelope(t, server.URL+"/api/v1/health")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q, want success", env.Status)
	}
	data := dataMap(t, env)
	if data["status"] != "ok" {
		t.Errorf("data.status = %v, want ok", data["status"])
	}
	if data["products"].(float64) != 70 {
		t.Errorf("data.products = %v, want 70", data["products"])
	}

	for _, path := range []string{"/api/v1/live", "/api/v1/ready"} {
		status, env := getEnvelope(t, server.URL+path)
		if status != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, status)
		}
		if env.Status != "success" {
			t.Errorf("GET %s envelope status = %q, want success", path, env.Status)
		}
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	server := newTestServer(t)

	status, env := getEnvelope(t, server.URL+"/api/v1/categories")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := dataMap(t, env)
	if data["count"].(float64) != 9 {
		t.Errorf("count = %v, want 9", data["count"])
	}
}

func TestProductsEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("default page", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/products")
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		data := dataMap(t, env)
		if data["total"].(float64) != 70 {
			t.Errorf("total = %v, want 70", data["total"])
		}
		if data["count"].(float64) != 20 {
			t.Errorf("count = %v, want default page of 20", data["count"])
		}
	})

	t.Run("category filter", func(t *testing.T) {
		_, env := getEnvelope(t, server.URL+"/api/v1/products?category=baby-food")
		data := dataMap(t, env)
		if data["total"].(float64) != 10 {
			t.Errorf("total = %v, want 10", data["total"])
		}
	})

	t.Run("unknown category yields empty list", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/products?category=nope")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		data := dataMap(t, env)
		if data["total"].(float64) != 0 {
			t.Errorf("total = %v, want 0", data["total"])
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		_, env := getEnvelope(t, server.URL+"/api/v1/products?limit=5&offset=68")
		data := dataMap(t, env)
		if data["count"].(float64) != 2 {
			t.Errorf("count = %v, want 2 at the tail", data["count"])
		}
	})

	t.Run("limit clamps to max", func(t *testing.T) {
		_, env := getEnvelope(t, server.URL+"/api/v1/products?limit=9999")
		data := dataMap(t, env)
		if data["limit"].(float64) != 100 {
			t.Errorf("limit = %v, want clamp to 100", data["limit"])
		}
	})
}

func TestProductByIDEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/products/bf1")
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		data := dataMap(t, env)
		if data["id"] != "bf1" {
			t.Errorf("id = %v, want bf1", data["id"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/products/nope")
		if status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if env.Error == nil || env.Error.Code != models.ErrCodeNotFound {
			t.Errorf("error = %+v, want NOT_FOUND", env.Error)
		}
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("default k", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/products/bf1/recommendations")
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		data := dataMap(t, env)
		if data["count"].(float64) != 4 {
			t.Errorf("count = %v, want default 4", data["count"])
		}
		recs := data["recommendations"].([]interface{})
		for _, r := range recs {
			item := r.(map[string]interface{})
			product := item["product"].(map[string]interface{})
			if product["id"] == "bf1" {
				t.Error("recommendations include the base product")
			}
		}
	})

	t.Run("limit clamps to max", func(t *testing.T) {
		_, env := getEnvelope(t, server.URL+"/api/v1/products/bf1/recommendations?limit=50")
		data := dataMap(t, env)
		if data["count"].(float64) != 20 {
			t.Errorf("count = %v, want clamp to 20", data["count"])
		}
	})

	t.Run("unknown base product", func(t *testing.T) {
		status, _ := getEnvelope(t, server.URL+"/api/v1/products/nope/recommendations")
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("missing query", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/search")
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if env.Error == nil || env.Error.Code != models.ErrCodeBadRequest {
			t.Errorf("error = %+v, want BAD_REQUEST", env.Error)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		status, _ := getEnvelope(t, server.URL+"/api/v1/search?q=x&mode=fuzzy")
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("plain mode", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/search?q=cerelac&mode=plain")
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		data := dataMap(t, env)
		if data["count"].(float64) != 1 {
			t.Errorf("count = %v, want 1", data["count"])
		}
	})

	t.Run("filtered is the default mode", func(t *testing.T) {
		_, env := getEnvelope(t, server.URL+"/api/v1/search?q=diapers")
		data := dataMap(t, env)
		if data["mode"] != "filtered" {
			t.Errorf("mode = %v, want filtered", data["mode"])
		}
		if data["count"].(float64) == 0 {
			t.Error("no results for diapers")
		}
	})
}

func TestCartEndpoints(t *testing.T) {
	server := newTestServer(t)

	// Create.
	status, env := postEnvelope(t, server.URL+"/api/v1/carts", nil)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	cartID := dataMap(t, env)["cart_id"].(string)

	cartURL := server.URL + "/api/v1/carts/" + cartID

	// Add an item.
	status, env = postEnvelope(t, cartURL+"/items", AddItemRequest{ProductID: "bf1", Quantity: 2})
	if status != http.StatusOK {
		t.Fatalf("add item status = %d: %+v", status, env.Error)
	}
	summary := dataMap(t, env)
	if summary["item_count"].(float64) != 2 {
		t.Errorf("item_count = %v, want 2", summary["item_count"])
	}
	// bf1 costs 299: 2 * 299 = 598 > 500, so shipping is free.
	if summary["shipping"].(float64) != 0 {
		t.Errorf("shipping = %v, want free above threshold", summary["shipping"])
	}

	t.Run("add unknown product", func(t *testing.T) {
		status, _ := postEnvelope(t, cartURL+"/items", AddItemRequest{ProductID: "nope", Quantity: 1})
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("add without product id fails validation", func(t *testing.T) {
		status, env := postEnvelope(t, cartURL+"/items", AddItemRequest{Quantity: 1})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
		if env.Error == nil || env.Error.Code != models.ErrCodeValidation {
			t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
		}
	})

	t.Run("get summary", func(t *testing.T) {
		status, env := getEnvelope(t, cartURL)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if dataMap(t, env)["cart_id"] != cartID {
			t.Errorf("cart_id = %v, want %s", dataMap(t, env)["cart_id"], cartID)
		}
	})

	t.Run("update quantity", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, cartURL+"/items/bf1", bytes.NewReader([]byte(`{"quantity":1}`)))
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer func() { _ = resp.Body.Close() }()
		env := decodeEnvelope(t, resp.Body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		summary := dataMap(t, env)
		if summary["item_count"].(float64) != 1 {
			t.Errorf("item_count = %v, want 1", summary["item_count"])
		}
		// Back below the free shipping threshold.
		if summary["shipping"].(float64) != 50 {
			t.Errorf("shipping = %v, want flat 50", summary["shipping"])
		}
	})

	t.Run("remove item", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, cartURL+"/items/bf1", nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})

	t.Run("unknown cart", func(t *testing.T) {
		status, _ := getEnvelope(t, server.URL+"/api/v1/carts/unknown-id")
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("delete cart", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, cartURL, nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}

		status, _ := getEnvelope(t, cartURL)
		if status != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", status)
		}
	})
}

func TestCheckoutEndpoints(t *testing.T) {
	server := newTestServer(t)

	t.Run("plans", func(t *testing.T) {
		status, env := getEnvelope(t, server.URL+"/api/v1/checkout/plans")
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if dataMap(t, env)["count"].(float64) != 4 {
			t.Errorf("count = %v, want 4", dataMap(t, env)["count"])
		}
	})

	t.Run("quote with subscription", func(t *testing.T) {
		// bf4 is a formula product, so it is subscription-eligible.
		status, env := postEnvelope(t, server.URL+"/api/v1/checkout/quote",
			OrderRequest{ProductID: "bf4", Quantity: 1, Frequency: "monthly"})
		if status != http.StatusOK {
			t.Fatalf("status = %d: %+v", status, env.Error)
		}
		quote := dataMap(t, env)
		// 1299 * 0.90 = 1169.1, rounds to 1169.
		if quote["unit_price"].(float64) != 1169 {
			t.Errorf("unit_price = %v, want 1169", quote["unit_price"])
		}
	})

	t.Run("quote unknown frequency", func(t *testing.T) {
		status, _ := postEnvelope(t, server.URL+"/api/v1/checkout/quote",
			OrderRequest{ProductID: "bf4", Quantity: 1, Frequency: "daily"})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("quote non-subscribable product", func(t *testing.T) {
		// bc1 is clothing, not an essentials consumable.
		status, _ := postEnvelope(t, server.URL+"/api/v1/checkout/quote",
			OrderRequest{ProductID: "bc1", Quantity: 1, Frequency: "monthly"})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("place and fetch order", func(t *testing.T) {
		status, env := postEnvelope(t, server.URL+"/api/v1/checkout/orders",
			OrderRequest{ProductID: "bf1", Quantity: 2, Address: "12 Rose Street, Pune"})
		if status != http.StatusCreated {
			t.Fatalf("status = %d: %+v", status, env.Error)
		}
		orderID := dataMap(t, env)["id"].(string)
		if dataMap(t, env)["address"] != "12 Rose Street, Pune" {
			t.Errorf("address = %v, want the submitted address", dataMap(t, env)["address"])
		}

		status, env = getEnvelope(t, server.URL+"/api/v1/checkout/orders/"+orderID)
		if status != http.StatusOK {
			t.Fatalf("fetch status = %d", status)
		}
		if dataMap(t, env)["id"] != orderID {
			t.Errorf("fetched id = %v, want %s", dataMap(t, env)["id"], orderID)
		}

		status, env = getEnvelope(t, server.URL+"/api/v1/checkout/orders")
		if status != http.StatusOK {
			t.Fatalf("list status = %d", status)
		}
		if dataMap(t, env)["count"].(float64) < 1 {
			t.Error("order list is empty after placement")
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		status, _ := getEnvelope(t, server.URL+"/api/v1/checkout/orders/nope")
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("missing address", func(t *testing.T) {
		status, env := postEnvelope(t, server.URL+"/api/v1/checkout/orders",
			OrderRequest{ProductID: "bf1", Quantity: 1})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		status, _ := postEnvelope(t, server.URL+"/api/v1/checkout/orders",
			OrderRequest{ProductID: "nope", Quantity: 1, Address: "12 Rose Street, Pune"})
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})
}

func TestAssistantEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("product search", func(t *testing.T) {
		status, env := postEnvelope(t, server.URL+"/api/v1/assistant/chat",
			ChatRequest{Message: "find diapers"})
		if status != http.StatusOK {
			t.Fatalf("status = %d: %+v", status, env.Error)
		}
		data := dataMap(t, env)
		if data["intent"] != "product_search" {
			t.Errorf("intent = %v, want product_search", data["intent"])
		}
		if len(data["products"].([]interface{})) == 0 {
			t.Error("no products in reply")
		}
	})

	t.Run("question without llm gets canned reply", func(t *testing.T) {
		status, env := postEnvelope(t, server.URL+"/api/v1/assistant/chat",
			ChatRequest{Message: "how much sleep does a newborn need"})
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		data := dataMap(t, env)
		if data["intent"] != "question" {
			t.Errorf("intent = %v, want question", data["intent"])
		}
		if data["text"] == "" {
			t.Error("empty reply text")
		}
	})

	t.Run("empty message fails validation", func(t *testing.T) {
		status, _ := postEnvelope(t, server.URL+"/api/v1/assistant/chat", ChatRequest{})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})
}

func TestResponseEnvelope(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("missing ETag header")
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	env := decodeEnvelope(t, resp.Body)
	if env.Metadata.RequestID == "" {
		t.Error("envelope missing request id")
	}
	if env.Metadata.Timestamp.IsZero() {
		t.Error("envelope missing timestamp")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("go_")) {
		t.Error("metrics output missing runtime collectors")
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"limit=5", 5},
		{"limit=abc", 42},
		{"", 42},
		{"limit=-3", -3},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/?%s", tt.query), nil)
		if got := getIntParam(r, "limit", 42); got != tt.want {
			t.Errorf("getIntParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
