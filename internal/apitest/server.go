// Package apitest provides an in-process double of the remote ordering
// API for integration tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"pizzaorder/internal/api"
)

// PoisonCoupon forces a rejected (-1) status on validation and pricing,
// simulating a coupon the service refuses.
const PoisonCoupon = "EXPIRED100"

// TrackedPhone is the one phone number the fake tracker knows about.
const TrackedPhone = "2165551234"

// StoreID is the store every fixture belongs to.
const StoreID = "R001"

// catalog seeds the fake menu and price table.
var catalog = map[string]struct {
	name    string
	product string
	price   float64
}{
	"P12I":   {"Medium Hand Tossed Pizza", "S_PIZZA", 13.99},
	"P14I":   {"Large Hand Tossed Pizza", "S_PIZZA", 15.99},
	"W08P":   {"8-Piece Plain Wings", "S_WINGS", 8.49},
	"B8PCPT": {"Parmesan Bread Twists", "S_BREAD", 6.49},
	"2LCOKE": {"2-Liter Coke", "S_DRINK", 2.99},
}

// Server is a running fake ordering API. Endpoints points a client at it.
type Server struct {
	URL       string
	Endpoints api.Endpoints
}

// New starts the fake API and shuts it down with the test.
func New(t *testing.T) *Server {
	t.Helper()

	r := chi.NewRouter()

	// The production service answers browsers, so the double carries the
	// same permissive CORS surface.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Referer"},
		MaxAge:         300,
	}))

	r.Post("/power/validate-order", handleValidate)
	r.Post("/power/price-order", handlePrice)
	r.Post("/power/place-order", handlePlace)
	r.Get("/power/store-locator", handleLocator)
	r.Get("/power/store/{storeID}/profile", handleProfile)
	r.Get("/power/store/{storeID}/menu", handleMenu)
	r.Get("/orderstorage/GetTrackerData", handleTracker)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return &Server{
		URL:       ts.URL,
		Endpoints: api.Endpoints{OrderBase: ts.URL, TrackBase: ts.URL},
	}
}

func handleValidate(w http.ResponseWriter, r *http.Request) {
	order, ok := decodeOrder(w, r)
	if !ok {
		return
	}
	if hasPoisonCoupon(order) {
		respond(w, order, -1)
		return
	}
	stampOrderID(order)
	respond(w, order, 0)
}

func handlePrice(w http.ResponseWriter, r *http.Request) {
	order, ok := decodeOrder(w, r)
	if !ok {
		return
	}
	if hasPoisonCoupon(order) {
		respond(w, order, -1)
		return
	}

	stampOrderID(order)
	total := priceProducts(order)
	order["Amounts"] = map[string]any{
		"Menu":      total,
		"Discount":  0,
		"Surcharge": 0,
		"Payment":   total,
		"Customer":  total,
	}
	order["EstimatedWaitMinutes"] = "22"
	order["BusinessDate"] = time.Now().Format("2006-01-02")
	order["PriceOrderTime"] = time.Now().Format("2006-01-02 15:04:05")
	respond(w, order, 0)
}

func handlePlace(w http.ResponseWriter, r *http.Request) {
	order, ok := decodeOrder(w, r)
	if !ok {
		return
	}
	if payments, _ := order["Payments"].([]any); len(payments) == 0 {
		respond(w, order, -1)
		return
	}
	respond(w, order, 0)
}

func handleLocator(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("type")
	// First store is offline so locators must filter, not blindly take
	// the head of the list.
	writeJSON(w, map[string]any{
		"Status": 0,
		"Stores": []any{
			map[string]any{
				"StoreID":     "R000",
				"IsOnlineNow": false,
				"ServiceIsOpen": map[string]any{
					"Carryout": false, "Delivery": false,
				},
			},
			map[string]any{
				"StoreID":            StoreID,
				"IsOnlineNow":        true,
				"Phone":              "216-555-0199",
				"AddressDescription": "740 Superior Ave\nCleveland, OH 44114",
				"ServiceIsOpen": map[string]any{
					"Carryout": true, "Delivery": true,
				},
				"ServiceMethodEstimatedWaitMinutes": map[string]any{
					service: map[string]any{"Min": 15, "Max": 25},
				},
			},
		},
	})
}

func handleProfile(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	writeJSON(w, map[string]any{
		"StoreID":            storeID,
		"Phone":              "216-555-0199",
		"IsOpen":             true,
		"IsOnlineNow":        true,
		"AddressDescription": "740 Superior Ave\nCleveland, OH 44114",
	})
}

func handleMenu(w http.ResponseWriter, r *http.Request) {
	variants := map[string]any{}
	products := map[string]any{}
	for code, item := range catalog {
		variants[code] = map[string]any{
			"Code":        code,
			"Name":        item.name,
			"Price":       fmt.Sprintf("%.2f", item.price),
			"ProductCode": item.product,
			"Tags":        map[string]any{"DefaultToppings": "", "DefaultSides": ""},
		}
		products[item.product] = map[string]any{
			"Code": item.product,
			"Name": item.name,
		}
	}
	writeJSON(w, map[string]any{
		"Variants": variants,
		"Products": products,
		"Coupons": map[string]any{
			"9193": map[string]any{"Code": "9193", "Name": "Two Medium Two-Topping Pizzas"},
		},
	})
}

func handleTracker(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if phone := q.Get("Phone"); phone != "" {
		w.Header().Set("Content-Type", "text/xml")
		statuses := ""
		if phone == TrackedPhone {
			statuses = fmt.Sprintf(`<OrderStatus>
				<StoreID>%s</StoreID>
				<OrderKey>123456789</OrderKey>
				<Phone>%s</Phone>
				<ServiceMethod>Carryout</ServiceMethod>
				<OrderDescription>1 Medium Hand Tossed Pizza</OrderDescription>
				<OrderStatus>Makeline</OrderStatus>
				<StartTime>2024-05-01T18:02:11</StartTime>
			</OrderStatus>`, StoreID, phone)
		}
		fmt.Fprintf(w, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
			<soap:Body>
				<GetTrackerDataResponse>
					<OrderStatuses>%s</OrderStatuses>
				</GetTrackerDataResponse>
			</soap:Body>
		</soap:Envelope>`, statuses)
		return
	}

	writeJSON(w, map[string]any{
		"Version": "1.5",
		"OrderStatuses": []any{
			map[string]any{
				"StoreID":     q.Get("StoreID"),
				"OrderKey":    q.Get("OrderKey"),
				"OrderStatus": "Oven",
			},
		},
	})
}

// Request/response helpers

func decodeOrder(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	order, ok := body["Order"].(map[string]any)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing Order")
		return nil, false
	}
	return order, true
}

func respond(w http.ResponseWriter, order map[string]any, status int) {
	writeJSON(w, map[string]any{"Order": order, "Status": status})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func stampOrderID(order map[string]any) {
	if id, _ := order["OrderID"].(string); id == "" {
		order["OrderID"] = uuid.New().String()
	}
}

func hasPoisonCoupon(order map[string]any) bool {
	coupons, _ := order["Coupons"].([]any)
	for _, raw := range coupons {
		entry, ok := raw.(map[string]any)
		if ok && entry["Code"] == PoisonCoupon {
			return true
		}
	}
	return false
}

// Price returns the fixture price for a variant code, for test assertions.
func Price(code string) float64 {
	return catalog[code].price
}

func priceProducts(order map[string]any) float64 {
	products, _ := order["Products"].([]any)
	total := 0.0
	for _, raw := range products {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		code, _ := item["Code"].(string)
		qty, ok := item["Qty"].(float64)
		if !ok {
			qty = 1
		}
		total += catalog[code].price * qty
	}
	return math.Round(total*100) / 100
}
