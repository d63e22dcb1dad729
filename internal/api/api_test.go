package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEndpointsFor(t *testing.T) {
	tests := []struct {
		country   string
		wantOrder string
		wantErr   bool
	}{
		{CountryUSA, "https://order.dominos.com", false},
		{CountryCanada, "https://order.dominos.ca", false},
		{"uk", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			eps, err := EndpointsFor(tt.country)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EndpointsFor(%q) error = %v", tt.country, err)
			}
			if eps.OrderBase != tt.wantOrder {
				t.Errorf("OrderBase = %q, want %q", eps.OrderBase, tt.wantOrder)
			}
		})
	}
}

func TestEndpointURLs(t *testing.T) {
	eps := Endpoints{OrderBase: "https://order.example", TrackBase: "https://track.example"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			"store locator",
			eps.StoreLocator("740 Superior Ave", "Cleveland, OH, 44114", "Delivery"),
			"https://order.example/power/store-locator?c=Cleveland%2C+OH%2C+44114&s=740+Superior+Ave&type=Delivery",
		},
		{
			"store profile",
			eps.StoreProfile("R001"),
			"https://order.example/power/store/R001/profile",
		},
		{
			"store menu",
			eps.StoreMenu("R001", "en"),
			"https://order.example/power/store/R001/menu?lang=en&structured=true",
		},
		{
			"coupon detail",
			eps.CouponDetail("R001", "9193", "en"),
			"https://order.example/power/store/R001/coupon/9193?lang=en",
		},
		{
			"validate",
			eps.ValidateOrder(),
			"https://order.example/power/validate-order",
		},
		{
			"price",
			eps.PriceOrder(),
			"https://order.example/power/price-order",
		},
		{
			"place",
			eps.PlaceOrder(),
			"https://order.example/power/place-order",
		},
		{
			"track by order",
			eps.TrackByOrder("R001", "123456"),
			"https://track.example/orderstorage/GetTrackerData?OrderKey=123456&StoreID=R001",
		},
		{
			"track by phone",
			eps.TrackByPhone("2165551234"),
			"https://track.example/orderstorage/GetTrackerData?Phone=2165551234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got  %s\nwant %s", tt.got, tt.want)
			}
		})
	}
}

func TestPostJSONHeadersAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != referer {
			t.Errorf("Referer = %q, want %q", r.Header.Get("Referer"), referer)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"Status": 0, "Echo": body["Order"]})
	}))
	defer srv.Close()

	c := NewClient(0, nil)
	resp, err := c.PostJSON(context.Background(), srv.URL, map[string]any{"Order": map[string]any{"StoreID": "R001"}})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	echo, _ := resp["Echo"].(map[string]any)
	if echo["StoreID"] != "R001" {
		t.Errorf("response not decoded: %#v", resp)
	}
}

func TestNonSuccessStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(0, nil)

	if _, err := c.PostJSON(context.Background(), srv.URL, map[string]any{}); !errors.Is(err, ErrHTTPStatus) {
		t.Errorf("PostJSON error = %v, want ErrHTTPStatus", err)
	}
	if _, err := c.GetJSON(context.Background(), srv.URL); !errors.Is(err, ErrHTTPStatus) {
		t.Errorf("GetJSON error = %v, want ErrHTTPStatus", err)
	}
	if _, err := c.GetBytes(context.Background(), srv.URL); !errors.Is(err, ErrHTTPStatus) {
		t.Errorf("GetBytes error = %v, want ErrHTTPStatus", err)
	}
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte("<Envelope></Envelope>"))
	}))
	defer srv.Close()

	c := NewClient(0, nil)
	body, err := c.GetBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if !strings.Contains(string(body), "Envelope") {
		t.Errorf("unexpected body: %s", body)
	}
}
