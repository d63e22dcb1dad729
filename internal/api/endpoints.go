package api

import (
	"fmt"
	"net/url"
)

// Supported countries. The ordering and tracking services run on separate
// hosts per country.
const (
	CountryUSA    = "us"
	CountryCanada = "ca"
)

// Endpoints builds the URLs of the remote ordering and tracking services.
// The zero value is not usable; construct with EndpointsFor or fill both
// bases explicitly (tests point them at a local double).
type Endpoints struct {
	OrderBase string
	TrackBase string
}

// EndpointsFor returns the production endpoints for a country.
func EndpointsFor(country string) (Endpoints, error) {
	switch country {
	case CountryUSA:
		return Endpoints{
			OrderBase: "https://order.dominos.com",
			TrackBase: "https://trkweb.dominos.com",
		}, nil
	case CountryCanada:
		return Endpoints{
			OrderBase: "https://order.dominos.ca",
			TrackBase: "https://trkweb.dominos.ca",
		}, nil
	}
	return Endpoints{}, fmt.Errorf("unsupported country %q", country)
}

// StoreLocator returns the nearby-stores search URL. line1 is the street
// line, line2 the "City, Region, Zip" line.
func (e Endpoints) StoreLocator(line1, line2, service string) string {
	q := url.Values{}
	q.Set("s", line1)
	q.Set("c", line2)
	q.Set("type", service)
	return e.OrderBase + "/power/store-locator?" + q.Encode()
}

// StoreProfile returns the store detail URL.
func (e Endpoints) StoreProfile(storeID string) string {
	return fmt.Sprintf("%s/power/store/%s/profile", e.OrderBase, url.PathEscape(storeID))
}

// StoreMenu returns the structured menu URL for a store.
func (e Endpoints) StoreMenu(storeID, lang string) string {
	q := url.Values{}
	q.Set("lang", lang)
	q.Set("structured", "true")
	return fmt.Sprintf("%s/power/store/%s/menu?%s", e.OrderBase, url.PathEscape(storeID), q.Encode())
}

// CouponDetail returns the coupon detail URL for a store.
func (e Endpoints) CouponDetail(storeID, couponCode, lang string) string {
	q := url.Values{}
	q.Set("lang", lang)
	return fmt.Sprintf("%s/power/store/%s/coupon/%s?%s",
		e.OrderBase, url.PathEscape(storeID), url.PathEscape(couponCode), q.Encode())
}

// ValidateOrder returns the order validation URL.
func (e Endpoints) ValidateOrder() string {
	return e.OrderBase + "/power/validate-order"
}

// PriceOrder returns the order pricing URL.
func (e Endpoints) PriceOrder() string {
	return e.OrderBase + "/power/price-order"
}

// PlaceOrder returns the order placement URL.
func (e Endpoints) PlaceOrder() string {
	return e.OrderBase + "/power/place-order"
}

// TrackByOrder returns the JSON tracker URL for a store id and order key.
func (e Endpoints) TrackByOrder(storeID, orderKey string) string {
	q := url.Values{}
	q.Set("StoreID", storeID)
	q.Set("OrderKey", orderKey)
	return e.TrackBase + "/orderstorage/GetTrackerData?" + q.Encode()
}

// TrackByPhone returns the XML tracker URL for a phone number.
func (e Endpoints) TrackByPhone(phone string) string {
	q := url.Values{}
	q.Set("Phone", phone)
	return e.TrackBase + "/orderstorage/GetTrackerData?" + q.Encode()
}
