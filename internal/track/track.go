package track

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"pizzaorder/internal/api"
)

// ErrNoOrders indicates the tracker has no record for the query.
var ErrNoOrders = errors.New("no orders to track")

// OrderStatus is one tracked order as reported by the tracker service.
type OrderStatus struct {
	StoreID       string `xml:"StoreID"`
	OrderKey      string `xml:"OrderKey"`
	Phone         string `xml:"Phone"`
	ServiceMethod string `xml:"ServiceMethod"`
	Description   string `xml:"OrderDescription"`
	Status        string `xml:"OrderStatus"`
	StartTime     string `xml:"StartTime"`
}

// The tracker's phone lookup answers with a SOAP envelope.
type trackerEnvelope struct {
	XMLName  xml.Name      `xml:"Envelope"`
	Statuses []OrderStatus `xml:"Body>GetTrackerDataResponse>OrderStatuses>OrderStatus"`
}

// ByPhone returns every order the tracker holds for a phone number.
func ByPhone(ctx context.Context, client *api.Client, eps api.Endpoints, phone string) ([]OrderStatus, error) {
	body, err := client.GetBytes(ctx, eps.TrackByPhone(phone))
	if err != nil {
		return nil, fmt.Errorf("tracker request failed: %w", err)
	}

	var envelope trackerEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode tracker response: %w", err)
	}

	if len(envelope.Statuses) == 0 {
		return nil, fmt.Errorf("%w for phone %s", ErrNoOrders, phone)
	}
	return envelope.Statuses, nil
}

// ByOrder returns the tracker record for one order key at a store.
func ByOrder(ctx context.Context, client *api.Client, eps api.Endpoints, storeID, orderKey string) (map[string]any, error) {
	resp, err := client.GetJSON(ctx, eps.TrackByOrder(storeID, orderKey))
	if err != nil {
		return nil, fmt.Errorf("tracker request failed: %w", err)
	}
	return resp, nil
}
