package store

import (
	"context"
	"errors"
	"fmt"

	"pizzaorder/internal/address"
	"pizzaorder/internal/api"
	"pizzaorder/internal/menu"
)

// ErrNoStores indicates the locator found no open store for the address
// and service method.
var ErrNoStores = errors.New("no open store found")

// Store is one physical store of the chain.
type Store struct {
	ID   string
	Data map[string]any

	client *api.Client
	eps    api.Endpoints
}

// New wraps a known store id without a locator round-trip.
func New(id string, client *api.Client, eps api.Endpoints) *Store {
	return &Store{ID: id, client: client, eps: eps}
}

// Profile fetches the store's detail record.
func (s *Store) Profile(ctx context.Context) (map[string]any, error) {
	profile, err := s.client.GetJSON(ctx, s.eps.StoreProfile(s.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for store %s: %w", s.ID, err)
	}
	return profile, nil
}

// Menu fetches the store's orderable catalog.
func (s *Store) Menu(ctx context.Context) (*menu.Menu, error) {
	return menu.Fetch(ctx, s.client, s.eps, s.ID)
}

// Locator finds stores near an address.
type Locator struct {
	Client    *api.Client
	Endpoints api.Endpoints
}

// Nearest returns the closest store that is online and open for the given
// service method. The locator response is ordered by distance; the first
// store passing both checks wins.
func (l *Locator) Nearest(ctx context.Context, addr *address.Address, service string) (*Store, error) {
	resp, err := l.Client.GetJSON(ctx, l.Endpoints.StoreLocator(addr.LineOne(), addr.LineTwo(), service))
	if err != nil {
		return nil, fmt.Errorf("store search failed: %w", err)
	}

	stores, _ := resp["Stores"].([]any)
	for _, raw := range stores {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if online, _ := entry["IsOnlineNow"].(bool); !online {
			continue
		}
		if !serviceOpen(entry, service) {
			continue
		}

		id := stringValue(entry["StoreID"])
		if id == "" {
			continue
		}
		return &Store{ID: id, Data: entry, client: l.Client, eps: l.Endpoints}, nil
	}

	return nil, fmt.Errorf("%w near %q for %s", ErrNoStores, addr.LineTwo(), service)
}

func serviceOpen(entry map[string]any, service string) bool {
	open, ok := entry["ServiceIsOpen"].(map[string]any)
	if !ok {
		return false
	}
	flag, _ := open[service].(bool)
	return flag
}

// stringValue tolerates the service returning ids as either strings or
// numbers.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return ""
	}
}
