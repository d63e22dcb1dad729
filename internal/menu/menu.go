package menu

import (
	"context"
	"fmt"

	"pizzaorder/internal/api"
)

// Menu is the orderable catalog of one store. Variants is the table the
// order builder draws line-item templates from; entries keep the raw wire
// shape because the service accepts them back verbatim inside an order.
type Menu struct {
	Variants map[string]map[string]any
	Products map[string]map[string]any
	Coupons  map[string]map[string]any
}

// FromData builds a Menu from a pre-fetched structured menu document.
func FromData(data map[string]any) *Menu {
	return &Menu{
		Variants: section(data, "Variants"),
		Products: section(data, "Products"),
		Coupons:  section(data, "Coupons"),
	}
}

// Fetch retrieves the structured menu for a store.
func Fetch(ctx context.Context, client *api.Client, eps api.Endpoints, storeID string) (*Menu, error) {
	data, err := client.GetJSON(ctx, eps.StoreMenu(storeID, "en"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu for store %s: %w", storeID, err)
	}
	return FromData(data), nil
}

// Variant returns the line-item template for a code. The template is the
// catalog's own record; callers must copy before mutating.
func (m *Menu) Variant(code string) (map[string]any, bool) {
	v, ok := m.Variants[code]
	return v, ok
}

func section(data map[string]any, key string) map[string]map[string]any {
	out := make(map[string]map[string]any)
	raw, ok := data[key].(map[string]any)
	if !ok {
		return out
	}
	for code, v := range raw {
		if entry, ok := v.(map[string]any); ok {
			out[code] = entry
		}
	}
	return out
}
