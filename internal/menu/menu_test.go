package menu

import (
	"context"
	"testing"

	"pizzaorder/internal/api"
	"pizzaorder/internal/apitest"
)

func TestFromData(t *testing.T) {
	m := FromData(map[string]any{
		"Variants": map[string]any{
			"P12I": map[string]any{"Code": "P12I", "Name": "Medium Hand Tossed Pizza"},
			"junk": "not an object",
		},
		"Products": map[string]any{
			"S_PIZZA": map[string]any{"Code": "S_PIZZA"},
		},
	})

	v, ok := m.Variant("P12I")
	if !ok || v["Name"] != "Medium Hand Tossed Pizza" {
		t.Errorf("Variant(P12I) = %#v, %v", v, ok)
	}
	if _, ok := m.Variant("junk"); ok {
		t.Error("non-object variant entries should be skipped")
	}
	if _, ok := m.Variant("MISSING"); ok {
		t.Error("unknown code should not resolve")
	}
	if len(m.Products) != 1 {
		t.Errorf("Products = %#v", m.Products)
	}
	if len(m.Coupons) != 0 {
		t.Error("absent sections should parse as empty, not nil panic")
	}
}

func TestFetch(t *testing.T) {
	srv := apitest.New(t)
	client := api.NewClient(0, nil)

	m, err := Fetch(context.Background(), client, srv.Endpoints, apitest.StoreID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	v, ok := m.Variant("P12I")
	if !ok {
		t.Fatal("fetched menu missing P12I variant")
	}
	if v["Code"] != "P12I" || v["Price"] == "" {
		t.Errorf("variant shape wrong: %#v", v)
	}
}

func TestFetchUnreachable(t *testing.T) {
	client := api.NewClient(0, nil)
	eps := api.Endpoints{OrderBase: "http://127.0.0.1:1"}

	if _, err := Fetch(context.Background(), client, eps, "R001"); err == nil {
		t.Error("Fetch against an unreachable host should fail")
	}
}
