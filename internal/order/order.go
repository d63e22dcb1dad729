package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"pizzaorder/internal/address"
	"pizzaorder/internal/api"
	"pizzaorder/internal/customer"
	"pizzaorder/internal/menu"
	"pizzaorder/internal/payment"
	"pizzaorder/internal/store"
)

// Service methods accepted by the remote ordering service.
const (
	ServiceCarryout = "Carryout"
	ServiceDelivery = "Delivery"
)

// The service reports a rejected request with this status value.
const statusRejected = -1

var (
	ErrInvalidService  = errors.New("service method must be Carryout or Delivery")
	ErrItemNotFound    = errors.New("item not found")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrIncompleteOrder = errors.New("order is missing a required field")
)

// RejectedError reports that the pricing round-trip was refused by the
// remote service. Response carries the full decoded reply for diagnostics.
type RejectedError struct {
	Response map[string]any
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("price check rejected: status %d", statusOf(e.Response))
}

// Order owns one mutable order document through its whole lifecycle:
// item and coupon mutation, pricing/validation round-trips with the
// server-authoritative merge, payment attachment and final placement.
//
// An Order is not safe for concurrent use.
type Order struct {
	store    *store.Store
	customer *customer.Customer
	address  *address.Address
	menu     *menu.Menu
	client   *api.Client
	eps      api.Endpoints

	// data is the wire document submitted under the "Order" key. It is
	// mutated in place and only ever touched through Order's methods.
	data map[string]any
}

// Params configures a new Order. Store, Customer and Address are required.
type Params struct {
	Store    *store.Store
	Customer *customer.Customer
	Address  *address.Address

	Country string // defaults to api.CountryUSA
	Service string // defaults to ServiceCarryout

	// Data replaces the default document wholesale when non-nil; the
	// address and service method from the explicit arguments still win.
	Data     map[string]any
	OrderID  string
	MenuData map[string]any

	Client    *api.Client
	Endpoints *api.Endpoints // overrides the country's endpoints when set
}

// New builds an order for a store, resolving the menu from MenuData or by
// a live fetch.
func New(ctx context.Context, p Params) (*Order, error) {
	service := p.Service
	if service == "" {
		service = ServiceCarryout
	}
	if service != ServiceCarryout && service != ServiceDelivery {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidService, service)
	}

	country := p.Country
	if country == "" {
		country = api.CountryUSA
	}

	client := p.Client
	if client == nil {
		client = api.NewClient(0, nil)
	}

	var eps api.Endpoints
	if p.Endpoints != nil {
		eps = *p.Endpoints
	} else {
		var err error
		eps, err = api.EndpointsFor(country)
		if err != nil {
			return nil, err
		}
	}

	var m *menu.Menu
	if p.MenuData != nil {
		m = menu.FromData(p.MenuData)
	} else {
		var err error
		m, err = menu.Fetch(ctx, client, eps, p.Store.ID)
		if err != nil {
			return nil, err
		}
	}

	o := &Order{
		store:    p.Store,
		customer: p.Customer,
		address:  p.Address,
		menu:     m,
		client:   client,
		eps:      eps,
	}

	o.data = map[string]any{
		"Address": p.Address.Data(),
		"Coupons": []any{}, "CustomerID": "", "Extension": "",
		"OrderChannel": "OLO", "OrderID": p.OrderID, "NoCombine": true,
		"OrderMethod": "Web", "OrderTaker": nil, "Payments": []any{},
		"Products": []any{}, "Market": "", "Currency": "",
		"ServiceMethod": service, "Tags": map[string]any{}, "Version": "1.0",
		"SourceOrganizationURI": "order.dominos.com", "LanguageCode": "en",
		"Partners": map[string]any{}, "NewUser": true, "metaData": map[string]any{},
		"Amounts": map[string]any{}, "BusinessDate": "", "EstimatedWaitMinutes": "",
		"PriceOrderTime": "", "AmountsBreakdown": map[string]any{},
	}

	// A caller-supplied document wins, except for the address and service
	// method, which always come from the explicit arguments.
	if p.Data != nil {
		o.data = p.Data
		o.data["Address"] = p.Address.Data()
		o.data["ServiceMethod"] = service
	}

	return o, nil
}

// AddItem copies the menu template for code into the order, stamped with
// the given quantity and options. A quantity below 1 is treated as 1. The
// returned entry is the order's own copy; the catalog template is never
// aliased.
func (o *Order) AddItem(code string, qty int, options map[string]any) (map[string]any, error) {
	tmpl, ok := o.menu.Variant(code)
	if !ok {
		return nil, fmt.Errorf("%w: no menu variant %q", ErrItemNotFound, code)
	}

	if qty < 1 {
		qty = 1
	}
	if options == nil {
		options = map[string]any{}
	}

	item := deepCopy(tmpl).(map[string]any)
	item["ID"] = 1
	item["isNew"] = true
	item["Qty"] = qty
	item["AutoRemove"] = false
	item["Options"] = options

	o.data["Products"] = append(o.products(), item)
	return item, nil
}

// RemoveItem removes and returns the first product whose code matches.
func (o *Order) RemoveItem(code string) (map[string]any, error) {
	list := o.products()
	for i, raw := range list {
		item, ok := raw.(map[string]any)
		if !ok || item["Code"] != code {
			continue
		}
		o.data["Products"] = append(list[:i:i], list[i+1:]...)
		return item, nil
	}
	return nil, fmt.Errorf("%w: no product with code %q", ErrItemNotFound, code)
}

// AddCoupon appends a coupon entry. Duplicates are allowed. qty is
// accepted for interface compatibility but not persisted; only the code
// goes on the wire.
func (o *Order) AddCoupon(code string, qty int) {
	_ = qty
	o.data["Coupons"] = append(o.coupons(), map[string]any{"Code": code})
}

// RemoveCoupon removes and returns the first coupon whose code matches.
func (o *Order) RemoveCoupon(code string) (map[string]any, error) {
	list := o.coupons()
	for i, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok || entry["Code"] != code {
			continue
		}
		o.data["Coupons"] = append(list[:i:i], list[i+1:]...)
		return entry, nil
	}
	return nil, fmt.Errorf("%w: no coupon with code %q", ErrCouponNotFound, code)
}

// Validate submits the order to the validation endpoint and merges the
// response. It reports whether the service accepted the document.
func (o *Order) Validate(ctx context.Context) (bool, error) {
	resp, err := o.send(ctx, o.eps.ValidateOrder(), true)
	if err != nil {
		return false, err
	}
	return statusOf(resp) != statusRejected, nil
}

// PayWith prices the order, merges the authoritative amounts, and replaces
// the Payments list with exactly one of three mutually exclusive shapes:
// a single card entry charged the order's customer amount, one entry per
// supplied gift card, or a single cash entry. Card beats gift cards beats
// cash. Returns the pricing response.
//
// Whether the payments cover the full price is left to the remote service
// to enforce.
func (o *Order) PayWith(ctx context.Context, card *payment.Card, giftcards []payment.GiftCard) (map[string]any, error) {
	resp, err := o.send(ctx, o.eps.PriceOrder(), true)
	if err != nil {
		return nil, err
	}
	if statusOf(resp) == statusRejected {
		return nil, &RejectedError{Response: resp}
	}

	switch {
	case card != nil:
		entry, err := cardEntry(card, o.customerAmount())
		if err != nil {
			return nil, err
		}
		o.data["Payments"] = []any{entry}
	case len(giftcards) > 0:
		payments := make([]any, 0, len(giftcards))
		for _, gc := range giftcards {
			payments = append(payments, map[string]any{
				"Type":         "GiftCard",
				"Amount":       gc.Amount,
				"Number":       gc.Number,
				"SecurityCode": gc.PIN,
			})
		}
		o.data["Payments"] = payments
	default:
		o.data["Payments"] = []any{map[string]any{"Type": "Cash"}}
	}

	return resp, nil
}

// Place prices the order and attaches payment via PayWith, then submits it
// for fulfillment. The placement response is returned as the confirmation
// and is not merged back into the document.
func (o *Order) Place(ctx context.Context, card *payment.Card, giftcards []payment.GiftCard) (map[string]any, error) {
	if _, err := o.PayWith(ctx, card, giftcards); err != nil {
		return nil, err
	}
	return o.send(ctx, o.eps.PlaceOrder(), false)
}

// send stamps the store id and customer attribution onto the document,
// checks the submission preconditions, POSTs the document and optionally
// merges the response's order fields back into local state.
func (o *Order) send(ctx context.Context, url string, merge bool) (map[string]any, error) {
	// Always recomputed from the live collaborators, never cached.
	o.data["StoreID"] = o.store.ID
	o.data["Email"] = o.customer.Email
	o.data["FirstName"] = o.customer.FirstName
	o.data["LastName"] = o.customer.LastName
	o.data["Phone"] = o.customer.Phone

	for _, key := range []string{"StoreID", "Address"} {
		if !truthy(o.data[key]) {
			return nil, fmt.Errorf("%w: %q is empty", ErrIncompleteOrder, key)
		}
	}

	resp, err := o.client.PostJSON(ctx, url, map[string]any{"Order": o.data})
	if err != nil {
		return nil, err
	}

	if merge {
		remote, _ := resp["Order"].(map[string]any)
		for key, value := range remote {
			if shouldMerge(value) {
				o.data[key] = value
			}
		}
	}
	return resp, nil
}

// customerAmount returns the server-computed customer-facing total, or 0
// before the first successful price check.
func (o *Order) customerAmount() float64 {
	amounts, ok := o.data["Amounts"].(map[string]any)
	if !ok {
		return 0
	}
	v, _ := amounts["Customer"].(float64)
	return v
}

func (o *Order) products() []any {
	list, _ := o.data["Products"].([]any)
	return list
}

func (o *Order) coupons() []any {
	list, _ := o.data["Coupons"].([]any)
	return list
}

func cardEntry(card *payment.Card, amount float64) (map[string]any, error) {
	number, err := strconv.ParseInt(card.Number, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("card number is not numeric: %w", err)
	}
	cvv, err := strconv.Atoi(card.CVV)
	if err != nil {
		return nil, fmt.Errorf("card security code is not numeric: %w", err)
	}
	zip, err := strconv.Atoi(card.PostalCode)
	if err != nil {
		return nil, fmt.Errorf("card postal code is not numeric: %w", err)
	}

	return map[string]any{
		"Type":         "CreditCard",
		"Expiration":   card.Expiration,
		"Amount":       amount,
		"CardType":     card.Type,
		"Number":       number,
		"SecurityCode": cvv,
		"PostalCode":   zip,
	}, nil
}

func statusOf(resp map[string]any) int {
	if f, ok := resp["Status"].(float64); ok {
		return int(f)
	}
	return 0
}
