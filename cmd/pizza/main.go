package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"pizzaorder/internal/address"
	"pizzaorder/internal/api"
	"pizzaorder/internal/config"
	"pizzaorder/internal/customer"
	"pizzaorder/internal/order"
	"pizzaorder/internal/store"
	"pizzaorder/pkg/logger"
)

func main() {
	street := flag.String("street", "", "street address")
	city := flag.String("city", "", "city")
	region := flag.String("region", "", "state or province")
	zip := flag.String("zip", "", "postal code")
	first := flag.String("first", "", "customer first name")
	last := flag.String("last", "", "customer last name")
	email := flag.String("email", "", "customer email")
	phone := flag.String("phone", "", "customer phone")
	items := flag.String("items", "", "comma-separated item codes, each optionally CODE:QTY")
	coupon := flag.String("coupon", "", "coupon code to apply")
	delivery := flag.Bool("delivery", false, "order for delivery instead of carryout")
	place := flag.Bool("place", false, "actually place the order (cash); default is a price check only")
	flag.Parse()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log, options{
		street: *street, city: *city, region: *region, zip: *zip,
		first: *first, last: *last, email: *email, phone: *phone,
		items: *items, coupon: *coupon,
		delivery: *delivery, place: *place,
	}); err != nil {
		log.Error("order failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	street, city, region, zip string
	first, last, email, phone string
	items, coupon             string
	delivery, place           bool
}

func run(cfg *config.Config, log *slog.Logger, opts options) error {
	ctx := context.Background()

	addr, err := address.New(opts.street, opts.city, opts.region, opts.zip)
	if err != nil {
		return err
	}
	cust, err := customer.New(opts.first, opts.last, opts.email, opts.phone)
	if err != nil {
		return err
	}

	service := order.ServiceCarryout
	if opts.delivery {
		service = order.ServiceDelivery
	}

	client := api.NewClient(time.Duration(cfg.API.RequestTimeout)*time.Second, log)
	eps, err := api.EndpointsFor(cfg.Country)
	if err != nil {
		return err
	}
	if cfg.API.OrderHost != "" {
		eps.OrderBase = cfg.API.OrderHost
	}
	if cfg.API.TrackHost != "" {
		eps.TrackBase = cfg.API.TrackHost
	}

	locator := &store.Locator{Client: client, Endpoints: eps}
	st, err := locator.Nearest(ctx, addr, service)
	if err != nil {
		return err
	}
	log.Info("found store", "store_id", st.ID)

	ord, err := order.New(ctx, order.Params{
		Store:     st,
		Customer:  cust,
		Address:   addr,
		Country:   cfg.Country,
		Service:   service,
		Client:    client,
		Endpoints: &eps,
	})
	if err != nil {
		return err
	}

	codes, err := parseItems(opts.items)
	if err != nil {
		return err
	}
	for _, it := range codes {
		if _, err := ord.AddItem(it.code, it.qty, nil); err != nil {
			return err
		}
		log.Info("added item", "code", it.code, "qty", it.qty)
	}
	if opts.coupon != "" {
		ord.AddCoupon(opts.coupon, 1)
	}

	if opts.place {
		resp, err := ord.Place(ctx, nil, nil)
		if err != nil {
			return err
		}
		log.Info("order placed", "order_id", orderField(resp, "OrderID"))
		return nil
	}

	resp, err := ord.PayWith(ctx, nil, nil)
	if err != nil {
		return err
	}
	log.Info("price check complete (dry run, pass -place to submit)",
		"order_id", orderField(resp, "OrderID"),
		"amounts", orderField(resp, "Amounts"),
		"wait_minutes", orderField(resp, "EstimatedWaitMinutes"),
	)
	return nil
}

type itemSpec struct {
	code string
	qty  int
}

// parseItems reads "P12I:2,2LCOKE" into item specs. Quantity defaults to 1.
func parseItems(s string) ([]itemSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("at least one item is required (-items)")
	}

	var specs []itemSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, qtyStr, found := strings.Cut(part, ":")
		qty := 1
		if found {
			n, err := strconv.Atoi(qtyStr)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid quantity in item %q", part)
			}
			qty = n
		}
		specs = append(specs, itemSpec{code: code, qty: qty})
	}
	return specs, nil
}

func orderField(resp map[string]any, key string) any {
	if ord, ok := resp["Order"].(map[string]any); ok {
		return ord[key]
	}
	return nil
}
