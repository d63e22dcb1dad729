package address

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Address is a normalized delivery address in the shape the remote
// ordering service expects.
type Address struct {
	Street string `validate:"required"`
	City   string `validate:"required"`
	Region string
	Zip    string `validate:"required"`
	Type   string // House, Apartment or Business
}

// New builds a validated Address. Type defaults to House.
func New(street, city, region, zip string) (*Address, error) {
	a := &Address{
		Street: strings.TrimSpace(street),
		City:   strings.TrimSpace(city),
		Region: strings.TrimSpace(region),
		Zip:    strings.TrimSpace(zip),
		Type:   "House",
	}

	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}
	return a, nil
}

// LineOne returns the street line used by the store locator.
func (a *Address) LineOne() string {
	return a.Street
}

// LineTwo returns the "City, Region, Zip" line used by the store locator.
func (a *Address) LineTwo() string {
	if a.Region == "" {
		return fmt.Sprintf("%s, %s", a.City, a.Zip)
	}
	return fmt.Sprintf("%s, %s, %s", a.City, a.Region, a.Zip)
}

// Data returns the wire form embedded in the order document.
func (a *Address) Data() map[string]any {
	return map[string]any{
		"Street":     a.Street,
		"City":       a.City,
		"Region":     a.Region,
		"PostalCode": a.Zip,
		"Type":       a.Type,
	}
}
