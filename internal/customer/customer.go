package customer

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Customer carries the attribution fields stamped onto every order
// submission.
type Customer struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,min=10"`
}

// New builds a validated Customer.
func New(firstName, lastName, email, phone string) (*Customer, error) {
	c := &Customer{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
	}

	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid customer: %w", err)
	}
	return c, nil
}
