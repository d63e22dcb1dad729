package payment

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrUnknownCardType indicates the card number matches no supported brand.
var ErrUnknownCardType = errors.New("unknown card type")

// Brand detection by number shape, in match order.
var cardPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"VISA", regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)},
	{"MASTERCARD", regexp.MustCompile(`^5[1-5][0-9]{14}$`)},
	{"AMEX", regexp.MustCompile(`^3[47][0-9]{13}$`)},
	{"DINERS", regexp.MustCompile(`^3(?:0[0-5]|[68][0-9])[0-9]{11}$`)},
	{"DISCOVER", regexp.MustCompile(`^6(?:011|5[0-9]{2})[0-9]{12}$`)},
	{"JCB", regexp.MustCompile(`^(?:2131|1800|35[0-9]{3})[0-9]{11}$`)},
}

// Card is a credit card payment instrument. Type is derived from the
// number at construction.
type Card struct {
	Number     string `validate:"required,credit_card"`
	Expiration string `validate:"required,numeric"`
	CVV        string `validate:"required,numeric,min=3,max=4"`
	PostalCode string `validate:"required,numeric"`
	Type       string
}

// NewCard builds a validated Card. Expiration is MMYY digits.
func NewCard(number, expiration, cvv, postalCode string) (*Card, error) {
	c := &Card{
		Number:     number,
		Expiration: expiration,
		CVV:        cvv,
		PostalCode: postalCode,
	}

	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid card: %w", err)
	}

	cardType, err := detectType(number)
	if err != nil {
		return nil, err
	}
	c.Type = cardType

	return c, nil
}

func detectType(number string) (string, error) {
	for _, p := range cardPatterns {
		if p.pattern.MatchString(number) {
			return p.name, nil
		}
	}
	return "", fmt.Errorf("%w for number ending %s", ErrUnknownCardType, last4(number))
}

func last4(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

// GiftCard is a stored-value payment instrument. Amount is the portion of
// the order total this card covers.
type GiftCard struct {
	Number string
	PIN    string
	Amount float64
}
