package payment

import (
	"errors"
	"testing"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		want    string
		wantErr error
	}{
		{"visa 16", "4012888888881881", "VISA", nil},
		{"visa 13", "4222222222222", "VISA", nil},
		{"mastercard", "5105105105105100", "MASTERCARD", nil},
		{"amex", "378282246310005", "AMEX", nil},
		{"diners", "30569309025904", "DINERS", nil},
		{"discover", "6011111111111117", "DISCOVER", nil},
		{"jcb", "3530111333300000", "JCB", nil},
		{"unknown brand", "2223000048400011", "", ErrUnknownCardType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectType(tt.number)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("detectType error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("detectType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCard(t *testing.T) {
	tests := []struct {
		name       string
		number     string
		expiration string
		cvv        string
		zip        string
		wantErr    bool
	}{
		{"valid visa", "4012888888881881", "0130", "123", "44114", false},
		{"valid amex long cvv", "378282246310005", "0130", "1234", "44114", false},
		{"fails luhn", "4012888888881882", "0130", "123", "44114", true},
		{"missing expiration", "4012888888881881", "", "123", "44114", true},
		{"alphabetic cvv", "4012888888881881", "0130", "abc", "44114", true},
		{"cvv too short", "4012888888881881", "0130", "12", "44114", true},
		{"alphabetic zip", "4012888888881881", "0130", "123", "ohio", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := NewCard(tt.number, tt.expiration, tt.cvv, tt.zip)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCard error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && card.Type == "" {
				t.Error("NewCard should stamp the detected card type")
			}
		})
	}
}
