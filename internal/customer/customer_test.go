package customer

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		last    string
		email   string
		phone   string
		wantErr bool
	}{
		{"valid", "Tess", "Harper", "tess.harper@example.com", "2165551234", false},
		{"missing first name", "", "Harper", "tess.harper@example.com", "2165551234", true},
		{"missing last name", "Tess", "", "tess.harper@example.com", "2165551234", true},
		{"bad email", "Tess", "Harper", "not-an-email", "2165551234", true},
		{"short phone", "Tess", "Harper", "tess.harper@example.com", "555", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.first, tt.last, tt.email, tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTrimsWhitespace(t *testing.T) {
	c, err := New(" Tess ", " Harper ", " tess.harper@example.com ", " 2165551234 ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.FirstName != "Tess" || c.LastName != "Harper" {
		t.Errorf("names not trimmed: %q %q", c.FirstName, c.LastName)
	}
	if c.Email != "tess.harper@example.com" || c.Phone != "2165551234" {
		t.Errorf("contact fields not trimmed: %q %q", c.Email, c.Phone)
	}
}
