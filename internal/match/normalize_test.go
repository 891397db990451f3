package match

import (
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"orderId", "orderid"},
		{"ORDERID", "orderid"},

		// With underscores
		{"price_cents", "pricecents"},
		{"PRICE_CENTS", "pricecents"},
		{"Price_Cents", "pricecents"},

		// Schema keywords
		{"$defs", "defs"},
		{"$ref", "ref"},

		// Edge cases
		{"", ""},
		{"A", "a"},
		{"Straße", "straße"},

		// Mixed separators
		{"order_item-ID", "orderitemid"},
		{"postal address", "postaladdress"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
