// internal/infrastructure/commerce/types_test.go
package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressDisplayString(t *testing.T) {
	tests := []struct {
		name    string
		address Address
		want    string
	}{
		{
			"all fields",
			Address{Name: "Home", Street: "1 Main St", City: "Lyon", Province: "Rhone", PostalCode: "69001", Country: "France"},
			"Home, 1 Main St, Lyon, Rhone, 69001, France",
		},
		{
			"blank fields skipped",
			Address{Name: "Home", Street: "1 Main St", City: "Lyon", Province: "  ", Country: "France"},
			"Home, 1 Main St, Lyon, France",
		},
		{
			"empty address",
			Address{},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.address.DisplayString())
		})
	}
}
