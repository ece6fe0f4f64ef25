package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		Name:        "Widget",
		Description: "A very good widget",
		Price:       9.99,
		Image:       "https://example.com/widget.png",
	}
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr bool
	}{
		{"valid", func(p *Product) {}, false},
		{"empty name", func(p *Product) { p.Name = "" }, true},
		{"name too long", func(p *Product) { p.Name = strings.Repeat("x", 101) }, true},
		{"name at limit", func(p *Product) { p.Name = strings.Repeat("x", 100) }, false},
		{"empty description", func(p *Product) { p.Description = "" }, true},
		{"description too long", func(p *Product) { p.Description = strings.Repeat("x", 1001) }, true},
		{"zero price", func(p *Product) { p.Price = 0 }, true},
		{"negative price", func(p *Product) { p.Price = -1 }, true},
		{"empty image", func(p *Product) { p.Image = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("66b1f0a2c9e77a0012345678"))
	assert.True(t, IsValidID("AABBCCDDEEFF001122334455"))

	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("short"))
	assert.False(t, IsValidID("66b1f0a2c9e77a00123456789"))  // 25 chars
	assert.False(t, IsValidID("66b1f0a2c9e77a001234567g"))   // non-hex
	assert.False(t, IsValidID("66b1f0a2-9e77-a001-234567")) // dashes
}
