package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string  `json:"name" validate:"required,max=10"`
	Email string  `json:"email" validate:"omitempty,email"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Image string  `json:"image" validate:"omitempty,url"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(sampleRequest{Name: "Widget", Price: 9.99})
	assert.NoError(t, err)
}

func TestValidateStruct_MessagesAreReadable(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want string
	}{
		{"required", sampleRequest{Price: 1}, "name is required"},
		{"max", sampleRequest{Name: "0123456789x", Price: 1}, "name must be at most 10 characters"},
		{"gt", sampleRequest{Name: "Widget", Price: -1}, "price must be greater than 0"},
		{"email", sampleRequest{Name: "Widget", Price: 1, Email: "nope"}, "email must be a valid email"},
		{"url", sampleRequest{Name: "Widget", Price: 1, Image: "nope"}, "image must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateStruct_JoinsMultipleErrors(t *testing.T) {
	err := ValidateStruct(sampleRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "price is required")
	assert.Contains(t, err.Error(), "; ")
}
