package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestValidator_CreateProduct(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     createProductRequest
		wantErr string
	}{
		{"valid", createProductRequest{Name: "Desk", Description: "Oak", Price: floatPtr(120)}, ""},
		{"free product", createProductRequest{Name: "Sticker", Description: "Vinyl", Price: floatPtr(0)}, ""},
		{"whitespace name", createProductRequest{Name: "\t ", Description: "Oak", Price: floatPtr(1)}, "name must not be blank"},
		{"negative price", createProductRequest{Name: "Desk", Description: "Oak", Price: floatPtr(-5)}, "price must be greater than or equal to 0"},
		{"every field bad", createProductRequest{}, "name must not be blank; description must not be blank; price is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantErr, ve.Message)
		})
	}
}

func TestValidator_UpdateProduct(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&updateProductRequest{}))
	require.NoError(t, v.Validate(&updateProductRequest{Price: floatPtr(0)}))
	require.NoError(t, v.Validate(&updateProductRequest{Name: strPtr("Chair")}))

	var ve *domain.ValidationError
	require.ErrorAs(t, v.Validate(&updateProductRequest{Description: strPtr("  ")}), &ve)
	assert.Equal(t, "description must not be blank", ve.Message)

	require.ErrorAs(t, v.Validate(&updateProductRequest{Price: floatPtr(-1)}), &ve)
	assert.Equal(t, "price must be greater than or equal to 0", ve.Message)
}

func TestValidator_QueryFieldNames(t *testing.T) {
	v := NewValidator()

	var ve *domain.ValidationError
	require.ErrorAs(t, v.Validate(&listProductsQuery{Page: 0, Size: 500}), &ve)
	assert.Equal(t, "size must be at most 100", ve.Message)
}
