package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ProductInput {
	return ProductInput{
		Name:     "Widget",
		Code:     "W-1",
		Price:    9.99,
		Quantity: 10,
		Category: "Tools",
		ImageURL: "https://example.com/widget.jpg",
	}
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ProductInput)
		expectedField string
	}{
		{"Empty name", func(in *ProductInput) { in.Name = "" }, "name"},
		{"Whitespace name", func(in *ProductInput) { in.Name = "   " }, "name"},
		{"Empty code", func(in *ProductInput) { in.Code = "" }, "code"},
		{"Zero price", func(in *ProductInput) { in.Price = 0 }, "price"},
		{"Negative price", func(in *ProductInput) { in.Price = -1 }, "price"},
		{"Negative quantity", func(in *ProductInput) { in.Quantity = -1 }, "quantity"},
		{"Empty image URL", func(in *ProductInput) { in.ImageURL = "" }, "imageUrl"},
		{"Malformed image URL", func(in *ProductInput) { in.ImageURL = "not-a-url" }, "imageUrl"},
		{"URL without host dot", func(in *ProductInput) { in.ImageURL = "https://localhost/img" }, "imageUrl"},
		{"Empty category", func(in *ProductInput) { in.Category = "" }, "category"},
		{
			"Negative threshold",
			func(in *ProductInput) { v := -1; in.LowStockThreshold = &v },
			"lowStockThreshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()

			require.Error(t, err)
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.expectedField, errs[0].Field)
		})
	}
}

func TestProductInput_Validate_Clean(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestProductInput_Validate_CollectsAllFields(t *testing.T) {
	in := ProductInput{Price: -1}

	err := in.Validate()

	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	// name, code, price, imageUrl, category all invalid at once
	assert.Len(t, errs, 5)
}

func TestProductInput_Threshold(t *testing.T) {
	in := validInput()
	assert.Equal(t, DefaultLowStockThreshold, in.Threshold(DefaultLowStockThreshold))
	assert.Equal(t, 8, in.Threshold(8))

	v := 12
	in.LowStockThreshold = &v
	assert.Equal(t, 12, in.Threshold(8))

	zero := 0
	in.LowStockThreshold = &zero
	assert.Equal(t, 0, in.Threshold(8))
}
