package model

import (
	"regexp"
	"strings"
)

// imageURLPattern is deliberately loose: scheme, host with a dot, anything after.
var imageURLPattern = regexp.MustCompile(`^https?://.+\..+`)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every invalid field found in one input, so the
// presentation layer can annotate the whole form in a single round trip.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "invalid input"
	}
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the input against the client-side rules. It returns a
// ValidationErrors listing every failed field, or nil when the input is clean.
// Inputs that fail here must never reach the record store.
func (in ProductInput) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Product name is required"})
	}

	if strings.TrimSpace(in.Code) == "" {
		errs = append(errs, FieldError{Field: "code", Message: "Product code is required"})
	}

	if in.Price <= 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price must be greater than zero"})
	}

	if in.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "Quantity cannot be negative"})
	}

	if strings.TrimSpace(in.ImageURL) == "" {
		errs = append(errs, FieldError{Field: "imageUrl", Message: "Image URL is required"})
	} else if !imageURLPattern.MatchString(in.ImageURL) {
		errs = append(errs, FieldError{Field: "imageUrl", Message: "Please enter a valid URL"})
	}

	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, FieldError{Field: "category", Message: "Category is required"})
	}

	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		errs = append(errs, FieldError{Field: "lowStockThreshold", Message: "Threshold cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
