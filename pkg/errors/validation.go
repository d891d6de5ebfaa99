package errors

import (
	"math"
	"unicode"
)

// ValidateDimension checks that v is a finite, strictly positive length.
// The name is used in the error message ("width", "max_width", ...).
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateOptionalDimension is like ValidateDimension but accepts zero,
// which callers treat as "not set".
func ValidateOptionalDimension(name string, v float64) error {
	if v == 0 {
		return nil
	}
	return ValidateDimension(name, v)
}

// ValidateSpacing checks that a gap between elements is finite and not negative.
func ValidateSpacing(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "spacing must be a finite non-negative number, got %v", v)
	}
	return nil
}

// ValidateElementSize checks the size of the element at index i. Both sides
// must be finite and positive, otherwise its aspect ratio is undefined.
func ValidateElementSize(i int, width, height float64) error {
	if !isPositiveFinite(width) || !isPositiveFinite(height) {
		return New(ErrCodeDegenerateInput, "element %d has invalid size %vx%v (both sides must be positive)", i, width, height)
	}
	return nil
}

// ValidateElementID validates an element identifier supplied by a caller.
// Identifiers end up in SVG ids and cache keys, so the rules are conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "element id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "element id contains invalid control characters")
		}
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
