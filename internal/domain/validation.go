package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	trackingIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,120}$`)
)

func NormalizeSlug(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func ValidateSlug(v string) error {
	slug := NormalizeSlug(v)
	if len(slug) < 2 || len(slug) > 60 || !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug must be 2-60 lowercase letters, digits or hyphens", ErrInvalidInput)
	}
	return nil
}

func ValidateStoreName(v string) error {
	trimmed := strings.TrimSpace(v)
	if len(trimmed) < 2 || len(trimmed) > 120 {
		return fmt.Errorf("%w: name must be 2-120 chars", ErrInvalidInput)
	}
	return nil
}

func ValidateTrackingID(v string) error {
	if !trackingIDPattern.MatchString(strings.TrimSpace(v)) {
		return fmt.Errorf("%w: tracking_id must match ^[a-zA-Z0-9_-]{1,120}$", ErrInvalidInput)
	}
	return nil
}

func ValidateCommissionAmount(v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: commission must be a positive amount", ErrInvalidInput)
	}
	return nil
}
