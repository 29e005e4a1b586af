package models

import (
	"errors"
	"strings"
)

// Placement-related errors
var (
	ErrEmptyPlacement            = errors.New("placement cannot be empty")
	ErrPlacementTooLong          = errors.New("placement cannot exceed 50 characters")
	ErrInvalidPlacementCharacter = errors.New("placement contains invalid characters")
)

// NormalizePlacement normalizes a body placement for storage and matching.
// Regions nest with slashes: "Arm/Inner Forearm" becomes "arm/inner-forearm".
func NormalizePlacement(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")

	var result strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '/' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidatePlacement checks a placement as typed by the user
func ValidatePlacement(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyPlacement
	}
	if len(name) > 50 {
		return ErrPlacementTooLong
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '/' || r == ' ') {
			return ErrInvalidPlacementCharacter
		}
	}
	return nil
}

// PlacementRegion returns the parent region of a nested placement, or "".
func PlacementRegion(placement string) string {
	if i := strings.LastIndex(placement, "/"); i >= 0 {
		return placement[:i]
	}
	return ""
}

// PlacementMatches reports whether placement is want or lies inside it, so
// "arm" matches "arm/forearm".
func PlacementMatches(placement, want string) bool {
	placement = NormalizePlacement(placement)
	want = NormalizePlacement(want)
	if want == "" {
		return false
	}
	return placement == want || strings.HasPrefix(placement, want+"/")
}
