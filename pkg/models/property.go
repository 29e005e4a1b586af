package models

import (
	"fmt"
	"strings"
)

// Property names a scalar layer field editable in place.
type Property string

const (
	PropX        Property = "x"
	PropY        Property = "y"
	PropWidth    Property = "width"
	PropHeight   Property = "height"
	PropRotation Property = "rotation"
	PropOpacity  Property = "opacity"
)

// Properties lists the editable properties in panel order.
var Properties = []Property{PropX, PropY, PropWidth, PropHeight, PropRotation, PropOpacity}

// ParseProperty converts a property name, case-insensitively.
func ParseProperty(s string) (Property, error) {
	p := Property(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Properties {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown layer property: %q", s)
}

// Get returns the value of p on l.
func (l Layer) Get(p Property) float64 {
	switch p {
	case PropX:
		return l.X
	case PropY:
		return l.Y
	case PropWidth:
		return l.Width
	case PropHeight:
		return l.Height
	case PropRotation:
		return l.Rotation
	case PropOpacity:
		return l.Opacity
	}
	return 0
}

// Set assigns v to p on l. Unknown properties are ignored.
func (l *Layer) Set(p Property, v float64) {
	switch p {
	case PropX:
		l.X = v
	case PropY:
		l.Y = v
	case PropWidth:
		l.Width = v
	case PropHeight:
		l.Height = v
	case PropRotation:
		l.Rotation = v
	case PropOpacity:
		l.Opacity = v
	}
}

// Direction is a z-order move.
type Direction string

const (
	// DirectionUp moves a layer toward the top of the visual stack (higher index).
	DirectionUp Direction = "up"
	// DirectionDown moves a layer toward the bottom, never below index 1.
	DirectionDown Direction = "down"
)

// ParseDirection converts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionUp:
		return DirectionUp, nil
	case DirectionDown:
		return DirectionDown, nil
	}
	return "", fmt.Errorf("invalid direction: %q (must be up or down)", s)
}
