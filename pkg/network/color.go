package network

import (
	"fmt"
	"strings"
)

// Color tags the flow a node accepts or emits. The zero value is unset.
type Color uint8

const (
	// ColorNone marks a color that has not been assigned yet.
	ColorNone Color = iota
	// ColorWhite is the distinguished color used by conditional blocking.
	ColorWhite
	// ColorOrange is the second color of the binary color space.
	ColorOrange
)

// Flip returns the other color of the binary color space.
// ColorNone has no counterpart and is returned unchanged.
func (c Color) Flip() Color {
	switch c {
	case ColorWhite:
		return ColorOrange
	case ColorOrange:
		return ColorWhite
	}
	return ColorNone
}

// IsSet reports whether the color has been assigned.
func (c Color) IsSet() bool { return c != ColorNone }

// String returns "W", "O" or "-" for an unset color.
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "W"
	case ColorOrange:
		return "O"
	}
	return "-"
}

// ParseColor parses "white"/"w" or "orange"/"o" (case-insensitive).
// The empty string yields ColorNone.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ColorNone, nil
	case "white", "w":
		return ColorWhite, nil
	case "orange", "o":
		return ColorOrange, nil
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	switch c {
	case ColorWhite:
		return []byte("white"), nil
	case ColorOrange:
		return []byte("orange"), nil
	}
	return []byte(""), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
