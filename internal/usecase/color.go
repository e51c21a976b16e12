package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultColor is the teal used for "info" and any unrecognized title.
const DefaultColor = 0x1ABC9C

// ErrInvalidColor reports a color override that is not a 24-bit hex value.
var ErrInvalidColor = errors.New("invalid color override")

var colorSchemes = map[string]int{
	"notification": 0x3498DB, // blue
	"warning":      0xF1C40F, // yellow
	"error":        0xE74C3C, // red
	"success":      0x2ECC71, // green
	"info":         DefaultColor,
}

// ResolveColor picks the embed color for a title and an optional hex override.
// A malformed override yields DefaultColor together with ErrInvalidColor; the
// returned color is always usable.
func ResolveColor(title, override string) (int, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		color, err := parseHexColor(override)
		if err != nil {
			return DefaultColor, err
		}
		return color, nil
	}

	if color, ok := colorSchemes[strings.ToLower(title)]; ok {
		return color, nil
	}
	return DefaultColor, nil
}

func parseHexColor(s string) (int, error) {
	digits := s
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}

	// Embed colors are 24-bit RGB; larger values are treated as malformed.
	n, err := strconv.ParseUint(digits, 16, 24)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	return int(n), nil
}
