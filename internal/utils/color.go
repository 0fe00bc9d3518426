package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxColor is the largest packed RGB value (white).
const MaxColor = 0xFFFFFF

// PackRGB packs three channels into the decimal form stored for tag colors.
// Example: (255, 0, 0) -> 16711680
func PackRGB(r, g, b uint8) int64 {
	return int64(r)<<16 | int64(g)<<8 | int64(b)
}

// UnpackRGB splits a packed color into its channels.
func UnpackRGB(color int64) (r, g, b uint8) {
	return uint8(color >> 16 & 0xFF), uint8(color >> 8 & 0xFF), uint8(color & 0xFF)
}

// IsValidColor reports whether color fits in 24 bits.
func IsValidColor(color int64) bool {
	return color >= 0 && color <= MaxColor
}

// ColorToHex formats a packed color as "#RRGGBB".
// Example: 9590460 -> "#9256BC"
func ColorToHex(color int64) string {
	r, g, b := UnpackRGB(color)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// HexToColor parses "#RRGGBB" (the leading # is optional) into packed form.
func HexToColor(hex string) (int64, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must have 6 hex digits", hex)
	}
	color, err := strconv.ParseInt(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse color string: %w", err)
	}
	return color, nil
}
