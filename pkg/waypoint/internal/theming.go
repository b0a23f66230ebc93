package internal

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"
)

// Theme defines the baseline navigation bar colours. Routes without a
// registered style fall back to these.
type Theme struct {
	BarBackgroundColor color.RGBA // Navigation bar fill
	TitleColor         color.RGBA // Title text
	TintColor          color.RGBA // Back affordance and bar buttons
	LargeTitles        bool       // Whether bar titles default to the large style
}

// DefaultTheme is used until SetTheme is called.
var DefaultTheme = Theme{
	BarBackgroundColor: HexToColor(0xF8F8F8),
	TitleColor:         HexToColor(0x000000),
	TintColor:          HexToColor(0x007AFF),
}

var (
	themeMu      sync.RWMutex
	currentTheme = DefaultTheme
)

// SetTheme sets the active theme.
func SetTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = theme
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// HexToColor converts 0xRRGGBB to an opaque colour.
func HexToColor(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 0xFF,
	}
}

// ParseHexColor accepts "#RRGGBB", "RRGGBB" or "0xRRGGBB".
func ParseHexColor(s string) (color.RGBA, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "#")
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	if len(raw) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return HexToColor(uint32(v)), nil
}
