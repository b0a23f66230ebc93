// Package cannoli provides the navigation bar preset for the Cannoli custom
// firmware.
package cannoli

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// PresetName selects this theme from a style file's [theme] table.
const PresetName = "cannoli"

// Theme returns Cannoli's bar colours: a white bar, black titles and the
// teal accent used for back affordances.
func Theme() internal.Theme {
	return internal.Theme{
		BarBackgroundColor: internal.HexToColor(0xFFFFFF),
		TitleColor:         internal.HexToColor(0x000000),
		TintColor:          internal.HexToColor(0x008080),
	}
}
