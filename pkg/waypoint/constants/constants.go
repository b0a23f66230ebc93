// Package constants defines shared constants, environment variables, and
// defaults used throughout the waypoint navigation layer.
package constants

import (
	"os"
	"strings"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// EnvironmentEnvVar selects the build flavour at runtime (DEV or anything else).
const EnvironmentEnvVar = "ENVIRONMENT"

// TraceEnvVar forces debug-level internal logging when set to any value.
const TraceEnvVar = "WAYPOINT_TRACE"

// StyleConfigEnvVar points at a TOML style catalog loaded by Init when
// Options.StyleConfigPath is empty.
const StyleConfigEnvVar = "WAYPOINT_STYLES"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
// Development mode is the "debug configuration": unregistered routes render a
// visible placeholder and type mismatches are asserted.
func IsDevMode() bool {
	return strings.EqualFold(os.Getenv(EnvironmentEnvVar), Development)
}

// Default sizes for rasterised chrome.
const (
	DefaultBackIconSize = 24 // Edge length of the back chevron in pixels
	DefaultIconCache    = 8  // Tinted icon variants kept before LRU eviction
)

// DefaultLocale is used when neither Options.Locale nor LANG yield a language.
const DefaultLocale = "en"
