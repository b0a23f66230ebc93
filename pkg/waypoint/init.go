// Package waypoint is a navigation layer that drives either a declarative
// path host or an imperative controller-stack host through one router API.
//
// Routes of any comparable type are registered once with a shared registry,
// routers keep a logical mirror of the stack above the root, and user
// navigation performed by the host is reconciled back into that mirror.
//
// Call Init once at startup, then create routers with NewRouter or the
// router package directly.
package waypoint

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/uiloop"
)

// Options configures waypoint initialization.
type Options struct {
	LogPath         string       // Full path for log file including filename (creates parent directories)
	LogLevel        string       // Application log level ("debug", "info", "warn", "error")
	Debug           *bool        // Overrides the ENVIRONMENT-derived debug behaviour when set
	StyleConfigPath string       // TOML style catalog; falls back to WAYPOINT_STYLES
	MessageFiles    []string     // go-i18n message files used for route titles
	Locale          string       // Title language; falls back to LANG, then "en"
	UILoop          *uiloop.Loop // Enables confinement checks for main builders in debug
}

var (
	mu        sync.Mutex
	registry  *route.Registry
	localizer *config.Localizer
)

// Init configures logging, loads styles and messages, and creates the shared
// route registry. Calling it again replaces the registry.
func Init(options Options) error {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	if constants.IsDevMode() || os.Getenv(constants.TraceEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	debug := constants.IsDevMode()
	if options.Debug != nil {
		debug = *options.Debug
	}

	loc, err := config.NewLocalizer(resolveLocale(options.Locale), options.MessageFiles...)
	if err != nil {
		return err
	}

	stylePath := options.StyleConfigPath
	if stylePath == "" {
		stylePath = os.Getenv(constants.StyleConfigEnvVar)
	}

	regOpts := []route.Option{route.WithDebug(debug)}
	if stylePath != "" {
		f, err := config.Load(stylePath)
		if err != nil {
			return err
		}
		f.ApplyTheme()
		regOpts = append(regOpts, route.WithCatalog(f.Catalog(loc)))
	}
	if options.UILoop != nil {
		regOpts = append(regOpts, route.WithAffinity(options.UILoop))
	}

	reg := route.NewRegistry(regOpts...)

	mu.Lock()
	registry = reg
	localizer = loc
	mu.Unlock()

	internal.GetInternalLogger().Debug("waypoint initialised",
		"debug", debug,
		"locale", loc.Locale().String(),
		"styles", stylePath,
	)
	return nil
}

// resolveLocale turns an explicit locale or a POSIX LANG value such as
// "pt_BR.UTF-8" into a BCP 47 tag string.
func resolveLocale(locale string) string {
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch locale {
	case "", "C", "POSIX":
		return constants.DefaultLocale
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// Registry returns the shared route registry, creating a default one if Init
// has not been called.
func Registry() *route.Registry {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		registry = route.NewRegistry()
	}
	return registry
}

// Localizer returns the title localizer loaded by Init, or nil.
func Localizer() *config.Localizer {
	mu.Lock()
	defer mu.Unlock()
	return localizer
}

// NewRouter creates an erased-route router over env backed by the shared
// registry.
func NewRouter(env host.Environment[route.Any], opts ...router.Option) *router.Router[route.Any] {
	return router.NewAny(env, Registry(), opts...)
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
