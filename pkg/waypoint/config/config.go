// Package config loads navigation styles and the baseline bar theme from
// TOML, and localises route titles with go-i18n.
//
// A style file looks like:
//
//	[theme]
//	preset = "cannoli"             # optional base theme
//	bar_background = "#F8F8F8"
//	title = "#000000"
//	tint = "#007AFF"
//
//	[[route]]
//	type = "github.com/acme/app/profile.Route"
//	title = "profile_title"       # message id, payload fields are template data
//	title_fallback = "Profile"
//	large_titles = true
//	background = "#112233"
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/cannoli"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

// File is a parsed style file.
type File struct {
	Theme  ThemeConfig   `toml:"theme"`
	Routes []RouteConfig `toml:"route"`
}

// ThemeConfig is the baseline bar used by routes without a style.
type ThemeConfig struct {
	Preset        string `toml:"preset"`
	BarBackground string `toml:"bar_background"`
	Title         string `toml:"title"`
	Tint          string `toml:"tint"`
	LargeTitles   bool   `toml:"large_titles"`
}

// RouteConfig is the style for one route type identifier.
type RouteConfig struct {
	Type          string `toml:"type"`
	Title         string `toml:"title"`
	TitleFallback string `toml:"title_fallback"`
	LargeTitles   bool   `toml:"large_titles"`
	Background    string `toml:"background"`
	TitleColor    string `toml:"title_color"`
	Tint          string `toml:"tint"`
}

// Load reads and validates a style file.
func Load(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &f, nil
}

// Parse decodes and validates a style file held in memory.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &f, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Validate reports every problem in the file at once.
func (f *File) Validate() error {
	var err error

	if _, ok := presets[f.Theme.Preset]; !ok {
		err = multierr.Append(err, fmt.Errorf("theme.preset: unknown preset %q", f.Theme.Preset))
	}
	for name, v := range map[string]string{
		"theme.bar_background": f.Theme.BarBackground,
		"theme.title":          f.Theme.Title,
		"theme.tint":           f.Theme.Tint,
	} {
		err = multierr.Append(err, checkColor(name, v))
	}

	seen := make(map[string]int, len(f.Routes))
	for i, rc := range f.Routes {
		where := fmt.Sprintf("route[%d]", i)
		if rc.Type == "" {
			err = multierr.Append(err, fmt.Errorf("%s: type is required", where))
		} else if prev, dup := seen[rc.Type]; dup {
			err = multierr.Append(err, fmt.Errorf("%s: type %q already styled by route[%d]", where, rc.Type, prev))
		} else {
			seen[rc.Type] = i
		}
		err = multierr.Append(err, checkColor(where+".background", rc.Background))
		err = multierr.Append(err, checkColor(where+".title_color", rc.TitleColor))
		err = multierr.Append(err, checkColor(where+".tint", rc.Tint))
	}
	return err
}

func checkColor(name, v string) error {
	if v == "" {
		return nil
	}
	if _, err := internal.ParseHexColor(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

var presets = map[string]func() internal.Theme{
	"":                 func() internal.Theme { return internal.DefaultTheme },
	"default":          func() internal.Theme { return internal.DefaultTheme },
	cannoli.PresetName: cannoli.Theme,
}

// ApplyTheme makes the file's theme the baseline for hosts created
// afterwards. Unset colours keep the preset's values.
func (f *File) ApplyTheme() {
	preset, ok := presets[f.Theme.Preset]
	if !ok {
		preset = presets[""]
	}
	theme := preset()
	theme.LargeTitles = theme.LargeTitles || f.Theme.LargeTitles
	if c, ok := optionalRGBA(f.Theme.BarBackground); ok {
		theme.BarBackgroundColor = c
	}
	if c, ok := optionalRGBA(f.Theme.Title); ok {
		theme.TitleColor = c
	}
	if c, ok := optionalRGBA(f.Theme.Tint); ok {
		theme.TintColor = c
	}
	internal.SetTheme(theme)
}

// Catalog turns the route styles into registry descriptors. loc may be nil,
// in which case titles use their fallback text.
func (f *File) Catalog(loc *Localizer) map[string]*route.Descriptor {
	catalog := make(map[string]*route.Descriptor, len(f.Routes))
	for _, rc := range f.Routes {
		catalog[rc.Type] = rc.descriptor(loc)
	}
	return catalog
}

func (rc RouteConfig) descriptor(loc *Localizer) *route.Descriptor {
	d := &route.Descriptor{PrefersLargeTitles: rc.LargeTitles}
	if c, ok := optionalColor(rc.Background); ok {
		d.BackgroundColor = c
	}
	if c, ok := optionalColor(rc.TitleColor); ok {
		d.TitleColor = c
	}
	if c, ok := optionalColor(rc.Tint); ok {
		d.TintColor = c
	}

	messageID, fallback := rc.Title, rc.TitleFallback
	switch {
	case messageID != "":
		d.TitleFunc = func(payload any) (string, bool) {
			if loc != nil {
				if s, ok := loc.Localize(messageID, payload); ok {
					return s, true
				}
			}
			return fallback, fallback != ""
		}
	case fallback != "":
		d.TitleFunc = func(any) (string, bool) { return fallback, true }
	}
	return d
}

func optionalRGBA(v string) (color.RGBA, bool) {
	if v == "" {
		return color.RGBA{}, false
	}
	c, err := internal.ParseHexColor(v)
	return c, err == nil
}

func optionalColor(v string) (color.Color, bool) {
	c, ok := optionalRGBA(v)
	if !ok {
		return nil, false
	}
	return c, true
}
