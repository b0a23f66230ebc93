package config_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type Profile struct {
	UserID string
}

const styles = `
[theme]
bar_background = "#101010"
tint = "0xFF9500"
large_titles = true

[[route]]
type = "github.com/BrandonKowalski/waypoint/pkg/waypoint/config_test.Profile"
title = "profile_title"
title_fallback = "Profile"
large_titles = true
background = "#112233"
title_color = "FFFFFF"

[[route]]
type = "example.Static"
title_fallback = "Settings"
`

const english = `
profile_title = "Profile of {{.UserID}}"
`

const spanish = `
[profile_title]
other = "Perfil de {{.UserID}}"
`

func TestParseAndCatalog(t *testing.T) {
	f, err := config.Parse([]byte(styles))
	require.NoError(t, err)
	require.Len(t, f.Routes, 2)

	loc, err := config.NewLocalizer("en")
	require.NoError(t, err)
	require.NoError(t, loc.AddMessages([]byte(english), "active.en.toml"))

	catalog := f.Catalog(loc)
	profile := catalog[route.TypeIDOf[Profile]()]
	require.NotNil(t, profile)
	assert.True(t, profile.PrefersLargeTitles)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, profile.BackgroundColor)
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, profile.TitleColor)
	assert.Nil(t, profile.TintColor)

	title, ok := profile.Title(Profile{UserID: "ada"})
	assert.True(t, ok)
	assert.Equal(t, "Profile of ada", title)

	title, ok = catalog["example.Static"].Title(nil)
	assert.True(t, ok)
	assert.Equal(t, "Settings", title)
}

func TestTitlesFollowLocale(t *testing.T) {
	f, err := config.Parse([]byte(styles))
	require.NoError(t, err)

	loc, err := config.NewLocalizer("es-MX")
	require.NoError(t, err)
	require.NoError(t, loc.AddMessages([]byte(english), "active.en.toml"))
	require.NoError(t, loc.AddMessages([]byte(spanish), "active.es.toml"))

	title, ok := f.Catalog(loc)[route.TypeIDOf[Profile]()].Title(Profile{UserID: "ada"})
	assert.True(t, ok)
	assert.Equal(t, "Perfil de ada", title)
}

func TestTitleFallsBackWithoutMessages(t *testing.T) {
	f, err := config.Parse([]byte(styles))
	require.NoError(t, err)

	title, ok := f.Catalog(nil)[route.TypeIDOf[Profile]()].Title(Profile{})
	assert.True(t, ok)
	assert.Equal(t, "Profile", title)

	loc, err := config.NewLocalizer("not a locale")
	require.NoError(t, err)
	assert.Equal(t, "en", loc.Locale().String())
	title, ok = f.Catalog(loc)[route.TypeIDOf[Profile]()].Title(Profile{})
	assert.True(t, ok)
	assert.Equal(t, "Profile", title)
}

func TestCatalogFeedsRegistry(t *testing.T) {
	f, err := config.Parse([]byte(styles))
	require.NoError(t, err)

	reg := route.NewRegistry(route.WithDebug(true), route.WithLogger(internal.NopLogger()), route.WithCatalog(f.Catalog(nil)))
	route.RegisterMain(reg, func(p Profile) route.View { return p.UserID })

	title, ok := reg.ResolveTitle(route.Wrap(Profile{UserID: "x"}))
	assert.True(t, ok)
	assert.Equal(t, "Profile", title)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	_, err := config.Parse([]byte(`
[theme]
tint = "blue"

[[route]]
title_fallback = "no type"

[[route]]
type = "a.B"
background = "#12"

[[route]]
type = "a.B"
`))
	require.Error(t, err)
	errs := multierr.Errors(unwrapAll(err))
	assert.Len(t, errs, 4)
	assert.Contains(t, err.Error(), "theme.tint")
	assert.Contains(t, err.Error(), "route[0]: type is required")
	assert.Contains(t, err.Error(), "route[1].background")
	assert.Contains(t, err.Error(), `route[2]: type "a.B" already styled by route[1]`)
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := config.Parse([]byte(`
[[route]]
type = "a.B"
colour = "#FFFFFF"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route.colour")
}

func TestLoadAndApplyTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.toml")
	require.NoError(t, os.WriteFile(path, []byte(styles), 0o644))

	f, err := config.Load(path)
	require.NoError(t, err)

	t.Cleanup(func() { internal.SetTheme(internal.DefaultTheme) })
	f.ApplyTheme()

	theme := internal.GetTheme()
	assert.Equal(t, internal.HexToColor(0x101010), theme.BarBackgroundColor)
	assert.Equal(t, internal.DefaultTheme.TitleColor, theme.TitleColor)
	assert.Equal(t, internal.HexToColor(0xFF9500), theme.TintColor)
	assert.True(t, theme.LargeTitles)

	_, err = config.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLocalizerLoadsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "active.en.toml")
	require.NoError(t, os.WriteFile(path, []byte(english), 0o644))

	loc, err := config.NewLocalizer("en", path)
	require.NoError(t, err)
	s, ok := loc.Localize("profile_title", Profile{UserID: "bo"})
	assert.True(t, ok)
	assert.Equal(t, "Profile of bo", s)

	_, ok = loc.Localize("missing", nil)
	assert.False(t, ok)

	_, err = config.NewLocalizer("en", filepath.Join(dir, "nope.en.toml"))
	assert.Error(t, err)
}

func TestThemePreset(t *testing.T) {
	t.Cleanup(func() { internal.SetTheme(internal.DefaultTheme) })

	f, err := config.Parse([]byte(`
[theme]
preset = "cannoli"
title = "#333333"
`))
	require.NoError(t, err)
	f.ApplyTheme()

	theme := internal.GetTheme()
	assert.Equal(t, internal.HexToColor(0xFFFFFF), theme.BarBackgroundColor)
	assert.Equal(t, internal.HexToColor(0x333333), theme.TitleColor)
	assert.Equal(t, internal.HexToColor(0x008080), theme.TintColor)

	_, err = config.Parse([]byte("[theme]\npreset = \"nextui\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "nextui"`)
}

// unwrapAll strips the fmt.Errorf wrapping Parse adds around the aggregate.
func unwrapAll(err error) error {
	for {
		if len(multierr.Errors(err)) > 1 {
			return err
		}
		next := unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
