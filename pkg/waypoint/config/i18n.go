package config

import (
	"fmt"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Localizer resolves title message ids for a single locale. Message files use
// go-i18n's TOML layout and are named by language, e.g. active.en.toml.
type Localizer struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewLocalizer creates a localizer for locale and loads messageFiles into it.
// An empty or unparsable locale falls back to constants.DefaultLocale.
func NewLocalizer(locale string, messageFiles ...string) (*Localizer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(constants.DefaultLocale)
	}

	bundle := i18n.NewBundle(language.MustParse(constants.DefaultLocale))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	l := &Localizer{bundle: bundle, tag: tag}
	for _, path := range messageFiles {
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("config: load messages %s: %w", path, err)
		}
	}
	l.localizer = i18n.NewLocalizer(bundle, tag.String())
	return l, nil
}

// AddMessages parses an in-memory message file. path only supplies the
// language and format, e.g. "active.es.toml".
func (l *Localizer) AddMessages(data []byte, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.bundle.ParseMessageFileBytes(data, path); err != nil {
		return fmt.Errorf("config: parse messages %s: %w", path, err)
	}
	l.localizer = i18n.NewLocalizer(l.bundle, l.tag.String())
	return nil
}

// Locale returns the language titles are resolved in.
func (l *Localizer) Locale() language.Tag { return l.tag }

// Localize renders messageID with data as template data. Returns false when
// no language in the bundle defines the message.
func (l *Localizer) Localize(messageID string, data any) (string, bool) {
	l.mu.RLock()
	loc := l.localizer
	l.mu.RUnlock()

	s, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}
