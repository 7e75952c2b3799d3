// Package i18n localizes the few strings the widget writes on its own.
package i18n

import (
	"embed"
	"io/fs"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Message ids.
const (
	MsgPlaceholder = "placeholder"
	MsgEmpty       = "empty"
)

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	bundleErr  error
)

func load() (*goi18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files, err := fs.Glob(locales, "locales/*.toml")
		if err != nil {
			bundleErr = err
			return
		}
		for _, f := range files {
			if _, err := b.LoadMessageFileFS(locales, f); err != nil {
				bundleErr = err
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Tag parses locale, falling back to English when it is empty or malformed.
func Tag(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Localize returns the message id in locale. Unknown locales fall back to
// English; an unknown id is returned unchanged.
func Localize(locale, id string) string {
	b, err := load()
	if err != nil {
		return id
	}
	loc := goi18n.NewLocalizer(b, Tag(locale).String(), language.English.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// Placeholder is the trigger text for a control with nothing selected.
func Placeholder(locale string) string {
	return Localize(locale, MsgPlaceholder)
}

// Empty is the trigger text for a control without options.
func Empty(locale string) string {
	return Localize(locale, MsgEmpty)
}
