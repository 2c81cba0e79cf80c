// Package i18n localizes the service's own user-facing messages.
//
// Catalogs are TOML files embedded from locales/. The language is picked from
// the caller's Accept-Language header, falling back to the configured default.
// Translated upstream errors are not routed through here; they come from the
// errmap dictionaries.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs present in every catalog.
const (
	MsgRequestMalformed   = "RequestMalformed"
	MsgCodeRequired       = "CodeRequired"
	MsgCodeInvalid        = "CodeInvalid"
	MsgSessionUnavailable = "SessionUnavailable"
	MsgTokenRequired      = "TokenRequired"
	MsgSessionExpired     = "SessionExpired"
	MsgServerError        = "ServerError"
	MsgNotFound           = "NotFound"
	MsgInternalError      = "InternalError"
	MsgRateLimited        = "RateLimited"
	MsgTimeout            = "Timeout"
)

//go:embed locales/*.toml
var locales embed.FS

// Catalog holds the loaded message bundle.
type Catalog struct {
	bundle   *goi18n.Bundle
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
}

// New loads the embedded catalogs with defaultLanguage as the fallback.
func New(defaultLanguage string) (*Catalog, error) {
	tag, err := language.Parse(defaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("parsing default language %q: %w", defaultLanguage, err)
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}

	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("loading catalog %s: %w", f, err)
		}
	}

	tags := []language.Tag{tag}
	for _, t := range bundle.LanguageTags() {
		if t != tag {
			tags = append(tags, t)
		}
	}

	return &Catalog{
		bundle:   bundle,
		fallback: tag,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// Default returns the configured fallback language.
func (c *Catalog) Default() language.Tag {
	return c.fallback
}

// Languages lists the languages with a loaded catalog, default first.
func (c *Catalog) Languages() []language.Tag {
	return c.tags
}

// Match picks the catalog language for the given Accept-Language values.
// Missing, malformed or unsupported preferences give the default.
func (c *Catalog) Match(accept ...string) language.Tag {
	var wanted []language.Tag

	for _, a := range accept {
		tags, _, err := language.ParseAcceptLanguage(a)
		if err != nil {
			continue
		}

		wanted = append(wanted, tags...)
	}

	if len(wanted) == 0 {
		return c.fallback
	}

	if _, idx, conf := c.matcher.Match(wanted...); conf != language.No {
		return c.tags[idx]
	}

	return c.fallback
}

// Localizer returns a localizer for the language Match picks.
func (c *Catalog) Localizer(accept ...string) *Localizer {
	return &Localizer{inner: goi18n.NewLocalizer(c.bundle, c.Match(accept...).String())}
}

// Localizer renders messages in one negotiated language.
type Localizer struct {
	inner *goi18n.Localizer
}

// Message renders a message without template data.
func (l *Localizer) Message(id string) string {
	return l.Format(id, nil)
}

// Format renders a message with template data. Unknown ids render as the id.
func (l *Localizer) Format(id string, data map[string]any) string {
	if l == nil || l.inner == nil {
		return id
	}

	msg, err := l.inner.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}

	return msg
}
