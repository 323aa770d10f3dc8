// Package i18n renders user-facing messages in the caller's language.
package i18n

import (
	"golang.org/x/text/language"
)

// Header carries the caller's preferred language.
const Header = "x-language"

var (
	supported = []language.Tag{language.English, language.Italian}
	matcher   = language.NewMatcher(supported)
)

// Default is used when nothing in the header matches.
var Default = language.English

// Match picks the supported language closest to the header value.
// The header accepts a plain tag ("it") or an Accept-Language list.
func Match(header string) language.Tag {
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return supported[idx]
}

// T translates key, falling back to English and then to the key itself.
func T(tag language.Tag, key string) string {
	if msg, ok := lookup(tag, key); ok {
		return msg
	}
	if msg, ok := lookup(Default, key); ok {
		return msg
	}
	return key
}

// Error translates an error code, falling back to the error's own message.
func Error(tag language.Tag, code, fallback string) string {
	if code == "" {
		return fallback
	}
	if msg, ok := lookup(tag, "error."+code); ok {
		return msg
	}
	return fallback
}

func lookup(tag language.Tag, key string) (string, bool) {
	base, _ := tag.Base()
	catalog, ok := catalogs[base.String()]
	if !ok {
		return "", false
	}
	msg, ok := catalog[key]
	return msg, ok
}
