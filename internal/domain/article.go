package domain

import (
	"fmt"
	"strings"
	"time"
)

// Locale identifies a supported language variant of the news site. The value
// doubles as the URL path segment and as part of the dedup key, so the set is
// closed: adding a locale means extending AllLocales and the label mapping
// together.
type Locale string

const (
	LocaleKG Locale = "kg"
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
	LocaleTR Locale = "tr"
)

// AllLocales lists every supported locale in processing order.
var AllLocales = []Locale{LocaleKG, LocaleRU, LocaleEN, LocaleTR}

var localeLabels = map[Locale]string{
	LocaleKG: "🇰🇬 Жаңылыктар",
	LocaleRU: "🇷🇺 Новости",
	LocaleEN: "🇬🇧 News",
	LocaleTR: "🇹🇷 Haberler",
}

// Valid reports whether l belongs to the supported set.
func (l Locale) Valid() bool {
	_, ok := localeLabels[l]
	return ok
}

// Label returns the localized section header used in digests.
func (l Locale) Label() string {
	return localeLabels[l]
}

// ParseLocale converts a configuration string into a Locale.
func ParseLocale(value string) (Locale, error) {
	locale := Locale(strings.ToLower(strings.TrimSpace(value)))
	if !locale.Valid() {
		return "", fmt.Errorf("unsupported locale %q", value)
	}
	return locale, nil
}

// Article is a single news entry extracted from a locale's listing page.
// (ID, Locale) is the natural key; Title and Date are display data only and
// keep whatever the first observation carried.
type Article struct {
	ID     int
	Locale Locale
	Title  string
	Date   time.Time
}

// URL derives the canonical article address from the key. It is never stored,
// only recomputed.
func (a Article) URL(baseURL string) string {
	return fmt.Sprintf("%s/%s/news/%d", strings.TrimSuffix(baseURL, "/"), a.Locale, a.ID)
}
