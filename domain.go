// Package gettext implements GNU gettext MO catalogue loading, plural-form
// evaluation and per-locale message lookup.
package gettext

import (
	"fmt"
	"path"
	"sync"

	"go.uber.org/zap"
)

// PathResolver resolves a (root, locale, domain) triple to the MO file
// backing that locale's translations.
type PathResolver func(root, locale, domain string) string

// DefaultResolver resolves paths in the standard
// <root>/<locale>/LC_MESSAGES/<domain>.mo layout.
func DefaultResolver(root, locale, domain string) string {
	return path.Join(root, locale, "LC_MESSAGES", fmt.Sprintf("%s.mo", domain))
}

// Domain is the entry point for looking up a message catalogue's
// translations across locales. Use NewDomain to construct one.
//
// A Domain's cache is safe for concurrent use: Locale and Preload may be
// called from multiple goroutines.
type Domain struct {
	root     string
	domain   string
	resolver PathResolver
	log      *zap.Logger

	mu    sync.Mutex
	cache map[string]*Catalog
}

// NewDomain sets up lookups for the message domain (textdomain) rooted at
// root, resolving locale paths with resolver. Pass DefaultResolver for the
// conventional <root>/<locale>/LC_MESSAGES/<domain>.mo layout. Logging is
// disabled until SetLogger is called.
func NewDomain(root, domain string, resolver PathResolver) *Domain {
	return &Domain{
		root:     root,
		domain:   domain,
		resolver: resolver,
		log:      zap.NewNop().With(zap.String("domain", domain)),
		cache:    make(map[string]*Catalog),
	}
}

// SetLogger wires logger for catalogue load diagnostics. Safe to call
// before any lookups are made; not safe to call concurrently with them.
func (d *Domain) SetLogger(logger *zap.Logger) {
	d.log = logger.With(zap.String("domain", d.domain))
}

// Preload loads and caches the given locales, if available. Useful to pay
// catalogue-loading I/O up front (at startup) rather than on first lookup.
// Locales that fail to load or don't exist are cached as absent and are
// silently skipped by later lookups.
func (d *Domain) Preload(locales ...string) {
	for _, locale := range locales {
		d.load(locale)
	}
}

func (d *Domain) load(locale string) *Catalog {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cat, ok := d.cache[locale]; ok {
		return cat
	}

	d.cache[locale] = nil
	path := d.resolver(d.root, locale, d.domain)
	cat, err := LoadCatalogFile(path)
	if err != nil {
		d.log.Debug("catalogue not loaded", zap.String("locale", locale), zap.String("path", path), zap.Error(err))
		return nil
	}
	d.log.Debug("catalogue loaded", zap.String("locale", locale), zap.String("path", path))
	d.cache[locale] = cat
	return cat
}

// Locale builds a View over the catalogues for the given languages, most
// preferred first. Languages are expanded into their territory, codeset
// and modifier fallbacks via normalizeLanguages before resolution;
// locale.alias aliases are not applied. Missing
// catalogues are skipped; a language with no matching catalogue at all
// falls through to the next one, and if none match, lookups return their
// input unchanged.
func (d *Domain) Locale(languages ...string) View {
	var cats []*Catalog
	for _, lang := range normalizeLanguages(languages) {
		if cat := d.load(lang); cat != nil {
			cats = append(cats, cat)
		}
	}
	// NewLibrary gives later catalogues priority on key collision, so
	// the most-preferred language (listed first above) must go last.
	for i, j := 0, len(cats)-1; i < j; i, j = i+1, j-1 {
		cats[i], cats[j] = cats[j], cats[i]
	}
	return View{lib: NewLibrary(cats...)}
}

// UserLocale builds a View for the current process user's locale, as
// reported by the standard POSIX LANGUAGE/LC_ALL/LC_MESSAGES/LANG
// environment variables.
func (d *Domain) UserLocale() View {
	return d.Locale(UserLanguages()...)
}

// View is a read-only, concurrency-safe handle onto the catalogues
// resolved for one call to Domain.Locale or Domain.UserLocale.
type View struct {
	lib *Library
}

// Gettext looks up msgid, returning msgid itself if untranslated.
func (v View) Gettext(msgid string) string {
	return v.lib.Get(msgid)
}

// NGettext looks up msgid using the plural form selected for n.
func (v View) NGettext(msgid, msgidPlural string, n uint32) string {
	return v.lib.GetPl(msgid, msgidPlural, n)
}

// PGettext looks up msgid disambiguated by msgctxt.
func (v View) PGettext(msgctxt, msgid string) string {
	return v.lib.GetCtx(msgctxt, msgid)
}

// PNGettext looks up msgid disambiguated by msgctxt, using the plural form
// selected for n.
func (v View) PNGettext(msgctxt, msgid, msgidPlural string, n uint32) string {
	return v.lib.GetCtxPl(msgctxt, msgid, msgidPlural, n)
}
