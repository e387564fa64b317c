package gettext

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// osGetenv is a package-level indirection over os.Getenv so tests can
// substitute a fixed environment.
var osGetenv = os.Getenv

// UserLanguages returns the list of languages (most preferred first) that
// the process environment requests, following the precedence POSIX locale
// tools use: LANGUAGE (colon-separated list) overrides LC_ALL, which
// overrides LC_MESSAGES, which overrides LANG. Returns nil if none of
// those variables are set.
func UserLanguages() []string {
	if lang := osGetenv("LANGUAGE"); lang != "" {
		return strings.Split(lang, ":")
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := osGetenv(name); v != "" {
			return []string{v}
		}
	}
	return nil
}

// normalizeLanguages expands each language tag into its full list of
// fallback locale names (see expandLocale), then flattens and deduplicates
// the result while preserving first-occurrence order. The "C" and "POSIX"
// locale names, which carry no translations, are dropped.
func normalizeLanguages(languages []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, lang := range languages {
		if lang == "C" || lang == "POSIX" {
			continue
		}
		for _, candidate := range expandLocale(lang) {
			if seen[candidate] {
				continue
			}
			seen[candidate] = true
			out = append(out, candidate)
		}
	}
	return out
}

// expandLocale expands a locale name of the form
// language[_territory][.codeset][@modifier] into the ordered list of
// progressively less specific fallback names glibc tries, from most to
// least specific: with and without modifier, with and without territory,
// and with the original codeset spelling, its normalized spelling, and no
// codeset at all.
func expandLocale(locale string) []string {
	rest := locale
	modifier := ""
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		modifier = rest[i:]
		rest = rest[:i]
	}
	codeset := ""
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		codeset = rest[i:]
		rest = rest[:i]
	}
	territory := ""
	language := rest
	if i := strings.IndexByte(rest, '_'); i >= 0 {
		territory = rest[i:]
		language = rest[:i]
	}

	var codesets []string
	if codeset != "" {
		norm := normalizeCodeset(codeset)
		codesets = append(codesets, codeset)
		if norm != codeset {
			codesets = append(codesets, norm)
		}
	}
	codesets = append(codesets, "")

	var out []string
	for _, mod := range uniqueNonEmptyFirst(modifier) {
		for _, terr := range uniqueNonEmptyFirst(territory) {
			for _, cs := range codesets {
				out = append(out, language+terr+cs+mod)
			}
		}
	}
	return out
}

// uniqueNonEmptyFirst returns [s, ""] when s is non-empty, or [""] when it
// is already empty; used to drive expandLocale's "with, then without"
// nesting without special-casing the empty case.
func uniqueNonEmptyFirst(s string) []string {
	if s == "" {
		return []string{""}
	}
	return []string{s, ""}
}

// normalizeCodeset canonicalizes a codeset suffix (the ".xxx" part of a
// locale name) the way glibc does: strip punctuation, lowercase, and
// prefix results that begin with a digit with "iso" (so "8859-1" and "ISO-8859-1" both
// normalize to "iso88591").
func normalizeCodeset(codeset string) string {
	if codeset == "" {
		return codeset
	}
	prefix := ""
	rest := codeset
	if rest[0] == '.' {
		prefix = "."
		rest = rest[1:]
	}

	var b strings.Builder
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		}
	}
	norm := b.String()
	if norm != "" && norm[0] >= '0' && norm[0] <= '9' {
		norm = "iso" + norm
	}
	return prefix + norm
}

// parseLocaleAlias parses a glibc-style locale.alias file: blank lines and
// "#"-led comments are ignored, and each remaining line maps its first
// whitespace-separated field to its second. Lines with fewer than two
// fields are ignored.
func parseLocaleAlias(r io.Reader) (map[string]string, error) {
	aliases := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		aliases[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return aliases, nil
}
