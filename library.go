package gettext

import "sort"

// libraryEntry is one msgid's resolved location within a Library: which
// catalogue owns it and at what entry index.
type libraryEntry struct {
	key     string
	catalog int
	entry   int
}

// Library indexes a stack of catalogues into a single lookup surface. When
// more than one catalogue defines the same key, the catalogue added last
// wins, matching the base-plus-overrides layering GNU gettext uses when a
// package's translations are supplemented by mod or theme catalogues.
//
// A Library is built once by NewLibrary and is safe for concurrent lookups
// afterwards; it is not safe to use while still being built.
type Library struct {
	catalogs []*Catalog
	index    []libraryEntry
}

// NewLibrary indexes catalogs in order, with later entries overriding
// earlier ones on key collision.
func NewLibrary(catalogs ...*Catalog) *Library {
	lib := &Library{catalogs: catalogs}

	for ci, cat := range catalogs {
		for ei := 1; ei < cat.NumStrings(); ei++ {
			lib.index = append(lib.index, libraryEntry{
				key:     cat.NthOrigString(ei),
				catalog: ci,
				entry:   ei,
			})
		}
	}

	sort.SliceStable(lib.index, func(i, j int) bool {
		return lib.index[i].key < lib.index[j].key
	})

	// Collapse runs of equal keys, keeping the last-inserted entry of
	// each run: since entries were appended in catalog-ascending order
	// and the sort above is stable, that is the entry from the
	// highest-indexed catalogue that defines the key.
	deduped := lib.index[:0]
	for i := 0; i < len(lib.index); {
		j := i + 1
		for j < len(lib.index) && lib.index[j].key == lib.index[i].key {
			j++
		}
		deduped = append(deduped, lib.index[j-1])
		i = j
	}
	lib.index = deduped

	return lib
}

func (lib *Library) find(key string) (libraryEntry, bool) {
	i := sort.Search(len(lib.index), func(i int) bool {
		return lib.index[i].key >= key
	})
	if i < len(lib.index) && lib.index[i].key == key {
		return lib.index[i], true
	}
	return libraryEntry{}, false
}

// Get looks up msgid, falling back to msgid itself when no catalogue
// defines it.
func (lib *Library) Get(msgid string) string {
	e, ok := lib.find(msgid)
	if !ok {
		return msgid
	}
	return lib.catalogs[e.catalog].NthTranslation(e.entry)
}

// GetPl looks up msgid using the plural form selected for n, falling back
// to the Germanic singular/plural rule over msgid/msgidPlural when no
// catalogue defines it.
func (lib *Library) GetPl(msgid, msgidPlural string, n uint32) string {
	e, ok := lib.find(msgid)
	if !ok {
		if n == 1 {
			return msgid
		}
		return msgidPlural
	}
	return lib.catalogs[e.catalog].NthPluralTranslation(e.entry, n)
}

// GetCtx looks up msgid disambiguated by msgctxt, per the msgctxt+EOT+msgid
// convention MO files use to encode context.
func (lib *Library) GetCtx(msgctxt, msgid string) string {
	e, ok := lib.find(msgctxt + "\x04" + msgid)
	if !ok {
		return msgid
	}
	return lib.catalogs[e.catalog].NthTranslation(e.entry)
}

// GetCtxPl looks up msgid disambiguated by msgctxt with plural selection,
// falling back to the Germanic rule over msgid/msgidPlural.
func (lib *Library) GetCtxPl(msgctxt, msgid, msgidPlural string, n uint32) string {
	e, ok := lib.find(msgctxt + "\x04" + msgid)
	if !ok {
		if n == 1 {
			return msgid
		}
		return msgidPlural
	}
	return lib.catalogs[e.catalog].NthPluralTranslation(e.entry, n)
}
