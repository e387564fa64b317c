package gettext

import (
	"encoding/binary"
	"os"
	"strconv"
	"strings"

	"github.com/snapcore/go-libintl/pluralforms"
)

const (
	leMagic uint32 = 0x950412de
	beMagic uint32 = 0xde120495

	headerSize = 28
)

type moHeader struct {
	Magic          uint32
	Version        uint32
	NumStrings     uint32
	OrigTabOffset  uint32
	TransTabOffset uint32
	HashTabSize    uint32
	HashTabOffset  uint32
}

func (h moHeader) majorVersion() uint32 { return h.Version >> 16 }

// Catalog is a single loaded MO file: a byte buffer plus the parallel
// original/translation string tables and compiled plural rule it
// describes. The accessor methods read from that buffer on each call and
// return a copy of the bytes as a Go string; returned strings do not alias
// the buffer.
type Catalog struct {
	buf   []byte
	order binary.ByteOrder

	numStrings int
	origTab    []byte
	transTab   []byte

	metadata    map[string]string
	numPlurals  int
	pluralRules *pluralforms.Node
}

// LoadCatalogFile reads and validates the MO file at path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErrorf("failed to open file")
	}
	defer f.Close()

	m, err := openMapping(f)
	if err != nil {
		return nil, loadErrorf("failed to open file")
	}
	defer m.Close()

	// Close unmaps m.data, so the catalogue keeps its own copy of the bytes.
	buf := make([]byte, len(m.data))
	copy(buf, m.data)
	return LoadCatalog(buf)
}

// LoadCatalog validates and parses a MO file already read into memory. The
// returned Catalog's strings alias buf directly; callers must not mutate
// buf afterwards.
func LoadCatalog(buf []byte) (*Catalog, error) {
	if len(buf) < 4 {
		return nil, loadErrorf("not a MO file")
	}

	var order binary.ByteOrder = binary.LittleEndian
	magic := order.Uint32(buf)
	switch magic {
	case leMagic:
		// nothing to do
	case beMagic:
		order = binary.BigEndian
	default:
		return nil, loadErrorf("not a MO file")
	}

	if len(buf) < headerSize {
		return nil, loadErrorf("not a MO file")
	}

	header := moHeader{
		Magic:          magic,
		Version:        order.Uint32(buf[4:]),
		NumStrings:     order.Uint32(buf[8:]),
		OrigTabOffset:  order.Uint32(buf[12:]),
		TransTabOffset: order.Uint32(buf[16:]),
		HashTabSize:    order.Uint32(buf[20:]),
		HashTabOffset:  order.Uint32(buf[24:]),
	}
	if header.majorVersion() > 1 {
		return nil, loadErrorf("unsupported MO revision")
	}

	numStrings := int(header.NumStrings)
	if uint64(header.OrigTabOffset)+8*uint64(header.NumStrings) > uint64(len(buf)) {
		return nil, loadErrorf("original strings table out of bounds")
	}
	origTab := buf[header.OrigTabOffset : uint64(header.OrigTabOffset)+8*uint64(header.NumStrings)]
	if err := validateStringTable(buf, origTab, header.OrigTabOffset, numStrings, order); err != nil {
		return nil, err
	}

	if uint64(header.TransTabOffset)+8*uint64(header.NumStrings) > uint64(len(buf)) {
		return nil, loadErrorf("translated strings table out of bounds")
	}
	transTab := buf[header.TransTabOffset : uint64(header.TransTabOffset)+8*uint64(header.NumStrings)]
	if err := validateStringTable(buf, transTab, header.TransTabOffset, numStrings, order); err != nil {
		return nil, err
	}

	cat := &Catalog{
		buf:        buf,
		order:      order,
		numStrings: numStrings,
		origTab:    origTab,
		transTab:   transTab,
		numPlurals: 2,
	}

	if numStrings > 0 && len(cat.rawOrig(0)) == 0 {
		if err := cat.parseMetadata(string(cat.rawTrans(0))); err != nil {
			return nil, err
		}
	}

	if err := cat.checkStringPlurals(); err != nil {
		return nil, err
	}

	return cat, nil
}

// NumStrings returns the number of original/translation entry pairs,
// including the zeroth metadata entry.
func (c *Catalog) NumStrings() int { return c.numStrings }

// Metadata returns the parsed "Key: Value" headers from the zeroth
// (empty-msgid) entry's translation, or nil if the catalogue carried none.
func (c *Catalog) Metadata() map[string]string { return c.metadata }

// NumPlurals returns the nplurals value declared by this catalogue's
// Plural-Forms header (2, the Germanic default, if absent).
func (c *Catalog) NumPlurals() int { return c.numPlurals }

func (c *Catalog) stringInfoAt(table []byte, i int) stringInfo {
	return readStringInfo(table, i, c.order)
}

// rawOrig returns the i-th original entry's full bytes, including any
// embedded NUL separating singular/plural source forms.
func (c *Catalog) rawOrig(i int) []byte {
	info := c.stringInfoAt(c.origTab, i)
	return c.buf[info.address : info.address+info.length]
}

// rawTrans returns the i-th translation entry's full bytes, including any
// embedded NULs separating plural variants.
func (c *Catalog) rawTrans(i int) []byte {
	info := c.stringInfoAt(c.transTab, i)
	return c.buf[info.address : info.address+info.length]
}

// NthOrigString returns the i-th original string (singular form only; a
// plural original's trailing variant is not included).
func (c *Catalog) NthOrigString(i int) string {
	raw := c.rawOrig(i)
	if nul := indexNUL(raw); nul >= 0 {
		raw = raw[:nul]
	}
	return string(raw)
}

// NthTranslation returns the i-th entry's singular translation (the first
// NUL-separated substring).
func (c *Catalog) NthTranslation(i int) string {
	raw := c.rawTrans(i)
	if nul := indexNUL(raw); nul >= 0 {
		raw = raw[:nul]
	}
	return string(raw)
}

// NthPluralTranslation returns the n-selected plural variant of the i-th
// entry's translation, using this catalogue's own Plural-Forms rule. The
// computed index is clamped to [0, NumPlurals).
func (c *Catalog) NthPluralTranslation(i int, n uint32) string {
	k := 0
	if c.pluralRules != nil {
		k = int(c.pluralRules.Eval(n))
	} else if n != 1 {
		k = 1
	}
	if k < 0 {
		k = 0
	}
	if k >= c.numPlurals {
		k = c.numPlurals - 1
	}

	raw := c.rawTrans(i)
	for k > 0 {
		nul := indexNUL(raw)
		if nul < 0 {
			break
		}
		raw = raw[nul+1:]
		k--
	}
	if nul := indexNUL(raw); nul >= 0 {
		raw = raw[:nul]
	}
	return string(raw)
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}

func countNUL(b []byte) int {
	n := 0
	for _, c := range b {
		if c == 0 {
			n++
		}
	}
	return n
}

func (c *Catalog) parseMetadata(info string) error {
	c.metadata = make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		c.metadata[key] = val
	}

	if ct, ok := c.metadata["Content-Type"]; ok {
		if !strings.Contains(ct, "charset=UTF-8") {
			return loadErrorf("unexpected value in Content-Type header (wrong charset?)")
		}
	}

	if pf, ok := c.metadata["Plural-Forms"]; ok {
		if err := c.parsePluralForms(pf); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) parsePluralForms(value string) error {
	const nKey = "nplurals="
	const exprKey = "plural="
	nIdx := strings.Index(value, nKey)
	exprIdx := strings.Index(value, exprKey)
	if nIdx < 0 || exprIdx < 0 {
		return nil
	}

	nPart := value[nIdx+len(nKey):]
	if semi := strings.IndexByte(nPart, ';'); semi >= 0 {
		nPart = nPart[:semi]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(nPart), 10, 32)
	if err != nil {
		return nil
	}

	exprPart := value[exprIdx+len(exprKey):]
	exprPart = strings.TrimRight(strings.TrimSpace(exprPart), ";")
	expr := strings.TrimSpace(exprPart)

	node, err := pluralforms.Parse(expr)
	if err != nil {
		return err
	}

	c.numPlurals = int(n)
	c.pluralRules = node
	return nil
}

// checkStringPlurals verifies that every translation of an entry whose
// original has an embedded-NUL plural variant carries exactly nplurals
// NUL-separated forms.
func (c *Catalog) checkStringPlurals() error {
	for i := 1; i < c.numStrings; i++ {
		orig := c.rawOrig(i)
		if indexNUL(orig) < 0 {
			continue
		}
		trans := c.rawTrans(i)
		got := countNUL(trans) + 1
		if got != c.numPlurals {
			return loadErrorf(
				"entry %d: translation has %d plural forms, nplurals declares %d",
				i, got, c.numPlurals,
			)
		}
	}
	return nil
}
