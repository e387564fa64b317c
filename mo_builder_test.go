package gettext

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"
)

// moEntry is a single msgid/msgstr pair used by buildMO. For
// context-disambiguated entries msgid should already contain the
// "msgctxt\x04msgid" encoding; for plural entries msgid should contain
// "singular\x00plural" and msgstr the NUL-joined plural translations.
type moEntry struct {
	msgid  string
	msgstr string
}

// buildMO assembles a minimal, well-formed little-endian MO file from
// entries (which need not be pre-sorted; buildMO sorts them by msgid as
// msgfmt would) and an optional metadata block installed as the
// empty-msgid entry 0. No test fixture .mo files exist anywhere in this
// repository's history, so every test that needs one constructs it with
// this helper instead.
func buildMO(t testing.TB, metadata string, entries []moEntry) []byte {
	t.Helper()
	return buildMOOrder(t, binary.LittleEndian, metadata, entries)
}

// buildMOOrder is buildMO with an explicit byte order, so tests can build
// the same logical catalogue as either a little-endian or big-endian MO
// file and check the loader treats them identically.
func buildMOOrder(t testing.TB, order binary.ByteOrder, metadata string, entries []moEntry) []byte {
	t.Helper()

	all := make([]moEntry, 0, len(entries)+1)
	all = append(all, moEntry{msgid: "", msgstr: metadata})
	all = append(all, entries...)
	sort.SliceStable(all[1:], func(i, j int) bool {
		return all[1:][i].msgid < all[1:][j].msgid
	})

	n := len(all)
	origTabOff := uint32(headerSize)
	transTabOff := origTabOff + uint32(8*n)
	dataOff := transTabOff + uint32(8*n)

	var origTab, transTab, data bytes.Buffer
	offset := dataOff

	for _, e := range all {
		b := []byte(e.msgid)
		binary.Write(&origTab, order, uint32(len(b)))
		binary.Write(&origTab, order, offset)
		data.Write(b)
		data.WriteByte(0)
		offset += uint32(len(b)) + 1
	}
	for _, e := range all {
		b := []byte(e.msgstr)
		binary.Write(&transTab, order, uint32(len(b)))
		binary.Write(&transTab, order, offset)
		data.Write(b)
		data.WriteByte(0)
		offset += uint32(len(b)) + 1
	}

	// The magic field always holds the canonical leMagic value, encoded in
	// whichever byte order this file is being built in; it's the raw bytes
	// of that encoding, not their numeric value, that tell LoadCatalog
	// which order the rest of the file uses (see LoadCatalog's probe).
	var buf bytes.Buffer
	binary.Write(&buf, order, leMagic)
	binary.Write(&buf, order, uint32(0))
	binary.Write(&buf, order, uint32(n))
	binary.Write(&buf, order, origTabOff)
	binary.Write(&buf, order, transTabOff)
	binary.Write(&buf, order, uint32(0))
	binary.Write(&buf, order, uint32(0))
	buf.Write(origTab.Bytes())
	buf.Write(transTab.Bytes())
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// standardMetadata is a Content-Type/Plural-Forms block good for use as
// the metadata entry in most tests.
const standardMetadata = "Content-Type: text/plain; charset=UTF-8\nPlural-Forms: nplurals=2; plural=(n != 1);\n"
