package gettext

import "encoding/binary"

// stringInfo is a single (length, address) descriptor from an original- or
// translation-string table.
type stringInfo struct {
	length  uint32
	address uint32
}

// readStringInfo decodes the idx-th descriptor of table (at byte offset
// 8*idx within table), honoring order.
func readStringInfo(table []byte, idx int, order binary.ByteOrder) stringInfo {
	base := 8 * idx
	return stringInfo{
		length:  order.Uint32(table[base:]),
		address: order.Uint32(table[base+4:]),
	}
}

// validateStringTable checks every descriptor in a table of numStrings
// (length, address) pairs: the referenced bytes must lie entirely within
// buf and be NUL-terminated. tableOffset is the table's own file offset,
// needed to report each descriptor's file address (tableOffset + 8*i) in
// error messages.
func validateStringTable(buf []byte, table []byte, tableOffset uint32, numStrings int, order binary.ByteOrder) error {
	bufSize := uint32(len(buf))
	for i := 0; i < numStrings; i++ {
		info := readStringInfo(table, i, order)
		descAddr := tableOffset + uint32(8*i)

		end := uint64(info.address) + uint64(info.length)
		if end+1 > uint64(bufSize) {
			return loadErrorf(
				"string_info at 0x%x: extends beyond EOF (len:0x%x addr:0x%x file size:0x%x)",
				descAddr, info.length, info.address, bufSize,
			)
		}
		if buf[info.address+info.length] != 0x00 {
			return loadErrorf("string_info at 0x%x: missing null terminator", descAddr)
		}
	}
	return nil
}
