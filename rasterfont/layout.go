package rasterfont

import "encoding/binary"

// The layout below reproduces the Windows 3.0-era FONTINFO/GLYPHENTRY
// resource format byte-for-byte (1-byte packed, little-endian), per the
// wire table this spec fixes. Go struct layout isn't 1-byte-packed by
// default, so the header is written directly to explicit byte offsets
// rather than through a tagged struct.
const (
	fwNormal    = 0x0190
	oemCharset  = 0xFF
	fixedPitch  = 0x01
	ffDontCare  = 0x00 << 4
	dffFixed    = 0x0001
	dff1Color   = 0x0010
	glyphEntrySize = 6 // WORD width + DWORD offset
	faceNameSize   = 32
	headerSize     = 149
)

// header mirrors the FONTINFO fields named in the wire table. Unlisted
// fields (copyright, type, metrics, device, pointers, color table) are
// always zero.
type header struct {
	totalSize   uint32
	pixWidth    uint16
	pixHeight   uint16
	firstChar   byte
	lastChar    byte
	faceOffset  uint32
	bitsOffset  uint32
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	le := binary.LittleEndian

	le.PutUint16(buf[0:], 0x0300) // version
	le.PutUint32(buf[2:], h.totalSize)
	// buf[6:66] copyright stays zero
	// buf[66:80] type/points/vert_res/horiz_res/ascent/internal_leading/external_leading stay zero
	buf[80] = 0 // italic
	buf[81] = 0 // underline
	buf[82] = 0 // strikeout
	le.PutUint16(buf[83:], fwNormal)
	buf[85] = oemCharset
	le.PutUint16(buf[86:], h.pixWidth)
	le.PutUint16(buf[88:], h.pixHeight)
	buf[90] = fixedPitch | ffDontCare
	le.PutUint16(buf[91:], h.pixWidth) // avg_width
	le.PutUint16(buf[93:], h.pixWidth) // max_width
	buf[95] = h.firstChar
	buf[96] = h.lastChar
	// buf[97:100] default/break/reserved stay zero
	le.PutUint16(buf[100:], 0) // width_bytes
	le.PutUint32(buf[102:], 0) // device
	le.PutUint32(buf[106:], h.faceOffset)
	le.PutUint32(buf[110:], 0) // bits_pointer
	le.PutUint32(buf[114:], h.bitsOffset)
	buf[118] = 0 // reserved
	le.PutUint32(buf[119:], dffFixed|dff1Color)
	// buf[123:149] aspace/bspace/cspace/color_pointer/reserved[4] stay zero

	return buf
}

type glyphEntry struct {
	width  uint16
	offset uint32
}

func (g glyphEntry) marshal() []byte {
	buf := make([]byte, glyphEntrySize)
	binary.LittleEndian.PutUint16(buf[0:], g.width)
	binary.LittleEndian.PutUint32(buf[2:], g.offset)
	return buf
}
