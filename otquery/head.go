package otquery

import (
	"time"

	"github.com/npillmayer/fontmin/ot"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       float64
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            time.Time
	Modified           time.Time
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if otf == nil {
		return info, false
	}
	head, err := otf.Head()
	if err != nil || head == nil {
		tracer().Debugf("no usable head table: %v", err)
		return info, false
	}
	info.MajorVersion = uint16(head.Uint("majorVersion"))
	info.MinorVersion = uint16(head.Uint("minorVersion"))
	info.FontRevision = head.Fixed("fontRevision")
	info.CheckSumAdjustment = head.CheckSumAdjustment()
	info.MagicNumber = head.MagicNumber()
	info.Flags = uint16(head.Uint("flags"))
	info.UnitsPerEm = head.UnitsPerEm()
	info.Created = head.Created()
	info.Modified = head.Modified()
	info.XMin = int16(head.Int("xMin"))
	info.YMin = int16(head.Int("yMin"))
	info.XMax = int16(head.Int("xMax"))
	info.YMax = int16(head.Int("yMax"))
	info.MacStyle = uint16(head.Uint("macStyle"))
	info.LowestRecPPEM = uint16(head.Uint("lowestRecPPEM"))
	info.FontDirectionHint = int16(head.Int("fontDirectionHint"))
	info.IndexToLocFormat = head.IndexToLocFormat()
	info.GlyphDataFormat = int16(head.Int("glyphDataFormat"))
	return info, true
}
