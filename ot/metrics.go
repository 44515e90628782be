package ot

import "fmt"

// Tables 'hhea' and 'vhea' share their binary layout; only the names of the
// fields differ.
var (
	hheaLayout = NewLayout("hhea", []FieldDef{
		{"version", Uint32},
		{"ascender", Int16},
		{"descender", Int16},
		{"lineGap", Int16},
		{"advanceWidthMax", Uint16},
		{"minLeftSideBearing", Int16},
		{"minRightSideBearing", Int16},
		{"xMaxExtent", Int16},
		{"caretSlopeRise", Int16},
		{"caretSlopeRun", Int16},
		{"caretOffset", Int16},
		{"reserved1", Int16},
		{"reserved2", Int16},
		{"reserved3", Int16},
		{"reserved4", Int16},
		{"metricDataFormat", Int16},
		{"numberOfHMetrics", Uint16},
	})
	vheaLayout = NewLayout("vhea", []FieldDef{
		{"version", Uint32},
		{"vertTypoAscender", Int16},
		{"vertTypoDescender", Int16},
		{"vertTypoLineGap", Int16},
		{"advanceHeightMax", Uint16},
		{"minTopSideBearing", Int16},
		{"minBottomSideBearing", Int16},
		{"yMaxExtent", Int16},
		{"caretSlopeRise", Int16},
		{"caretSlopeRun", Int16},
		{"caretOffset", Int16},
		{"reserved1", Int16},
		{"reserved2", Int16},
		{"reserved3", Int16},
		{"reserved4", Int16},
		{"metricDataFormat", Int16},
		{"numOfLongVerMetrics", Uint16},
	})
)

// HHeaTable contains information for horizontal layout.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
type HHeaTable struct {
	tableBase
	Record
}

func newHHeaTable(tag Tag, b []byte) (Table, error) {
	rec, err := NewRecord(hheaLayout, b)
	if err != nil {
		return nil, err
	}
	t := &HHeaTable{tableBase: tableBase{data: b, name: tag}, Record: rec}
	t.self = t
	return t, nil
}

// Ascender returns the typographic ascent.
func (t *HHeaTable) Ascender() int16 { return int16(t.Int("ascender")) }

// Descender returns the typographic descent (usually negative).
func (t *HHeaTable) Descender() int16 { return int16(t.Int("descender")) }

// LineGap returns the typographic line gap.
func (t *HHeaTable) LineGap() int16 { return int16(t.Int("lineGap")) }

// AdvanceWidthMax returns the maximum advance width value in 'hmtx'.
func (t *HHeaTable) AdvanceWidthMax() uint16 { return uint16(t.Uint("advanceWidthMax")) }

// NumberOfHMetrics returns the number of long metrics in table 'hmtx'.
func (t *HHeaTable) NumberOfHMetrics() uint16 { return uint16(t.Uint("numberOfHMetrics")) }

// SetNumberOfHMetrics sets the number of long metrics in table 'hmtx'.
func (t *HHeaTable) SetNumberOfHMetrics(n uint16) { t.SetUint("numberOfHMetrics", uint32(n)) }

// VHeaTable contains information for vertical layout.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/vhea
type VHeaTable struct {
	tableBase
	Record
}

func newVHeaTable(tag Tag, b []byte) (Table, error) {
	rec, err := NewRecord(vheaLayout, b)
	if err != nil {
		return nil, err
	}
	t := &VHeaTable{tableBase: tableBase{data: b, name: tag}, Record: rec}
	t.self = t
	return t, nil
}

// NumOfLongVerMetrics returns the number of long metrics in table 'vmtx'.
func (t *VHeaTable) NumOfLongVerMetrics() uint16 { return uint16(t.Uint("numOfLongVerMetrics")) }

// SetNumOfLongVerMetrics sets the number of long metrics in table 'vmtx'.
func (t *VHeaTable) SetNumOfLongVerMetrics(n uint16) { t.SetUint("numOfLongVerMetrics", uint32(n)) }

// --- hmtx and vmtx ---------------------------------------------------------

// LongMetric is an entry of tables 'hmtx' and 'vmtx': an advance width and a
// left side bearing, or an advance height and a top side bearing.
type LongMetric struct {
	Advance uint16
	Bearing int16
}

// metricsTable holds an array of numLong long metrics, followed by an array
// of side bearings for the remaining glyphs. The split point is stored in
// the header table ('hhea' or 'vhea'), thus the number of long metrics has
// to be passed in by clients.
type metricsTable struct {
	tableBase
}

// Metric returns the metrics of glyph g. Glyphs beyond the long metrics
// array share the advance of the last long metric.
func (t *metricsTable) Metric(g GlyphIndex, numLong int) (LongMetric, error) {
	if numLong <= 0 {
		return LongMetric{}, errFontFormat(t.name, "metrics", "no long metrics")
	}
	if int(g) < numLong {
		b, err := t.data.view(4*int(g), 4)
		if err != nil {
			return LongMetric{}, errTruncated(t.name, "longMetrics", 4*int(g)+4, len(t.data))
		}
		return LongMetric{Advance: u16(b), Bearing: int16(u16(b[2:]))}, nil
	}
	last, err := t.data.u16(4 * (numLong - 1))
	if err != nil {
		return LongMetric{}, errTruncated(t.name, "longMetrics", 4*numLong, len(t.data))
	}
	off := 4*numLong + 2*(int(g)-numLong)
	bearing, err := t.data.u16(off)
	if err != nil {
		return LongMetric{}, errTruncated(t.name, "bearings", off+2, len(t.data))
	}
	return LongMetric{Advance: last, Bearing: int16(bearing)}, nil
}

// Len returns the number of glyphs covered by the table, given the number
// of long metrics.
func (t *metricsTable) Len(numLong int) int {
	if numLong <= 0 || 4*numLong > len(t.data) {
		return 0
	}
	return numLong + (len(t.data)-4*numLong)/2
}

func encodeLongMetrics(metrics []LongMetric) []byte {
	b := make([]byte, 0, 4*len(metrics))
	for _, m := range metrics {
		b = appendU16(b, m.Advance)
		b = appendU16(b, uint16(m.Bearing))
	}
	return b
}

// HMtxTable contains glyph metrics used for horizontal text layout.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
type HMtxTable struct {
	metricsTable
}

func newHMtxTable(tag Tag, b []byte) (Table, error) {
	t := &HMtxTable{metricsTable{tableBase{data: b, name: tag}}}
	t.self = t
	return t, nil
}

// NewHMtxTable creates an hmtx table with one long metric per glyph.
func NewHMtxTable(metrics []LongMetric) *HMtxTable {
	t, _ := newHMtxTable(T("hmtx"), encodeLongMetrics(metrics))
	return t.(*HMtxTable)
}

// VMtxTable contains glyph metrics used for vertical text layout.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/vmtx
type VMtxTable struct {
	metricsTable
}

func newVMtxTable(tag Tag, b []byte) (Table, error) {
	t := &VMtxTable{metricsTable{tableBase{data: b, name: tag}}}
	t.self = t
	return t, nil
}

// NewVMtxTable creates a vmtx table with one long metric per glyph.
func NewVMtxTable(metrics []LongMetric) *VMtxTable {
	t, _ := newVMtxTable(T("vmtx"), encodeLongMetrics(metrics))
	return t.(*VMtxTable)
}

// HMetric returns the horizontal metrics for glyph g.
func (otf *Font) HMetric(g GlyphIndex) (LongMetric, error) {
	hhea, err := otf.HHea()
	if err != nil {
		return LongMetric{}, err
	}
	hmtx, err := otf.HMtx()
	if err != nil {
		return LongMetric{}, err
	}
	if hhea == nil || hmtx == nil {
		return LongMetric{}, MissingTableError(T("hmtx"), fmt.Sprintf("metrics of glyph %d", g))
	}
	return hmtx.Metric(g, int(hhea.NumberOfHMetrics()))
}

// VMetric returns the vertical metrics for glyph g. If the font has no
// vertical metrics, ok is false.
func (otf *Font) VMetric(g GlyphIndex) (m LongMetric, ok bool, err error) {
	vhea, err := otf.VHea()
	if err != nil {
		return LongMetric{}, false, err
	}
	vmtx, err := otf.VMtx()
	if err != nil {
		return LongMetric{}, false, err
	}
	if vhea == nil || vmtx == nil {
		return LongMetric{}, false, nil
	}
	m, err = vmtx.Metric(g, int(vhea.NumOfLongVerMetrics()))
	return m, err == nil, err
}
