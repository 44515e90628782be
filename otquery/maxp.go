package otquery

import (
	"github.com/npillmayer/fontmin/ot"
)

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// For version 1.0 tables, extended profile fields are decoded if present.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	// TrueType profile fields (version 1.0 only)
	HasExtendedProfile    bool
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	if otf == nil {
		return info, false
	}
	maxp, err := otf.MaxP()
	if err != nil || maxp == nil {
		tracer().Debugf("no usable maxp table: %v", err)
		return info, false
	}
	info.VersionFixed = maxp.Uint("version")
	info.NumGlyphs = maxp.NumGlyphs()
	if _, ok := maxp.Layout().Field("maxPoints"); !ok {
		return info, true
	}
	u := func(name string) uint16 { return uint16(maxp.Uint(name)) }
	info.HasExtendedProfile = true
	info.MaxPoints = u("maxPoints")
	info.MaxContours = u("maxContours")
	info.MaxCompositePoints = u("maxCompositePoints")
	info.MaxCompositeContours = u("maxCompositeContours")
	info.MaxZones = u("maxZones")
	info.MaxTwilightPoints = u("maxTwilightPoints")
	info.MaxStorage = u("maxStorage")
	info.MaxFunctionDefs = u("maxFunctionDefs")
	info.MaxInstructionDefs = u("maxInstructionDefs")
	info.MaxStackElements = u("maxStackElements")
	info.MaxSizeOfInstructions = u("maxSizeOfInstructions")
	info.MaxComponentElements = u("maxComponentElements")
	info.MaxComponentDepth = u("maxComponentDepth")
	return info, true
}
