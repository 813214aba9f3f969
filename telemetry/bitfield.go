package telemetry

import (
	"math/bits"
	"strings"
)

// Bitfield is a decoded bitfield variable. Each implementation exposes one accessor per named
// bit; SetFlags lists the set bits by name.
type Bitfield interface {
	// Unit returns the unit string the bitfield was decoded for.
	Unit() string
	// Raw returns the undecoded value.
	Raw() uint32
	// SetFlags returns the names of the set bits in ascending bit order. Set bits without a
	// name are reported as "unknown".
	SetFlags() []string
}

// Bitfield unit strings.
const (
	UnitEngineWarnings = "irsdk_EngineWarnings"
	UnitFlags          = "irsdk_Flags"
	UnitCameraState    = "irsdk_CameraState"
	UnitPitSvFlags     = "irsdk_PitSvFlags"
	UnitPaceFlags      = "irsdk_PaceFlags"
)

var bitfieldDecoders = map[string]func(uint32) Bitfield{
	UnitEngineWarnings: func(v uint32) Bitfield { return EngineWarnings(v) },
	UnitFlags:          func(v uint32) Bitfield { return Flags(v) },
	UnitCameraState:    func(v uint32) Bitfield { return CameraState(v) },
	UnitPitSvFlags:     func(v uint32) Bitfield { return PitServiceFlags(v) },
	UnitPaceFlags:      func(v uint32) Bitfield { return PaceFlags(v) },
}

// BitfieldFor decodes raw according to unit. An unrecognized unit yields UnknownBitfield.
func BitfieldFor(unit string, raw uint32) Bitfield {
	if decode, ok := bitfieldDecoders[unit]; ok {
		return decode(raw)
	}

	return UnknownBitfield(raw)
}

// IsBitfieldUnit reports whether unit has a dedicated bitfield decoder.
func IsBitfieldUnit(unit string) bool {
	_, ok := bitfieldDecoders[unit]
	return ok
}

// bitNames maps bit positions to flag names; empty entries are unnamed bits.
type bitNames [32]string

func (n *bitNames) setFlags(v uint32) []string {
	flags := make([]string, 0, bits.OnesCount32(v))
	for v != 0 {
		bit := bits.TrailingZeros32(v)
		v &^= 1 << bit

		if name := n[bit]; name != "" {
			flags = append(flags, name)
		} else {
			flags = append(flags, "unknown")
		}
	}

	return flags
}

func (n *bitNames) format(v uint32) string {
	return "{" + strings.Join(n.setFlags(v), ", ") + "}"
}

// EngineWarnings is decoded from the "irsdk_EngineWarnings" unit.
type EngineWarnings uint32

const (
	EngineWaterTemp EngineWarnings = 1 << iota
	EngineFuelPressure
	EngineOilPressure
	EngineStalled
	EnginePitSpeedLimiter
	EngineRevLimiter
	EngineOilTemp
	EngineMandatoryRepairs
	EngineOptionalRepairs
)

var engineWarningNames = bitNames{
	0: "water_temp",
	1: "fuel_pressure",
	2: "oil_pressure",
	3: "engine_stalled",
	4: "pit_speed_limiter",
	5: "rev_limiter",
	6: "oil_temp",
	7: "mandatory_repairs",
	8: "optional_repairs",
}

func (w EngineWarnings) Unit() string       { return UnitEngineWarnings }
func (w EngineWarnings) Raw() uint32        { return uint32(w) }
func (w EngineWarnings) SetFlags() []string { return engineWarningNames.setFlags(uint32(w)) }
func (w EngineWarnings) String() string     { return engineWarningNames.format(uint32(w)) }

func (w EngineWarnings) WaterTemp() bool        { return w&EngineWaterTemp != 0 }
func (w EngineWarnings) FuelPressure() bool     { return w&EngineFuelPressure != 0 }
func (w EngineWarnings) OilPressure() bool      { return w&EngineOilPressure != 0 }
func (w EngineWarnings) EngineStalled() bool    { return w&EngineStalled != 0 }
func (w EngineWarnings) PitSpeedLimiter() bool  { return w&EnginePitSpeedLimiter != 0 }
func (w EngineWarnings) RevLimiter() bool       { return w&EngineRevLimiter != 0 }
func (w EngineWarnings) OilTemp() bool          { return w&EngineOilTemp != 0 }
func (w EngineWarnings) MandatoryRepairs() bool { return w&EngineMandatoryRepairs != 0 }
func (w EngineWarnings) OptionalRepairs() bool  { return w&EngineOptionalRepairs != 0 }

// Flags is the session flag set, decoded from the "irsdk_Flags" unit.
type Flags uint32

// Global flags, bits 0-15.
const (
	FlagCheckered Flags = 1 << iota
	FlagWhite
	FlagGreen
	FlagYellow
	FlagRed
	FlagBlue
	FlagDebris
	FlagCrossed
	FlagYellowWaving
	FlagOneLapToGreen
	FlagGreenHeld
	FlagTenToGo
	FlagFiveToGo
	FlagRandomWaving
	FlagCaution
	FlagCautionWaving
)

// Driver black flags, bits 16-21.
const (
	FlagBlack Flags = 1 << (iota + 16)
	FlagDisqualify
	FlagServicible
	FlagFurled
	FlagRepair
	FlagDisqualified
)

// Start lights, bits 28-31.
const (
	FlagStartLightsHidden Flags = 1 << (iota + 28)
	FlagStartLightsReady
	FlagStartLightsSet
	FlagStartLightsGo
)

var flagNames = bitNames{
	0:  "checkered",
	1:  "white",
	2:  "green",
	3:  "yellow",
	4:  "red",
	5:  "blue",
	6:  "debris",
	7:  "crossed",
	8:  "yellow_waving",
	9:  "one_lap_to_green",
	10: "green_held",
	11: "ten_to_go",
	12: "five_to_go",
	13: "random_waving",
	14: "caution",
	15: "caution_waving",
	16: "black",
	17: "disqualify",
	18: "servicible",
	19: "furled",
	20: "repair",
	21: "disqualified",
	28: "start_lights_hidden",
	29: "start_lights_ready",
	30: "start_lights_set",
	31: "start_lights_go",
}

func (f Flags) Unit() string       { return UnitFlags }
func (f Flags) Raw() uint32        { return uint32(f) }
func (f Flags) SetFlags() []string { return flagNames.setFlags(uint32(f)) }
func (f Flags) String() string     { return flagNames.format(uint32(f)) }

func (f Flags) Checkered() bool         { return f&FlagCheckered != 0 }
func (f Flags) White() bool             { return f&FlagWhite != 0 }
func (f Flags) Green() bool             { return f&FlagGreen != 0 }
func (f Flags) Yellow() bool            { return f&FlagYellow != 0 }
func (f Flags) Red() bool               { return f&FlagRed != 0 }
func (f Flags) Blue() bool              { return f&FlagBlue != 0 }
func (f Flags) Debris() bool            { return f&FlagDebris != 0 }
func (f Flags) Crossed() bool           { return f&FlagCrossed != 0 }
func (f Flags) YellowWaving() bool      { return f&FlagYellowWaving != 0 }
func (f Flags) OneLapToGreen() bool     { return f&FlagOneLapToGreen != 0 }
func (f Flags) GreenHeld() bool         { return f&FlagGreenHeld != 0 }
func (f Flags) TenToGo() bool           { return f&FlagTenToGo != 0 }
func (f Flags) FiveToGo() bool          { return f&FlagFiveToGo != 0 }
func (f Flags) RandomWaving() bool      { return f&FlagRandomWaving != 0 }
func (f Flags) Caution() bool           { return f&FlagCaution != 0 }
func (f Flags) CautionWaving() bool     { return f&FlagCautionWaving != 0 }
func (f Flags) Black() bool             { return f&FlagBlack != 0 }
func (f Flags) Disqualify() bool        { return f&FlagDisqualify != 0 }
func (f Flags) Servicible() bool        { return f&FlagServicible != 0 }
func (f Flags) Furled() bool            { return f&FlagFurled != 0 }
func (f Flags) Repair() bool            { return f&FlagRepair != 0 }
func (f Flags) Disqualified() bool      { return f&FlagDisqualified != 0 }
func (f Flags) StartLightsHidden() bool { return f&FlagStartLightsHidden != 0 }
func (f Flags) StartLightsReady() bool  { return f&FlagStartLightsReady != 0 }
func (f Flags) StartLightsSet() bool    { return f&FlagStartLightsSet != 0 }
func (f Flags) StartLightsGo() bool     { return f&FlagStartLightsGo != 0 }

// CameraState is decoded from the "irsdk_CameraState" unit. Bit 2 is unnamed.
type CameraState uint32

const (
	CameraIsSessionScreen       CameraState = 1 << 0
	CameraIsScenicActive        CameraState = 1 << 1
	CameraToolActive            CameraState = 1 << 3
	CameraUIHidden              CameraState = 1 << 4
	CameraUseAutoShotSelection  CameraState = 1 << 5
	CameraUseTemporaryEdits     CameraState = 1 << 6
	CameraUseKeyAcceleration    CameraState = 1 << 7
	CameraUseKey10xAcceleration CameraState = 1 << 8
	CameraUseMouseAimMode       CameraState = 1 << 9
)

var cameraStateNames = bitNames{
	0: "is_session_screen",
	1: "is_scenic_active",
	3: "camera_tool_active",
	4: "ui_hidden",
	5: "use_auto_shot_selection",
	6: "use_temporary_edits",
	7: "use_key_acceleration",
	8: "use_key_10x_acceleration",
	9: "use_mouse_aim_mode",
}

func (c CameraState) Unit() string       { return UnitCameraState }
func (c CameraState) Raw() uint32        { return uint32(c) }
func (c CameraState) SetFlags() []string { return cameraStateNames.setFlags(uint32(c)) }
func (c CameraState) String() string     { return cameraStateNames.format(uint32(c)) }

func (c CameraState) IsSessionScreen() bool       { return c&CameraIsSessionScreen != 0 }
func (c CameraState) IsScenicActive() bool        { return c&CameraIsScenicActive != 0 }
func (c CameraState) CameraToolActive() bool      { return c&CameraToolActive != 0 }
func (c CameraState) UIHidden() bool              { return c&CameraUIHidden != 0 }
func (c CameraState) UseAutoShotSelection() bool  { return c&CameraUseAutoShotSelection != 0 }
func (c CameraState) UseTemporaryEdits() bool     { return c&CameraUseTemporaryEdits != 0 }
func (c CameraState) UseKeyAcceleration() bool    { return c&CameraUseKeyAcceleration != 0 }
func (c CameraState) UseKey10xAcceleration() bool { return c&CameraUseKey10xAcceleration != 0 }
func (c CameraState) UseMouseAimMode() bool       { return c&CameraUseMouseAimMode != 0 }

// PitServiceFlags is decoded from the "irsdk_PitSvFlags" unit.
type PitServiceFlags uint32

const (
	PitLFTireChange PitServiceFlags = 1 << iota
	PitRFTireChange
	PitLRTireChange
	PitRRTireChange
	PitFillFuel
	PitWindshieldTearoff
	PitFastRepair
)

var pitServiceNames = bitNames{
	0: "lf_tire_change",
	1: "rf_tire_change",
	2: "lr_tire_change",
	3: "rr_tire_change",
	4: "fill_fuel",
	5: "windshield_tearoff",
	6: "fast_repair",
}

func (p PitServiceFlags) Unit() string       { return UnitPitSvFlags }
func (p PitServiceFlags) Raw() uint32        { return uint32(p) }
func (p PitServiceFlags) SetFlags() []string { return pitServiceNames.setFlags(uint32(p)) }
func (p PitServiceFlags) String() string     { return pitServiceNames.format(uint32(p)) }

func (p PitServiceFlags) LFTireChange() bool      { return p&PitLFTireChange != 0 }
func (p PitServiceFlags) RFTireChange() bool      { return p&PitRFTireChange != 0 }
func (p PitServiceFlags) LRTireChange() bool      { return p&PitLRTireChange != 0 }
func (p PitServiceFlags) RRTireChange() bool      { return p&PitRRTireChange != 0 }
func (p PitServiceFlags) FillFuel() bool          { return p&PitFillFuel != 0 }
func (p PitServiceFlags) WindshieldTearoff() bool { return p&PitWindshieldTearoff != 0 }
func (p PitServiceFlags) FastRepair() bool        { return p&PitFastRepair != 0 }

// PaceFlags is decoded from the "irsdk_PaceFlags" unit.
type PaceFlags uint32

const (
	PaceEndOfLine PaceFlags = 1 << iota
	PaceFreePass
	PaceWavedAround
)

var paceFlagNames = bitNames{
	0: "end_of_line",
	1: "free_pass",
	2: "waved_around",
}

func (p PaceFlags) Unit() string       { return UnitPaceFlags }
func (p PaceFlags) Raw() uint32        { return uint32(p) }
func (p PaceFlags) SetFlags() []string { return paceFlagNames.setFlags(uint32(p)) }
func (p PaceFlags) String() string     { return paceFlagNames.format(uint32(p)) }

func (p PaceFlags) EndOfLine() bool   { return p&PaceEndOfLine != 0 }
func (p PaceFlags) FreePass() bool    { return p&PaceFreePass != 0 }
func (p PaceFlags) WavedAround() bool { return p&PaceWavedAround != 0 }

// UnknownBitfield holds a bitfield variable whose unit has no decoder. Every set bit is unnamed.
type UnknownBitfield uint32

var noNames bitNames

func (u UnknownBitfield) Unit() string       { return "" }
func (u UnknownBitfield) Raw() uint32        { return uint32(u) }
func (u UnknownBitfield) SetFlags() []string { return noNames.setFlags(uint32(u)) }
func (u UnknownBitfield) String() string     { return noNames.format(uint32(u)) }
