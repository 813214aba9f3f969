package telemetry

import "strconv"

// Enum is a decoded enumeration variable.
type Enum interface {
	// Unit returns the unit string the enumeration was decoded for.
	Unit() string
	// String returns the variant name.
	String() string
}

// Enumeration unit strings.
const (
	UnitTrkLoc       = "irsdk_TrkLoc"
	UnitTrkSurf      = "irsdk_TrkSurf"
	UnitSessionState = "irsdk_SessionState"
	UnitCarLeftRight = "irsdk_CarLeftRight"
	UnitPitSvStatus  = "irsdk_PitSvStatus"
	UnitPaceMode     = "irsdk_PaceMode"
	UnitTrackWetness = "irsdk_TrackWetness"
)

var enumDecoders = map[string]func(int32) Enum{
	UnitTrkLoc:       func(v int32) Enum { return TrackLocationFrom(v) },
	UnitTrkSurf:      func(v int32) Enum { return TrackSurfaceFrom(v) },
	UnitSessionState: func(v int32) Enum { return SessionStateFrom(v) },
	UnitCarLeftRight: func(v int32) Enum { return CarLeftRightFrom(v) },
	UnitPitSvStatus:  func(v int32) Enum { return PitServiceStatusFrom(v) },
	UnitPaceMode:     func(v int32) Enum { return PaceModeFrom(v) },
	UnitTrackWetness: func(v int32) Enum { return TrackWetnessFrom(v) },
}

// EnumFor decodes raw according to unit. It reports false when unit is not an enumeration unit.
// Decoding never fails: a discriminant outside the known set yields the type's fallback variant.
func EnumFor(unit string, raw int32) (Enum, bool) {
	decode, ok := enumDecoders[unit]
	if !ok {
		return nil, false
	}

	return decode(raw), true
}

// IsEnumUnit reports whether unit has an enumeration decoder.
func IsEnumUnit(unit string) bool {
	_, ok := enumDecoders[unit]
	return ok
}

// enumTable holds the variant names of one enumeration and its fallback.
type enumTable[E ~int32] struct {
	names    map[E]string
	fallback E
}

func (t *enumTable[E]) decode(raw int32) E {
	if _, ok := t.names[E(raw)]; ok {
		return E(raw)
	}

	return t.fallback
}

func (t *enumTable[E]) name(v E) string {
	if name, ok := t.names[v]; ok {
		return name
	}

	return strconv.Itoa(int(v))
}

// TrackLocation is decoded from the "irsdk_TrkLoc" unit.
type TrackLocation int32

const (
	TrackLocNotInWorld TrackLocation = -1
	TrackLocOffTrack   TrackLocation = 0
	TrackLocInPitStall TrackLocation = 1
	// TrackLocApproachingPits includes the lead-in to pit road as well as pit road itself.
	TrackLocApproachingPits TrackLocation = 2
	TrackLocOnTrack         TrackLocation = 3
	// TrackLocUnknown is the fallback for discriminants the decoder does not know.
	TrackLocUnknown TrackLocation = 4
)

var trackLocations = enumTable[TrackLocation]{
	names: map[TrackLocation]string{
		TrackLocNotInWorld:      "NotInWorld",
		TrackLocOffTrack:        "OffTrack",
		TrackLocInPitStall:      "InPitStall",
		TrackLocApproachingPits: "ApproachingPits",
		TrackLocOnTrack:         "OnTrack",
		TrackLocUnknown:         "Unknown",
	},
	fallback: TrackLocUnknown,
}

// TrackLocationFrom decodes a raw discriminant; unknown values yield TrackLocUnknown.
func TrackLocationFrom(raw int32) TrackLocation { return trackLocations.decode(raw) }

func (l TrackLocation) Unit() string   { return UnitTrkLoc }
func (l TrackLocation) String() string { return trackLocations.name(l) }

// TrackSurface is decoded from the "irsdk_TrkSurf" unit.
type TrackSurface int32

const (
	SurfaceNotInWorld TrackSurface = -1
	SurfaceUndefined  TrackSurface = 0
)

const (
	SurfaceAsphalt1 TrackSurface = iota + 1
	SurfaceAsphalt2
	SurfaceAsphalt3
	SurfaceAsphalt4
	SurfaceConcrete1
	SurfaceConcrete2
	SurfaceRacingDirt1
	SurfaceRacingDirt2
	SurfacePaint1
	SurfacePaint2
	SurfaceRumble1
	SurfaceRumble2
	SurfaceRumble3
	SurfaceRumble4
	SurfaceGrass1
	SurfaceGrass2
	SurfaceGrass3
	SurfaceGrass4
	SurfaceDirt1
	SurfaceDirt2
	SurfaceDirt3
	SurfaceDirt4
	SurfaceSand
	SurfaceGravel1
	SurfaceGravel2
	SurfaceGrasscrete
	SurfaceAstroturf
)

var trackSurfaces = enumTable[TrackSurface]{
	names: map[TrackSurface]string{
		SurfaceNotInWorld:  "SurfaceNotInWorld",
		SurfaceUndefined:   "Undefined",
		SurfaceAsphalt1:    "Asphalt1",
		SurfaceAsphalt2:    "Asphalt2",
		SurfaceAsphalt3:    "Asphalt3",
		SurfaceAsphalt4:    "Asphalt4",
		SurfaceConcrete1:   "Concrete1",
		SurfaceConcrete2:   "Concrete2",
		SurfaceRacingDirt1: "RacingDirt1",
		SurfaceRacingDirt2: "RacingDirt2",
		SurfacePaint1:      "Paint1",
		SurfacePaint2:      "Paint2",
		SurfaceRumble1:     "Rumble1",
		SurfaceRumble2:     "Rumble2",
		SurfaceRumble3:     "Rumble3",
		SurfaceRumble4:     "Rumble4",
		SurfaceGrass1:      "Grass1",
		SurfaceGrass2:      "Grass2",
		SurfaceGrass3:      "Grass3",
		SurfaceGrass4:      "Grass4",
		SurfaceDirt1:       "Dirt1",
		SurfaceDirt2:       "Dirt2",
		SurfaceDirt3:       "Dirt3",
		SurfaceDirt4:       "Dirt4",
		SurfaceSand:        "Sand",
		SurfaceGravel1:     "Gravel1",
		SurfaceGravel2:     "Gravel2",
		SurfaceGrasscrete:  "Grasscrete",
		SurfaceAstroturf:   "Astroturf",
	},
	fallback: SurfaceUndefined,
}

// TrackSurfaceFrom decodes a raw discriminant; unknown values yield SurfaceUndefined.
func TrackSurfaceFrom(raw int32) TrackSurface { return trackSurfaces.decode(raw) }

func (s TrackSurface) Unit() string   { return UnitTrkSurf }
func (s TrackSurface) String() string { return trackSurfaces.name(s) }

// SessionState is decoded from the "irsdk_SessionState" unit.
type SessionState int32

const (
	SessionInvalid SessionState = iota
	SessionGetInCar
	SessionWarmup
	SessionParadeLaps
	SessionRacing
	SessionCheckered
	SessionCooldown
)

var sessionStates = enumTable[SessionState]{
	names: map[SessionState]string{
		SessionInvalid:    "Invalid",
		SessionGetInCar:   "GetInCar",
		SessionWarmup:     "Warmup",
		SessionParadeLaps: "ParadeLaps",
		SessionRacing:     "Racing",
		SessionCheckered:  "Checkered",
		SessionCooldown:   "Cooldown",
	},
	fallback: SessionInvalid,
}

// SessionStateFrom decodes a raw discriminant; unknown values yield SessionInvalid.
func SessionStateFrom(raw int32) SessionState { return sessionStates.decode(raw) }

func (s SessionState) Unit() string   { return UnitSessionState }
func (s SessionState) String() string { return sessionStates.name(s) }

// CarLeftRight is the spotter state, decoded from the "irsdk_CarLeftRight" unit.
type CarLeftRight int32

const (
	SpotterOff CarLeftRight = iota
	SpotterClear
	SpotterCarLeft
	SpotterCarRight
	SpotterMiddle
	SpotterTwoLeft
	SpotterTwoRight
)

var carLeftRights = enumTable[CarLeftRight]{
	names: map[CarLeftRight]string{
		SpotterOff:      "Off",
		SpotterClear:    "Clear",
		SpotterCarLeft:  "CarLeft",
		SpotterCarRight: "CarRight",
		SpotterMiddle:   "Middle",
		SpotterTwoLeft:  "TwoLeft",
		SpotterTwoRight: "TwoRight",
	},
	fallback: SpotterOff,
}

// CarLeftRightFrom decodes a raw discriminant; unknown values yield SpotterOff.
func CarLeftRightFrom(raw int32) CarLeftRight { return carLeftRights.decode(raw) }

func (c CarLeftRight) Unit() string   { return UnitCarLeftRight }
func (c CarLeftRight) String() string { return carLeftRights.name(c) }

// PitServiceStatus is decoded from the "irsdk_PitSvStatus" unit.
type PitServiceStatus int32

const (
	PitSvNone       PitServiceStatus = 0
	PitSvInProgress PitServiceStatus = 1
	PitSvComplete   PitServiceStatus = 2
)

// Pit service errors.
const (
	PitSvTooFarLeft PitServiceStatus = iota + 100
	PitSvTooFarRight
	PitSvTooFarForward
	PitSvTooFarBack
	PitSvBadAngle
	PitSvTerminalDamage
)

var pitServiceStatuses = enumTable[PitServiceStatus]{
	names: map[PitServiceStatus]string{
		PitSvNone:           "None",
		PitSvInProgress:     "InProgress",
		PitSvComplete:       "Complete",
		PitSvTooFarLeft:     "TooFarLeft",
		PitSvTooFarRight:    "TooFarRight",
		PitSvTooFarForward:  "TooFarForward",
		PitSvTooFarBack:     "TooFarBack",
		PitSvBadAngle:       "BadAngle",
		PitSvTerminalDamage: "TerminalDamage",
	},
	fallback: PitSvNone,
}

// PitServiceStatusFrom decodes a raw discriminant; unknown values yield PitSvNone.
func PitServiceStatusFrom(raw int32) PitServiceStatus { return pitServiceStatuses.decode(raw) }

func (p PitServiceStatus) Unit() string   { return UnitPitSvStatus }
func (p PitServiceStatus) String() string { return pitServiceStatuses.name(p) }

// IsError reports whether the status is one of the pit service errors.
func (p PitServiceStatus) IsError() bool { return p >= PitSvTooFarLeft }

// PaceMode is decoded from the "irsdk_PaceMode" unit.
type PaceMode int32

const (
	PaceSingleFileStart PaceMode = iota
	PaceDoubleFileStart
	PaceSingleFileRestart
	PaceDoubleFileRestart
	PaceNotPacing
)

var paceModes = enumTable[PaceMode]{
	names: map[PaceMode]string{
		PaceSingleFileStart:   "SingleFileStart",
		PaceDoubleFileStart:   "DoubleFileStart",
		PaceSingleFileRestart: "SingleFileRestart",
		PaceDoubleFileRestart: "DoubleFileRestart",
		PaceNotPacing:         "NotPacing",
	},
	fallback: PaceNotPacing,
}

// PaceModeFrom decodes a raw discriminant; unknown values yield PaceNotPacing.
func PaceModeFrom(raw int32) PaceMode { return paceModes.decode(raw) }

func (p PaceMode) Unit() string   { return UnitPaceMode }
func (p PaceMode) String() string { return paceModes.name(p) }

// TrackWetness is decoded from the "irsdk_TrackWetness" unit.
type TrackWetness int32

const (
	WetnessUnknown TrackWetness = iota
	WetnessDry
	WetnessMostlyDry
	WetnessVeryLightlyWet
	WetnessLightlyWet
	WetnessModeratelyWet
	WetnessVeryWet
	WetnessExtremelyWet
)

var trackWetnesses = enumTable[TrackWetness]{
	names: map[TrackWetness]string{
		WetnessUnknown:        "Unknown",
		WetnessDry:            "Dry",
		WetnessMostlyDry:      "MostlyDry",
		WetnessVeryLightlyWet: "VeryLightlyWet",
		WetnessLightlyWet:     "LightlyWet",
		WetnessModeratelyWet:  "ModeratelyWet",
		WetnessVeryWet:        "VeryWet",
		WetnessExtremelyWet:   "ExtremelyWet",
	},
	fallback: WetnessUnknown,
}

// TrackWetnessFrom decodes a raw discriminant; unknown values yield WetnessUnknown.
func TrackWetnessFrom(raw int32) TrackWetness { return trackWetnesses.decode(raw) }

func (w TrackWetness) Unit() string   { return UnitTrackWetness }
func (w TrackWetness) String() string { return trackWetnesses.name(w) }
