package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitfieldFor(t *testing.T) {
	t.Run("Known units", func(t *testing.T) {
		require.Equal(t, EngineWarnings(3), BitfieldFor(UnitEngineWarnings, 3))
		require.Equal(t, Flags(3), BitfieldFor(UnitFlags, 3))
		require.Equal(t, CameraState(3), BitfieldFor(UnitCameraState, 3))
		require.Equal(t, PitServiceFlags(3), BitfieldFor(UnitPitSvFlags, 3))
		require.Equal(t, PaceFlags(3), BitfieldFor(UnitPaceFlags, 3))
	})

	t.Run("Unknown unit", func(t *testing.T) {
		b := BitfieldFor("irsdk_Nope", 0x5)
		require.Equal(t, UnknownBitfield(0x5), b)
		require.Equal(t, uint32(0x5), b.Raw())
		require.Equal(t, []string{"unknown", "unknown"}, b.SetFlags())
	})

	require.True(t, IsBitfieldUnit(UnitFlags))
	require.False(t, IsBitfieldUnit(UnitTrkLoc))
}

func TestEngineWarnings(t *testing.T) {
	w := EngineWaterTemp | EnginePitSpeedLimiter | EngineOptionalRepairs

	require.True(t, w.WaterTemp())
	require.True(t, w.PitSpeedLimiter())
	require.True(t, w.OptionalRepairs())
	require.False(t, w.FuelPressure())
	require.False(t, w.EngineStalled())
	require.Equal(t, []string{"water_temp", "pit_speed_limiter", "optional_repairs"}, w.SetFlags())
	require.Equal(t, "{water_temp, pit_speed_limiter, optional_repairs}", w.String())
	require.Equal(t, UnitEngineWarnings, w.Unit())
}

func TestFlags(t *testing.T) {
	t.Run("Named bits", func(t *testing.T) {
		f := FlagGreen | FlagBlack | FlagStartLightsGo

		require.True(t, f.Green())
		require.True(t, f.Black())
		require.True(t, f.StartLightsGo())
		require.False(t, f.Checkered())
		require.False(t, f.StartLightsHidden())
		require.Equal(t, []string{"green", "black", "start_lights_go"}, f.SetFlags())
	})

	t.Run("Bit positions", func(t *testing.T) {
		require.Equal(t, Flags(1<<15), FlagCautionWaving)
		require.Equal(t, Flags(1<<16), FlagBlack)
		require.Equal(t, Flags(1<<21), FlagDisqualified)
		require.Equal(t, Flags(1<<28), FlagStartLightsHidden)
		require.Equal(t, Flags(1<<31), FlagStartLightsGo)
	})

	t.Run("Unnamed bits", func(t *testing.T) {
		f := Flags(1<<22 | 1<<0 | 1<<27)
		require.Equal(t, []string{"checkered", "unknown", "unknown"}, f.SetFlags())
	})

	t.Run("Empty", func(t *testing.T) {
		require.Empty(t, Flags(0).SetFlags())
		require.Equal(t, "{}", Flags(0).String())
	})
}

func TestCameraState(t *testing.T) {
	c := CameraState(1<<2 | 1<<3 | 1<<9)

	require.True(t, c.CameraToolActive())
	require.True(t, c.UseMouseAimMode())
	require.False(t, c.IsSessionScreen())
	require.Equal(t, []string{"unknown", "camera_tool_active", "use_mouse_aim_mode"}, c.SetFlags())
}

func TestPitServiceFlags(t *testing.T) {
	p := PitLFTireChange | PitRRTireChange | PitFillFuel | PitFastRepair

	require.True(t, p.LFTireChange())
	require.False(t, p.RFTireChange())
	require.False(t, p.LRTireChange())
	require.True(t, p.RRTireChange())
	require.True(t, p.FillFuel())
	require.False(t, p.WindshieldTearoff())
	require.True(t, p.FastRepair())
	require.Equal(t, []string{"lf_tire_change", "rr_tire_change", "fill_fuel", "fast_repair"}, p.SetFlags())
}

func TestPaceFlags(t *testing.T) {
	p := PaceFlags(0b101 | 1<<8)

	require.True(t, p.EndOfLine())
	require.False(t, p.FreePass())
	require.True(t, p.WavedAround())
	require.Equal(t, []string{"end_of_line", "waved_around", "unknown"}, p.SetFlags())
}
