package telemetry

import (
	"testing"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/raw"
	"github.com/stretchr/testify/require"
)

func TestVarType(t *testing.T) {
	tests := []struct {
		typ  VarType
		size int
		name string
	}{
		{TypeChar, 1, "char"},
		{TypeBool, 1, "bool"},
		{TypeInt, 4, "int"},
		{TypeBitfield, 4, "bitfield"},
		{TypeFloat, 4, "float"},
		{TypeDouble, 8, "double"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.size, tt.typ.Size())
			require.Equal(t, tt.name, tt.typ.String())

			parsed, ok := ParseVarType(int32(tt.typ))
			require.True(t, ok)
			require.Equal(t, tt.typ, parsed)
		})
	}

	for _, tag := range []int32{-1, 6, 99} {
		_, ok := ParseVarType(tag)
		require.False(t, ok)
	}
}

func TestVarHeaderFromRaw(t *testing.T) {
	t.Run("Session time", func(t *testing.T) {
		r := raw.NewVarHeader(5, 0, 1, true, "SessionTime", "Seconds since session start", "s")

		v, err := VarHeaderFromRaw(r)
		require.NoError(t, err)
		require.Equal(t, VarHeader{
			Type:        TypeDouble,
			Offset:      0,
			Count:       1,
			CountAsTime: true,
			Name:        "SessionTime",
			Description: "Seconds since session start",
			Unit:        "s",
		}, v)
		require.Equal(t, 8, v.Size())
		require.False(t, v.IsArray())
	})

	t.Run("Count as time flag", func(t *testing.T) {
		v, err := VarHeaderFromRaw(raw.NewVarHeader(4, 0, 1, false, "Speed", "", "m/s"))
		require.NoError(t, err)
		require.False(t, v.CountAsTime)
	})

	t.Run("Latin-1 strings", func(t *testing.T) {
		v, err := VarHeaderFromRaw(raw.NewVarHeader(4, 0, 1, false, "Temp", "Température", "°C"))
		require.NoError(t, err)
		require.Equal(t, "Température", v.Description)
		require.Equal(t, "°C", v.Unit)
	})

	t.Run("Invalid type", func(t *testing.T) {
		_, err := VarHeaderFromRaw(raw.NewVarHeader(99, 0, 1, false, "", "", ""))

		var convErr *errs.ConversionError
		require.ErrorAs(t, err, &convErr)
		require.Equal(t, "type", convErr.Field)
		require.Equal(t, int64(99), convErr.Value)
	})

	t.Run("Negative offset and count", func(t *testing.T) {
		_, err := VarHeaderFromRaw(raw.NewVarHeader(2, -4, 1, false, "Gear", "", ""))
		require.ErrorIs(t, err, errs.ErrConversion)

		_, err = VarHeaderFromRaw(raw.NewVarHeader(2, 0, -1, false, "Gear", "", ""))
		require.ErrorIs(t, err, errs.ErrConversion)
	})

	t.Run("Missing terminator", func(t *testing.T) {
		r := raw.NewVarHeader(2, 0, 1, false, "Gear", "", "")
		for i := range r.Unit {
			r.Unit[i] = 'x'
		}

		_, err := VarHeaderFromRaw(r)

		var convErr *errs.ConversionError
		require.ErrorAs(t, err, &convErr)
		require.Equal(t, "unit", convErr.Field)
		require.Contains(t, err.Error(), "NUL")
	})
}

func TestDecodeLatin1(t *testing.T) {
	require.Equal(t, "", DecodeLatin1(nil))
	require.Equal(t, "WeekendInfo:", DecodeLatin1([]byte("WeekendInfo:")))
	require.Equal(t, "Nürburgring", DecodeLatin1([]byte{'N', 0xFC, 'r', 'b', 'u', 'r', 'g', 'r', 'i', 'n', 'g'}))
	require.Equal(t, "ÿ\u0080", DecodeLatin1([]byte{0xFF, 0x80}))
}
