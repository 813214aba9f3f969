package raw

import (
	"strings"
	"testing"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/stretchr/testify/require"
)

func TestNewVarHeader(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		v := NewVarHeader(5, 8, 1, true, "SessionTime", "Seconds since session start", "s")

		require.Equal(t, int32(5), v.Type)
		require.Equal(t, int32(8), v.Offset)
		require.Equal(t, int32(1), v.Count)
		require.Equal(t, int8(1), v.CountAsTime)
		require.Equal(t, "SessionTime", string(v.Name[:11]))
		require.Zero(t, v.Name[11])
		require.Equal(t, byte('s'), v.Unit[0])
	})

	t.Run("Truncation keeps terminator", func(t *testing.T) {
		v := NewVarHeader(0, 0, 1, false, strings.Repeat("x", 40), "", "")

		require.Equal(t, strings.Repeat("x", MaxString-1), string(v.Name[:MaxString-1]))
		require.Zero(t, v.Name[MaxString-1])
	})

	t.Run("Latin-1 encoding", func(t *testing.T) {
		v := NewVarHeader(0, 0, 1, false, "é€", "", "")

		require.Equal(t, byte(0xE9), v.Name[0])
		require.Equal(t, byte('?'), v.Name[1])
	})
}

func TestVarHeader_Parse(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		original := NewVarHeader(4, 12, 64, false, "CarIdxLapDistPct", "Percentage distance around lap", "%")
		data := original.Bytes()
		require.Len(t, data, VarHeaderSize)

		parsed := VarHeader{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, original, parsed)
	})

	t.Run("String offsets", func(t *testing.T) {
		v := NewVarHeader(1, 0, 1, false, "N", "D", "U")
		data := v.Bytes()

		require.Equal(t, byte('N'), data[16])
		require.Equal(t, byte('D'), data[48])
		require.Equal(t, byte('U'), data[112])
		require.Equal(t, []byte{0, 0, 0}, data[13:16], "padding must be zero")
	})

	t.Run("Invalid size", func(t *testing.T) {
		v := VarHeader{}
		require.ErrorIs(t, v.Parse(make([]byte, 10)), errs.ErrInvalidHeaderSize)
	})
}

func TestParseVarHeaders(t *testing.T) {
	vars := []VarHeader{
		NewVarHeader(5, 0, 1, true, "SessionTime", "", "s"),
		NewVarHeader(2, 8, 1, false, "Gear", "", ""),
		NewVarHeader(4, 12, 1, false, "Speed", "", "m/s"),
	}
	data := EncodeVarHeaders(vars)
	require.Len(t, data, 3*VarHeaderSize)

	t.Run("All descriptors", func(t *testing.T) {
		parsed, err := ParseVarHeaders(data, 3)
		require.NoError(t, err)
		require.Equal(t, vars, parsed)
	})

	t.Run("Prefix", func(t *testing.T) {
		parsed, err := ParseVarHeaders(data, 2)
		require.NoError(t, err)
		require.Equal(t, vars[:2], parsed)
	})

	t.Run("Zero", func(t *testing.T) {
		parsed, err := ParseVarHeaders(nil, 0)
		require.NoError(t, err)
		require.Empty(t, parsed)
	})

	t.Run("Too short", func(t *testing.T) {
		_, err := ParseVarHeaders(data[:len(data)-1], 3)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Negative count", func(t *testing.T) {
		_, err := ParseVarHeaders(data, -1)
		require.ErrorIs(t, err, errs.ErrFormat)
	})
}
