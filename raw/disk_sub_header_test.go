package raw

import (
	"math"
	"testing"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/stretchr/testify/require"
)

func TestDiskSubHeader(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		original := DiskSubHeader{
			StartDate:   1_700_000_000,
			StartTime:   12.5,
			EndTime:     312.25,
			LapCount:    4,
			RecordCount: 18000,
		}

		data := original.Bytes()
		require.Len(t, data, SubHeaderSize)

		parsed, err := ParseDiskSubHeader(data)
		require.NoError(t, err)
		require.Equal(t, original, parsed)
	})

	t.Run("Non-finite times pass through", func(t *testing.T) {
		original := DiskSubHeader{StartTime: math.Inf(1), EndTime: -1}

		parsed, err := ParseDiskSubHeader(original.Bytes())
		require.NoError(t, err)
		require.True(t, math.IsInf(parsed.StartTime, 1))
		require.Equal(t, -1.0, parsed.EndTime)
	})

	t.Run("Short input", func(t *testing.T) {
		_, err := ParseDiskSubHeader(make([]byte, SubHeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

		s := DiskSubHeader{}
		require.ErrorIs(t, s.Parse(make([]byte, SubHeaderSize+1)), errs.ErrInvalidHeaderSize)
	})
}
