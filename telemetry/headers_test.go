package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/raw"
	"github.com/stretchr/testify/require"
)

func rawHeader() raw.Header {
	return raw.Header{
		Version:           raw.Version,
		Status:            raw.StatusConnected,
		TickRate:          60,
		SessionInfoUpdate: 0,
		SessionInfoLen:    15654,
		SessionInfoOffset: 40320,
		NumVars:           279,
		VarHeaderOffset:   144,
		NumBuf:            1,
		BufLen:            1081,
		VarBufs:           [raw.MaxBufs]raw.VarBuf{{TickCount: 0, BufOffset: 56000}},
	}
}

func TestHeaderFromRaw(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		h, err := HeaderFromRaw(rawHeader())
		require.NoError(t, err)
		require.Equal(t, Header{
			Connected:         true,
			TickRate:          60,
			SessionInfoUpdate: 0,
			SessionInfoLen:    15654,
			SessionInfoOffset: 40320,
			NumVars:           279,
			VarHeaderOffset:   144,
			BufLen:            1081,
			VarBufs:           []VarBufInfo{{TickCount: 0, BufOffset: 56000}},
		}, h)
	})

	t.Run("Disconnected status", func(t *testing.T) {
		r := rawHeader()
		r.Status = 0

		h, err := HeaderFromRaw(r)
		require.NoError(t, err)
		require.False(t, h.Connected)
	})

	t.Run("Negative fields", func(t *testing.T) {
		tests := []struct {
			field  string
			mutate func(*raw.Header)
		}{
			{"tick_rate", func(h *raw.Header) { h.TickRate = -1 }},
			{"session_info_update", func(h *raw.Header) { h.SessionInfoUpdate = -1 }},
			{"session_info_len", func(h *raw.Header) { h.SessionInfoLen = -1 }},
			{"session_info_offset", func(h *raw.Header) { h.SessionInfoOffset = -1 }},
			{"num_vars", func(h *raw.Header) { h.NumVars = -1 }},
			{"var_header_offset", func(h *raw.Header) { h.VarHeaderOffset = -1 }},
			{"buf_len", func(h *raw.Header) { h.BufLen = -1 }},
			{"tick_count", func(h *raw.Header) { h.VarBufs[0].TickCount = -1 }},
			{"buf_offset", func(h *raw.Header) { h.VarBufs[0].BufOffset = -1 }},
		}

		for _, tt := range tests {
			t.Run(tt.field, func(t *testing.T) {
				r := rawHeader()
				tt.mutate(&r)

				_, err := HeaderFromRaw(r)
				require.ErrorIs(t, err, errs.ErrConversion)

				var convErr *errs.ConversionError
				require.ErrorAs(t, err, &convErr)
				require.Equal(t, tt.field, convErr.Field)
				require.Equal(t, int64(-1), convErr.Value)
			})
		}
	})

	t.Run("Buffer count out of range", func(t *testing.T) {
		for _, n := range []int32{-1, raw.MaxBufs + 1} {
			r := rawHeader()
			r.NumBuf = n

			_, err := HeaderFromRaw(r)

			var convErr *errs.ConversionError
			require.ErrorAs(t, err, &convErr)
			require.Equal(t, "num_buf", convErr.Field)
		}
	})

	t.Run("Unused slots are ignored", func(t *testing.T) {
		r := rawHeader()
		r.VarBufs[3].TickCount = -5

		h, err := HeaderFromRaw(r)
		require.NoError(t, err)
		require.Len(t, h.VarBufs, 1)
	})
}

func TestHeader_LatestBuf(t *testing.T) {
	slots := func(ticks ...int) *Header {
		h := &Header{}
		for i, tick := range ticks {
			h.VarBufs = append(h.VarBufs, VarBufInfo{TickCount: tick, BufOffset: 1000 + i*100})
		}

		return h
	}

	require.Equal(t, 1, slots(5, 7, 6, 0).LatestBuf())
	require.Equal(t, 0, slots(3).LatestBuf())
	require.Equal(t, 1, slots(1, 9, 9, 2).LatestBuf(), "first slot wins a tie")
	require.Equal(t, 0, slots(0, 0, 0, 0).LatestBuf())
	require.Equal(t, -1, slots().LatestBuf())
}

func TestDiskSubHeaderFromRaw(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Valid sub-header", func(t *testing.T) {
		s, err := DiskSubHeaderFromRaw(raw.DiskSubHeader{
			StartDate:   now.Unix(),
			StartTime:   100.0,
			EndTime:     200.5,
			LapCount:    3,
			RecordCount: 9759,
		})
		require.NoError(t, err)
		require.Equal(t, DiskSubHeader{
			Date:        now,
			StartTime:   100 * time.Second,
			EndTime:     200*time.Second + 500*time.Millisecond,
			LapCount:    3,
			RecordCount: 9759,
		}, s)
	})

	t.Run("Invalid fields", func(t *testing.T) {
		tests := []struct {
			field string
			r     raw.DiskSubHeader
		}{
			{"start_date", raw.DiskSubHeader{StartDate: -1}},
			{"start_time", raw.DiskSubHeader{StartTime: -0.5}},
			{"start_time", raw.DiskSubHeader{StartTime: math.NaN()}},
			{"end_time", raw.DiskSubHeader{EndTime: math.Inf(1)}},
			{"end_time", raw.DiskSubHeader{EndTime: 1e300}},
			{"lap_count", raw.DiskSubHeader{LapCount: -1}},
			{"record_count", raw.DiskSubHeader{RecordCount: -1}},
		}

		for _, tt := range tests {
			_, err := DiskSubHeaderFromRaw(tt.r)

			var convErr *errs.ConversionError
			require.ErrorAs(t, err, &convErr, tt.field)
			require.Equal(t, "DiskSubHeader", convErr.Struct)
			require.Equal(t, tt.field, convErr.Field)
		}
	})
}
