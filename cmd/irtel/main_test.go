package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/irtelemetry/compress"
	"github.com/arloliu/irtelemetry/format"
	"github.com/arloliu/irtelemetry/internal/fixture"
	"github.com/arloliu/irtelemetry/live"
	"github.com/arloliu/irtelemetry/raw"
	"github.com/arloliu/irtelemetry/telemetry"
)

func testVars() []raw.VarHeader {
	return []raw.VarHeader{
		raw.NewVarHeader(int32(telemetry.TypeFloat), 0, 1, false, "Speed", "GPS vehicle speed", "m/s"),
		raw.NewVarHeader(int32(telemetry.TypeInt), 4, 1, false, "Gear", "Current gear", ""),
	}
}

func writeRecording(t *testing.T) string {
	t.Helper()

	rec := &fixture.Recording{
		TickRate:    60,
		Vars:        testVars(),
		SessionInfo: "---\nWeekendInfo:\n TrackName: okayama full\n...\n",
		BufLen:      8,
		Records: []fixture.Record{
			fixture.NewRecord(8).PutFloat32(0, 10).PutInt32(4, 1),
			fixture.NewRecord(8).PutFloat32(0, 20).PutInt32(4, 2),
			fixture.NewRecord(8).PutFloat32(0, 30).PutInt32(4, 3),
		},
	}

	path := filepath.Join(t.TempDir(), "okayama.ibt")
	require.NoError(t, os.WriteFile(path, rec.Bytes(), 0o600))

	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)

	return stdout.String(), err
}

func TestRun_Vars(t *testing.T) {
	out, err := runCmd(t, "vars", writeRecording(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "DESCRIPTION")
	require.Contains(t, lines[1], "Speed")
	require.Contains(t, lines[1], "float")
	require.Contains(t, lines[2], "Gear")
}

func TestRun_Dump(t *testing.T) {
	path := writeRecording(t)

	out, err := runCmd(t, "dump", "-vars", "Gear", "-from", "1", "-n", "5", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"1", "2"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"2", "3"}, strings.Fields(lines[2]))

	t.Run("All variables", func(t *testing.T) {
		out, err := runCmd(t, "dump", path)
		require.NoError(t, err)
		require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
	})

	t.Run("Unknown variable", func(t *testing.T) {
		_, err := runCmd(t, "dump", "-vars", "Nope", path)
		require.ErrorContains(t, err, "Nope")
	})
}

func TestRun_Session(t *testing.T) {
	out, err := runCmd(t, "session", writeRecording(t))
	require.NoError(t, err)
	require.Contains(t, out, "TrackName: okayama full")
}

func TestRun_Compress(t *testing.T) {
	in := writeRecording(t)
	out := filepath.Join(t.TempDir(), "okayama.ibt.s2")

	_, err := runCmd(t, "compress", "-type", "s2", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, compress.Detect(data))

	dumped, err := runCmd(t, "dump", out)
	require.NoError(t, err)
	require.Contains(t, dumped, "30")

	t.Run("Not a recording", func(t *testing.T) {
		junk := filepath.Join(t.TempDir(), "junk")
		require.NoError(t, os.WriteFile(junk, []byte("junk"), 0o600))

		_, err := runCmd(t, "compress", junk, out)
		require.Error(t, err)
	})
}

func TestRun_Usage(t *testing.T) {
	_, err := runCmd(t)
	require.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "frobnicate")
	require.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "vars")
	require.ErrorIs(t, err, errUsage)
}

func newTestStreamer(t *testing.T, src *live.MemorySource, out io.Writer) (*streamer, *prometheus.Registry) {
	t.Helper()

	client, err := live.NewClient(live.WithOpener(src.Opener()), live.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := defaultConfig()
	cfg.ReconnectDelay = 5 * time.Millisecond
	cfg.Vars = []string{"Gear"}

	reg := prometheus.NewRegistry()

	return &streamer{
		cfg:     cfg,
		client:  client,
		metrics: newMetrics(reg),
		logger:  slog.New(slog.DiscardHandler),
		out:     out,
	}, reg
}

func TestStreamer_Poll(t *testing.T) {
	src := live.NewMemorySource(60, 4, 8, testVars(), "")
	var out bytes.Buffer
	s, _ := newTestStreamer(t, src, &out)

	src.Publish(1, fixture.NewRecord(8).PutInt32(4, 1))
	require.NoError(t, s.client.Connect())
	require.NoError(t, s.selectVars())

	src.Publish(2, fixture.NewRecord(8).PutInt32(4, 4))
	require.NoError(t, s.poll())
	require.Equal(t, "2\t4\n", out.String())
	require.InDelta(t, 2, testutil.ToFloat64(s.metrics.lastTick), 0)
	require.InDelta(t, 1, testutil.ToFloat64(s.metrics.polls.WithLabelValues(resultOK)), 0)

	require.NoError(t, s.poll())
	require.InDelta(t, 1, testutil.ToFloat64(s.metrics.polls.WithLabelValues(resultTimeout)), 0)

	t.Run("Catalog rebuild", func(t *testing.T) {
		src.SetVars(append(testVars(), raw.NewVarHeader(int32(telemetry.TypeBool), 8, 1, false, "OnPitRoad", "Is the player car on pit road", "")), 12)
		src.Publish(3, fixture.NewRecord(12).PutInt32(4, 5))

		require.NoError(t, s.poll())
		require.InDelta(t, 1, testutil.ToFloat64(s.metrics.rebuilds), 0)
	})

	t.Run("Disconnect", func(t *testing.T) {
		src.SetStatus(0)
		require.NoError(t, s.poll())
		require.InDelta(t, 1, testutil.ToFloat64(s.metrics.polls.WithLabelValues(resultDisconnected)), 0)
		require.Equal(t, live.Disconnected, s.client.State())
	})
}

func TestStreamer_Run(t *testing.T) {
	src := live.NewMemorySource(60, 4, 8, testVars(), "")
	src.SetAvailable(false)

	s, _ := newTestStreamer(t, src, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, s.run(ctx))
	require.GreaterOrEqual(t, testutil.ToFloat64(s.metrics.polls.WithLabelValues(resultDisconnected)), 1.0)
	require.Equal(t, live.Disconnected, s.client.State())
}
