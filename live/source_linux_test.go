//go:build linux

package live

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/stretchr/testify/require"
)

func writeShm(t *testing.T, dir string, region []byte) *os.File {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "IRSDKMemMapFileName"), region, 0o600))

	f, err := os.OpenFile(filepath.Join(dir, "IRSDKDataValidEvent"), os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = f.Write(make([]byte, 4))
	require.NoError(t, err)

	return f
}

func bumpSequence(t *testing.T, f *os.File, seq uint32) {
	t.Helper()

	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], seq)
	_, err := f.WriteAt(b[:], 0)
	require.NoError(t, err)
}

func TestOpenShm(t *testing.T) {
	t.Run("Missing region", func(t *testing.T) {
		_, err := OpenShm(t.TempDir())
		require.ErrorIs(t, err, errs.ErrDisconnected)
	})

	t.Run("Missing signal", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "IRSDKMemMapFileName"), make([]byte, 64), 0o600))

		_, err := OpenShm(dir)
		require.ErrorIs(t, err, errs.ErrDisconnected)
	})

	t.Run("Wait", func(t *testing.T) {
		dir := t.TempDir()
		src := NewMemorySource(60, 4, testBufLen, testVars(), "")
		signal := writeShm(t, dir, src.Bytes())

		s, err := OpenShm(dir)
		require.NoError(t, err)
		defer s.Close()

		require.Equal(t, src.Bytes(), s.Bytes())
		require.ErrorIs(t, s.Wait(testTimeout), errs.ErrTimeout)

		bumpSequence(t, signal, 1)
		require.NoError(t, s.Wait(time.Second))
		require.ErrorIs(t, s.Wait(testTimeout), errs.ErrTimeout)
	})
}

func TestClient_Shm(t *testing.T) {
	dir := t.TempDir()
	src := NewMemorySource(60, 4, testBufLen, testVars(), "")
	src.Publish(5, record(5, 3000))
	signal := writeShm(t, dir, src.Bytes())
	bumpSequence(t, signal, 1)

	// The sequence word is sampled at open, so the bump must land after Connect attaches.
	c, err := NewClient(WithTimeout(time.Second), WithOpener(func() (Source, error) {
		s, err := OpenShm(dir)
		if err == nil {
			bumpSequence(t, signal, 2)
		}

		return s, err
	}))
	require.NoError(t, err)
	require.NoError(t, c.Connect())
	defer c.Close()

	require.Equal(t, 5, c.LastTick())
	require.Equal(t, 3, c.Vars().Len())
}
