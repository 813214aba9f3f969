//go:build linux

package live

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/arloliu/irtelemetry/errs"
	"golang.org/x/sys/unix"
)

// ShmDir holds the files a compatibility bridge exports the simulator's objects as. Each
// object is named after the part of its Windows name following the backslash.
const ShmDir = "/dev/shm"

const (
	futexWait = 0 // FUTEX_WAIT, shared between processes

	// waitSlice bounds one futex sleep so that writers which bump the sequence word without a
	// wake are still observed.
	waitSlice = 10 * time.Millisecond
)

// shmSource maps the region file read-only and waits on the 32-bit sequence word at the start
// of the signal file. The writer increments the word and wakes waiters after each tick.
type shmSource struct {
	data   []byte
	signal []byte
	seq    *uint32
	last   uint32
}

// OpenSystem attaches to the simulator's region exported under ShmDir.
func OpenSystem() (Source, error) {
	return OpenShm(ShmDir)
}

// OpenShm attaches to region and signal files exported under dir.
//
// Returns:
//   - Source: Attached source
//   - error: errs.ErrDisconnected if either file is missing or empty, a resource error if
//     mapping fails
func OpenShm(dir string) (Source, error) {
	data, err := mapFile(filepath.Join(dir, shmName(MemMapFileName)), 0)
	if err != nil {
		return nil, err
	}

	signal, err := mapFile(filepath.Join(dir, shmName(DataValidEventName)), 4)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, err
	}

	s := &shmSource{
		data:   data,
		signal: signal,
		seq:    (*uint32)(unsafe.Pointer(&signal[0])),
	}
	s.last = atomic.LoadUint32(s.seq)

	return s, nil
}

func shmName(name string) string {
	return name[strings.LastIndexByte(name, '\\')+1:]
}

// mapFile maps path read-only. A zero length maps the whole file.
func mapFile(path string, length int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.ErrDisconnected
		}

		return nil, &errs.ResourceError{Op: "open " + path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &errs.ResourceError{Op: "stat " + path, Err: err}
	}

	size := int(info.Size())
	if size == 0 || size < length {
		return nil, errs.ErrDisconnected
	}
	if length == 0 {
		length = size
	}

	data, err := unix.Mmap(int(f.Fd()), 0, length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &errs.ResourceError{Op: "mmap " + path, Err: err}
	}

	return data, nil
}

func (s *shmSource) Bytes() []byte {
	return s.data
}

func (s *shmSource) Wait(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		cur := atomic.LoadUint32(s.seq)
		if cur != s.last {
			s.last = cur
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return errs.ErrTimeout
		}

		if err := wait(s.seq, cur, min(remaining, waitSlice)); err != nil {
			return err
		}
	}
}

func (s *shmSource) Close() error {
	return errors.Join(unix.Munmap(s.signal), unix.Munmap(s.data))
}

// wait sleeps while *addr == val, for at most d.
func wait(addr *uint32, val uint32, d time.Duration) error {
	ts := unix.NsecToTimespec(d.Nanoseconds())
	_, _, errno := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWait,
		uintptr(val),
		uintptr(unsafe.Pointer(&ts)),
		0, 0)

	switch errno {
	case 0, unix.EAGAIN, unix.EINTR, unix.ETIMEDOUT:
		return nil
	default:
		return &errs.ResourceError{Op: "futex wait", Err: errno}
	}
}
