//go:build windows

package live

import (
	"errors"
	"time"
	"unsafe"

	"github.com/arloliu/irtelemetry/errs"
	"golang.org/x/sys/windows"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

type winSource struct {
	mapping windows.Handle
	view    uintptr
	event   windows.Handle
	data    []byte
}

// OpenSystem attaches to the simulator's file mapping and data-valid event.
//
// Returns:
//   - Source: Attached source
//   - error: errs.ErrDisconnected if the simulator has not created the mapping or the event,
//     a resource error for any other OS failure
func OpenSystem() (Source, error) {
	s := &winSource{}
	if err := s.open(); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func (s *winSource) open() error {
	mapName, err := windows.UTF16PtrFromString(MemMapFileName)
	if err != nil {
		return err
	}

	if s.mapping, err = openFileMapping(windows.FILE_MAP_READ, false, mapName); err != nil {
		return osError("OpenFileMapping", err)
	}

	if s.view, err = windows.MapViewOfFile(s.mapping, windows.FILE_MAP_READ, 0, 0, 0); err != nil {
		return osError("MapViewOfFile", err)
	}

	var info windows.MemoryBasicInformation
	if err := windows.VirtualQuery(s.view, &info, unsafe.Sizeof(info)); err != nil {
		return osError("VirtualQuery", err)
	}
	s.data = unsafe.Slice((*byte)(unsafe.Pointer(s.view)), info.RegionSize) //nolint:govet

	eventName, err := windows.UTF16PtrFromString(DataValidEventName)
	if err != nil {
		return err
	}

	if s.event, err = windows.OpenEvent(windows.SYNCHRONIZE, false, eventName); err != nil {
		return osError("OpenEvent", err)
	}

	return nil
}

func openFileMapping(access uint32, inherit bool, name *uint16) (windows.Handle, error) {
	var inheritHandle uintptr
	if inherit {
		inheritHandle = 1
	}

	r, _, err := procOpenFileMappingW.Call(uintptr(access), inheritHandle, uintptr(unsafe.Pointer(name)))
	if r == 0 {
		return 0, err
	}

	return windows.Handle(r), nil
}

func osError(op string, err error) error {
	if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) {
		return errs.ErrDisconnected
	}

	return &errs.ResourceError{Op: op, Err: err}
}

func (s *winSource) Bytes() []byte {
	return s.data
}

func (s *winSource) Wait(timeout time.Duration) error {
	ev, err := windows.WaitForSingleObject(s.event, uint32(timeout.Milliseconds())) //nolint:gosec
	switch {
	case err != nil:
		return &errs.ResourceError{Op: "WaitForSingleObject", Err: err}
	case ev == windows.WAIT_OBJECT_0:
		return nil
	case ev == uint32(windows.WAIT_TIMEOUT):
		return errs.ErrTimeout
	default:
		return &errs.ResourceError{Op: "WaitForSingleObject", Err: windows.Errno(ev)}
	}
}

// Close releases whatever open acquired, in reverse order.
func (s *winSource) Close() error {
	var errList []error
	if s.event != 0 {
		errList = append(errList, windows.CloseHandle(s.event))
		s.event = 0
	}

	if s.view != 0 {
		errList = append(errList, windows.UnmapViewOfFile(s.view))
		s.view = 0
		s.data = nil
	}

	if s.mapping != 0 {
		errList = append(errList, windows.CloseHandle(s.mapping))
		s.mapping = 0
	}

	return errors.Join(errList...)
}
