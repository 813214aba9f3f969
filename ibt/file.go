package ibt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/arloliu/irtelemetry/compress"
	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/format"
	"github.com/arloliu/irtelemetry/internal/aligned"
	"github.com/arloliu/irtelemetry/internal/options"
	"github.com/arloliu/irtelemetry/internal/pool"
	"github.com/arloliu/irtelemetry/raw"
	"github.com/arloliu/irtelemetry/telemetry"
	"gopkg.in/yaml.v3"
)

// File is a loaded telemetry recording.
type File struct {
	// data is the entire recording, aligned to raw.Alignment.
	data []byte

	header      telemetry.Header
	sub         telemetry.DiskSubHeader
	vars        *telemetry.VarSet
	records     telemetry.VarBufInfo // slot 0 holds every record
	compression format.CompressionType
}

// Open loads the recording at path.
//
// Parameters:
//   - path: File system path of a plain or compressed .ibt file
//   - opts: Loader options
//
// Returns:
//   - *File: Loaded recording
//   - error: I/O errors, decompression errors, or layout and conversion errors from the
//     header, sub-header and variable descriptors
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return FromReader(f, opts...)
}

// FromReader loads a recording from r, reading it to the end. The input is staged in a pooled
// buffer and r is not retained.
func FromReader(r io.Reader, opts ...Option) (*File, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	rb := pool.GetReadBuffer()
	defer pool.PutReadBuffer(rb)

	if _, err := rb.ReadFrom(io.LimitReader(r, int64(cfg.maxSize)+1)); err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	data := rb.Bytes()
	if len(data) > cfg.maxSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", errs.ErrSizeLimitExceeded, cfg.maxSize)
	}

	return load(data, cfg)
}

// FromBytes loads a recording from data. The bytes are copied into an aligned buffer, so the
// caller may reuse data afterwards.
func FromBytes(data []byte, opts ...Option) (*File, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return load(data, cfg)
}

func load(data []byte, cfg *config) (*File, error) {
	ctype := cfg.compression
	if ctype == 0 {
		ctype = compress.Detect(data)
	}

	codec, err := compress.GetCodec(ctype)
	if err != nil {
		return nil, err
	}

	plain, err := codec.Decompress(data, cfg.maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s recording: %w", ctype, err)
	}

	buf := aligned.Buffer(len(plain), raw.Alignment)
	copy(buf, plain)

	f := &File{data: buf, compression: ctype}
	if err := f.decode(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) decode() error {
	rawHeader, err := raw.ParseHeader(f.data)
	if err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}

	if f.header, err = telemetry.HeaderFromRaw(rawHeader); err != nil {
		return err
	}

	if len(f.data) < raw.SubHeaderOffset+raw.SubHeaderSize {
		return fmt.Errorf("failed to parse disk sub-header: %w", errs.ErrInvalidHeaderSize)
	}

	rawSub, err := raw.ParseDiskSubHeader(f.data[raw.SubHeaderOffset:])
	if err != nil {
		return fmt.Errorf("failed to parse disk sub-header: %w", err)
	}

	if f.sub, err = telemetry.DiskSubHeaderFromRaw(rawSub); err != nil {
		return err
	}

	if err := ValidateLayout(len(f.data), &f.header, f.sub.RecordCount); err != nil {
		return err
	}

	if len(f.header.VarBufs) > 0 {
		f.records = f.header.VarBufs[0]
	}

	rawVars, err := raw.ParseVarHeaders(f.data[f.header.VarHeaderOffset:], f.header.NumVars)
	if err != nil {
		return fmt.Errorf("failed to parse variable headers: %w", err)
	}

	vars := make([]telemetry.VarHeader, len(rawVars))
	for i := range rawVars {
		if vars[i], err = telemetry.VarHeaderFromRaw(rawVars[i]); err != nil {
			return fmt.Errorf("variable header %d: %w", i, err)
		}
	}
	f.vars = telemetry.NewVarSet(vars)

	return nil
}

// ValidateLayout checks that every region the header declares lies inside a recording of size
// bytes: the variable descriptors, the session info and recordCount records starting at the
// first buffer slot.
//
// Returns:
//   - error: errs.ErrRegionOutOfRange naming the first region that does not fit
func ValidateLayout(size int, h *telemetry.Header, recordCount int) error {
	check := func(region string, off, n int) error {
		if off > size || n > size-off {
			return fmt.Errorf("%w: %s [%d, %d) of %d bytes", errs.ErrRegionOutOfRange, region, off, off+n, size)
		}

		return nil
	}

	if err := check("variable headers", h.VarHeaderOffset, h.NumVars*raw.VarHeaderSize); err != nil {
		return err
	}

	if err := check("session info", h.SessionInfoOffset, h.SessionInfoLen); err != nil {
		return err
	}

	if recordCount > 0 {
		if len(h.VarBufs) == 0 {
			return fmt.Errorf("%w: %d records without a buffer slot", errs.ErrFormat, recordCount)
		}

		start := h.VarBufs[0].BufOffset
		if err := check("records", start, 0); err != nil {
			return err
		}

		if h.BufLen > 0 && recordCount > (size-start)/h.BufLen {
			return fmt.Errorf("%w: %d records of %d bytes at %d exceed %d bytes",
				errs.ErrRegionOutOfRange, recordCount, h.BufLen, start, size)
		}
	}

	return nil
}

// Header returns the decoded file header.
func (f *File) Header() telemetry.Header {
	return f.header
}

// DiskSubHeader returns the decoded disk sub-header.
func (f *File) DiskSubHeader() telemetry.DiskSubHeader {
	return f.sub
}

// Vars returns the variable catalog.
func (f *File) Vars() *telemetry.VarSet {
	return f.vars
}

// RecordCount returns the number of records in the file.
func (f *File) RecordCount() int {
	return f.sub.RecordCount
}

// Compression returns how the input was compressed.
func (f *File) Compression() format.CompressionType {
	return f.compression
}

// Size returns the size in bytes of the decompressed recording.
func (f *File) Size() int {
	return len(f.data)
}

// Sample returns the record at index i as a sample borrowing the file's buffer.
//
// Returns:
//   - telemetry.Sample: Borrowed view of record i
//   - error: errs.ErrRecordOutOfRange if i is negative or not below RecordCount
func (f *File) Sample(i int) (telemetry.Sample, error) {
	if i < 0 || i >= f.sub.RecordCount {
		return telemetry.Sample{}, fmt.Errorf("%w: %d of %d", errs.ErrRecordOutOfRange, i, f.sub.RecordCount)
	}

	return f.sample(i), nil
}

func (f *File) sample(i int) telemetry.Sample {
	off := f.records.BufOffset + f.header.BufLen*i
	return telemetry.NewSample(f.data[off : off+f.header.BufLen : off+f.header.BufLen])
}

// Samples returns an iterator over every record in order, paired with its index. The iterator
// is lazy and can be ranged over any number of times.
func (f *File) Samples() iter.Seq2[int, telemetry.Sample] {
	return func(yield func(int, telemetry.Sample) bool) {
		for i := range f.sub.RecordCount {
			if !yield(i, f.sample(i)) {
				return
			}
		}
	}
}

// SessionInfo returns the session info text. Each byte is decoded as a Latin-1 code point and
// trailing NUL padding is removed.
func (f *File) SessionInfo() string {
	info := f.data[f.header.SessionInfoOffset : f.header.SessionInfoOffset+f.header.SessionInfoLen]
	return telemetry.DecodeLatin1(bytes.TrimRight(info, "\x00"))
}

// SessionData parses the session info as a YAML document.
func (f *File) SessionData() (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(f.SessionInfo()), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session info: %w", err)
	}

	return &doc, nil
}

// DecodeSessionInfo decodes the session info YAML into v, as yaml.Unmarshal does.
func (f *File) DecodeSessionInfo(v any) error {
	if err := yaml.Unmarshal([]byte(f.SessionInfo()), v); err != nil {
		return fmt.Errorf("failed to decode session info: %w", err)
	}

	return nil
}

var errNoSession = errors.New("session info is empty")

// Session decodes the well-known parts of the session info.
func (f *File) Session() (*Session, error) {
	info := f.SessionInfo()
	if info == "" {
		return nil, errNoSession
	}

	return ParseSession(info)
}
