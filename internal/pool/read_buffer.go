// Package pool provides reusable byte buffers for loading recordings.
package pool

import (
	"errors"
	"io"
	"sync"
)

// Default sizes of the recording read pool.
const (
	ReadBufferDefaultSize  = 1024 * 1024       // 1MiB
	ReadBufferMaxThreshold = 1024 * 1024 * 256 // 256MiB
)

// ReadBuffer accumulates a stream read to EOF.
type ReadBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewReadBuffer creates an empty buffer with the given capacity.
func NewReadBuffer(defaultSize int) *ReadBuffer {
	return &ReadBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the data read so far. The slice is only valid until the buffer is reset or
// returned to its pool.
func (rb *ReadBuffer) Bytes() []byte {
	return rb.B
}

// Len returns the number of bytes read.
func (rb *ReadBuffer) Len() int {
	return len(rb.B)
}

// Reset empties the buffer and keeps its memory.
func (rb *ReadBuffer) Reset() {
	rb.B = rb.B[:0]
}

// grow ensures room for n more bytes. Small buffers grow by the default size, larger ones
// by a quarter of their capacity.
func (rb *ReadBuffer) grow(n int) {
	if cap(rb.B)-len(rb.B) >= n {
		return
	}

	growBy := ReadBufferDefaultSize
	if cap(rb.B) > 4*ReadBufferDefaultSize {
		growBy = cap(rb.B) / 4
	}
	growBy = max(growBy, n)

	buf := make([]byte, len(rb.B), len(rb.B)+growBy)
	copy(buf, rb.B)
	rb.B = buf
}

// ReadFrom appends everything r yields until EOF. It implements io.ReaderFrom.
func (rb *ReadBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		rb.grow(512)

		n, err := r.Read(rb.B[len(rb.B):cap(rb.B)])
		rb.B = rb.B[:len(rb.B)+n]
		total += int64(n)

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// ReadBufferPool reuses ReadBuffers. Buffers that grew beyond the threshold are dropped
// instead of retained.
type ReadBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewReadBufferPool creates a pool of buffers with the given initial capacity.
func NewReadBufferPool(defaultSize int, maxThreshold int) *ReadBufferPool {
	return &ReadBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewReadBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty buffer.
func (p *ReadBufferPool) Get() *ReadBuffer {
	rb, _ := p.pool.Get().(*ReadBuffer)
	return rb
}

// Put returns rb to the pool.
func (p *ReadBufferPool) Put(rb *ReadBuffer) {
	if rb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(rb.B) > p.maxThreshold {
		return
	}

	rb.Reset()
	p.pool.Put(rb)
}

var readPool = NewReadBufferPool(ReadBufferDefaultSize, ReadBufferMaxThreshold)

// GetReadBuffer retrieves a buffer from the default pool.
func GetReadBuffer() *ReadBuffer {
	return readPool.Get()
}

// PutReadBuffer returns a buffer to the default pool.
func PutReadBuffer(rb *ReadBuffer) {
	readPool.Put(rb)
}
