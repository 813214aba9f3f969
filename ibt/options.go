package ibt

import (
	"fmt"

	"github.com/arloliu/irtelemetry/compress"
	"github.com/arloliu/irtelemetry/format"
	"github.com/arloliu/irtelemetry/internal/options"
)

// config holds the settings applied when a recording is loaded.
type config struct {
	compression format.CompressionType // zero means detect from the magic number
	maxSize     int
}

func newConfig() *config {
	return &config{maxSize: compress.DefaultMaxSize}
}

// Option configures how a recording is loaded.
//
// This is a type alias for the generic Option interface specialized for the loader config.
type Option = options.Option[*config]

// WithCompression forces the codec used to decode the input instead of detecting it.
func WithCompression(ctype format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(ctype); err != nil {
			return err
		}
		c.compression = ctype

		return nil
	})
}

// WithMaxSize caps the size of the loaded recording after decompression.
func WithMaxSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max size must be positive, got %d", n)
		}
		c.maxSize = n

		return nil
	})
}
