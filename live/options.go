package live

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arloliu/irtelemetry/internal/options"
)

// DefaultTimeout bounds each wait on the data signal.
const DefaultTimeout = time.Second

type config struct {
	timeout time.Duration
	logger  *slog.Logger
	opener  Opener
}

func newConfig() *config {
	return &config{
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
		opener:  OpenSystem,
	}
}

// Option configures a Client.
type Option = options.Option[*config]

// WithTimeout sets how long a poll waits for the data signal.
func WithTimeout(d time.Duration) Option {
	return options.New(func(c *config) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d

		return nil
	})
}

// WithLogger sets the logger for connection events. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithOpener replaces how the shared region is attached, e.g. with a MemorySource.
func WithOpener(o Opener) Option {
	return options.New(func(c *config) error {
		if o == nil {
			return errors.New("opener must not be nil")
		}
		c.opener = o

		return nil
	})
}
