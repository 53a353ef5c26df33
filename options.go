package provision

import "log/slog"

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger sets the logger used for registration and provisioning events.
// The container logs at debug level only. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLiteralProvider installs a source for named string dependencies that have no binding.
func WithLiteralProvider(p LiteralProvider) Option {
	return func(c *Container) {
		c.literals = p
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
