package argument

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/offload/types"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the argument package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the argument package's logger.
// This must be called before any signature is built.
func SetLogger(l *zap.Logger) {
	logger = l
}

// sizer resolves element sizes for construction and inline copies.
var sizer types.Sizer = types.Default

// SetTypeSizer replaces the type registry used to size scalar values.
// This must be called before any signature is built.
func SetTypeSizer(s types.Sizer) {
	if s == nil {
		s = types.Default
	}
	sizer = s
}

// TypeSizer returns the type registry in use.
func TypeSizer() types.Sizer {
	return sizer
}
