package skitter

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so SetLogger can
// race with a running simulation on another goroutine.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by skitter and its front ends.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Debug: per-frame stats (only with Spider.SetDebugMode)
//   - Info: resets and front-end lifecycle
//   - Warn: non-fatal output failures (screenshots, audio)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}
