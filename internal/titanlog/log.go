// Package titanlog provides the structured logger shared by every
// titan-hft component.
package titanlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	global *zap.Logger
)

// New builds a production zap logger. Callers that need a
// component-scoped logger should call Named on the result.
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}

// Global returns a process-wide logger, building a production logger
// on first use. Most of titan-hft's goroutines take a *zap.Logger
// explicitly; Global exists for package-level helpers that have no
// natural place to receive one.
func Global() *zap.Logger {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		global = l
	})
	return global
}

// SetGlobal overrides the process-wide logger; cmd/titan-bench uses it
// to install the configured logger once config has loaded.
func SetGlobal(l *zap.Logger) {
	global = l
}
