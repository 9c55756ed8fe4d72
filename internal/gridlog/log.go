// Package gridlog provides the process-wide structured logger, a thin
// wrapper over zap so call sites never import zap directly.
package gridlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	current = l
}

// Set replaces the process-wide logger, e.g. with a development config for
// cmd/flowgrid's -verbose flag.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// L returns the current logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Named returns a child logger scoped to name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes any buffered log entries.
func Sync() error {
	return L().Sync()
}
