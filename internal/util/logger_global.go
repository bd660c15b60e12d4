package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface = NewNopLogger()
	globalMu     sync.RWMutex
)

// SetGlobalLogger installs the logger used by the package-level helpers.
// Passing nil restores the no-op logger.
func SetGlobalLogger(logger LoggerInterface) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if logger == nil {
		logger = NewNopLogger()
	}
	globalLogger = logger
}

// GlobalLogger returns the logger used by the package-level helpers
func GlobalLogger() LoggerInterface {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func LogInfo(msg string, fields ...Field) {
	GlobalLogger().Info(msg, fields...)
}

func LogInfof(format string, args ...interface{}) {
	GlobalLogger().Infof(format, args...)
}

func LogDebug(msg string, fields ...Field) {
	GlobalLogger().Debug(msg, fields...)
}

func LogDebugf(format string, args ...interface{}) {
	GlobalLogger().Debugf(format, args...)
}

func LogWarn(msg string, fields ...Field) {
	GlobalLogger().Warn(msg, fields...)
}

func LogWarnf(format string, args ...interface{}) {
	GlobalLogger().Warnf(format, args...)
}

func LogError(msg string, fields ...Field) {
	GlobalLogger().Error(msg, fields...)
}

func LogErrorf(format string, args ...interface{}) {
	GlobalLogger().Errorf(format, args...)
}
