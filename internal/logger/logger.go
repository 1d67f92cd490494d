package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jabrena/polar-metrics/internal/constants"
)

// loggerContextKey is the context key under which a request-scoped logger is stored.
type loggerContextKey struct{}

//nolint:gochecknoglobals // The package exposes a process-wide logger by design.
var (
	globalMutex  sync.RWMutex
	globalLogger *zap.Logger
	globalLevel  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

//nolint:gochecknoinits // The logger must be usable before any configuration is loaded.
func init() {
	globalLogger = New(globalLevel)
}

// New creates a console logger at the given level.
// A nil level falls back to the process-wide atomic level.
func New(level zapcore.LevelEnabler) *zap.Logger {
	if level == nil {
		level = globalLevel
	}

	core := zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stderr), level)

	return zap.New(core)
}

// newEncoder returns the console encoder shared by all sinks:
// ISO8601 timestamps and capitalized level names (INFO/WARN/ERROR).
func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewConsoleEncoder(encoderConfig)
}

// AddFileSink replaces the global logger with one that tees every entry
// to both the console and an append-mode log file.
func AddFileSink(path string) error {
	file, err := os.OpenFile(
		filepath.Clean(path),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		constants.DefaultFilePermissions,
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stderr), globalLevel),
		zapcore.NewCore(newEncoder(), zapcore.Lock(zapcore.AddSync(file)), globalLevel),
	)

	SetLogger(zap.New(core))

	return nil
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.Logger) {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	globalLogger = l
}

// Level returns the current process-wide log level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// SetLevel changes the process-wide log level.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug entries are currently emitted.
func IsDebugLevel() bool {
	return globalLevel.Enabled(zapcore.DebugLevel)
}

// ParseLogLevel converts a string to a zap level.
// The second return value reports whether the input was recognized;
// unrecognized inputs fall back to info.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "dpanic":
		return zapcore.DPanicLevel, true
	case "panic":
		return zapcore.PanicLevel, true
	case "fatal":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// ToContext returns a child context carrying the given logger.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext returns the logger stored in the context, or the global one.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*zap.Logger); ok && l != nil {
		return l
	}

	return Logger()
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, msg string) {
	FromContext(ctx).Debug(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Debugf(format, args...)
}

// DebugKV logs a message at debug level with key-value pairs.
func DebugKV(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Sugar().Debugw(msg, keysAndValues...)
}

// Info logs a message at info level.
func Info(ctx context.Context, msg string) {
	FromContext(ctx).Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Infof(format, args...)
}

// InfoKV logs a message at info level with key-value pairs.
func InfoKV(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Sugar().Infow(msg, keysAndValues...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, msg string) {
	FromContext(ctx).Warn(msg)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Warnf(format, args...)
}

// WarnKV logs a message at warn level with key-value pairs.
func WarnKV(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Sugar().Warnw(msg, keysAndValues...)
}

// Error logs a message at error level.
func Error(ctx context.Context, msg string) {
	FromContext(ctx).Error(msg)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Errorf(format, args...)
}

// ErrorKV logs a message at error level with key-value pairs.
func ErrorKV(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Sugar().Errorw(msg, keysAndValues...)
}

// Fatalf logs a formatted message at fatal level and terminates the process
// with a non-zero exit status.
func Fatalf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Fatalf(format, args...)
}
