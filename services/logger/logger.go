package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel đọc mức log từ cấu hình, mặc định là info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zap.DebugLevel
	case WarnLevel:
		return zap.WarnLevel
	case ErrorLevel:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
	// With trả về logger gắn thêm các cặp key/value
	With(keysAndValues ...interface{}) Logger
}

// ZapLogger implement Logger bằng zap
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New tạo logger; production dùng JSON encoder, còn lại dùng console có màu
func New(level Level, production bool) (*ZapLogger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return FromZap(base), nil
}

// NewDefaultLogger tạo logger development, không bao giờ lỗi
func NewDefaultLogger(level Level) *ZapLogger {
	l, err := New(level, false)
	if err != nil {
		return FromZap(zap.NewExample())
	}
	return l
}

// NewNop logger bỏ qua mọi log, dùng trong test
func NewNop() *ZapLogger {
	return FromZap(zap.NewNop())
}

func FromZap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

// Zap trả về zap.Logger gốc cho các middleware cần log có cấu trúc
func (l *ZapLogger) Zap() *zap.Logger {
	return l.base
}

// Info log thông tin
func (l *ZapLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warn log cảnh báo
func (l *ZapLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error log lỗi
func (l *ZapLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug log debug
func (l *ZapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *ZapLogger) With(keysAndValues ...interface{}) Logger {
	sugar := l.sugar.With(keysAndValues...)
	return &ZapLogger{base: sugar.Desugar(), sugar: sugar}
}

func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}
