// Package logger builds the process zap logger from configuration
// Package logger 根据配置创建 zap 日志器
package logger

import (
	"os"
	"strings"

	"github.com/gookit/goutil/fsutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	Level      string // debug, info, warn, error
	File       string // 日志文件路径，为空时仅输出到控制台
	Production bool   // true 输出 JSON，false 输出彩色控制台格式
}

// NewLogger creates a logger writing to stderr and, when File is set, to that file
// NewLogger 创建日志器，输出到标准错误及可选的日志文件
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Production {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleConfig := encoderConfig
	if !cfg.Production {
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var consoleEncoder zapcore.Encoder
	if cfg.Production {
		consoleEncoder = zapcore.NewJSONEncoder(consoleConfig)
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(consoleConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if cfg.File != "" {
		if err := fsutil.MkParentDir(cfg.File); err != nil {
			return nil, errors.Wrap(err, "create log dir")
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(f), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
