package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowThreshold queries slower than this are logged as warnings
const SlowThreshold = 500 * time.Millisecond

// gormLogger bridges gorm logging into zap
// gormLogger 将 gorm 日志输出到 zap
type gormLogger struct {
	lg    *zap.Logger
	level gormlogger.LogLevel
}

// NewGormLogger 创建 gorm 日志适配器
func NewGormLogger(lg *zap.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &gormLogger{lg: lg.Named("gorm").WithOptions(zap.AddCallerSkip(3)), level: level}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.level = level
	return &n
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.lg.Info(fmt.Sprintf(msg, args...), logger.TraceField(ctx))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.lg.Warn(fmt.Sprintf(msg, args...), logger.TraceField(ctx))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.lg.Error(fmt.Sprintf(msg, args...), logger.TraceField(ctx))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.lg.Error("sql error", zap.Error(err), zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration(logger.FieldDuration, elapsed), logger.TraceField(ctx))
	case elapsed > SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.lg.Warn("slow sql", zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration(logger.FieldDuration, elapsed), logger.TraceField(ctx))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.lg.Debug("sql", zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration(logger.FieldDuration, elapsed), logger.TraceField(ctx))
	}
}
