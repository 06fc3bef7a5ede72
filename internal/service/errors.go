package service

import (
	"context"
	"errors"

	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/logger"
	"github.com/haierkeys/fast-note-service/pkg/workerpool"
	"github.com/haierkeys/fast-note-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// toCodeError maps repository and infrastructure errors onto response codes.
// notFound is returned for gorm.ErrRecordNotFound; unexpected errors are logged and hidden.
// toCodeError 将仓储层错误转换为业务错误码
func toCodeError(ctx context.Context, lg *zap.Logger, method string, err error, notFound *code.Code) error {
	if err == nil {
		return nil
	}

	var c *code.Code
	switch {
	case errors.As(err, &c):
		return c
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, writequeue.ErrWriteQueueFull),
		errors.Is(err, writequeue.ErrWriteTimeout),
		errors.Is(err, writequeue.ErrWriteQueueClosed):
		lg.Warn("write queue rejected request",
			logger.TraceField(ctx),
			zap.String(logger.FieldMethod, method),
			zap.Error(err))
		return code.ErrorWriteQueueBusy
	case errors.Is(err, workerpool.ErrWorkerPoolClosed):
		lg.Warn("worker pool closed", logger.TraceField(ctx), zap.String(logger.FieldMethod, method))
		return code.ErrorServerInternal
	}

	lg.Error("service error",
		logger.TraceField(ctx),
		zap.String(logger.FieldMethod, method),
		zap.Error(err))
	return code.ErrorDBQuery
}
