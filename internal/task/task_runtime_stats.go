package task

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-service/internal/app"
)

// RuntimeStatsTask 定期把连接池与队列状态写入 Prometheus 指标
type RuntimeStatsTask struct {
	app      *app.App
	interval time.Duration
}

func (t *RuntimeStatsTask) Name() string {
	return "RuntimeStats"
}

func (t *RuntimeStatsTask) Spec() string {
	return "@every " + t.interval.String()
}

func (t *RuntimeStatsTask) IsStartupRun() bool {
	return true
}

func (t *RuntimeStatsTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.app.CollectRuntimeStats()
}

// NewRuntimeStatsTask 创建指标采集任务，间隔为 0 时不启用
func NewRuntimeStatsTask(a *app.App) (Task, error) {
	interval := a.Config().GetDBStatsInterval()
	if interval <= 0 {
		return nil, nil
	}
	return &RuntimeStatsTask{app: a, interval: interval}, nil
}

func init() {
	Register(NewRuntimeStatsTask)
}
