package task

import (
	"context"
	"strings"

	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"go.uber.org/zap"
)

// HistoryOrphanCleanupTask 清理所属笔记已不存在的历史版本
// 正常删除流程会级联删除历史，这里处理绕过服务直接删除笔记留下的记录
type HistoryOrphanCleanupTask struct {
	app  *app.App
	spec string
}

// Name 返回任务名称
func (t *HistoryOrphanCleanupTask) Name() string {
	return "HistoryOrphanCleanup"
}

func (t *HistoryOrphanCleanupTask) Spec() string {
	return t.spec
}

// IsStartupRun 是否立即执行一次
func (t *HistoryOrphanCleanupTask) IsStartupRun() bool {
	return true
}

// Run 执行清理
func (t *HistoryOrphanCleanupTask) Run(ctx context.Context) error {
	done := t.app.TrackOperation()
	defer done()

	var removed int64
	err := t.app.Dao.Transaction(ctx, 0, func(ctx context.Context) error {
		n, err := t.app.NoteHistoryRepo.DeleteOrphans(ctx)
		removed = n
		return err
	})
	if err != nil {
		return err
	}

	if removed > 0 {
		t.app.Logger().Info("task log",
			zap.String(logger.FieldTask, t.Name()),
			zap.Int64("removed", removed))
	}
	return nil
}

// NewHistoryOrphanCleanupTask 创建清理任务，未配置 cron 表达式时返回 nil
func NewHistoryOrphanCleanupTask(a *app.App) (Task, error) {
	spec := strings.TrimSpace(a.Config().App.OrphanCleanupCron)
	if spec == "" {
		return nil, nil
	}
	return &HistoryOrphanCleanupTask{app: a, spec: spec}, nil
}

func init() {
	Register(NewHistoryOrphanCleanupTask)
}
