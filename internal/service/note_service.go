package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/dto"
	"github.com/haierkeys/fast-note-service/internal/metrics"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/convert"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"github.com/jpillora/backoff"
	"go.uber.org/zap"
)

// NoteService defines the note business service interface
// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 使用默认模板创建笔记
	Create(ctx context.Context, uid int64) (*dto.NoteDTO, error)

	// List 获取用户的笔记列表（按更新时间倒序）
	List(ctx context.Context, uid int64) ([]*dto.NoteSummaryDTO, error)

	// Get 获取笔记详情
	Get(ctx context.Context, uid, noteID int64) (*dto.NoteDTO, error)

	// Update replaces title and content, saving the previous state into history when it really changed
	// Update 编辑笔记，内容变化时先保存历史版本
	Update(ctx context.Context, uid, noteID int64, title, content string) (*dto.NoteDTO, error)

	// Delete 删除笔记及其全部历史版本
	Delete(ctx context.Context, uid, noteID int64) error
}

type noteService struct {
	noteRepo    domain.NoteRepository
	historyRepo domain.NoteHistoryRepository
	tx          domain.Transactor
	metrics     *metrics.Metrics
	logger      *zap.Logger
	config      AppServiceConfig
	now         func() time.Time
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, historyRepo domain.NoteHistoryRepository, tx domain.Transactor, m *metrics.Metrics, logger *zap.Logger, config *AppServiceConfig) NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noteService{
		noteRepo:    noteRepo,
		historyRepo: historyRepo,
		tx:          tx,
		metrics:     m,
		logger:      logger,
		config:      config.withDefaults(),
		now:         time.Now,
	}
}

func (s *noteService) domainToDTO(note *domain.Note) (*dto.NoteDTO, error) {
	out := &dto.NoteDTO{}
	if err := convert.StructAssign(note, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64) (*dto.NoteDTO, error) {
	var created *domain.Note
	err := s.tx.Transaction(ctx, uid, func(ctx context.Context) error {
		var err error
		created, err = s.noteRepo.Create(ctx, domain.NewDefaultNote(uid, s.now()))
		return err
	})
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteService.Create", err, nil)
	}
	out, err := s.domainToDTO(created)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteService.Create", err, nil)
	}
	return out, nil
}

// List 获取笔记列表
func (s *noteService) List(ctx context.Context, uid int64) ([]*dto.NoteSummaryDTO, error) {
	notes, err := s.noteRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteService.List", err, nil)
	}

	out := make([]*dto.NoteSummaryDTO, 0, len(notes))
	for _, n := range notes {
		item := &dto.NoteSummaryDTO{}
		if err := convert.StructAssign(n, item); err != nil {
			return nil, toCodeError(ctx, s.logger, "NoteService.List", err, nil)
		}
		out = append(out, item)
	}
	return out, nil
}

// Get 获取笔记
func (s *noteService) Get(ctx context.Context, uid, noteID int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, uid)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteService.Get", err, code.ErrorNoteNotFound)
	}
	out, err := s.domainToDTO(note)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteService.Get", err, nil)
	}
	return out, nil
}

// Update 编辑笔记
// A version conflict rolls the whole attempt back, so a retried edit never leaves a duplicate history row.
func (s *noteService) Update(ctx context.Context, uid, noteID int64, title, content string) (*dto.NoteDTO, error) {
	b := &backoff.Backoff{
		Min:    s.config.EditRetryMin,
		Max:    s.config.EditRetryMax,
		Factor: 2,
		Jitter: true,
	}

	for attempt := 0; ; attempt++ {
		note, err := s.applyEdit(ctx, uid, noteID, title, content)
		if err == nil {
			out, err := s.domainToDTO(note)
			if err != nil {
				return nil, toCodeError(ctx, s.logger, "NoteService.Update", err, nil)
			}
			return out, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, toCodeError(ctx, s.logger, "NoteService.Update", err, code.ErrorNoteNotFound)
		}

		s.metrics.EditConflict()
		if attempt >= s.config.EditMaxRetries {
			s.metrics.EditConflictFailed()
			s.logger.Warn("note edit conflict retries exhausted",
				logger.TraceField(ctx),
				zap.Int64(logger.FieldUID, uid),
				zap.Int64(logger.FieldNoteID, noteID),
				zap.Int(logger.FieldAttempt, attempt+1))
			return nil, code.ErrorNoteEditConflict
		}

		wait := b.Duration()
		s.logger.Debug("note edit conflict, retrying",
			logger.TraceField(ctx),
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Int(logger.FieldAttempt, attempt+1),
			zap.Duration(logger.FieldDuration, wait))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, toCodeError(ctx, s.logger, "NoteService.Update", ctx.Err(), nil)
		}
	}
}

// applyEdit runs one lock, decide, snapshot, write attempt in a single transaction
func (s *noteService) applyEdit(ctx context.Context, uid, noteID int64, title, content string) (*domain.Note, error) {
	var (
		updated  *domain.Note
		snapshot bool
		skipped  bool
	)

	err := s.tx.Transaction(ctx, uid, func(ctx context.Context) error {
		current, err := s.noteRepo.GetByIDForUpdate(ctx, noteID, uid)
		if err != nil {
			return err
		}

		now := s.now()
		switch {
		case domain.ShouldSnapshot(current, title, content):
			_, err := s.historyRepo.Create(ctx, &domain.NoteHistory{
				NoteID:  current.ID,
				Title:   current.Title,
				Content: current.Content,
				SavedAt: now,
			})
			if err != nil {
				return err
			}
			snapshot = true
		case current.Differs(title, content):
			skipped = true
		}

		expected := current.Version
		current.Title = title
		current.Content = content
		current.UpdatedAt = now
		if err := s.noteRepo.UpdateWithVersion(ctx, current, expected); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if snapshot {
		s.metrics.SnapshotWritten()
	}
	if skipped {
		s.metrics.SnapshotSkipped()
	}
	return updated, nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid, noteID int64) error {
	var affected int64
	err := s.tx.Transaction(ctx, uid, func(ctx context.Context) error {
		var err error
		affected, err = s.noteRepo.Delete(ctx, noteID, uid)
		return err
	})
	if err != nil {
		return toCodeError(ctx, s.logger, "NoteService.Delete", err, code.ErrorNoteNotFound)
	}
	if affected == 0 {
		return code.ErrorNoteNotFound
	}
	return nil
}
