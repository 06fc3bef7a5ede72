package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/dto"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/convert"
	"github.com/haierkeys/fast-note-service/pkg/diff"
	"github.com/haierkeys/fast-note-service/pkg/timex"

	"go.uber.org/zap"
)

// NoteHistoryService defines the note history business service interface
// NoteHistoryService 定义笔记历史业务服务接口
type NoteHistoryService interface {
	// List returns the note's history oldest first, followed by the live note marked "current"
	// List 获取笔记的历史版本列表，末尾为当前版本
	List(ctx context.Context, uid, noteID int64) ([]*dto.NoteVersionDTO, error)

	// Get 获取单个历史版本
	Get(ctx context.Context, uid int64, versionID string) (*dto.NoteHistoryDTO, error)

	// Diff 计算历史版本到当前笔记内容的差异
	Diff(ctx context.Context, uid int64, versionID string) (*dto.NoteHistoryDiffDTO, error)
}

type noteHistoryService struct {
	historyRepo domain.NoteHistoryRepository
	noteRepo    domain.NoteRepository
	logger      *zap.Logger
}

// NewNoteHistoryService creates NoteHistoryService instance
// NewNoteHistoryService 创建 NoteHistoryService 实例
func NewNoteHistoryService(historyRepo domain.NoteHistoryRepository, noteRepo domain.NoteRepository, logger *zap.Logger) NoteHistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noteHistoryService{
		historyRepo: historyRepo,
		noteRepo:    noteRepo,
		logger:      logger,
	}
}

// ParseVersionID parses a history version path parameter
// ParseVersionID 解析历史版本 ID，"current" 需通过笔记接口获取
func ParseVersionID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == dto.CurrentVersionID {
		return 0, code.ErrorHistoryCurrentVersion
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, code.ErrorHistoryIDInvalid
	}
	return id, nil
}

// List 获取历史版本列表，每次调用重新查询
// The note is read before its rows: an edit committing in between adds a row equal to the
// note read here, it never hides one.
func (s *noteHistoryService) List(ctx context.Context, uid, noteID int64) ([]*dto.NoteVersionDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, uid)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteHistoryService.List", err, code.ErrorNoteNotFound)
	}

	rows, err := s.historyRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteHistoryService.List", err, nil)
	}

	return buildVersionList(note, rows), nil
}

// buildVersionList numbers every history row from 1 and appends the live note
func buildVersionList(note *domain.Note, rows []*domain.NoteHistory) []*dto.NoteVersionDTO {
	out := make([]*dto.NoteVersionDTO, 0, len(rows)+1)
	for _, h := range rows {
		out = append(out, &dto.NoteVersionDTO{
			ID:         h.ID,
			IsLatest:   false,
			VersionNum: len(out) + 1,
			Title:      h.Title,
			Content:    h.Content,
			SavedAt:    timex.Time(h.SavedAt.UTC()),
		})
	}
	return append(out, &dto.NoteVersionDTO{
		ID:         dto.CurrentVersionID,
		IsLatest:   true,
		VersionNum: len(out) + 1,
		Title:      note.Title,
		Content:    note.Content,
		SavedAt:    timex.Time(note.UpdatedAt.UTC()),
	})
}

// load reads a history row and the parent note it must belong to uid through
func (s *noteHistoryService) load(ctx context.Context, method string, uid int64, versionID string) (*domain.NoteHistory, *domain.Note, error) {
	id, err := ParseVersionID(versionID)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.historyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, toCodeError(ctx, s.logger, method, err, code.ErrorHistoryNotFound)
	}

	note, err := s.noteRepo.GetByID(ctx, history.NoteID, uid)
	if err != nil {
		return nil, nil, toCodeError(ctx, s.logger, method, err, code.ErrorHistoryForbidden)
	}
	return history, note, nil
}

// Get 获取历史版本
func (s *noteHistoryService) Get(ctx context.Context, uid int64, versionID string) (*dto.NoteHistoryDTO, error) {
	history, _, err := s.load(ctx, "NoteHistoryService.Get", uid, versionID)
	if err != nil {
		return nil, err
	}

	out := &dto.NoteHistoryDTO{}
	if err := convert.StructAssign(history, out); err != nil {
		return nil, toCodeError(ctx, s.logger, "NoteHistoryService.Get", err, nil)
	}
	return out, nil
}

// Diff 历史版本与当前内容的差异
func (s *noteHistoryService) Diff(ctx context.Context, uid int64, versionID string) (*dto.NoteHistoryDiffDTO, error) {
	history, note, err := s.load(ctx, "NoteHistoryService.Diff", uid, versionID)
	if err != nil {
		return nil, err
	}

	res := diff.Texts(history.Content, note.Content)
	return &dto.NoteHistoryDiffDTO{
		ID:     history.ID,
		NoteID: note.ID,
		Patch:  res.Patch,
		Diffs:  res.Ops,
	}, nil
}
