package service

import (
	"context"
	"sort"
	"sync"

	"github.com/haierkeys/fast-note-service/internal/domain"

	"gorm.io/gorm"
)

// memUserRepo 内存用户仓库
type memUserRepo struct {
	domain.UserRepository
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}}
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateKey
		}
	}
	r.nextID++
	cp := *user
	cp.ID = r.nextID
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

// memNoteRepo 内存笔记仓库；conflicts 次 UpdateWithVersion 会模拟并发写入导致的版本冲突
type memNoteRepo struct {
	domain.NoteRepository
	mu        sync.Mutex
	nextID    int64
	notes     map[int64]*domain.Note
	conflicts int
	err       error
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: map[int64]*domain.Note{}}
}

func (r *memNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	cp := *note
	cp.ID = r.nextID
	r.notes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memNoteRepo) GetByID(_ context.Context, id, uid int64) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	n, ok := r.notes[id]
	if !ok || n.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *memNoteRepo) GetByIDForUpdate(ctx context.Context, id, uid int64) (*domain.Note, error) {
	return r.GetByID(ctx, id, uid)
}

func (r *memNoteRepo) ListByUID(_ context.Context, uid int64) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Note
	for _, n := range r.notes {
		if n.UID == uid {
			out = append(out, &domain.Note{ID: n.ID, UID: n.UID, Title: n.Title, UpdatedAt: n.UpdatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *memNoteRepo) UpdateWithVersion(_ context.Context, note *domain.Note, expected int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrVersionConflict
	}
	n, ok := r.notes[note.ID]
	if !ok || n.UID != note.UID || n.Version != expected {
		return domain.ErrVersionConflict
	}
	n.Title, n.Content, n.UpdatedAt = note.Title, note.Content, note.UpdatedAt
	n.Version = expected + 1
	note.Version = n.Version
	return nil
}

func (r *memNoteRepo) Delete(_ context.Context, id, uid int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UID != uid {
		return 0, nil
	}
	delete(r.notes, id)
	return 1, nil
}

// memHistoryRepo 内存历史仓库
type memHistoryRepo struct {
	domain.NoteHistoryRepository
	mu     sync.Mutex
	nextID int64
	rows   []*domain.NoteHistory
}

func (r *memHistoryRepo) Create(_ context.Context, h *domain.NoteHistory) (*domain.NoteHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *h
	cp.ID = r.nextID
	r.rows = append(r.rows, &cp)
	out := cp
	return &out, nil
}

func (r *memHistoryRepo) GetByID(_ context.Context, id int64) (*domain.NoteHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.rows {
		if h.ID == id {
			cp := *h
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memHistoryRepo) ListByNoteID(_ context.Context, noteID int64) ([]*domain.NoteHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.NoteHistory
	for _, h := range r.rows {
		if h.NoteID == noteID {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SavedAt.Before(out[j].SavedAt)
	})
	return out, nil
}

func (r *memHistoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// memTx runs fn directly and drops history rows written by a failed fn, like a rollback
type memTx struct {
	history *memHistoryRepo
	err     error
}

func (t *memTx) Transaction(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	if t.err != nil {
		return t.err
	}
	before := t.history.count()
	if err := fn(ctx); err != nil {
		t.history.mu.Lock()
		t.history.rows = t.history.rows[:before]
		t.history.mu.Unlock()
		return err
	}
	return nil
}
