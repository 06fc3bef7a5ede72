package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/metrics"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/writequeue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	notes   *memNoteRepo
	history *memHistoryRepo
	tx      *memTx
	metrics *metrics.Metrics
	svc     *noteService
	clock   time.Time
}

func newNoteFixture(t *testing.T) *noteFixture {
	t.Helper()
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	f := &noteFixture{
		notes:   newMemNoteRepo(),
		history: &memHistoryRepo{},
		metrics: m,
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.tx = &memTx{history: f.history}
	f.svc = NewNoteService(f.notes, f.history, f.tx, m, nil, &AppServiceConfig{
		EditMaxRetries: 3,
		EditRetryMin:   time.Millisecond,
		EditRetryMax:   2 * time.Millisecond,
	}).(*noteService)
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func TestNoteService_CreateUsesTemplate(t *testing.T) {
	f := newNoteFixture(t)

	note, err := f.svc.Create(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultNoteTitle, note.Title)
	assert.Equal(t, domain.DefaultNoteContent, note.Content)
	assert.Equal(t, int64(7), note.UID)
	assert.Equal(t, int64(1), note.Version)
}

func TestNoteService_EditScenario(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	note, err := f.svc.Create(ctx, 1)
	require.NoError(t, err)

	// 首次编辑默认模板不保存历史
	_, err = f.svc.Update(ctx, 1, note.ID, "My Title", "Hello")
	require.NoError(t, err)
	assert.Equal(t, 0, f.history.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SnapshotsSkipped))

	updated, err := f.svc.Update(ctx, 1, note.ID, "My Title", "Hello World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", updated.Content)
	assert.Equal(t, int64(3), updated.Version)

	rows, _ := f.history.ListByNoteID(ctx, note.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, "My Title", rows[0].Title)
	assert.Equal(t, "Hello", rows[0].Content)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.HistorySnapshots))

	got, err := f.svc.Get(ctx, 1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got.Content)
}

func TestNoteService_IdenticalEditKeepsHistory(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	note, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Update(ctx, 1, note.ID, "a", "b")
	before, _ := f.svc.Get(ctx, 1, note.ID)

	after, err := f.svc.Update(ctx, 1, note.ID, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, f.history.count())
	assert.True(t, after.UpdatedAt.Time().After(before.UpdatedAt.Time()))
	assert.Equal(t, before.Version+1, after.Version)
}

func TestNoteService_OtherOwner(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	note, _ := f.svc.Create(ctx, 1)

	_, err := f.svc.Get(ctx, 2, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = f.svc.Update(ctx, 2, note.ID, "x", "y")
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, 2, note.ID), code.ErrorNoteNotFound)

	_, err = f.svc.Get(ctx, 1, note.ID)
	assert.NoError(t, err)
}

func TestNoteService_ConflictRetried(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	note, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Update(ctx, 1, note.ID, "a", "b")

	f.notes.conflicts = 2
	out, err := f.svc.Update(ctx, 1, note.ID, "a", "c")
	require.NoError(t, err)
	assert.Equal(t, "c", out.Content)

	// 冲突的尝试被回滚，只留下一条历史
	assert.Equal(t, 1, f.history.count())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.EditConflicts))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.EditConflictFailures))
}

func TestNoteService_ConflictExhausted(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	note, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Update(ctx, 1, note.ID, "a", "b")

	f.notes.conflicts = 100
	_, err := f.svc.Update(ctx, 1, note.ID, "a", "c")
	assert.ErrorIs(t, err, code.ErrorNoteEditConflict)
	assert.Equal(t, 0, f.history.count())
	assert.Equal(t, 4.0, testutil.ToFloat64(f.metrics.EditConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EditConflictFailures))
}

func TestNoteService_ConflictStopsOnCancel(t *testing.T) {
	f := newNoteFixture(t)
	f.svc.config.EditRetryMin = time.Hour
	f.svc.config.EditRetryMax = time.Hour
	note, _ := f.svc.Create(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	f.notes.conflicts = 100
	_, err := f.svc.Update(ctx, 1, note.ID, "a", "c")
	assert.ErrorIs(t, err, code.ErrorDBQuery)
}

func TestNoteService_ListNewestFirst(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	a, _ := f.svc.Create(ctx, 1)
	b, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Create(ctx, 2)
	_, _ = f.svc.Update(ctx, 1, a.ID, "touched", "x")

	list, err := f.svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "touched", list[0].Title)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestNoteService_Delete(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	note, _ := f.svc.Create(ctx, 1)

	require.NoError(t, f.svc.Delete(ctx, 1, note.ID))
	_, err := f.svc.Get(ctx, 1, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, 1, note.ID), code.ErrorNoteNotFound)
}

func TestNoteService_WriteQueueBusy(t *testing.T) {
	f := newNoteFixture(t)
	f.tx.err = writequeue.ErrWriteQueueFull

	_, err := f.svc.Create(context.Background(), 1)
	assert.ErrorIs(t, err, code.ErrorWriteQueueBusy)
}
