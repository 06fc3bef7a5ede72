package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/dto"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/diff"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryFixture(t *testing.T) (*noteFixture, NoteHistoryService) {
	f := newNoteFixture(t)
	return f, NewNoteHistoryService(f.history, f.notes, nil)
}

func TestNoteHistoryService_List(t *testing.T) {
	f, svc := newHistoryFixture(t)
	ctx := context.Background()

	note, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Update(ctx, 1, note.ID, "v1", "one")
	_, _ = f.svc.Update(ctx, 1, note.ID, "v2", "two")
	_, _ = f.svc.Update(ctx, 1, note.ID, "v3", "three")

	versions, err := svc.List(ctx, 1, note.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)

	assert.Equal(t, "v1", versions[0].Title)
	assert.Equal(t, 1, versions[0].VersionNum)
	assert.False(t, versions[0].IsLatest)
	assert.Equal(t, "v2", versions[1].Title)
	assert.Equal(t, 2, versions[1].VersionNum)

	last := versions[2]
	assert.Equal(t, dto.CurrentVersionID, last.ID)
	assert.True(t, last.IsLatest)
	assert.Equal(t, 3, last.VersionNum)
	assert.Equal(t, "v3", last.Title)
	assert.Equal(t, "three", last.Content)

	live, _ := f.svc.Get(ctx, 1, note.ID)
	assert.Equal(t, live.UpdatedAt, last.SavedAt)
}

func TestNoteHistoryService_ListNotOwned(t *testing.T) {
	f, svc := newHistoryFixture(t)
	note, _ := f.svc.Create(context.Background(), 1)

	_, err := svc.List(context.Background(), 2, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteHistoryService_Get(t *testing.T) {
	f, svc := newHistoryFixture(t)
	ctx := context.Background()

	note, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Update(ctx, 1, note.ID, "v1", "one")
	_, _ = f.svc.Update(ctx, 1, note.ID, "v2", "two")
	rows, _ := f.history.ListByNoteID(ctx, note.ID)
	require.Len(t, rows, 1)
	id := rows[0].ID

	got, err := svc.Get(ctx, 1, itoa(id))
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "v1", got.Title)
	assert.Equal(t, "one", got.Content)

	tests := []struct {
		name      string
		uid       int64
		versionID string
		want      error
	}{
		{"current", 1, "current", code.ErrorHistoryCurrentVersion},
		{"non numeric", 1, "abc", code.ErrorHistoryIDInvalid},
		{"zero", 1, "0", code.ErrorHistoryIDInvalid},
		{"missing", 1, "999", code.ErrorHistoryNotFound},
		{"other owner", 2, itoa(id), code.ErrorHistoryForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(ctx, tt.uid, tt.versionID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNoteHistoryService_Diff(t *testing.T) {
	f, svc := newHistoryFixture(t)
	ctx := context.Background()

	note, _ := f.svc.Create(ctx, 1)
	_, _ = f.svc.Update(ctx, 1, note.ID, "t", "Hello")
	_, _ = f.svc.Update(ctx, 1, note.ID, "t", "Hello World")
	rows, _ := f.history.ListByNoteID(ctx, note.ID)
	require.Len(t, rows, 1)

	res, err := svc.Diff(ctx, 1, itoa(rows[0].ID))
	require.NoError(t, err)
	assert.Equal(t, note.ID, res.NoteID)
	assert.Contains(t, res.Diffs, diff.Op{Type: "insert", Text: " World"})

	out, ok, err := diff.Apply("Hello", res.Patch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hello World", out)

	_, err = svc.Diff(ctx, 2, itoa(rows[0].ID))
	assert.ErrorIs(t, err, code.ErrorHistoryForbidden)
}

// 时钟回拨时 savedAt 可能晚于笔记的 updatedAt，历史行仍全部保留
func TestBuildVersionList_KeepsRowsNewerThanNote(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	note := &domain.Note{ID: 1, Title: "live", UpdatedAt: at}
	rows := []*domain.NoteHistory{
		{ID: 1, NoteID: 1, SavedAt: at.Add(-time.Minute)},
		{ID: 2, NoteID: 1, SavedAt: at},
		{ID: 3, NoteID: 1, SavedAt: at.Add(time.Minute)},
	}

	out := buildVersionList(note, rows)
	require.Len(t, out, 4)
	for i, v := range out[:3] {
		assert.Equal(t, rows[i].ID, v.ID)
		assert.Equal(t, i+1, v.VersionNum)
		assert.False(t, v.IsLatest)
	}
	assert.Equal(t, dto.CurrentVersionID, out[3].ID)
	assert.Equal(t, 4, out[3].VersionNum)
}

// 历史列表编号性质：n 条历史 → n+1 项，编号连续且仅最后一项为当前版本
func TestBuildVersionList_Numbering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("versions are numbered 1..n+1 with current last", prop.ForAll(
		func(titles []string) bool {
			at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			rows := make([]*domain.NoteHistory, 0, len(titles))
			for i, title := range titles {
				rows = append(rows, &domain.NoteHistory{ID: int64(i + 1), Title: title, SavedAt: at.Add(time.Duration(i) * time.Second)})
			}
			note := &domain.Note{Title: "live", Content: "body", UpdatedAt: at.Add(time.Hour)}

			out := buildVersionList(note, rows)
			if len(out) != len(titles)+1 {
				return false
			}
			for i, v := range out {
				if v.VersionNum != i+1 || v.IsLatest != (i == len(titles)) {
					return false
				}
				if i < len(titles) && v.Title != titles[i] {
					return false
				}
			}
			last := out[len(out)-1]
			return last.ID == dto.CurrentVersionID && last.Title == note.Title && last.Content == note.Content
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestParseVersionID(t *testing.T) {
	id, err := ParseVersionID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseVersionID("-1")
	assert.ErrorIs(t, err, code.ErrorHistoryIDInvalid)
}
