package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veetae/titan-lite/pkg/titan/internalerr"
	"github.com/veetae/titan-lite/pkg/titan/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "clinical.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEnsureUserIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	u1, err := st.EnsureUser(ctx, "demo_builder")
	require.NoError(t, err)
	assert.NotEmpty(t, u1.ID)

	u2, err := st.EnsureUser(ctx, "demo_builder")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
}

func TestEnsureUserEmptyHandle(t *testing.T) {
	st := openTestStore(t)
	_, err := st.EnsureUser(context.Background(), "")
	assert.ErrorIs(t, err, internalerr.ErrInvalidPayload)
}

func TestAddNoteAndLatest(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	dos := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	n1, err := st.AddNote(ctx, "demo_builder", dos, "soap", "first note")
	require.NoError(t, err)
	assert.Equal(t, "draft", n1.Status)

	// Without an explicit type the note defaults to soap.
	n2, err := st.AddNote(ctx, "demo_builder", dos.AddDate(0, 0, 1), "", "second note")
	require.NoError(t, err)
	assert.Equal(t, "soap", n2.NoteType)

	latest, ok, err := st.LatestNoteByHandle(ctx, "demo_builder")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, n2.ID, latest.ID)
	assert.Equal(t, "second note", latest.ContentMD)
	assert.Equal(t, "demo_builder", latest.Handle)
	assert.Equal(t, "2025-03-15", latest.DOS.Format("2006-01-02"))
}

func TestLatestNoteMissingHandle(t *testing.T) {
	st := openTestStore(t)
	_, ok, err := st.LatestNoteByHandle(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateNote(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	n, err := st.AddNote(ctx, "demo_builder", time.Now(), "soap", "original")
	require.NoError(t, err)

	require.NoError(t, st.UpdateNote(ctx, n.ID, "polished", "TitanPolish v2"))

	latest, ok, err := st.LatestNoteByHandle(ctx, "demo_builder")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "polished", latest.ContentMD)
	assert.Equal(t, "TitanPolish v2", latest.Validator)
}

func TestUpdateNoteNotFound(t *testing.T) {
	st := openTestStore(t)
	err := st.UpdateNote(context.Background(), "no-such-id", "x", "y")
	assert.True(t, errors.Is(err, internalerr.ErrNotFound))
}

func TestLabsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	older := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	_, err := st.AddLab(ctx, "demo_builder", store.Lab{TestName: "A1c", Value: "8.4", Unit: "%", ResultDate: older})
	require.NoError(t, err)
	_, err = st.AddLab(ctx, "demo_builder", store.Lab{TestName: "A1c", Value: "8.1", Unit: "%", ResultDate: newer})
	require.NoError(t, err)

	labs, err := st.LatestLabs(ctx, "demo_builder", 10)
	require.NoError(t, err)
	require.Len(t, labs, 2)
	assert.Equal(t, "8.1", labs[0].Value)
	assert.Equal(t, "8.4", labs[1].Value)

	limited, err := st.LatestLabs(ctx, "demo_builder", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCounts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.AddNote(ctx, "demo_builder", time.Now(), "soap", "note body")
	require.NoError(t, err)
	_, err = st.AddLab(ctx, "demo_builder", store.Lab{TestName: "LDL", Value: "92", ResultDate: time.Now()})
	require.NoError(t, err)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)

	byTable := map[string]int64{}
	for _, c := range counts {
		byTable[c.Table] = c.Rows
	}
	assert.Equal(t, int64(1), byTable["users"])
	assert.Equal(t, int64(1), byTable["encounters"])
	assert.Equal(t, int64(1), byTable["notes"])
	assert.Equal(t, int64(1), byTable["labs"])
}
