package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/testutil"
)

func TestNextPrependOrder(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	notes := NewNoteStore(conn)

	got, err := notes.NextPrependOrder(user.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	testutil.SetupNote(t, conn, user, -1, "first")

	got, err = notes.NextPrependOrder(user.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got)

	// another user's notes do not shift the seed
	other := testutil.SetupUser(t, conn, "other@gmail.com", "password1234")
	testutil.SetupNote(t, conn, other, -10, "foreign")

	got, err = notes.NextPrependOrder(user.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got)
}

func TestFindAllWithLabelsOrdering(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	notes := NewNoteStore(conn)

	// created in sequence, each prepended below the previous minimum
	n1 := testutil.SetupNote(t, conn, user, -1, "one")
	n2 := testutil.SetupNote(t, conn, user, -2, "two")
	n3 := testutil.SetupNote(t, conn, user, -3, "three")

	got, err := notes.FindAllWithLabels(user.ID, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, n3.ID, got[0].ID)
	assert.Equal(t, n2.ID, got[1].ID)
	assert.Equal(t, n1.ID, got[2].ID)
	assert.Empty(t, got[0].Labels)
}

func TestFindAllWithLabelsFilter(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	notes := NewNoteStore(conn)
	assoc := NewNoteLabelStore(conn)

	n1 := testutil.SetupNote(t, conn, user, -1, "one")
	n2 := testutil.SetupNote(t, conn, user, -2, "two")
	work := testutil.SetupLabel(t, conn, user, "Work")

	require.NoError(t, assoc.Add(n1.ID, work.ID))

	got, err := notes.FindAllWithLabels(user.ID, []string{work.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, n1.ID, got[0].ID)
	require.Len(t, got[0].Labels, 1)
	assert.Equal(t, work.ID, got[0].Labels[0].ID)

	// no note carries an unknown label
	got, err = notes.FindAllWithLabels(user.ID, []string{n2.ID})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdatePartial(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	notes := NewNoteStore(conn)

	note := testutil.SetupNote(t, conn, user, -1, "keep me")

	found, err := notes.Update(user.ID, note.ID, map[string]interface{}{"is_pinned": true})
	require.NoError(t, err)
	assert.True(t, found)

	reloaded, err := notes.ByID(user.ID, note.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.True(t, reloaded.IsPinned)
	require.NotNil(t, reloaded.Title)
	assert.Equal(t, "keep me", *reloaded.Title)
	assert.False(t, reloaded.IsArchived)
	assert.False(t, reloaded.IsTrashed)
	assert.Equal(t, note.Order, reloaded.Order)
}

func TestUpdateNotFound(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	other := testutil.SetupUser(t, conn, "other@gmail.com", "password1234")
	notes := NewNoteStore(conn)

	note := testutil.SetupNote(t, conn, other, -1, "not yours")

	// a guessed valid id under the wrong user must not match
	found, err := notes.Update(user.ID, note.ID, map[string]interface{}{"title": "stolen"})
	require.NoError(t, err)
	assert.False(t, found)

	reloaded, err := notes.ByID(other.ID, note.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "not yours", *reloaded.Title)
}

func TestDelete(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	notes := NewNoteStore(conn)
	assoc := NewNoteLabelStore(conn)

	note := testutil.SetupNote(t, conn, user, -1, "bye")
	label := testutil.SetupLabel(t, conn, user, "Work")
	require.NoError(t, assoc.Add(note.ID, label.ID))

	found, err := notes.Delete(user.ID, note.ID)
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, int64(0), testutil.CountAssociations(t, conn, note.ID))

	found, err = notes.Delete(user.ID, note.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReorderAll(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	notes := NewNoteStore(conn)

	n1 := testutil.SetupNote(t, conn, user, -1, "one")
	n2 := testutil.SetupNote(t, conn, user, -2, "two")
	n3 := testutil.SetupNote(t, conn, user, -3, "three")

	require.NoError(t, notes.ReorderAll(user.ID, []string{n1.ID, n3.ID, n2.ID}))

	got, err := notes.FindAllWithLabels(user.ID, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{n1.ID, n3.ID, n2.ID}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 0, got[0].Order)
	assert.Equal(t, 1, got[1].Order)
	assert.Equal(t, 2, got[2].Order)
}

func TestReorderAllSkipsForeignIDs(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")
	other := testutil.SetupUser(t, conn, "other@gmail.com", "password1234")
	notes := NewNoteStore(conn)

	mine := testutil.SetupNote(t, conn, user, -1, "mine")
	theirs := testutil.SetupNote(t, conn, other, -1, "theirs")

	require.NoError(t, notes.ReorderAll(user.ID, []string{theirs.ID, mine.ID}))

	reloadedTheirs := db.Note{}
	require.NoError(t, conn.Where("id = ?", theirs.ID).First(&reloadedTheirs).Error)
	assert.Equal(t, -1, reloadedTheirs.Order)

	reloadedMine := db.Note{}
	require.NoError(t, conn.Where("id = ?", mine.ID).First(&reloadedMine).Error)
	assert.Equal(t, 1, reloadedMine.Order)
}
