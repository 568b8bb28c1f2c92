package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amadeuio/zeronotes-backend/internal/store"
	"github.com/amadeuio/zeronotes-backend/internal/testutil"
)

func TestBootstrapFindAll(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")

	notes := newNotesService(conn)
	labels := NewLabels(store.NewLabelStore(conn), zap.NewNop().Sugar())
	svc := NewBootstrap(notes, labels)

	n1 := testutil.SetupNote(t, conn, user, -2, "newest")
	n2 := testutil.SetupNote(t, conn, user, -1, "older")
	label := testutil.SetupLabel(t, conn, user, "Work")

	result, err := svc.FindAll(user.ID)
	require.NoError(t, err)
	require.Len(t, result.Notes, 2)
	assert.Equal(t, n1.ID, result.Notes[0].ID)
	assert.Equal(t, n2.ID, result.Notes[1].ID)
	require.Len(t, result.Labels, 1)
	assert.Equal(t, label.ID, result.Labels[0].ID)
}

func TestBootstrapEmptyUser(t *testing.T) {
	conn := testutil.InitMemoryDB(t)
	user := testutil.SetupUser(t, conn, "test@gmail.com", "password1234")

	notes := newNotesService(conn)
	labels := NewLabels(store.NewLabelStore(conn), zap.NewNop().Sugar())
	svc := NewBootstrap(notes, labels)

	result, err := svc.FindAll(user.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Notes)
	assert.Empty(t, result.Labels)
}
