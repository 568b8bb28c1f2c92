package test_functional

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	AuthResp struct {
		Token string `json:"token"`
	}

	IDResp struct {
		ID string `json:"id"`
	}

	NoteResp struct {
		ID       string   `json:"id"`
		Title    *string  `json:"title"`
		IsPinned bool     `json:"isPinned"`
		LabelIDs []string `json:"labelIds"`
	}

	NoteListResp struct {
		NotesByID  map[string]NoteResp `json:"notesById"`
		NotesOrder []string            `json:"notesOrder"`
	}

	LabelResp struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	BootstrapResp struct {
		NotesByID  map[string]NoteResp  `json:"notesById"`
		NotesOrder []string             `json:"notesOrder"`
		LabelsByID map[string]LabelResp `json:"labelsById"`
	}
)

func apiURL(path string) string {
	u := AppBaseURL
	u.Path = path
	return u.String()
}

// registerUser signs up a throwaway account so tests do not share state.
func registerUser(t *testing.T, ctx context.Context) string {
	email := fmt.Sprintf("%s@test.com", uuid.New().String())

	resp, err := resty.New().
		R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetResult(&AuthResp{}).
		SetBody(fmt.Sprintf(`{"email": %q, "password": "111111111111"}`, email)).
		Post(apiURL("/api/auth/register"))
	require.Nil(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	got, ok := resp.Result().(*AuthResp)
	require.True(t, ok)
	require.NotEmpty(t, got.Token)
	return got.Token
}

func authClient(token string) *resty.Request {
	return resty.New().
		R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+token)
}

func TestRegister(t *testing.T) {
	t.Run("successful register", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		registerUser(t, ctx)
	})

	t.Run("bad body", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetBody(`
			{"something": "???"}
		`).
			Post(apiURL("/api/auth/register"))
		assert.Nil(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})

	t.Run("unauthenticated list rejected", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		resp, err := resty.New().R().SetContext(ctx).Get(apiURL("/api/notes"))
		assert.Nil(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})
}

func TestNotesCrud(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	token := registerUser(t, ctx)

	n1 := uuid.New().String()
	n2 := uuid.New().String()

	for _, id := range []string{n1, n2} {
		resp, err := authClient(token).
			SetContext(ctx).
			SetBody(fmt.Sprintf(`{"id": %q, "title": "note"}`, id)).
			Post(apiURL("/api/notes"))
		require.Nil(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	}

	//////

	resp, err := authClient(token).
		SetContext(ctx).
		SetResult(&NoteListResp{}).
		Get(apiURL("/api/notes"))
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	list := resp.Result().(*NoteListResp)
	require.Len(t, list.NotesByID, 2)
	assert.Equal(t, []string{n2, n1}, list.NotesOrder)

	//////

	resp, err = authClient(token).
		SetContext(ctx).
		SetBody(`{"isPinned": true}`).
		Put(apiURL("/api/notes/" + n1))
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

	resp, err = authClient(token).
		SetContext(ctx).
		SetBody(fmt.Sprintf(`{"noteIds": [%q, %q]}`, n1, n2)).
		Post(apiURL("/api/notes/reorder"))
	require.Nil(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = authClient(token).
		SetContext(ctx).
		SetResult(&NoteListResp{}).
		Get(apiURL("/api/notes"))
	require.Nil(t, err)

	list = resp.Result().(*NoteListResp)
	assert.Equal(t, []string{n1, n2}, list.NotesOrder)
	assert.True(t, list.NotesByID[n1].IsPinned)

	//////

	resp, err = authClient(token).
		SetContext(ctx).
		Delete(apiURL("/api/notes/" + n2))
	require.Nil(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = authClient(token).
		SetContext(ctx).
		SetResult(&NoteListResp{}).
		Get(apiURL("/api/notes"))
	require.Nil(t, err)

	list = resp.Result().(*NoteListResp)
	assert.Len(t, list.NotesByID, 1)
}

func TestLabelCascade(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	token := registerUser(t, ctx)

	noteID := uuid.New().String()
	resp, err := authClient(token).
		SetContext(ctx).
		SetBody(fmt.Sprintf(`{"id": %q, "title": "note"}`, noteID)).
		Post(apiURL("/api/notes"))
	require.Nil(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	labelID := uuid.New().String()
	resp, err = authClient(token).
		SetContext(ctx).
		SetBody(fmt.Sprintf(`{"id": %q, "name": "Work"}`, labelID)).
		Post(apiURL("/api/labels"))
	require.Nil(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = authClient(token).
		SetContext(ctx).
		Post(apiURL("/api/notes/" + noteID + "/labels/" + labelID))
	require.Nil(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode())

	//////

	resp, err = authClient(token).
		SetContext(ctx).
		SetResult(&BootstrapResp{}).
		Get(apiURL("/api/bootstrap"))
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	boot := resp.Result().(*BootstrapResp)
	assert.Equal(t, []string{labelID}, boot.NotesByID[noteID].LabelIDs)
	assert.Equal(t, "Work", boot.LabelsByID[labelID].Name)

	//////

	resp, err = authClient(token).
		SetContext(ctx).
		Delete(apiURL("/api/labels/" + labelID))
	require.Nil(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = authClient(token).
		SetContext(ctx).
		SetResult(&BootstrapResp{}).
		Get(apiURL("/api/bootstrap"))
	require.Nil(t, err)

	boot = resp.Result().(*BootstrapResp)
	assert.Empty(t, boot.NotesByID[noteID].LabelIDs)
	assert.NotContains(t, boot.LabelsByID, labelID)
}
