package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiwuxian/nusacerita/internal/models"
	"github.com/aiwuxian/nusacerita/internal/services"
	"github.com/aiwuxian/nusacerita/internal/store"
)

// fakeGenerator 固定返回的生成网关替身
type fakeGenerator struct {
	plot      string
	narrative string
	err       error
}

func (f *fakeGenerator) GeneratePlot(context.Context, *models.StoryState) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.plot, nil
}

func (f *fakeGenerator) GenerateNarrative(context.Context, *models.StoryState, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.narrative, nil
}

func setupRouter(llm services.Generator) (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)

	st := store.New()
	storyService := services.NewStoryService(st, llm)
	handler := NewHandler(st, storyService)

	r := gin.New()
	RegisterRoutes(r, handler)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetOptions(t *testing.T) {
	r, _ := setupRouter(&fakeGenerator{})

	w := doJSON(t, r, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Genders   []string `json:"genders"`
		Genres    []string `json:"genres"`
		Languages []string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.Genders, resp.Genders)
	assert.Equal(t, models.Genres, resp.Genres)
	assert.Equal(t, models.Languages, resp.Languages)
}

func TestAddFolderBlankNameIsNoop(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{})
	before := len(st.Folders())

	w := doJSON(t, r, http.MethodPost, "/api/folders", gin.H{"name": "  "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, st.Folders(), before)
}

func TestCreateAndFetchStory(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{})
	folderID := st.Folders()[0].ID

	w := doJSON(t, r, http.MethodPost, "/api/stories", gin.H{"folderId": folderID})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.StoryState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, folderID, created.FolderID)
	assert.Equal(t, created.ID, st.ActiveID())

	w = doJSON(t, r, http.MethodGet, "/api/stories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stories/tidak-ada", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateInfoEndpoint(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{})
	active, _ := st.Active()

	w := doJSON(t, r, http.MethodPut, "/api/stories/"+active.ID+"/info",
		gin.H{"mainTitle": "Judul Baru", "chapterNumber": 2})
	require.Equal(t, http.StatusOK, w.Code)

	got, _ := st.Story(active.ID)
	assert.Equal(t, "Judul Baru", got.MainTitle)
	assert.Equal(t, 2, got.ChapterNumber)
}

func TestCharacterAndDialogFlow(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{})

	w := doJSON(t, r, http.MethodPost, "/api/characters", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var char models.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &char))
	assert.Equal(t, models.Genders[0], char.Gender)

	w = doJSON(t, r, http.MethodPut, "/api/characters/"+char.ID, gin.H{"name": "Arjuna"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/dialogs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dialog models.DialogItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dialog))
	assert.Equal(t, "Arjuna", dialog.Speaker)

	w = doJSON(t, r, http.MethodDelete, "/api/characters/"+char.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	active, _ := st.Active()
	assert.Empty(t, active.Characters)
	assert.Len(t, active.Dialogs, 1)
}

func TestGenerateEndpoint(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{plot: "P", narrative: "N"})
	active, _ := st.Active()

	w := doJSON(t, r, http.MethodPost, "/api/stories/generate", gin.H{"storyId": active.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.StoryState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.GeneratedJSON)
	require.NotNil(t, got.GeneratedContent)
	assert.Equal(t, "P", *got.GeneratedJSON)
	assert.Equal(t, "N", *got.GeneratedContent)
}

func TestGenerateEndpointFailure(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{err: errors.New("auth gagal")})
	active, _ := st.Active()

	w := doJSON(t, r, http.MethodPost, "/api/stories/generate", gin.H{"storyId": active.ID})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// 失败不污染故事数据，可立即重试
	got, _ := st.Story(active.ID)
	assert.Nil(t, got.GeneratedJSON)
	assert.Nil(t, got.GeneratedContent)
}

func TestGenerateEndpointUnknownStory(t *testing.T) {
	r, _ := setupRouter(&fakeGenerator{plot: "P", narrative: "N"})

	w := doJSON(t, r, http.MethodPost, "/api/stories/generate", gin.H{"storyId": "tidak-ada"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNextChapterEndpoint(t *testing.T) {
	r, st := setupRouter(&fakeGenerator{})

	w := doJSON(t, r, http.MethodPost, "/api/stories/example", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/stories/next-chapter", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var next models.StoryState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	assert.Equal(t, 2, next.ChapterNumber)
	assert.Equal(t, "Legenda Pedang Naga", next.MainTitle)
	assert.Empty(t, next.Dialogs)
	assert.Len(t, st.Stories(), 2)
}
