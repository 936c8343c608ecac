package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aiwuxian/nusacerita/internal/models"
	"github.com/aiwuxian/nusacerita/internal/services"
	"github.com/aiwuxian/nusacerita/internal/store"
)

type Handler struct {
	store        *store.Store
	storyService *services.StoryService
}

func NewHandler(store *store.Store, storyService *services.StoryService) *Handler {
	return &Handler{
		store:        store,
		storyService: storyService,
	}
}

// getCustomLLMService 从请求头获取自定义API配置并创建LLMService
// 没有自定义配置时返回nil，走StoryService的默认网关
func (h *Handler) getCustomLLMService(c *gin.Context) services.Generator {
	apiKey := c.GetHeader("X-Custom-API-Key")
	apiBase := c.GetHeader("X-Custom-API-Base")
	model := c.GetHeader("X-Custom-API-Model")

	if apiKey == "" {
		return nil
	}

	config := models.LLMConfig{
		Provider:    "openai",
		APIKey:      apiKey,
		APIBase:     apiBase,
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	return services.NewLLMService(config)
}

// GetOptions 获取预设选项列表（性别/题材/语言）
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genders":   models.Genders,
		"genres":    models.Genres,
		"languages": models.Languages,
	})
}

// ListFolders 获取文件夹列表
func (h *Handler) ListFolders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"folders": h.store.Folders()})
}

// AddFolder 新建文件夹，名字为空时静默忽略
func (h *Handler) AddFolder(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	h.store.AddFolder(req.Name)
	c.JSON(http.StatusOK, gin.H{"folders": h.store.Folders()})
}

// ListStories 获取全部故事和当前激活ID
func (h *Handler) ListStories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stories":       h.store.Stories(),
		"activeStoryId": h.store.ActiveID(),
	})
}

// CreateStory 在文件夹下新建章节并设为激活
func (h *Handler) CreateStory(c *gin.Context) {
	var req struct {
		FolderID string `json:"folderId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	story := h.store.CreateStory(req.FolderID)
	c.JSON(http.StatusOK, story)
}

// GetStory 获取单个故事
func (h *Handler) GetStory(c *gin.Context) {
	story, ok := h.store.Story(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "故事不存在"})
		return
	}

	c.JSON(http.StatusOK, story)
}

// SetActiveStory 切换激活故事
func (h *Handler) SetActiveStory(c *gin.Context) {
	var req struct {
		StoryID string `json:"storyId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if !h.store.SetActive(req.StoryID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "故事不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activeStoryId": h.store.ActiveID()})
}

// UpdateInfo 更新标题信息，未知ID时集合保持不变
func (h *Handler) UpdateInfo(c *gin.Context) {
	var req struct {
		MainTitle     *string `json:"mainTitle"`
		ChapterTitle  *string `json:"chapterTitle"`
		ChapterNumber *int    `json:"chapterNumber"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	updated := h.store.UpdateInfo(c.Param("id"), store.InfoPatch{
		MainTitle:     req.MainTitle,
		ChapterTitle:  req.ChapterTitle,
		ChapterNumber: req.ChapterNumber,
	})
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// UpdateSetting 更新场景设定
func (h *Handler) UpdateSetting(c *gin.Context) {
	var req struct {
		Environment     *string `json:"environment"`
		EnvironmentDesc *string `json:"environmentDesc"`
		Location        *string `json:"location"`
		LocationDesc    *string `json:"locationDesc"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	updated := h.store.UpdateSetting(c.Param("id"), store.SettingPatch{
		Environment:     req.Environment,
		EnvironmentDesc: req.EnvironmentDesc,
		Location:        req.Location,
		LocationDesc:    req.LocationDesc,
	})
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// UpdateClassification 更新分类信息
func (h *Handler) UpdateClassification(c *gin.Context) {
	var req struct {
		GenreDesc *string `json:"genreDesc"`
		Language  *string `json:"language"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	updated := h.store.UpdateClassification(c.Param("id"), store.ClassificationPatch{
		GenreDesc: req.GenreDesc,
		Language:  req.Language,
	})
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// ToggleGenre 切换激活故事的题材勾选
func (h *Handler) ToggleGenre(c *gin.Context) {
	var req struct {
		Genre string `json:"genre" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	h.store.ToggleGenre(req.Genre)
	h.respondActiveStory(c)
}

// AddCharacter 给激活故事追加空白角色
func (h *Handler) AddCharacter(c *gin.Context) {
	char, ok := h.store.AddCharacter()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有激活的故事"})
		return
	}

	c.JSON(http.StatusOK, char)
}

// UpdateCharacter 更新角色字段
func (h *Handler) UpdateCharacter(c *gin.Context) {
	var req struct {
		Name           *string `json:"name"`
		Gender         *string `json:"gender"`
		Age            *string `json:"age"`
		AgeDescription *string `json:"ageDescription"`
		Role           *string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	updated := h.store.UpdateCharacter(c.Param("id"), store.CharacterPatch{
		Name:           req.Name,
		Gender:         req.Gender,
		Age:            req.Age,
		AgeDescription: req.AgeDescription,
		Role:           req.Role,
	})
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// RemoveCharacter 删除角色，重复删除返回removed=false
func (h *Handler) RemoveCharacter(c *gin.Context) {
	removed := h.store.RemoveCharacter(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// AddDialog 给激活故事追加空白对话
func (h *Handler) AddDialog(c *gin.Context) {
	dialog, ok := h.store.AddDialog()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有激活的故事"})
		return
	}

	c.JSON(http.StatusOK, dialog)
}

// UpdateDialog 更新对话字段
func (h *Handler) UpdateDialog(c *gin.Context) {
	var req struct {
		Speaker       *string `json:"speaker"`
		Mood          *string `json:"mood"`
		BodyCondition *string `json:"bodyCondition"`
		Text          *string `json:"text"`
		Description   *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	updated := h.store.UpdateDialog(c.Param("id"), store.DialogPatch{
		Speaker:       req.Speaker,
		Mood:          req.Mood,
		BodyCondition: req.BodyCondition,
		Text:          req.Text,
		Description:   req.Description,
	})
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// RemoveDialog 删除对话
func (h *Handler) RemoveDialog(c *gin.Context) {
	removed := h.store.RemoveDialog(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// FillExample 一键填充示例章节到激活故事
func (h *Handler) FillExample(c *gin.Context) {
	if !h.store.FillExample() {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有激活的故事"})
		return
	}

	h.respondActiveStory(c)
}

// NextChapter 基于激活故事开启下一章
func (h *Handler) NextChapter(c *gin.Context) {
	story, ok := h.store.AdvanceChapter()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有激活的故事"})
		return
	}

	log.Printf("📖 [章节] 已开启第%d章, 故事: %s\n", story.ChapterNumber, story.ID)
	c.JSON(http.StatusOK, story)
}

// Generate 两步生成：剧情大纲 + 正文
func (h *Handler) Generate(c *gin.Context) {
	var req struct {
		StoryID string `json:"storyId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	// 使用自定义LLM配置（如果有）
	var (
		story *models.StoryState
		err   error
	)
	if llm := h.getCustomLLMService(c); llm != nil {
		story, err = h.storyService.GenerateUsing(c.Request.Context(), req.StoryID, llm)
	} else {
		story, err = h.storyService.Generate(c.Request.Context(), req.StoryID)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "故事不存在"})
		case errors.Is(err, services.ErrGenerationInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "该故事正在生成中，请稍候"})
		default:
			log.Printf("❌ 生成失败: %v\n", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "生成失败，请检查API配置后重试"})
		}
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *Handler) respondActiveStory(c *gin.Context) {
	story, ok := h.store.Active()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有激活的故事"})
		return
	}
	c.JSON(http.StatusOK, story)
}
