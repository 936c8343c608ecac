package api

import "github.com/gin-gonic/gin"

// RegisterRoutes 挂载全部API路由
func RegisterRoutes(r *gin.Engine, h *Handler) {
	apiGroup := r.Group("/api")
	{
		// 预设选项
		apiGroup.GET("/options", h.GetOptions)

		// 文件夹
		apiGroup.GET("/folders", h.ListFolders)
		apiGroup.POST("/folders", h.AddFolder)

		// 故事
		apiGroup.GET("/stories", h.ListStories)
		apiGroup.POST("/stories", h.CreateStory)
		apiGroup.GET("/stories/:id", h.GetStory)
		apiGroup.POST("/stories/active", h.SetActiveStory)
		apiGroup.PUT("/stories/:id/info", h.UpdateInfo)
		apiGroup.PUT("/stories/:id/setting", h.UpdateSetting)
		apiGroup.PUT("/stories/:id/classification", h.UpdateClassification)
		apiGroup.POST("/stories/genres/toggle", h.ToggleGenre)
		apiGroup.POST("/stories/example", h.FillExample)
		apiGroup.POST("/stories/next-chapter", h.NextChapter)
		apiGroup.POST("/stories/generate", h.Generate)

		// 角色
		apiGroup.POST("/characters", h.AddCharacter)
		apiGroup.PUT("/characters/:id", h.UpdateCharacter)
		apiGroup.DELETE("/characters/:id", h.RemoveCharacter)

		// 对话
		apiGroup.POST("/dialogs", h.AddDialog)
		apiGroup.PUT("/dialogs/:id", h.UpdateDialog)
		apiGroup.DELETE("/dialogs/:id", h.RemoveDialog)
	}
}
