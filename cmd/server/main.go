package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/aiwuxian/nusacerita/internal/api"
	"github.com/aiwuxian/nusacerita/internal/models"
	"github.com/aiwuxian/nusacerita/internal/services"
	"github.com/aiwuxian/nusacerita/internal/store"
)

func main() {
	// 加载配置
	config, err := loadConfig("config.yml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化内存Store（带引导数据：默认文件夹 + 一个空白章节）
	st := store.New()

	// 初始化服务
	llmService := services.NewLLMService(config.LLM)
	storyService := services.NewStoryService(st, llmService)

	// 初始化API处理器
	handler := api.NewHandler(st, storyService)

	// 设置Gin路由
	r := gin.Default()

	// 本地前端开发跨域
	r.Use(cors.Default())

	// 静态文件
	r.Static("/web", "./web")
	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/web/index.html")
	})

	// API路由
	api.RegisterRoutes(r, handler)

	// 启动服务器
	addr := fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)
	log.Printf("✍️  NusaCerita 启动成功！访问 http://localhost:%s", config.Server.Port)
	log.Printf("📖 开始编写你的章节草稿...")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}

func loadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
