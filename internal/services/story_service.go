package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/aiwuxian/nusacerita/internal/models"
	"github.com/aiwuxian/nusacerita/internal/store"
)

// Generator 生成网关，两步调用：先大纲后正文
type Generator interface {
	GeneratePlot(ctx context.Context, story *models.StoryState) (string, error)
	GenerateNarrative(ctx context.Context, story *models.StoryState, plotJSON string) (string, error)
}

var (
	// ErrStoryNotFound 目标故事不存在
	ErrStoryNotFound = errors.New("故事不存在")
	// ErrGenerationInFlight 同一故事的生成尚未结束
	ErrGenerationInFlight = errors.New("该故事正在生成中")
)

// StoryService 串联Store和生成网关的编排层
type StoryService struct {
	store *store.Store
	llm   Generator

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewStoryService(store *store.Store, llm Generator) *StoryService {
	return &StoryService{
		store:    store,
		llm:      llm,
		inFlight: make(map[string]bool),
	}
}

// Store 返回底层Store（用于处理器直接执行编辑操作）
func (ss *StoryService) Store() *store.Store {
	return ss.store
}

// Generate 用默认网关执行两步生成
func (ss *StoryService) Generate(ctx context.Context, storyID string) (*models.StoryState, error) {
	return ss.GenerateUsing(ctx, storyID, ss.llm)
}

// GenerateUsing 对指定故事执行两步生成：
// 先生成剧情大纲写入，再基于大纲生成正文写入。
// 故事ID在开始时捕获，期间用户切换激活故事不影响写入目标。
// 大纲写入成功后正文失败时，大纲不回滚。
func (ss *StoryService) GenerateUsing(ctx context.Context, storyID string, llm Generator) (*models.StoryState, error) {
	// 捕获快照，两步调用都基于同一份输入
	snapshot, ok := ss.store.Story(storyID)
	if !ok {
		return nil, ErrStoryNotFound
	}

	if !ss.begin(snapshot.ID) {
		return nil, ErrGenerationInFlight
	}
	defer ss.end(snapshot.ID)

	log.Printf("✨ [生成] 开始生成剧情大纲, 故事: %s (第%d章)\n", snapshot.ID, snapshot.ChapterNumber)

	plotJSON, err := llm.GeneratePlot(ctx, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("生成剧情大纲失败: %w", err)
	}
	ss.store.SetPlot(snapshot.ID, plotJSON)

	log.Printf("✨ [生成] 大纲完成, 开始生成正文, 故事: %s\n", snapshot.ID)

	narrative, err := llm.GenerateNarrative(ctx, &snapshot, plotJSON)
	if err != nil {
		return nil, fmt.Errorf("生成正文失败: %w", err)
	}
	ss.store.SetNarrative(snapshot.ID, narrative)

	log.Printf("✅ [生成] 完成, 故事: %s\n", snapshot.ID)

	result, ok := ss.store.Story(snapshot.ID)
	if !ok {
		return nil, ErrStoryNotFound
	}
	return &result, nil
}

// InFlight 查询某个故事是否正在生成（用于前端禁用按钮）
func (ss *StoryService) InFlight(storyID string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.inFlight[storyID]
}

func (ss *StoryService) begin(storyID string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.inFlight[storyID] {
		return false
	}
	ss.inFlight[storyID] = true
	return true
}

func (ss *StoryService) end(storyID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.inFlight, storyID)
}
