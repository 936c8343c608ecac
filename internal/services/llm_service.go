package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aiwuxian/nusacerita/internal/models"
)

// LLMService 对接OpenAI兼容接口的生成网关
type LLMService struct {
	client *openai.Client
	config models.LLMConfig
}

func NewLLMService(config models.LLMConfig) *LLMService {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.APIBase != "" {
		clientConfig.BaseURL = config.APIBase
	}

	return &LLMService{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// GeneratePlot 根据章节草稿生成JSON格式的剧情大纲
func (ls *LLMService) GeneratePlot(ctx context.Context, story *models.StoryState) (string, error) {
	systemPrompt := "你是一位小说剧情策划。根据用户提供的章节设定输出一份剧情大纲，" +
		"必须是合法的JSON对象，包含 synopsis（本章梗概）、scenes（场景数组，每个场景含 " +
		"title、setting、events、character_moments）、hook（结尾悬念）。" +
		"只输出JSON本身，不要任何解释文字。"

	userPrompt := fmt.Sprintf("%s\n\n大纲内容请使用这门语言书写：%s", buildStoryContext(story), story.Language)

	raw, err := ls.chat(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	return stripCodeFence(raw), nil
}

// GenerateNarrative 根据草稿和剧情大纲生成正文
func (ls *LLMService) GenerateNarrative(ctx context.Context, story *models.StoryState, plotJSON string) (string, error) {
	systemPrompt := "你是一位小说作者。根据章节设定和给定的剧情大纲写出本章正文，" +
		"保持对话条目的原意和语气，正文用自然段落呈现，不要输出大纲或标题以外的元信息。"

	userPrompt := fmt.Sprintf("%s\n\n剧情大纲（JSON）：\n%s\n\n正文请使用这门语言书写：%s",
		buildStoryContext(story), plotJSON, story.Language)

	return ls.chat(ctx, systemPrompt, userPrompt)
}

func (ls *LLMService) chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := ls.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       ls.config.Model,
		Temperature: ls.config.Temperature,
		MaxTokens:   ls.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("调用LLM失败: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM返回结果为空")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildStoryContext 把章节草稿拼成两步生成共用的上下文描述
func buildStoryContext(story *models.StoryState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "作品标题：%s\n", story.MainTitle)
	fmt.Fprintf(&b, "第%d章：%s\n", story.ChapterNumber, story.ChapterTitle)

	if len(story.Genres) > 0 {
		fmt.Fprintf(&b, "题材：%s\n", strings.Join(story.Genres, "、"))
	}
	if story.GenreDesc != "" {
		fmt.Fprintf(&b, "题材补充：%s\n", story.GenreDesc)
	}

	fmt.Fprintf(&b, "环境：%s\n", story.Environment)
	if story.EnvironmentDesc != "" {
		fmt.Fprintf(&b, "环境细节：%s\n", story.EnvironmentDesc)
	}
	fmt.Fprintf(&b, "地点：%s\n", story.Location)
	if story.LocationDesc != "" {
		fmt.Fprintf(&b, "地点细节：%s\n", story.LocationDesc)
	}

	if len(story.Characters) > 0 {
		b.WriteString("\n登场角色：\n")
		for _, c := range story.Characters {
			fmt.Fprintf(&b, "- %s（%s，%s岁，%s）：%s\n",
				c.Name, c.Gender, c.Age, c.Role, c.AgeDescription)
		}
	}

	if len(story.Dialogs) > 0 {
		b.WriteString("\n关键对话（按发生顺序）：\n")
		for _, d := range story.Dialogs {
			fmt.Fprintf(&b, "- %s（情绪：%s，状态：%s）说：“%s”", d.Speaker, d.Mood, d.BodyCondition, d.Text)
			if d.Description != "" {
				fmt.Fprintf(&b, " —— %s", d.Description)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// stripCodeFence 去掉模型习惯性包裹的markdown代码块标记
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
