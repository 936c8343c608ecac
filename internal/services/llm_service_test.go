package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aiwuxian/nusacerita/internal/models"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.input))
		})
	}
}

func TestBuildStoryContext(t *testing.T) {
	story := models.ExampleStory()
	ctx := buildStoryContext(&story)

	// 标题、章节、设定、角色、对话都要进入提示词
	assert.Contains(t, ctx, "Legenda Pedang Naga")
	assert.Contains(t, ctx, "Pertemuan di Hutan Kabut")
	assert.Contains(t, ctx, "第1章")
	assert.Contains(t, ctx, "Hutan Terlarang Bagian Utara")
	assert.Contains(t, ctx, "Fantasi")
	assert.Contains(t, ctx, "Arjuna")
	assert.Contains(t, ctx, "Siapa di sana? Tunjukkan wujudmu!")
}

func TestBuildStoryContextSkipsEmptySections(t *testing.T) {
	story := models.DefaultStory()
	story.MainTitle = "Judul"
	ctx := buildStoryContext(&story)

	assert.False(t, strings.Contains(ctx, "登场角色"))
	assert.False(t, strings.Contains(ctx, "关键对话"))
}
