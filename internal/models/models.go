package models

// Folder 故事分组文件夹（只增不删，创建后不再修改）
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Character 章节中的角色，内嵌在 StoryState 里
type Character struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Gender         string `json:"gender"`         // 取自预设性别列表，也允许自定义
	Age            string `json:"age"`            // 自由文本，如 "19" 或 "青年"
	AgeDescription string `json:"ageDescription"` // 外貌与性格描述
	Role           string `json:"role"`           // Protagonist / Antagonist 等
}

// DialogItem 关键对话条目
// speaker 是选择时角色名字的快照，角色改名不会回写到已有对话
type DialogItem struct {
	ID            string `json:"id"`
	Speaker       string `json:"speaker"`
	Mood          string `json:"mood"`          // 说话时的情绪
	BodyCondition string `json:"bodyCondition"` // 说话时的身体状态
	Text          string `json:"text"`
	Description   string `json:"description"` // 对话发生时的场景补充
}

// StoryState 一个章节草稿（聚合根）
type StoryState struct {
	ID       string `json:"id"`
	FolderID string `json:"folderId"`

	MainTitle     string `json:"mainTitle"`
	ChapterTitle  string `json:"chapterTitle"`
	ChapterNumber int    `json:"chapterNumber"` // 从1开始

	// 场景设定
	Environment     string `json:"environment"`
	EnvironmentDesc string `json:"environmentDesc"`
	Location        string `json:"location"`
	LocationDesc    string `json:"locationDesc"`

	// 分类信息
	Genres    []string `json:"genres"` // 集合语义，保持点选顺序
	GenreDesc string   `json:"genreDesc"`
	Language  string   `json:"language"`

	// 内容
	Characters []Character  `json:"characters"`
	Dialogs    []DialogItem `json:"dialogs"`

	// AI生成结果：两者都为nil=未生成，仅大纲=PlotReady，两者都有=Complete
	GeneratedJSON    *string `json:"generatedJson"`
	GeneratedContent *string `json:"generatedContent"`
}

// HasGenre 判断故事是否已选中某个题材
func (s *StoryState) HasGenre(genre string) bool {
	for _, g := range s.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Clone 返回故事的深拷贝，切片和指针不与原值共享
// 空切片保持非nil，序列化成JSON时始终是数组而不是null
func (s StoryState) Clone() StoryState {
	c := s
	c.Genres = append(make([]string, 0, len(s.Genres)), s.Genres...)
	c.Characters = append(make([]Character, 0, len(s.Characters)), s.Characters...)
	c.Dialogs = append(make([]DialogItem, 0, len(s.Dialogs)), s.Dialogs...)
	if s.GeneratedJSON != nil {
		v := *s.GeneratedJSON
		c.GeneratedJSON = &v
	}
	if s.GeneratedContent != nil {
		v := *s.GeneratedContent
		c.GeneratedContent = &v
	}
	return c
}

// Config 配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key"`
	APIBase     string  `yaml:"api_base"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}
