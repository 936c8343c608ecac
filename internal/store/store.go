package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aiwuxian/nusacerita/internal/models"
)

// Store 内存中的故事/文件夹集合与当前激活故事指针
// 所有修改都走这里的方法：先克隆再替换，不做原地修改，
// 单次操作内不会出现半写状态
type Store struct {
	mu       sync.RWMutex
	folders  []models.Folder
	stories  []models.StoryState
	activeID string
}

// 新建角色的默认定位
const defaultCharacterRole = "Pendukung"

// New 创建Store并引导初始状态：
// 默认文件夹 + 第一个文件夹下的一个空白章节（设为激活）
func New() *Store {
	s := &Store{
		folders: models.DefaultFolders(),
	}

	story := models.DefaultStory()
	story.ID = uuid.New().String()
	story.FolderID = s.folders[0].ID
	s.stories = append(s.stories, story)
	s.activeID = story.ID

	return s
}

// Folders 返回文件夹列表副本
func (s *Store) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Folder(nil), s.folders...)
}

// Stories 返回全部故事的深拷贝，保持插入顺序
func (s *Store) Stories() []models.StoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StoryState, 0, len(s.stories))
	for _, story := range s.stories {
		out = append(out, story.Clone())
	}
	return out
}

// Story 按ID获取故事
func (s *Store) Story(id string) (models.StoryState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.stories[i].Clone(), true
	}
	return models.StoryState{}, false
}

// Active 获取当前激活的故事
func (s *Store) Active() (models.StoryState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(s.activeID); i >= 0 {
		return s.stories[i].Clone(), true
	}
	return models.StoryState{}, false
}

// ActiveID 当前激活故事的ID
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SetActive 切换激活故事，ID不存在时不变
func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false
	}
	s.activeID = id
	return true
}

// AddFolder 追加新文件夹，名字为空时静默忽略
func (s *Store) AddFolder(name string) (models.Folder, bool) {
	if strings.TrimSpace(name) == "" {
		return models.Folder{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder := models.Folder{ID: uuid.New().String(), Name: name}
	s.folders = append(s.folders, folder)
	return folder, true
}

// CreateStory 在指定文件夹下用空白模板新建章节并设为激活
func (s *Store) CreateStory(folderID string) models.StoryState {
	s.mu.Lock()
	defer s.mu.Unlock()

	story := models.DefaultStory()
	story.ID = uuid.New().String()
	story.FolderID = folderID
	story.MainTitle = "Cerita Baru"

	s.stories = append(s.stories, story)
	s.activeID = story.ID
	return story.Clone()
}

// InfoPatch 标题类字段更新，nil字段不变
type InfoPatch struct {
	MainTitle     *string
	ChapterTitle  *string
	ChapterNumber *int
}

// SettingPatch 场景设定类字段更新
type SettingPatch struct {
	Environment     *string
	EnvironmentDesc *string
	Location        *string
	LocationDesc    *string
}

// ClassificationPatch 分类信息字段更新
type ClassificationPatch struct {
	GenreDesc *string
	Language  *string
}

// UpdateInfo 更新标题信息，ID不存在时集合保持不变
func (s *Store) UpdateInfo(storyID string, patch InfoPatch) bool {
	return s.mutate(storyID, func(story *models.StoryState) {
		if patch.MainTitle != nil {
			story.MainTitle = *patch.MainTitle
		}
		if patch.ChapterTitle != nil {
			story.ChapterTitle = *patch.ChapterTitle
		}
		if patch.ChapterNumber != nil {
			story.ChapterNumber = *patch.ChapterNumber
		}
	})
}

// UpdateSetting 更新场景设定
func (s *Store) UpdateSetting(storyID string, patch SettingPatch) bool {
	return s.mutate(storyID, func(story *models.StoryState) {
		if patch.Environment != nil {
			story.Environment = *patch.Environment
		}
		if patch.EnvironmentDesc != nil {
			story.EnvironmentDesc = *patch.EnvironmentDesc
		}
		if patch.Location != nil {
			story.Location = *patch.Location
		}
		if patch.LocationDesc != nil {
			story.LocationDesc = *patch.LocationDesc
		}
	})
}

// UpdateClassification 更新分类信息
func (s *Store) UpdateClassification(storyID string, patch ClassificationPatch) bool {
	return s.mutate(storyID, func(story *models.StoryState) {
		if patch.GenreDesc != nil {
			story.GenreDesc = *patch.GenreDesc
		}
		if patch.Language != nil {
			story.Language = *patch.Language
		}
	})
}

// CharacterPatch 角色字段更新
type CharacterPatch struct {
	Name           *string
	Gender         *string
	Age            *string
	AgeDescription *string
	Role           *string
}

// DialogPatch 对话字段更新
type DialogPatch struct {
	Speaker       *string
	Mood          *string
	BodyCondition *string
	Text          *string
	Description   *string
}

// AddCharacter 给激活故事追加空白角色
// 性别默认取预设列表第一项，定位默认为配角
func (s *Store) AddCharacter() (models.Character, bool) {
	char := models.Character{
		ID:     uuid.New().String(),
		Gender: models.Genders[0],
		Role:   defaultCharacterRole,
	}

	ok := s.mutateActive(func(story *models.StoryState) {
		story.Characters = append(story.Characters, char)
	})
	if !ok {
		return models.Character{}, false
	}
	return char, true
}

// UpdateCharacter 更新激活故事中的角色
// 改名不会回写到已引用该名字的对话（speaker是历史快照）
func (s *Store) UpdateCharacter(id string, patch CharacterPatch) bool {
	found := false
	s.mutateActive(func(story *models.StoryState) {
		for i := range story.Characters {
			if story.Characters[i].ID != id {
				continue
			}
			c := &story.Characters[i]
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Gender != nil {
				c.Gender = *patch.Gender
			}
			if patch.Age != nil {
				c.Age = *patch.Age
			}
			if patch.AgeDescription != nil {
				c.AgeDescription = *patch.AgeDescription
			}
			if patch.Role != nil {
				c.Role = *patch.Role
			}
			found = true
			return
		}
	})
	return found
}

// RemoveCharacter 删除激活故事中的角色，重复删除是无害的空操作
func (s *Store) RemoveCharacter(id string) bool {
	found := false
	s.mutateActive(func(story *models.StoryState) {
		kept := story.Characters[:0]
		for _, c := range story.Characters {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		story.Characters = kept
	})
	return found
}

// AddDialog 给激活故事追加空白对话
// speaker默认取第一个角色的名字，没有角色时为空串，之后可改
func (s *Store) AddDialog() (models.DialogItem, bool) {
	var dialog models.DialogItem
	ok := s.mutateActive(func(story *models.StoryState) {
		dialog = models.DialogItem{ID: uuid.New().String()}
		if len(story.Characters) > 0 {
			dialog.Speaker = story.Characters[0].Name
		}
		story.Dialogs = append(story.Dialogs, dialog)
	})
	if !ok {
		return models.DialogItem{}, false
	}
	return dialog, true
}

// UpdateDialog 更新激活故事中的对话
func (s *Store) UpdateDialog(id string, patch DialogPatch) bool {
	found := false
	s.mutateActive(func(story *models.StoryState) {
		for i := range story.Dialogs {
			if story.Dialogs[i].ID != id {
				continue
			}
			d := &story.Dialogs[i]
			if patch.Speaker != nil {
				d.Speaker = *patch.Speaker
			}
			if patch.Mood != nil {
				d.Mood = *patch.Mood
			}
			if patch.BodyCondition != nil {
				d.BodyCondition = *patch.BodyCondition
			}
			if patch.Text != nil {
				d.Text = *patch.Text
			}
			if patch.Description != nil {
				d.Description = *patch.Description
			}
			found = true
			return
		}
	})
	return found
}

// RemoveDialog 删除激活故事中的对话，重复删除是无害的空操作
func (s *Store) RemoveDialog(id string) bool {
	found := false
	s.mutateActive(func(story *models.StoryState) {
		kept := story.Dialogs[:0]
		for _, d := range story.Dialogs {
			if d.ID == id {
				found = true
				continue
			}
			kept = append(kept, d)
		}
		story.Dialogs = kept
	})
	return found
}

// ToggleGenre 切换激活故事的题材：已选中则移除，未选中则追加
func (s *Store) ToggleGenre(genre string) bool {
	return s.mutateActive(func(story *models.StoryState) {
		for i, g := range story.Genres {
			if g == genre {
				story.Genres = append(story.Genres[:i], story.Genres[i+1:]...)
				return
			}
		}
		story.Genres = append(story.Genres, genre)
	})
}

// FillExample 把示例章节浅合并进激活故事
// 保留目标的 ID/FolderID 和已有生成结果，其余字段全部覆盖
func (s *Store) FillExample() bool {
	return s.mutateActive(func(story *models.StoryState) {
		example := models.ExampleStory()
		example.ID = story.ID
		example.FolderID = story.FolderID
		example.GeneratedJSON = story.GeneratedJSON
		example.GeneratedContent = story.GeneratedContent
		*story = example
	})
}

// AdvanceChapter 基于激活故事开启下一章：
// 新故事继承标题、角色、设定、题材、语言等上下文，
// 重置章节标题、对话和生成结果，章节号+1，原故事不动
func (s *Store) AdvanceChapter() (models.StoryState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(s.activeID)
	if i < 0 {
		return models.StoryState{}, false
	}

	next := s.stories[i].Clone()
	next.ID = uuid.New().String()
	next.ChapterNumber++
	next.ChapterTitle = ""
	next.Dialogs = []models.DialogItem{}
	next.GeneratedJSON = nil
	next.GeneratedContent = nil

	s.stories = append(s.stories, next)
	s.activeID = next.ID
	return next.Clone(), true
}

// SetPlot 写入剧情大纲JSON
// 调用方传入的是生成开始时捕获的故事ID，而不是当前激活ID
func (s *Store) SetPlot(storyID, plotJSON string) bool {
	return s.mutate(storyID, func(story *models.StoryState) {
		story.GeneratedJSON = &plotJSON
	})
}

// SetNarrative 写入正文
func (s *Store) SetNarrative(storyID, narrative string) bool {
	return s.mutate(storyID, func(story *models.StoryState) {
		story.GeneratedContent = &narrative
	})
}

// indexOf 在持锁状态下查找故事下标，找不到返回-1
func (s *Store) indexOf(id string) int {
	for i := range s.stories {
		if s.stories[i].ID == id {
			return i
		}
	}
	return -1
}

// mutate 克隆目标故事、应用变更、整体替换
// ID不存在时返回false且集合原样不动
func (s *Store) mutate(storyID string, fn func(*models.StoryState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(storyID, fn)
}

// mutateActive 对激活故事应用变更
func (s *Store) mutateActive(fn func(*models.StoryState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(s.activeID, fn)
}

func (s *Store) mutateLocked(storyID string, fn func(*models.StoryState)) bool {
	i := s.indexOf(storyID)
	if i < 0 {
		return false
	}

	next := s.stories[i].Clone()
	fn(&next)
	s.stories[i] = next
	return true
}
