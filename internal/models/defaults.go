package models

// DefaultFolders 初始文件夹列表，保证引导创建的故事总有合法的folderId
func DefaultFolders() []Folder {
	return []Folder{
		{ID: "f1", Name: "Novel Fantasi 2024"},
		{ID: "f2", Name: "Ide Konten YouTube"},
	}
}

// DefaultStory 空白章节模板（不含ID和folderId，由Store创建时填入）
func DefaultStory() StoryState {
	return StoryState{
		ChapterNumber: 1,
		Location:      "Default",
		Language:      "Bahasa Indonesia",
		Genres:        []string{},
		Characters:    []Character{},
		Dialogs:       []DialogItem{},
	}
}

// ExampleStory 示例章节，用于一键填充演示数据
// 不包含 ID/FolderID/生成结果，填充时这些字段保留目标故事原值
func ExampleStory() StoryState {
	return StoryState{
		MainTitle:       "Legenda Pedang Naga",
		ChapterTitle:    "Pertemuan di Hutan Kabut",
		ChapterNumber:   1,
		Environment:     "Hutan lebat dengan kabut tebal yang membatasi jarak pandang.",
		EnvironmentDesc: "Suasana mencekam, suara burung hantu terdengar samar. Cahaya matahari sulit menembus kanopi pohon.",
		Location:        "Hutan Terlarang Bagian Utara",
		LocationDesc:    "Area yang jarang dijamah manusia, konon tempat tinggal roh kuno.",
		Genres:          []string{"Fantasi", "Petualangan", "Misteri"},
		GenreDesc:       "Fokus pada pengembangan karakter dan world-building magis.",
		Language:        "Bahasa Indonesia",
		Characters: []Character{
			{
				ID:             "c1",
				Name:           "Arjuna",
				Gender:         "Laki-laki",
				Age:            "19",
				AgeDescription: "Wajah muda namun penuh luka gores, tatapan mata tajam.",
				Role:           "Protagonist",
			},
		},
		Dialogs: []DialogItem{
			{
				ID:            "d1",
				Speaker:       "Arjuna",
				Mood:          "Waspada",
				BodyCondition: "Nafas terengah-engah, memegang gagang pedang erat",
				Text:          "Siapa di sana? Tunjukkan wujudmu!",
				Description:   "Arjuna mendengar suara ranting patah di belakangnya.",
			},
		},
	}
}
