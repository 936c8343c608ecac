package models

// 预设选项列表，只用于驱动前端下拉/勾选，不做校验：
// 用户在描述字段里写预设之外的值是允许的

// Genders 性别预设
var Genders = []string{
	"Laki-laki", "Perempuan", "Non-Binary", "Robot/AI", "Makhluk Mitos", "Lainnya",
}

// Genres 题材预设
var Genres = []string{
	"Fantasi", "Sci-Fi", "Romance", "Horor", "Misteri", "Thriller",
	"Sejarah", "Komedi", "Drama", "Petualangan", "Isekai", "Slice of Life",
	"Cyberpunk", "Steampunk", "Dystopian",
}

// Languages 输出语言预设
var Languages = []string{
	"Bahasa Indonesia", "English (US)", "English (UK)", "Jawa", "Sunda",
	"Japanese", "Korean", "Mandarin", "Spanish", "French", "German", "Russian",
}
