package deconstruct

import "google.golang.org/genai"

// RequiredFields lists the record fields the model must always return
var RequiredFields = []string{
	"title", "author", "genre", "rating", "oneSentenceSummary",
	"targetAudience", "mainThemes", "keyChapters", "practicalTakeaways", "criticalReview",
}

func stringArray(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

// BookSchema describes the BookDeconstruction object for Gemini's structured output
func BookSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":              {Type: genai.TypeString, Description: "书籍名称"},
			"author":             {Type: genai.TypeString, Description: "作者姓名"},
			"genre":              {Type: genai.TypeString, Description: "书籍类别（如：心理学、创业、文学等）"},
			"rating":             {Type: genai.TypeNumber, Description: "推荐指数 (1-10)"},
			"oneSentenceSummary": {Type: genai.TypeString, Description: "一句话精华总结"},
			"targetAudience":     stringArray("推荐阅读人群"),
			"mainThemes":         stringArray("核心主题或关键词"),
			"keyChapters": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":   {Type: genai.TypeString, Description: "章节或模块标题"},
						"summary": {Type: genai.TypeString, Description: "核心内容摘要"},
					},
					Required: []string{"title", "summary"},
				},
				Description: "重点章节拆解（选取最具价值的3-5个部分）",
			},
			"practicalTakeaways": stringArray("对读者的实际应用建议或行动指南"),
			"criticalReview":     {Type: genai.TypeString, Description: "书籍的优缺点评价或深度洞察"},
		},
		Required: RequiredFields,
	}
}
