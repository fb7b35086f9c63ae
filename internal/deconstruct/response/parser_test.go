package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var required = []string{
	"title", "author", "genre", "rating", "oneSentenceSummary",
	"targetAudience", "mainThemes", "keyChapters", "practicalTakeaways", "criticalReview",
}

const validReply = `{
  "title": "自私的基因",
  "author": "理查德·道金斯",
  "genre": "进化生物学",
  "rating": 9,
  "oneSentenceSummary": "基因是自私的复制者，生物只是它们的生存机器。",
  "targetAudience": ["科学爱好者", "哲学读者"],
  "mainThemes": ["基因中心论", "利他行为"],
  "keyChapters": [
    {"title": "复制因子", "summary": "生命起源于能自我复制的分子。"},
    {"title": "基因机器", "summary": "生物体是基因建造的生存机器。"},
    {"title": "觅母", "summary": "文化也存在类似基因的复制单位。"}
  ],
  "practicalTakeaways": ["用进化视角理解行为"],
  "criticalReview": "观点犀利，但隐喻容易被误读。"
}`

func TestParse_Valid(t *testing.T) {
	book, err := Parse(validReply, required)
	require.NoError(t, err)

	assert.Equal(t, "自私的基因", book.Title)
	assert.Equal(t, "理查德·道金斯", book.Author)
	assert.Equal(t, 9.0, book.Rating)
	assert.Len(t, book.KeyChapters, 3)
	assert.Equal(t, "觅母", book.KeyChapters[2].Title)
	assert.Equal(t, []string{"科学爱好者", "哲学读者"}, book.TargetAudience)
}

func TestParse_RatingIsNotRangeChecked(t *testing.T) {
	reply := strings.Replace(validReply, `"rating": 9`, `"rating": 42.5`, 1)
	book, err := Parse(reply, required)
	require.NoError(t, err)
	assert.Equal(t, 42.5, book.Rating)
}

func TestParse_EmptyArraysAreValid(t *testing.T) {
	reply := `{"title":"t","author":"a","genre":"g","rating":5,"oneSentenceSummary":"s",
		"targetAudience":[],"mainThemes":[],"keyChapters":[],"practicalTakeaways":[],"criticalReview":"r"}`
	book, err := Parse(reply, required)
	require.NoError(t, err)
	assert.Empty(t, book.KeyChapters)
	assert.Empty(t, book.MainThemes)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("  \n", required)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"这本书讲的是基因",
		"```json\n" + validReply + "\n```",
		validReply + " 希望对你有帮助！",
		`{"title": "自私的基因"`,
	}
	for _, reply := range cases {
		_, err := Parse(reply, required)
		assert.ErrorIs(t, err, ErrMalformed, reply)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"array at top level": `[1,2]`,
		"missing field":      strings.Replace(validReply, `"criticalReview": "观点犀利，但隐喻容易被误读。"`, `"x": 1`, 1),
		"null field":         strings.Replace(validReply, `"author": "理查德·道金斯"`, `"author": null`, 1),
		"rating as string":   strings.Replace(validReply, `"rating": 9`, `"rating": "9"`, 1),
		"themes as string":   strings.Replace(validReply, `"mainThemes": ["基因中心论", "利他行为"]`, `"mainThemes": "基因"`, 1),
		"chapter no summary": strings.Replace(validReply, `{"title": "觅母", "summary": "文化也存在类似基因的复制单位。"}`, `{"title": "觅母"}`, 1),
		"null audience item": strings.Replace(validReply, `["科学爱好者", "哲学读者"]`, `[null]`, 1),
		"null takeaway item": strings.Replace(validReply, `["用进化视角理解行为"]`, `["用进化视角理解行为", null]`, 1),
		"chapters as object": `{"title":"t","author":"a","genre":"g","rating":5,"oneSentenceSummary":"s",
			"targetAudience":[],"mainThemes":[],"keyChapters":{"title":"x","summary":"y"},"practicalTakeaways":[],"criticalReview":"r"}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(reply, required)
			assert.Error(t, err)
			if !assert.ErrorIs(t, err, ErrSchema) {
				t.Logf("reply: %s", reply)
			}
		})
	}
}
