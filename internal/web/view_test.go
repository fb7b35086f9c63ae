package web

import (
	"bytes"
	"strings"
	"testing"

	"book-deconstructor/internal/app"
	"book-deconstructor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, snap app.Snapshot) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, PageTemplate, NewPage(snap)))
	return buf.String()
}

func selfishGene() *model.BookDeconstruction {
	return &model.BookDeconstruction{
		Title:              "自私的基因",
		Author:             "理查德·道金斯",
		Genre:              "进化生物学",
		Rating:             8.5,
		OneSentenceSummary: "基因是自私的复制者。",
		TargetAudience:     []string{"科普爱好者"},
		MainThemes:         []string{"基因中心论", "觅母"},
		KeyChapters: []model.Chapter{
			{Title: "复制因子", Summary: "生命起源于复制分子。"},
			{Title: "基因机器", Summary: "生物是生存机器。"},
			{Title: "觅母", Summary: "文化的复制单位。"},
		},
		PracticalTakeaways: []string{"用进化视角理解行为"},
		CriticalReview:     "隐喻有力但易被误读。",
	}
}

func TestNewCard_NumbersChaptersFromOne(t *testing.T) {
	card := NewCard(selfishGene())

	require.Len(t, card.Chapters, 3)
	assert.Equal(t, 3, card.ChapterCount)
	for i, ch := range card.Chapters {
		assert.Equal(t, i+1, ch.Number)
	}
	assert.Equal(t, "8.5", card.Rating)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "9", FormatRating(9))
	assert.Equal(t, "7.25", FormatRating(7.25))
}

func TestRender_Idle(t *testing.T) {
	html := render(t, app.Snapshot{Status: model.StatusIdle})

	assert.Contains(t, html, "输入书名")
	assert.NotContains(t, html, "最近搜过")
	assert.NotContains(t, html, `http-equiv="refresh"`)
	assert.NotContains(t, html, " disabled")
}

func TestRender_Loading(t *testing.T) {
	html := render(t, app.Snapshot{Status: model.StatusLoading, Input: "自私的基因"})

	assert.Contains(t, html, "正在为你深度阅读并拆解中...")
	assert.Contains(t, html, `http-equiv="refresh"`)
	assert.Contains(t, html, `<button type="submit" disabled>立即拆解</button>`)
	assert.Contains(t, html, `value="自私的基因"`)
}

func TestRender_Error(t *testing.T) {
	html := render(t, app.Snapshot{
		Status:       model.StatusError,
		ErrorMessage: app.FallbackErrorMessage,
		Result:       selfishGene(),
	})

	assert.Contains(t, html, "拆解遇到麻烦")
	assert.Contains(t, html, app.FallbackErrorMessage)
	assert.Contains(t, html, `action="/retry"`)
	assert.NotContains(t, html, "深度透视", "stale result must not be shown")
}

func TestRender_Success(t *testing.T) {
	html := render(t, app.Snapshot{
		Status:  model.StatusSuccess,
		Result:  selfishGene(),
		History: []string{"自私的基因", "人类简史"},
	})

	assert.Contains(t, html, "<h1>自私的基因</h1>")
	assert.Contains(t, html, "作者：理查德·道金斯")
	assert.Contains(t, html, "8.5/10")
	assert.Contains(t, html, "#基因中心论")
	assert.Contains(t, html, "共 3 个核心板块")
	assert.Contains(t, html, `<span class="num">3</span>`)
	assert.Contains(t, html, "隐喻有力但易被误读。")
	assert.Equal(t, 3, strings.Count(html, `class="chapter"`))

	assert.Contains(t, html, "最近搜过")
	assert.Contains(t, html, `action="/history/0"`)
	assert.Contains(t, html, `action="/history/1"`)
	assert.Contains(t, html, `<input type="hidden" name="title" value="人类简史">`)
}

func TestRender_EmptyArrays(t *testing.T) {
	html := render(t, app.Snapshot{
		Status: model.StatusSuccess,
		Result: &model.BookDeconstruction{Title: "空书", Rating: 1},
	})

	assert.Contains(t, html, "<h1>空书</h1>")
	assert.Contains(t, html, "共 0 个核心板块")
	assert.NotContains(t, html, `class="chapter"`)
	assert.NotContains(t, html, `class="tag"`)
}

func TestRender_EscapesModelOutput(t *testing.T) {
	b := selfishGene()
	b.Title = `<script>alert(1)</script>`
	html := render(t, app.Snapshot{Status: model.StatusSuccess, Result: b})

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
