package tui

import (
	"fmt"
	"strings"

	"book-deconstructor/internal/model"
	"book-deconstructor/internal/web"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var idleSteps = []struct{ title, body string }{
	{"1 · 输入书名", "无论是经典名著、商业圣经还是心理学杰作，只要存在，我们就能拆解。"},
	{"2 · AI 深度学习", "Gemini 会迅速扫描并分析书籍核心，提取最具有行动价值的知识点。"},
	{"3 · 获得精华卡片", "一份精美的、结构化的阅读报告将呈现在您面前，助您在几分钟内读完一本书。"},
}

// View renders the current snapshot.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderInput())
	if len(m.snap.History) > 0 {
		sections = append(sections, m.renderHistory())
	}
	sections = append(sections, DividerStyle.Render(strings.Repeat("─", m.width)))

	lines := m.contentLines()
	end := min(len(lines), m.scroll+m.contentHeight())
	start := min(m.scroll, end)
	sections = append(sections, strings.Join(lines[start:end], "\n"))

	sections = append(sections, DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.notice != "" {
		sections = append(sections, NoticeStyle.Render(m.notice))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	return TitleStyle.Render("书籍拆解") + SubtitleStyle.Render("  每一本书都值得深度拆解")
}

func (m Model) renderInput() string {
	line := PromptStyle.Render("书名 › ")
	if m.snap.Input == "" && m.focus != FocusInput {
		line += DimStyle.Render("输入书籍名称，例如：自私的基因...")
	} else {
		line += m.snap.Input
	}
	if m.focus == FocusInput {
		line += CursorStyle.Render("█")
	}
	if m.snap.Loading() {
		line += DimStyle.Render("  (拆解中)")
	}
	return line
}

func (m Model) renderHistory() string {
	chips := make([]string, len(m.snap.History))
	for i, entry := range m.snap.History {
		if m.focus == FocusHistory && i == m.selected {
			chips[i] = SelectedChipStyle.Render(entry)
		} else {
			chips[i] = ChipStyle.Render(entry)
		}
	}
	return DimStyle.Render("最近搜过  ") + strings.Join(chips, DimStyle.Render(" · "))
}

// fixedRows counts the rows View draws around the content area.
func (m Model) fixedRows() int {
	rows := 5 // header, input, two dividers, footer
	if len(m.snap.History) > 0 {
		rows++
	}
	if m.notice != "" {
		rows++
	}
	return rows
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return len(m.contentLines())
	}
	return max(3, m.height-m.fixedRows())
}

func (m Model) maxScroll() int {
	return max(0, len(m.contentLines())-m.contentHeight())
}

func (m Model) contentLines() []string {
	switch m.snap.Status {
	case model.StatusLoading:
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		return []string{
			"",
			SpinnerStyle.Render(frame) + " 正在为你深度阅读并拆解中...",
			DimStyle.Render("AI 正在分析全书结构、核心观点与实践价值"),
		}

	case model.StatusError:
		lines := []string{"", ErrorStyle.Render("拆解遇到麻烦")}
		for _, l := range wrapText(m.snap.ErrorMessage, m.width) {
			lines = append(lines, ErrorTextStyle.Render(l))
		}
		return append(lines, "", FooterKeyStyle.Render("ctrl+r")+FooterDescStyle.Render(" 重试一次"))

	case model.StatusSuccess:
		if m.snap.Result != nil {
			return RenderCard(web.NewCard(m.snap.Result), m.width)
		}
	}

	var lines []string
	for _, step := range idleSteps {
		lines = append(lines, "", SectionStyle.Render(step.title))
		for _, l := range wrapText(step.body, m.width) {
			lines = append(lines, DimStyle.Render(l))
		}
	}
	return lines
}

// RenderCard lays out a result card as terminal lines no wider than width.
// Empty lists render no items.
func RenderCard(card *web.CardView, width int) []string {
	var lines []string
	add := func(style lipgloss.Style, prefix, text string) {
		indent := strings.Repeat(" ", lipgloss.Width(prefix))
		for i, l := range wrapText(text, width-lipgloss.Width(prefix)) {
			if i == 0 {
				lines = append(lines, prefix+style.Render(l))
			} else {
				lines = append(lines, indent+style.Render(l))
			}
		}
	}
	section := func(title string) {
		lines = append(lines, "", SectionStyle.Render(title))
	}

	lines = append(lines, GenreStyle.Render(card.Genre)+"  "+NumberStyle.Render(card.Rating)+DimStyle.Render("/10"))
	lines = append(lines, BannerStyle.Render(card.Title))
	lines = append(lines, "作者："+card.Author)
	lines = append(lines, "", DimStyle.Render("一句话精华"))
	add(lipgloss.NewStyle(), "", card.Summary)

	section("核心主题")
	if len(card.Themes) > 0 {
		tags := make([]string, len(card.Themes))
		for i, theme := range card.Themes {
			tags[i] = TagStyle.Render("#" + theme)
		}
		lines = append(lines, strings.Join(tags, "  "))
	}

	section("推荐读众")
	for _, a := range card.Audience {
		add(lipgloss.NewStyle(), "• ", a)
	}

	section(fmt.Sprintf("深度拆解 · 共 %d 个核心板块", card.ChapterCount))
	for _, ch := range card.Chapters {
		prefix := fmt.Sprintf("%d. ", ch.Number)
		lines = append(lines, NumberStyle.Render(prefix)+ch.Title)
		add(DimStyle, strings.Repeat(" ", len(prefix)), ch.Summary)
	}

	section("行动指南：你可以学到什么？")
	for _, t := range card.Takeaways {
		add(lipgloss.NewStyle(), "✓ ", t)
	}

	section("深度透视")
	if card.Review != "" {
		quote := QuoteStyle.Render(strings.Join(wrapText(card.Review, width-2), "\n"))
		lines = append(lines, strings.Split(quote, "\n")...)
	}

	return lines
}

func (m Model) renderFooter() string {
	var parts []string

	parts = append(parts, FooterKeyStyle.Render("Enter")+FooterDescStyle.Render(" 拆解"))
	if len(m.snap.History) > 0 {
		parts = append(parts, FooterKeyStyle.Render("Tab")+FooterDescStyle.Render(" 历史"))
	}
	if m.snap.Status == model.StatusError {
		parts = append(parts, FooterKeyStyle.Render("ctrl+r")+FooterDescStyle.Render(" 重试"))
	}
	parts = append(parts, FooterKeyStyle.Render("↑↓")+FooterDescStyle.Render(" 滚动"))
	parts = append(parts, FooterKeyStyle.Render("esc")+FooterDescStyle.Render(" 退出"))

	return strings.Join(parts, "  ")
}

// wrapText breaks text into lines of at most width display cells.
// CJK text has no spaces, so breaks fall between characters.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current strings.Builder
		cells := 0
		for _, r := range paragraph {
			w := lipgloss.Width(string(r))
			if cells+w > width && cells > 0 {
				lines = append(lines, current.String())
				current.Reset()
				cells = 0
			}
			current.WriteRune(r)
			cells += w
		}
		lines = append(lines, current.String())
	}
	return lines
}
