// Package web renders controller snapshots as HTML pages.
package web

import (
	"embed"
	"html/template"
	"strconv"

	"book-deconstructor/internal/app"
	"book-deconstructor/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the single page template
const PageTemplate = "page.html"

// LoadingRefreshSeconds is how often the loading page polls for the outcome
const LoadingRefreshSeconds = 2

// ChapterView is one numbered chapter entry
type ChapterView struct {
	Number  int
	Title   string
	Summary string
}

// CardView is the result card for a BookDeconstruction
type CardView struct {
	Title        string
	Author       string
	Genre        string
	Rating       string
	Summary      string
	Themes       []string
	Audience     []string
	Chapters     []ChapterView
	ChapterCount int
	Takeaways    []string
	Review       string
}

// HistoryChip is one clickable past search
type HistoryChip struct {
	Index int
	Title string
}

// PageData is everything page.html needs
type PageData struct {
	Status         model.Status
	Input          string
	ErrorMessage   string
	Loading        bool
	History        []HistoryChip
	Card           *CardView
	RefreshSeconds int
}

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// NewPage builds the page view for a snapshot
func NewPage(snap app.Snapshot) PageData {
	page := PageData{
		Status:       snap.Status,
		Input:        snap.Input,
		ErrorMessage: snap.ErrorMessage,
		Loading:      snap.Loading(),
	}
	for i, h := range snap.History {
		page.History = append(page.History, HistoryChip{Index: i, Title: h})
	}
	if page.Loading {
		page.RefreshSeconds = LoadingRefreshSeconds
	}
	if snap.Status == model.StatusSuccess && snap.Result != nil {
		page.Card = NewCard(snap.Result)
	}
	return page
}

// NewCard flattens a record into display fields. Chapters are numbered from 1.
func NewCard(b *model.BookDeconstruction) *CardView {
	card := &CardView{
		Title:        b.Title,
		Author:       b.Author,
		Genre:        b.Genre,
		Rating:       FormatRating(b.Rating),
		Summary:      b.OneSentenceSummary,
		Themes:       b.MainThemes,
		Audience:     b.TargetAudience,
		ChapterCount: len(b.KeyChapters),
		Takeaways:    b.PracticalTakeaways,
		Review:       b.CriticalReview,
	}
	for i, ch := range b.KeyChapters {
		card.Chapters = append(card.Chapters, ChapterView{
			Number:  i + 1,
			Title:   ch.Title,
			Summary: ch.Summary,
		})
	}
	return card
}

// FormatRating prints a rating without trailing zeros, e.g. "9" or "8.5"
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
