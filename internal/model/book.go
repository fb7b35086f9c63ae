package model

// Chapter is one entry of the chapter breakdown
type Chapter struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// BookDeconstruction is the structured breakdown returned by the AI gateway.
// A value is never patched after it is received; a new query replaces it wholesale.
type BookDeconstruction struct {
	Title              string    `json:"title"`
	Author             string    `json:"author"`
	Genre              string    `json:"genre"`
	Rating             float64   `json:"rating"`
	OneSentenceSummary string    `json:"oneSentenceSummary"`
	TargetAudience     []string  `json:"targetAudience"`
	MainThemes         []string  `json:"mainThemes"`
	KeyChapters        []Chapter `json:"keyChapters"`
	PracticalTakeaways []string  `json:"practicalTakeaways"`
	CriticalReview     string    `json:"criticalReview"`
}

// Status drives which content area is rendered
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)
