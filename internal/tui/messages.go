package tui

import "book-deconstructor/internal/app"

// DeconstructDoneMsg is sent when a request has finished and its outcome applied.
type DeconstructDoneMsg struct {
	Snapshot app.Snapshot
}

// SpinnerTickMsg advances the loading spinner.
type SpinnerTickMsg struct{}
