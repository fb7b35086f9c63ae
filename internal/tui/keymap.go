package tui

// Key binding constants used in handleKey.
const (
	KeyCtrlC     = "ctrl+c"
	KeyEsc       = "esc"
	KeyEnter     = "enter"
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyBackspace = "backspace"
	KeySpace     = " "
	KeyRetry     = "ctrl+r"
	KeyClear     = "ctrl+u"
)
