package app

// User-facing strings
const (
	// FallbackErrorMessage is shown when a failure carries no message of its own
	FallbackErrorMessage = "拆解失败，请重试。可能是书名太生僻或API请求问题。"
)
