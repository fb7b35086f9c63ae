package deconstruct

import (
	"errors"
	"strings"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind classifies gateway failures
type ErrorKind string

const (
	KindTransport   ErrorKind = "transport"
	KindRateLimited ErrorKind = "rate_limited"
	KindUnavailable ErrorKind = "unavailable"
	KindEmpty       ErrorKind = "empty"
	KindMalformed   ErrorKind = "malformed"
	KindSchema      ErrorKind = "schema"
)

// Display messages shown for gateway failures that carry their own text
const (
	RateLimitedMessageZh = "今天的拆解请求太多了，请稍后再试。"
	UnavailableMessageZh = "AI 服务暂不可用，请检查服务配置。"
)

// GatewayError is returned by Deconstruct for every failure.
// Message is the user-facing text; it is empty when the controller should
// fall back to its generic failure message.
type GatewayError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return "gateway " + string(e.Kind)
	}
	return "gateway " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// DisplayMessage returns the message to show for err, or "" if none is available
func DisplayMessage(err error) string {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// transportError wraps a failed API call
func transportError(err error) *GatewayError {
	if isRateLimitError(err) {
		return &GatewayError{Kind: KindRateLimited, Message: RateLimitedMessageZh, Err: err}
	}
	return &GatewayError{Kind: KindTransport, Message: err.Error(), Err: err}
}

// isRateLimitError checks if the error is a Gemini API rate limit error
func isRateLimitError(err error) bool {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	// Check for gRPC ResourceExhausted status
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}
	// String matching as fallback for wrapped errors
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
