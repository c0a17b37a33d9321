package chat

import "fmt"

// Response 是后端返回的通用结果，调用方原样透传。
type Response struct {
	Message Message

	// RawResponse 为 API 返回的原始响应体
	RawResponse []byte
}

// APIError 表示提供商返回了非 2xx 状态码。
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: api error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// HTTPStatusCode 返回响应状态码，nil 时为 0。
func (e *APIError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}
