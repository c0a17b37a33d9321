package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
	"github.com/ievan-lhr/go-llm-mindmap/internal/logger"
)

// Requester 封装 JSON POST 的通用逻辑。
type Requester struct {
	HTTPClient *http.Client
	// Provider 写入 APIError，便于调用方区分来源
	Provider string
	Log      *logger.Logger
}

// Post 发送 POST 请求并返回原始响应体。非 2xx 状态码返回 *chat.APIError。
func (r *Requester) Post(ctx context.Context, url string, headers http.Header, requestBody any) ([]byte, error) {
	log := logger.OrNop(r.Log)

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("requester: failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("requester: failed to create request: %w", err)
	}
	if headers != nil {
		httpReq.Header = headers.Clone()
	}

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("requester: request failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("requester: failed to read response body: %w", err)
	}

	log.Debug("llm http call",
		"provider", r.Provider,
		"status", resp.StatusCode,
		"request_bytes", len(jsonBody),
		"response_bytes", len(rawBody),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &chat.APIError{Provider: r.Provider, StatusCode: resp.StatusCode, Body: string(rawBody)}
	}

	return rawBody, nil
}
