package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// HTTP 클라이언트 설정
	MaxRetries     = 3
	RetryBackoff   = time.Second
	RequestTimeout = 60 * time.Second
	MaxRespBody    = 1 << 20 // 1MB
)

// ErrNoAPIKey per-user key missing for summarization.
var ErrNoAPIKey = errors.New("ai: no api key configured")

// Client OpenAI 호환 chat completions API 클라이언트
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// NewClient 새 completion 클라이언트 생성
func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		http: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Summarize 노트 묶음을 요약 (apiKey는 요청한 사용자의 키)
func (c *Client) Summarize(ctx context.Context, apiKey, title string, notes []string) (string, error) {
	if apiKey == "" {
		return "", ErrNoAPIKey
	}

	prompt := "Summarize the following timestamped study notes for the video \"" + title + "\" into a short digest:\n"
	for _, n := range notes {
		prompt += "- " + n + "\n"
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You summarize study notes concisely."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	// 일시적 오류에 대한 재시도 로직
	var lastErr error
	for i := 0; i < MaxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(RetryBackoff * time.Duration(i)):
			}
		}

		result, retryable, err := c.complete(ctx, apiKey, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return "", lastErr
}

func (c *Client) complete(ctx context.Context, apiKey string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxRespBody))
	if err != nil {
		return "", true, err
	}

	// 5xx는 재시도, 4xx는 즉시 실패
	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("ai: upstream error %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		var parsed chatResponse
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != nil {
			return "", false, fmt.Errorf("ai: %s", parsed.Error.Message)
		}
		return "", false, fmt.Errorf("ai: request failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", false, err
	}
	if len(parsed.Choices) == 0 {
		return "", false, errors.New("ai: empty completion")
	}

	return parsed.Choices[0].Message.Content, false, nil
}
