package utils

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrGeminiDisabled 未配置 GEMINI_API_KEY
var ErrGeminiDisabled = errors.New("GEMINI_API_KEY is not set")

// GeminiRequest Gemini API 请求结构
type GeminiRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

// GeminiResponse Gemini API 响应结构
type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiClient Gemini generateContent 客户端
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *HTTPClient
}

// NewGeminiClient LLM 生成较慢，超时设为 30 秒
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    NewHTTPClient(30 * time.Second),
	}
}

// Enabled 是否可用
func (g *GeminiClient) Enabled() bool {
	return g != nil && g.apiKey != ""
}

// GenerateJSON 以 JSON 模式生成内容，返回第一个候选的文本
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if !g.Enabled() {
		return "", ErrGeminiDisabled
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{Parts: []GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &GeminiGenerationConfig{ResponseMimeType: "application/json"},
	}

	var result GeminiResponse
	if err := g.http.PostJSON(ctx, endpoint, nil, reqBody, &result); err != nil {
		return "", fmt.Errorf("post request to gemini failed: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("gemini api error: %s", result.Error.Message)
	}

	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		return result.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("gemini returned no content")
}
