package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"

	advicePrefix = "AI 建议：\n"
	// Returned when the model answers but the expected fields are missing.
	emptyAdvice = "抱歉，AI 暂时无法生成建议。"
	// Returned on any transport failure, non-2xx status or malformed body.
	fallbackAdvice = "抱歉，获取 AI 建议时出现错误，请检查网络或 API Key 配置。"
)

// Guidance sentence injected into the prompt per category. Conference-style
// events share the generic wording.
var geminiGuidance = map[Category]string{
	CategoryInterview: "这是一个面试日程。请给出需要准备哪些材料、复习提纲、面试注意事项、着装建议等方面的建议。",
	CategoryMeeting:   "这是一个见面日程。请给出需要准备哪些材料、沟通提纲、注意事项等方面的建议。",
	CategoryTrip:      "这是一个旅行或自驾日程。请给出需要准备哪些证件、装备、车辆检查（如果是自驾）、注意事项等方面的建议。",
}

const genericGuidance = "请针对这个日程，给出相关的准备建议和注意事项。"

var boldMarkup = regexp.MustCompile(`\*\*(.*?)\*\*`)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiProvider asks the Gemini generateContent endpoint for advice.
// A single attempt is made per call; every failure channel yields
// fallbackAdvice rather than an error.
type GeminiProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  HTTPDoer
}

type GeminiOptions struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
	Client  HTTPDoer
}

func NewGeminiProvider(opts GeminiOptions) *GeminiProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &GeminiProvider{baseURL: baseURL, model: model, apiKey: opts.APIKey, client: client}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Suggest(ctx context.Context, title, description string) (Suggestion, error) {
	category := Classify(title, description)
	text, err := p.generate(ctx, buildPrompt(category, title, description))
	if err != nil {
		return Suggestion{Category: category, Advice: fallbackAdvice}, nil
	}
	if text == "" {
		text = emptyAdvice
	}
	return Suggestion{Category: category, Advice: advicePrefix + text}, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, p.model, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate content: unexpected status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return boldMarkup.ReplaceAllString(decoded.Candidates[0].Content.Parts[0].Text, "$1"), nil
}

func buildPrompt(category Category, title, description string) string {
	guidance, ok := geminiGuidance[category]
	if !ok {
		guidance = genericGuidance
	}
	return fmt.Sprintf(`日程标题：%s
日程描述：%s

任务：%s

要求：
1. 回答请控制在 300 字以内。
2. 使用中文回答。
3. 条理清晰，分点列出。
4. 语气友好、专业。`, title, description, guidance)
}
