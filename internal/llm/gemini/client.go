package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"materna-backend/internal/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements llm.Client using the Gemini generateContent REST API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Gemini client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Recommend calls generateContent once and returns the model's JSON payload.
// Failures come back as *llm.UpstreamError so the retry layer never has to
// re-inspect message strings.
func (c *Client) Recommend(ctx context.Context, input llm.RecommendInput) (json.RawMessage, error) {
	prompt := BuildPrompt(input)

	temp := float32(0)
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:      &temp,
			ResponseMimeType: "application/json",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, &llm.UpstreamError{Kind: llm.KindOther, Msg: "gemini request timeout: " + err.Error()}
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &llm.UpstreamError{
			Kind:   llm.KindInvalidResponse,
			Status: resp.StatusCode,
			Msg:    "gemini response parse: " + err.Error(),
		}
	}
	if parsed.Error != nil || resp.StatusCode != http.StatusOK {
		return nil, classifyAPIError(resp.StatusCode, parsed.Error, body)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, &llm.UpstreamError{Kind: llm.KindInvalidResponse, Msg: "gemini response missing candidates"}
	}
	logUsage(c.model, parsed.UsageMetadata)

	text := StripCodeFences(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, &llm.UpstreamError{Kind: llm.KindInvalidResponse, Msg: "gemini response empty content"}
	}
	if !json.Valid([]byte(text)) {
		return nil, &llm.UpstreamError{Kind: llm.KindInvalidResponse, Msg: "invalid JSON from gemini"}
	}
	return json.RawMessage(text), nil
}

// classifyAPIError tags the failure once, here at the boundary. The raw body is
// included in the delay scan because Gemini ships RetryInfo in error details.
func classifyAPIError(status int, apiErr *apiError, body []byte) error {
	msg := ""
	if apiErr != nil {
		msg = apiErr.Message
		if apiErr.Status != "" {
			msg = apiErr.Status + ": " + msg
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("http status %d", status)
	}

	kind := llm.KindOther
	var retryAfter time.Duration
	if status == http.StatusTooManyRequests || isRateLimitMessage(msg) {
		kind = llm.KindRateLimited
		if isDailyQuotaMessage(msg) || isDailyQuotaMessage(string(body)) {
			kind = llm.KindDailyQuota
		} else {
			retryAfter = llm.ParseRetryDelay(msg)
			if retryAfter == 0 {
				retryAfter = llm.ParseRetryDelay(string(body))
			}
		}
	}
	return &llm.UpstreamError{
		Kind:       kind,
		Status:     status,
		RetryAfter: retryAfter,
		Msg:        msg,
	}
}

func isRateLimitMessage(msg string) bool {
	kind, _ := llm.ClassifyMessage(msg)
	return kind == llm.KindRateLimited || kind == llm.KindDailyQuota
}

func isDailyQuotaMessage(msg string) bool {
	kind, _ := llm.ClassifyMessage(msg)
	return kind == llm.KindDailyQuota
}

// StripCodeFences removes markdown code-fence wrappers the model sometimes adds
// despite the JSON instruction.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func logUsage(model string, usage *struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d candidate_tokens=%d total_tokens=%d",
		model, usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)
}

var _ llm.Client = (*Client)(nil)
