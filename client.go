package erniechat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	oai "github.com/sashabaranov/go-openai"
	. "github.com/stevegt/goadapt"
)

// DefaultBaseURL is the root of Baidu Qianfan's OpenAI-compatible v2
// endpoint.  API keys: https://console.bce.baidu.com/iam/#/iam/apikey/list
const DefaultBaseURL = "https://qianfan.baidubce.com/v2"

// WebSearch carries the Qianfan-specific retrieval flags sent alongside
// a chat completion request.  The flags are transmitted exactly as
// configured; the remote service ignores them for models that don't
// support search.
type WebSearch struct {
	Enable         bool `json:"enable"`
	EnableCitation bool `json:"enable_citation"`
	EnableTrace    bool `json:"enable_trace"`
}

// ChatRequest is an OpenAI Chat Completions payload plus the Qianfan
// web_search extension.  The embedded request supplies model, messages,
// and the standard tuning knobs.
type ChatRequest struct {
	oai.ChatCompletionRequest
	WebSearch *WebSearch `json:"web_search,omitempty"`
}

// SearchResult is one web reference returned by Qianfan when citations
// are enabled.
type SearchResult struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ChatResponse is the decoded chat completion response plus the Qianfan
// search_results extension.  Raw holds the response body bytes exactly
// as received from the service.
type ChatResponse struct {
	oai.ChatCompletionResponse
	SearchResults []SearchResult `json:"search_results,omitempty"`
	Raw           []byte         `json:"-"`
}

// Client is an API client for the Qianfan chat completion endpoint.
// It is read-only after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client from cfg.  Zero-valued fields fall back to
// the package defaults.
func NewClient(cfg *Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CompleteChat performs exactly one round trip to the chat completion
// endpoint and returns the service's response unchanged.  There is no
// retry, fallback, or partial-result handling; every failure is returned
// as an *APIError with a distinguishable kind.
func (c *Client) CompleteChat(ctx context.Context, req *ChatRequest) (resp *ChatResponse, err error) {
	if req == nil {
		return nil, &APIError{Kind: KindInvalidRequest, Message: "nil request"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &APIError{Kind: KindInvalidRequest, Message: "marshal request", Err: err}
	}
	Debug("POST %s/chat/completions: %s", c.baseURL, payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Kind: KindInvalidRequest, Message: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// The key is not validated locally; the remote service rejects
	// missing or invalid credentials.
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, mapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, mapHTTPError(httpResp)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, mapNetworkError(err)
	}
	Debug("response body: %s", raw)

	resp = &ChatResponse{Raw: raw}
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, &APIError{Kind: KindDecode, Message: "malformed response body", Err: err}
	}
	return resp, nil
}
