package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/runger/ghostline/internal/config"
)

// adapter holds the per-backend request/response shaping functions.
type adapter struct {
	buildRequest  func(pc config.ProviderConfig, system, input string) ([]byte, error)
	parseResponse func(body []byte) (string, error)
	setHeaders    func(req *http.Request, credential string) error
}

// httpProvider is the generic HTTP transport shared by all remote backends.
type httpProvider struct {
	name       string
	endpoint   string
	pc         config.ProviderConfig
	httpClient *http.Client
	adapter    adapter
	credential credentialFunc
}

func (p *httpProvider) Name() string { return p.name }

// Complete sends one request and returns the generated text in a single
// delivery. Responses are never streamed.
func (p *httpProvider) Complete(ctx context.Context, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var cred string
	if p.credential != nil {
		var err error
		cred, err = p.credential()
		if err != nil {
			return "", err
		}
	}

	system := buildSystemPrompt()
	body, err := p.adapter.buildRequest(p.pc, system, NormalizeInput(input))
	if err != nil {
		return "", fmt.Errorf("%s: failed to build request: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := p.adapter.setHeaders(req, cred); err != nil {
		return "", err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: timeout after %v", p.name, DefaultTimeout)
		}
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", p.name, err)
	}

	if resp.StatusCode >= 400 {
		if msg := parseAPIError(respBody); msg != "" {
			return "", fmt.Errorf("%s: %s", p.name, msg)
		}
		return "", fmt.Errorf("%s: %s", p.name, resp.Status)
	}

	text, err := p.adapter.parseResponse(respBody)
	if err != nil {
		return "", fmt.Errorf("%s: failed to parse response: %w", p.name, err)
	}
	if text == "" {
		return "", fmt.Errorf("%s: %w", p.name, ErrEmptyResponse)
	}
	return text, nil
}

// parseAPIError extracts the error message common to the Anthropic and
// OpenAI error envelopes.
func parseAPIError(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}

// --- Anthropic ---

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

func newAnthropicProvider(pc config.ProviderConfig) Provider {
	return &httpProvider{
		name:       "anthropic",
		endpoint:   defaultString(pc.Endpoint, anthropicEndpoint),
		pc:         pc,
		httpClient: newHTTPClient(),
		adapter: adapter{
			buildRequest:  buildAnthropicRequest,
			parseResponse: parseAnthropicResponse,
			setHeaders:    setAnthropicHeaders,
		},
		credential: credentialResolver("anthropic"),
	}
}

func buildAnthropicRequest(pc config.ProviderConfig, system, input string) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"model":      pc.Model,
		"max_tokens": pc.MaxTokens,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": input},
		},
	})
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", nil
	}
	return response.Content[0].Text, nil
}

func setAnthropicHeaders(req *http.Request, credential string) error {
	req.Header.Set("x-api-key", credential)
	req.Header.Set("anthropic-version", "2023-06-01")
	return nil
}

// --- OpenAI ---

const openaiEndpoint = "https://api.openai.com/v1/chat/completions"

func newOpenAIProvider(pc config.ProviderConfig) Provider {
	return &httpProvider{
		name:       "openai",
		endpoint:   defaultString(pc.Endpoint, openaiEndpoint),
		pc:         pc,
		httpClient: newHTTPClient(),
		adapter: adapter{
			buildRequest:  buildChatCompletionRequest,
			parseResponse: parseChatCompletionResponse,
			setHeaders:    setOpenAIHeaders,
		},
		credential: credentialResolver("openai"),
	}
}

func buildChatCompletionRequest(pc config.ProviderConfig, system, input string) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"model":      pc.Model,
		"max_tokens": pc.MaxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": input},
		},
	})
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Message.Content, nil
}

func setOpenAIHeaders(req *http.Request, credential string) error {
	req.Header.Set("Authorization", "Bearer "+credential)
	return nil
}

// --- Ollama ---

const ollamaEndpoint = "http://localhost:11434/api/chat"

// newOllamaProvider builds the local backend. It requires no credential.
func newOllamaProvider(pc config.ProviderConfig) Provider {
	return &httpProvider{
		name:       "ollama",
		endpoint:   defaultString(pc.Endpoint, ollamaEndpoint),
		pc:         pc,
		httpClient: newHTTPClient(),
		adapter: adapter{
			buildRequest:  buildOllamaRequest,
			parseResponse: parseOllamaResponse,
			setHeaders:    func(*http.Request, string) error { return nil },
		},
	}
}

func buildOllamaRequest(pc config.ProviderConfig, system, input string) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"model":  pc.Model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": input},
		},
		"options": map[string]int{"num_predict": pc.MaxTokens},
	})
}

func parseOllamaResponse(body []byte) (string, error) {
	var response struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	return response.Message.Content, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
