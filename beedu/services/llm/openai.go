package llm

import (
	"beedu/beedu/utils/logging"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// OpenAIClient talks to the OpenAI API or any compatible server
// (the base URL is configurable for that reason).
type OpenAIClient struct {
	apiKey  string
	baseURL string
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type openaiChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openaiStreamResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type openaiEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openaiEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (c *OpenAIClient) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(httpReq)
}

// Run executes a single completion request (non-streaming).
func (c *OpenAIClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "openai_service_run")()

	resp, err := c.post(ctx, "/chat/completions", openaiChatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Stream:      false,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI request failed: %s - %s", resp.Status, string(b))
	}

	var parsed openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI response: %w", err)
	}

	if len(parsed.Choices) > 0 {
		return parsed.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("no content in OpenAI response")
}

// RunStream handles streaming responses (OpenAI / compatible SSE).
func (c *OpenAIClient) RunStream(ctx context.Context, req ChatRequest) (<-chan string, error) {
	defer logging.LogDuration(ctx, "openai_service_run_stream")()

	resp, err := c.post(ctx, "/chat/completions", openaiChatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Stream:      true,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI stream request failed: %s - %s", resp.Status, string(b))
	}

	ch := make(chan string)

	go func() {
		defer func() {
			close(ch)
			resp.Body.Close()
		}()

		reader := bufio.NewReader(resp.Body)

		for {
			select {
			case <-ctx.Done():
				logging.AppLogger.Info("OpenAI stream context cancelled")
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return
				}
				logging.ErrorLogger.Error("OpenAI stream read error", zap.Any("err", err))
				return
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			// Skip comments and non-data lines
			if !strings.HasPrefix(line, "data:") {
				continue
			}

			data := strings.TrimPrefix(line, "data:")
			data = strings.TrimSpace(data)

			if data == "[DONE]" {
				return
			}

			var chunk openaiStreamResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				logging.ErrorLogger.Error("OpenAI stream JSON parse error",
					zap.Any("err", err), zap.String("raw_line", data))
				continue
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content != "" {
					select {
					case ch <- choice.Delta.Content:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return ch, nil
}

// Embed turns input into a vector using the given embedding model.
func (c *OpenAIClient) Embed(ctx context.Context, model, input string) ([]float32, error) {
	defer logging.LogDuration(ctx, "openai_service_embed")()

	resp, err := c.post(ctx, "/embeddings", openaiEmbeddingRequest{
		Model: model,
		Input: []string{input},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI embedding request failed: %s - %s", resp.Status, string(b))
	}

	var parsed openaiEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode OpenAI embedding response: %w", err)
	}

	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("no embedding in OpenAI response")
	}

	return parsed.Data[0].Embedding, nil
}
