package controllers

import (
	"beedu/beedu/services/llm"
	"beedu/beedu/services/rag"
	"beedu/beedu/services/vectorstore"
	"beedu/beedu/sources/psql/dao"
	"beedu/beedu/sources/psql/models"
	"beedu/beedu/types"
	"beedu/beedu/utils/logging"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyQuestion = errors.New("question is required")

// Retriever returns the passages most similar to the question, best first.
type Retriever interface {
	Search(ctx context.Context, question string, k int) ([]vectorstore.Passage, error)
}

// Generator runs the hosted model.
type Generator interface {
	Run(ctx context.Context, req llm.ChatRequest) (string, error)
	RunStream(ctx context.Context, req llm.ChatRequest) (<-chan string, error)
}

// ChatController runs the retrieve-then-generate pipeline and owns the
// transcript store. Retrieval and generation failures come back inside
// the result, not as errors: the frontend renders them as bot messages.
type ChatController struct {
	retriever Retriever
	generator Generator
	settings  rag.Settings
	cache     *rag.AnswerCache
	chatDAO   *dao.ChatDAO
}

func NewChatController(retriever Retriever, generator Generator, settings rag.Settings, cache *rag.AnswerCache, chatDAO *dao.ChatDAO) *ChatController {
	return &ChatController{
		retriever: retriever,
		generator: generator,
		settings:  settings,
		cache:     cache,
		chatDAO:   chatDAO,
	}
}

// Ask answers one question. The only error it returns is ErrEmptyQuestion;
// everything downstream folds into ChatResult.Error.
func (c *ChatController) Ask(ctx context.Context, question string) (types.ChatResult, error) {
	defer logging.LogDuration(ctx, "chat_ask")()

	question = strings.TrimSpace(question)
	if question == "" {
		return types.ChatResult{}, ErrEmptyQuestion
	}

	if answer, ok := c.cache.Get(ctx, question); ok {
		return types.ChatResult{Answer: answer}, nil
	}

	prompt, err := c.buildPrompt(ctx, question)
	if err != nil {
		logging.ErrorLogger.Error("retrieval failed", zap.Error(err))
		return types.ChatResult{Error: err.Error()}, nil
	}

	answer, err := c.generator.Run(ctx, c.chatRequest(prompt, false))
	if err != nil {
		logging.ErrorLogger.Error("generation failed", zap.Error(err))
		return types.ChatResult{Error: err.Error()}, nil
	}

	c.cache.Set(ctx, question, answer)
	return types.ChatResult{Answer: answer}, nil
}

// AskStream is Ask for the websocket path: chunks arrive on the channel as
// the model produces them. A cached answer arrives as a single chunk.
func (c *ChatController) AskStream(ctx context.Context, question string) (<-chan string, error) {
	defer logging.LogDuration(ctx, "chat_ask_stream")()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if answer, ok := c.cache.Get(ctx, question); ok {
		ch := make(chan string, 1)
		ch <- answer
		close(ch)
		return ch, nil
	}

	prompt, err := c.buildPrompt(ctx, question)
	if err != nil {
		logging.ErrorLogger.Error("retrieval failed", zap.Error(err))
		return nil, err
	}

	stream, err := c.generator.RunStream(ctx, c.chatRequest(prompt, true))
	if err != nil {
		logging.ErrorLogger.Error("generation failed", zap.Error(err))
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		var full strings.Builder
		for chunk := range stream {
			full.WriteString(chunk)
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if full.Len() > 0 {
			c.cache.Set(ctx, question, full.String())
		}
	}()
	return out, nil
}

func (c *ChatController) buildPrompt(ctx context.Context, question string) (string, error) {
	passages, err := c.retriever.Search(ctx, question, c.settings.TopK)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Text)
	}
	return c.settings.Prompt(strings.Join(texts, "\n\n"), question), nil
}

func (c *ChatController) chatRequest(prompt string, stream bool) llm.ChatRequest {
	temp := c.settings.Temperature
	return llm.ChatRequest{
		Model:       c.settings.Model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Stream:      stream,
		Temperature: &temp,
	}
}

// SaveChat persists one exchange for the user.
func (c *ChatController) SaveChat(ctx context.Context, userID uuid.UUID, req types.SaveChatRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return ErrEmptyQuestion
	}
	_, err := c.chatDAO.InsertChat(ctx, userID, req.Question, req.Answer, req.Error)
	return err
}

// ListChats returns the user's transcript, oldest first, capped.
func (c *ChatController) ListChats(ctx context.Context, userID uuid.UUID) ([]models.ChatRecord, error) {
	return c.chatDAO.ListChatsByUser(ctx, userID, dao.DefaultHistoryLimit)
}
