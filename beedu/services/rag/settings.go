package rag

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPromptTemplate keeps the model grounded in the retrieved context
// and tells it to admit when the context does not hold the answer.
const DefaultPromptTemplate = "Use the following pieces of context to answer the question.\n" +
	"If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n" +
	"Context: {context}\n\nQuestion: {question}\n\nHelpful Answer: "

// Settings are the generation knobs, overridable from a YAML file.
type Settings struct {
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	TopK           int     `yaml:"top_k"`
	PromptTemplate string  `yaml:"prompt_template"`
}

func DefaultSettings() Settings {
	return Settings{
		Model:          "gpt-3.5-turbo",
		Temperature:    0,
		TopK:           4,
		PromptTemplate: DefaultPromptTemplate,
	}
}

// LoadSettings reads the YAML file at path over the defaults. An empty path
// means defaults only; a missing or unreadable file is an error so a typo'd
// path fails loudly at startup.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read rag settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parse rag settings: %w", err)
	}
	if s.Model == "" {
		s.Model = DefaultSettings().Model
	}
	if s.TopK <= 0 {
		s.TopK = DefaultSettings().TopK
	}
	if s.PromptTemplate == "" {
		s.PromptTemplate = DefaultPromptTemplate
	}
	return s, nil
}

// Prompt fills the template with the joined context and the question.
func (s Settings) Prompt(contextText, question string) string {
	out := strings.ReplaceAll(s.PromptTemplate, "{context}", contextText)
	return strings.ReplaceAll(out, "{question}", question)
}
