package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrGenerationFailed = errors.New("generation failed")

const (
	keywordInstructions = "You are an assistant that extracts concise, lowercase keywords from parental notes.\n" +
		"Return at most 10 keywords separated by commas. Replace spaces with underscores."

	keywordTemperature = 0.2
	keywordMaxTokens   = 120

	maxKeywords = 10
)

// KeywordExtractor distills a child profile into the short interaction tags
// the robot prompt stage consumes.
type KeywordExtractor struct {
	client  *OpenAICompatibleClient
	cfg     ChatConfig
	timeout time.Duration
}

func NewKeywordExtractor(client *OpenAICompatibleClient, cfg ChatConfig, timeout time.Duration) *KeywordExtractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.Temperature = keywordTemperature
	cfg.MaxTokens = keywordMaxTokens
	return &KeywordExtractor{client: client, cfg: cfg, timeout: timeout}
}

func (e *KeywordExtractor) Extract(ctx context.Context, notes, preferences string) ([]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	messages := []ChatMessage{
		{Role: "system", Content: keywordInstructions},
		{Role: "user", Content: buildKeywordInput(notes, preferences)},
	}
	raw, err := e.client.Complete(callCtx, e.cfg, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: extract keywords: %v", ErrGenerationFailed, err)
	}

	keywords := NormalizeKeywords(strings.Split(raw, ","))
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: keyword output contained no usable tags", ErrGenerationFailed)
	}
	return keywords, nil
}

func buildKeywordInput(notes, preferences string) string {
	var b strings.Builder
	b.WriteString("Diagnosis and behavior notes:\n")
	b.WriteString(strings.TrimSpace(notes))
	if trimmed := strings.TrimSpace(preferences); trimmed != "" {
		b.WriteString("\nInterests and preferences:\n")
		b.WriteString(trimmed)
	}
	return b.String()
}

// NormalizeKeywords lower-cases and trims raw tags, turns inner spaces into
// underscores, drops empties and duplicates keeping first occurrence, and
// truncates at 10 tags.
func NormalizeKeywords(parts []string) []string {
	seen := make(map[string]struct{}, len(parts))
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.ToLower(strings.TrimSpace(part))
		tag = strings.ReplaceAll(tag, " ", "_")
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		keywords = append(keywords, tag)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
