package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hri-companion/internal/model"
)

const (
	sessionSystemPrompt = "You are a compassionate social companion robot supporting autistic children. " +
		"Use gentle, clear language, short sentences, and encouraging tone. " +
		"Reference the provided child profile and today's context to tailor your response. " +
		"Offer concrete interaction ideas for the next few minutes."

	promptTemperature = 0.3
	promptMaxTokens   = 800
)

// PromptSynthesizer turns a child profile and the day's situation into the
// text the robot speaks from.
type PromptSynthesizer struct {
	client  *OpenAICompatibleClient
	cfg     ChatConfig
	timeout time.Duration
}

func NewPromptSynthesizer(client *OpenAICompatibleClient, cfg ChatConfig, timeout time.Duration) *PromptSynthesizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.Temperature = promptTemperature
	cfg.MaxTokens = promptMaxTokens
	return &PromptSynthesizer{client: client, cfg: cfg, timeout: timeout}
}

func (p *PromptSynthesizer) Synthesize(ctx context.Context, child *model.Child, mood, environment, sceneContext string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	messages := []ChatMessage{
		{Role: "system", Content: sessionSystemPrompt},
		{Role: "user", Content: buildProfileText(child)},
		{Role: "user", Content: buildContextText(mood, environment, sceneContext)},
	}
	raw, err := p.client.Complete(callCtx, p.cfg, messages)
	if err != nil {
		return "", fmt.Errorf("%w: synthesize prompt: %v", ErrGenerationFailed, err)
	}

	prompt := strings.TrimSpace(raw)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt output was blank", ErrGenerationFailed)
	}
	return prompt, nil
}

func buildProfileText(child *model.Child) string {
	lines := []string{
		"Nickname: " + child.Nickname,
		"Age: " + strconv.Itoa(child.Age),
	}
	if child.CommLevel != "" {
		lines = append(lines, "Communication level: "+child.CommLevel)
	}
	if child.Personality != "" {
		lines = append(lines, "Personality: "+child.Personality)
	}
	lines = append(lines, "Interaction keywords: "+strings.Join(child.Keywords, ", "))
	lines = append(lines, "Notes: "+child.Notes)
	if child.Preferences != "" {
		lines = append(lines, "Preferences: "+child.Preferences)
	}
	return "Child profile:\n" + bulleted(lines)
}

func buildContextText(mood, environment, sceneContext string) string {
	var lines []string
	if mood != "" {
		lines = append(lines, "Mood today: "+mood)
	}
	if environment != "" {
		lines = append(lines, "Environment tags: "+environment)
	}
	lines = append(lines, "Situation notes: "+sceneContext)
	return "Today's context:\n" + bulleted(lines)
}

func bulleted(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(line)
	}
	return b.String()
}
