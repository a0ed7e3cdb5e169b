package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"hri-companion/internal/model"
)

func testChild() *model.Child {
	return &model.Child{
		ID:          "c1",
		OwnerUserID: "u1",
		Nickname:    "Ana",
		Age:         7,
		CommLevel:   "medium",
		Personality: "curious",
		Notes:       "Gets overwhelmed in loud places.",
		Preferences: "dinosaurs",
		Keywords:    []string{"music", "sensory_sensitivity"},
	}
}

func TestPromptSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()

	server, captured, _ := newFakeLLM(t, "  Hi Ana! Want to hum a tune together?\n", http.StatusOK)

	synthesizer := NewPromptSynthesizer(NewOpenAICompatibleClient(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
	}, time.Second)

	prompt, err := synthesizer.Synthesize(context.Background(), testChild(), "happy", "loc_indoor,noise_quiet,crowd_few", "first visit to the clinic")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if prompt != "Hi Ana! Want to hum a tune together?" {
		t.Errorf("prompt = %q, want trimmed content", prompt)
	}

	if captured.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", captured.Model)
	}
	if captured.Temperature != promptTemperature {
		t.Errorf("temperature = %v, want %v", captured.Temperature, promptTemperature)
	}
	if captured.MaxTokens != promptMaxTokens {
		t.Errorf("max_tokens = %d, want %d", captured.MaxTokens, promptMaxTokens)
	}

	if len(captured.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != sessionSystemPrompt {
		t.Errorf("unexpected system message: %+v", captured.Messages[0])
	}

	profile := captured.Messages[1].Content
	for _, fragment := range []string{
		"Nickname: Ana",
		"Age: 7",
		"Communication level: medium",
		"Personality: curious",
		"Interaction keywords: music, sensory_sensitivity",
		"Notes: Gets overwhelmed in loud places.",
		"Preferences: dinosaurs",
	} {
		if !strings.Contains(profile, fragment) {
			t.Errorf("profile message missing %q:\n%s", fragment, profile)
		}
	}

	contextMsg := captured.Messages[2].Content
	for _, fragment := range []string{
		"Mood today: happy",
		"Environment tags: loc_indoor,noise_quiet,crowd_few",
		"Situation notes: first visit to the clinic",
	} {
		if !strings.Contains(contextMsg, fragment) {
			t.Errorf("context message missing %q:\n%s", fragment, contextMsg)
		}
	}
}

func TestPromptSynthesizer_Synthesize_BlankOutput(t *testing.T) {
	t.Parallel()

	server, _, _ := newFakeLLM(t, "   \n ", http.StatusOK)

	synthesizer := NewPromptSynthesizer(NewOpenAICompatibleClient(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
	}, time.Second)

	_, err := synthesizer.Synthesize(context.Background(), testChild(), "", "", "context")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestPromptSynthesizer_Synthesize_UpstreamError(t *testing.T) {
	t.Parallel()

	server, _, _ := newFakeLLM(t, "", http.StatusBadGateway)

	synthesizer := NewPromptSynthesizer(NewOpenAICompatibleClient(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
	}, time.Second)

	_, err := synthesizer.Synthesize(context.Background(), testChild(), "", "", "context")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestBuildProfileText_SkipsUnsetOptionalFields(t *testing.T) {
	t.Parallel()

	child := testChild()
	child.CommLevel = ""
	child.Personality = ""
	child.Preferences = ""

	got := buildProfileText(child)
	for _, absent := range []string{"Communication level:", "Personality:", "Preferences:"} {
		if strings.Contains(got, absent) {
			t.Errorf("profile should omit %q when unset:\n%s", absent, got)
		}
	}
	if !strings.Contains(got, "Nickname: Ana") {
		t.Errorf("profile missing nickname:\n%s", got)
	}
}

func TestBuildContextText_SkipsUnsetOptionalFields(t *testing.T) {
	t.Parallel()

	got := buildContextText("", "", "snack time")
	if strings.Contains(got, "Mood today:") || strings.Contains(got, "Environment tags:") {
		t.Errorf("context should omit unset fields:\n%s", got)
	}
	if !strings.Contains(got, "Situation notes: snack time") {
		t.Errorf("context missing situation notes:\n%s", got)
	}
}
