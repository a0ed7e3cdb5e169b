package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

type capturedChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// newFakeLLM serves an OpenAI-style chat completion with the given content
// and records the last request body and auth header.
func newFakeLLM(t *testing.T, content string, status int) (*httptest.Server, *capturedChatRequest, *string) {
	t.Helper()

	captured := &capturedChatRequest{}
	authHeader := new(string)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		*authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decode request failed: %v", err)
		}

		if status >= 300 {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, captured, authHeader
}

func TestNormalizeKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
		want  []string
	}{
		{
			name:  "trims and lowers",
			parts: []string{" Music ", "DINOSAURS"},
			want:  []string{"music", "dinosaurs"},
		},
		{
			name:  "spaces become underscores",
			parts: []string{"short sentences", "sensory sensitivity"},
			want:  []string{"short_sentences", "sensory_sensitivity"},
		},
		{
			name:  "duplicates keep first occurrence",
			parts: []string{"music", "Music", " music "},
			want:  []string{"music"},
		},
		{
			name:  "empties dropped",
			parts: []string{"", "  ", "music"},
			want:  []string{"music"},
		},
		{
			name:  "caps at ten",
			parts: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"},
			want:  []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		},
		{
			name:  "all empty yields none",
			parts: []string{"", " "},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeKeywords(tt.parts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeKeywords(%v) = %v, want %v", tt.parts, got, tt.want)
			}
		})
	}
}

func TestKeywordExtractor_Extract(t *testing.T) {
	t.Parallel()

	server, captured, authHeader := newFakeLLM(t, "Music, Sensory Sensitivity, music, Short Sentences", http.StatusOK)

	extractor := NewKeywordExtractor(NewOpenAICompatibleClient(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	}, time.Second)

	keywords, err := extractor.Extract(context.Background(), "Loves music. Sensitive to loud noises.", "dinosaurs")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []string{"music", "sensory_sensitivity", "short_sentences"}
	if !reflect.DeepEqual(keywords, want) {
		t.Errorf("keywords = %v, want %v", keywords, want)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", captured.Model)
	}
	if captured.Temperature != keywordTemperature {
		t.Errorf("temperature = %v, want %v", captured.Temperature, keywordTemperature)
	}
	if captured.MaxTokens != keywordMaxTokens {
		t.Errorf("max_tokens = %d, want %d", captured.MaxTokens, keywordMaxTokens)
	}
	if captured.Stream {
		t.Error("stream should be false")
	}
	if *authHeader != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", *authHeader)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", captured.Messages[0].Role)
	}
	userInput := captured.Messages[1].Content
	if !strings.Contains(userInput, "Loves music. Sensitive to loud noises.") {
		t.Errorf("user message missing notes: %q", userInput)
	}
	if !strings.Contains(userInput, "Interests and preferences:\ndinosaurs") {
		t.Errorf("user message missing preferences: %q", userInput)
	}
}

func TestKeywordExtractor_Extract_UpstreamError(t *testing.T) {
	t.Parallel()

	server, _, _ := newFakeLLM(t, "", http.StatusInternalServerError)

	extractor := NewKeywordExtractor(NewOpenAICompatibleClient(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	}, time.Second)

	_, err := extractor.Extract(context.Background(), "notes", "")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestKeywordExtractor_Extract_NoUsableTags(t *testing.T) {
	t.Parallel()

	server, _, _ := newFakeLLM(t, "  ,  , ", http.StatusOK)

	extractor := NewKeywordExtractor(NewOpenAICompatibleClient(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	}, time.Second)

	_, err := extractor.Extract(context.Background(), "notes", "")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestBuildKeywordInput_OmitsEmptyPreferences(t *testing.T) {
	t.Parallel()

	got := buildKeywordInput("some notes", "  ")
	if strings.Contains(got, "Interests and preferences") {
		t.Errorf("empty preferences should be omitted: %q", got)
	}
	if !strings.HasPrefix(got, "Diagnosis and behavior notes:\n") {
		t.Errorf("unexpected prefix: %q", got)
	}
}
