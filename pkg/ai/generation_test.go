package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/resilience"
)

func newTestExecutor(attempts int) *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    attempts,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMaxElapsed:     time.Second,
		BreakerEnabled:      false,
	}, nil)
}

func chatOKResponse(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return b
}

func newSummarizer(baseURL string, attempts int) *GroqSummarizer {
	return NewGroqSummarizer(GroqConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   512,
	}, newTestExecutor(attempts), nil)
}

func TestGroqSummarizeRequestShape(t *testing.T) {
	var captured ChatRequest
	var authHeader, path string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("invalid payload: %v", err)
		}
		w.Write(chatOKResponse("Topics:\n- A"))
	}))
	defer ts.Close()

	out, err := newSummarizer(ts.URL, 1).Summarize(context.Background(), "the transcript", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Topics:\n- A" {
		t.Fatalf("unexpected content %q", out)
	}

	if authHeader != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", authHeader)
	}
	if path != "/openai/v1/chat/completions" {
		t.Fatalf("unexpected path %q", path)
	}
	if captured.Model != "test-model" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("expected system+user messages, got %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[1].Content, "the transcript") {
		t.Fatal("transcript missing from user message")
	}
}

func TestGroqSummarizeRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(chatOKResponse("recovered"))
	}))
	defer ts.Close()

	out, err := newSummarizer(ts.URL, 3).Summarize(context.Background(), "text", "")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if out != "recovered" {
		t.Fatalf("unexpected content %q", out)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestGroqSummarizeTransientAfterExhaustion(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newSummarizer(ts.URL, 2).Summarize(context.Background(), "text", "")
	if !errors.IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestGroqSummarizeAuthRejectionIsFatalAndNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newSummarizer(ts.URL, 3).Summarize(context.Background(), "text", "")
	if !errors.IsFatalService(err) {
		t.Fatalf("expected fatal service error, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", got)
	}
}

func TestGroqSummarizeEmptyChoicesIsFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	_, err := newSummarizer(ts.URL, 2).Summarize(context.Background(), "text", "")
	if !errors.IsFatalService(err) {
		t.Fatalf("expected fatal service error, got %v", err)
	}
}

func TestGroqSummarizeEmptyTranscriptRejectedLocally(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	_, err := newSummarizer(ts.URL, 3).Summarize(context.Background(), "   \n", "")
	if !errors.IsUnsupportedInput(err) {
		t.Fatalf("expected input rejection, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("empty transcript must never reach the provider, got %d calls", got)
	}
}

func TestMockSummarizerMatchesParserContract(t *testing.T) {
	s := NewMockSummarizer()

	out, err := s.Summarize(context.Background(), "some transcript", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, heading := range []string{"Topics:", "Decisions:", "Action Items:"} {
		if !strings.Contains(out, heading) {
			t.Fatalf("mock response missing %q", heading)
		}
	}

	if _, err := s.Summarize(context.Background(), "  ", ""); !errors.IsUnsupportedInput(err) {
		t.Fatalf("expected input rejection, got %v", err)
	}
}
