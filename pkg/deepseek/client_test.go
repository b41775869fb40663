package deepseek

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComplete(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Error("expected API key in Authorization header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {
				"content": "### Recommendation\nhold",
				"reasoning_content": "considering the move..."
			}}],
			"usage": {"prompt_tokens": 500, "completion_tokens": 300}
		}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "sk-test", "deepseek-reasoner")
	comp, err := c.Complete(context.Background(), "analyze this fund", 8000)
	if err != nil {
		t.Fatal(err)
	}

	if comp.Text != "### Recommendation\nhold" {
		t.Errorf("unexpected text: %q", comp.Text)
	}
	if comp.Reasoning != "considering the move..." {
		t.Errorf("unexpected reasoning: %q", comp.Reasoning)
	}
	if comp.InputTokens != 500 || comp.OutputTokens != 300 {
		t.Errorf("unexpected usage: %d/%d", comp.InputTokens, comp.OutputTokens)
	}
}

func TestCompleteProviderError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "sk-test", "deepseek-reasoner")
	if _, err := c.Complete(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "sk-test", "deepseek-reasoner")
	if _, err := c.Complete(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [], "usage": {"prompt_tokens": 1, "completion_tokens": 0}}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "sk-test", "deepseek-reasoner")
	if _, err := c.Complete(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestCompleteCancelledContext(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer upstream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(upstream.URL, "sk-test", "deepseek-reasoner")
	if _, err := c.Complete(ctx, "prompt", 100); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
