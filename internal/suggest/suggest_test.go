package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordsmith/internal/wordlist"
)

func TestZeroClientNotReady(t *testing.T) {
	var c Client
	assert.False(t, c.Ready())
	_, err := c.Suggest(context.Background(), "sys", "user", "gpt")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key")
	assert.Error(t, err)
	_, err = NewClient("https://example.test", " ")
	assert.Error(t, err)

	c, err := NewClient("https://example.test/", "key")
	require.NoError(t, err)
	assert.True(t, c.Ready())
}

func TestSuggestSendsChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "secret", r.Header.Get("api-key"))

		var req chatRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.Len(t, req.Messages, 2) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, chatMessage{Role: "system", Content: "be brief"}, req.Messages[0])
		assert.Equal(t, chatMessage{Role: "user", Content: "Expand these seed words: cat"}, req.Messages[1])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" kitten \n\nfeline\r\n  tabby"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", WithAPIVersion("2024-06-01"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	words, err := c.Suggest(context.Background(), "  be brief\n", UserPrompt([]string{"cat"}), "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, []string{"kitten", "feline", "tabby"}, words)
}

func TestSuggestEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  \n"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "k", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	words, err := c.Suggest(context.Background(), "s", "u", "m")
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestSuggestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "bad", WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.Suggest(context.Background(), "s", "u", "m")
	assert.ErrorContains(t, err, "invalid subscription key")

	_, err = c.Suggest(context.Background(), " ", "u", "m")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	_, err = c.Suggest(context.Background(), "s", "", "m")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestUserPromptAndMerge(t *testing.T) {
	assert.Equal(t, "Expand these seed words: a, b", UserPrompt([]string{"a", "b"}))
	seeds := []string{"cat", "dog"}
	assert.Equal(t, []string{"cat", "dog", "kitten", "puppy"}, Merge(seeds, []string{"kitten", "dog", "puppy", "kitten"}))
	assert.Equal(t, []string{"cat", "dog"}, seeds)
}

type fakeSuggester struct {
	words []string
	err   error
	user  string
}

func (f *fakeSuggester) Suggest(_ context.Context, _, user, _ string) ([]string, error) {
	f.user = user
	return f.words, f.err
}

func writePrompt(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBrainstorm(t *testing.T) {
	prompt := writePrompt(t, "prompt.txt", "List related words, one per line.")
	f := &fakeSuggester{words: []string{"kitten", "cat", "bad\x00word"}}
	seeds := []string{"cat"}

	merged, err := Brainstorm(context.Background(), f, prompt, "gpt", seeds)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "kitten"}, merged)
	assert.Equal(t, "Expand these seed words: cat", f.user)
	assert.Equal(t, []string{"cat"}, seeds)
}

func TestBrainstormFailures(t *testing.T) {
	ctx := context.Background()
	prompt := writePrompt(t, "prompt.txt", "prompt")

	_, err := Brainstorm(ctx, &fakeSuggester{}, prompt, "gpt", nil)
	assert.ErrorIs(t, err, ErrNoSeeds)

	_, err = Brainstorm(ctx, &fakeSuggester{}, writePrompt(t, "prompt.md", "prompt"), "gpt", []string{"a"})
	assert.ErrorIs(t, err, wordlist.ErrNotText)

	_, err = Brainstorm(ctx, &fakeSuggester{}, writePrompt(t, "blank.txt", " \n"), "gpt", []string{"a"})
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	boom := errors.New("boom")
	_, err = Brainstorm(ctx, &fakeSuggester{err: boom}, prompt, "gpt", []string{"a"})
	assert.ErrorIs(t, err, boom)

	_, err = Brainstorm(ctx, &Client{}, prompt, "gpt", []string{"a"})
	assert.ErrorIs(t, err, ErrNotReady)
}
