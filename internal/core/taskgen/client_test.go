package taskgen

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	return NewClient(ClientOptions{
		BaseURL:       url,
		Model:         "test-model",
		APIKey:        "test-key",
		Timeout:       5 * time.Second,
		MaxRetries:    2,
		RetryInterval: time.Millisecond,
	}, zerolog.Nop())
}

func textResponse(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestClient_Generate(t *testing.T) {
	t.Run("success returns candidate text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.URL.Path, "/models/test-model:generateContent")
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			fmt.Fprint(w, textResponse("Buy cake\nSend invites"))
		}))
		defer srv.Close()

		text, err := testClient(t, srv.URL).Generate(context.Background(), "plan a party")
		require.NoError(t, err)
		assert.Equal(t, "Buy cake\nSend invites", text)
	})

	t.Run("retries transient failures with backoff", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, textResponse("Task one"))
		}))
		defer srv.Close()

		text, err := testClient(t, srv.URL).Generate(context.Background(), "anything")
		require.NoError(t, err)
		assert.Equal(t, "Task one", text)
		assert.Equal(t, 3, calls)
	})

	t.Run("transient failures surface after retries exhaust", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Generate(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, CategoryTransient, Classify(err))
		assert.Equal(t, 3, calls, "initial attempt plus MaxRetries")
	})

	t.Run("invalid credential is not retried", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error":{"code":403,"message":"API key not valid"}}`)
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Generate(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, CategoryInvalidKey, Classify(err))
		assert.Contains(t, err.Error(), "API key not valid")
		assert.Equal(t, 1, calls)
	})

	t.Run("rate limit is surfaced immediately", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Generate(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, CategoryRateLimited, Classify(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("empty candidate output is a permanent failure", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			fmt.Fprint(w, `{"candidates":[]}`)
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Generate(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, CategoryEmpty, Classify(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("rejects empty prompt before any request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Fatal("no request expected")
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Generate(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	})

	t.Run("rejects over-long prompt before any request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Fatal("no request expected")
		}))
		defer srv.Close()

		long := make([]byte, MaxPromptLen+1)
		for i := range long {
			long[i] = 'a'
		}

		_, err := testClient(t, srv.URL).Generate(context.Background(), string(long))
		require.Error(t, err)
		assert.Equal(t, CategoryUnknown, Classify(err))
	})
}

func TestClient_Rewrite(t *testing.T) {
	t.Run("strips surrounding quotes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, textResponse(`"Book the venue by Friday"`))
		}))
		defer srv.Close()

		text, err := testClient(t, srv.URL).Rewrite(context.Background(), "book venue")
		require.NoError(t, err)
		assert.Equal(t, "Book the venue by Friday", text)
	})
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CategoryUnknown, Classify(fmt.Errorf("some wrapped: %w", context.Canceled)))
	assert.Equal(t, CategoryTransient, Classify(&Error{Category: CategoryTransient}))
	assert.Equal(t, CategoryTransient, Classify(fmt.Errorf("wrap: %w", &Error{Category: CategoryTransient})))
}
