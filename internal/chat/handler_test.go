package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/gold-assistant/internal/intent"
)

func newTestRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	h, err := NewHandler(svc, 1024)
	require.NoError(t, err)
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func postChat(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleChat_InvalidBodies(t *testing.T) {
	svc, _ := newTestService(t, nil)
	router := newTestRouter(t, svc)

	bodies := map[string]string{
		"missing_message": `{"history": []}`,
		"number_message":  `{"message": 42}`,
		"null_message":    `{"message": null}`,
		"empty_message":   `{"message": ""}`,
		"not_json":        `message=hello`,
		"array_body":      `["hello"]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := postChat(t, router, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, map[string]string{"error": "Invalid message"}, decodeBody(t, rec))
		})
	}
}

func TestHandleChat_OversizeMessage(t *testing.T) {
	svc, _ := newTestService(t, nil)
	router := newTestRouter(t, svc)

	rec := postChat(t, router, `{"message": "`+strings.Repeat("a", 2048)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, map[string]string{"error": "Message too large"}, decodeBody(t, rec))

	// just under the limit is still answered
	rec = postChat(t, router, `{"message": "`+strings.Repeat("a", 1000)+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleChat_Success(t *testing.T) {
	svc, catalog := newTestService(t, nil)
	router := newTestRouter(t, svc)

	rec := postChat(t, router, `{"message": "What are the key support levels?", "history": [{"role": "user", "content": "hi"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(intent.Levels), rec.Header().Get(IntentHeader))

	want, _ := catalog.Response(intent.Levels)
	assert.Equal(t, map[string]string{"response": want}, decodeBody(t, rec))
}

func TestHandleChat_MalformedHistoryIgnored(t *testing.T) {
	svc, catalog := newTestService(t, nil)
	router := newTestRouter(t, svc)

	rec := postChat(t, router, `{"message": "help", "history": "not a list"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	want, _ := catalog.Response(intent.Help)
	assert.Equal(t, want, decodeBody(t, rec)["response"])
}

func TestHandleChat_OffTopicIsOK(t *testing.T) {
	svc, catalog := newTestService(t, nil)
	router := newTestRouter(t, svc)

	rec := postChat(t, router, `{"message": "forex signals"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(intent.OffTopic), rec.Header().Get(IntentHeader))
	assert.Equal(t, catalog.Refusal, decodeBody(t, rec)["response"])
}

func TestHandleChat_InternalError(t *testing.T) {
	svc := NewService(nil, intent.NewTopicGuard("no"), panicMatcher{}, "", zerolog.Nop())
	router := newTestRouter(t, svc)

	rec := postChat(t, router, `{"message": "gold"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]string{"error": "Internal server error"}, decodeBody(t, rec))
}

func TestHandleWelcome(t *testing.T) {
	svc, catalog := newTestService(t, nil)
	router := newTestRouter(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/welcome", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.Welcome, decodeBody(t, rec)["response"])
}

func TestHandleStats(t *testing.T) {
	svc, _ := newTestService(t, nil)
	router := newTestRouter(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	repo := &fakeRepo{stats: []IntentCount{{Intent: intent.Risk, Count: 2}}}
	svc, _ = newTestService(t, repo)
	router = newTestRouter(t, svc)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"intent":"risk","count":2}]`, rec.Body.String())
}
