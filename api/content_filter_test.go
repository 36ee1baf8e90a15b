package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/BinLe1988/tweet-content-filter/configs"
	"github.com/BinLe1988/tweet-content-filter/models"
	"github.com/BinLe1988/tweet-content-filter/pkg/filter"
	"github.com/BinLe1988/tweet-content-filter/pkg/text"
	"github.com/BinLe1988/tweet-content-filter/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type englishGate struct{}

func (englishGate) IsEnglish(s string) bool { return s != "" }

type stubLister struct {
	decisions []models.FilterDecision
	limit     int
}

func (s *stubLister) Recent(_ context.Context, limit int) ([]models.FilterDecision, error) {
	s.limit = limit
	return s.decisions, nil
}

func newTestService(t *testing.T, opts ...filter.Option) *filter.ContentFilterService {
	t.Helper()
	artifacts, err := filter.LoadArtifacts(filter.ArtifactPaths{
		PhraseModel:    filepath.Join("..", "resources", "phrasemodel.json"),
		SentimentModel: filepath.Join("..", "resources", "sentiment_model.json"),
		Thesaurus:      filepath.Join("..", "resources", "thesaurus.json"),
	})
	require.NoError(t, err)
	return filter.NewContentFilterService(englishGate{}, text.NewTokenizer(text.PorterStemmer{}), artifacts, opts...)
}

func newTestRouter(t *testing.T, handler *ContentFilterHandler, opts RouterOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	opts.Logger = zap.NewNop()
	router := gin.New()
	SetupRouter(router, handler, opts)
	return router
}

func doJSON(router http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestFilterTwitterContent(t *testing.T) {
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t), nil), RouterOptions{})

	t.Run("negative text is filtered", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(filter.OutcomeDecided), w.Header().Get(OutcomeHeader))

		out := decode(t, w)
		assert.Equal(t, true, out["filter"])
		prob, ok := out["confidence_positive"].(float64)
		require.True(t, ok)
		assert.Less(t, prob, 0.5)
	})

	t.Run("keyword match has null confidence", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I love this!","filter_words":["love"]}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(filter.OutcomeKeywordMatch), w.Header().Get(OutcomeHeader))

		out := decode(t, w)
		assert.Equal(t, true, out["filter"])
		value, present := out["confidence_positive"]
		assert.True(t, present)
		assert.Nil(t, value)
	})

	t.Run("threshold zero keeps positive text", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I love this!","threshold":0}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["filter"])
	})

	t.Run("empty body is not filtered", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":""}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(filter.OutcomeInvalid), w.Header().Get(OutcomeHeader))

		out := decode(t, w)
		assert.Equal(t, false, out["filter"])
		assert.Nil(t, out["confidence_positive"])
	})

	t.Run("request id is set", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestFilterTwitterContentBadRequests(t *testing.T) {
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t), nil), RouterOptions{})

	cases := []struct {
		name string
		body string
	}{
		{"missing body", `{}`},
		{"non string body", `{"body":5}`},
		{"threshold above one", `{"body":"I hate you","threshold":1.5}`},
		{"negative threshold", `{"body":"I hate you","threshold":-0.1}`},
		{"null filter word", `{"body":"I hate you","filter_words":[null]}`},
		{"empty filter word", `{"body":"I hate you","filter_words":[""]}`},
		{"filter words not a list", `{"body":"I hate you","filter_words":"hate"}`},
		{"malformed json", `{"body":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/filter-twitter-content/", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestRandomFilterTwitterContent(t *testing.T) {
	always := filter.NewRandomFilter(func() float64 { return 0.3 })
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t, filter.WithRandomFilter(always)), nil), RouterOptions{})

	w := doJSON(router, http.MethodPost, "/random-filter-twitter-content/", `{"threshold":0.5}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(filter.OutcomeRandom), w.Header().Get(OutcomeHeader))
	out := decode(t, w)
	assert.Equal(t, true, out["filter"])
	assert.Equal(t, 0.0, out["confidence_positive"])

	// 未提供概率时从不过滤
	w = doJSON(router, http.MethodPost, "/random-filter-twitter-content/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["filter"])

	w = doJSON(router, http.MethodPost, "/random-filter-twitter-content/", `{"threshold":2}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecentDecisions(t *testing.T) {
	lister := &stubLister{decisions: []models.FilterDecision{{ID: "a", Outcome: string(filter.OutcomeDecided)}}}
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t), lister), RouterOptions{})

	w := doJSON(router, http.MethodGet, "/decisions?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, lister.limit)
	assert.Len(t, decode(t, w)["decisions"], 1)

	w = doJSON(router, http.MethodGet, "/decisions?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecisionsRouteAbsentWithoutStore(t *testing.T) {
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t), nil), RouterOptions{})
	w := doJSON(router, http.MethodGet, "/decisions", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	service := newTestService(t, filter.WithRecorder(filter.MetricsRecorder{}))
	router := newTestRouter(t, NewContentFilterHandler(service, nil), RouterOptions{Metrics: true})

	w := doJSON(router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, nil)
	w = doJSON(router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tcf_filter_decisions_total")
	assert.Contains(t, w.Body.String(), "tcf_filter_stage_duration_seconds")
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t), nil), RouterOptions{})
	w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, http.Header{"Origin": {"https://example.org"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthFlow(t *testing.T) {
	hash, err := utils.HashSecret("widget-secret")
	require.NoError(t, err)
	auth := configs.Auth{
		Enabled:   true,
		Secret:    "test-signing-key",
		ExpiresIn: 1,
		Clients:   map[string]string{"widget": hash},
	}
	utils.InitJWT(auth)
	router := newTestRouter(t, NewContentFilterHandler(newTestService(t), nil), RouterOptions{Auth: auth})

	// 未携带令牌
	w := doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, http.Header{"Authorization": {"Token abc"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, http.Header{"Authorization": {"Bearer not-a-jwt"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 错误的密钥
	w = doJSON(router, http.MethodPost, "/auth/token", `{"client_id":"widget","client_secret":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/auth/token", `{"client_id":"widget"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/auth/token", `{"client_id":"widget","client_secret":"widget-secret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, ok := decode(t, w)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	w = doJSON(router, http.MethodPost, "/filter-twitter-content/", `{"body":"I hate you"}`, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)

	// 健康检查不需要认证
	w = doJSON(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
