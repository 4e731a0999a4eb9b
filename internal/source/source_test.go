package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
)

func testClient() *http.Client {
	return NewHTTPClient(5 * time.Second)
}

func completion(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"content": content}}},
	})
	require.NoError(t, err)
	return body
}

func TestOpenAIFetch(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		resources := `{"resources":[
			{"title":"Cooling tips","description":"d","url":"https://a.org/1","content_type":"article","categories":["Hot Flashes"],"author_name":"NHS"},
			{"title":"Sleep yoga","description":"d","url":"https://a.org/2","content_type":"video","categories":["Sleep"]},
			{"title":"","url":"https://a.org/3","categories":["Mood"]}
		]}`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completion(t, resources))
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/", Model: "gpt-4o-mini", Temperature: 0.7}, testClient(), logger.NewNop())
	res := o.Fetch(context.Background(), Query{Topics: []string{"hot flashes"}, Max: 20})

	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	require.Len(t, res.Items, 2, "invalid resource must be dropped")
	assert.Equal(t, domain.TypeArticle, res.Items[0].Type)
	assert.Equal(t, domain.TypeVideo, res.Items[1].Type)
	assert.True(t, strings.HasPrefix(res.Items[0].ID, "openai-"))
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Contains(t, got.Messages[1].Content, "List 5 ", "resource count is capped")
}

func TestOpenAIMissingCredentialMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIConfig{BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := o.Fetch(context.Background(), Query{})

	require.False(t, res.OK())
	assert.Equal(t, FailureCredential, res.Err.Kind)
	assert.Empty(t, res.Items)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.ErrorIs(t, o.Probe(context.Background()), domain.ErrMissingCredential)
}

func TestOpenAIMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(completion(t, "Sure! Here are some resources: ..."))
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := o.Fetch(context.Background(), Query{})

	require.NotNil(t, res.Err)
	assert.Equal(t, FailureParse, res.Err.Kind)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestOpenAIWrongShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(completion(t, `{"items":[]}`))
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := o.Fetch(context.Background(), Query{})

	require.NotNil(t, res.Err)
	assert.Equal(t, FailureParse, res.Err.Kind)
}

func TestOpenAIProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.MaxTokens != 5 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write(completion(t, "pong"))
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL}, testClient(), logger.NewNop())
	assert.NoError(t, o.Probe(context.Background()))
}

func TestNewsAPIFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "news-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, `menopause AND (sleep OR "hot flashes")`, r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "4", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Sleep and menopause","description":"insomnia study","url":"https://n.com/1","urlToImage":"https://n.com/1.jpg","author":"Jane","publishedAt":"2024-01-02T03:04:05Z"},
			{"title":"[Removed]","url":"https://removed.com"},
			{"title":"No url"}
		]}`))
	}))
	defer srv.Close()

	n := NewNewsAPI(NewsAPIConfig{APIKey: "news-key", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := n.Fetch(context.Background(), Query{Topics: []string{"sleep", " hot flashes "}, Max: 4})

	require.True(t, res.OK())
	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, domain.TypeArticle, item.Type)
	assert.Equal(t, []string{"Sleep"}, item.Category)
	assert.Equal(t, "Jane", item.Author.Name)
	assert.Equal(t, "https://n.com/1.jpg", item.Thumbnail)
}

func TestNewsAPIUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":"error","code":"rateLimited"}`))
	}))
	defer srv.Close()

	n := NewNewsAPI(NewsAPIConfig{APIKey: "k", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := n.Fetch(context.Background(), Query{Topics: []string{"sleep"}})

	require.NotNil(t, res.Err)
	assert.Equal(t, FailureUpstream, res.Err.Kind)
	assert.Equal(t, http.StatusTooManyRequests, res.Err.StatusCode)
	assert.Contains(t, res.Err.Body, "rateLimited")
	assert.False(t, res.Unreachable())
}

func TestNewsAPITransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewNewsAPI(NewsAPIConfig{APIKey: "k", BaseURL: url}, testClient(), logger.NewNop())
	res := n.Fetch(context.Background(), Query{})

	require.NotNil(t, res.Err)
	assert.True(t, res.Unreachable())
}

func TestYouTubeFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "yt-key", q.Get("key"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "menopause brain fog", q.Get("q"))
		_, _ = w.Write([]byte(`{"items":[
			{"id":{"videoId":"v1"},"snippet":{"title":"Beating brain fog","description":"memory tips","channelTitle":"Dr Ch","thumbnails":{"high":{"url":"https://i/h.jpg"}}}},
			{"id":{},"snippet":{"title":"channel result"}}
		]}`))
	}))
	defer srv.Close()

	y := NewYouTube(YouTubeConfig{APIKey: "yt-key", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := y.Fetch(context.Background(), Query{Topics: []string{"brain fog"}})

	require.True(t, res.OK())
	require.Len(t, res.Items, 1)
	v := res.Items[0]
	assert.Equal(t, domain.TypeVideo, v.Type)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", v.URL)
	assert.Equal(t, "Dr Ch", v.Author.Name)
	assert.Equal(t, "https://i/h.jpg", v.Thumbnail)
	assert.Equal(t, "5:00", v.Duration)
}

func TestFirecrawlFetchAndProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Bearer fc-key", r.Header.Get("Authorization"))
		if req.Limit == 1 {
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
			return
		}
		assert.Equal(t, "menopause joint pain", req.Query)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"url":"https://www.site.org/joints","title":"Joint pain in midlife","description":"arthritis"}]}`))
	}))
	defer srv.Close()

	f := NewFirecrawl(FirecrawlConfig{APIKey: "fc-key", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := f.Fetch(context.Background(), Query{Topics: []string{"joint pain", "ignored"}})

	require.True(t, res.OK())
	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"Joint Pain"}, res.Items[0].Category)
	assert.NoError(t, f.Probe(context.Background()))
}

func TestFirecrawlUnsuccessfulBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	f := NewFirecrawl(FirecrawlConfig{APIKey: "k", BaseURL: srv.URL}, testClient(), logger.NewNop())
	res := f.Fetch(context.Background(), Query{Topics: []string{"sleep"}})

	require.NotNil(t, res.Err)
	assert.Equal(t, FailureParse, res.Err.Kind)
	assert.Contains(t, res.Err.Error(), "quota exceeded")
}
