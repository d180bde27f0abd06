package shareserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/share"
	"github.com/abhisek/skillnav/internal/store"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *store.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	st, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(cfg, st.SharedPathwayRepo(), zap.NewNop()), st
}

func samplePathway() pathway.Pathway {
	return pathway.Pathway{
		ID:        "path_0190c6a4-2222-7000-8000-000000000002",
		CreatedAt: "2026-10-18T10:00:00.000Z",
		Title:     "Your Pathway to becoming a Welder",
		Steps: []pathway.Step{
			{Stage: pathway.StageCoreSkills, Title: "Arc Welding", Duration: "3 months", NSQFLevel: "Level 3"},
		},
	}
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublishAndFetch(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())
	h := s.Handler()

	body, err := json.Marshal(samplePathway())
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, share.APIPrefix, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out share.PublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, samplePathway().ID, out.ID)

	rec = do(t, h, http.MethodGet, share.APIPrefix+"/"+out.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got pathway.Pathway
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, samplePathway(), got)

	rec = do(t, h, http.MethodGet, share.APIPrefix+"/path_nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishNeverReplacesSharedContent(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())
	h := s.Handler()
	original := samplePathway()

	body, err := json.Marshal(original)
	require.NoError(t, err)
	rec := do(t, h, http.MethodPost, share.APIPrefix, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, share.APIPrefix, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var again share.PublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, original.ID, again.ID, "identical content keeps its id")

	forged := samplePathway()
	forged.Title = "Send your fees to scam@example.com"
	body, err = json.Marshal(forged)
	require.NoError(t, err)
	rec = do(t, h, http.MethodPost, share.APIPrefix, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var moved share.PublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moved))
	assert.NotEqual(t, original.ID, moved.ID, "a taken id is not reused for other content")

	rec = do(t, h, http.MethodGet, share.APIPrefix+"/"+original.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got pathway.Pathway
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, original.Title, got.Title)

	rec = do(t, h, http.MethodGet, share.APIPrefix+"/"+moved.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, forged.Title, got.Title)
}

func TestPublishRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())
	h := s.Handler()

	invalid := samplePathway()
	invalid.Title = ""
	body, _ := json.Marshal(invalid)

	tests := []struct {
		name string
		body []byte
		want int
	}{
		{"not json", []byte("{"), http.StatusBadRequest},
		{"invalid pathway", body, http.StatusBadRequest},
		{"too large", bytes.Repeat([]byte("a"), maxBodyBytes+10), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, share.APIPrefix, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCorruptRecordIsServerError(t *testing.T) {
	s, st := newTestServer(t, DefaultConfig())
	require.NoError(t, st.SharedPathwayRepo().Publish(t.Context(), "path_bad", []byte("nope")))

	rec := do(t, s.Handler(), http.MethodGet, share.APIPrefix+"/path_bad", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	do(t, h, http.MethodGet, share.APIPrefix+"/path_nope", nil)

	rec = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	metricsBody := rec.Body.String()
	assert.Contains(t, metricsBody, `skillnav_share_http_requests_total{endpoint="/api/pathways/:id",method="GET",status="404"} 1`)
	assert.Contains(t, metricsBody, "skillnav_share_pathways_published_total 0")
}

func TestCORS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"https://navigator.example"}
	s, _ := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://navigator.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "https://navigator.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RatePerMinute = 1
	cfg.Burst = 2
	s, _ := newTestServer(t, cfg)
	h := s.Handler()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/healthz", nil).Code)
}

func TestIPLimiterSweepsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	l := newIPLimiter(60, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))

	now = now.Add(5 * time.Minute)
	assert.True(t, l.allow("10.0.0.3"))
	assert.Len(t, l.visitors, 1)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
