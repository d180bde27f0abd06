package share

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/store"
)

func samplePathway() *pathway.Pathway {
	return &pathway.Pathway{
		ID:        "path_0190c6a4-1111-7000-8000-000000000001",
		CreatedAt: "2026-10-18T09:30:00.000Z",
		Title:     "Personalized Pathway to become a Data Analyst",
		Summary:   "Spreadsheets, SQL, then dashboards.",
		Steps: []pathway.Step{
			{Stage: pathway.StageFoundational, Title: "Excel Basics", Duration: "1 month", NSQFLevel: "Level 4"},
		},
		MarketInsights: pathway.MarketInsights{JobDemand: "High"},
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	s, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreResolver(t *testing.T) {
	r := NewStoreResolver(openTestStore(t).SharedPathwayRepo())
	p := samplePathway()

	id, err := r.Publish(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	again, err := r.Publish(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, id, again, "republishing keeps the link stable")

	got, err := r.FetchPublic(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = r.FetchPublic(t.Context(), "path_missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.FetchPublic(t.Context(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreResolverKeepsFirstPublished(t *testing.T) {
	r := NewStoreResolver(openTestStore(t).SharedPathwayRepo())
	p := samplePathway()
	id, err := r.Publish(t.Context(), p)
	require.NoError(t, err)

	edited := samplePathway()
	edited.Title = "Personalized Pathway to become a Plumber"
	other, err := r.Publish(t.Context(), edited)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.True(t, strings.HasPrefix(other, pathway.IDPrefix))
	assert.Equal(t, p.ID, edited.ID, "caller's pathway is not modified")

	got, err := r.FetchPublic(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	got, err = r.FetchPublic(t.Context(), other)
	require.NoError(t, err)
	assert.Equal(t, edited.Title, got.Title)
	assert.Equal(t, other, got.ID)
}

func TestStoreResolverAssignsIDAndRejectsInvalid(t *testing.T) {
	r := NewStoreResolver(openTestStore(t).SharedPathwayRepo())

	p := samplePathway()
	p.ID = ""
	id, err := r.Publish(t.Context(), p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, pathway.IDPrefix))
	assert.Empty(t, p.ID, "caller's pathway is not modified")

	bad := samplePathway()
	bad.Steps = nil
	_, err = r.Publish(t.Context(), bad)
	assert.Error(t, err)

	_, err = r.Publish(t.Context(), nil)
	assert.Error(t, err)
}

func TestStoreResolverCorruptRecord(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SharedPathwayRepo().Publish(t.Context(), "path_bad", []byte(`{"pathwayTitle":""}`)))

	_, err := NewStoreResolver(s.SharedPathwayRepo()).FetchPublic(t.Context(), "path_bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestHTTPResolverFetch(t *testing.T) {
	p := samplePathway()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case APIPrefix + "/" + p.ID:
			json.NewEncoder(w).Encode(p)
		case APIPrefix + "/path_broken":
			w.WriteHeader(http.StatusInternalServerError)
		case APIPrefix + "/path_garbage":
			io.WriteString(w, "<html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := NewHTTPResolver(srv.URL+"/", nil)

	got, err := r.FetchPublic(t.Context(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)

	_, err = r.FetchPublic(t.Context(), "path_unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, id := range []string{"path_broken", "path_garbage"} {
		_, err = r.FetchPublic(t.Context(), id)
		require.Error(t, err, id)
		assert.NotErrorIs(t, err, ErrNotFound, id)
	}
}

func TestHTTPResolverPublish(t *testing.T) {
	var received pathway.Pathway
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != APIPrefix {
			http.NotFound(w, r)
			return
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PublishResponse{ID: received.ID})
	}))
	defer srv.Close()

	p := samplePathway()
	id, err := NewHTTPResolver(srv.URL, nil).Publish(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)
	assert.Equal(t, p.Title, received.Title)

	_, err = NewHTTPResolver(srv.URL+"/elsewhere", nil).Publish(t.Context(), p)
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	loc := ParseLocation("https://navigator.example/?lang=hi&pathway=path_abc")
	assert.Equal(t, "path_abc", loc.SharedID())

	loc.StripSharedID()
	assert.Empty(t, loc.SharedID())
	assert.Equal(t, "https://navigator.example/?lang=hi", loc.String())

	assert.Empty(t, ParseLocation("").SharedID())
	assert.Empty(t, ParseLocation("%zz").SharedID())

	var nilLoc *Location
	assert.Empty(t, nilLoc.SharedID())
	nilLoc.StripSharedID()

	byID := LocationForID("", "path_xyz")
	assert.Equal(t, "path_xyz", byID.SharedID())
	assert.Equal(t, DefaultBase+"/?pathway=path_xyz", ShareLink("", "path_xyz"))
	assert.Equal(t, "https://a.example/?pathway=p", ShareLink("https://a.example/", "p"))
}

func TestBaseForListen(t *testing.T) {
	tests := []struct {
		listen string
		want   string
	}{
		{":8080", DefaultBase},
		{":9090", "http://localhost:9090"},
		{"0.0.0.0:7000", "http://localhost:7000"},
		{"[::]:7000", "http://localhost:7000"},
		{"share.lan:80", "http://share.lan:80"},
		{"[::1]:8443", "http://[::1]:8443"},
		{"", DefaultBase},
		{"nonsense", DefaultBase},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseForListen(tt.listen), tt.listen)
	}
}
