package contentstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// fakeContentAPI serves a minimal in-memory content API.
type fakeContentAPI struct {
	mu       sync.Mutex
	sections map[string]content.Section
	token    string
}

func (f *fakeContentAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	name := r.URL.Path[len("/api/content/"):]
	switch r.Method {
	case http.MethodGet:
		data, ok := f.sections[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Content not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	case http.MethodPut:
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Authorization token required"})
			return
		}
		var data content.Section
		_ = json.NewDecoder(r.Body).Decode(&data)
		f.sections[name] = data
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
}

func TestRemoteStore_RoundTripAndMissing(t *testing.T) {
	t.Parallel()
	api := &fakeContentAPI{sections: map[string]content.Section{}, token: "tok"}
	srv := httptest.NewServer(api)
	defer srv.Close()

	ctx := context.Background()
	store := NewRemoteStore(srv.URL+"/api", "tok", srv.Client())

	_, found, err := store.Get(ctx, content.SectionStats)
	require.NoError(t, err)
	assert.False(t, found)

	payload := content.Section{"teamMembers": "80"}
	require.NoError(t, store.Set(ctx, content.SectionStats, payload))

	got, found, err := store.Get(ctx, content.SectionStats)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload, got)
}

func TestRemoteStore_SurfacesBackendMessage(t *testing.T) {
	t.Parallel()
	api := &fakeContentAPI{sections: map[string]content.Section{}, token: "tok"}
	srv := httptest.NewServer(api)
	defer srv.Close()

	store := NewRemoteStore(srv.URL+"/api", "wrong", srv.Client())
	err := store.Set(context.Background(), content.SectionStats, content.Section{"teamMembers": "1"})

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusUnauthorized, backendErr.Status)
	assert.Equal(t, "Authorization token required", backendErr.Message)
}

func TestRemoteStore_Unreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := NewRemoteStore(url+"/api", "", nil)
	_, _, err := store.Get(context.Background(), content.SectionStats)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestCachedStore_FallsBackOnlyWhenUnreachable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	api := &fakeContentAPI{sections: map[string]content.Section{}, token: "tok"}
	srv := httptest.NewServer(api)

	cache := NewLocalStore(filepath.Join(t.TempDir(), "cache.json"), "tsb_", 0)
	store := NewCachedStore(NewRemoteStore(srv.URL+"/api", "tok", srv.Client()), cache, logging.NewDiscardLogger())

	require.NoError(t, store.Set(ctx, content.SectionFooter, content.Section{"copyright": "2024"}))

	// Authoritative store wins while reachable.
	api.mu.Lock()
	api.sections[content.SectionFooter] = content.Section{"copyright": "2025"}
	api.mu.Unlock()
	got, _, err := store.Get(ctx, content.SectionFooter)
	require.NoError(t, err)
	assert.Equal(t, "2025", got["copyright"])

	srv.Close()
	got, found, err := store.Get(ctx, content.SectionFooter)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2025", got["copyright"])

	err = store.Set(ctx, content.SectionFooter, content.Section{"copyright": "2026"})
	assert.ErrorIs(t, err, ErrUnreachable)
}
