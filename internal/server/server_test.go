package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/domain"
	"github.com/osse101/GatherBonus_Go/internal/metrics"
	"github.com/osse101/GatherBonus_Go/internal/reload"
)

// MockReloader implements Reloader for testing
type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload(ctx context.Context) (reload.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(reload.Result), args.Error(1)
}

func loadedRegistry(t *testing.T) *bonus.Registry {
	t.Helper()
	snap, err := bonus.BuildSnapshot(bonus.DefaultConfig(), "hash-1")
	require.NoError(t, err)
	return bonus.NewRegistry(snap)
}

func serve(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := NewRouter("", "test", bonus.NewRegistry(nil), new(MockReloader))

	rec := serve(h, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", rec.Body.String())
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
}

func TestReadyz(t *testing.T) {
	empty := NewRouter("", "test", bonus.NewRegistry(nil), new(MockReloader))
	assert.Equal(t, http.StatusServiceUnavailable, serve(empty, http.MethodGet, "/readyz", nil).Code)

	loaded := NewRouter("", "test", loadedRegistry(t), new(MockReloader))
	assert.Equal(t, http.StatusOK, serve(loaded, http.MethodGet, "/readyz", nil).Code)
}

func TestVersion(t *testing.T) {
	h := NewRouter("", "1.2.3", bonus.NewRegistry(nil), new(MockReloader))

	rec := serve(h, http.MethodGet, "/version", nil)

	var info VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewRouter("", "test", loadedRegistry(t), new(MockReloader))

	rec := serve(h, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), metrics.MetricNameActiveRules)
}

func TestGetRules(t *testing.T) {
	h := NewRouter("", "test", loadedRegistry(t), new(MockReloader))

	rec := serve(h, http.MethodGet, "/admin/rules", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body RulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.ChatMessages)
	assert.Equal(t, "hash-1", body.Hash)
	require.Len(t, body.Rules, 2)
	assert.Equal(t, domain.ItemCloth, body.Rules[0].Resource)
	assert.Equal(t, domain.ItemWhiteBerry, body.Rules[1].Resource)
}

func TestGetRule(t *testing.T) {
	h := NewRouter("", "test", loadedRegistry(t), new(MockReloader))

	rec := serve(h, http.MethodGet, "/admin/rules/white.berry", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rule bonus.Rule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rule))
	assert.Equal(t, "Coca Leaf", rule.Entries[0].DisplayName)

	rec = serve(h, http.MethodGet, "/admin/rules/stones", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgRuleNotFound)
}

func TestReload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		reloader := new(MockReloader)
		reloader.On("Reload", mock.Anything).Return(reload.Result{Rules: 2, Hash: "h", Changed: true}, nil).Once()
		h := NewRouter("", "test", loadedRegistry(t), reloader)

		rec := serve(h, http.MethodPost, "/admin/reload", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var result reload.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 2, result.Rules)
		assert.True(t, result.Changed)
		reloader.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		reloader := new(MockReloader)
		reloader.On("Reload", mock.Anything).Return(reload.Result{}, errors.New("disk gone")).Once()
		h := NewRouter("", "test", loadedRegistry(t), reloader)

		rec := serve(h, http.MethodPost, "/admin/reload", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "disk gone")
	})

	t.Run("wrong method", func(t *testing.T) {
		h := NewRouter("", "test", loadedRegistry(t), new(MockReloader))
		assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodGet, "/admin/reload", nil).Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"
	h := NewRouter(apiKey, "test", loadedRegistry(t), new(MockReloader))

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{"valid key", apiKey, "/admin/rules", http.StatusOK},
		{"invalid key", "wrong-key", "/admin/rules", http.StatusUnauthorized},
		{"missing key", "", "/admin/rules", http.StatusUnauthorized},
		{"public healthz", "", "/healthz", http.StatusOK},
		{"public metrics", "", "/metrics", http.StatusOK},
		{"public version", "", "/version", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{}
			if tt.providedKey != "" {
				header[HeaderAPIKey] = tt.providedKey
			}
			rec := serve(h, http.MethodGet, tt.path, header)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
