package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Stewz00/doc-analysis-api/internal/credentials"
	"github.com/Stewz00/doc-analysis-api/internal/logging"
	"github.com/Stewz00/doc-analysis-api/internal/middleware"
	"github.com/Stewz00/doc-analysis-api/internal/service"
	"github.com/Stewz00/doc-analysis-api/internal/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testEnv struct {
	router  http.Handler
	repo    *test.MockUserRepository
	store   *credentials.Store
	service *service.AuthService
}

type envOption func(*RouterConfig, *service.AuthService)

func withResourceAuth() envOption {
	return func(cfg *RouterConfig, s *service.AuthService) {
		cfg.ResourceAuth = middleware.RequireAuth(s)
	}
}

func withCheckers(cs ...Checker) envOption {
	return func(cfg *RouterConfig, _ *service.AuthService) {
		cfg.Health = NewHealthHandler(logging.Discard(), cs...)
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	logger := logging.Discard()
	repo := test.NewMockUserRepository()
	store, err := credentials.NewStore(repo, bcrypt.MinCost)
	require.NoError(t, err)
	authService := service.NewAuthService(store, testSecret, service.WithLogger(logger))

	resources := make([]*ResourceHandler, 0, len(Resources))
	for _, res := range Resources {
		resources = append(resources, NewResourceHandler(res, logger))
	}

	cfg := RouterConfig{
		Auth:             NewAuthHandler(authService, logger),
		Resources:        resources,
		Health:           NewHealthHandler(logger),
		Logger:           logger,
		DisableRateLimit: true,
	}
	for _, opt := range opts {
		opt(&cfg, authService)
	}

	return &testEnv{router: NewRouter(cfg), repo: repo, store: store, service: authService}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.NewDecoder(strings.NewReader(w.Body.String())).Decode(&m))
	return m
}
