package handler

import (
	"net/http"
	"testing"

	"github.com/Stewz00/doc-analysis-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func withCORS(origins ...string) envOption {
	return func(cfg *RouterConfig, _ *service.AuthService) {
		cfg.CORSOrigins = origins
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	env := newTestEnv(t, withCORS("http://localhost:3000"))

	w := env.do(t, http.MethodOptions, "/api/v1/auth/login", nil,
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", http.MethodPost,
		"Access-Control-Request-Headers", "Content-Type",
	)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_CORSWildcard(t *testing.T) {
	env := newTestEnv(t, withCORS("*"))

	w := env.do(t, http.MethodOptions, "/api/v1/orders", nil,
		"Origin", "https://frontend.example.com",
		"Access-Control-Request-Method", http.MethodGet,
	)
	assert.Less(t, w.Code, 300)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = env.do(t, http.MethodGet, "/api/v1/orders", nil, "Origin", "https://frontend.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	env := newTestEnv(t, withCORS("http://localhost:3000"))

	w := env.do(t, http.MethodGet, "/api/v1/orders", nil, "Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSOnlyUnderAPIPrefix(t *testing.T) {
	env := newTestEnv(t, withCORS("*"))

	w := env.do(t, http.MethodOptions, "/auth/login", nil,
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", http.MethodPost,
	)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_NoCORSByDefault(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/orders", nil, "Origin", "http://localhost:3000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
