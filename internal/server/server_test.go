package server

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/obaidurrehman72007/deep-lens/internal/config"
)

func testServer() *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			GoogleClientID:     "test-client-id",
		},
		Share: config.ShareConfig{LinkTTL: 30 * 24 * time.Hour},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := New(cfg, nil, logger)
	s.SetupRoutes()
	return s
}

func TestRegisteredRoutes(t *testing.T) {
	s := testServer()

	registered := make(map[string]bool)
	for _, route := range s.app.GetRoutes() {
		registered[route.Method+" "+route.Path] = true
	}

	wanted := []string{
		"GET /health",
		"GET /health/live",
		"GET /health/ready",
		"POST /auth/google",
		"POST /auth/refresh",
		"POST /auth/logout",
		"GET /auth/me",
		"POST /api/settings/key",
		"POST /api/videos/",
		"GET /api/videos/",
		"GET /api/videos/:videoId",
		"DELETE /api/videos/:videoId",
		"POST /api/videos/:videoId/summarize",
		"GET /api/notes/:videoId",
		"POST /api/notes/:videoId",
		"PUT /api/notes/note/:noteId",
		"DELETE /api/notes/note/:noteId",
		"GET /api/canvas/:videoId",
		"GET /api/canvas/:videoId/frame",
		"POST /api/canvas/:videoId/save",
		"POST /api/shared/:videoId",
		"GET /api/shared-stats",
		"GET /api/shared/:token",
		"GET /api/shared-canvas/:token/:videoId?",
		"GET /api/logs/:videoId",
	}
	for _, want := range wanted {
		if !registered[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}

func TestCanvasSaveRouteHasSaveSuffix(t *testing.T) {
	s := testServer()

	for _, route := range s.app.GetRoutes() {
		if route.Method == "POST" && route.Path == "/api/canvas/:videoId" {
			t.Fatalf("canvas save registered without /save suffix: %s %s", route.Method, route.Path)
		}
	}
}
