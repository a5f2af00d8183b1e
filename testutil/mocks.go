// Package testutil provides shared fakes for tests, chiefly a mock YouTube
// Data API server with per-endpoint canned responses.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// VideoFixture describes one video the mock API knows about.
type VideoFixture struct {
	ID        string
	Title     string
	Scheduled string
	Started   string
	Ended     string
}

// MockYouTubeServer is a test server that mocks YouTube Data API responses.
type MockYouTubeServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockYouTubeServer creates a new mock Data API server. Unregistered paths
// return 404.
func NewMockYouTubeServer(t *testing.T) *MockYouTubeServer {
	t.Helper()
	m := &MockYouTubeServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockChannels registers the /channels endpoint. Empty id yields an empty
// item list (unknown handle/username).
func (m *MockYouTubeServer) MockChannels(id string) {
	m.Handlers["/channels"] = func(w http.ResponseWriter, r *http.Request) {
		items := []map[string]string{}
		if id != "" {
			items = append(items, map[string]string{"id": id})
		}
		writeJSON(w, map[string]any{"items": items})
	}
}

// MockSearch registers a /search endpoint that routes on query parameters:
// type=channel returns channelID (empty means no match), eventType=live and
// eventType=upcoming return the respective broadcast fixtures, and a video
// search with no eventType returns the uploads.
func (m *MockYouTubeServer) MockSearch(channelID string, live, upcoming, uploads []VideoFixture) {
	m.Handlers["/search"] = func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") == "channel" {
			items := []map[string]any{}
			if channelID != "" {
				items = append(items, map[string]any{
					"snippet": map[string]string{"channelId": channelID},
				})
			}
			writeJSON(w, map[string]any{"items": items})
			return
		}
		var vids []VideoFixture
		switch q.Get("eventType") {
		case "live":
			vids = live
		case "upcoming":
			vids = upcoming
		default:
			vids = uploads
		}
		writeJSON(w, map[string]any{"items": searchItems(vids)})
	}
}

// MockVideos registers the /videos endpoint, returning details for every
// requested id the fixture set knows.
func (m *MockYouTubeServer) MockVideos(vids []VideoFixture) {
	byID := make(map[string]VideoFixture, len(vids))
	for _, v := range vids {
		byID[v.ID] = v
	}
	m.Handlers["/videos"] = func(w http.ResponseWriter, r *http.Request) {
		items := []map[string]any{}
		for _, id := range strings.Split(r.URL.Query().Get("id"), ",") {
			v, ok := byID[id]
			if !ok {
				continue
			}
			lsd := map[string]string{}
			if v.Scheduled != "" {
				lsd["scheduledStartTime"] = v.Scheduled
			}
			if v.Started != "" {
				lsd["actualStartTime"] = v.Started
			}
			if v.Ended != "" {
				lsd["actualEndTime"] = v.Ended
			}
			items = append(items, map[string]any{
				"id":                   v.ID,
				"snippet":              map[string]string{"title": v.Title},
				"liveStreamingDetails": lsd,
			})
		}
		writeJSON(w, map[string]any{"items": items})
	}
}

func searchItems(vids []VideoFixture) []map[string]any {
	items := []map[string]any{}
	for _, v := range vids {
		items = append(items, map[string]any{
			"id":      map[string]string{"kind": "youtube#video", "videoId": v.ID},
			"snippet": map[string]string{"title": v.Title},
		})
	}
	return items
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // test mock response
}
