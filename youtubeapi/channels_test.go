package youtubeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChannelForHandle(t *testing.T) {
	tests := []struct {
		name    string
		handle  string
		items   []map[string]string
		want    string
		wantErr bool
	}{
		{
			name:   "known handle",
			handle: "somechannel",
			items:  []map[string]string{{"id": "UC000000000000000000001"}},
			want:   "UC000000000000000000001",
		},
		{
			name:   "unknown handle yields empty id",
			handle: "nobody",
			items:  []map[string]string{},
			want:   "",
		},
		{
			name:    "empty handle",
			handle:  "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/channels" {
					t.Errorf("path = %s, want /channels", r.URL.Path)
				}
				if got := r.URL.Query().Get("forHandle"); got != tt.handle {
					t.Errorf("forHandle = %q, want %q", got, tt.handle)
				}
				if got := r.URL.Query().Get("maxResults"); got != "1" {
					t.Errorf("maxResults = %q, want 1", got)
				}
				_ = json.NewEncoder(w).Encode(map[string]any{"items": tt.items})
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)
			got, err := c.ChannelForHandle(context.Background(), tt.handle)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ChannelForHandle() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ChannelForHandle() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ChannelForHandle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChannelForUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("forUsername"); got != "legacyname" {
			t.Errorf("forUsername = %q, want legacyname", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{{"id": "UCusernameresolved0000001"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.ChannelForUsername(context.Background(), "legacyname")
	if err != nil {
		t.Fatalf("ChannelForUsername() error = %v", err)
	}
	if got != "UCusernameresolved0000001" {
		t.Errorf("ChannelForUsername() = %q", got)
	}
}

func TestSearchChannelID(t *testing.T) {
	tests := []struct {
		name  string
		items []map[string]any
		want  string
	}{
		{
			name: "first result wins",
			items: []map[string]any{
				{"snippet": map[string]string{"channelId": "UCfirst00000000000000001"}},
				{"snippet": map[string]string{"channelId": "UCsecond0000000000000002"}},
			},
			want: "UCfirst00000000000000001",
		},
		{
			name:  "empty result set",
			items: []map[string]any{},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("type") != "channel" {
					t.Errorf("type = %q, want channel", q.Get("type"))
				}
				if q.Get("q") != "some query" {
					t.Errorf("q = %q, want some query", q.Get("q"))
				}
				if q.Get("maxResults") != "1" {
					t.Errorf("maxResults = %q, want 1", q.Get("maxResults"))
				}
				_ = json.NewEncoder(w).Encode(map[string]any{"items": tt.items})
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)
			got, err := c.SearchChannelID(context.Background(), "some query")
			if err != nil {
				t.Fatalf("SearchChannelID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SearchChannelID() = %q, want %q", got, tt.want)
			}
		})
	}
}
