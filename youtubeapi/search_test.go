package youtubeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func searchPage(n, count int, next string) map[string]any {
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]any{
			"id":      map[string]string{"videoId": fmt.Sprintf("vid%02d-%05d", n, i)},
			"snippet": map[string]string{"title": fmt.Sprintf("Stream %d/%d", n, i)},
		})
	}
	page := map[string]any{"items": items}
	if next != "" {
		page["nextPageToken"] = next
	}
	return page
}

func TestSearchBroadcastsPagination(t *testing.T) {
	// Three pages of 20; limit 50 stops after the third page delivers 10 more
	// than needed (accumulated >= limit).
	pages := map[string]map[string]any{
		"":      searchPage(0, 20, "page1"),
		"page1": searchPage(1, 20, "page2"),
		"page2": searchPage(2, 20, "page3"),
	}
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("eventType") != "live" {
			t.Errorf("eventType = %q, want live", q.Get("eventType"))
		}
		if q.Get("order") != "date" {
			t.Errorf("order = %q, want date", q.Get("order"))
		}
		token := q.Get("pageToken")
		requested = append(requested, token)
		page, ok := pages[token]
		if !ok {
			t.Fatalf("unexpected pageToken %q", token)
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.SearchBroadcasts(context.Background(), "UCchannel000000000000001", EventLive, 50)
	if err != nil {
		t.Fatalf("SearchBroadcasts() error = %v", err)
	}
	if len(items) != 60 {
		t.Errorf("got %d items, want 60 (3 pages of 20)", len(items))
	}
	if len(requested) != 3 {
		t.Errorf("server saw %d pages, want 3", len(requested))
	}
}

func TestSearchBroadcastsStopsWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchPage(0, 2, ""))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.SearchBroadcasts(context.Background(), "UCchannel000000000000001", EventUpcoming, 50)
	if err != nil {
		t.Fatalf("SearchBroadcasts() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestSearchBroadcastsEmptyChannel(t *testing.T) {
	c := newTestClient("http://unused")
	if _, err := c.SearchBroadcasts(context.Background(), "", EventLive, 50); err == nil {
		t.Fatal("SearchBroadcasts(\"\") = nil error, want error")
	}
}

func TestRecentUploadIDs(t *testing.T) {
	var maxResults []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if _, ok := q["eventType"]; ok {
			t.Error("eventType param present, want plain date-ordered video search")
		}
		maxResults = append(maxResults, q.Get("maxResults"))
		if q.Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(searchPage(0, 50, "more"))
			return
		}
		// Second page includes one item with no video id, which is skipped.
		page := searchPage(1, 9, "")
		page["items"] = append(page["items"].([]map[string]any), map[string]any{
			"id":      map[string]string{"videoId": ""},
			"snippet": map[string]string{"title": "channel result"},
		})
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ids, err := c.RecentUploadIDs(context.Background(), "UCchannel000000000000001", 120)
	if err != nil {
		t.Fatalf("RecentUploadIDs() error = %v", err)
	}
	if len(ids) != 59 {
		t.Errorf("got %d ids, want 59 (empty id skipped)", len(ids))
	}
	if len(maxResults) != 2 || maxResults[0] != "50" {
		t.Errorf("maxResults sequence = %v, want first page of 50", maxResults)
	}
}
