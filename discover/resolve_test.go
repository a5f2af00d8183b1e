package discover

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/yuytools/streamwatch/testutil"
	"github.com/yuytools/streamwatch/youtubeapi"
)

func newAPIClient(baseURL string) *youtubeapi.Client {
	return &youtubeapi.Client{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		HTTPClient:     &http.Client{Timeout: 5 * time.Second},
		MaxAttempts:    2,
		InitialBackoff: time.Millisecond,
		PageSize:       50,
		BatchSize:      50,
	}
}

func channelSearchHandler(t *testing.T, byQuery map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		id := byQuery[r.URL.Query().Get("q")]
		items := []map[string]any{}
		if id != "" {
			items = append(items, map[string]any{"snippet": map[string]string{"channelId": id}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func failingHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func TestResolveChannelIDDirect(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.Handlers["/channels"] = func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call for channel-id input")
	}
	m.Handlers["/search"] = m.Handlers["/channels"]

	r := NewResolver(newAPIClient(m.URL))
	got, err := r.ResolveChannelID(context.Background(), "UCabcdefghijklmnopqrst12")
	if err != nil {
		t.Fatalf("ResolveChannelID() error = %v", err)
	}
	if got != "UCabcdefghijklmnopqrst12" {
		t.Errorf("ResolveChannelID() = %q", got)
	}
}

func TestResolveChannelIDEmptyInput(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.Handlers["/search"] = func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call for empty input")
	}

	r := NewResolver(newAPIClient(m.URL))
	for _, raw := range []string{"", "   "} {
		_, err := r.ResolveChannelID(context.Background(), raw)
		var resErr *ResolutionError
		if !errors.As(err, &resErr) {
			t.Errorf("ResolveChannelID(%q) error = %v, want *ResolutionError", raw, err)
		}
	}
}

func TestResolveHandleLookupSuccess(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.MockChannels("UC000000000000000000001")

	r := NewResolver(newAPIClient(m.URL))
	got, err := r.ResolveChannelID(context.Background(), "@somechannel")
	if err != nil {
		t.Fatalf("ResolveChannelID() error = %v", err)
	}
	if got != "UC000000000000000000001" {
		t.Errorf("ResolveChannelID() = %q", got)
	}
}

func TestResolveHandleLookupErrorSwallowed(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.Handlers["/channels"] = failingHandler(http.StatusInternalServerError)
	m.Handlers["/search"] = channelSearchHandler(t, map[string]string{
		"@ghost": "UCviaSearchFallback00001",
	})

	r := NewResolver(newAPIClient(m.URL))
	got, err := r.ResolveChannelID(context.Background(), "@ghost")
	if err != nil {
		t.Fatalf("ResolveChannelID() error = %v, want lookup failure swallowed", err)
	}
	if got != "UCviaSearchFallback00001" {
		t.Errorf("ResolveChannelID() = %q", got)
	}
}

func TestResolveHandleLookupErrorPropagatedWhenPolicyOff(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.Handlers["/channels"] = failingHandler(http.StatusInternalServerError)
	m.Handlers["/search"] = func(w http.ResponseWriter, r *http.Request) {
		t.Error("search should not run when handle lookup error propagates")
	}

	r := NewResolver(newAPIClient(m.URL))
	r.SwallowHandleLookupErr = false
	if _, err := r.ResolveChannelID(context.Background(), "@ghost"); err == nil {
		t.Fatal("ResolveChannelID() = nil error, want propagated lookup failure")
	}
}

// Username lookup failures abort the chain while handle lookup failures do
// not. The asymmetry is historical; Resolver.SwallowHandleLookupErr is the
// single place to change it.
func TestResolveUsernameLookupErrorPropagates(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.Handlers["/channels"] = failingHandler(http.StatusInternalServerError)
	m.Handlers["/search"] = func(w http.ResponseWriter, r *http.Request) {
		t.Error("search should not run when username lookup fails")
	}

	r := NewResolver(newAPIClient(m.URL))
	if _, err := r.ResolveChannelID(context.Background(), "https://site/user/oldname"); err == nil {
		t.Fatal("ResolveChannelID() = nil error, want propagated username lookup failure")
	}
}

func TestResolveUsernameSearchFallback(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.MockChannels("") // username unknown
	m.Handlers["/search"] = channelSearchHandler(t, map[string]string{
		"oldname": "UCviaUsernameSearch00001",
	})

	r := NewResolver(newAPIClient(m.URL))
	got, err := r.ResolveChannelID(context.Background(), "https://site/user/oldname")
	if err != nil {
		t.Fatalf("ResolveChannelID() error = %v", err)
	}
	if got != "UCviaUsernameSearch00001" {
		t.Errorf("ResolveChannelID() = %q", got)
	}
}

func TestResolveCatchAllUsesRawInput(t *testing.T) {
	// The strategy search for the trimmed free text misses; the last-resort
	// search runs with the input verbatim.
	m := testutil.NewMockYouTubeServer(t)
	m.Handlers["/search"] = channelSearchHandler(t, map[string]string{
		" some channel ": "UCviaCatchAll00000000001",
	})

	r := NewResolver(newAPIClient(m.URL))
	got, err := r.ResolveChannelID(context.Background(), " some channel ")
	if err != nil {
		t.Fatalf("ResolveChannelID() error = %v", err)
	}
	if got != "UCviaCatchAll00000000001" {
		t.Errorf("ResolveChannelID() = %q", got)
	}
}

func TestResolveNothingFound(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.MockChannels("")
	m.Handlers["/search"] = channelSearchHandler(t, nil)

	r := NewResolver(newAPIClient(m.URL))
	_, err := r.ResolveChannelID(context.Background(), "@nosuchchannel")
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("ResolveChannelID() error = %v, want *ResolutionError", err)
	}
	if resErr.Input != "@nosuchchannel" {
		t.Errorf("ResolutionError.Input = %q", resErr.Input)
	}
}

func TestResolveIdempotent(t *testing.T) {
	m := testutil.NewMockYouTubeServer(t)
	m.MockChannels("UCstable0000000000000001")

	r := NewResolver(newAPIClient(m.URL))
	first, err := r.ResolveChannelID(context.Background(), "@somechannel")
	if err != nil {
		t.Fatalf("first ResolveChannelID() error = %v", err)
	}
	second, err := r.ResolveChannelID(context.Background(), "@somechannel")
	if err != nil {
		t.Fatalf("second ResolveChannelID() error = %v", err)
	}
	if first != second {
		t.Errorf("resolution not idempotent: %q vs %q", first, second)
	}
}
