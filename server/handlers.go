package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuytools/streamwatch/config"
	"github.com/yuytools/streamwatch/discover"
	"github.com/yuytools/streamwatch/telemetry"
	"github.com/yuytools/streamwatch/youtubeapi"
)

// Handlers bundles the dependencies HTTP handlers need.
type Handlers struct {
	cfg     *config.Config
	finder  *discover.Finder
	started time.Time
}

// NewHandlers creates handlers with their dependencies.
func NewHandlers(cfg *config.Config, finder *discover.Finder) *Handlers {
	return &Handlers{cfg: cfg, finder: finder, started: time.Now()}
}

// HandleHealthz responds to liveness probe requests.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleReadyz responds to readiness probe requests: the service is ready
// when it can talk to the upstream API, which needs a configured key.
func (h *Handlers) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.cfg.ValidateAPIReady(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

// HandleStatus reports uptime and effective non-secret configuration.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"uptime_seconds":    int(time.Since(h.started).Seconds()),
		"api_base_url":      h.cfg.APIBaseURL,
		"api_key_set":       h.cfg.APIKey != "",
		"live_limit":        h.cfg.LiveLimit,
		"upcoming_limit":    h.cfg.UpcomingLimit,
		"upload_scan_limit": h.cfg.UploadScanLimit,
	})
}

// streamsResponse is the /streams success body.
type streamsResponse struct {
	ChannelID string                  `json:"channelId"`
	Streams   []discover.StreamRecord `json:"streams"`
}

// HandleStreams runs the discovery pipeline for the channel reference in the
// "channel" query parameter. An empty stream list is a valid 200; resolution
// failures are 404 and upstream API failures are 502, with the upstream
// message passed through verbatim.
func (h *Handlers) HandleStreams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	channelRef := r.URL.Query().Get("channel")
	if channelRef == "" {
		writeError(w, http.StatusBadRequest, "missing channel parameter")
		return
	}

	channelID, records, err := h.finder.FetchLiveAndUpcoming(r.Context(), channelRef)
	if err != nil {
		var resErr *discover.ResolutionError
		var reqErr *youtubeapi.RequestError
		switch {
		case errors.As(err, &resErr):
			writeError(w, http.StatusNotFound, resErr.Error())
		case errors.As(err, &reqErr):
			writeError(w, http.StatusBadGateway, reqErr.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		telemetry.LoggerWithCorr(r.Context()).Warn("discovery failed",
			slog.String("channel_ref", channelRef), slog.Any("err", err))
		return
	}

	if records == nil {
		records = []discover.StreamRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(streamsResponse{ChannelID: channelID, Streams: records})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
