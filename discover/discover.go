package discover

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yuytools/streamwatch/config"
	"github.com/yuytools/streamwatch/telemetry"
	"github.com/yuytools/streamwatch/youtubeapi"
)

// Finder runs the full discovery pipeline: resolve the channel reference,
// search live and upcoming broadcasts, fall back to a recent-upload scan when
// both searches are empty, then fetch details and assemble ordered records.
//
// A Finder holds no mutable state; concurrent independent calls are safe. The
// pipeline itself is sequential and runs to completion or error, so callers
// wanting an overall deadline should put one on ctx.
type Finder struct {
	API      *youtubeapi.Client
	Resolver *Resolver

	LiveLimit       int
	UpcomingLimit   int
	UploadScanLimit int
}

// NewFinder wires a Finder from configuration.
func NewFinder(cfg *config.Config, api *youtubeapi.Client) *Finder {
	return &Finder{
		API:             api,
		Resolver:        NewResolver(api),
		LiveLimit:       cfg.LiveLimit,
		UpcomingLimit:   cfg.UpcomingLimit,
		UploadScanLimit: cfg.UploadScanLimit,
	}
}

// FetchLiveAndUpcoming resolves channelRef and returns the resolved channel
// id plus its live and upcoming broadcasts, LIVE first, deterministically
// ordered. An empty record list with a nil error is a valid outcome.
func (f *Finder) FetchLiveAndUpcoming(ctx context.Context, channelRef string) (string, []StreamRecord, error) {
	if f.API.APIKey == "" {
		return "", nil, fmt.Errorf("missing API key")
	}

	ctx, span := telemetry.StartSpan(ctx, "discover", "discover.fetch",
		attribute.String("channel_ref", channelRef))
	defer span.End()

	var (
		channelID string
		records   []StreamRecord
		err       error
	)
	telemetry.TimeFunc(telemetry.DiscoveryDuration, func() {
		channelID, records, err = f.fetch(ctx, channelRef)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if telemetry.DiscoveryFailure != nil {
			telemetry.DiscoveryFailure.Inc()
		}
		return "", nil, err
	}
	telemetry.SetSpanSuccess(span)
	if telemetry.DiscoverySuccess != nil {
		telemetry.DiscoverySuccess.Inc()
	}
	return channelID, records, nil
}

func (f *Finder) fetch(ctx context.Context, channelRef string) (string, []StreamRecord, error) {
	log := telemetry.LoggerWithCorr(ctx)

	channelID, err := f.Resolver.ResolveChannelID(ctx, channelRef)
	if err != nil {
		return "", nil, err
	}
	log.Debug("channel resolved", slog.String("channel_id", channelID))

	liveItems, err := f.API.SearchBroadcasts(ctx, channelID, youtubeapi.EventLive, f.LiveLimit)
	if err != nil {
		return "", nil, fmt.Errorf("live search: %w", err)
	}
	upcomingItems, err := f.API.SearchBroadcasts(ctx, channelID, youtubeapi.EventUpcoming, f.UpcomingLimit)
	if err != nil {
		return "", nil, fmt.Errorf("upcoming search: %w", err)
	}

	var ids []string
	for _, it := range liveItems {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	for _, it := range upcomingItems {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	details, err := f.API.Details(ctx, ids)
	if err != nil {
		return "", nil, fmt.Errorf("video details: %w", err)
	}

	// Most channels are not live most of the time, so a deeper scan of recent
	// uploads is the only way to spot an active or scheduled broadcast the
	// event searches missed.
	var fallbackDetails map[string]youtubeapi.VideoDetails
	if len(liveItems) == 0 && len(upcomingItems) == 0 {
		if telemetry.FallbackScans != nil {
			telemetry.FallbackScans.Inc()
		}
		log.Debug("no broadcasts from event search, scanning recent uploads",
			slog.String("channel_id", channelID), slog.Int("limit", f.UploadScanLimit))
		recentIDs, err := f.API.RecentUploadIDs(ctx, channelID, f.UploadScanLimit)
		if err != nil {
			return "", nil, fmt.Errorf("upload scan: %w", err)
		}
		if fallbackDetails, err = f.API.Details(ctx, recentIDs); err != nil {
			return "", nil, fmt.Errorf("upload details: %w", err)
		}
	}

	records := Assemble(liveItems, upcomingItems, details, fallbackDetails)
	log.Info("discovery complete",
		slog.String("channel_id", channelID),
		slog.Int("records", len(records)))
	return channelID, records, nil
}
