package youtubeapi

import (
	"context"
	"net/url"
	"strings"
)

// Details fetches snippet and live-streaming metadata for the given video ids
// in batches (the API caps one call at 50 ids). Empty input returns an empty
// map without a network call.
func (c *Client) Details(ctx context.Context, videoIDs []string) (map[string]VideoDetails, error) {
	out := make(map[string]VideoDetails, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}

	batch := c.BatchSize
	if batch <= 0 {
		batch = 50
	}
	for i := 0; i < len(videoIDs); i += batch {
		end := i + batch
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		chunk := videoIDs[i:end]

		params := url.Values{}
		params.Set("part", "snippet,liveStreamingDetails")
		params.Set("id", strings.Join(chunk, ","))

		var body videoListResponse
		if err := c.get(ctx, "videos", params, &body); err != nil {
			return nil, err
		}
		for _, v := range body.Items {
			out[v.ID] = VideoDetails{
				Title:              v.Snippet.Title,
				ScheduledStartTime: v.LiveStreamingDetails.ScheduledStartTime,
				ActualStartTime:    v.LiveStreamingDetails.ActualStartTime,
				ActualEndTime:      v.LiveStreamingDetails.ActualEndTime,
			}
		}
	}
	return out, nil
}
