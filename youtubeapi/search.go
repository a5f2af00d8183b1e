package youtubeapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Broadcast event types accepted by the search endpoint.
const (
	EventLive     = "live"
	EventUpcoming = "upcoming"
)

// SearchBroadcasts pages through a channel's broadcasts of the given event
// type, newest first, until the API stops returning continuation tokens or
// limit results have accumulated.
func (c *Client) SearchBroadcasts(ctx context.Context, channelID, eventType string, limit int) ([]SearchItem, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channelID empty")
	}

	var all []SearchItem
	pageToken := ""
	for {
		count := limit - len(all)
		if count > c.pageSize() {
			count = c.pageSize()
		}
		if count <= 0 {
			break
		}

		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("channelId", channelID)
		params.Set("type", "video")
		params.Set("eventType", eventType)
		params.Set("order", "date")
		params.Set("maxResults", strconv.Itoa(count))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var body searchListResponse
		if err := c.get(ctx, "search", params, &body); err != nil {
			return nil, err
		}
		all = append(all, body.Items...)
		pageToken = body.NextPageToken
		if pageToken == "" || len(all) >= limit {
			break
		}
	}
	return all, nil
}

// RecentUploadIDs pages through a channel's most recent uploads by publish
// date, with no live-status filter, and returns their video ids. Used as the
// fallback when the live/upcoming searches come back empty.
func (c *Client) RecentUploadIDs(ctx context.Context, channelID string, limit int) ([]string, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channelID empty")
	}

	var ids []string
	fetched := 0
	pageToken := ""
	for {
		count := limit - fetched
		if count > c.pageSize() {
			count = c.pageSize()
		}
		if count <= 0 {
			break
		}

		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("channelId", channelID)
		params.Set("type", "video")
		params.Set("order", "date")
		params.Set("maxResults", strconv.Itoa(count))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var body searchListResponse
		if err := c.get(ctx, "search", params, &body); err != nil {
			return nil, err
		}
		for _, it := range body.Items {
			if it.ID.VideoID != "" {
				ids = append(ids, it.ID.VideoID)
			}
		}
		fetched += len(body.Items)
		pageToken = body.NextPageToken
		if pageToken == "" || fetched >= limit {
			break
		}
	}
	return ids, nil
}

func (c *Client) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return 50
}
