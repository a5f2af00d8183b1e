package youtubeapi

import (
	"context"
	"fmt"
	"net/url"
)

// ChannelForHandle resolves an "@handle" (without the @) to a channel id.
// Returns empty string if the handle is unknown.
func (c *Client) ChannelForHandle(ctx context.Context, handle string) (string, error) {
	if handle == "" {
		return "", fmt.Errorf("handle empty")
	}
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", handle)
	params.Set("maxResults", "1")

	var body channelListResponse
	if err := c.get(ctx, "channels", params, &body); err != nil {
		return "", err
	}
	if len(body.Items) == 0 {
		return "", nil
	}
	return body.Items[0].ID, nil
}

// ChannelForUsername resolves a legacy username to a channel id.
// Returns empty string if the username is unknown.
func (c *Client) ChannelForUsername(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username empty")
	}
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forUsername", username)
	params.Set("maxResults", "1")

	var body channelListResponse
	if err := c.get(ctx, "channels", params, &body); err != nil {
		return "", err
	}
	if len(body.Items) == 0 {
		return "", nil
	}
	return body.Items[0].ID, nil
}

// SearchChannelID searches channels by free text and returns the first match's
// channel id, or empty string when the result set is empty.
func (c *Client) SearchChannelID(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "channel")
	params.Set("maxResults", "1")

	var body searchListResponse
	if err := c.get(ctx, "search", params, &body); err != nil {
		return "", err
	}
	if len(body.Items) == 0 {
		return "", nil
	}
	return body.Items[0].Snippet.ChannelID, nil
}
