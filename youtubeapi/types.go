package youtubeapi

// Typed envelopes for the three Data API list endpoints we consume. The API
// bodies are loosely structured; converting them to these shapes at the
// client boundary keeps shape drift out of the pipeline.

// SearchItem is one result from the search endpoint.
type SearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		ChannelID   string `json:"channelId"`
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
}

type searchListResponse struct {
	NextPageToken string       `json:"nextPageToken"`
	Items         []SearchItem `json:"items"`
}

type channelListResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		LiveStreamingDetails struct {
			ScheduledStartTime string `json:"scheduledStartTime"`
			ActualStartTime    string `json:"actualStartTime"`
			ActualEndTime      string `json:"actualEndTime"`
		} `json:"liveStreamingDetails"`
	} `json:"items"`
}

// VideoDetails carries the per-video metadata the assembler needs.
type VideoDetails struct {
	Title              string
	ScheduledStartTime string
	ActualStartTime    string
	ActualEndTime      string
}

// apiError mirrors the error envelope the Data API returns on failures.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
