package discover

import (
	"sort"

	"github.com/yuytools/streamwatch/youtubeapi"
)

// Status classifies a discovered broadcast.
type Status string

const (
	StatusLive     Status = "LIVE"
	StatusUpcoming Status = "UPCOMING"
)

// StreamRecord is one live or upcoming broadcast, ready for display.
type StreamRecord struct {
	Status             Status `json:"status"`
	Title              string `json:"title"`
	VideoID            string `json:"videoId"`
	URL                string `json:"url"`
	ScheduledStartTime string `json:"scheduledStartTime,omitempty"`
	ActualStartTime    string `json:"actualStartTime,omitempty"`
}

// WatchURL derives the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ChatURL derives the popout live-chat URL for a video id.
func ChatURL(videoID string) string {
	return "https://www.youtube.com/live_chat?is_popout=1&v=" + videoID
}

// Assemble merges search results with fetched details into a deduplicated,
// deterministically ordered record list. The fallback details are consulted
// only when the live/upcoming results produce no records: a fallback video
// counts as LIVE when it started and has not ended, UPCOMING when it is
// scheduled and has not started, and is skipped otherwise.
func Assemble(liveItems, upcomingItems []youtubeapi.SearchItem, details, fallbackDetails map[string]youtubeapi.VideoDetails) []StreamRecord {
	var records []StreamRecord
	records = appendFromSearch(records, liveItems, StatusLive, details)
	records = appendFromSearch(records, upcomingItems, StatusUpcoming, details)

	if len(records) == 0 {
		for vid, det := range fallbackDetails {
			switch {
			case det.ActualStartTime != "" && det.ActualEndTime == "":
				records = append(records, record(StatusLive, det.Title, vid, det))
			case det.ScheduledStartTime != "" && det.ActualStartTime == "":
				records = append(records, record(StatusUpcoming, det.Title, vid, det))
			}
		}
	}

	// Dedup by video id, last insertion wins, first insertion keeps its slot.
	byID := make(map[string]int, len(records))
	deduped := records[:0]
	for _, r := range records {
		if i, ok := byID[r.VideoID]; ok {
			deduped[i] = r
			continue
		}
		byID[r.VideoID] = len(deduped)
		deduped = append(deduped, r)
	}
	records = deduped

	sort.SliceStable(records, func(i, j int) bool {
		return sortKeyLess(records[i], records[j])
	})
	return records
}

func appendFromSearch(records []StreamRecord, items []youtubeapi.SearchItem, status Status, details map[string]youtubeapi.VideoDetails) []StreamRecord {
	for _, it := range items {
		vid := it.ID.VideoID
		if vid == "" {
			continue
		}
		det, ok := details[vid]
		title := det.Title
		if !ok || title == "" {
			title = it.Snippet.Title
		}
		records = append(records, record(status, title, vid, det))
	}
	return records
}

func record(status Status, title, videoID string, det youtubeapi.VideoDetails) StreamRecord {
	return StreamRecord{
		Status:             status,
		Title:              title,
		VideoID:            videoID,
		URL:                WatchURL(videoID),
		ScheduledStartTime: det.ScheduledStartTime,
		ActualStartTime:    det.ActualStartTime,
	}
}

// sortKeyLess orders LIVE before UPCOMING; LIVE ascending by actual start
// (missing first), UPCOMING ascending by scheduled start (missing last),
// both tie-broken by title.
func sortKeyLess(a, b StreamRecord) bool {
	ra, rb := rank(a.Status), rank(b.Status)
	if ra != rb {
		return ra < rb
	}
	ta, tb := sortTime(a), sortTime(b)
	if ta != tb {
		return ta < tb
	}
	return a.Title < b.Title
}

func rank(s Status) int {
	if s == StatusLive {
		return 0
	}
	return 1
}

func sortTime(r StreamRecord) string {
	if r.Status == StatusLive {
		return r.ActualStartTime
	}
	if r.ScheduledStartTime == "" {
		return "9999"
	}
	return r.ScheduledStartTime
}
