// Package discover turns an arbitrary channel reference into that channel's
// live and upcoming broadcasts. It classifies the raw input, resolves it to a
// canonical channel id through a chain of strategies, searches for live and
// upcoming broadcasts, and falls back to scanning recent uploads when the
// live-status endpoints report nothing.
package discover

import (
	"regexp"
	"strings"
)

// InputKind tags which resolution path applies to a channel reference.
type InputKind int

const (
	KindChannelID InputKind = iota
	KindHandle
	KindUsername
	KindCustomSlug
	KindFreeText
)

func (k InputKind) String() string {
	switch k {
	case KindChannelID:
		return "channel_id"
	case KindHandle:
		return "handle"
	case KindUsername:
		return "username"
	case KindCustomSlug:
		return "custom_slug"
	case KindFreeText:
		return "free_text"
	}
	return "unknown"
}

// ClassifiedInput is the tagged result of classifying a raw reference.
type ClassifiedInput struct {
	Kind  InputKind
	Value string
}

var (
	channelIDRe = regexp.MustCompile(`(?:^|/)(UC[0-9A-Za-z_-]{22})(?:$|/)`)
	handleRe    = regexp.MustCompile(`(?:^|/)@([A-Za-z0-9._-]+)(?:$|/)`)
	userRe      = regexp.MustCompile(`(?:^|/)user/([A-Za-z0-9._-]+)(?:$|/)`)
	customCRe   = regexp.MustCompile(`(?:^|/)c/([A-Za-z0-9._-]+)(?:$|/)`)

	videoIDRe    = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	videoInURLRe = regexp.MustCompile(`[?&]v=([0-9A-Za-z_-]{11})|/live/([0-9A-Za-z_-]{11})|/shorts/([0-9A-Za-z_-]{11})|/watch/([0-9A-Za-z_-]{11})`)
)

// Classify parses a raw channel reference into the variant describing which
// resolution path applies. It is pure and total: the same string always
// yields the same result, and anything unrecognized becomes free text used
// verbatim as a search query.
func Classify(raw string) ClassifiedInput {
	txt := strings.TrimSpace(raw)

	if m := channelIDRe.FindStringSubmatch(txt); m != nil {
		return ClassifiedInput{Kind: KindChannelID, Value: m[1]}
	}
	if strings.HasPrefix(txt, "@") {
		return ClassifiedInput{Kind: KindHandle, Value: txt[1:]}
	}
	if m := handleRe.FindStringSubmatch(txt); m != nil {
		return ClassifiedInput{Kind: KindHandle, Value: m[1]}
	}
	if m := userRe.FindStringSubmatch(txt); m != nil {
		return ClassifiedInput{Kind: KindUsername, Value: m[1]}
	}
	if m := customCRe.FindStringSubmatch(txt); m != nil {
		return ClassifiedInput{Kind: KindCustomSlug, Value: m[1]}
	}
	// Lenient fallback: accepts malformed or truncated ids without strict
	// length validation.
	if strings.HasPrefix(txt, "UC") && len(txt) >= 24 {
		return ClassifiedInput{Kind: KindChannelID, Value: txt}
	}
	return ClassifiedInput{Kind: KindFreeText, Value: txt}
}

// ExtractVideoID pulls an 11-character video id out of a watch/live/shorts
// URL, or accepts a bare id. Returns empty string when nothing matches.
func ExtractVideoID(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if m := videoInURLRe.FindStringSubmatch(s); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				return g
			}
		}
	}
	if videoIDRe.MatchString(s) {
		return s
	}
	return ""
}
