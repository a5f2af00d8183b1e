package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuytools/streamwatch/youtubeapi"
)

// ResolutionError means no strategy in the resolver chain produced a channel id.
type ResolutionError struct {
	Input string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve channel from input: %s", e.Input)
}

// Resolver turns a classified channel reference into a canonical channel id,
// trying successive strategies until one yields a non-empty result.
type Resolver struct {
	API *youtubeapi.Client

	// SwallowHandleLookupErr controls whether a failed handle lookup is
	// treated as "no result" (falling through to the search strategy) instead
	// of aborting. Username lookups always propagate their errors. Defaults
	// to true, matching historical behavior; see resolve_test for the policy
	// asymmetry this guards.
	SwallowHandleLookupErr bool
}

// NewResolver returns a Resolver with the historical error-handling policy.
func NewResolver(api *youtubeapi.Client) *Resolver {
	return &Resolver{API: api, SwallowHandleLookupErr: true}
}

// ResolveChannelID resolves raw to a channel id or fails with ResolutionError.
// A channel-id input returns immediately with no network call. All other
// variants try their dedicated lookup, then a single-result channel search,
// and finally one unconditional catch-all search on the original input.
func (r *Resolver) ResolveChannelID(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ResolutionError{Input: raw}
	}

	in := Classify(raw)
	switch in.Kind {
	case KindChannelID:
		return in.Value, nil

	case KindHandle:
		id, err := r.API.ChannelForHandle(ctx, in.Value)
		if err != nil {
			if !r.SwallowHandleLookupErr {
				return "", fmt.Errorf("handle lookup: %w", err)
			}
			id = ""
		}
		if id == "" {
			if id, err = r.API.SearchChannelID(ctx, "@"+in.Value); err != nil {
				return "", err
			}
		}
		if id != "" {
			return id, nil
		}

	case KindUsername:
		id, err := r.API.ChannelForUsername(ctx, in.Value)
		if err != nil {
			return "", fmt.Errorf("username lookup: %w", err)
		}
		if id == "" {
			if id, err = r.API.SearchChannelID(ctx, in.Value); err != nil {
				return "", err
			}
		}
		if id != "" {
			return id, nil
		}

	case KindCustomSlug, KindFreeText:
		id, err := r.API.SearchChannelID(ctx, in.Value)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}

	// Last resort: search with the original input verbatim.
	id, err := r.API.SearchChannelID(ctx, raw)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	return "", &ResolutionError{Input: raw}
}
