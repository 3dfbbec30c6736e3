package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultHistoryTTL matches the original tool's 12-hour stats cache window.
const DefaultHistoryTTL = 12 * time.Hour

// Cache is the subset of the payload store the cached client needs.
type Cache interface {
	Get(ctx context.Context, userID, resource string, ttl time.Duration) ([]byte, bool, error)
	Put(ctx context.Context, userID, resource string, body []byte) error
}

// CachedClient is a read-through caching wrapper around Client. Cache
// failures degrade to a direct fetch; they never fail the run.
type CachedClient struct {
	client *Client
	cache  Cache
	ttl    time.Duration
}

// NewCachedClient wraps client with the payload cache. A ttl of zero selects
// DefaultHistoryTTL for the history and streaks resources; puzzle payloads
// never expire.
func NewCachedClient(client *Client, cache Cache, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultHistoryTTL
	}
	return &CachedClient{client: client, cache: cache, ttl: ttl}
}

// FetchSolveHistory returns the puzzle history, served from the cache when a
// fresh entry for the same date range exists.
func (cc *CachedClient) FetchSolveHistory(ctx context.Context, start, stop time.Time) (SolveHistory, error) {
	resource := fmt.Sprintf("puzzles/%s/%s", start.Format("2006-01-02"), stop.Format("2006-01-02"))
	var history SolveHistory
	if ok := cc.lookup(ctx, resource, cc.ttl, &history); ok {
		return history, nil
	}
	body, err := cc.client.get(ctx, cc.client.historyEndpoint(start, stop))
	if err != nil {
		return SolveHistory{}, err
	}
	if err := json.Unmarshal(body, &history); err != nil {
		return SolveHistory{}, fmt.Errorf("%w: failed to decode response: %v", ErrFormat, err)
	}
	cc.store(ctx, resource, body)
	return history, nil
}

// FetchStreaks returns the streak summary, cached like the history.
func (cc *CachedClient) FetchStreaks(ctx context.Context) (StreakStats, error) {
	const resource = "stats-and-streaks"
	var stats StreakStats
	if ok := cc.lookup(ctx, resource, cc.ttl, &stats); ok {
		return stats, nil
	}
	body, err := cc.client.get(ctx, cc.client.streaksEndpoint())
	if err != nil {
		return StreakStats{}, err
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		return StreakStats{}, fmt.Errorf("%w: failed to decode response: %v", ErrFormat, err)
	}
	cc.store(ctx, resource, body)
	return stats, nil
}

// FetchPuzzle returns the per-puzzle detail. Solved boards do not change, so
// cached puzzle payloads never expire.
func (cc *CachedClient) FetchPuzzle(ctx context.Context, puzzleID int64) (PuzzleDetail, error) {
	resource := fmt.Sprintf("game/%d", puzzleID)
	var detail PuzzleDetail
	if ok := cc.lookup(ctx, resource, 0, &detail); ok {
		return detail, nil
	}
	body, err := cc.client.get(ctx, cc.client.puzzleEndpoint(puzzleID))
	if err != nil {
		return PuzzleDetail{}, err
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		return PuzzleDetail{}, fmt.Errorf("%w: failed to decode response: %v", ErrFormat, err)
	}
	cc.store(ctx, resource, body)
	return detail, nil
}

func (cc *CachedClient) lookup(ctx context.Context, resource string, ttl time.Duration, out any) bool {
	if cc.cache == nil {
		return false
	}
	body, ok, err := cc.cache.Get(ctx, cc.client.userID, resource, ttl)
	if err != nil || !ok {
		return false
	}
	// A corrupt cached body falls through to a fresh fetch.
	return json.Unmarshal(body, out) == nil
}

func (cc *CachedClient) store(ctx context.Context, resource string, body []byte) {
	if cc.cache == nil {
		return
	}
	if err := cc.cache.Put(ctx, cc.client.userID, resource, body); err != nil {
		// Best-effort write; the fetched payload is already in hand.
		_ = err
	}
}
