// Package nyt implements the session client for the NYT crosswords API.
//
// The API is undocumented; field names mirror what the endpoints actually
// return and are not depended on outside this package and the normalizer.
package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/perimosocordiae/crossword-stats/internal/model"
)

const (
	// DefaultBaseURL is the production crosswords service endpoint.
	DefaultBaseURL = "https://nyt-games-prd.appspot.com/svc/crosswords"
	// DefaultTimeout bounds every request so a stalled connection cannot
	// hang the run.
	DefaultTimeout = 30 * time.Second

	// cookieHeader carries the replayed session cookie.
	cookieHeader = "nyt-s"

	streaksStartDate = "2014-01-01"
)

// Client issues authenticated reads against the crosswords API.
type Client struct {
	userID     string
	cookie     string
	baseURL    string
	httpClient *http.Client
}

// SolveHistory is the raw payload of the puzzle-history endpoint.
type SolveHistory struct {
	Results []SolveEntry `json:"results"`
}

// SolveEntry is one puzzle in the history feed. Optional fields are pointers
// so the normalizer can tell "absent" from "zero".
type SolveEntry struct {
	PuzzleID       int64    `json:"puzzle_id"`
	PrintDate      string   `json:"print_date"`
	Solved         *bool    `json:"solved"`
	Star           string   `json:"star"`
	PercentFilled  *float64 `json:"percent_filled"`
	SolvingSeconds *int     `json:"solving_seconds"`
}

// StreakStats is the raw payload of the stats-and-streaks endpoint.
type StreakStats struct {
	Results struct {
		Streaks struct {
			CurrentStreak int        `json:"current_streak"`
			LongestStreak int        `json:"longest_streak"`
			Dates         [][]string `json:"dates"`
		} `json:"streaks"`
		Stats struct {
			SolveRate float64 `json:"solve_rate"`
		} `json:"stats"`
	} `json:"results"`
}

// PuzzleDetail is the raw payload of the per-puzzle game endpoint.
type PuzzleDetail struct {
	Board struct {
		Cells []BoardCell `json:"cells"`
	} `json:"board"`
	Calcs struct {
		SecondsSpentSolving int  `json:"secondsSpentSolving"`
		Solved              bool `json:"solved"`
	} `json:"calcs"`
}

// BoardCell is one grid cell of a puzzle solve.
type BoardCell struct {
	Guess     string `json:"guess"`
	Timestamp int64  `json:"timestamp"`
	Blank     bool   `json:"blank"`
}

// NewClient builds a client for the given credential. Empty baseURL and zero
// timeout select the defaults.
func NewClient(cred model.Credential, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		userID:     cred.UserID,
		cookie:     cred.Cookie,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchSolveHistory fetches the daily puzzle history between start and stop,
// inclusive, sorted ascending by print date.
func (c *Client) FetchSolveHistory(ctx context.Context, start, stop time.Time) (SolveHistory, error) {
	var history SolveHistory
	if err := c.getJSON(ctx, c.historyEndpoint(start, stop), &history); err != nil {
		return SolveHistory{}, err
	}
	return history, nil
}

func (c *Client) historyEndpoint(start, stop time.Time) string {
	params := url.Values{
		"publish_type": {"daily"},
		"sort_order":   {"asc"},
		"sort_by":      {"print_date"},
		"date_start":   {start.Format("2006-01-02")},
		"date_end":     {stop.Format("2006-01-02")},
	}
	return fmt.Sprintf("%s/v3/%s/puzzles.json?%s", c.baseURL, c.userID, params.Encode())
}

// FetchStreaks fetches the streak and solve-rate summary.
func (c *Client) FetchStreaks(ctx context.Context) (StreakStats, error) {
	var stats StreakStats
	if err := c.getJSON(ctx, c.streaksEndpoint(), &stats); err != nil {
		return StreakStats{}, err
	}
	return stats, nil
}

func (c *Client) streaksEndpoint() string {
	params := url.Values{
		"date_start":      {streaksStartDate},
		"start_on_monday": {"true"},
	}
	return fmt.Sprintf("%s/v3/%s/stats-and-streaks.json?%s", c.baseURL, c.userID, params.Encode())
}

// FetchPuzzle fetches the per-puzzle solve detail, including the filled board.
func (c *Client) FetchPuzzle(ctx context.Context, puzzleID int64) (PuzzleDetail, error) {
	var detail PuzzleDetail
	if err := c.getJSON(ctx, c.puzzleEndpoint(puzzleID), &detail); err != nil {
		return PuzzleDetail{}, err
	}
	return detail, nil
}

func (c *Client) puzzleEndpoint(puzzleID int64) string {
	return fmt.Sprintf("%s/v6/game/%d.json", c.baseURL, puzzleID)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrFormat, err)
	}
	return nil
}

// get performs one authenticated GET and returns the body on 2xx. It is the
// only place the cookie leaves the process.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(cookieHeader, c.cookie)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: provider rejected the session cookie (%s)", ErrAuthentication, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: unexpected status: %s", ErrFormat, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}
	return body, nil
}
