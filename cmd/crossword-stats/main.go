// Package main provides the CLI entrypoint for crossword-stats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/perimosocordiae/crossword-stats/internal/cache"
	"github.com/perimosocordiae/crossword-stats/internal/chart"
	"github.com/perimosocordiae/crossword-stats/internal/config"
	"github.com/perimosocordiae/crossword-stats/internal/model"
	"github.com/perimosocordiae/crossword-stats/internal/normalize"
	"github.com/perimosocordiae/crossword-stats/internal/nyt"
	"github.com/perimosocordiae/crossword-stats/internal/statsui"
)

const (
	defaultDays     = 28
	defaultHeight   = 10
	defaultWindow   = 7
	defaultCacheTTL = "12h"
)

var (
	fetchDays      int
	fetchSince     string
	fetchBaseURL   string
	fetchNoCache   bool
	fetchUserInfo  string
	fetchCachePath string
	fetchCacheTTL  string

	chartWidth  int
	chartHeight int
	chartWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crossword-stats",
		Short:         "Chart your NYT crossword solve times in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runChartCmd,
	}

	rootCmd.PersistentFlags().IntVar(&fetchDays, "days", defaultDays, "lookback window in days")
	rootCmd.PersistentFlags().StringVar(&fetchSince, "since", "", "start date (YYYY-MM-DD, overrides --days)")
	rootCmd.PersistentFlags().StringVar(&fetchBaseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().BoolVar(&fetchNoCache, "no-cache", false, "bypass the local response cache")
	rootCmd.PersistentFlags().StringVar(&fetchUserInfo, "user-info", "", "path to user_info.json")
	rootCmd.PersistentFlags().StringVar(&fetchCachePath, "cache-path", "", "path to the response cache database")
	rootCmd.PersistentFlags().StringVar(&fetchCacheTTL, "cache-ttl", defaultCacheTTL, "cache expiry for history payloads")

	rootCmd.Flags().IntVar(&chartWidth, "width", 0, "chart width (0 = fit terminal)")
	rootCmd.Flags().IntVar(&chartHeight, "height", defaultHeight, "chart height in rows")
	rootCmd.Flags().IntVar(&chartWindow, "window", defaultWindow, "moving average window")

	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newStreaksCmd())
	rootCmd.AddCommand(newPuzzleCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// fetcher is satisfied by both the plain and the caching client.
type fetcher interface {
	FetchSolveHistory(ctx context.Context, start, stop time.Time) (nyt.SolveHistory, error)
	FetchStreaks(ctx context.Context) (nyt.StreakStats, error)
	FetchPuzzle(ctx context.Context, puzzleID int64) (nyt.PuzzleDetail, error)
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := buildFetcher(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	start, stop, err := resolveDateRange()
	if err != nil {
		return err
	}

	ctx := context.Background()
	raw, err := client.FetchSolveHistory(ctx, start, stop)
	if err != nil {
		return err
	}
	series := normalize.Normalize(raw)

	out := cmd.OutOrStdout()
	if err := chart.RenderSummary(out, series); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := chart.RenderSolveCurveWithSize(out, series, chartWindow, chartWidth, chartHeight, false); err != nil {
		return fmt.Errorf("failed to render solve curve: %w", err)
	}
	if err := chart.RenderWeekdayTable(out, series); err != nil {
		return fmt.Errorf("failed to render weekday table: %w", err)
	}
	return nil
}

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse stats interactively",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}
	cmd.Flags().IntVar(&chartWindow, "window", defaultWindow, "moving average window")
	return cmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := buildFetcher(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	start, stop, err := resolveDateRange()
	if err != nil {
		return err
	}

	ctx := context.Background()
	raw, err := client.FetchSolveHistory(ctx, start, stop)
	if err != nil {
		return err
	}
	series := normalize.Normalize(raw)

	var streaks *model.StreakStats
	rawStreaks, err := client.FetchStreaks(ctx)
	if err != nil {
		logErrf("failed to load streaks: %v\n", err)
	} else {
		normalized := normalize.NormalizeStreaks(rawStreaks)
		streaks = &normalized
	}

	cfg := model.ReportConfig{Window: chartWindow}
	uiModel := statsui.NewModel(series, streaks, cfg)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newStreaksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Show streaks and solve rate",
		Args:  cobra.NoArgs,
		RunE:  runStreaksCmd,
	}
}

func runStreaksCmd(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := buildFetcher(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := client.FetchStreaks(context.Background())
	if err != nil {
		return err
	}
	streaks := normalize.NormalizeStreaks(raw)
	return chart.RenderStreaks(cmd.OutOrStdout(), streaks)
}

func newPuzzleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "puzzle <puzzle-id>",
		Short: "Show one solved puzzle board",
		Args:  cobra.ExactArgs(1),
		RunE:  runPuzzleCmd,
	}
}

func runPuzzleCmd(cmd *cobra.Command, args []string) error {
	puzzleID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid puzzle id %q", args[0])
	}

	client, cleanup, err := buildFetcher(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	detail, err := client.FetchPuzzle(context.Background(), puzzleID)
	if err != nil {
		return err
	}
	return chart.RenderBoard(cmd.OutOrStdout(), detail)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	credPath := config.DefaultCredentialPath()
	if _, err := os.Stat(credPath); os.IsNotExist(err) {
		if err := os.WriteFile(credPath, []byte(credentialTemplate()), 0o600); err != nil {
			return fmt.Errorf("failed to write credential template: %w", err)
		}
		logErrf("Wrote credential template to %s; fill in user_id and cookie.\n", credPath)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// buildFetcher resolves config, loads the credential, and composes the
// client with the response cache. The cleanup closes the cache store.
func buildFetcher(cmd *cobra.Command) (fetcher, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "days", &fetchDays, fileCfg.Fetch.Days)
	applyStringConfig(cmd, "base-url", &fetchBaseURL, fileCfg.Fetch.BaseURL)
	applyStringConfig(cmd, "cache-ttl", &fetchCacheTTL, fileCfg.Fetch.CacheTTL)
	applyStringConfig(cmd, "user-info", &fetchUserInfo, fileCfg.Fetch.UserInfo)
	applyStringConfig(cmd, "cache-path", &fetchCachePath, fileCfg.Fetch.CachePath)
	applyIntConfig(cmd, "width", &chartWidth, fileCfg.Chart.Width)
	applyIntConfig(cmd, "height", &chartHeight, fileCfg.Chart.Height)
	applyIntConfig(cmd, "window", &chartWindow, fileCfg.Chart.Window)

	if chartWindow < 1 {
		return nil, nil, fmt.Errorf("--window must be >= 1")
	}
	if fetchDays < 1 {
		return nil, nil, fmt.Errorf("--days must be >= 1")
	}

	credPath := fetchUserInfo
	if credPath == "" {
		credPath = config.DefaultCredentialPath()
	}
	cred, err := config.LoadCredential(credPath)
	if err != nil {
		return nil, nil, err
	}

	client := nyt.NewClient(cred, fetchBaseURL, 0)
	if fetchNoCache {
		return client, func() {}, nil
	}

	ttl, err := time.ParseDuration(fetchCacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --cache-ttl value: %w", err)
	}

	cachePath := fetchCachePath
	if cachePath == "" {
		cachePath = config.DefaultCachePath()
	}
	store, err := cache.Open(cachePath)
	if err != nil {
		// A broken cache never blocks the fetch.
		logErrf("failed to open cache: %v\n", err)
		return client, func() {}, nil
	}
	cleanup := func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close cache: %v\n", cerr)
		}
	}
	return nyt.NewCachedClient(client, store, ttl), cleanup, nil
}

func resolveDateRange() (start, stop time.Time, err error) {
	stop = time.Now()
	if fetchSince != "" {
		start, err = time.Parse("2006-01-02", fetchSince)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since value: %w", err)
		}
		return start, stop, nil
	}
	start = stop.AddDate(0, 0, -fetchDays)
	return start, stop, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# crossword-stats configuration
# Uncomment a value to enable it. CLI flags override config values.

[fetch]
# days = %d               # Lookback window in days
# base-url = %q
# cache-ttl = %q          # Expiry for cached history payloads
# user-info = ""          # Path to user_info.json
# cache-path = ""         # Path to the response cache database

[chart]
# width = 0               # Chart width (0 = fit terminal)
# height = %d             # Chart height in rows
# window = %d             # Moving average window
`,
		defaultDays,
		nyt.DefaultBaseURL,
		defaultCacheTTL,
		defaultHeight,
		defaultWindow,
	)
}

func credentialTemplate() string {
	return `{
  "user_id": "",
  "cookie": ""
}
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
