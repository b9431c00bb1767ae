package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/storage"
)

// NewHistoryCmd creates the 'history' command for viewing search analytics.
func NewHistoryCmd() *cobra.Command {
	var (
		limit   int
		cleanup time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent search history",
		Long: `Display recent searches from the local analytics database.

Queries are stored as SHA256 hashes, never as plain text.`,
		Example: `  tool-search-mcp history
  tool-search-mcp history --limit 50
  tool-search-mcp history --cleanup 720h  # drop records older than 30 days`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit, cleanup)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of records to show")
	cmd.Flags().DurationVar(&cleanup, "cleanup", 0, "Remove records older than this duration before listing")

	return cmd
}

// runHistory lists recent searches from the analytics database.
func runHistory(limit int, cleanup time.Duration) error {
	store := storage.NewStorage()
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	if cleanup > 0 {
		if err := store.Cleanup(cleanup); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Printf("✓ Removed records older than %s\n", cleanup)
	}

	records, err := store.RecentSearches(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No search history.")
		return nil
	}

	fmt.Printf("Recent searches (%d):\n\n", len(records))
	for _, r := range records {
		fmt.Printf("  %s  mode=%-13s results=%-4d servers=%d errors=%d  %dms\n",
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Mode, r.ResultCount, r.ServerCount, r.ErrorCount, r.DurationMs)
	}

	return nil
}
