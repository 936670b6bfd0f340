package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ogero/ghibli-films/internal/catalog"
	"github.com/ogero/ghibli-films/internal/common"
	"github.com/ogero/ghibli-films/internal/tui"
	"github.com/ogero/ghibli-films/pkg/ghibli"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		endpoint string
		pageSize int
		logFile  string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse Studio Ghibli films in the terminal",
		Long: `Fetches the films collection once and shows it as a searchable, sortable,
paginated grid. Press / to search, tab to change the sort order, arrows to
move between cards and pages, enter for details.`,
		Args:          cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 {
				return fmt.Errorf("--page-size must be greater than 0, got %d", pageSize)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				common.Log = slog.New(slog.NewTextHandler(f, nil))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			model := tui.New(ctx, ghibli.NewGhibli(endpoint), pageSize)
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("failed to tea.Program.Run: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", ghibli.DefaultEndpoint, "films collection endpoint")
	cmd.Flags().IntVar(&pageSize, "page-size", catalog.DefaultPageSize, "cards per page")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (logs are discarded otherwise)")

	return cmd
}
