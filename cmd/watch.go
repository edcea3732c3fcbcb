package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/propgen/propgen/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Watch the templates directory and hot-reload the catalog",
	Long: `Watch the templates directory for changes and reload the catalog
when template files are created, modified, or deleted. Runs until
interrupted.

Examples:
  propgen watch
  propgen watch --check            # One-shot change detection, no reload`,
	RunE: runWatch,
}

var watchCheck bool

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchCheck, "check", false, "Report pending changes without reloading, then exit")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cat, cfg, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if watchCheck {
		changes := cat.CheckForChanges()
		if len(changes) == 0 {
			fmt.Println("No changes detected.")
			return nil
		}
		for _, change := range changes {
			fmt.Println(change)
		}
		return nil
	}

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.Watch.DebounceMs) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	fw.AddFilter(watcher.TemplateFilter)
	fw.AddFilter(watcher.NoFixtureFilter)
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, e := range events {
			fmt.Printf("%s: %s\n", e.Type, e.Path)
		}
		summary := cat.Reload(context.Background())
		fmt.Printf("Reloaded: %d templates, %d load errors\n",
			summary.TemplatesLoaded, summary.LoadErrors)
		return nil
	})

	if err := fw.AddRecursive(cfg.Templates.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Templates.Dir, err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	fw.Start(ctx)

	fmt.Printf("Watching %s (%d templates loaded). Press Ctrl+C to stop.\n",
		cfg.Templates.Dir, cat.Len())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("\nStopping.")
	return nil
}
