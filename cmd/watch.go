package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shardeum/sec-im-cleanup/clean"
	"github.com/shardeum/sec-im-cleanup/internal"
)

var watchDryRun bool

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a source tree and reprocess files as they change",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		engine, config, err := clean.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(engine, logger, config.Extensions, config.ExcludeDirs, watchDryRun)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.Start(root); err != nil {
			logger.Error("error starting watcher", zap.String("path", root), zap.Error(err))
			os.Exit(1)
		}
		defer func() { _ = watcher.Stop() }()

		fmt.Printf("Watching %s, press Ctrl-C to stop\n", root)
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchDryRun, "dry-run", false, "Report changes without writing them")
}
