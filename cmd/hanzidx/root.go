package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "hanzidx",
	Short: "An inverted-index engine for mixed Big5/Latin text",
	Long: `hanzidx indexes and queries mixed double-byte/Latin text against an
on-disk inverted index.

Get started:
  hanzidx index insert docs.json --db index.db
  hanzidx index query "hello" --db index.db --mode=fuzzy
  hanzidx shards info --db index.db
  hanzidx chat repl --db index.db`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("db", "d", "hanzidx.db", "index store path")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Int("subcount", 0, "number of shards (0 disables shard routing)")
	rootCmd.PersistentFlags().Int("submin", 0, "first shard this process opens")
	rootCmd.PersistentFlags().Int("submax", -1, "last shard this process opens (-1 means subcount-1)")

	cobra.OnInitialize(func() {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	})

	rootCmd.AddCommand(indexCmd, shardsCmd, chatCmd)
}
