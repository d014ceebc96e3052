package main

import (
	"github.com/spf13/cobra"

	"github.com/salvatore-campagna/hanzidx/index"
)

func openEngine(cmd *cobra.Command, writable bool) (*index.Engine, error) {
	dbPath, _ := cmd.Root().PersistentFlags().GetString("db")
	subcount, _ := cmd.Root().PersistentFlags().GetInt("subcount")
	submin, _ := cmd.Root().PersistentFlags().GetInt("submin")
	submax, _ := cmd.Root().PersistentFlags().GetInt("submax")

	opts := []index.Option{
		index.WithLogger(logger),
		index.WithSubcount(subcount),
	}
	if submax >= 0 {
		opts = append(opts, index.WithSubrange(submin, submax))
	}
	if !writable {
		opts = append(opts, index.WithReadOnly())
	}

	return index.Open(dbPath, opts...)
}
