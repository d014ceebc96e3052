package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shardsCmd = &cobra.Command{
	Use:   "shards",
	Short: "Inspect shard routing configuration",
}

var shardsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the subcount/submin/submax flags as given, and the index's idxcount",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer eng.Close()

		subcount, _ := cmd.Root().PersistentFlags().GetInt("subcount")
		submin, _ := cmd.Root().PersistentFlags().GetInt("submin")
		submax, _ := cmd.Root().PersistentFlags().GetInt("submax")

		fmt.Printf("subcount=%d submin=%d submax=%d idxcount=%d\n", subcount, submin, submax, eng.IdxCount())
		return nil
	},
}

func init() {
	shardsCmd.AddCommand(shardsInfoCmd)
}
