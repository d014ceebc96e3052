package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/salvatore-campagna/hanzidx/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Insert documents and run queries against the index",
}

var indexInsertCmd = &cobra.Command{
	Use:   "insert <file-or-url>",
	Short: "Bulk-load a JSON array of {doc_key, content} documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, true)
		if err != nil {
			return err
		}
		defer eng.Close()

		n, err := eng.BulkLoad(args[0])
		if err != nil {
			return err
		}
		if err := eng.Sync(); err != nil {
			return err
		}

		logger.Info().Str("op", "insert").Int("count", n).Str("source", args[0]).Msg("bulk load complete")
		fmt.Printf("inserted %d documents\n", n)
		return nil
	},
}

var queryMode string

var indexQueryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Query the index and print ranked doc_key/score pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer eng.Close()

		mode, err := parseMode(queryMode)
		if err != nil {
			return err
		}

		scores, err := eng.Query([]byte(args[0]), mode, nil)
		if err != nil {
			return err
		}

		logger.Info().Str("op", "query").Str("mode", queryMode).Int("hits", len(scores)).Msg("query complete")
		return printRanked(eng, scores)
	},
}

func parseMode(s string) (index.Mode, error) {
	switch s {
	case "fuzzy":
		return index.ModeFuzzy, nil
	case "part":
		return index.ModePart, nil
	case "exact":
		return index.ModeExact, nil
	case "not":
		return index.ModeNot, nil
	default:
		return 0, fmt.Errorf("unknown query mode %q (want fuzzy|part|exact|not)", s)
	}
}

func printRanked(eng *index.Engine, scores map[uint32]float64) error {
	type hit struct {
		id    uint32
		key   string
		score float64
	}
	hits := make([]hit, 0, len(scores))
	for id, score := range scores {
		key, ok, err := eng.GetKey(id)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		hits = append(hits, hit{id: id, key: key, score: score})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	for _, h := range hits {
		fmt.Printf("%d\t%.2f\t%s\n", h.id, h.score, h.key)
	}
	return nil
}

func init() {
	indexQueryCmd.Flags().StringVar(&queryMode, "mode", "fuzzy", "query mode: fuzzy|part|exact|not")
	indexCmd.AddCommand(indexInsertCmd, indexQueryCmd)
}
