package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salvatore-campagna/hanzidx/chatbot"
)

var (
	chatName          string
	chatRandomOutputs []string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Drive the chatbot adapter over the index",
}

var chatReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read lines from stdin, print the bot's best-matching doc_key per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Root().PersistentFlags().GetString("db")

		bot, err := chatbot.Open(chatName, dbPath, true,
			chatbot.WithLogger(logger),
			chatbot.WithRandomOutputs(chatRandomOutputs),
		)
		if err != nil {
			return err
		}
		defer bot.Close()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			reply, err := bot.Input(line)
			if err != nil {
				logger.Warn().Err(err).Str("say", line).Msg("chat: input failed")
				continue
			}
			fmt.Println(reply)
		}
		return scanner.Err()
	},
}

var chatAddCmd = &cobra.Command{
	Use:   "add <content> [trigger]",
	Short: "Add one entry to the bot's index",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Root().PersistentFlags().GetString("db")

		bot, err := chatbot.Open(chatName, dbPath, true, chatbot.WithLogger(logger))
		if err != nil {
			return err
		}
		defer bot.Close()

		trigger := ""
		if len(args) == 2 {
			trigger = args[1]
		}

		id, err := bot.AddEntry(args[0], trigger)
		if err != nil {
			return err
		}

		logger.Info().Str("op", "chat-add").Uint32("doc_id", id).Msg("entry added")
		fmt.Printf("added entry %d\n", id)
		return nil
	},
}

func init() {
	chatCmd.PersistentFlags().StringVar(&chatName, "name", "hanzidx", "bot name")
	chatReplCmd.Flags().StringSliceVar(&chatRandomOutputs, "random-output", nil, "fallback response, repeatable")
	chatCmd.AddCommand(chatReplCmd, chatAddCmd)
}
